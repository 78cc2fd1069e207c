// Package orbit evaluates Keplerian orbital elements into heliocentric
// ecliptic positions. Everything here is a pure function of (elements,
// Julian Date); nothing is stateful.
package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Elements holds the six Keplerian elements of a bound elliptical orbit at
// the J2000 epoch plus their secular rates per Julian century. Angles are
// tabulated in degrees, as published; evaluation converts to radians.
type Elements struct {
	A    float64 // semi-major axis, AU
	E    float64 // eccentricity, 0 <= e < 1
	I    float64 // inclination, degrees
	L    float64 // mean longitude, degrees
	WBar float64 // longitude of perihelion, degrees
	O    float64 // longitude of ascending node, degrees

	// Secular rates, per Julian century (36525 days)
	ADot    float64
	EDot    float64
	IDot    float64
	LDot    float64
	WBarDot float64
	ODot    float64
}

// Evaluated holds elements extrapolated to a specific instant, converted to
// working units: AU for A, radians for all angles.
type Evaluated struct {
	A    float64
	E    float64
	I    float64
	L    float64
	WBar float64
	O    float64
}

// AtJD extrapolates the elements linearly to the given Julian Date:
// value(T) = value0 + rate*T with T in Julian centuries since J2000.
func (el Elements) AtJD(jd float64) Evaluated {
	t := astro.JulianCenturies(jd)
	return Evaluated{
		A:    el.A + el.ADot*t,
		E:    el.E + el.EDot*t,
		I:    degToRad(el.I + el.IDot*t),
		L:    degToRad(el.L + el.LDot*t),
		WBar: degToRad(el.WBar + el.WBarDot*t),
		O:    degToRad(el.O + el.ODot*t),
	}
}

// ArgPerihelion returns the argument of perihelion ω = ϖ − Ω.
func (ev Evaluated) ArgPerihelion() float64 {
	return ev.WBar - ev.O
}

// MeanAnomaly returns M = L − ϖ normalized into [0, 2π).
func (ev Evaluated) MeanAnomaly() float64 {
	return normalizeAngle(ev.L - ev.WBar)
}

// PeriodDays returns the orbital period from Kepler's third law
// (P² ∝ a³ for heliocentric orbits).
func (el Elements) PeriodDays() float64 {
	return 365.25 * math.Pow(el.A, 1.5)
}

// Perihelion returns the minimum heliocentric distance a(1−e) in AU.
func (el Elements) Perihelion() float64 {
	return el.A * (1 - el.E)
}

// Aphelion returns the maximum heliocentric distance a(1+e) in AU.
func (el Elements) Aphelion() float64 {
	return el.A * (1 + el.E)
}

// normalizeAngle wraps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
