package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Kepler's equation has no closed form; Newton-Raphson with this
// tolerance/cap pair converges in a handful of iterations for planetary
// eccentricities and is guaranteed to terminate for any input.
const (
	keplerTolerance = 1e-8
	keplerMaxIter   = 20
)

// StateVector is the derived per-instant state of a body: computed fresh
// from (elements, JD) on every request, never stored as ground truth.
type StateVector struct {
	Pos         astro.Vec3 // heliocentric ecliptic position, AU
	RadiusAU    float64    // distance from the primary
	TrueAnomaly float64    // radians
}

// SolveKepler solves E − e·sin E = M for the eccentric anomaly, seeded at
// M. If the iteration cap is reached the best available E is returned
// without re-checking convergence.
func SolveKepler(m, e float64) float64 {
	E := m
	for i := 0; i < keplerMaxIter; i++ {
		dE := (E - e*math.Sin(E) - m) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < keplerTolerance {
			break
		}
	}
	return E
}

// StateAt returns the body's heliocentric state at the given Julian Date.
// Pure and deterministic: identical inputs always produce identical
// outputs, so a body always lies on the curve sampled from its own
// elements.
func (el Elements) StateAt(jd float64) StateVector {
	ev := el.AtJD(jd)
	return stateFromAnomaly(ev, ev.MeanAnomaly())
}

// stateFromAnomaly computes the state for an arbitrary mean anomaly against
// already-evaluated elements. Shared by StateAt and orbit-path sampling so
// both agree to floating-point tolerance.
func stateFromAnomaly(ev Evaluated, meanAnomaly float64) StateVector {
	E := SolveKepler(meanAnomaly, ev.E)

	// True anomaly via the half-angle form; well-defined at e = 0
	nu := 2 * math.Atan2(
		math.Sqrt(1+ev.E)*math.Sin(E/2),
		math.Sqrt(1-ev.E)*math.Cos(E/2),
	)

	r := ev.A * (1 - ev.E*math.Cos(E))

	// Position in the orbital plane, perihelion along +x
	xOrb := r * math.Cos(nu)
	yOrb := r * math.Sin(nu)

	// Rotate by argument of perihelion, inclination, ascending node
	w := ev.ArgPerihelion()
	cosW, sinW := math.Cos(w), math.Sin(w)
	cosO, sinO := math.Cos(ev.O), math.Sin(ev.O)
	cosI, sinI := math.Cos(ev.I), math.Sin(ev.I)

	pos := astro.Vec3{
		X: (cosW*cosO-sinW*sinO*cosI)*xOrb + (-sinW*cosO-cosW*sinO*cosI)*yOrb,
		Y: (cosW*sinO+sinW*cosO*cosI)*xOrb + (-sinW*sinO+cosW*cosO*cosI)*yOrb,
		Z: (sinW*sinI)*xOrb + (cosW*sinI)*yOrb,
	}

	return StateVector{
		Pos:         pos,
		RadiusAU:    r,
		TrueAnomaly: normalizeAngle(nu),
	}
}
