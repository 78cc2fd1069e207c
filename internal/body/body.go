// Package body composes the stateless orbital solver with per-body
// rotation state into the state vectors the renderers consume.
package body

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// State is the derived per-frame state of a body. It is computed fresh on
// every request and never persisted as ground truth.
type State struct {
	Def         orbit.Def
	Pos         astro.Vec3 // heliocentric ecliptic, AU
	DistanceAU  float64
	TrueAnomaly float64 // radians
	SpinAngle   float64 // radians, accumulated
}

// EclipticLonDeg returns the heliocentric ecliptic longitude in degrees.
func (s State) EclipticLonDeg() float64 {
	return astro.EclipticLongitude(s.Pos)
}

// EclipticLatDeg returns the heliocentric ecliptic latitude in degrees.
func (s State) EclipticLatDeg() float64 {
	return astro.EclipticLatitude(s.Pos)
}

// LightTimeSec returns the Sun-to-body light time in seconds.
func (s State) LightTimeSec() float64 {
	return astro.LightTimeFromAU(s.DistanceAU)
}

// Body pairs an immutable planet definition with its spin state.
type Body struct {
	Def  orbit.Def
	spin *Spin
}

// NewBody creates a body from a planet definition with zeroed spin.
func NewBody(def orbit.Def) *Body {
	return &Body{
		Def:  def,
		spin: NewSpin(def.RotationPeriodHours),
	}
}

// StateAt evaluates the body at the given Julian Date. Position is pure;
// the spin angle reflects whatever has been integrated so far.
func (b *Body) StateAt(jd float64) State {
	sv := b.Def.Elements.StateAt(jd)
	return State{
		Def:         b.Def,
		Pos:         sv.Pos,
		DistanceAU:  sv.RadiusAU,
		TrueAnomaly: sv.TrueAnomaly,
		SpinAngle:   b.spin.Angle(),
	}
}

// UpdateRotation advances the body's spin state to the given time.
func (b *Body) UpdateRotation(jd, speed float64) {
	b.spin.Update(jd, speed)
}

// SpinAngle returns the accumulated rotation in radians.
func (b *Body) SpinAngle() float64 {
	return b.spin.Angle()
}

// System is the registry of all simulated bodies. It is a pure consumer of
// the time authority: it never advances or resets time itself.
type System struct {
	bodies []*Body
}

// NewSystem builds a system containing the eight major planets.
func NewSystem() *System {
	s := &System{}
	for _, def := range orbit.Planets {
		s.bodies = append(s.bodies, NewBody(def))
	}
	return s
}

// Bodies returns the bodies in table order.
func (s *System) Bodies() []*Body {
	return s.bodies
}

// Get returns a body by code, or nil if not found.
func (s *System) Get(code string) *Body {
	for _, b := range s.bodies {
		if b.Def.Code == code {
			return b
		}
	}
	return nil
}

// Advance integrates every body's rotation up to the given time. Called
// once per accepted time update.
func (s *System) Advance(jd, speed float64) {
	for _, b := range s.bodies {
		b.UpdateRotation(jd, speed)
	}
}

// StatesAt evaluates every body at the given time, in table order.
func (s *System) StatesAt(jd float64) []State {
	states := make([]State, len(s.bodies))
	for i, b := range s.bodies {
		states[i] = b.StateAt(jd)
	}
	return states
}
