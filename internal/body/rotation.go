package body

import "math"

// Spin integrates a body's accumulated rotation angle. Unlike position,
// which is a pure function of time, the spin angle depends on the history
// of applied time deltas, so it is kept as a small state machine
// (last-applied JD, accumulated angle) and advanced incrementally.
type Spin struct {
	periodHours float64
	lastJD      float64
	angle       float64
	primed      bool
}

// NewSpin creates a spin integrator for a rotation period in hours.
// A negative period means retrograde rotation (the angle decreases).
func NewSpin(periodHours float64) *Spin {
	return &Spin{periodHours: periodHours}
}

// Update advances the accumulated angle to the given Julian Date. The
// incoming JD deltas are already speed-scaled by the driving loop, so the
// rate here is simply 2π/|period| per simulated day, signed by the period.
//
// At speed 0 the angle is frozen exactly: the last-applied JD still tracks
// so that scrubbing while paused does not produce a jump on resume.
func (s *Spin) Update(jd, speed float64) {
	if !s.primed {
		s.lastJD = jd
		s.primed = true
		return
	}
	if speed == 0 || s.periodHours == 0 {
		s.lastJD = jd
		return
	}

	periodDays := s.periodHours / 24
	rate := 2 * math.Pi / math.Abs(periodDays)
	if periodDays < 0 {
		rate = -rate
	}
	s.angle += rate * (jd - s.lastJD)
	s.lastJD = jd
}

// Angle returns the accumulated rotation in radians. Unbounded; callers
// wrap into display rotation as needed.
func (s *Spin) Angle() float64 {
	return s.angle
}

// Reset clears the accumulated state, e.g. when the owning body is
// reconstructed.
func (s *Spin) Reset() {
	s.angle = 0
	s.primed = false
}
