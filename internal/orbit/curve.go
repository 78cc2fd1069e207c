package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// DefaultPathSamples is the sampling density for orbit curves.
const DefaultPathSamples = 180

// Path samples the closed orbital curve for elements evaluated at the
// given Julian Date by sweeping mean anomaly over a full revolution. The
// body's own position at jd lies on this curve exactly, because both go
// through the same evaluated elements and solver.
func (el Elements) Path(jd float64, samples int) []astro.Vec3 {
	if samples <= 0 {
		samples = DefaultPathSamples
	}

	ev := el.AtJD(jd)
	pts := make([]astro.Vec3, samples)
	for k := 0; k < samples; k++ {
		m := 2 * math.Pi * float64(k) / float64(samples)
		pts[k] = stateFromAnomaly(ev, m).Pos
	}
	return pts
}
