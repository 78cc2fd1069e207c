package orbit

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/astro"
)

const j2000 = astro.J2000

func TestSolveKepler_Residual(t *testing.T) {
	// The returned E must satisfy Kepler's equation within tolerance for
	// all planetary eccentricities.
	eccs := []float64{0, 0.0167, 0.0934, 0.2056, 0.5, 0.9}
	for _, e := range eccs {
		for k := 0; k < 16; k++ {
			m := 2 * math.Pi * float64(k) / 16
			E := SolveKepler(m, e)
			residual := math.Abs(E - e*math.Sin(E) - m)
			if residual > 1e-7 {
				t.Errorf("e=%.4f M=%.3f: residual %g", e, m, residual)
			}
		}
	}
}

func TestSolveKepler_CircularOrbit(t *testing.T) {
	// At e=0 the equation degenerates to E = M; no division by zero
	for _, m := range []float64{0, 1, math.Pi, 5} {
		if got := SolveKepler(m, 0); math.Abs(got-m) > 1e-12 {
			t.Errorf("SolveKepler(%v, 0) = %v, want %v", m, got, m)
		}
	}
}

func TestStateAt_Deterministic(t *testing.T) {
	earth, _ := GetPlanet("EARTH")
	a := earth.Elements.StateAt(j2000 + 1234.5)
	b := earth.Elements.StateAt(j2000 + 1234.5)

	if a.Pos != b.Pos || a.RadiusAU != b.RadiusAU || a.TrueAnomaly != b.TrueAnomaly {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", a, b)
	}
}

func TestStateAt_DistanceBounds(t *testing.T) {
	// Heliocentric distance must stay within perihelion/aphelion bounds
	// for every planet across a few decades.
	for _, p := range Planets {
		lo := p.Elements.Perihelion() * 0.99
		hi := p.Elements.Aphelion() * 1.01

		for d := 0; d < 40; d++ {
			jd := j2000 + float64(d)*365.25
			st := p.Elements.StateAt(jd)
			if st.RadiusAU < lo || st.RadiusAU > hi {
				t.Errorf("%s at JD %.1f: r=%.4f AU outside [%.4f, %.4f]",
					p.Name, jd, st.RadiusAU, lo, hi)
			}
			if math.Abs(st.Pos.Norm()-st.RadiusAU) > 1e-9 {
				t.Errorf("%s: |Pos| = %v disagrees with RadiusAU = %v",
					p.Name, st.Pos.Norm(), st.RadiusAU)
			}
		}
	}
}

func TestStateAt_EarthNearPerihelionAtJ2000(t *testing.T) {
	// Earth passes perihelion in early January, so at the J2000 epoch its
	// heliocentric distance is close to the minimum.
	earth, ok := GetPlanet("EARTH")
	if !ok {
		t.Fatal("EARTH not in table")
	}

	st := earth.Elements.StateAt(j2000)
	if st.RadiusAU < 0.980 || st.RadiusAU > 0.987 {
		t.Errorf("Earth distance at J2000 = %.5f AU, want ~0.983", st.RadiusAU)
	}
	// Earth stays within a fraction of a degree of the ecliptic plane
	if lat := math.Abs(astro.EclipticLatitude(st.Pos)); lat > 0.1 {
		t.Errorf("Earth ecliptic latitude = %.4f°, want ~0", lat)
	}
}

func TestStateAt_InclinedOrbitLeavesPlane(t *testing.T) {
	// Mercury's 7° inclination must show up as out-of-plane motion.
	merc, _ := GetPlanet("MERC")

	maxZ := 0.0
	for d := 0; d < 88; d++ {
		st := merc.Elements.StateAt(j2000 + float64(d))
		if z := math.Abs(st.Pos.Z); z > maxZ {
			maxZ = z
		}
	}
	// sin(7°) * 0.387 AU ≈ 0.047
	if maxZ < 0.03 {
		t.Errorf("Mercury max |Z| over one period = %.4f AU, want > 0.03", maxZ)
	}
}

func TestPath_ContainsBodyPosition(t *testing.T) {
	// A planet must lie on the curve sampled from its own elements.
	jds := []float64{j2000, j2000 + 1000, j2000 - 5000}

	for _, p := range Planets {
		for _, jd := range jds {
			pts := p.Elements.Path(jd, 720)
			pos := p.Elements.StateAt(jd).Pos

			minDist := math.Inf(1)
			for _, pt := range pts {
				if d := pt.Sub(pos).Norm(); d < minDist {
					minDist = d
				}
			}

			// Half the inter-sample arc length is the worst case
			maxGap := math.Pi * p.Elements.Aphelion() / 720
			if minDist > maxGap {
				t.Errorf("%s at JD %.1f: %.5f AU off its own orbit curve (max %.5f)",
					p.Name, jd, minDist, maxGap)
			}
		}
	}
}

func TestPath_Closed(t *testing.T) {
	earth, _ := GetPlanet("EARTH")
	pts := earth.Elements.Path(j2000, 360)

	if len(pts) != 360 {
		t.Fatalf("len(pts) = %d, want 360", len(pts))
	}
	// First and last samples are adjacent on the curve
	if gap := pts[0].Sub(pts[len(pts)-1]).Norm(); gap > 0.05 {
		t.Errorf("curve endpoints %v AU apart, want adjacent", gap)
	}
}

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		code string
		want float64 // published sidereal periods
	}{
		{"MERC", 87.97},
		{"EARTH", 365.25},
		{"JUP", 4332.6},
		{"NEP", 60190},
	}

	for _, tt := range tests {
		p, ok := GetPlanet(tt.code)
		if !ok {
			t.Fatalf("%s not in table", tt.code)
		}
		got := p.Elements.PeriodDays()
		if math.Abs(got-tt.want)/tt.want > 0.01 {
			t.Errorf("%s period = %.1f days, want ~%.1f", tt.code, got, tt.want)
		}
	}
}

func TestAtJD_EpochValues(t *testing.T) {
	earth, _ := GetPlanet("EARTH")
	ev := earth.Elements.AtJD(j2000)

	// At T=0 the rates contribute nothing
	if math.Abs(ev.A-earth.Elements.A) > 1e-12 {
		t.Errorf("A at epoch = %v, want %v", ev.A, earth.Elements.A)
	}
	if math.Abs(ev.E-earth.Elements.E) > 1e-12 {
		t.Errorf("E at epoch = %v, want %v", ev.E, earth.Elements.E)
	}

	m := ev.MeanAnomaly()
	if m < 0 || m >= 2*math.Pi {
		t.Errorf("mean anomaly %v not normalized into [0, 2π)", m)
	}
}

func TestGetPlanet(t *testing.T) {
	if _, ok := GetPlanet("SAT"); !ok {
		t.Error("SAT should be present")
	}
	if _, ok := GetPlanet("PLUTO"); ok {
		t.Error("PLUTO should not be present")
	}
	if len(Planets) != 8 {
		t.Errorf("len(Planets) = %d, want 8", len(Planets))
	}
}
