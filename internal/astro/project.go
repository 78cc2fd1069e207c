package astro

import (
	"fmt"
	"math"
)

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X float64 // Screen X coordinate (normalized, -1 to 1)
	Y float64 // Screen Y coordinate (normalized, -1 to 1)
	R float64 // Original radial distance in AU
	Z float64 // Original Z offset (for ecliptic latitude display)
}

// ScaleMode defines how radial distances are mapped to screen space.
type ScaleMode int

const (
	// ScaleLogR uses logarithmic scaling: r_display = log10(r_AU + 1) * scale
	ScaleLogR ScaleMode = iota

	// ScaleInner uses linear scaling optimized for 0-5 AU
	ScaleInner

	// ScaleOuter uses compressed scaling for outer solar system (>5 AU)
	ScaleOuter
)

// DefaultStarShellRadiusAU is the radius of the imaginary shell the
// background stars are pinned to at 1.0x zoom.
const DefaultStarShellRadiusAU = 80.0

// ProjectionConfig configures the top-down ecliptic projection.
type ProjectionConfig struct {
	Scale             float64   // Base scale factor
	Mode              ScaleMode // Scaling mode
	StarShellRadiusAU float64   // Shell radius for background stars (0 = default)
}

// DefaultProjectionConfig returns a reasonable default configuration.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Scale: 1.0,
		Mode:  ScaleLogR,
	}
}

// ProjectEclipticTopDown projects a 3D ecliptic vector to 2D screen
// coordinates. The projection is a top-down view with X pointing toward the
// vernal equinox and Y toward the summer solstice direction; Z is
// perpendicular to the ecliptic plane.
func ProjectEclipticTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	rAU := math.Sqrt(v.X*v.X + v.Y*v.Y)
	rDisplay := scaleRadius(rAU, cfg)
	angle := math.Atan2(v.Y, v.X)

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: v.Norm(), // True 3D distance
		Z: v.Z,
	}
}

// ProjectStarEclipticTopDown projects a cataloged star onto the projection
// plane. The star's RA/Dec direction is converted to ecliptic coordinates
// and pinned to a distant shell so stars form a stable backdrop.
func ProjectStarEclipticTopDown(raDeg, decDeg float64, cfg ProjectionConfig) ProjectedPoint {
	shell := cfg.StarShellRadiusAU
	if shell <= 0 {
		shell = DefaultStarShellRadiusAU
	}
	dir := RADecToEcliptic(raDeg, decDeg)
	return ProjectEclipticTopDown(dir.Scale(shell), cfg)
}

// scaleRadius applies the configured scaling mode to a radial distance.
func scaleRadius(rAU float64, cfg ProjectionConfig) float64 {
	switch cfg.Mode {
	case ScaleLogR:
		// log10(r + 1) gives 0 at origin, ~0.78 at 5 AU, ~1.32 at 20 AU
		return math.Log10(rAU + 1)

	case ScaleInner:
		// Linear for the inner system, clamp outer planets to the edge
		if rAU > 5 {
			return 5
		}
		return rAU

	case ScaleOuter:
		// Linear to 5 AU, then logarithmic beyond
		if rAU <= 5 {
			return rAU / 5 * 0.5
		}
		return 0.5 + math.Log10(rAU/5+1)*0.5

	default:
		return math.Log10(rAU + 1)
	}
}

// obliquityRad is the Earth's axial tilt at the J2000 epoch, in radians.
const obliquityRad = 23.439291 * math.Pi / 180

// EquatorialToEcliptic converts equatorial XYZ to ecliptic XYZ.
// Input is in any units; output is in the same units.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	cosE := math.Cos(obliquityRad)
	sinE := math.Sin(obliquityRad)

	return Vec3{
		X: eq.X,
		Y: eq.Y*cosE + eq.Z*sinE,
		Z: -eq.Y*sinE + eq.Z*cosE,
	}
}

// EclipticToEquatorial converts ecliptic XYZ to equatorial XYZ.
func EclipticToEquatorial(ecl Vec3) Vec3 {
	cosE := math.Cos(obliquityRad)
	sinE := math.Sin(obliquityRad)

	return Vec3{
		X: ecl.X,
		Y: ecl.Y*cosE - ecl.Z*sinE,
		Z: ecl.Y*sinE + ecl.Z*cosE,
	}
}

// RADecToEcliptic converts an RA/Dec direction (degrees) to a unit vector
// in the ecliptic frame.
func RADecToEcliptic(raDeg, decDeg float64) Vec3 {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)

	cosD := math.Cos(dec)
	eq := Vec3{
		X: cosD * math.Cos(ra),
		Y: cosD * math.Sin(ra),
		Z: math.Sin(dec),
	}
	return EquatorialToEcliptic(eq)
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(v.Z / r))
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector.
func EclipticLongitude(v Vec3) float64 {
	lon := radToDeg(math.Atan2(v.Y, v.X))
	if lon < 0 {
		lon += 360
	}
	return lon
}

// FormatLightTime formats light time in seconds to a human-readable string.
func FormatLightTime(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%ds", int(seconds)/60, int(seconds)%60)
	default:
		return fmt.Sprintf("%dh%dm", int(seconds)/3600, (int(seconds)%3600)/60)
	}
}
