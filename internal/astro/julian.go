package astro

import (
	"math"
	"time"
)

// Julian Date constants.
const (
	// J2000 is the reference epoch JD 2451545.0 (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century in days.
	DaysPerCentury = 36525.0

	// SecondsPerDay is the number of seconds in one Julian day.
	SecondsPerDay = 86400.0
)

// TimeToJD converts a wall-clock instant to a Julian Date.
// Uses the standard Gregorian-calendar formula (Meeus, Astronomical
// Algorithms ch. 7).
func TimeToJD(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// JDToTime converts a Julian Date back to a UTC instant.
// Inverse of TimeToJD for the Gregorian calendar.
func JDToTime(jd float64) time.Time {
	z, f := math.Modf(jd + 0.5)

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e) + f

	month := e - 1
	if e >= 14 {
		month = e - 13
	}
	year := c - 4716
	if month <= 2 {
		year = c - 4715
	}

	dayInt, dayFrac := math.Modf(day)
	secs := dayFrac * SecondsPerDay
	h := int(secs / 3600)
	min := int(secs/60) % 60
	s := int(secs) % 60
	ns := int((secs - math.Floor(secs)) * 1e9)

	return time.Date(int(year), time.Month(month), int(dayInt), h, min, s, ns, time.UTC)
}

// JulianCenturies returns the number of Julian centuries between jd and
// the J2000 epoch. This is the T used for secular element extrapolation.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// FormatJD renders a Julian Date as a calendar date string for display.
func FormatJD(jd float64) string {
	return JDToTime(jd).Format("2006-01-02 15:04 UTC")
}
