package body

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
)

// EphemerisExport is the JSON-serializable snapshot of the whole system at
// one instant, for the headless snapshot mode and scripting consumers.
type EphemerisExport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	JulianDate  float64      `json:"julian_date"`
	Date        string       `json:"date"`
	Bodies      []BodyExport `json:"bodies"`
}

// BodyExport is one body's row in an ephemeris snapshot.
type BodyExport struct {
	Name           string  `json:"name"`
	Code           string  `json:"code"`
	XAU            float64 `json:"x_au"`
	YAU            float64 `json:"y_au"`
	ZAU            float64 `json:"z_au"`
	DistanceAU     float64 `json:"distance_au"`
	EclipticLonDeg float64 `json:"ecliptic_lon_deg"`
	EclipticLatDeg float64 `json:"ecliptic_lat_deg"`
	LightTimeSec   float64 `json:"light_time_sec"`
	TrueAnomalyDeg float64 `json:"true_anomaly_deg"`
}

// ExportEphemeris evaluates every body at jd and packages the result.
func ExportEphemeris(sys *System, jd float64) *EphemerisExport {
	states := sys.StatesAt(jd)

	exp := &EphemerisExport{
		GeneratedAt: time.Now().UTC(),
		JulianDate:  jd,
		Date:        astro.FormatJD(jd),
		Bodies:      make([]BodyExport, 0, len(states)),
	}
	for _, st := range states {
		exp.Bodies = append(exp.Bodies, BodyExport{
			Name:           st.Def.Name,
			Code:           st.Def.Code,
			XAU:            st.Pos.X,
			YAU:            st.Pos.Y,
			ZAU:            st.Pos.Z,
			DistanceAU:     st.DistanceAU,
			EclipticLonDeg: st.EclipticLonDeg(),
			EclipticLatDeg: st.EclipticLatDeg(),
			LightTimeSec:   st.LightTimeSec(),
			TrueAnomalyDeg: st.TrueAnomaly * 180 / math.Pi,
		})
	}
	return exp
}

// WriteJSON writes the snapshot as indented JSON.
func (e *EphemerisExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a human-readable ephemeris table, one row per
// body, for the headless summary mode.
func (e *EphemerisExport) WriteSummaryTable(w io.Writer) {
	sep := strings.Repeat("─", 78)

	fmt.Fprintf(w, "Heliocentric ephemeris  %s  (JD %.5f)\n", e.Date, e.JulianDate)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-8s  %10s  %9s  %8s  %10s  %10s\n",
		"BODY", "DIST (AU)", "LON (°)", "LAT (°)", "ν (°)", "LIGHT")
	fmt.Fprintln(w, sep)

	for _, b := range e.Bodies {
		fmt.Fprintf(w, "%-8s  %10.4f  %9.3f  %8.3f  %10.3f  %10s\n",
			b.Name, b.DistanceAU, b.EclipticLonDeg, b.EclipticLatDeg,
			b.TrueAnomalyDeg, astro.FormatLightTime(b.LightTimeSec))
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%d bodies\n", len(e.Bodies))
}
