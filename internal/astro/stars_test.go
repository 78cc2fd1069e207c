package astro

import "testing"

func TestDefaultStarCatalog_Size(t *testing.T) {
	cat := DefaultStarCatalog()

	// Catalog covers the sky down to magnitude ~3; about a hundred stars
	if len(cat.Stars) < 50 {
		t.Errorf("expected at least 50 stars, got %d", len(cat.Stars))
	}
}

func TestDefaultStarCatalog_KnownStars(t *testing.T) {
	tests := map[string]struct {
		minRA, maxRA   float64
		minDec, maxDec float64
		maxMag         float64
	}{
		"Sirius":     {100, 103, -18, -15, 0},
		"Vega":       {278, 281, 37, 40, 0.5},
		"Polaris":    {35, 40, 88, 90, 2.5},
		"Canopus":    {94, 98, -54, -51, 0},
		"Arcturus":   {212, 215, 18, 21, 0.5},
		"Betelgeuse": {87, 90, 6, 9, 1.0},
	}

	starMap := make(map[string]Star)
	for _, s := range DefaultStarCatalog().Stars {
		starMap[s.Name] = s
	}

	for name, want := range tests {
		star, found := starMap[name]
		if !found {
			t.Errorf("%s not in catalog", name)
			continue
		}
		if star.RAdeg < want.minRA || star.RAdeg > want.maxRA {
			t.Errorf("%s RA=%v, expected %v-%v", name, star.RAdeg, want.minRA, want.maxRA)
		}
		if star.DecDeg < want.minDec || star.DecDeg > want.maxDec {
			t.Errorf("%s Dec=%v, expected %v-%v", name, star.DecDeg, want.minDec, want.maxDec)
		}
		if star.Mag > want.maxMag {
			t.Errorf("%s Mag=%v, expected < %v", name, star.Mag, want.maxMag)
		}
	}
}

func TestDefaultStarCatalog_ValidEntries(t *testing.T) {
	seen := make(map[string]bool)

	for _, star := range DefaultStarCatalog().Stars {
		if star.Name == "" {
			t.Error("found star with empty name")
		}
		if seen[star.Name] {
			t.Errorf("duplicate star name: %s", star.Name)
		}
		seen[star.Name] = true

		if star.RAdeg < 0 || star.RAdeg >= 360 {
			t.Errorf("%s has invalid RA: %v", star.Name, star.RAdeg)
		}
		if star.DecDeg < -90 || star.DecDeg > 90 {
			t.Errorf("%s has invalid Dec: %v", star.Name, star.DecDeg)
		}
		if star.Mag < -2 || star.Mag > 5 {
			t.Errorf("%s has unusual magnitude: %v", star.Name, star.Mag)
		}
	}
}

func TestDefaultStarCatalog_BrightestFirst(t *testing.T) {
	cat := DefaultStarCatalog()

	if len(cat.Stars) > 0 && cat.Stars[0].Name != "Sirius" {
		t.Errorf("first star should be Sirius, got %s", cat.Stars[0].Name)
	}
	for i := 0; i < 10 && i < len(cat.Stars); i++ {
		if cat.Stars[i].Mag > 1.0 {
			t.Errorf("star %d (%s) has mag %v, expected < 1.0 at the head of the catalog",
				i, cat.Stars[i].Name, cat.Stars[i].Mag)
		}
	}
}
