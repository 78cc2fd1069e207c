package orbit

// Class categorizes planets for rendering glyphs.
type Class int

const (
	ClassInner Class = iota // Mercury, Venus, Earth, Mars
	ClassGiant              // Jupiter, Saturn, Uranus, Neptune
)

// Def is the static definition of a planet: orbital elements plus the
// descriptive fields the renderers and focus controller consume. Reference
// data only — never mutated after construction, safe for unsynchronized
// concurrent reads.
type Def struct {
	Name  string
	Code  string
	Class Class

	ColorHex string  // display color
	RadiusKm float64 // physical radius

	// Sidereal rotation period in hours; negative means retrograde spin
	// (Venus, Uranus).
	RotationPeriodHours float64

	Elements Elements
}

// Planets lists the eight major planets. Elements and secular rates are the
// Standish J2000 values (valid 1800 AD - 2050 AD, degrading gracefully
// outside), angles in degrees, rates per Julian century.
var Planets = []Def{
	{
		Name: "Mercury", Code: "MERC", Class: ClassInner,
		ColorHex: "#B5B5B5", RadiusKm: 2439.7, RotationPeriodHours: 1407.6,
		Elements: Elements{
			A: 0.38709927, E: 0.20563593, I: 7.00497902,
			L: 252.25032350, WBar: 77.45779628, O: 48.33076593,
			ADot: 0.00000037, EDot: 0.00001906, IDot: -0.00594749,
			LDot: 149472.67411175, WBarDot: 0.16047689, ODot: -0.12534081,
		},
	},
	{
		Name: "Venus", Code: "VEN", Class: ClassInner,
		ColorHex: "#E8CDA2", RadiusKm: 6051.8, RotationPeriodHours: -5832.5,
		Elements: Elements{
			A: 0.72333566, E: 0.00677672, I: 3.39467605,
			L: 181.97909950, WBar: 131.60246718, O: 76.67984255,
			ADot: 0.00000390, EDot: -0.00004107, IDot: -0.00078890,
			LDot: 58517.81538729, WBarDot: 0.00268329, ODot: -0.27769418,
		},
	},
	{
		Name: "Earth", Code: "EARTH", Class: ClassInner,
		ColorHex: "#2E86AB", RadiusKm: 6371.0, RotationPeriodHours: 23.9345,
		Elements: Elements{
			A: 1.00000261, E: 0.01671123, I: -0.00001531,
			L: 100.46457166, WBar: 102.93768193, O: 0.0,
			ADot: 0.00000562, EDot: -0.00004392, IDot: -0.01294668,
			LDot: 35999.37244981, WBarDot: 0.32327364, ODot: 0.0,
		},
	},
	{
		Name: "Mars", Code: "MARS", Class: ClassInner,
		ColorHex: "#C1440E", RadiusKm: 3389.5, RotationPeriodHours: 24.6229,
		Elements: Elements{
			A: 1.52371034, E: 0.09339410, I: 1.84969142,
			L: -4.55343205, WBar: -23.94362959, O: 49.55953891,
			ADot: 0.00001847, EDot: 0.00007882, IDot: -0.00813131,
			LDot: 19140.30268499, WBarDot: 0.44441088, ODot: -0.29257343,
		},
	},
	{
		Name: "Jupiter", Code: "JUP", Class: ClassGiant,
		ColorHex: "#C88B3A", RadiusKm: 69911, RotationPeriodHours: 9.925,
		Elements: Elements{
			A: 5.20288700, E: 0.04838624, I: 1.30439695,
			L: 34.39644051, WBar: 14.72847983, O: 100.47390909,
			ADot: -0.00011607, EDot: -0.00013253, IDot: -0.00183714,
			LDot: 3034.74612775, WBarDot: 0.21252668, ODot: 0.20469106,
		},
	},
	{
		Name: "Saturn", Code: "SAT", Class: ClassGiant,
		ColorHex: "#E4D191", RadiusKm: 58232, RotationPeriodHours: 10.656,
		Elements: Elements{
			A: 9.53667594, E: 0.05386179, I: 2.48599187,
			L: 49.95424423, WBar: 92.59887831, O: 113.66242448,
			ADot: -0.00125060, EDot: -0.00050991, IDot: 0.00193609,
			LDot: 1222.49362201, WBarDot: -0.41897216, ODot: -0.28867794,
		},
	},
	{
		Name: "Uranus", Code: "URA", Class: ClassGiant,
		ColorHex: "#7DE8E8", RadiusKm: 25362, RotationPeriodHours: -17.24,
		Elements: Elements{
			A: 19.18916464, E: 0.04725744, I: 0.77263783,
			L: 313.23810451, WBar: 170.95427630, O: 74.01692503,
			ADot: -0.00196176, EDot: -0.00004397, IDot: -0.00242939,
			LDot: 428.48202785, WBarDot: 0.40805281, ODot: 0.04240589,
		},
	},
	{
		Name: "Neptune", Code: "NEP", Class: ClassGiant,
		ColorHex: "#3F54BA", RadiusKm: 24622, RotationPeriodHours: 16.11,
		Elements: Elements{
			A: 30.06992276, E: 0.00859048, I: 1.77004347,
			L: -55.12002969, WBar: 44.96476227, O: 131.78422574,
			ADot: 0.00026291, EDot: 0.00005105, IDot: 0.00035372,
			LDot: 218.45945325, WBarDot: -0.32241464, ODot: -0.00508664,
		},
	},
}

// GetPlanet returns a planet definition by code.
func GetPlanet(code string) (Def, bool) {
	for _, p := range Planets {
		if p.Code == code {
			return p, true
		}
	}
	return Def{}, false
}
