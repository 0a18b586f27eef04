package visualization

import "math"

// SpectralClass is one stellar temperature bucket.
type SpectralClass struct {
	Class     string `json:"class"`
	Color     string `json:"color"`
	ColorName string `json:"color_name"`
	// MaxTemp is the exclusive upper bound in Kelvin.
	MaxTemp float64 `json:"-"`
}

// Ordered by increasing temperature.
var spectralClasses = []SpectralClass{
	{Class: "L/T", Color: "#d32f2f", ColorName: "Dark Red", MaxTemp: 2400},
	{Class: "M", Color: "#ff5722", ColorName: "Red-Orange", MaxTemp: 3700},
	{Class: "K", Color: "#ff9800", ColorName: "Orange", MaxTemp: 5200},
	{Class: "G", Color: "#ffeb3b", ColorName: "Yellow", MaxTemp: 6000},
	{Class: "F", Color: "#ffffe0", ColorName: "Yellow-White", MaxTemp: 7500},
	{Class: "A", Color: "#fafafa", ColorName: "White", MaxTemp: 10000},
	{Class: "B", Color: "#64b5f6", ColorName: "Blue-White", MaxTemp: 30000},
	{Class: "O", Color: "#2196f3", ColorName: "Blue", MaxTemp: math.Inf(1)},
}

// ClassifyStar returns the spectral class for a stellar effective temperature.
func ClassifyStar(temp float64) SpectralClass {
	for _, sc := range spectralClasses {
		if temp < sc.MaxTemp {
			return sc
		}
	}
	return spectralClasses[len(spectralClasses)-1]
}

// PlanetType is one radius band × temperature bucket.
type PlanetType struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type warmth struct {
	// matches reports whether an equilibrium temperature falls in the bucket.
	matches func(teq float64) bool
	planet  PlanetType
}

type radiusBand struct {
	maxRadius float64 // exclusive, Earth radii
	buckets   []warmth
}

func above(t float64) func(float64) bool { return func(teq float64) bool { return teq > t } }

func between(lo, hi float64) func(float64) bool {
	return func(teq float64) bool { return teq > lo && teq < hi }
}

func always(float64) bool { return true }

// Buckets are checked in order; the last bucket of each band always matches.
var radiusBands = []radiusBand{
	{maxRadius: 1.5, buckets: []warmth{
		{above(600), PlanetType{"Hot Rocky", "#c62828"}},
		{between(273, 373), PlanetType{"Earth-like", "#1976d2"}},
		{always, PlanetType{"Cold Rocky", "#5d4037"}},
	}},
	{maxRadius: 3.5, buckets: []warmth{
		{above(1000), PlanetType{"Hot Super-Earth", "#e64a19"}},
		{above(400), PlanetType{"Warm Super-Earth", "#f57c00"}},
		{always, PlanetType{"Cold Super-Earth", "#1976d2"}},
	}},
	{maxRadius: 8, buckets: []warmth{
		{above(1000), PlanetType{"Hot Neptune", "#d84315"}},
		{always, PlanetType{"Neptune-like", "#0d47a1"}},
	}},
	{maxRadius: math.Inf(1), buckets: []warmth{
		{above(1500), PlanetType{"Hot Jupiter", "#bf360c"}},
		{above(1000), PlanetType{"Warm Jupiter", "#f57f17"}},
		{always, PlanetType{"Jupiter-like", "#6d4c41"}},
	}},
}

// ClassifyPlanet returns the planet type for a radius (Earth radii) and an
// equilibrium temperature (Kelvin).
func ClassifyPlanet(radius, teq float64) PlanetType {
	for _, band := range radiusBands {
		if radius >= band.maxRadius {
			continue
		}
		for _, b := range band.buckets {
			if b.matches(teq) {
				return b.planet
			}
		}
	}
	return PlanetType{Type: "Unknown", Color: "#2196f3"}
}

// StatusStyle is the planet styling for an analysis status.
type StatusStyle struct {
	PlanetColor       string  `json:"planet_color"`
	OrbitColor        string  `json:"orbit_color"`
	Opacity           float64 `json:"opacity"`
	Emissive          string  `json:"emissive"`
	EmissiveIntensity float64 `json:"emissive_intensity"`
	Pulse             bool    `json:"pulse"`
}

var statusStyles = map[string]StatusStyle{
	"initial":        {PlanetColor: "#aaaaaa", OrbitColor: "#666666", Opacity: 0.7, Emissive: "#000000"},
	"analyzing":      {PlanetColor: "#aaaaaa", OrbitColor: "#666666", Opacity: 1.0, Emissive: "#000000", Pulse: true},
	"confirmed":      {PlanetColor: "#00ff88", OrbitColor: "#00ff88", Opacity: 1.0, Emissive: "#00ff88", EmissiveIntensity: 0.2},
	"false_positive": {PlanetColor: "#ff3366", OrbitColor: "#ff3366", Opacity: 0.5, Emissive: "#ff3366", EmissiveIntensity: 0.15},
}

// StyleFor returns the styling for status, falling back to "initial".
func StyleFor(status string) StatusStyle {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return statusStyles["initial"]
}
