// Package visualization derives the star/planet scene parameters and the
// simulated light curve for a candidate record.
package visualization

import (
	"math"

	"exoplanet-explorer/models"
)

const (
	StarSceneSize        = 2.5
	EarthRadiiPerSolar   = 109.2
	AnimationPeriod      = 60.0 // seconds per simulated orbit
	MinOrbitRadius       = 3.5
	MaxOrbitRadius       = 8.0
	orbitScale           = 5.0
	daysPerYear          = 365.25
	defaultStellarTemp   = 5778
	defaultOrbitalPeriod = 10
	defaultTransitDepth  = 0.01
)

type Star struct {
	SpectralClass
	Temperature   float64 `json:"temperature"`
	Radius        float64 `json:"radius"` // solar radii
	SceneSize     float64 `json:"scene_size"`
	RotationSpeed float64 `json:"rotation_speed"`
}

type Planet struct {
	PlanetType
	Radius        float64 `json:"radius"` // Earth radii
	Temperature   float64 `json:"temperature"`
	Insolation    float64 `json:"insolation"`
	SceneSize     float64 `json:"scene_size"`
	RotationSpeed float64 `json:"rotation_speed"`
	Roughness     float64 `json:"roughness"`
	Metalness     float64 `json:"metalness"`
}

type Orbit struct {
	PeriodDays      float64 `json:"period_days"`
	SemiMajorAxisAU float64 `json:"semi_major_axis_au"`
	Radius          float64 `json:"radius"` // scene units
}

type Transit struct {
	DepthPPM        float64 `json:"depth_ppm"`
	DepthFraction   float64 `json:"depth_fraction"`
	DurationHours   float64 `json:"duration_hours"`
	DetectionRadius float64 `json:"detection_radius"`
}

// Scene holds everything the renderer needs for one record.
type Scene struct {
	PlanetName string      `json:"planet_name"`
	Star       Star        `json:"star"`
	Planet     Planet      `json:"planet"`
	Orbit      Orbit       `json:"orbit"`
	Transit    Transit     `json:"transit"`
	Status     string      `json:"status"`
	Style      StatusStyle `json:"style"`
}

// SemiMajorAxis approximates a in AU from the period using Kepler's third
// law, a³ = T²·M with T in years and M in solar masses.
func SemiMajorAxis(periodDays, stellarMass float64) float64 {
	years := periodDays / daysPerYear
	return math.Cbrt(years * years * stellarMass)
}

// OrbitRadius maps a period onto the scene, clamped to [3.5, 8].
func OrbitRadius(periodDays float64) float64 {
	r := SemiMajorAxis(periodDays, 1) * orbitScale
	return math.Max(MinOrbitRadius, math.Min(r, MaxOrbitRadius))
}

// Derive computes the scene for a record. A nil record yields the default
// Sun-like scene.
func Derive(c models.Candidate, status models.AnalysisStatus) Scene {
	stellarRadius := c.FirstNonZero(1, "st_rad")
	stellarTemp := c.FirstNonZero(defaultStellarTemp, "st_teff", "koi_steff")
	planetRadius := c.FirstNonZero(1, "pl_rade", "koi_prad")
	period := c.FirstNonZero(defaultOrbitalPeriod, "pl_orbper", "koi_period")
	depth := c.FirstNonZero(defaultTransitDepth, "pl_trandep")
	duration := c.FirstNonZero(2, "pl_trandurh")
	teq := c.FirstNonZero(300, "pl_eqt")
	insolation := c.FirstNonZero(1, "pl_insol")

	planetSize := StarSceneSize * (planetRadius / EarthRadiiPerSolar) / stellarRadius
	scaledPlanet := math.Max(0.1, planetSize*1.5)

	starRotation := 0.002
	if stellarTemp > 6000 {
		starRotation = 0.005
	}
	planetRotation := 0.01
	if planetRadius > 0 {
		planetRotation = 0.02 / math.Sqrt(planetRadius)
	}
	roughness, metalness := 0.5, 0.1
	if planetRadius >= 3.5 {
		roughness, metalness = 0.8, 0.0
	}

	if status == "" {
		status = models.StatusInitial
	}

	return Scene{
		PlanetName: c.Name(),
		Star: Star{
			SpectralClass: ClassifyStar(stellarTemp),
			Temperature:   stellarTemp,
			Radius:        stellarRadius,
			SceneSize:     StarSceneSize,
			RotationSpeed: starRotation,
		},
		Planet: Planet{
			PlanetType:    ClassifyPlanet(planetRadius, teq),
			Radius:        planetRadius,
			Temperature:   teq,
			Insolation:    insolation,
			SceneSize:     scaledPlanet,
			RotationSpeed: planetRotation,
			Roughness:     roughness,
			Metalness:     metalness,
		},
		Orbit: Orbit{
			PeriodDays:      period,
			SemiMajorAxisAU: SemiMajorAxis(period, 1),
			Radius:          OrbitRadius(period),
		},
		Transit: Transit{
			DepthPPM:        depth,
			DepthFraction:   depth / 1e6,
			DurationHours:   duration,
			DetectionRadius: StarSceneSize + scaledPlanet,
		},
		Status: string(status),
		Style:  StyleFor(string(status)),
	}
}

// PlanetPosition returns the planet position t seconds into the animation.
// The orbit runs counter-clockwise seen from above, one lap per AnimationPeriod.
func (s Scene) PlanetPosition(t float64) (x, y, z float64) {
	angle := -(t * 2 * math.Pi / AnimationPeriod)
	return math.Cos(angle) * s.Orbit.Radius, 0, math.Sin(angle) * s.Orbit.Radius
}

// Transiting reports whether the planet sits between the camera (at negative
// z) and the star, overlapping its disc.
func (s Scene) Transiting(t float64) bool {
	x, y, z := s.PlanetPosition(t)
	return z < 0 && math.Hypot(x, y) < s.Transit.DetectionRadius
}

// Brightness is the relative stellar flux at time t.
func (s Scene) Brightness(t float64) float64 {
	if s.Transiting(t) {
		return 1 - s.Transit.DepthFraction
	}
	return 1
}
