package environment

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// astronomicalUnitKm is one AU, used to scale the unit Sun direction
// to an approximate ECI position.
const astronomicalUnitKm = 149597870.7

const obliquityJ2000Deg = 23.439291

// SunPositionECIKm returns a low-precision Sun position in the ECI
// frame (km), valid to about 0.01 degrees over the simulation's
// multi-year span, from the standard mean-longitude / mean-anomaly /
// ecliptic-longitude approximation (Astronomical Almanac low-precision
// formula).
func SunPositionECIKm(j2000Centuries float64) geom.Vector3 {
	julianDays := j2000Centuries * 36525.0

	meanLongitudeDeg := normalizeDegrees(280.460 + 0.9856474*julianDays)
	meanAnomalyDeg := normalizeDegrees(357.528 + 0.9856003*julianDays)
	meanAnomalyRad := meanAnomalyDeg * math.Pi / 180

	eclipticLongitudeDeg := meanLongitudeDeg +
		1.915*math.Sin(meanAnomalyRad) +
		0.020*math.Sin(2*meanAnomalyRad)
	eclipticLongitudeRad := eclipticLongitudeDeg * math.Pi / 180

	distanceAU := 1.00014 - 0.01671*math.Cos(meanAnomalyRad) - 0.00014*math.Cos(2*meanAnomalyRad)

	obliquityRad := obliquityJ2000Deg * math.Pi / 180

	cosL, sinL := math.Cos(eclipticLongitudeRad), math.Sin(eclipticLongitudeRad)
	cosE, sinE := math.Cos(obliquityRad), math.Sin(obliquityRad)

	return geom.Vector3{
		X: distanceAU * cosL,
		Y: distanceAU * sinL * cosE,
		Z: distanceAU * sinL * sinE,
	}.Scale(astronomicalUnitKm)
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
