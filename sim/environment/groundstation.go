package environment

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// defaultMinElevationDeg is the minimum elevation angle above the
// local horizon at which a ground station is considered to have a
// usable line of sight to the spacecraft.
const defaultMinElevationDeg = 10.0

// Station is a ground station fixed on the rotating Earth, specified
// by geodetic latitude/longitude (degrees) and altitude above a
// spherical Earth (km).
type Station struct {
	Name            string
	LatitudeDeg     float64
	LongitudeDeg    float64
	AltitudeKm      float64
	MinElevationDeg float64
}

// NewStation builds a Station with the default minimum-elevation
// visibility threshold.
func NewStation(name string, latDeg, lonDeg, altKm float64) Station {
	return Station{Name: name, LatitudeDeg: latDeg, LongitudeDeg: lonDeg, AltitudeKm: altKm, MinElevationDeg: defaultMinElevationDeg}
}

// positionECEFKm returns the station's fixed ECEF position under a
// spherical-Earth approximation.
func (s Station) positionECEFKm() geom.Vector3 {
	latRad := s.LatitudeDeg * math.Pi / 180
	lonRad := s.LongitudeDeg * math.Pi / 180
	r := EarthRadiusKm + s.AltitudeKm

	cosLat, sinLat := math.Cos(latRad), math.Sin(latRad)
	cosLon, sinLon := math.Cos(lonRad), math.Sin(lonRad)

	return geom.Vector3{
		X: r * cosLat * cosLon,
		Y: r * cosLat * sinLon,
		Z: r * sinLat,
	}
}

// enuBasis returns the station's local East/North/Up unit vectors
// expressed in ECEF.
func (s Station) enuBasis() (east, north, up geom.Vector3) {
	latRad := s.LatitudeDeg * math.Pi / 180
	lonRad := s.LongitudeDeg * math.Pi / 180

	cosLat, sinLat := math.Cos(latRad), math.Sin(latRad)
	cosLon, sinLon := math.Cos(lonRad), math.Sin(lonRad)

	east = geom.Vector3{X: -sinLon, Y: cosLon, Z: 0}
	north = geom.Vector3{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	up = geom.Vector3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
	return east, north, up
}

// LookAngles is a station-relative observation: range, elevation, and
// azimuth.
type LookAngles struct {
	RangeKm      float64
	ElevationDeg float64
	AzimuthDeg   float64
}

// Observe computes the station's look angles to a spacecraft at
// satPosECIKm, given the current GMST used to rotate the station's
// fixed ECEF position into the ECI frame.
func (s Station) Observe(satPosECIKm geom.Vector3, gmstRad float64) LookAngles {
	stationECI := ECEFToECI(s.positionECEFKm(), gmstRad)
	lineOfSightECI := satPosECIKm.Sub(stationECI)
	rangeKm := lineOfSightECI.Norm()

	eastECEF, northECEF, upECEF := s.enuBasis()
	east := ECEFToECI(eastECEF, gmstRad)
	north := ECEFToECI(northECEF, gmstRad)
	up := ECEFToECI(upECEF, gmstRad)

	e := lineOfSightECI.Dot(east)
	n := lineOfSightECI.Dot(north)
	u := lineOfSightECI.Dot(up)

	horizontalRange := math.Hypot(e, n)
	elevationDeg := math.Atan2(u, horizontalRange) * 180 / math.Pi
	azimuthDeg := math.Mod(math.Atan2(e, n)*180/math.Pi+360, 360)

	return LookAngles{RangeKm: rangeKm, ElevationDeg: elevationDeg, AzimuthDeg: azimuthDeg}
}

// Visible reports whether the spacecraft is above the station's
// minimum-elevation visibility threshold.
func (s Station) Visible(satPosECIKm geom.Vector3, gmstRad float64) bool {
	threshold := s.MinElevationDeg
	if threshold == 0 {
		threshold = defaultMinElevationDeg
	}
	return s.Observe(satPosECIKm, gmstRad).ElevationDeg >= threshold
}
