package environment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oss-cubesat/fsw/sim/geom"
)

func TestECEFECIRoundTrip(t *testing.T) {
	v := geom.Vector3{X: 1000, Y: 2000, Z: 3000}
	gmst := 1.234

	got := ECIToECEF(ECEFToECI(v, gmst), gmst)
	assert.InDelta(t, v.X, got.X, 1e-9)
	assert.InDelta(t, v.Y, got.Y, 1e-9)
	assert.InDelta(t, v.Z, got.Z, 1e-9)
}

func TestEclipseTimingMatchesCylindricalApproximation(t *testing.T) {
	const orbitRadiusKm = 6878.137 // 500 km altitude, circular
	sunPos := geom.Vector3{X: astronomicalUnitKm, Y: 0, Z: 0}

	const samples = 100000
	eclipsed := 0
	for i := 0; i < samples; i++ {
		theta := 2 * math.Pi * float64(i) / samples
		pos := geom.Vector3{X: orbitRadiusKm * math.Cos(theta), Y: orbitRadiusKm * math.Sin(theta), Z: 0}
		if Classify(pos, sunPos).Shadow != Sunlit {
			eclipsed++
		}
	}
	gotFraction := float64(eclipsed) / samples

	wantFraction := math.Acos(EarthRadiusKm/orbitRadiusKm) / math.Pi

	assert.InEpsilon(t, wantFraction, gotFraction, 0.05)
}

func TestMagneticFieldMagnitudeIsLowEarthOrbitPlausible(t *testing.T) {
	pos := geom.Vector3{X: 6878.137, Y: 0, Z: 0}
	b := DefaultIGRF13Dipole.FieldECITesla(pos, 0, 2025.0)

	// Low Earth orbit field strength is on the order of 2e-5 to 6e-5 T.
	mag := b.Norm()
	assert.Greater(t, mag, 1e-5)
	assert.Less(t, mag, 1e-4)
}

func TestGroundStationOverheadIsVisible(t *testing.T) {
	station := NewStation("equator-station", 0, 0, 0)
	overhead := geom.Vector3{X: EarthRadiusKm + 500, Y: 0, Z: 0}

	assert.True(t, station.Visible(overhead, 0))
	look := station.Observe(overhead, 0)
	assert.InDelta(t, 90.0, look.ElevationDeg, 1e-6)
	assert.InDelta(t, 500.0, look.RangeKm, 1e-6)
}

func TestGroundStationBehindEarthIsNotVisible(t *testing.T) {
	station := NewStation("equator-station", 0, 0, 0)
	behindEarth := geom.Vector3{X: -(EarthRadiusKm + 500), Y: 0, Z: 0}

	assert.False(t, station.Visible(behindEarth, 0))
}

func TestSunPositionIsOneAstronomicalUnitFromEarth(t *testing.T) {
	pos := SunPositionECIKm(0.25)
	assert.InEpsilon(t, astronomicalUnitKm, pos.Norm(), 0.02)
}
