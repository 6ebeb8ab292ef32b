package sensors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oss-cubesat/fsw/sim/geom"
)

func TestMagnetometerIsDeterministicForSeed(t *testing.T) {
	field := geom.Vector3{X: 2e-5, Y: -1e-5, Z: 3e-5}

	a := NewMagnetometer("mtm-a", DefaultMagnetometerConfig, 42)
	b := NewMagnetometer("mtm-b", DefaultMagnetometerConfig, 42)

	for i := 0; i < 10; i++ {
		readingA, errA := a.Measure(field)
		readingB, errB := b.Measure(field)
		assert.NoError(t, errA)
		assert.NoError(t, errB)
		assert.Equal(t, readingA, readingB)
	}
}

func TestMagnetometerSaturates(t *testing.T) {
	cfg := DefaultMagnetometerConfig
	cfg.NoiseStdTesla = 0
	cfg.QuantizationLSB = 0
	cfg.SaturationTesla = 1e-4

	m := NewMagnetometer("mtm", cfg, 1)
	reading, err := m.Measure(geom.Vector3{X: 1.0})
	assert.NoError(t, err)
	assert.Equal(t, 1e-4, reading.X)
}

func TestMagnetometerDropoutReportsFault(t *testing.T) {
	m := NewMagnetometer("mtm", DefaultMagnetometerConfig, 1)
	m.Fault = FaultDropout

	reading, err := m.Measure(geom.Vector3{X: 1e-5})
	assert.Error(t, err)
	assert.True(t, math.IsNaN(reading.X))
}

func TestGyroscopeBiasRandomWalkAccumulates(t *testing.T) {
	g := NewGyroscope("gyro", DefaultGyroscopeConfig, 7)
	zero := geom.Vector3{}

	for i := 0; i < 1000; i++ {
		_, err := g.Measure(zero, 0.1)
		assert.NoError(t, err)
	}

	assert.NotEqual(t, geom.Vector3{}, g.Bias())
}

func TestGyroscopeStuckFaultFreezesReading(t *testing.T) {
	g := NewGyroscope("gyro", DefaultGyroscopeConfig, 7)
	first, err := g.Measure(geom.Vector3{X: 0.1}, 0.1)
	assert.NoError(t, err)

	g.Fault = FaultStuck
	second, err := g.Measure(geom.Vector3{X: 5.0}, 0.1)
	assert.Error(t, err)
	assert.Equal(t, first, second)
}

func TestSunSensorFailsInEclipse(t *testing.T) {
	s := NewSunSensor("sun", DefaultSunSensorConfig, 3)
	_, err := s.Measure(geom.Vector3{X: 1}, false)
	assert.Error(t, err)
}

func TestSunSensorReturnsUnitVectorWhenSunlit(t *testing.T) {
	s := NewSunSensor("sun", DefaultSunSensorConfig, 3)
	reading, err := s.Measure(geom.Vector3{X: 1}, true)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, reading.Norm(), 1e-9)
}

func TestGPSNoiseIsSmallRelativeToOrbitScale(t *testing.T) {
	g := NewGPS("gps", DefaultGPSConfig, 11)
	truePos := geom.Vector3{X: 6878.137, Y: 0, Z: 0}
	trueVel := geom.Vector3{X: 0, Y: 7.6, Z: 0}

	reading, err := g.Measure(truePos, trueVel)
	assert.NoError(t, err)
	assert.InDelta(t, truePos.X, reading.PositionECIKm.X, 1.0)
	assert.InDelta(t, trueVel.Y, reading.VelocityECIKmS.Y, 0.01)
}
