package sensors

import (
	"math"
	"math/rand"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// MagnetometerConfig parameterises a three-axis magnetometer.
type MagnetometerConfig struct {
	NoiseStdTesla   float64 // 1-sigma white noise per axis
	ScaleFactor     float64 // multiplicative gain error, 1.0 = ideal
	QuantizationLSB float64 // tesla per quantisation step, 0 disables
	SaturationTesla float64 // absolute per-axis saturation, 0 disables
}

// DefaultMagnetometerConfig matches a typical CubeSat-grade part:
// a few hundred nanotesla of noise, negligible scale error.
var DefaultMagnetometerConfig = MagnetometerConfig{
	NoiseStdTesla:   2e-7,
	ScaleFactor:     1.0,
	QuantizationLSB: 1e-8,
	SaturationTesla: 8e-4,
}

// Magnetometer is a three-axis magnetic-field sensor.
type Magnetometer struct {
	Name   string
	Config MagnetometerConfig
	Fault  Fault

	rng  *rand.Rand
	last geom.Vector3
}

// NewMagnetometer builds a magnetometer with an independent,
// deterministic noise stream seeded by seed.
func NewMagnetometer(name string, cfg MagnetometerConfig, seed int64) *Magnetometer {
	return &Magnetometer{Name: name, Config: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Measure returns a noisy, scaled, quantised, saturated reading of
// the true body-frame field fieldBodyTesla.
func (m *Magnetometer) Measure(fieldBodyTesla geom.Vector3) (geom.Vector3, error) {
	switch m.Fault {
	case FaultDropout:
		return geom.Vector3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}, &SensorError{Name: m.Name, Kind: FaultDropout}
	case FaultStuck:
		return m.last, &SensorError{Name: m.Name, Kind: FaultStuck}
	}

	noiseStd := m.Config.NoiseStdTesla
	if m.Fault == FaultNoisy {
		noiseStd *= 10
	}

	scaled := fieldBodyTesla.Scale(m.Config.ScaleFactor)
	noisy := geom.Vector3{
		X: scaled.X + m.rng.NormFloat64()*noiseStd,
		Y: scaled.Y + m.rng.NormFloat64()*noiseStd,
		Z: scaled.Z + m.rng.NormFloat64()*noiseStd,
	}

	quantised := quantizeVector(noisy, m.Config.QuantizationLSB)
	saturated := saturateVector(quantised, m.Config.SaturationTesla)

	m.last = saturated
	return saturated, nil
}

func quantizeVector(v geom.Vector3, lsb float64) geom.Vector3 {
	if lsb <= 0 {
		return v
	}
	return geom.Vector3{
		X: math.Round(v.X/lsb) * lsb,
		Y: math.Round(v.Y/lsb) * lsb,
		Z: math.Round(v.Z/lsb) * lsb,
	}
}

func saturateVector(v geom.Vector3, limit float64) geom.Vector3 {
	if limit <= 0 {
		return v
	}
	return geom.Vector3{
		X: clamp(v.X, -limit, limit),
		Y: clamp(v.Y, -limit, limit),
		Z: clamp(v.Z, -limit, limit),
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
