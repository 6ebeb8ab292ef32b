package sensors

import (
	"math"
	"math/rand"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// GyroscopeConfig parameterises a three-axis rate gyro with a random-
// walk bias, the dominant error source over simulation timescales.
type GyroscopeConfig struct {
	NoiseStdRadS       float64 // angle random walk, 1-sigma per axis
	BiasRandomWalkStd  float64 // bias random walk coefficient, rad/s per sqrt(s)
	ScaleFactor        float64
	SaturationRadS     float64
}

// DefaultGyroscopeConfig matches a typical MEMS CubeSat gyro.
var DefaultGyroscopeConfig = GyroscopeConfig{
	NoiseStdRadS:      2e-4,
	BiasRandomWalkStd: 1e-6,
	ScaleFactor:       1.0,
	SaturationRadS:    8.7, // ~500 deg/s
}

// Gyroscope is a three-axis angular rate sensor with a slowly
// evolving bias, mutated per measurement.
type Gyroscope struct {
	Name   string
	Config GyroscopeConfig
	Fault  Fault

	rng  *rand.Rand
	bias geom.Vector3
	last geom.Vector3
}

// NewGyroscope builds a gyroscope with an independent deterministic
// noise stream seeded by seed and zero initial bias.
func NewGyroscope(name string, cfg GyroscopeConfig, seed int64) *Gyroscope {
	return &Gyroscope{Name: name, Config: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Measure advances the bias random walk by dt and returns a noisy,
// biased, scaled, saturated reading of the true body rate.
func (g *Gyroscope) Measure(trueRateRadS geom.Vector3, dt float64) (geom.Vector3, error) {
	switch g.Fault {
	case FaultDropout:
		return geom.Vector3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}, &SensorError{Name: g.Name, Kind: FaultDropout}
	case FaultStuck:
		return g.last, &SensorError{Name: g.Name, Kind: FaultStuck}
	}

	walkStd := g.Config.BiasRandomWalkStd * math.Sqrt(dt)
	g.bias = geom.Vector3{
		X: g.bias.X + g.rng.NormFloat64()*walkStd,
		Y: g.bias.Y + g.rng.NormFloat64()*walkStd,
		Z: g.bias.Z + g.rng.NormFloat64()*walkStd,
	}

	noiseStd := g.Config.NoiseStdRadS
	if g.Fault == FaultNoisy {
		noiseStd *= 10
	}

	scaled := trueRateRadS.Scale(g.Config.ScaleFactor)
	reading := geom.Vector3{
		X: scaled.X + g.bias.X + g.rng.NormFloat64()*noiseStd,
		Y: scaled.Y + g.bias.Y + g.rng.NormFloat64()*noiseStd,
		Z: scaled.Z + g.bias.Z + g.rng.NormFloat64()*noiseStd,
	}

	saturated := saturateVector(reading, g.Config.SaturationRadS)
	g.last = saturated
	return saturated, nil
}

// Bias returns the gyroscope's current accumulated bias state.
func (g *Gyroscope) Bias() geom.Vector3 { return g.bias }
