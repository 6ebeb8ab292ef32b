package sensors

import (
	"math"
	"math/rand"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// SunSensorConfig parameterises a coarse sun-direction sensor.
type SunSensorConfig struct {
	NoiseStdRad float64 // per-axis angular noise, 1-sigma, radians
}

// DefaultSunSensorConfig matches a typical coarse CubeSat sun sensor,
// accurate to a few degrees.
var DefaultSunSensorConfig = SunSensorConfig{NoiseStdRad: 0.03}

// SunSensor reports the unit sun-direction vector in the body frame.
// It cannot produce a reading while the spacecraft is in eclipse.
type SunSensor struct {
	Name   string
	Config SunSensorConfig
	Fault  Fault

	rng  *rand.Rand
	last geom.Vector3
}

// NewSunSensor builds a sun sensor with an independent deterministic
// noise stream seeded by seed.
func NewSunSensor(name string, cfg SunSensorConfig, seed int64) *SunSensor {
	return &SunSensor{Name: name, Config: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Measure returns a noisy unit sun-direction vector in the body
// frame, given the true direction and whether the spacecraft is
// currently sunlit. In eclipse it reports a fault and a NaN vector,
// since a coarse sun sensor has no signal without sunlight.
func (s *SunSensor) Measure(trueSunDirBody geom.Vector3, sunlit bool) (geom.Vector3, error) {
	if !sunlit {
		return geom.Vector3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}, &SensorError{Name: s.Name, Kind: FaultDropout}
	}

	switch s.Fault {
	case FaultDropout:
		return geom.Vector3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}, &SensorError{Name: s.Name, Kind: FaultDropout}
	case FaultStuck:
		return s.last, &SensorError{Name: s.Name, Kind: FaultStuck}
	}

	noiseStd := s.Config.NoiseStdRad
	if s.Fault == FaultNoisy {
		noiseStd *= 10
	}

	perturbed := geom.Vector3{
		X: trueSunDirBody.X + s.rng.NormFloat64()*noiseStd,
		Y: trueSunDirBody.Y + s.rng.NormFloat64()*noiseStd,
		Z: trueSunDirBody.Z + s.rng.NormFloat64()*noiseStd,
	}.Normalized()

	s.last = perturbed
	return perturbed, nil
}
