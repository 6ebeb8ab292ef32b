package sensors

import (
	"math"
	"math/rand"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// GPSConfig parameterises a space-qualified GPS receiver reporting
// ECI position and velocity.
type GPSConfig struct {
	PositionNoiseStdKm   float64
	VelocityNoiseStdKmS  float64
}

// DefaultGPSConfig matches a typical CubeSat GPS receiver: 10 m (1-sigma)
// of position noise, 10 cm/s of velocity noise.
var DefaultGPSConfig = GPSConfig{
	PositionNoiseStdKm:  0.01,
	VelocityNoiseStdKmS: 0.0001,
}

// GPSReading is a single GPS fix.
type GPSReading struct {
	PositionECIKm geom.Vector3
	VelocityECIKmS geom.Vector3
}

// GPS is a space-qualified navigation receiver.
type GPS struct {
	Name   string
	Config GPSConfig
	Fault  Fault

	rng  *rand.Rand
	last GPSReading
}

// NewGPS builds a GPS receiver with an independent deterministic
// noise stream seeded by seed.
func NewGPS(name string, cfg GPSConfig, seed int64) *GPS {
	return &GPS{Name: name, Config: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Measure returns a noisy fix of the true orbital state.
func (g *GPS) Measure(truePositionKm, trueVelocityKmS geom.Vector3) (GPSReading, error) {
	switch g.Fault {
	case FaultDropout:
		nan := geom.Vector3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
		return GPSReading{PositionECIKm: nan, VelocityECIKmS: nan}, &SensorError{Name: g.Name, Kind: FaultDropout}
	case FaultStuck:
		return g.last, &SensorError{Name: g.Name, Kind: FaultStuck}
	}

	posNoiseStd := g.Config.PositionNoiseStdKm
	velNoiseStd := g.Config.VelocityNoiseStdKmS
	if g.Fault == FaultNoisy {
		posNoiseStd *= 10
		velNoiseStd *= 10
	}

	reading := GPSReading{
		PositionECIKm: geom.Vector3{
			X: truePositionKm.X + g.rng.NormFloat64()*posNoiseStd,
			Y: truePositionKm.Y + g.rng.NormFloat64()*posNoiseStd,
			Z: truePositionKm.Z + g.rng.NormFloat64()*posNoiseStd,
		},
		VelocityECIKmS: geom.Vector3{
			X: trueVelocityKmS.X + g.rng.NormFloat64()*velNoiseStd,
			Y: trueVelocityKmS.Y + g.rng.NormFloat64()*velNoiseStd,
			Z: trueVelocityKmS.Z + g.rng.NormFloat64()*velNoiseStd,
		},
	}

	g.last = reading
	return reading, nil
}
