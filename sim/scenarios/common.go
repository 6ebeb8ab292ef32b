package scenarios

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/sim/actuators"
	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/environment"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
	"github.com/oss-cubesat/fsw/sim/orchestrator"
	"github.com/oss-cubesat/fsw/sim/sensors"
	"github.com/oss-cubesat/fsw/sim/spacecraft"
)

// defaultOrbitRadiusKm is the radius of the 500 km circular reference
// orbit used by every scenario; defaultOrbitState places it in the
// equatorial plane.
const defaultOrbitRadiusKm = 6878.137

// defaultSpacecraftConfig returns a representative 3U CubeSat
// configuration shared by every scenario.
func defaultSpacecraftConfig() spacecraft.Config {
	return spacecraft.Config{
		Inertia:        attitude.Diagonal(0.02, 0.02, 0.01),
		Orbit:          orbit.Config{EnableJ2: true, EnableDrag: true, Drag: orbit.DefaultDragConfig},
		Magnetorquer:   actuators.DefaultMagnetorquerConfig,
		ReactionWheels: actuators.DefaultReactionWheelConfig,
	}
}

// defaultOrbitState returns a circular 500 km equatorial orbit state.
func defaultOrbitState() orbit.State {
	v := orbit.CircularVelocity(defaultOrbitRadiusKm)
	return orbit.State{
		Position: geom.Vector3{X: defaultOrbitRadiusKm},
		Velocity: geom.Vector3{Y: v},
	}
}

// defaultSensorSuite builds a sensor suite seeded deterministically
// from seed, so scenario runs with the same seed reproduce exactly.
func defaultSensorSuite(seed int64) orchestrator.Sensors {
	return orchestrator.Sensors{
		Magnetometer: sensors.NewMagnetometer("mtm", sensors.DefaultMagnetometerConfig, seed+1),
		Gyroscope:    sensors.NewGyroscope("gyro", sensors.DefaultGyroscopeConfig, seed+2),
		SunSensor:    sensors.NewSunSensor("sun", sensors.DefaultSunSensorConfig, seed+3),
		GPS:          sensors.NewGPS("gps", sensors.DefaultGPSConfig, seed+4),
	}
}

// newSimulator builds a Simulator over a fresh spacecraft at the
// default reference orbit, with the given initial attitude, dt, and
// RNG seed.
func newSimulator(initialAttitude attitude.State, dtSeconds float64, seed int64, log logrus.FieldLogger) *orchestrator.Simulator {
	sc := spacecraft.New(defaultSpacecraftConfig(), defaultOrbitState(), initialAttitude)

	cfg := orchestrator.Config{
		DtSeconds:     dtSeconds,
		StartTime:     time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
		OutputEveryN:  1,
		MagneticField: environment.DefaultIGRF13Dipole,
	}

	return orchestrator.New(cfg, sc, defaultSensorSuite(seed), log)
}
