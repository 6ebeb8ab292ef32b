package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oss-cubesat/fsw/internal/logging"
	"github.com/oss-cubesat/fsw/sim/actuators"
	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/environment"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
	"github.com/oss-cubesat/fsw/sim/sensors"
	"github.com/oss-cubesat/fsw/sim/spacecraft"
)

func newTestSimulator(dt float64) *Simulator {
	scCfg := spacecraft.Config{
		Inertia:        attitude.Diagonal(0.02, 0.02, 0.01),
		Orbit:          orbit.Config{EnableJ2: true},
		Magnetorquer:   actuators.DefaultMagnetorquerConfig,
		ReactionWheels: actuators.DefaultReactionWheelConfig,
	}
	sc := spacecraft.New(scCfg,
		orbit.State{Position: geom.Vector3{X: 6878.137}, Velocity: geom.Vector3{Y: 7.6126}},
		attitude.State{Quaternion: geom.IdentityQuaternion, BodyRate: geom.Vector3{X: 0.01, Y: -0.02, Z: 0.03}},
	)

	cfg := Config{
		DtSeconds:     dt,
		StartTime:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		OutputEveryN:  1,
		MagneticField: environment.DefaultIGRF13Dipole,
	}

	suite := Sensors{
		Magnetometer: sensors.NewMagnetometer("mtm", sensors.DefaultMagnetometerConfig, 1),
		Gyroscope:    sensors.NewGyroscope("gyro", sensors.DefaultGyroscopeConfig, 2),
		SunSensor:    sensors.NewSunSensor("sun", sensors.DefaultSunSensorConfig, 3),
		GPS:          sensors.NewGPS("gps", sensors.DefaultGPSConfig, 4),
	}

	return New(cfg, sc, suite, logging.Discard())
}

func TestSimulatorStepPreservesUnitQuaternion(t *testing.T) {
	sim := newTestSimulator(0.5)
	for i := 0; i < 200; i++ {
		sim.Step(i)
	}
	assert.InDelta(t, 1.0, sim.Spacecraft.Attitude.Quaternion.Norm(), 1e-9)
}

func TestSimulatorRunRecordsHistoryAtOutputRate(t *testing.T) {
	sim := newTestSimulator(1.0)
	sim.Config.OutputEveryN = 10
	history := sim.Run(100)
	assert.Equal(t, 10, len(history))
}

func TestSimulatorCallbackCommandTakesEffectNextTick(t *testing.T) {
	sim := newTestSimulator(1.0)

	sim.RegisterCallback(func(sc *spacecraft.Spacecraft, state SimulationState) {
		sc.Magnetorquer.Command(geom.Vector3{X: 0.01})
	})

	sim.Step(0)

	for i := 1; i < 50; i++ {
		sim.Step(i)
	}

	assert.InDelta(t, 0.01, sim.Spacecraft.Magnetorquer.Output().X, 1e-3)
}
