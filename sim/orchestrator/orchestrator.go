// Package orchestrator implements the fixed-step simulation loop that
// couples orbital dynamics, attitude dynamics, environment models, and
// sensor/actuator models into a single deterministic tick.
package orchestrator

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/ground/ccsds"
	"github.com/oss-cubesat/fsw/sim/environment"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
	"github.com/oss-cubesat/fsw/sim/sensors"
	"github.com/oss-cubesat/fsw/sim/spacecraft"
)

// Sensors bundles the optional onboard sensor suite read each tick.
// Any field left nil is skipped.
type Sensors struct {
	Magnetometer *sensors.Magnetometer
	Gyroscope    *sensors.Gyroscope
	SunSensor    *sensors.SunSensor
	GPS          *sensors.GPS
}

// SensorReadings is the per-tick output of the onboard sensor suite;
// a non-nil Err on a field means that reading faulted this tick.
type SensorReadings struct {
	MagnetometerBody geom.Vector3
	MagnetometerErr  error
	GyroscopeBody    geom.Vector3
	GyroscopeErr     error
	SunDirBody       geom.Vector3
	SunSensorErr     error
	GPSReading       sensors.GPSReading
	GPSErr           error
}

// EnvironmentState is the per-tick computed environment: the magnetic
// field and Sun direction, both in body and inertial frames, and the
// eclipse classification.
type EnvironmentState struct {
	JulianDate       float64
	GMSTRadians      float64
	MagneticFieldECI geom.Vector3 // tesla
	MagneticFieldBody geom.Vector3
	SunDirECI        geom.Vector3
	SunDirBody       geom.Vector3
	Eclipse          environment.EclipseState
}

// SimulationState is an immutable snapshot of the spacecraft and its
// environment at one instant, the unit appended to Simulator history.
type SimulationState struct {
	ElapsedSeconds float64
	Environment    EnvironmentState
	Sensors        SensorReadings
	OrbitalState   orbit.State
	AttitudeState  struct {
		Quaternion geom.Quaternion
		BodyRate   geom.Vector3
	}
	WheelMomentum geom.Vector3
}

// StepCallback observes a completed tick's snapshot and may issue new
// actuator commands for the next tick; it must not mutate the
// integrated orbital/attitude state directly and must not retain sc
// beyond the call.
type StepCallback func(sc *spacecraft.Spacecraft, state SimulationState)

// Config parameterises a Simulator run.
type Config struct {
	DtSeconds      float64
	StartTime      time.Time
	OutputEveryN   int // append to history every N ticks; 0 means every tick
	MagneticField  environment.DipoleConfig
	GroundStations []environment.Station
}

// Simulator is the fixed-step orchestrator. It owns no spacecraft
// state directly: the Spacecraft pointer it ticks is supplied by the
// caller and mutated in place.
type Simulator struct {
	Config     Config
	Spacecraft *spacecraft.Spacecraft
	Sensors    Sensors

	log       logrus.FieldLogger
	elapsed   float64
	history   []SimulationState
	callbacks []StepCallback
}

// New builds a Simulator ticking sc with the given configuration and
// sensor suite.
func New(cfg Config, sc *spacecraft.Spacecraft, sensorSuite Sensors, log logrus.FieldLogger) *Simulator {
	return &Simulator{Config: cfg, Spacecraft: sc, Sensors: sensorSuite, log: log}
}

// RegisterCallback appends cb to the ordered list of step callbacks
// invoked after every tick's snapshot is built.
func (s *Simulator) RegisterCallback(cb StepCallback) {
	s.callbacks = append(s.callbacks, cb)
}

// History returns the snapshots recorded so far, at the configured
// output rate.
func (s *Simulator) History() []SimulationState { return s.history }

// ElapsedSeconds returns simulated time elapsed since the Simulator
// was created.
func (s *Simulator) ElapsedSeconds() float64 { return s.elapsed }

// Step advances the simulation by exactly one fixed step, in the
// order: read time, compute environment, run sensors, update
// actuators (which apply the previous tick's commanded values),
// propagate attitude, propagate orbit, snapshot, advance clock.
// Actuator commands issued by callbacks during this Step take effect
// only on the next Step's actuator update, making the simulation
// feed-forward and reproducible.
func (s *Simulator) Step(tickIndex int) SimulationState {
	dt := s.Config.DtSeconds
	t := s.Config.StartTime.Add(time.Duration(s.elapsed * float64(time.Second)))

	env := s.computeEnvironment(t)

	readings := s.readSensors(env, dt)

	magnetorquerOutput, _ := s.Spacecraft.Magnetorquer.Update(dt)
	wheelTorque, _ := s.Spacecraft.ReactionWheels.Update(dt)
	magneticTorque := magnetorquerOutput.Cross(env.MagneticFieldBody)

	nadirBody := s.Spacecraft.NadirBody()
	gravityGradient := gravityGradientTorque(s.Spacecraft, nadirBody)
	totalTorque := gravityGradient.Add(magneticTorque).Add(s.Spacecraft.DisturbanceTorque).Sub(wheelTorque)

	s.Spacecraft.Attitude = attitudeStep(s.Spacecraft, t, dt, totalTorque)
	s.Spacecraft.Orbital = orbitStep(s.Spacecraft, t, dt)

	state := SimulationState{
		ElapsedSeconds: s.elapsed,
		Environment:    env,
		Sensors:        readings,
		OrbitalState:   s.Spacecraft.Orbital,
		WheelMomentum:  s.Spacecraft.ReactionWheels.Momentum(),
	}
	state.AttitudeState.Quaternion = s.Spacecraft.Attitude.Quaternion
	state.AttitudeState.BodyRate = s.Spacecraft.Attitude.BodyRate

	outputEvery := s.Config.OutputEveryN
	if outputEvery <= 0 {
		outputEvery = 1
	}
	if tickIndex%outputEvery == 0 {
		s.history = append(s.history, state)
	}

	for _, cb := range s.callbacks {
		cb(s.Spacecraft, state)
	}

	s.elapsed += dt
	return state
}

// Run advances the simulation by durationSeconds / dt ticks and
// returns the recorded history.
func (s *Simulator) Run(durationSeconds float64) []SimulationState {
	steps := int(math.Round(durationSeconds / s.Config.DtSeconds))
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"duration_s": durationSeconds, "dt_s": s.Config.DtSeconds, "steps": steps}).Info("starting simulation run")
	}
	for i := 0; i < steps; i++ {
		s.Step(i)
	}
	if s.log != nil {
		s.log.WithField("snapshots", len(s.history)).Info("simulation run complete")
	}
	return s.history
}

func (s *Simulator) computeEnvironment(t time.Time) EnvironmentState {
	jd := ccsds.JulianDate(t)
	gmst := ccsds.GMSTRadians(jd)
	yearFraction := 2000.0 + (jd-2451545.0)/365.25

	bECI := s.Config.MagneticField.FieldECITesla(s.Spacecraft.Orbital.Position, gmst, yearFraction)
	bBody := s.Spacecraft.Attitude.Quaternion.InverseRotateVector(bECI)

	sunECI := environment.SunPositionECIKm(ccsds.J2000Centuries(jd))
	sunDirECI := sunECI.Sub(s.Spacecraft.Orbital.Position).Normalized()
	sunDirBody := s.Spacecraft.Attitude.Quaternion.InverseRotateVector(sunDirECI)

	eclipse := environment.Classify(s.Spacecraft.Orbital.Position, sunECI)

	return EnvironmentState{
		JulianDate:        jd,
		GMSTRadians:       gmst,
		MagneticFieldECI:  bECI,
		MagneticFieldBody: bBody,
		SunDirECI:         sunDirECI,
		SunDirBody:        sunDirBody,
		Eclipse:           eclipse,
	}
}

func (s *Simulator) readSensors(env EnvironmentState, dt float64) SensorReadings {
	var out SensorReadings
	if s.Sensors.Magnetometer != nil {
		out.MagnetometerBody, out.MagnetometerErr = s.Sensors.Magnetometer.Measure(env.MagneticFieldBody)
	}
	if s.Sensors.Gyroscope != nil {
		out.GyroscopeBody, out.GyroscopeErr = s.Sensors.Gyroscope.Measure(s.Spacecraft.Attitude.BodyRate, dt)
	}
	if s.Sensors.SunSensor != nil {
		out.SunDirBody, out.SunSensorErr = s.Sensors.SunSensor.Measure(env.SunDirBody, env.Eclipse.Shadow == environment.Sunlit)
	}
	if s.Sensors.GPS != nil {
		out.GPSReading, out.GPSErr = s.Sensors.GPS.Measure(s.Spacecraft.Orbital.Position, s.Spacecraft.Orbital.Velocity)
	}
	return out
}
