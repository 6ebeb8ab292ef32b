// Package spacecraft aggregates the per-tick owned state of a single
// CubeSat: orbital state, attitude state, actuator commands, wheel
// momentum, and a disturbance torque set by the caller.
package spacecraft

import (
	"github.com/oss-cubesat/fsw/sim/actuators"
	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
)

// Config bundles the physical configuration of a spacecraft: its
// rigid-body inertia tensor, orbital perturbation settings, and
// actuator hardware parameters.
type Config struct {
	Inertia         attitude.Tensor
	Orbit           orbit.Config
	Magnetorquer    actuators.MagnetorquerConfig
	ReactionWheels  actuators.ReactionWheelConfig
}

// Spacecraft owns exactly one orbital state, one attitude state, and
// the actuators that act on them. It is created at simulator
// initialisation and mutated only by the orchestrator and actuator
// commands; callbacks receive a borrowed reference for the duration
// of a tick and must not retain it.
type Spacecraft struct {
	Config Config

	Orbital  orbit.State
	Attitude attitude.State

	Magnetorquer   *actuators.MagnetorquerSet
	ReactionWheels *actuators.ReactionWheelArray

	// DisturbanceTorque is the aggregated non-actuator, non-gravity-
	// gradient, non-magnetic torque (e.g. residual dipole, solar
	// pressure) for the current tick; set externally by the caller
	// before a tick if desired, otherwise zero.
	DisturbanceTorque geom.Vector3
}

// New builds a spacecraft with the given configuration and initial
// orbital/attitude state, with actuators at rest.
func New(cfg Config, initialOrbital orbit.State, initialAttitude attitude.State) *Spacecraft {
	return &Spacecraft{
		Config:         cfg,
		Orbital:        initialOrbital,
		Attitude:       initialAttitude,
		Magnetorquer:   actuators.NewMagnetorquerSet("mtq", cfg.Magnetorquer),
		ReactionWheels: actuators.NewReactionWheelArray("rw", cfg.ReactionWheels),
	}
}

// NadirBody returns the unit nadir direction (toward Earth's centre)
// expressed in the body frame, used by the gravity-gradient torque
// model.
func (s *Spacecraft) NadirBody() geom.Vector3 {
	nadirInertial := s.Orbital.Position.Scale(-1).Normalized()
	return s.Attitude.Quaternion.InverseRotateVector(nadirInertial)
}
