package orchestrator

import (
	"time"

	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
	"github.com/oss-cubesat/fsw/sim/spacecraft"
)

func gravityGradientTorque(sc *spacecraft.Spacecraft, nadirBody geom.Vector3) geom.Vector3 {
	radiusKm := sc.Orbital.Position.Norm()
	return attitude.GravityGradientTorque(orbit.MuEarth, radiusKm, sc.Config.Inertia, nadirBody)
}

// attitudeStep propagates attitude by one tick using the total torque
// computed once at the top of the tick, held constant across the RK4
// sub-stages, matching the orchestrator's single torque evaluation
// per tick.
func attitudeStep(sc *spacecraft.Spacecraft, t time.Time, dt float64, totalTorque geom.Vector3) attitude.State {
	torqueAt := func(float64, attitude.State) geom.Vector3 { return totalTorque }
	return attitude.Step(sc.Config.Inertia, torqueAt, 0, dt, sc.Attitude)
}

func orbitStep(sc *spacecraft.Spacecraft, t time.Time, dt float64) orbit.State {
	return orbit.Step(sc.Config.Orbit, 0, dt, sc.Orbital)
}
