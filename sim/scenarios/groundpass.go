package scenarios

import (
	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/environment"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
	"github.com/oss-cubesat/fsw/sim/orchestrator"
)

// Pass is one contiguous visibility window, expressed as tick
// indices into the scenario's history.
type Pass struct {
	StartTick int
	EndTick   int
}

// GroundPassResult reports ground-station visibility windows over a
// scenario run.
type GroundPassResult struct {
	History []orchestrator.SimulationState
	Station environment.Station
	Passes  []Pass
}

// RunGroundPass runs the spacecraft for two orbital periods and
// reports every contiguous window during which it is visible above
// the default station's minimum elevation.
func RunGroundPass(seed int64, log logrus.FieldLogger) GroundPassResult {
	return RunGroundPassFor(seed, 2*orbit.Period(defaultOrbitRadiusKm), 1.0, log)
}

// RunGroundPassFor is RunGroundPass with an explicit duration and
// integration step.
func RunGroundPassFor(seed int64, durationS, dt float64, log logrus.FieldLogger) GroundPassResult {
	sim := newSimulator(attitude.State{Quaternion: geom.IdentityQuaternion}, dt, seed, log)
	history := sim.Run(durationS)

	station := environment.NewStation("mission-control", 0, 0, 0)

	var passes []Pass
	inPass := false
	var current Pass
	for i, state := range history {
		gmst := state.Environment.GMSTRadians
		visible := station.Visible(state.OrbitalState.Position, gmst)
		if visible && !inPass {
			current = Pass{StartTick: i, EndTick: i}
			inPass = true
		} else if visible && inPass {
			current.EndTick = i
		} else if !visible && inPass {
			passes = append(passes, current)
			inPass = false
		}
	}
	if inPass {
		passes = append(passes, current)
	}

	return GroundPassResult{History: history, Station: station, Passes: passes}
}
