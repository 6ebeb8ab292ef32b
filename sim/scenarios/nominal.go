package scenarios

import (
	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orchestrator"
)

// NominalResult reports the outcome of a nominal-mode scenario run:
// just the recorded history, since nominal mode has no pass/fail
// criterion of its own.
type NominalResult struct {
	History []orchestrator.SimulationState
}

const nominalDurationS = 3 * 3600.0

// RunNominal runs the spacecraft for three simulated hours with no
// active attitude control, exercising the full environment/sensor/
// dynamics chain under ordinary conditions.
func RunNominal(seed int64, log logrus.FieldLogger) NominalResult {
	return RunNominalFor(seed, nominalDurationS, 1.0, log)
}

// RunNominalFor is RunNominal with an explicit duration and
// integration step.
func RunNominalFor(seed int64, durationS, dt float64, log logrus.FieldLogger) NominalResult {
	sim := newSimulator(attitude.State{Quaternion: geom.IdentityQuaternion}, dt, seed, log)
	return NominalResult{History: sim.Run(durationS)}
}
