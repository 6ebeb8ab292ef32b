package scenarios

import (
	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orchestrator"
)

// SafeModeResult reports the outcome of a safe-mode scenario run: the
// B-dot controller is used to passively stabilise the spacecraft, and
// the run is considered healthy if the recorded body rate never
// exceeds safeModeRateBoundRadS.
type SafeModeResult struct {
	History       []orchestrator.SimulationState
	MaxRateRadS   float64
	RemainedBounded bool
}

const safeModeDurationS = 1 * 3600.0
const safeModeRateBoundRadS = 0.2 // ~11.5 deg/s

// RunSafeMode runs the B-dot controller from a modest initial tumble
// for one simulated hour, the same control law used for detumble but
// invoked as the standing safe-mode attitude controller.
func RunSafeMode(seed int64, log logrus.FieldLogger) SafeModeResult {
	return RunSafeModeFor(seed, safeModeDurationS, 1.0, log)
}

// RunSafeModeFor is RunSafeMode with an explicit duration and
// integration step.
func RunSafeModeFor(seed int64, durationS, dt float64, log logrus.FieldLogger) SafeModeResult {
	initialRate := geom.Vector3{X: 0.05, Y: -0.03, Z: 0.02}

	sim := newSimulator(attitude.State{Quaternion: geom.IdentityQuaternion, BodyRate: initialRate}, dt, seed, log)
	controller := NewBDotController(DefaultBDotGain, dt)
	sim.RegisterCallback(controller.Callback())

	history := sim.Run(durationS)

	maxRate := 0.0
	for _, state := range history {
		if n := state.AttitudeState.BodyRate.Norm(); n > maxRate {
			maxRate = n
		}
	}

	return SafeModeResult{
		History:         history,
		MaxRateRadS:     maxRate,
		RemainedBounded: maxRate <= safeModeRateBoundRadS,
	}
}
