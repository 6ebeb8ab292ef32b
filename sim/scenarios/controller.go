// Package scenarios builds pre-configured Simulator runs matching the
// orchestrator binary's `--scenario` surface: detumble, nominal,
// eclipse, safe-mode, and ground-pass.
package scenarios

import (
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orchestrator"
	"github.com/oss-cubesat/fsw/sim/spacecraft"
)

// BDotController implements the classic magnetic detumble law
// m = -k * Bdot, estimating Bdot by finite difference of the
// body-frame field between consecutive ticks.
type BDotController struct {
	GainAm2PerTeslaPerSecond float64
	DtSeconds                float64

	previousField geom.Vector3
	haveField     bool
}

// DefaultBDotGain is tuned to drive the magnetorquer near saturation
// during the high-rate phase of detumble, converging well inside the
// scenario's two-hour budget.
const DefaultBDotGain = 5e5

// NewBDotController builds a B-dot controller with the given gain and
// tick period.
func NewBDotController(gain, dt float64) *BDotController {
	return &BDotController{GainAm2PerTeslaPerSecond: gain, DtSeconds: dt}
}

// Callback returns the orchestrator.StepCallback implementing the
// B-dot law: it commands the magnetorquer from the field derivative
// observed this tick, which (per the orchestrator's ordering) takes
// effect starting the following tick.
func (c *BDotController) Callback() orchestrator.StepCallback {
	return func(sc *spacecraft.Spacecraft, state orchestrator.SimulationState) {
		field := state.Environment.MagneticFieldBody
		if c.haveField {
			bdot := field.Sub(c.previousField).Scale(1 / c.DtSeconds)
			sc.Magnetorquer.Command(bdot.Scale(-c.GainAm2PerTeslaPerSecond))
		}
		c.previousField = field
		c.haveField = true
	}
}
