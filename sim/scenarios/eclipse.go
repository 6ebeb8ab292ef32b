package scenarios

import (
	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/sim/attitude"
	"github.com/oss-cubesat/fsw/sim/environment"
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/orbit"
	"github.com/oss-cubesat/fsw/sim/orchestrator"
)

// EclipseResult reports how many ticks of a scenario run fall in each
// shadow region, and the fraction of ticks spent in umbra.
type EclipseResult struct {
	History          []orchestrator.SimulationState
	SunlitTicks      int
	PenumbraTicks    int
	UmbraTicks       int
	UmbraFraction    float64
}

// RunEclipse runs the spacecraft for one full orbital period,
// classifying the eclipse state each tick.
func RunEclipse(seed int64, log logrus.FieldLogger) EclipseResult {
	return RunEclipseFor(seed, orbit.Period(defaultOrbitRadiusKm), 1.0, log)
}

// RunEclipseFor is RunEclipse with an explicit duration and
// integration step.
func RunEclipseFor(seed int64, durationS, dt float64, log logrus.FieldLogger) EclipseResult {
	sim := newSimulator(attitude.State{Quaternion: geom.IdentityQuaternion}, dt, seed, log)
	history := sim.Run(durationS)

	var result EclipseResult
	result.History = history
	for _, state := range history {
		switch state.Environment.Eclipse.Shadow {
		case environment.Sunlit:
			result.SunlitTicks++
		case environment.Penumbra:
			result.PenumbraTicks++
		case environment.Umbra:
			result.UmbraTicks++
		}
	}
	total := len(history)
	if total > 0 {
		result.UmbraFraction = float64(result.UmbraTicks) / float64(total)
	}
	return result
}
