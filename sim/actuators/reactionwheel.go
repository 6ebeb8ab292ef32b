package actuators

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// ReactionWheelConfig parameterises a reaction-wheel array with one
// wheel per body axis.
type ReactionWheelConfig struct {
	MaxTorqueNm     float64
	MaxMomentumNms  float64
	TimeConstantS   float64
	FrictionTorqueNm float64 // Coulomb (constant-magnitude) friction opposing spin
}

// DefaultReactionWheelConfig matches a typical small-satellite wheel.
var DefaultReactionWheelConfig = ReactionWheelConfig{
	MaxTorqueNm:      0.001,
	MaxMomentumNms:   0.01,
	TimeConstantS:    0.02,
	FrictionTorqueNm: 1e-6,
}

// ReactionWheelArray is a three-axis reaction-wheel array. Each axis
// tracks its own momentum state; commanded torque is applied with
// first-order lag, Coulomb friction opposes existing spin, and
// momentum saturates at MaxMomentumNms.
type ReactionWheelArray struct {
	Name   string
	Config ReactionWheelConfig
	Fault  Fault

	commanded geom.Vector3
	torque    geom.Vector3
	momentum  geom.Vector3
}

// NewReactionWheelArray builds a reaction-wheel array at zero spin.
func NewReactionWheelArray(name string, cfg ReactionWheelConfig) *ReactionWheelArray {
	return &ReactionWheelArray{Name: name, Config: cfg}
}

// Command sets the desired torque (per axis) for the next Update.
func (w *ReactionWheelArray) Command(torqueNm geom.Vector3) {
	w.commanded = geom.Vector3{
		X: clamp(torqueNm.X, -w.Config.MaxTorqueNm, w.Config.MaxTorqueNm),
		Y: clamp(torqueNm.Y, -w.Config.MaxTorqueNm, w.Config.MaxTorqueNm),
		Z: clamp(torqueNm.Z, -w.Config.MaxTorqueNm, w.Config.MaxTorqueNm),
	}
}

// Update advances the commanded torque through first-order lag,
// integrates wheel momentum against Coulomb friction, and saturates
// at MaxMomentumNms (clamping the torque that would otherwise push
// momentum past the limit). It returns the torque actually applied to
// the spacecraft body (the reaction the wheels exert, per Newton's
// third law, is the negative of this in attitude.TotalTorque).
func (w *ReactionWheelArray) Update(dt float64) (geom.Vector3, error) {
	if w.Fault == FaultStuckOff {
		w.torque = geom.Zero
		return w.torque, nil
	}

	target := w.commanded
	if w.Fault == FaultDegraded {
		target = target.Scale(0.5)
	}
	if w.Fault != FaultStuckOn {
		alpha := 1 - math.Exp(-dt/w.Config.TimeConstantS)
		w.torque = w.torque.Add(target.Sub(w.torque).Scale(alpha))
	}

	friction := frictionTorque(w.momentum, w.Config.FrictionTorqueNm)
	net := w.torque.Sub(friction)

	candidate := w.momentum.Add(net.Scale(dt))

	var saturationErr error
	limit := w.Config.MaxMomentumNms
	if math.Abs(candidate.X) > limit || math.Abs(candidate.Y) > limit || math.Abs(candidate.Z) > limit {
		saturationErr = &Saturated{Name: w.Name, Axis: saturatedAxis(candidate, limit)}
	}
	previous := w.momentum
	w.momentum = geom.Vector3{
		X: clamp(candidate.X, -limit, limit),
		Y: clamp(candidate.Y, -limit, limit),
		Z: clamp(candidate.Z, -limit, limit),
	}

	// On a saturated axis only the torque that brings the momentum to
	// the limit is applied.
	applied := w.torque
	if saturationErr != nil && dt > 0 {
		applied = w.momentum.Sub(previous).Scale(1 / dt).Add(friction)
	}
	return applied, saturationErr
}

// Momentum returns the array's current per-axis angular momentum.
func (w *ReactionWheelArray) Momentum() geom.Vector3 { return w.momentum }

func frictionTorque(momentum geom.Vector3, magnitude float64) geom.Vector3 {
	return geom.Vector3{
		X: sign(momentum.X) * magnitude,
		Y: sign(momentum.Y) * magnitude,
		Z: sign(momentum.Z) * magnitude,
	}
}
