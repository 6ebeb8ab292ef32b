package actuators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oss-cubesat/fsw/sim/geom"
)

func TestMagnetorquerApproachesCommandWithLag(t *testing.T) {
	m := NewMagnetorquerSet("mtq", DefaultMagnetorquerConfig)
	m.Command(geom.Vector3{X: 0.1})

	var out geom.Vector3
	var err error
	for i := 0; i < 1000; i++ {
		out, err = m.Update(0.01)
		assert.NoError(t, err)
	}
	assert.InDelta(t, 0.1, out.X, 1e-6)
}

func TestMagnetorquerSaturates(t *testing.T) {
	cfg := DefaultMagnetorquerConfig
	cfg.TimeConstantS = 0.001
	m := NewMagnetorquerSet("mtq", cfg)
	m.Command(geom.Vector3{X: 10})

	var out geom.Vector3
	var err error
	for i := 0; i < 1000; i++ {
		out, err = m.Update(0.01)
	}
	assert.Error(t, err)
	assert.InDelta(t, cfg.MaxDipoleAm2, out.X, 1e-9)
}

func TestMagnetorquerStuckOffForcesZero(t *testing.T) {
	m := NewMagnetorquerSet("mtq", DefaultMagnetorquerConfig)
	m.Command(geom.Vector3{X: 0.1})
	m.Fault = FaultStuckOff

	out, err := m.Update(0.01)
	assert.NoError(t, err)
	assert.Equal(t, geom.Zero, out)
}

func TestReactionWheelTracksCommandedTorque(t *testing.T) {
	w := NewReactionWheelArray("rw", DefaultReactionWheelConfig)
	w.Command(geom.Vector3{X: 0.0005})

	var torque geom.Vector3
	for i := 0; i < 100; i++ {
		torque, _ = w.Update(0.01)
	}
	assert.InDelta(t, 0.0005, torque.X, 1e-7)
}

func TestReactionWheelMomentumSaturates(t *testing.T) {
	cfg := DefaultReactionWheelConfig
	cfg.TimeConstantS = 0.001
	cfg.FrictionTorqueNm = 0
	w := NewReactionWheelArray("rw", cfg)
	w.Command(geom.Vector3{X: cfg.MaxTorqueNm})

	var err error
	for i := 0; i < 100000; i++ {
		_, err = w.Update(0.01)
	}
	assert.Error(t, err)
	assert.InDelta(t, cfg.MaxMomentumNms, w.Momentum().X, 1e-9)
}

func TestReactionWheelStuckOnFreezesTorque(t *testing.T) {
	w := NewReactionWheelArray("rw", DefaultReactionWheelConfig)
	w.Command(geom.Vector3{X: 0.0005})
	for i := 0; i < 10; i++ {
		w.Update(0.01)
	}
	frozen, _ := w.Update(0.01)

	w.Fault = FaultStuckOn
	w.Command(geom.Vector3{X: -0.0005})
	out, err := w.Update(0.01)
	assert.NoError(t, err)
	assert.Equal(t, frozen, out)
}
