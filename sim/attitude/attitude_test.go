package attitude

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oss-cubesat/fsw/sim/geom"
)

func TestUnitQuaternionInvariantAfterStep(t *testing.T) {
	inertia := Diagonal(0.02, 0.02, 0.01)
	zeroTorque := func(float64, State) geom.Vector3 { return geom.Zero }

	state := State{
		Quaternion: geom.IdentityQuaternion,
		BodyRate:   geom.Vector3{X: 0.1, Y: -0.05, Z: 0.2},
	}

	tt := 0.0
	const h = 0.1
	for i := 0; i < 600; i++ {
		state = Step(inertia, zeroTorque, tt, h, state)
		tt += h
		assert.InDelta(t, 1.0, state.Quaternion.Norm(), 1e-9)
	}
}

func TestConservativeTorqueConservesAngularMomentum(t *testing.T) {
	inertia := Diagonal(0.02, 0.03, 0.025)
	zeroTorque := func(float64, State) geom.Vector3 { return geom.Zero }

	state := State{
		Quaternion: geom.IdentityQuaternion,
		BodyRate:   geom.Vector3{X: 0.15, Y: 0.05, Z: -0.1},
	}
	h0 := AngularMomentum(inertia, state)

	tt := 0.0
	const h = 0.1
	for i := 0; i < 600; i++ { // 60 seconds
		state = Step(inertia, zeroTorque, tt, h, state)
		tt += h
	}
	h1 := AngularMomentum(inertia, state)

	assert.InDelta(t, h0.X, h1.X, 1e-9)
	assert.InDelta(t, h0.Y, h1.Y, 1e-9)
	assert.InDelta(t, h0.Z, h1.Z, 1e-9)
}

func TestGravityGradientTorqueZeroWhenAligned(t *testing.T) {
	inertia := Diagonal(0.02, 0.02, 0.02) // spherical: no gravity-gradient torque
	nadir := geom.Vector3{Z: 1}
	torque := GravityGradientTorque(398600.4418, 6878, inertia, nadir)
	assert.InDelta(t, 0.0, torque.Norm(), 1e-12)
}

func TestMagneticTorqueOrthogonalToBoth(t *testing.T) {
	m := geom.Vector3{X: 1}
	b := geom.Vector3{Y: 1}
	torque := MagneticTorque(m, b)
	assert.InDelta(t, 0.0, torque.Dot(m), 1e-12)
	assert.InDelta(t, 0.0, torque.Dot(b), 1e-12)
}
