package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorCrossAndDot(t *testing.T) {
	x := Vector3{X: 1}
	y := Vector3{Y: 1}
	z := x.Cross(y)
	assert.InDelta(t, 0.0, z.X, 1e-12)
	assert.InDelta(t, 0.0, z.Y, 1e-12)
	assert.InDelta(t, 1.0, z.Z, 1e-12)
	assert.InDelta(t, 0.0, x.Dot(y), 1e-12)
}

func TestQuaternionIdentityRotation(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}
	got := IdentityQuaternion.RotateVector(v)
	assert.InDelta(t, v.X, got.X, 1e-12)
	assert.InDelta(t, v.Y, got.Y, 1e-12)
	assert.InDelta(t, v.Z, got.Z, 1e-12)
}

func TestQuaternionNormalized(t *testing.T) {
	q := Quaternion{W: 2, X: 0, Y: 0, Z: 0}.Normalized()
	assert.InDelta(t, 1.0, q.Norm(), 1e-12)
}

func TestQuaternion90DegRotationAboutZ(t *testing.T) {
	half := math.Pi / 4
	q := Quaternion{W: math.Cos(half), Z: math.Sin(half)}.Normalized()
	v := Vector3{X: 1}
	got := q.RotateVector(v)
	assert.InDelta(t, 0.0, got.X, 1e-9)
	assert.InDelta(t, 1.0, got.Y, 1e-9)
}
