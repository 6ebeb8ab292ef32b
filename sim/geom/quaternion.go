package geom

import "math"

// Quaternion is a scalar-first attitude quaternion [w,x,y,z] mapping
// body frame to inertial frame, per the convention fixed in the design
// (never swapped for scalar-last elsewhere in this module).
type Quaternion struct {
	W, X, Y, Z float64
}

// IdentityQuaternion is the no-rotation quaternion.
var IdentityQuaternion = Quaternion{W: 1}

// Norm returns the quaternion's Euclidean (4-vector) norm.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q divided by its norm. The unit-quaternion
// invariant is enforced by calling this after every integrator step.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n == 0 {
		return IdentityQuaternion
	}
	inv := 1 / n
	return Quaternion{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// Mul returns the Hamilton product q*other.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// Derivative returns q̇ = ½ Ω(ω) q, the quaternion kinematic equation
// for body-frame angular velocity omega, expressed as the equivalent
// Hamilton product ½ q ⊗ (0, ω).
func (q Quaternion) Derivative(omega Vector3) Quaternion {
	omegaQuat := Quaternion{W: 0, X: omega.X, Y: omega.Y, Z: omega.Z}
	p := q.Mul(omegaQuat)
	return Quaternion{W: 0.5 * p.W, X: 0.5 * p.X, Y: 0.5 * p.Y, Z: 0.5 * p.Z}
}

// RotationMatrix returns the body-to-inertial direction cosine matrix
// for a unit quaternion, row-major.
func (q Quaternion) RotationMatrix() [3][3]float64 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// RotateVector rotates v from body frame to inertial frame using q's
// rotation matrix.
func (q Quaternion) RotateVector(v Vector3) Vector3 {
	m := q.RotationMatrix()
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// InverseRotateVector rotates v from inertial frame to body frame (the
// transpose of RotationMatrix, valid since it is orthonormal).
func (q Quaternion) InverseRotateVector(v Vector3) Vector3 {
	m := q.RotationMatrix()
	return Vector3{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z,
	}
}
