package attitude

import "github.com/oss-cubesat/fsw/sim/geom"

// Tensor is a 3x3 rigid-body inertia tensor, row-major, in kg*m^2.
type Tensor [3][3]float64

// Diagonal builds a principal-axis inertia tensor from its three
// diagonal moments, the common case for a CubeSat with symmetric mass
// distribution.
func Diagonal(ixx, iyy, izz float64) Tensor {
	return Tensor{
		{ixx, 0, 0},
		{0, iyy, 0},
		{0, 0, izz},
	}
}

// MulVec returns I*v.
func (t Tensor) MulVec(v geom.Vector3) geom.Vector3 {
	return geom.Vector3{
		X: t[0][0]*v.X + t[0][1]*v.Y + t[0][2]*v.Z,
		Y: t[1][0]*v.X + t[1][1]*v.Y + t[1][2]*v.Z,
		Z: t[2][0]*v.X + t[2][1]*v.Y + t[2][2]*v.Z,
	}
}

// Inverse returns I^-1 via the closed-form 3x3 cofactor/determinant
// formula.
func (t Tensor) Inverse() Tensor {
	a, b, c := t[0][0], t[0][1], t[0][2]
	d, e, f := t[1][0], t[1][1], t[1][2]
	g, h, i := t[2][0], t[2][1], t[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	invDet := 1 / det

	return Tensor{
		{(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet},
		{(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet},
		{(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet},
	}
}
