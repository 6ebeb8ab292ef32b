// Package attitude implements rigid-body attitude dynamics: quaternion
// kinematics driven by body rate, and Euler's rotational equation of
// motion driven by total torque, propagated by the shared RK4
// integrator with post-step quaternion renormalisation.
package attitude

import (
	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/integrate"
)

// State is the attitude state: a unit quaternion (body-to-inertial)
// and body-frame angular velocity (rad/s).
type State struct {
	Quaternion geom.Quaternion
	BodyRate   geom.Vector3
}

// EulerDerivative returns ω̇ = I^-1(τ - ω x (Iω)).
func EulerDerivative(inertia Tensor, omega geom.Vector3, torque geom.Vector3) geom.Vector3 {
	iOmega := inertia.MulVec(omega)
	gyroscopic := omega.Cross(iOmega)
	net := torque.Sub(gyroscopic)
	return inertia.Inverse().MulVec(net)
}

// GravityGradientTorque returns 3*mu/r^3 * n x (I n), where n is the
// nadir unit vector expressed in the body frame and r is the orbital
// radius (km). mu uses the same km^3/s^2 units as sim/orbit.MuEarth.
func GravityGradientTorque(mu, radiusKm float64, inertia Tensor, nadirBody geom.Vector3) geom.Vector3 {
	coeff := 3 * mu / (radiusKm * radiusKm * radiusKm)
	iN := inertia.MulVec(nadirBody)
	return nadirBody.Cross(iN).Scale(coeff)
}

// MagneticTorque returns m x B for magnetic dipole moment m (A*m^2)
// and field B (tesla), both expressed in the body frame.
func MagneticTorque(dipoleMoment, fieldBody geom.Vector3) geom.Vector3 {
	return dipoleMoment.Cross(fieldBody)
}

// TotalTorque sums the contributing torques, subtracting the reaction
// applied by the wheel array on the body (Newton's third law: spinning
// the wheels up applies -τ_wheels to the bus).
func TotalTorque(gravityGradient, magnetic, disturbance, wheelTorque geom.Vector3) geom.Vector3 {
	return gravityGradient.Add(magnetic).Add(disturbance).Sub(wheelTorque)
}

// Derivative returns the RK4-compatible state derivative for state
// vector [qw,qx,qy,qz,wx,wy,wz], given a torque function of (t, state).
func Derivative(inertia Tensor, torqueAt func(t float64, s State) geom.Vector3) integrate.Derivative {
	return func(t float64, y []float64) []float64 {
		q := geom.Quaternion{W: y[0], X: y[1], Y: y[2], Z: y[3]}
		omega := geom.Vector3{X: y[4], Y: y[5], Z: y[6]}
		s := State{Quaternion: q, BodyRate: omega}

		qDot := q.Derivative(omega)
		torque := torqueAt(t, s)
		omegaDot := EulerDerivative(inertia, omega, torque)

		return []float64{qDot.W, qDot.X, qDot.Y, qDot.Z, omegaDot.X, omegaDot.Y, omegaDot.Z}
	}
}

// Step propagates state by one fixed step h (seconds) using RK4, then
// renormalises the quaternion to enforce the unit-quaternion
// invariant.
func Step(inertia Tensor, torqueAt func(t float64, s State) geom.Vector3, t, h float64, state State) State {
	y := []float64{
		state.Quaternion.W, state.Quaternion.X, state.Quaternion.Y, state.Quaternion.Z,
		state.BodyRate.X, state.BodyRate.Y, state.BodyRate.Z,
	}
	y = integrate.RK4Step(Derivative(inertia, torqueAt), t, h, y)

	q := geom.Quaternion{W: y[0], X: y[1], Y: y[2], Z: y[3]}.Normalized()
	omega := geom.Vector3{X: y[4], Y: y[5], Z: y[6]}
	return State{Quaternion: q, BodyRate: omega}
}

// AngularMomentum returns the body angular momentum I*ω expressed in
// the inertial frame (I*ω is computed in body frame then rotated),
// used to validate conservative-torque behaviour.
func AngularMomentum(inertia Tensor, state State) geom.Vector3 {
	bodyMomentum := inertia.MulVec(state.BodyRate)
	return state.Quaternion.RotateVector(bodyMomentum)
}
