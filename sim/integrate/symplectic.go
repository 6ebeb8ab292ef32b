package integrate

// Acceleration evaluates acceleration at (t, pos, vel).
type Acceleration func(t float64, pos, vel []float64) []float64

// SymplecticEulerStep advances a second-order (position, velocity)
// system by one fixed step h using semi-implicit ("symplectic") Euler:
// velocity is updated from the current acceleration first, then
// position is updated using the new velocity. This trades first-order
// local accuracy for bounded long-term energy error, unlike explicit
// Euler, which is why it is offered alongside RK4 for long-duration
// orbit/attitude propagation where energy drift matters more than
// per-step accuracy.
func SymplecticEulerStep(a Acceleration, t, h float64, pos, vel []float64) (posNew, velNew []float64) {
	acc := a(t, pos, vel)
	velNew = make([]float64, len(vel))
	for i := range vel {
		velNew[i] = vel[i] + h*acc[i]
	}
	posNew = make([]float64, len(pos))
	for i := range pos {
		posNew[i] = pos[i] + h*velNew[i]
	}
	return posNew, velNew
}
