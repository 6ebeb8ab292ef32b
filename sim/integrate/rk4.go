// Package integrate provides the fixed-step RK4, adaptive RKF45, and
// symplectic-Euler integrators shared by orbital and attitude
// dynamics, operating on a plain state vector []float64 so both
// dynamics models can reuse the same machinery.
package integrate

// Derivative evaluates dy/dt at (t, y) and returns a newly allocated
// slice the same length as y.
type Derivative func(t float64, y []float64) []float64

// RK4Step advances y by one fixed step h using classical 4th-order
// Runge-Kutta:
//
//	k1 = f(y), k2 = f(y+h/2 k1), k3 = f(y+h/2 k2), k4 = f(y+h k3)
//	y' = y + h(k1+2k2+2k3+k4)/6
func RK4Step(f Derivative, t, h float64, y []float64) []float64 {
	k1 := f(t, y)
	k2 := f(t+h/2, axpy(y, h/2, k1))
	k3 := f(t+h/2, axpy(y, h/2, k2))
	k4 := f(t+h, axpy(y, h, k3))

	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + h/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

// axpy returns y + a*x (a new slice; standard BLAS naming for
// scale-and-add, used throughout the integrator stage formulas).
func axpy(y []float64, a float64, x []float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] + a*x[i]
	}
	return out
}
