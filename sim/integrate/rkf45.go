package integrate

import "math"

// Fehlberg 4(5) Butcher tableau coefficients.
const (
	c2, c3, c4, c5, c6 = 1.0 / 4, 3.0 / 8, 12.0 / 13, 1.0, 1.0 / 2

	a21 = 1.0 / 4
	a31 = 3.0 / 32
	a32 = 9.0 / 32
	a41 = 1932.0 / 2197
	a42 = -7200.0 / 2197
	a43 = 7296.0 / 2197
	a51 = 439.0 / 216
	a52 = -8.0
	a53 = 3680.0 / 513
	a54 = -845.0 / 4104
	a61 = -8.0 / 27
	a62 = 2.0
	a63 = -3544.0 / 2565
	a64 = 1859.0 / 4104
	a65 = -11.0 / 40

	b1, b3, b4, b5       = 25.0 / 216, 1408.0 / 2565, 2197.0 / 4104, -1.0 / 5
	b1s, b3s, b4s, b5s, b6s = 16.0 / 135, 6656.0 / 12825, 28561.0 / 56430, -9.0 / 50, 2.0 / 55
)

// RKF45Params controls the adaptive step controller.
type RKF45Params struct {
	RTol, ATol float64
	HMin, HMax float64
}

// DefaultRKF45Params matches the design's fixed tolerances.
var DefaultRKF45Params = RKF45Params{RTol: 1e-6, ATol: 1e-9, HMin: 1e-6, HMax: 60}

// IntegratorReject is returned when RKF45 cannot shrink its step below
// HMin to satisfy the error tolerance.
type IntegratorReject struct {
	Reason string
}

func (e *IntegratorReject) Error() string {
	return "integrate: rejected: " + e.Reason
}

// RKF45Step attempts one adaptive step starting at (t, y) with trial
// step h. On acceptance it returns the new state, the time reached
// (t+h), and the suggested next step size. On rejection (accepted =
// false) it returns a nil state and the unchanged t, and the caller
// should retry with the returned next step.
func RKF45Step(f Derivative, t, h float64, y []float64, p RKF45Params) (yNew []float64, tUsed, hNext float64, accepted bool, err error) {
	k1 := f(t, y)
	k2 := f(t+c2*h, axpy(y, h*a21, k1))
	k3 := f(t+c3*h, axpyN(y, h, []float64{a31, a32}, k1, k2))
	k4 := f(t+c4*h, axpyN(y, h, []float64{a41, a42, a43}, k1, k2, k3))
	k5 := f(t+c5*h, axpyN(y, h, []float64{a51, a52, a53, a54}, k1, k2, k3, k4))
	k6 := f(t+c6*h, axpyN(y, h, []float64{a61, a62, a63, a64, a65}, k1, k2, k3, k4, k5))

	n := len(y)
	y4 := make([]float64, n)
	y5 := make([]float64, n)
	for i := 0; i < n; i++ {
		y4[i] = y[i] + h*(b1*k1[i]+b3*k3[i]+b4*k4[i]+b5*k5[i])
		y5[i] = y[i] + h*(b1s*k1[i]+b3s*k3[i]+b4s*k4[i]+b5s*k5[i]+b6s*k6[i])
	}

	errNorm := 0.0
	scaleNorm := 0.0
	for i := 0; i < n; i++ {
		diff := y5[i] - y4[i]
		errNorm += diff * diff
		scaleNorm += y5[i] * y5[i]
	}
	errNorm = math.Sqrt(errNorm)
	tol := p.ATol + p.RTol*math.Max(math.Sqrt(vecNormSq(y)), math.Sqrt(scaleNorm))

	if tol == 0 {
		tol = p.ATol
	}

	if errNorm <= tol {
		factor := 0.9 * math.Pow(tol/maxNonZero(errNorm), 0.2)
		next := math.Min(h*factor, p.HMax)
		return y5, t + h, next, true, nil
	}

	factor := 0.9 * math.Pow(tol/maxNonZero(errNorm), 0.25)
	next := math.Max(h*factor, p.HMin)
	if next <= p.HMin && h <= p.HMin {
		return nil, t, next, false, &IntegratorReject{Reason: "step size below HMin"}
	}
	return nil, t, next, false, nil
}

func maxNonZero(x float64) float64 {
	if x == 0 {
		return 1e-300
	}
	return x
}

func vecNormSq(y []float64) float64 {
	s := 0.0
	for _, v := range y {
		s += v * v
	}
	return s
}

// axpyN returns y + h*sum(coeffs[i]*ks[i]).
func axpyN(y []float64, h float64, coeffs []float64, ks ...[]float64) []float64 {
	out := append([]float64(nil), y...)
	for i, c := range coeffs {
		k := ks[i]
		for j := range out {
			out[j] += h * c * k[j]
		}
	}
	return out
}
