package environment

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// DipoleConfig parameterises the tilted-dipole field: the IGRF-13
// g10/g11/h11 Gauss coefficients (nT) at EpochYear, plus their linear
// secular variation (nT/year).
type DipoleConfig struct {
	G10, G11, H11             float64
	G10Dot, G11Dot, H11Dot    float64
	EpochYear                 float64
}

// DefaultIGRF13Dipole carries the IGRF-13 main-field and secular
// variation coefficients for the 2020.0 epoch.
var DefaultIGRF13Dipole = DipoleConfig{
	G10: -29404.5, G11: -1450.7, H11: 4652.9,
	G10Dot: 6.7, G11Dot: 7.7, H11Dot: -25.1,
	EpochYear: 2020.0,
}

// EarthRadiusKm mirrors sim/orbit.EarthRadiusKm; kept local to avoid a
// cross-package dependency for a single constant.
const EarthRadiusKm = 6378.137

// secularCoefficients applies linear secular variation from EpochYear
// to yearFraction.
func (c DipoleConfig) secularCoefficients(yearFraction float64) (g10, g11, h11 float64) {
	dt := yearFraction - c.EpochYear
	return c.G10 + c.G10Dot*dt, c.G11 + c.G11Dot*dt, c.H11 + c.H11Dot*dt
}

// FieldECEFNanotesla returns the tilted-dipole magnetic field (nT) in
// the ECEF frame at posECEFKm, per
//
//	B(r) = (Re/r)^3 * m0 * [3(m̂·r̂)r̂ - m̂]
//
// with the dipole unit vector m̂ derived from (g11, h11, g10).
func (c DipoleConfig) FieldECEFNanotesla(posECEFKm geom.Vector3, yearFraction float64) geom.Vector3 {
	g10, g11, h11 := c.secularCoefficients(yearFraction)
	m0 := vecNorm3(g10, g11, h11)
	if m0 == 0 {
		return geom.Zero
	}
	mHat := geom.Vector3{X: g11, Y: h11, Z: g10}.Scale(1 / m0)

	r := posECEFKm.Norm()
	rHat := posECEFKm.Normalized()
	reOverR3 := cube(EarthRadiusKm / r)

	return rHat.Scale(3 * mHat.Dot(rHat)).Sub(mHat).Scale(reOverR3 * m0)
}

// FieldECITesla returns the field in the ECI frame, in tesla, at
// posECIKm, given the current GMST (rotating the fixed-in-ECEF dipole
// field axis into the inertial frame).
func (c DipoleConfig) FieldECITesla(posECIKm geom.Vector3, gmstRad, yearFraction float64) geom.Vector3 {
	posECEF := ECIToECEF(posECIKm, gmstRad)
	bECEFnT := c.FieldECEFNanotesla(posECEF, yearFraction)
	bECInT := ECEFToECI(bECEFnT, gmstRad)
	return bECInT.Scale(1e-9)
}

func vecNorm3(a, b, c float64) float64 {
	return math.Sqrt(a*a + b*b + c*c)
}

func cube(x float64) float64 { return x * x * x }
