// Package environment models the spacecraft's surroundings: the
// tilted-dipole magnetic field, a low-precision solar ephemeris,
// conical eclipse geometry, and ground-station visibility.
package environment

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// rotateZ performs an active rotation of v by angle (radians) about
// the Z axis, the shared primitive for ECEF<->ECI conversions via
// GMST.
func rotateZ(v geom.Vector3, angle float64) geom.Vector3 {
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	return geom.Vector3{
		X: cosA*v.X - sinA*v.Y,
		Y: sinA*v.X + cosA*v.Y,
		Z: v.Z,
	}
}

// ECEFToECI rotates an ECEF vector into the ECI frame using GMST.
func ECEFToECI(v geom.Vector3, gmstRad float64) geom.Vector3 {
	return rotateZ(v, gmstRad)
}

// ECIToECEF rotates an ECI vector into the ECEF frame using GMST.
func ECIToECEF(v geom.Vector3, gmstRad float64) geom.Vector3 {
	return rotateZ(v, -gmstRad)
}
