package environment

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// SunRadiusKm is the Sun's mean radius, used by the umbra/penumbra
// cone geometry.
const SunRadiusKm = 696000.0

// Shadow classifies a spacecraft's eclipse condition.
type Shadow int

const (
	Sunlit Shadow = iota
	Penumbra
	Umbra
)

func (s Shadow) String() string {
	switch s {
	case Sunlit:
		return "sunlit"
	case Penumbra:
		return "penumbra"
	case Umbra:
		return "umbra"
	default:
		return "unknown"
	}
}

// EclipseState is the full eclipse classification: which shadow region
// the spacecraft occupies, and the fraction of solar illumination it
// receives there (1.0 fully sunlit, 0.0 fully eclipsed, linear in
// between across the penumbra).
type EclipseState struct {
	Shadow               Shadow
	IlluminationFraction float64
}

// Classify determines the eclipse state of a spacecraft at satPosECIKm
// given the Sun's ECI position sunPosECIKm (both relative to Earth's
// centre), using the standard conical umbra/penumbra shadow geometry.
func Classify(satPosECIKm, sunPosECIKm geom.Vector3) EclipseState {
	dSun := sunPosECIKm.Norm()
	uSun := sunPosECIKm.Scale(1 / dSun)

	proj := satPosECIKm.Dot(uSun)
	if proj > 0 {
		return EclipseState{Shadow: Sunlit, IlluminationFraction: 1}
	}

	horiz := -proj
	vertSq := satPosECIKm.Dot(satPosECIKm) - proj*proj
	if vertSq < 0 {
		vertSq = 0
	}
	vert := math.Sqrt(vertSq)

	angleUmbra := math.Asin((SunRadiusKm - EarthRadiusKm) / dSun)
	anglePenumbra := math.Asin((SunRadiusKm + EarthRadiusKm) / dSun)

	penVert := math.Tan(anglePenumbra) * (EarthRadiusKm/math.Sin(anglePenumbra) + horiz)
	if vert > penVert {
		return EclipseState{Shadow: Sunlit, IlluminationFraction: 1}
	}

	umbVert := math.Tan(angleUmbra) * (EarthRadiusKm/math.Sin(angleUmbra) - horiz)
	if vert <= umbVert {
		return EclipseState{Shadow: Umbra, IlluminationFraction: 0}
	}

	fraction := (vert - umbVert) / (penVert - umbVert)
	return EclipseState{Shadow: Penumbra, IlluminationFraction: fraction}
}
