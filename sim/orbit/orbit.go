// Package orbit implements two-body Keplerian motion perturbed by the
// J2 zonal harmonic and, optionally, atmospheric drag, propagated by
// the shared RK4 integrator.
package orbit

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
	"github.com/oss-cubesat/fsw/sim/integrate"
)

// Physical constants fixed by the design.
const (
	MuEarth        = 398600.4418  // km^3/s^2
	EarthRadiusKm  = 6378.137     // km
	J2             = 1.0826e-3
	EarthOmegaRadS = 7.2921159e-5 // rad/s, Earth rotation rate

	dragMaxAltitudeKm = 1000.0
)

// State is the orbital state: ECI position (km) and velocity (km/s).
type State struct {
	Position geom.Vector3
	Velocity geom.Vector3
}

// DragConfig parameterises the exponential-atmosphere drag model. Cd
// is the drag coefficient, AreaM2 the fixed cross-section, MassKg the
// spacecraft mass.
type DragConfig struct {
	Cd     float64
	AreaM2 float64
	MassKg float64
}

// Config selects which perturbations the propagator includes.
type Config struct {
	EnableJ2   bool
	EnableDrag bool
	Drag       DragConfig
}

// DefaultDragConfig is a representative 3U CubeSat ballistic
// configuration: a 10x10cm ram-facing panel, Cd=2.2, 4kg mass.
var DefaultDragConfig = DragConfig{Cd: 2.2, AreaM2: 0.01, MassKg: 4.0}

// Acceleration returns total acceleration (km/s^2) on the spacecraft at
// the given position/velocity, including any enabled perturbations.
func Acceleration(cfg Config, pos, vel geom.Vector3) geom.Vector3 {
	r := pos.Norm()
	a := pos.Scale(-MuEarth / (r * r * r))

	if cfg.EnableJ2 {
		a = a.Add(j2Acceleration(pos))
	}
	if cfg.EnableDrag {
		a = a.Add(dragAcceleration(cfg.Drag, pos, vel))
	}
	return a
}

// j2Acceleration returns the standard closed-form J2 perturbation
// acceleration.
func j2Acceleration(pos geom.Vector3) geom.Vector3 {
	r := pos.Norm()
	z2OverR2 := (pos.Z * pos.Z) / (r * r)
	factor := -1.5 * J2 * MuEarth * EarthRadiusKm * EarthRadiusKm / math.Pow(r, 5)

	return geom.Vector3{
		X: factor * pos.X * (1 - 5*z2OverR2),
		Y: factor * pos.Y * (1 - 5*z2OverR2),
		Z: factor * pos.Z * (3 - 5*z2OverR2),
	}
}

// atmosphericDensity returns a simple exponential-atmosphere density
// (kg/m^3) at the given altitude (km), referenced near 500km LEO. This
// stands in for NRLMSISE, explicitly out of scope.
func atmosphericDensity(altitudeKm float64) float64 {
	const (
		refAltitudeKm = 500.0
		refDensity    = 5.16e-13 // kg/m^3 at 500km (representative, solar-moderate)
		scaleHeightKm = 60.0
	)
	return refDensity * math.Exp(-(altitudeKm-refAltitudeKm)/scaleHeightKm)
}

// dragAcceleration returns drag acceleration (km/s^2) given the
// spacecraft's position and velocity, using an atmosphere that
// co-rotates with Earth below 1000km altitude.
func dragAcceleration(cfg DragConfig, pos, vel geom.Vector3) geom.Vector3 {
	altitude := pos.Norm() - EarthRadiusKm
	if altitude >= dragMaxAltitudeKm || altitude < 0 {
		return geom.Zero
	}

	earthOmega := geom.Vector3{Z: EarthOmegaRadS}
	atmosphereVel := earthOmega.Cross(pos) // km/s, omega x r
	relativeVel := vel.Sub(atmosphereVel)  // km/s
	speedKmS := relativeVel.Norm()
	if speedKmS == 0 {
		return geom.Zero
	}

	rho := atmosphericDensity(altitude) // kg/m^3
	ballisticTerm := cfg.Cd * cfg.AreaM2 / cfg.MassKg

	// a = -0.5 * rho * BC * |v_rel| * v_rel, converted from SI (m/s) to
	// km/s^2: rho*BC*v_rel^2 is in m/s^2 when v_rel is m/s, so convert
	// speed to m/s for the magnitude and scale the whole result back to
	// km/s^2 (divide by 1000).
	speedMS := speedKmS * 1000.0
	accelMagMS2 := 0.5 * rho * ballisticTerm * speedMS * speedMS
	accelKmS2 := accelMagMS2 / 1000.0

	return relativeVel.Normalized().Scale(-accelKmS2)
}

// Derivative returns the RK4-compatible state derivative for state
// vector [rx,ry,rz,vx,vy,vz].
func Derivative(cfg Config) integrate.Derivative {
	return func(_ float64, y []float64) []float64 {
		pos := geom.Vector3{X: y[0], Y: y[1], Z: y[2]}
		vel := geom.Vector3{X: y[3], Y: y[4], Z: y[5]}
		a := Acceleration(cfg, pos, vel)
		return []float64{vel.X, vel.Y, vel.Z, a.X, a.Y, a.Z}
	}
}

// Step propagates state by one fixed step h (seconds) using RK4.
func Step(cfg Config, t, h float64, state State) State {
	y := []float64{
		state.Position.X, state.Position.Y, state.Position.Z,
		state.Velocity.X, state.Velocity.Y, state.Velocity.Z,
	}
	y = integrate.RK4Step(Derivative(cfg), t, h, y)
	return State{
		Position: geom.Vector3{X: y[0], Y: y[1], Z: y[2]},
		Velocity: geom.Vector3{X: y[3], Y: y[4], Z: y[5]},
	}
}

// SpecificEnergy returns the two-body specific orbital energy
// v^2/2 - mu/r, a near-constant used to validate propagator fidelity
// when J2 and drag are disabled.
func SpecificEnergy(state State) float64 {
	v := state.Velocity.Norm()
	r := state.Position.Norm()
	return v*v/2 - MuEarth/r
}

// Period returns the Keplerian orbital period (s) for a circular orbit
// of the given semi-major axis (km).
func Period(semiMajorAxisKm float64) float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(semiMajorAxisKm, 3)/MuEarth)
}

// CircularVelocity returns the speed (km/s) of a circular orbit at the
// given radius (km).
func CircularVelocity(radiusKm float64) float64 {
	return math.Sqrt(MuEarth / radiusKm)
}
