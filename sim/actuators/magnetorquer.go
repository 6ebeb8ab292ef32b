package actuators

import (
	"math"

	"github.com/oss-cubesat/fsw/sim/geom"
)

// MagnetorquerConfig parameterises a three-axis magnetorquer set.
type MagnetorquerConfig struct {
	MaxDipoleAm2  float64 // saturation dipole moment per axis, A*m^2
	TimeConstantS float64 // first-order lag time constant
}

// DefaultMagnetorquerConfig matches a typical 3U CubeSat torquer rod
// set.
var DefaultMagnetorquerConfig = MagnetorquerConfig{MaxDipoleAm2: 0.2, TimeConstantS: 0.05}

// MagnetorquerSet is a three-axis magnetic dipole actuator. Commands
// are applied with first-order lag and saturated at MaxDipoleAm2.
type MagnetorquerSet struct {
	Name   string
	Config MagnetorquerConfig
	Fault  Fault

	commanded geom.Vector3
	output    geom.Vector3
}

// NewMagnetorquerSet builds a magnetorquer set at zero dipole.
func NewMagnetorquerSet(name string, cfg MagnetorquerConfig) *MagnetorquerSet {
	return &MagnetorquerSet{Name: name, Config: cfg}
}

// Command sets the desired dipole moment for the next Update call.
func (m *MagnetorquerSet) Command(dipoleAm2 geom.Vector3) {
	m.commanded = dipoleAm2
}

// Update advances the first-order lag toward the commanded dipole by
// dt and returns the resulting output dipole, saturated per axis.
// Saturated axes are reported via the returned error without
// interrupting the other axes.
func (m *MagnetorquerSet) Update(dt float64) (geom.Vector3, error) {
	switch m.Fault {
	case FaultStuckOff:
		m.output = geom.Zero
		return m.output, nil
	case FaultStuckOn:
		return m.output, nil
	}

	target := m.commanded
	if m.Fault == FaultDegraded {
		target = target.Scale(0.5)
	}

	alpha := 1 - math.Exp(-dt/m.Config.TimeConstantS)
	m.output = m.output.Add(target.Sub(m.output).Scale(alpha))

	var saturationErr error
	limit := m.Config.MaxDipoleAm2
	if math.Abs(m.output.X) > limit || math.Abs(m.output.Y) > limit || math.Abs(m.output.Z) > limit {
		saturationErr = &Saturated{Name: m.Name, Axis: saturatedAxis(m.output, limit)}
	}
	m.output = geom.Vector3{
		X: clamp(m.output.X, -limit, limit),
		Y: clamp(m.output.Y, -limit, limit),
		Z: clamp(m.output.Z, -limit, limit),
	}

	return m.output, saturationErr
}

// Output returns the dipole moment applied on the most recent Update.
func (m *MagnetorquerSet) Output() geom.Vector3 { return m.output }

func saturatedAxis(v geom.Vector3, limit float64) string {
	switch {
	case math.Abs(v.X) > limit:
		return "x"
	case math.Abs(v.Y) > limit:
		return "y"
	default:
		return "z"
	}
}
