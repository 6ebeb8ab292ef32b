// Package sensors implements the spacecraft's measurement models:
// magnetometer, gyroscope, sun sensor, and GPS receiver. Every sensor
// exposes a deterministic Measure method driven by a seeded random
// source, so that two simulator runs with the same seed produce
// byte-identical readings.
package sensors

import "fmt"

// Fault names the way a sensor has been deliberately degraded for
// test or fault-injection scenarios. It is carried as an explicit
// struct field and branched on in Measure, never by reassigning
// methods at runtime.
type Fault int

const (
	// FaultNone is the nominal, undegraded operating mode.
	FaultNone Fault = iota
	// FaultStuck freezes the last good reading.
	FaultStuck
	// FaultDropout reports a failure on every measurement.
	FaultDropout
	// FaultNoisy multiplies the configured noise standard deviation.
	FaultNoisy
)

// SensorError reports that a measurement could not be produced
// cleanly; the reading returned alongside it may be NaN or the last
// good value. It is never fatal to the caller.
type SensorError struct {
	Name string
	Kind Fault
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("sensor %q: fault %v", e.Name, e.Kind)
}
