package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.bug.st/serial"
)

func TestConfigSerialModeAppliesDefaults(t *testing.T) {
	cfg := Config{Port: "/dev/ttyUSB0"}
	mode := cfg.serialMode()

	assert.Equal(t, defaultBaudRate, mode.BaudRate)
	assert.Equal(t, defaultDataBits, mode.DataBits)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
}

func TestConfigSerialModeHonoursExplicitFields(t *testing.T) {
	cfg := Config{Port: "/dev/ttyUSB0", BaudRate: 9600, DataBits: 7, Parity: "e", StopBits: 2}
	mode := cfg.serialMode()

	assert.Equal(t, 9600, mode.BaudRate)
	assert.Equal(t, 7, mode.DataBits)
	assert.Equal(t, serial.TwoStopBits, mode.StopBits)
	assert.Equal(t, serial.EvenParity, mode.Parity)
}

func TestOpenOnMissingPortReturnsError(t *testing.T) {
	// No such device exists on any CI/build host; Open must fail
	// cleanly rather than block or panic, mirroring the
	// hardware-absent path the teacher's serial tests exercise.
	_, err := Open(Config{Port: "/dev/does-not-exist-fsw-bus"})
	assert.Error(t, err)
}
