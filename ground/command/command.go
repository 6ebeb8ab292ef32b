// Package command is a high-level factory of TC payloads: one
// constructor per catalogued command, each returning the raw service
// payload bytes an Encoder.EncodeTC call expects.
package command

import (
	"github.com/oss-cubesat/fsw/ground/pus"
)

// EnableHK builds the (3,5) enable-housekeeping payload.
func EnableHK(hkID uint16, intervalMS uint32) []byte {
	return []byte{
		byte(hkID >> 8), byte(hkID),
		byte(intervalMS >> 24), byte(intervalMS >> 16), byte(intervalMS >> 8), byte(intervalMS),
	}
}

// DisableHK builds the (3,6) disable-housekeeping payload.
func DisableHK(hkID uint16) []byte {
	return []byte{byte(hkID >> 8), byte(hkID)}
}

// MemoryRead builds the (6,5) memory-read payload.
func MemoryRead(address uint32, length uint16) []byte {
	return []byte{
		byte(address >> 24), byte(address >> 16), byte(address >> 8), byte(address),
		byte(length >> 8), byte(length),
	}
}

// Reset builds the (8,1) bare-reset payload.
func Reset(resetType uint8) []byte {
	return []byte{resetType}
}

// Function builds the (8,1) parametrized function-call payload.
func Function(functionID uint16, params []byte) []byte {
	buf := make([]byte, 0, 2+len(params))
	buf = append(buf, byte(functionID>>8), byte(functionID))
	buf = append(buf, params...)
	return buf
}

// TimeSync builds the (9,1) time-sync payload.
func TimeSync(seconds uint32, subSeconds uint16) []byte {
	return []byte{
		byte(seconds >> 24), byte(seconds >> 16), byte(seconds >> 8), byte(seconds),
		byte(subSeconds >> 8), byte(subSeconds),
	}
}

// Ping builds the (17,1) empty ping payload.
func Ping() []byte {
	return nil
}

// ModeChange builds the (200,1) mode-change payload.
func ModeChange(mode pus.Mode) []byte {
	return []byte{byte(mode)}
}
