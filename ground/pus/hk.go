package pus

import "fmt"

// HK structure IDs identify the fixed-layout struct carried by a (3,25)
// housekeeping report.
const (
	HKStructSystem  = 0x0001
	HKStructPower   = 0x0002
	HKStructADCS    = 0x0003
	HKStructComms   = 0x0004
	HKStructThermal = 0x0005
	HKStructPayload = 0x0006
)

// FieldUnderflow reports that a service/subtype payload was shorter
// than its fixed layout requires.
type FieldUnderflow struct {
	Service, Subtype uint8
	Have, Need       int
}

func (e *FieldUnderflow) Error() string {
	return fmt.Sprintf("pus: service %d/%d payload underflow: have %d bytes, need %d", e.Service, e.Subtype, e.Have, e.Need)
}

// SystemHK is the SYSTEM_HK (0x0001) housekeeping structure: spacecraft
// mode, uptime, reset bookkeeping, CPU and memory usage.
type SystemHK struct {
	Mode             uint8
	UptimeSeconds    uint32
	ResetCount       uint16
	LastResetReason  uint8
	CPUUsagePercent  uint8
	MemoryUsedBytes  uint32
}

const systemHKLength = 16

func decodeSystemHK(data []byte) (SystemHK, error) {
	if len(data) < systemHKLength {
		return SystemHK{}, &FieldUnderflow{Service: 3, Subtype: 25, Have: len(data), Need: systemHKLength}
	}
	return SystemHK{
		Mode:            data[0],
		UptimeSeconds:   uint32(data[1])<<24 | uint32(data[2])<<16 | uint32(data[3])<<8 | uint32(data[4]),
		ResetCount:      uint16(data[5])<<8 | uint16(data[6]),
		LastResetReason: data[7],
		CPUUsagePercent: data[8],
		MemoryUsedBytes: uint32(data[9])<<24 | uint32(data[10])<<16 | uint32(data[11])<<8 | uint32(data[12]),
	}, nil
}

// encodeSystemHK is the inverse of decodeSystemHK; the 3 trailing bytes
// are reserved padding. Nothing in this module calls it.
func encodeSystemHK(hk SystemHK) []byte {
	buf := make([]byte, systemHKLength)
	buf[0] = hk.Mode
	buf[1] = byte(hk.UptimeSeconds >> 24)
	buf[2] = byte(hk.UptimeSeconds >> 16)
	buf[3] = byte(hk.UptimeSeconds >> 8)
	buf[4] = byte(hk.UptimeSeconds)
	buf[5] = byte(hk.ResetCount >> 8)
	buf[6] = byte(hk.ResetCount)
	buf[7] = hk.LastResetReason
	buf[8] = hk.CPUUsagePercent
	buf[9] = byte(hk.MemoryUsedBytes >> 24)
	buf[10] = byte(hk.MemoryUsedBytes >> 16)
	buf[11] = byte(hk.MemoryUsedBytes >> 8)
	buf[12] = byte(hk.MemoryUsedBytes)
	return buf
}

// PowerHK is the POWER_HK (0x0002) housekeeping structure: bus
// voltage/current telemetry and battery state of charge.
type PowerHK struct {
	BusVoltageMilliVolts  uint16
	BusCurrentMilliAmps   uint16
	BatterySOCPercent     uint8
	SolarCurrentMilliAmps uint16
	Charging              bool
}

const powerHKLength = 8

func decodePowerHK(data []byte) (PowerHK, error) {
	if len(data) < powerHKLength {
		return PowerHK{}, &FieldUnderflow{Service: 3, Subtype: 25, Have: len(data), Need: powerHKLength}
	}
	return PowerHK{
		BusVoltageMilliVolts:  uint16(data[0])<<8 | uint16(data[1]),
		BusCurrentMilliAmps:   uint16(data[2])<<8 | uint16(data[3]),
		BatterySOCPercent:     data[4],
		SolarCurrentMilliAmps: uint16(data[5])<<8 | uint16(data[6]),
		Charging:              data[7] != 0,
	}, nil
}

// ADCSHK is the ADCS_HK (0x0003) housekeeping structure: attitude
// quaternion, body rates, and control mode.
type ADCSHK struct {
	Quaternion     [4]int16 // fixed-point, scale 1/10000
	BodyRateMilliRadPerSec [3]int16
	ControlMode    uint8
}

const adcsHKLength = 15

func decodeADCSHK(data []byte) (ADCSHK, error) {
	if len(data) < adcsHKLength {
		return ADCSHK{}, &FieldUnderflow{Service: 3, Subtype: 25, Have: len(data), Need: adcsHKLength}
	}
	var hk ADCSHK
	for i := 0; i < 4; i++ {
		hk.Quaternion[i] = int16(uint16(data[i*2])<<8 | uint16(data[i*2+1]))
	}
	for i := 0; i < 3; i++ {
		off := 8 + i*2
		hk.BodyRateMilliRadPerSec[i] = int16(uint16(data[off])<<8 | uint16(data[off+1]))
	}
	hk.ControlMode = data[14]
	return hk, nil
}

// CommsHK is the COMMS_HK (0x0004) housekeeping structure: radio link
// state and packet counters.
type CommsHK struct {
	RSSIdBm       int16
	TXPacketCount uint32
	RXPacketCount uint32
	LinkUp        bool
}

const commsHKLength = 11

func decodeCommsHK(data []byte) (CommsHK, error) {
	if len(data) < commsHKLength {
		return CommsHK{}, &FieldUnderflow{Service: 3, Subtype: 25, Have: len(data), Need: commsHKLength}
	}
	return CommsHK{
		RSSIdBm:       int16(uint16(data[0])<<8 | uint16(data[1])),
		TXPacketCount: uint32(data[2])<<24 | uint32(data[3])<<16 | uint32(data[4])<<8 | uint32(data[5]),
		RXPacketCount: uint32(data[6])<<24 | uint32(data[7])<<16 | uint32(data[8])<<8 | uint32(data[9]),
		LinkUp:        data[10] != 0,
	}, nil
}
