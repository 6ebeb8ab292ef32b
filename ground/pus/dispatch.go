package pus

import "fmt"

// Kind tags which catalogued variant a dispatched Payload carries.
type Kind int

const (
	KindRaw Kind = iota
	KindHKReport
	KindEnableHK
	KindDisableHK
	KindEvent
	KindMemoryRead
	KindFunction
	KindTimeSync
	KindPing
	KindModeChange
)

// Service/subtype catalogue constants (subset from the external
// interface table).
const (
	ServiceHousekeeping = 3
	SubtypeEnableHK     = 5
	SubtypeDisableHK    = 6
	SubtypeHKReport     = 25

	ServiceEvent = 5

	ServiceMemory      = 6
	SubtypeMemoryRead  = 5

	ServiceFunction   = 8
	SubtypeFunction   = 1

	ServiceTimeSync = 9
	SubtypeTimeSync = 1

	ServiceTest = 17
	SubtypePing = 1

	ServiceModeChange = 200
	SubtypeModeChange = 1
)

// Mode is the spacecraft operating mode carried by a (200,1) mode
// change command.
type Mode uint8

const (
	ModeSafe     Mode = 0
	ModeIdle     Mode = 1
	ModeNominal  Mode = 2
	ModeScience  Mode = 3
	ModeDownlink Mode = 4
)

// HKReport is the decoded (3,25) housekeeping report: a structure ID
// plus the ID-specific struct carried in one of the pointer fields.
type HKReport struct {
	StructID uint16
	System   *SystemHK
	Power    *PowerHK
	ADCS     *ADCSHK
	Comms    *CommsHK
}

// EnableHK is the decoded (3,5) enable-housekeeping command.
type EnableHK struct {
	HKID       uint16
	IntervalMS uint32
}

// DisableHK is the decoded (3,6) disable-housekeeping command.
type DisableHK struct {
	HKID uint16
}

// EventReport is the decoded (5,n) event report.
type EventReport struct {
	EventID  uint16
	Severity uint8
	OnboardTime uint32
	Data     []byte
}

// MemoryRead is the decoded (6,5) memory-read request.
type MemoryRead struct {
	Address uint32
	Length  uint16
}

// FunctionCommand is the decoded (8,1) function/reset command. Either
// ResetType is meaningful (a bare reset) or FunctionID/Params are (a
// parametrized function call); ServiceUnknown never applies here since
// the family is always recognised, but which arm is populated depends
// on payload length.
type FunctionCommand struct {
	IsReset   bool
	ResetType uint8
	FunctionID uint16
	Params    []byte
}

// TimeSync is the decoded (9,1) time-sync command.
type TimeSync struct {
	Seconds    uint32
	SubSeconds uint16
}

// ModeChange is the decoded (200,1) mode-change command.
type ModeChange struct {
	Mode Mode
}

// Payload is the closed sum type of dispatched PUS service bodies: one
// field is populated per Kind, with Raw as the unrecognised-service
// fallback.
type Payload struct {
	Kind       Kind
	HKReport   *HKReport
	EnableHK   *EnableHK
	DisableHK  *DisableHK
	Event      *EventReport
	MemoryRead *MemoryRead
	Function   *FunctionCommand
	TimeSync   *TimeSync
	ModeChange *ModeChange
	Raw        []byte
}

// ServiceUnknown marks a (service, subtype) pair not present in the
// catalogue; its payload is returned as Raw, never fatal.
type ServiceUnknown struct {
	Service, Subtype uint8
}

func (e *ServiceUnknown) Error() string {
	return fmt.Sprintf("pus: unrecognised service %d/%d", e.Service, e.Subtype)
}

// Dispatch decodes a service payload by (service, subtype) into a
// tagged Payload. Unrecognised services return Kind=KindRaw with
// Raw=payload and a non-fatal *ServiceUnknown error the caller may
// ignore or log; recognised services with short payloads return
// *FieldUnderflow.
func Dispatch(service, subtype uint8, payload []byte) (Payload, error) {
	switch service {
	case ServiceHousekeeping:
		switch subtype {
		case SubtypeEnableHK:
			if len(payload) < 6 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 6}
			}
			return Payload{Kind: KindEnableHK, EnableHK: &EnableHK{
				HKID:       uint16(payload[0])<<8 | uint16(payload[1]),
				IntervalMS: uint32(payload[2])<<24 | uint32(payload[3])<<16 | uint32(payload[4])<<8 | uint32(payload[5]),
			}}, nil
		case SubtypeDisableHK:
			if len(payload) < 2 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 2}
			}
			return Payload{Kind: KindDisableHK, DisableHK: &DisableHK{
				HKID: uint16(payload[0])<<8 | uint16(payload[1]),
			}}, nil
		case SubtypeHKReport:
			return dispatchHKReport(payload)
		}
	case ServiceEvent:
		if len(payload) < 7 {
			return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 7}
		}
		return Payload{Kind: KindEvent, Event: &EventReport{
			EventID:     uint16(payload[0])<<8 | uint16(payload[1]),
			Severity:    payload[2],
			OnboardTime: uint32(payload[3])<<24 | uint32(payload[4])<<16 | uint32(payload[5])<<8 | uint32(payload[6]),
			Data:        append([]byte(nil), payload[7:]...),
		}}, nil
	case ServiceMemory:
		if subtype == SubtypeMemoryRead {
			if len(payload) < 6 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 6}
			}
			return Payload{Kind: KindMemoryRead, MemoryRead: &MemoryRead{
				Address: uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3]),
				Length:  uint16(payload[4])<<8 | uint16(payload[5]),
			}}, nil
		}
	case ServiceFunction:
		if subtype == SubtypeFunction {
			if len(payload) < 1 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 1}
			}
			if len(payload) == 1 {
				return Payload{Kind: KindFunction, Function: &FunctionCommand{IsReset: true, ResetType: payload[0]}}, nil
			}
			if len(payload) < 2 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 2}
			}
			return Payload{Kind: KindFunction, Function: &FunctionCommand{
				IsReset:    false,
				FunctionID: uint16(payload[0])<<8 | uint16(payload[1]),
				Params:     append([]byte(nil), payload[2:]...),
			}}, nil
		}
	case ServiceTimeSync:
		if subtype == SubtypeTimeSync {
			if len(payload) < 6 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 6}
			}
			return Payload{Kind: KindTimeSync, TimeSync: &TimeSync{
				Seconds:    uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3]),
				SubSeconds: uint16(payload[4])<<8 | uint16(payload[5]),
			}}, nil
		}
	case ServiceTest:
		if subtype == SubtypePing {
			return Payload{Kind: KindPing}, nil
		}
	case ServiceModeChange:
		if subtype == SubtypeModeChange {
			if len(payload) < 1 {
				return Payload{}, &FieldUnderflow{Service: service, Subtype: subtype, Have: len(payload), Need: 1}
			}
			return Payload{Kind: KindModeChange, ModeChange: &ModeChange{Mode: Mode(payload[0])}}, nil
		}
	}

	return Payload{Kind: KindRaw, Raw: append([]byte(nil), payload...)}, &ServiceUnknown{Service: service, Subtype: subtype}
}

func dispatchHKReport(payload []byte) (Payload, error) {
	if len(payload) < 2 {
		return Payload{}, &FieldUnderflow{Service: ServiceHousekeeping, Subtype: SubtypeHKReport, Have: len(payload), Need: 2}
	}
	structID := uint16(payload[0])<<8 | uint16(payload[1])
	body := payload[2:]

	report := &HKReport{StructID: structID}
	switch structID {
	case HKStructSystem:
		hk, err := decodeSystemHK(body)
		if err != nil {
			return Payload{}, err
		}
		report.System = &hk
	case HKStructPower:
		hk, err := decodePowerHK(body)
		if err != nil {
			return Payload{}, err
		}
		report.Power = &hk
	case HKStructADCS:
		hk, err := decodeADCSHK(body)
		if err != nil {
			return Payload{}, err
		}
		report.ADCS = &hk
	case HKStructComms:
		hk, err := decodeCommsHK(body)
		if err != nil {
			return Payload{}, err
		}
		report.Comms = &hk
	default:
		// Thermal/payload or any future structure ID: no catalogued
		// layout here, carried as Raw alongside the structure ID.
		return Payload{Kind: KindHKReport, HKReport: report, Raw: append([]byte(nil), body...)}, nil
	}
	return Payload{Kind: KindHKReport, HKReport: report}, nil
}
