// Package pus implements the ESA Packet Utilisation Standard service
// layer carried inside CCSDS Space Packets: the TC/TM secondary
// headers and the service/subtype dispatch table.
package pus

import "fmt"

// TCHeaderLength is the fixed size of a PUS telecommand secondary
// header.
const TCHeaderLength = 4

// TMHeaderLength is the fixed size of a PUS telemetry secondary
// header.
const TMHeaderLength = 10

// pusVersion is the PUS version this codec emits and expects (PUS-1).
const pusVersion = 1

// TCHeader is the 4-byte PUS telecommand secondary header: (4-bit PUS
// version, 4-bit ack flags), service type, service subtype, source/
// destination ID.
type TCHeader struct {
	Version    uint8
	AckFlags   uint8
	Service    uint8
	Subtype    uint8
	SourceDest uint8
}

// Pack encodes h into a newly allocated 4-byte buffer.
func (h TCHeader) Pack() []byte {
	return []byte{
		(h.Version&0xF)<<4 | (h.AckFlags & 0xF),
		h.Service,
		h.Subtype,
		h.SourceDest,
	}
}

// UnpackTCHeader decodes the first TCHeaderLength bytes of data.
func UnpackTCHeader(data []byte) (TCHeader, error) {
	if len(data) < TCHeaderLength {
		return TCHeader{}, fmt.Errorf("pus: TC header too short: have %d, need %d", len(data), TCHeaderLength)
	}
	return TCHeader{
		Version:    data[0] >> 4 & 0xF,
		AckFlags:   data[0] & 0xF,
		Service:    data[1],
		Subtype:    data[2],
		SourceDest: data[3],
	}, nil
}

// NewTCHeader builds a TC secondary header with the standard PUS
// version and the given ack flags/service/subtype/destination.
func NewTCHeader(ackFlags, service, subtype, destination uint8) TCHeader {
	return TCHeader{
		Version:    pusVersion,
		AckFlags:   ackFlags,
		Service:    service,
		Subtype:    subtype,
		SourceDest: destination,
	}
}

// TMHeader is the 10-byte PUS telemetry secondary header: (4-bit PUS
// version, 4 reserved bits), service type, service subtype,
// destination ID, 32-bit onboard seconds, 16-bit sub-seconds.
//
// Open question (i) in the originating design: the wire layout here
// differs from TCHeader (no ack flags; reserved bits instead) and is
// preserved verbatim rather than unified with the TC layout.
type TMHeader struct {
	Version     uint8
	Service     uint8
	Subtype     uint8
	Destination uint8
	Seconds     uint32
	SubSeconds  uint16
}

// Pack encodes h into a newly allocated 10-byte buffer.
func (h TMHeader) Pack() []byte {
	buf := make([]byte, TMHeaderLength)
	buf[0] = (h.Version & 0xF) << 4
	buf[1] = h.Service
	buf[2] = h.Subtype
	buf[3] = h.Destination
	buf[4] = byte(h.Seconds >> 24)
	buf[5] = byte(h.Seconds >> 16)
	buf[6] = byte(h.Seconds >> 8)
	buf[7] = byte(h.Seconds)
	buf[8] = byte(h.SubSeconds >> 8)
	buf[9] = byte(h.SubSeconds)
	return buf
}

// UnpackTMHeader decodes the first TMHeaderLength bytes of data.
func UnpackTMHeader(data []byte) (TMHeader, error) {
	if len(data) < TMHeaderLength {
		return TMHeader{}, fmt.Errorf("pus: TM header too short: have %d, need %d", len(data), TMHeaderLength)
	}
	return TMHeader{
		Version:     data[0] >> 4 & 0xF,
		Service:     data[1],
		Subtype:     data[2],
		Destination: data[3],
		Seconds:     uint32(data[4])<<24 | uint32(data[5])<<16 | uint32(data[6])<<8 | uint32(data[7]),
		SubSeconds:  uint16(data[8])<<8 | uint16(data[9]),
	}, nil
}

// NewTMHeader builds a TM secondary header with the standard PUS
// version and the given service/subtype/destination/onboard time.
func NewTMHeader(service, subtype, destination uint8, seconds uint32, subSeconds uint16) TMHeader {
	return TMHeader{
		Version:     pusVersion,
		Service:     service,
		Subtype:     subtype,
		Destination: destination,
		Seconds:     seconds,
		SubSeconds:  subSeconds,
	}
}
