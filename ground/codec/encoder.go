// Package codec builds and parses full CCSDS/PUS packets: Encoder
// (C5) assembles telecommand and telemetry frames; StreamDecoder (C6)
// resynchronises and parses an arbitrary byte stream into them.
package codec

import (
	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/ground/ccsds"
	"github.com/oss-cubesat/fsw/ground/pus"
)

// SyncPattern is the optional 4-byte frame-sync marker prefixed to
// emitted packets when an encoder is configured to use it.
var SyncPattern = [4]byte{0x1A, 0xCF, 0xFC, 0x1D}

// EncoderConfig parameterises an Encoder: APID, default ack flags, and
// destination/source ID for the packets it builds.
type EncoderConfig struct {
	APID        uint16
	AckFlags    uint8
	Destination uint8
	UseSync     bool
}

// Encoder builds full TC/TM packets with CRC, owning its own sequence
// counter (no global/package-level mutable state, matching the
// reimplementation as explicit owned state called for by the design).
type Encoder struct {
	cfg EncoderConfig
	seq uint16
	log logrus.FieldLogger
}

// NewEncoder constructs an Encoder starting its sequence counter at 0.
func NewEncoder(cfg EncoderConfig, log logrus.FieldLogger) *Encoder {
	return &Encoder{cfg: cfg, log: log}
}

// SequenceCount returns the counter that will be used by the next
// EncodeTC/EncodeTM call.
func (e *Encoder) SequenceCount() uint16 {
	return e.seq
}

// EncodeTC builds a full telecommand packet for (service, subtype)
// carrying payload, increments the sequence counter, and returns the
// wire bytes (sync pattern prefix included if configured).
func (e *Encoder) EncodeTC(service, subtype uint8, payload []byte) ([]byte, error) {
	secondary := pus.NewTCHeader(e.cfg.AckFlags, service, subtype, e.cfg.Destination).Pack()
	packet, err := e.buildPacket(ccsds.PacketTypeTC, secondary, payload)
	if err != nil {
		return nil, err
	}
	e.seq = ccsds.NextSequenceCount(e.seq)
	if e.log != nil {
		e.log.WithFields(logrus.Fields{"service": service, "subtype": subtype, "bytes": len(packet)}).Debug("encoded TC packet")
	}
	return packet, nil
}

// EncodeTM builds a full telemetry packet for (service, subtype)
// carrying payload, stamping the secondary header with the given
// onboard time.
func (e *Encoder) EncodeTM(service, subtype uint8, seconds uint32, subSeconds uint16, payload []byte) ([]byte, error) {
	secondary := pus.NewTMHeader(service, subtype, e.cfg.Destination, seconds, subSeconds).Pack()
	packet, err := e.buildPacket(ccsds.PacketTypeTM, secondary, payload)
	if err != nil {
		return nil, err
	}
	e.seq = ccsds.NextSequenceCount(e.seq)
	if e.log != nil {
		e.log.WithFields(logrus.Fields{"service": service, "subtype": subtype, "bytes": len(packet)}).Debug("encoded TM packet")
	}
	return packet, nil
}

func (e *Encoder) buildPacket(kind ccsds.PacketType, secondary, payload []byte) ([]byte, error) {
	body := make([]byte, 0, len(secondary)+len(payload))
	body = append(body, secondary...)
	body = append(body, payload...)

	pdl := len(body) + 2 - 1

	primary := ccsds.PrimaryHeader{
		Version:             0,
		Type:                kind,
		SecondaryHeaderFlag: true,
		APID:                e.cfg.APID,
		SequenceFlags:       ccsds.SequenceFlagsStandalone,
		SequenceCount:       e.seq,
		PacketDataLength:    uint16(pdl),
	}
	primaryBytes, err := primary.Pack()
	if err != nil {
		return nil, err
	}

	prefix := make([]byte, 0, len(primaryBytes)+len(body))
	prefix = append(prefix, primaryBytes...)
	prefix = append(prefix, body...)

	crc := ccsds.CRC16(prefix)

	packet := make([]byte, 0, len(prefix)+2+len(SyncPattern))
	if e.cfg.UseSync {
		packet = append(packet, SyncPattern[:]...)
	}
	packet = append(packet, prefix...)
	packet = append(packet, byte(crc>>8), byte(crc))
	return packet, nil
}
