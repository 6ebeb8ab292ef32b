package codec

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/ground/ccsds"
	"github.com/oss-cubesat/fsw/ground/pus"
)

// Frame is a fully parsed CCSDS/PUS packet: primary header, whichever
// secondary header applies to its direction, the PUS service payload,
// CRC validity, and the original bytes.
type Frame struct {
	Primary     ccsds.PrimaryHeader
	TCSecondary *pus.TCHeader
	TMSecondary *pus.TMHeader
	Payload     []byte
	CRCValid    bool
	Raw         []byte
}

// FramingError is the taxonomy of structural stream-decode failures;
// Kind distinguishes the specific condition.
type FramingError struct {
	Kind string
	Info string
}

func (e *FramingError) Error() string {
	if e.Info == "" {
		return fmt.Sprintf("codec: framing error: %s", e.Kind)
	}
	return fmt.Sprintf("codec: framing error: %s: %s", e.Kind, e.Info)
}

const (
	FramingHeaderTooShort = "header_too_short"
	FramingLengthOverflow = "length_overflow"
	FramingTruncated      = "truncated"
)

// Decode parses a single, already-delimited packet (exactly
// TotalLength bytes, no extra trailing data). It never errors on a CRC
// mismatch — CRCValid is simply false — since the packet's framing
// itself is trusted by the caller; use StreamDecoder to recover framing
// from an arbitrary byte stream.
func Decode(packet []byte) (Frame, error) {
	primary, err := ccsds.UnpackPrimaryHeader(packet)
	if err != nil {
		return Frame{}, err
	}

	total := primary.TotalLength()
	if len(packet) < total {
		return Frame{}, &FramingError{Kind: FramingTruncated, Info: fmt.Sprintf("have %d, need %d", len(packet), total)}
	}
	packet = packet[:total]

	crcValid := validateCRC(packet)

	frame := Frame{Primary: primary, CRCValid: crcValid, Raw: append([]byte(nil), packet...)}

	body := packet[ccsds.PrimaryHeaderLength : total-2]
	if err := attachSecondary(&frame, body); err != nil {
		return Frame{}, err
	}
	return frame, nil
}

func validateCRC(packet []byte) bool {
	total := len(packet)
	if total < 2 {
		return false
	}
	expected := ccsds.CRC16(packet[:total-2])
	actual := uint16(packet[total-2])<<8 | uint16(packet[total-1])
	return expected == actual
}

// attachSecondary splits body (bytes between the primary header and
// the CRC) into the direction-appropriate secondary header and the
// remaining PUS service payload. Per the wire-layout open question,
// the secondary-header length is derived from packet direction (TM
// has a 10-byte header, TC a 4-byte header), never from the flag
// alone — the flag only says whether one is present at all.
func attachSecondary(frame *Frame, body []byte) error {
	if !frame.Primary.SecondaryHeaderFlag {
		frame.Payload = body
		return nil
	}

	switch frame.Primary.Type {
	case ccsds.PacketTypeTC:
		if len(body) < pus.TCHeaderLength {
			return &FramingError{Kind: FramingTruncated, Info: "TC secondary header"}
		}
		h, err := pus.UnpackTCHeader(body)
		if err != nil {
			return err
		}
		frame.TCSecondary = &h
		frame.Payload = body[pus.TCHeaderLength:]
	case ccsds.PacketTypeTM:
		if len(body) < pus.TMHeaderLength {
			return &FramingError{Kind: FramingTruncated, Info: "TM secondary header"}
		}
		h, err := pus.UnpackTMHeader(body)
		if err != nil {
			return err
		}
		frame.TMSecondary = &h
		frame.Payload = body[pus.TMHeaderLength:]
	}
	return nil
}

// Config parameterises a StreamDecoder.
type Config struct {
	// SyncRequired demands the 4-byte sync pattern prefix every packet;
	// when false, the decoder attempts a header parse at offset 0.
	SyncRequired bool
	// ExpectedAPID, when non-nil, discards packets whose APID differs.
	ExpectedAPID *uint16
	Logger       logrus.FieldLogger
}

// Stats accumulates the non-fatal counters the decoder maintains
// across its lifetime.
type Stats struct {
	FramingErrors  int
	CRCMismatches  int
	APIDMismatches int
	PacketsDecoded int
}

// StreamDecoder accepts arbitrary byte chunks and resynchronises to
// recover framing, per §4.4. It is not safe for concurrent use by
// multiple goroutines; callers serialise Feed calls themselves (the
// teacher's RTCMParser follows the same single-writer convention).
type StreamDecoder struct {
	cfg   Config
	buf   []byte
	stats Stats
	log   logrus.FieldLogger
}

// NewStreamDecoder constructs a StreamDecoder.
func NewStreamDecoder(cfg Config) *StreamDecoder {
	return &StreamDecoder{cfg: cfg, log: cfg.Logger}
}

// Stats returns a snapshot of the decoder's counters.
func (d *StreamDecoder) Stats() Stats {
	return d.stats
}

// Feed appends data to the internal buffer and returns every complete
// frame that can now be extracted, in order.
func (d *StreamDecoder) Feed(data []byte) []Frame {
	d.buf = append(d.buf, data...)

	var frames []Frame
	for {
		frame, ok := d.extractOne()
		if !ok {
			break
		}
		frames = append(frames, frame)
	}
	return frames
}

// extractOne attempts to pull one frame out of the front of the
// buffer, looping internally through resynchronisation attempts. It
// returns ok=false when the buffer holds too little data to make
// further progress right now (more input is needed).
func (d *StreamDecoder) extractOne() (Frame, bool) {
	// needMore puts back the sync pattern already consumed for a packet
	// that is not fully buffered yet, so the next Feed finds it again.
	needMore := func() (Frame, bool) {
		if d.cfg.SyncRequired {
			d.buf = append(append([]byte(nil), SyncPattern[:]...), d.buf...)
		}
		return Frame{}, false
	}

	for {
		if d.cfg.SyncRequired {
			idx := bytes.Index(d.buf, SyncPattern[:])
			if idx < 0 {
				// Keep the last len(SyncPattern)-1 bytes in case of a split match.
				if len(d.buf) > len(SyncPattern) {
					d.buf = d.buf[len(d.buf)-len(SyncPattern)+1:]
				}
				return Frame{}, false
			}
			if idx > 0 {
				d.buf = d.buf[idx:]
			}
			if len(d.buf) < len(SyncPattern) {
				return Frame{}, false
			}
			d.buf = d.buf[len(SyncPattern):]
		}

		if len(d.buf) < ccsds.PrimaryHeaderLength {
			return needMore()
		}

		primary, err := ccsds.UnpackPrimaryHeader(d.buf)
		if err != nil {
			// Unreachable given the length check above, but keep the
			// framing-error path uniform.
			d.stats.FramingErrors++
			d.logWarn("header_too_short", err)
			d.buf = d.buf[1:]
			continue
		}

		total := primary.TotalLength()
		if total < ccsds.PrimaryHeaderLength+2 {
			d.stats.FramingErrors++
			d.logWarn(FramingLengthOverflow, fmt.Errorf("implausible total length %d", total))
			d.buf = d.buf[1:]
			continue
		}
		if len(d.buf) < total {
			// Not yet enough buffered for this packet; wait for more.
			return needMore()
		}

		if d.cfg.ExpectedAPID != nil && primary.APID != *d.cfg.ExpectedAPID {
			d.stats.APIDMismatches++
			if d.log != nil {
				d.log.WithFields(logrus.Fields{"apid": primary.APID, "expected": *d.cfg.ExpectedAPID}).Warn("APID mismatch, discarding packet")
			}
			d.buf = d.buf[total:]
			continue
		}

		packet := d.buf[:total]
		crcValid := validateCRC(packet)

		frame := Frame{Primary: primary, CRCValid: crcValid, Raw: append([]byte(nil), packet...)}
		body := packet[ccsds.PrimaryHeaderLength : total-2]
		if err := attachSecondary(&frame, body); err != nil {
			d.stats.FramingErrors++
			d.logWarn(FramingTruncated, err)
			d.buf = d.buf[1:]
			continue
		}

		if !crcValid {
			d.stats.CRCMismatches++
			if d.log != nil {
				d.log.Warn("CRC mismatch")
			}
			if d.cfg.SyncRequired {
				// Framing was anchored by a sync match; trust the length
				// field and surface the bad frame rather than discard it.
				d.buf = d.buf[total:]
				d.stats.PacketsDecoded++
				return frame, true
			}
			// No sync anchor: this header may be a false positive found
			// inside noise. Advance by exactly one byte and retry.
			d.buf = d.buf[1:]
			continue
		}

		d.buf = d.buf[total:]
		d.stats.PacketsDecoded++
		return frame, true
	}
}

func (d *StreamDecoder) logWarn(kind string, err error) {
	if d.log != nil {
		d.log.WithError(err).Warn(kind)
	}
}
