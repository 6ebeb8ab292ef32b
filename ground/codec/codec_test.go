package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-cubesat/fsw/internal/logging"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 100}, logging.Discard())

	packet, err := enc.EncodeTC(17, 1, nil)
	require.NoError(t, err)

	frame, err := Decode(packet)
	require.NoError(t, err)
	assert.True(t, frame.CRCValid)
	assert.Equal(t, uint16(100), frame.Primary.APID)
	assert.Empty(t, frame.Payload)
	require.NotNil(t, frame.TCSecondary)
	assert.Equal(t, uint8(17), frame.TCSecondary.Service)
	assert.Equal(t, uint8(1), frame.TCSecondary.Subtype)
}

func TestEncodeDecodeRoundTripWithPayload(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 42, Destination: 7}, logging.Discard())
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i)
	}

	packet, err := enc.EncodeTC(6, 5, payload)
	require.NoError(t, err)

	frame, err := Decode(packet)
	require.NoError(t, err)
	assert.True(t, frame.CRCValid)
	assert.Equal(t, uint16(42), frame.Primary.APID)
	assert.Equal(t, payload, frame.Payload)
}

func TestPacketDataLengthInvariant(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 1}, logging.Discard())
	packet, err := enc.EncodeTC(17, 1, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, len(packet)-7, int(packet[4])<<8|int(packet[5]))
}

func TestPingVector(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 100}, logging.Discard())
	packet, err := enc.EncodeTC(17, 1, nil)
	require.NoError(t, err)
	// "18 64 C0 00 00 05 10 11 01 00 <CRC16:2>"
	assert.Equal(t, []byte{0x18, 0x64, 0xC0, 0x00, 0x00, 0x05, 0x10, 0x11, 0x01, 0x00}, packet[:10])
	assert.Len(t, packet, 12)
}

func TestSequenceCounterWraps(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 1}, logging.Discard())
	enc.seq = 0x3FFF
	_, err := enc.EncodeTC(17, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), enc.SequenceCount())
}

func TestSingleByteFlipInvalidatesCRC(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 9}, logging.Discard())
	packet, err := enc.EncodeTC(3, 25, []byte{0xAA, 0xBB, 0xCC})
	require.NoError(t, err)

	for i := range packet {
		flipped := append([]byte(nil), packet...)
		flipped[i] ^= 0xFF
		frame, err := Decode(flipped)
		if err != nil {
			// A flip inside the length field can legitimately break
			// structural framing rather than just the CRC; skip those.
			continue
		}
		assert.Falsef(t, frame.CRCValid, "byte %d flip should invalidate CRC", i)
	}
}

func TestStreamDecoderRecoversAcrossNoise(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 5, UseSync: true}, logging.Discard())

	var stream []byte
	const n = 5
	for i := 0; i < n; i++ {
		packet, err := enc.EncodeTC(17, 1, []byte{byte(i)})
		require.NoError(t, err)
		stream = append(stream, packet...)
		stream = append(stream, 0xDE, 0xAD, 0xBE, 0xEF, 0x00) // noise
	}

	dec := NewStreamDecoder(Config{SyncRequired: true, Logger: logging.Discard()})
	frames := dec.Feed(stream)
	require.Len(t, frames, n)
	for i, f := range frames {
		require.True(t, f.CRCValid)
		require.NotNil(t, f.TCSecondary)
		assert.Equal(t, []byte{byte(i)}, f.Payload)
	}
}

func TestStreamDecoderAPIDMismatchDiscarded(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 7}, logging.Discard())
	packet, err := enc.EncodeTC(17, 1, nil)
	require.NoError(t, err)

	wantAPID := uint16(200)
	dec := NewStreamDecoder(Config{ExpectedAPID: &wantAPID, Logger: logging.Discard()})
	frames := dec.Feed(packet)
	assert.Empty(t, frames)
	assert.Equal(t, 1, dec.Stats().APIDMismatches)
}

func TestStreamDecoderNeedsMoreInput(t *testing.T) {
	enc := NewEncoder(EncoderConfig{APID: 3}, logging.Discard())
	packet, err := enc.EncodeTC(17, 1, nil)
	require.NoError(t, err)

	dec := NewStreamDecoder(Config{Logger: logging.Discard()})
	frames := dec.Feed(packet[:5])
	assert.Empty(t, frames)

	frames = dec.Feed(packet[5:])
	require.Len(t, frames, 1)
	assert.True(t, frames[0].CRCValid)
}
