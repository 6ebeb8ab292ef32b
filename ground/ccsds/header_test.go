package ccsds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryHeaderRoundTrip(t *testing.T) {
	h := PrimaryHeader{
		Version:             0,
		Type:                PacketTypeTC,
		SecondaryHeaderFlag: true,
		APID:                100,
		SequenceFlags:       SequenceFlagsStandalone,
		SequenceCount:       0,
		PacketDataLength:    5,
	}

	buf, err := h.Pack()
	require.NoError(t, err)
	require.Len(t, buf, PrimaryHeaderLength)

	got, err := UnpackPrimaryHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestUnpackPrimaryHeaderTooShort(t *testing.T) {
	_, err := UnpackPrimaryHeader([]byte{0x01, 0x02})
	require.Error(t, err)
	var tooShort *HeaderTooShort
	require.ErrorAs(t, err, &tooShort)
	assert.Equal(t, 2, tooShort.Have)
}

func TestPingPrimaryHeaderVector(t *testing.T) {
	// TC ping (service 17, subtype 1), APID=100, seq=0: "18 64 C0 00"
	h := PrimaryHeader{
		Version:             0,
		Type:                PacketTypeTC,
		SecondaryHeaderFlag: true,
		APID:                100,
		SequenceFlags:       SequenceFlagsStandalone,
		SequenceCount:       0,
		PacketDataLength:    5,
	}
	buf, err := h.Pack()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x18, 0x64, 0xC0, 0x00, 0x00, 0x05}, buf)
}

func TestNextSequenceCountWraps(t *testing.T) {
	assert.Equal(t, uint16(0), NextSequenceCount(0x3FFF))
	assert.Equal(t, uint16(1), NextSequenceCount(0))
}

func TestTotalLength(t *testing.T) {
	h := PrimaryHeader{PacketDataLength: 9}
	assert.Equal(t, 16, h.TotalLength())
}
