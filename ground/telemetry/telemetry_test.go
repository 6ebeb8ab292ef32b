package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-cubesat/fsw/ground/codec"
	"github.com/oss-cubesat/fsw/internal/logging"
)

func TestProcessorPushPop(t *testing.T) {
	p := NewProcessor(4, logging.Discard())
	p.Push(codec.Frame{Payload: []byte{1, 2, 3}})

	frame, ok := p.Pop()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, frame.Payload)
}

func TestProcessorPopTimesOut(t *testing.T) {
	p := NewProcessor(1, logging.Discard())
	_, ok := p.Pop()
	assert.False(t, ok)
}

func TestProcessorDropsOnOverflow(t *testing.T) {
	p := NewProcessor(1, logging.Discard())
	p.Push(codec.Frame{})
	p.Push(codec.Frame{}) // dropped: queue full
	assert.Equal(t, int64(1), p.Dropped())
}

type memSink struct {
	batches []Batch
}

func (m *memSink) WriteBatch(b Batch) error {
	m.batches = append(m.batches, b)
	return nil
}

func TestArchiverFlushesAtPacketCount(t *testing.T) {
	sink := &memSink{}
	a := NewArchiver(sink)
	now := time.Unix(0, 0)

	for i := 0; i < maxBufferedPackets; i++ {
		require.NoError(t, a.Add(now, []byte{byte(i)}))
	}
	require.Len(t, sink.batches, 1)
	assert.Equal(t, maxBufferedPackets, sink.batches[0].PacketCount)
	assert.Equal(t, 0, a.Buffered())
}

func TestArchiverFlushesAtAge(t *testing.T) {
	sink := &memSink{}
	a := NewArchiver(sink)
	start := time.Unix(0, 0)

	require.NoError(t, a.Add(start, []byte{1}))
	require.NoError(t, a.Add(start.Add(maxBufferedAge), []byte{2}))

	require.Len(t, sink.batches, 1)
	assert.Equal(t, 2, sink.batches[0].PacketCount)
}
