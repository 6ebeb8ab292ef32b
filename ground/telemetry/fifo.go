// Package telemetry holds the ground segment's decoded-frame fan-in:
// a bounded lossy FIFO between the stream decoder and its consumers,
// and the archive batching policy that feeds an external persistence
// sink.
package telemetry

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oss-cubesat/fsw/ground/codec"
)

// popTimeout is the blocking-pop timeout for Processor.Pop, per the
// concurrency model's 100ms figure.
const popTimeout = 100 * time.Millisecond

// Processor is a bounded MPSC queue of decoded frames: any number of
// producer goroutines may call Push; a single consumer goroutine calls
// Pop in a loop. On overflow the producer drops the frame and
// increments Dropped rather than blocking the decoder.
type Processor struct {
	queue   chan codec.Frame
	dropped int64
	log     logrus.FieldLogger
}

// NewProcessor constructs a Processor with the given bounded capacity.
func NewProcessor(capacity int, log logrus.FieldLogger) *Processor {
	return &Processor{
		queue: make(chan codec.Frame, capacity),
		log:   log,
	}
}

// Push enqueues frame, dropping it and incrementing the drop counter
// if the queue is full. It never blocks the caller.
func (p *Processor) Push(frame codec.Frame) {
	select {
	case p.queue <- frame:
	default:
		atomic.AddInt64(&p.dropped, 1)
		if p.log != nil {
			p.log.Warn("telemetry queue full, dropping frame")
		}
	}
}

// Pop blocks for up to 100ms waiting for a frame; ok is false on
// timeout.
func (p *Processor) Pop() (codec.Frame, bool) {
	select {
	case f := <-p.queue:
		return f, true
	case <-time.After(popTimeout):
		return codec.Frame{}, false
	}
}

// Dropped returns the number of frames dropped due to overflow.
func (p *Processor) Dropped() int64 {
	return atomic.LoadInt64(&p.dropped)
}
