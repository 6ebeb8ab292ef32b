// Package bus wraps a real serial spacecraft bus connection for
// ground equipment that talks to physical flight hardware rather than
// the in-process simulator: it frames outgoing packets with the codec
// encoder, feeds incoming bytes through a StreamDecoder, and forwards
// the resynchronised frames on a channel.
package bus

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/oss-cubesat/fsw/ground/codec"
)

// Default serial port settings applied when a field is left zero.
const (
	defaultBaudRate   = 115200
	defaultDataBits   = 8
	defaultReadBuffer = 4096
	defaultTimeout    = 100 * time.Millisecond
)

// Config parameterises a Bus connection.
type Config struct {
	// Port is the OS device path, e.g. "/dev/ttyUSB0" or "COM3".
	Port string
	// BaudRate, DataBits, Parity and StopBits default to 115200-8-N-1
	// when left zero/empty.
	BaudRate int
	DataBits int
	Parity   string // "N", "E", "O"
	StopBits int     // 1 or 2

	// ReadBufferBytes sizes the chunk read from the port per poll;
	// defaults to defaultReadBuffer.
	ReadBufferBytes int

	// Decoder is passed through to codec.NewStreamDecoder unchanged.
	Decoder codec.Config

	Logger logrus.FieldLogger
}

func (c Config) serialMode() *serial.Mode {
	mode := &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: c.DataBits,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	if mode.BaudRate <= 0 {
		mode.BaudRate = defaultBaudRate
	}
	if mode.DataBits <= 0 {
		mode.DataBits = defaultDataBits
	}
	switch c.StopBits {
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		mode.StopBits = serial.OneStopBit
	}
	switch strings.ToUpper(c.Parity) {
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	default:
		mode.Parity = serial.NoParity
	}
	return mode
}

// Bus owns a serial port connection to a real spacecraft bus: it
// writes encoded TC packets out and pumps incoming bytes through a
// stream decoder on a background goroutine.
type Bus struct {
	cfg    Config
	log    logrus.FieldLogger
	port   serial.Port
	lock   sync.Mutex
	decode *codec.StreamDecoder

	frames chan codec.Frame
	done   chan struct{}
	wg     sync.WaitGroup
}

// Open opens the configured serial port and starts the read pump.
// Frames arriving on the port are delivered on the returned Bus's
// Frames channel until Close is called.
func Open(cfg Config) (*Bus, error) {
	mode := cfg.serialMode()

	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("bus: open %s: %w", cfg.Port, err)
	}
	if err := port.SetReadTimeout(defaultTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("bus: set read timeout: %w", err)
	}

	readBuffer := cfg.ReadBufferBytes
	if readBuffer <= 0 {
		readBuffer = defaultReadBuffer
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	b := &Bus{
		cfg:    cfg,
		log:    log,
		port:   port,
		decode: codec.NewStreamDecoder(cfg.Decoder),
		frames: make(chan codec.Frame, 64),
		done:   make(chan struct{}),
	}

	b.wg.Add(1)
	go b.readLoop(readBuffer)

	log.WithFields(logrus.Fields{
		"port": cfg.Port, "baud": mode.BaudRate,
	}).Info("spacecraft bus opened")
	return b, nil
}

// Frames returns the channel frames are published on as they are
// resynchronised out of the incoming byte stream.
func (b *Bus) Frames() <-chan codec.Frame {
	return b.frames
}

// Write sends raw packet bytes (as produced by codec.Encoder) out on
// the bus.
func (b *Bus) Write(packet []byte) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	n, err := b.port.Write(packet)
	if err != nil {
		return fmt.Errorf("bus: write: %w", err)
	}
	if n != len(packet) {
		return fmt.Errorf("bus: short write: wrote %d of %d bytes", n, len(packet))
	}
	return nil
}

// Stats returns the underlying stream decoder's running counters.
func (b *Bus) Stats() codec.Stats {
	return b.decode.Stats()
}

// Close stops the read pump and closes the port.
func (b *Bus) Close() error {
	close(b.done)
	b.wg.Wait()
	close(b.frames)
	return b.port.Close()
}

func (b *Bus) readLoop(readBuffer int) {
	defer b.wg.Done()

	buf := make([]byte, readBuffer)
	for {
		select {
		case <-b.done:
			return
		default:
		}

		n, err := b.port.Read(buf)
		if err != nil {
			b.log.WithError(err).Warn("spacecraft bus read error")
			return
		}
		if n == 0 {
			continue
		}

		for _, frame := range b.decode.Feed(buf[:n]) {
			select {
			case b.frames <- frame:
			case <-b.done:
				return
			}
		}
	}
}
