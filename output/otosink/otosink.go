// Package otosink plays rendered frames on the default audio device through
// oto/v3.
package otosink

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-synth/output"
)

const (
	defaultQueueFrames = 4096
	bytesPerFrame      = 8
)

// Option configures a Sink.
type Option func(*config) error

type config struct {
	queueFrames int
	bufferSize  time.Duration
}

func defaultConfig() config {
	return config{queueFrames: defaultQueueFrames, bufferSize: 20 * time.Millisecond}
}

// WithQueueFrames sets how many frames Send may run ahead of the device.
func WithQueueFrames(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("otosink queue frames must be > 0: %d", n)
		}
		c.queueFrames = n
		return nil
	}
}

// WithBufferSize sets the device buffer duration requested from oto.
func WithBufferSize(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("otosink buffer size must be >= 0: %s", d)
		}
		c.bufferSize = d
		return nil
	}
}

// Sink is a realtime output.Sink backed by an oto player. Send blocks while
// the queue is full, which paces the renderer to the device clock. The
// player pulls frames from its own goroutine through Read.
type Sink struct {
	player     *oto.Player
	sampleRate int
	latency    time.Duration

	frames chan [2]float32
	done   chan struct{}
	once   sync.Once

	mu        sync.Mutex
	underruns atomic.Int64
}

var _ output.Sink = (*Sink)(nil)

// New opens the audio device at sampleRate as float32 little-endian stereo
// and starts playback. oto allows one context per process.
func New(sampleRate int, opts ...Option) (*Sink, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("otosink sample rate must be > 0: %d", sampleRate)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("otosink: %w", err)
	}
	<-ready

	s := newSink(cfg.queueFrames)
	s.sampleRate = sampleRate
	s.latency = cfg.bufferSize
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

func newSink(queueFrames int) *Sink {
	return &Sink{
		frames: make(chan [2]float32, queueFrames),
		done:   make(chan struct{}),
	}
}

// Realtime reports true: Send blocks at the device rate once the queue is full.
func (s *Sink) Realtime() bool { return true }

// Send queues one frame, blocking until there is room or the sink closes.
func (s *Sink) Send(left, right float64) error {
	select {
	case <-s.done:
		return output.ErrClosed
	default:
	}
	select {
	case s.frames <- [2]float32{float32(left), float32(right)}:
		return nil
	case <-s.done:
		return output.ErrClosed
	}
}

// Read implements io.Reader for the oto player. Missing frames are played
// as silence and counted as underruns.
func (s *Sink) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(p) / bytesPerFrame * bytesPerFrame
	for off := 0; off < n; off += bytesPerFrame {
		var f [2]float32
		select {
		case f = <-s.frames:
		default:
			s.underruns.Add(1)
		}
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(f[0]))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(f[1]))
	}
	clear(p[n:])
	return len(p), nil
}

// Underruns returns the number of frames the device asked for while the
// queue was empty.
func (s *Sink) Underruns() int64 {
	return s.underruns.Load()
}

// Close waits for queued frames to reach the device, then stops playback.
// Frames still queued after the queue's duration plus drainSlack are
// dropped.
func (s *Sink) Close() error {
	var err error
	s.once.Do(func() {
		if s.player != nil {
			s.drain()
		}
		close(s.done)
		if s.player != nil {
			err = s.player.Close()
		}
	})
	return err
}

const drainSlack = time.Second

func (s *Sink) drain() {
	wait := time.Duration(cap(s.frames))*time.Second/time.Duration(max(s.sampleRate, 1)) + drainSlack
	deadline := time.Now().Add(wait)
	for len(s.frames) > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// let the device buffer play out
	time.Sleep(2 * s.latency)
}
