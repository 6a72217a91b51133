package output

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("output: sink closed")

// Sink receives rendered stereo frames one at a time.
type Sink interface {
	// Realtime reports whether the sink consumes frames at the audio rate,
	// so the renderer must keep pace instead of running ahead.
	Realtime() bool
	Send(left, right float64) error
	Close() error
}

// Endian selects the float32 byte order written by Pipe.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Pipe writes interleaved float32 stereo frames to an io.Writer, for
// example stdout piped into aplay or ffplay.
type Pipe struct {
	w      *bufio.Writer
	c      io.Closer
	order  binary.ByteOrder
	frame  [8]byte
	closed bool
}

// NewPipe returns a Pipe writing to w. If w is an io.Closer it is closed by
// Close.
func NewPipe(w io.Writer, endian Endian) *Pipe {
	p := &Pipe{w: bufio.NewWriter(w), order: endian.order()}
	if c, ok := w.(io.Closer); ok {
		p.c = c
	}
	return p
}

// Realtime is true: the consumer on the other end of the pipe plays live.
func (p *Pipe) Realtime() bool { return true }

func (p *Pipe) Send(left, right float64) error {
	if p.closed {
		return ErrClosed
	}
	p.order.PutUint32(p.frame[0:4], math.Float32bits(float32(left)))
	p.order.PutUint32(p.frame[4:8], math.Float32bits(float32(right)))
	_, err := p.w.Write(p.frame[:])
	return err
}

// Flush writes buffered frames to the underlying writer.
func (p *Pipe) Flush() error {
	return p.w.Flush()
}

func (p *Pipe) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	err := p.w.Flush()
	if p.c != nil {
		err = errors.Join(err, p.c.Close())
	}
	return err
}

// Discard drops every frame and counts them.
type Discard struct {
	Frames int
}

func (d *Discard) Realtime() bool { return false }

func (d *Discard) Send(float64, float64) error {
	d.Frames++
	return nil
}

func (d *Discard) Close() error { return nil }

// Buffer records frames in memory.
type Buffer struct {
	Left, Right []float64
}

func (b *Buffer) Realtime() bool { return false }

func (b *Buffer) Send(left, right float64) error {
	b.Left = append(b.Left, left)
	b.Right = append(b.Right, right)
	return nil
}

func (b *Buffer) Close() error { return nil }

// SendBlock pushes paired left/right blocks into s, stopping at the first
// error.
func SendBlock(s Sink, left, right []float64) error {
	n := min(len(left), len(right))
	for i := range n {
		if err := s.Send(left[i], right[i]); err != nil {
			return err
		}
	}
	return nil
}
