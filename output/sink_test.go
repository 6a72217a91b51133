package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestPipeByteOrder(t *testing.T) {
	tests := []struct {
		name   string
		endian Endian
		order  binary.ByteOrder
	}{
		{"little", LittleEndian, binary.LittleEndian},
		{"big", BigEndian, binary.BigEndian},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPipe(&buf, tc.endian)
			if !p.Realtime() {
				t.Fatal("Realtime() = false, want true")
			}
			if err := p.Send(0.5, -0.25); err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			if err := p.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			b := buf.Bytes()
			if len(b) != 8 {
				t.Fatalf("wrote %d bytes, want 8", len(b))
			}
			l := math.Float32frombits(tc.order.Uint32(b[0:4]))
			r := math.Float32frombits(tc.order.Uint32(b[4:8]))
			if l != 0.5 || r != -0.25 {
				t.Fatalf("frame = (%v, %v), want (0.5, -0.25)", l, r)
			}
		})
	}
}

func TestPipeClose(t *testing.T) {
	w := &closeRecorder{}
	p := NewPipe(w, LittleEndian)
	if err := SendBlock(p, []float64{1, 2, 3}, []float64{4, 5}); err != nil {
		t.Fatalf("SendBlock() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Fatal("underlying writer not closed")
	}
	if w.Len() != 16 {
		t.Fatalf("wrote %d bytes, want 16", w.Len())
	}
	if err := p.Send(0, 0); !errors.Is(err, ErrClosed) {
		t.Fatalf("Send() after Close error = %v, want ErrClosed", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestDiscardAndBuffer(t *testing.T) {
	var d Discard
	var b Buffer
	for _, s := range []Sink{&d, &b} {
		if s.Realtime() {
			t.Fatalf("%T.Realtime() = true", s)
		}
		if err := SendBlock(s, []float64{0.1, 0.2}, []float64{0.3, 0.4}); err != nil {
			t.Fatalf("SendBlock(%T) error = %v", s, err)
		}
	}
	if d.Frames != 2 {
		t.Fatalf("Discard.Frames = %d, want 2", d.Frames)
	}
	if len(b.Left) != 2 || b.Left[1] != 0.2 || b.Right[0] != 0.3 {
		t.Fatalf("Buffer = %+v", b)
	}
}
