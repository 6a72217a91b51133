package otosink

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/output"
)

func TestReadDrainsQueue(t *testing.T) {
	s := newSink(4)
	if err := s.Send(0.5, -0.5); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if err := s.Send(0.25, -0.25); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	p := make([]byte, 3*bytesPerFrame+3)
	n, err := s.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read() = %d, %v, want %d, nil", n, err, len(p))
	}
	want := []float32{0.5, -0.5, 0.25, -0.25, 0, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:]))
		if got != w {
			t.Fatalf("sample %d = %v, want %v", i, got, w)
		}
	}
	if s.Underruns() != 1 {
		t.Fatalf("Underruns() = %d, want 1", s.Underruns())
	}
}

func TestRealtime(t *testing.T) {
	if !newSink(1).Realtime() {
		t.Fatal("Realtime() = false, want true")
	}
}

func TestSendAfterClose(t *testing.T) {
	s := newSink(1)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Send(0, 0); !errors.Is(err, output.ErrClosed) {
		t.Fatalf("Send() error = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestCloseUnblocksSend(t *testing.T) {
	s := newSink(1)
	if err := s.Send(1, 1); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	errc := make(chan error, 1)
	go func() { errc <- s.Send(2, 2) }()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := <-errc; !errors.Is(err, output.ErrClosed) {
		t.Fatalf("blocked Send() error = %v, want ErrClosed", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := defaultConfig()
	if err := WithQueueFrames(0)(&cfg); err == nil {
		t.Fatal("WithQueueFrames(0) expected error")
	}
	if err := WithBufferSize(-1)(&cfg); err == nil {
		t.Fatal("WithBufferSize(-1) expected error")
	}
	if _, err := New(0); err == nil {
		t.Fatal("New(0) expected error")
	}
}
