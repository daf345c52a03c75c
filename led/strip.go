package led

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-pianolearn/debug"
)

// ErrTransport wraps every failed frame write. A strip that failed once is
// out of sync with the buffer and should not be driven further.
var ErrTransport = errors.New("led transport failure")

// Transport sends whole frames to the physical strip.
type Transport interface {
	WriteFrame(frame []RGB) error
	Close() error
}

// DefaultFPS is the refresh rate of Run.
const DefaultFPS = 30

// Strip is the frame buffer for an LED strip. Writers only touch the buffer
// and mark it dirty; Flush and Run push it to the transport.
type Strip struct {
	mu    sync.Mutex
	frame []RGB
	dirty bool

	wmu       sync.Mutex // serialises transport writes
	transport Transport

	FPS int
}

// NewStrip returns a dark strip of count LEDs. A nil transport makes
// flushing a no-op.
func NewStrip(t Transport, count int) *Strip {
	return &Strip{
		frame:     make([]RGB, count),
		transport: t,
		FPS:       DefaultFPS,
	}
}

func (s *Strip) Len() int {
	return len(s.frame)
}

// Set colours LED i. Out of range positions are ignored.
func (s *Strip) Set(i int, c RGB) {
	if i < 0 || i >= len(s.frame) {
		return
	}
	s.mu.Lock()
	if s.frame[i] != c {
		s.frame[i] = c
		s.dirty = true
	}
	s.mu.Unlock()
}

// SetKey colours the LED of a piano key. It reports false for keys off the
// keyboard.
func (s *Strip) SetKey(key uint8, c RGB) bool {
	if !InRange(key) {
		return false
	}
	s.Set(Index(key), c)
	return true
}

// Key returns the colour currently buffered for key.
func (s *Strip) Key(key uint8) RGB {
	if !InRange(key) {
		return Off
	}
	i := Index(key)
	if i >= len(s.frame) {
		return Off
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame[i]
}

func (s *Strip) Clear() {
	s.mu.Lock()
	for i := range s.frame {
		s.frame[i] = Off
	}
	s.dirty = true
	s.mu.Unlock()
}

// Snapshot returns a copy of the buffer.
func (s *Strip) Snapshot() []RGB {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RGB, len(s.frame))
	copy(out, s.frame)
	return out
}

// Flush writes the buffer to the transport whether or not it changed.
func (s *Strip) Flush() error {
	s.mu.Lock()
	frame := make([]RGB, len(s.frame))
	copy(frame, s.frame)
	s.dirty = false
	s.mu.Unlock()

	if s.transport == nil {
		return nil
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := s.transport.WriteFrame(frame); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

// Run flushes the buffer at FPS whenever it is dirty, until ctx is done or
// a write fails. The buffer is flushed once more on the way out.
func (s *Strip) Run(ctx context.Context) error {
	fps := s.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.flushIfDirty()
		case <-ticker.C:
			if err := s.flushIfDirty(); err != nil {
				debug.Log("led", "refresh failed: %v", err)
				return err
			}
		}
	}
}

func (s *Strip) flushIfDirty() error {
	s.mu.Lock()
	dirty := s.dirty
	s.mu.Unlock()
	if !dirty {
		return nil
	}
	return s.Flush()
}

func (s *Strip) Close() error {
	if s.transport == nil {
		return nil
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.transport.Close()
}
