package sequencer

import (
	"slices"
	"sync"
	"testing"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"go-pianolearn/led"
	"go-pianolearn/score"
)

// recorder is a Connection that keeps what it was sent.
type recorder struct {
	mu       sync.Mutex
	events   []score.MidiEvent
	rejectAt int // 1-based call that returns false; 0 accepts everything
}

func (r *recorder) Play(ev score.MidiEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.rejectAt == 0 || len(r.events) < r.rejectAt
}

func (r *recorder) played() []score.MidiEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// fakeTimer never sleeps and records how it was driven.
type fakeTimer struct {
	sleeps      []uint32
	tempos      []uint32
	compensated []time.Duration
}

func (f *fakeTimer) SleepDuration(uint32) time.Duration    { return 0 }
func (f *fakeTimer) ChangeTempo(t uint32)                  { f.tempos = append(f.tempos, t) }
func (f *fakeTimer) Sleep(n uint32)                        { f.sleeps = append(f.sleeps, n) }
func (f *fakeTimer) Duration([]score.Moment) time.Duration { return 0 }
func (f *fakeTimer) Compensate(d time.Duration)            { f.compensated = append(f.compensated, d) }

// fakeInput hands messages to the listener on demand. Messages in held are
// delivered during Listen, as keys already down when the session starts.
type fakeInput struct {
	mu      sync.Mutex
	handler func([]byte)
	held    []midi.Message
	stopped bool
	err     error

	// beforeStop runs when the listener is stopped, while it still delivers.
	beforeStop func()
}

func (f *fakeInput) Listen(h func(msg []byte)) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.held {
		h(m)
	}
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
	return func() {
		if f.beforeStop != nil {
			f.beforeStop()
		}
		f.mu.Lock()
		f.handler = nil
		f.stopped = true
		f.mu.Unlock()
	}, nil
}

func (f *fakeInput) send(msgs ...midi.Message) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		return
	}
	for _, m := range msgs {
		h(m)
	}
}

func (f *fakeInput) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func on(track int, key, vel uint8) score.Event {
	return score.MidiEvent{Track: track, Message: midi.NoteOn(0, key, vel)}
}

func off(track int, key uint8) score.Event {
	return score.MidiEvent{Track: track, Message: midi.NoteOff(0, key)}
}

func moment(events ...score.Event) score.Moment {
	return score.Moment{Events: events}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func allOff(frame []led.RGB) bool {
	for _, c := range frame {
		if c != led.Off {
			return false
		}
	}
	return true
}
