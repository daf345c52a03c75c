// Package timer turns MIDI ticks into wall-clock sleeps.
package timer

import (
	"errors"
	"time"

	"go-pianolearn/score"
)

// ErrUnsupportedTiming is returned for a time division no Timer can follow.
var ErrUnsupportedTiming = errors.New("unsupported time format")

// Timer paces playback of a Sheet.
type Timer interface {
	// SleepDuration returns how long to sleep for n ticks.
	SleepDuration(nTicks uint32) time.Duration
	// ChangeTempo sets the tempo in microseconds per beat.
	ChangeTempo(microsPerBeat uint32)
	// Sleep blocks for n ticks.
	Sleep(nTicks uint32)
	// Duration is the playback length of moments. Tempo events found along
	// the way are applied to the Timer, so use a disposable one.
	Duration(moments []score.Moment) time.Duration
}

// Compensator is implemented by timers that can absorb time spent outside
// of Sleep (a learner waiting for keys) into the next sleep.
type Compensator interface {
	Compensate(processing time.Duration)
}

// Canceler is implemented by timers whose Sleep can block without bound,
// like a paused ControlTicker. After CancelOn, such a Sleep returns once
// done is closed.
type Canceler interface {
	CancelOn(done <-chan struct{})
}

// New returns a Ticker for metrical timing and a FixedTempo for timecode.
func New(t score.Timing) (Timer, error) {
	switch {
	case t.Metrical():
		return NewTicker(t.TicksPerBeat), nil
	case t.Timecode():
		return NewFixedTempo(t.FramesPerSecond, t.SubFrames), nil
	}
	return nil, ErrUnsupportedTiming
}

// duration sums one tick per moment and applies tempo events.
func duration(tick func() time.Duration, change func(uint32), moments []score.Moment) time.Duration {
	var total time.Duration
	for _, m := range moments {
		total += tick()
		for _, e := range m.Events {
			if tempo, ok := e.(score.Tempo); ok {
				change(uint32(tempo))
			}
		}
	}
	return total
}
