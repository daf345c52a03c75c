package timer

import (
	"time"

	"go-pianolearn/score"
)

// clock is the tempo and drift state shared by Ticker and ControlTicker.
type clock struct {
	ticksPerBeat  uint16
	microsPerTick float64

	// last is the instant of the last scheduled wake; zero until the first sleep.
	last    time.Time
	pending time.Duration

	// Speed scales playback; 1 is normal speed. Values <= 0 count as 1.
	Speed float64
}

func (c *clock) ChangeTempo(microsPerBeat uint32) {
	c.microsPerTick = float64(microsPerBeat) / float64(c.ticksPerBeat)
}

// NominalDuration is the length of n ticks at the current tempo, without
// drift correction.
func (c *clock) NominalDuration(nTicks uint32) time.Duration {
	speed := c.Speed
	if speed <= 0 {
		speed = 1
	}
	us := c.microsPerTick * float64(nTicks) / speed
	if us <= 0 {
		return 0
	}
	return time.Duration(int64(us)) * time.Microsecond
}

// SleepDuration returns the nominal duration minus the time already gone
// since the previous scheduled wake, clamped at zero.
func (c *clock) SleepDuration(nTicks uint32) time.Duration {
	t := c.NominalDuration(nTicks)
	now := time.Now()

	switch {
	case c.pending > 0:
		t -= c.pending
		if t < 0 {
			t = 0
		}
		c.pending = 0
		c.last = now.Add(t)
	case c.last.IsZero():
		c.last = now.Add(t)
	default:
		target := c.last.Add(t)
		c.last = target
		t = target.Sub(now)
		if t < 0 {
			t = 0
		}
	}
	return t
}

// Compensate shortens the next sleep by processing and re-anchors the
// drift baseline there, so a long external wait is not caught up later.
func (c *clock) Compensate(processing time.Duration) {
	if processing > 0 {
		c.pending += processing
	}
}

func (c *clock) Duration(moments []score.Moment) time.Duration {
	return duration(func() time.Duration { return c.NominalDuration(1) }, c.ChangeTempo, moments)
}

// Ticker is the Timer for metrical (ticks per beat) scores.
//
// Until a tempo event arrives the tempo is infinitely fast and no sleeps
// happen. Scores set the tempo before the first non-zero delta in practice.
type Ticker struct {
	clock
}

// NewTicker returns a Ticker for the given ticks per beat.
func NewTicker(ticksPerBeat uint16) *Ticker {
	return &Ticker{clock: clock{ticksPerBeat: ticksPerBeat, Speed: 1}}
}

// WithInitialTempo returns a Ticker with the tempo already set.
func WithInitialTempo(ticksPerBeat uint16, microsPerBeat uint32) *Ticker {
	t := NewTicker(ticksPerBeat)
	t.ChangeTempo(microsPerBeat)
	return t
}

func (t *Ticker) Sleep(nTicks uint32) {
	Sleep(t.SleepDuration(nTicks))
}

// Control upgrades the Ticker to a ControlTicker toggled by pause.
func (t *Ticker) Control(pause <-chan struct{}) *ControlTicker {
	return &ControlTicker{clock: t.clock, Pause: pause}
}
