package timer

import "time"

// ControlTicker works like Ticker but can be paused. A signal on Pause
// pauses before the next sleep; the following signal resumes. Time spent
// paused is not caught up afterwards.
type ControlTicker struct {
	clock

	// Pause toggles playback. A closed channel disables pausing.
	Pause <-chan struct{}

	// Done ends a pause for good: once closed, a paused Sleep returns
	// without sleeping. Nil never fires.
	Done <-chan struct{}
}

// NewControlTicker returns a ControlTicker for the given ticks per beat.
func NewControlTicker(ticksPerBeat uint16, pause <-chan struct{}) *ControlTicker {
	return &ControlTicker{clock: clock{ticksPerBeat: ticksPerBeat, Speed: 1}, Pause: pause}
}

func (c *ControlTicker) Sleep(nTicks uint32) {
	if c.pausePending() {
		if !c.waitResume() {
			return
		}
		c.last = time.Time{}
		c.pending = 0
	}
	Sleep(c.SleepDuration(nTicks))
}

// CancelOn makes a paused Sleep return once done is closed.
func (c *ControlTicker) CancelOn(done <-chan struct{}) {
	c.Done = done
}

// Ticker returns a plain Ticker with the same tempo and speed.
func (c *ControlTicker) Ticker() *Ticker {
	return &Ticker{clock: clock{
		ticksPerBeat:  c.ticksPerBeat,
		microsPerTick: c.microsPerTick,
		Speed:         c.Speed,
	}}
}

func (c *ControlTicker) pausePending() bool {
	if c.Pause == nil {
		return false
	}
	select {
	case _, ok := <-c.Pause:
		if !ok {
			c.Pause = nil
			return false
		}
		return true
	default:
		return false
	}
}

// waitResume blocks until the next toggle. It returns false if Done fired
// first.
func (c *ControlTicker) waitResume() bool {
	select {
	case _, ok := <-c.Pause:
		if !ok {
			c.Pause = nil
		}
		return true
	case <-c.Done:
		return false
	}
}
