package sequencer

import (
	"slices"
	"sync"
)

// Status is a snapshot of a running session for display.
type Status struct {
	Position int // index of the moment being played
	Length   int // length of the sheet in ticks
	Playing  bool
	Waiting  bool    // learner is blocked on the keyboard
	Expected []uint8 // keys the learner waits for
	Pressed  []uint8 // keys held on the keyboard
}

// progress tracks Status and notifies a UI without ever blocking playback.
type progress struct {
	mu     sync.Mutex
	status Status

	updateOnce sync.Once
	updates    chan struct{}
}

// Updates returns a channel that receives a value whenever Status changes.
// Notifications are coalesced; a slow reader only misses intermediate ones.
func (p *progress) Updates() <-chan struct{} {
	p.updateOnce.Do(func() { p.updates = make(chan struct{}, 1) })
	return p.updates
}

func (p *progress) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.status
	s.Expected = slices.Clone(s.Expected)
	s.Pressed = slices.Clone(s.Pressed)
	return s
}

func (p *progress) update(f func(*Status)) {
	p.mu.Lock()
	f(&p.status)
	p.mu.Unlock()
	p.notify()
}

func (p *progress) notify() {
	p.updateOnce.Do(func() { p.updates = make(chan struct{}, 1) })
	select {
	case p.updates <- struct{}{}:
	default:
	}
}
