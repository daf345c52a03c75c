package sequencer

import (
	"slices"
	"sync"
)

// expectation is the state of one key the learner waits for.
type expectation struct {
	held bool // currently down
	hit  bool // went down at least once since it was required
}

// learnState is shared between the learner loop and the input listener.
// The expected keys and the held keys have separate locks and no code path
// holds both.
type learnState struct {
	mu       sync.Mutex
	cond     *sync.Cond
	expected map[uint8]expectation
	err      error

	pmu     sync.Mutex
	pressed map[uint8]bool
}

func newLearnState() *learnState {
	st := &learnState{
		expected: make(map[uint8]expectation),
		pressed:  make(map[uint8]bool),
	}
	st.cond = sync.NewCond(&st.mu)
	return st
}

// require adds key to the keys the next wait blocks on.
func (st *learnState) require(key uint8) {
	st.mu.Lock()
	st.expected[key] = expectation{}
	st.mu.Unlock()
}

// press records a key going down. It reports whether the key was expected.
func (st *learnState) press(key uint8) bool {
	st.pmu.Lock()
	st.pressed[key] = true
	st.pmu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.expected[key]
	if !ok {
		return false
	}
	e.held, e.hit = true, true
	st.expected[key] = e
	st.cond.Broadcast()
	return true
}

// release records a key going up. It reports whether the key was expected.
func (st *learnState) release(key uint8) bool {
	st.pmu.Lock()
	delete(st.pressed, key)
	st.pmu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.expected[key]
	if !ok {
		return false
	}
	e.held = false
	st.expected[key] = e
	return true
}

func (st *learnState) isPressed(key uint8) bool {
	st.pmu.Lock()
	defer st.pmu.Unlock()
	return st.pressed[key]
}

func (st *learnState) heldKeys() []uint8 {
	st.pmu.Lock()
	keys := make([]uint8, 0, len(st.pressed))
	for k := range st.pressed {
		keys = append(keys, k)
	}
	st.pmu.Unlock()
	slices.Sort(keys)
	return keys
}

func (st *learnState) expectedKeys() []uint8 {
	st.mu.Lock()
	keys := make([]uint8, 0, len(st.expected))
	for k := range st.expected {
		keys = append(keys, k)
	}
	st.mu.Unlock()
	slices.Sort(keys)
	return keys
}

// fail aborts any wait in progress and every later one.
func (st *learnState) fail(err error) {
	st.mu.Lock()
	if st.err == nil {
		st.err = err
	}
	st.cond.Broadcast()
	st.mu.Unlock()
}

// wait blocks until every required key went down at least once, then
// forgets the required keys. It reports whether there was anything to
// wait for.
func (st *learnState) wait() (bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	had := len(st.expected) > 0
	for !st.satisfied() && st.err == nil {
		st.cond.Wait()
	}
	clear(st.expected)
	return had, st.err
}

// satisfied must be called with mu held.
func (st *learnState) satisfied() bool {
	for _, e := range st.expected {
		if !e.hit {
			return false
		}
	}
	return true
}
