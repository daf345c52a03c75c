package led

import "sync"

// MemoryTransport keeps every frame written to it. It stands in for the
// strip on machines without one.
type MemoryTransport struct {
	mu     sync.Mutex
	frames [][]RGB
	closed bool

	// Fail, when set, is returned by every write.
	Fail error
}

func (m *MemoryTransport) WriteFrame(frame []RGB) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	f := make([]RGB, len(frame))
	copy(f, frame)
	m.frames = append(m.frames, f)
	return nil
}

func (m *MemoryTransport) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Frames returns how many frames were written.
func (m *MemoryTransport) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

// Last returns the most recent frame, or nil.
func (m *MemoryTransport) Last() []RGB {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

func (m *MemoryTransport) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
