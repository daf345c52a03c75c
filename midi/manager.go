package midi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-pianolearn/debug"
)

// ErrScanTimeout is returned when the MIDI driver does not answer a port
// scan. CoreMIDI can hang; `sudo killall coreaudiod midiserver` recovers it.
var ErrScanTimeout = errors.New("midi port scan timed out")

// ErrNoPort is returned when no port matches a selector.
var ErrNoPort = errors.New("no matching midi port")

const scanTimeout = 3 * time.Second

type ports struct {
	in  []drivers.In
	out []drivers.Out
}

// scan lists the ports with a timeout (CoreMIDI can hang)
func scan() (ports, error) {
	ch := make(chan ports, 1)
	go func() {
		ch <- ports{in: gomidi.GetInPorts(), out: gomidi.GetOutPorts()}
	}()

	select {
	case p := <-ch:
		return p, nil
	case <-time.After(scanTimeout):
		return ports{}, ErrScanTimeout
	}
}

// InPorts lists the MIDI inputs.
func InPorts() ([]drivers.In, error) {
	p, err := scan()
	return p.in, err
}

// OutPorts lists the MIDI outputs.
func OutPorts() ([]drivers.Out, error) {
	p, err := scan()
	return p.out, err
}

// FindIn picks an input port by index or by case-insensitive name substring.
func FindIn(selector string) (drivers.In, error) {
	in, err := InPorts()
	if err != nil {
		return nil, err
	}
	i, err := pick(portNames(in), selector)
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", selector, err)
	}
	return in[i], nil
}

// FindOut picks an output port by index or by case-insensitive name substring.
func FindOut(selector string) (drivers.Out, error) {
	out, err := OutPorts()
	if err != nil {
		return nil, err
	}
	i, err := pick(portNames(out), selector)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", selector, err)
	}
	return out[i], nil
}

func portNames[P fmt.Stringer](ps []P) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return names
}

// pick resolves a selector against port names. An empty selector picks the
// first port.
func pick(names []string, selector string) (int, error) {
	if len(names) == 0 {
		return 0, ErrNoPort
	}
	if selector == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(selector); err == nil {
		if i < 0 || i >= len(names) {
			return 0, fmt.Errorf("index %d of %d ports: %w", i, len(names), ErrNoPort)
		}
		return i, nil
	}
	want := strings.ToLower(selector)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i, nil
		}
	}
	return 0, ErrNoPort
}

// DeviceEvent is emitted when an input port appears or disappears
type DeviceEvent struct {
	Type DeviceEventType
	Name string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// DeviceManager watches the MIDI inputs for hot-plugged keyboards
type DeviceManager struct {
	seen     map[string]bool
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration
}

// NewDeviceManager creates a new device manager
func NewDeviceManager() *DeviceManager {
	return &DeviceManager{
		seen:     make(map[string]bool),
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Connected returns the names of the inputs seen in the last scan
func (dm *DeviceManager) Connected() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	names := make([]string, 0, len(dm.seen))
	for name := range dm.seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()
	defer close(dm.events)

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	in, err := InPorts()
	if err != nil {
		// skip this scan, the driver may recover
		debug.Log("midi", "scan: %v", err)
		return
	}
	dm.update(portNames(in))
}

// update diffs names against the previous scan and emits events.
func (dm *DeviceManager) update(names []string) {
	now := make(map[string]bool, len(names))
	for _, name := range names {
		now[name] = true
	}

	dm.mu.Lock()
	prev := dm.seen
	dm.seen = now
	dm.mu.Unlock()

	for _, name := range names {
		if !prev[name] {
			dm.emit(DeviceEvent{Type: DeviceConnected, Name: name})
		}
	}
	for name := range prev {
		if !now[name] {
			dm.emit(DeviceEvent{Type: DeviceDisconnected, Name: name})
		}
	}
}

func (dm *DeviceManager) emit(ev DeviceEvent) {
	debug.Log("midi", "device %s: %s", ev.Type, ev.Name)
	select {
	case dm.events <- ev:
	default:
		// drop if nobody is listening
	}
}
