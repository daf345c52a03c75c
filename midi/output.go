package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-pianolearn/debug"
	"go-pianolearn/score"
)

// Output sends events to a MIDI output port. It implements
// sequencer.Connection; a failed send stops playback.
type Output struct {
	name string
	port drivers.Out
	send func(gomidi.Message) error
}

// OpenOutput opens port for sending.
func OpenOutput(port drivers.Out) (*Output, error) {
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", port, err)
	}
	debug.Logger().Info("output opened", "port", port.String())
	return &Output{name: port.String(), port: port, send: send}, nil
}

// NewOutput wraps a send function, for outputs that are not driver ports.
func NewOutput(name string, send func(gomidi.Message) error) *Output {
	return &Output{name: name, send: send}
}

func (o *Output) Name() string {
	return o.name
}

func (o *Output) Play(ev score.MidiEvent) bool {
	if err := o.send(ev.Message); err != nil {
		debug.Logger().Warn("send failed", "port", o.name, "err", err)
		return false
	}
	return true
}

func (o *Output) Close() error {
	debug.Logger().Info("closing output", "port", o.name)
	if o.port == nil {
		return nil
	}
	return o.port.Close()
}
