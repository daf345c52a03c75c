package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-pianolearn/debug"
)

// Keyboard is a live MIDI input. It implements sequencer.Input.
type Keyboard struct {
	port drivers.In
}

// NewKeyboard wraps an input port. The port is opened by Listen.
func NewKeyboard(port drivers.In) *Keyboard {
	return &Keyboard{port: port}
}

func (kb *Keyboard) Name() string {
	return kb.port.String()
}

// Listen calls handler with every message the keyboard sends, on the
// driver's goroutine, until stop is called.
func (kb *Keyboard) Listen(handler func(msg []byte)) (stop func(), err error) {
	stop, err = gomidi.ListenTo(kb.port, func(msg gomidi.Message, timestampms int32) {
		handler(msg)
	}, gomidi.HandleError(func(listenErr error) {
		debug.Log("midi", "listen %s: %v", kb.port, listenErr)
	}))
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", kb.port, err)
	}
	debug.Logger().Info("input opened", "port", kb.port.String())
	return stop, nil
}
