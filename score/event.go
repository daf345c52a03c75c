package score

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Event is a single scheduled occurrence: a Tempo change or a MidiEvent.
type Event interface {
	event()
}

// Tempo sets the tempo in microseconds per beat (quarter note).
type Tempo uint32

func (Tempo) event() {}

// MidiEvent is a channel message together with the track it came from.
// Messages other than note on/off are carried through untouched.
type MidiEvent struct {
	Track   int
	Channel uint8
	Message midi.Message
}

func (MidiEvent) event() {}

// NewMidiEvent wraps a channel message. It returns false for anything that
// is not a channel voice message (system, sysex, meta).
func NewMidiEvent(track int, msg midi.Message) (MidiEvent, bool) {
	if len(msg) == 0 || msg[0] < 0x80 || msg[0] >= 0xF0 {
		return MidiEvent{}, false
	}
	return MidiEvent{
		Track:   track,
		Channel: msg[0] & 0x0F,
		Message: msg,
	}, true
}

// NoteOn reports the key and velocity of a note on message. A note on with
// velocity 0 is still reported here; callers decide how to treat it.
func (e MidiEvent) NoteOn() (key, velocity uint8, ok bool) {
	var ch uint8
	ok = e.Message.GetNoteOn(&ch, &key, &velocity)
	return key, velocity, ok
}

// NoteOff reports the key and release velocity of a note off message.
func (e MidiEvent) NoteOff() (key, velocity uint8, ok bool) {
	var ch uint8
	ok = e.Message.GetNoteOff(&ch, &key, &velocity)
	return key, velocity, ok
}

// Key returns the key of a note on or note off message.
func (e MidiEvent) Key() (key uint8, ok bool) {
	if key, _, ok = e.NoteOn(); ok {
		return key, true
	}
	key, _, ok = e.NoteOff()
	return key, ok
}

// Silences is true for note off and for note on with velocity 0.
func (e MidiEvent) Silences() bool {
	if _, vel, ok := e.NoteOn(); ok {
		return vel == 0
	}
	_, _, ok := e.NoteOff()
	return ok
}

func (e MidiEvent) String() string {
	return fmt.Sprintf("track=%d ch=%d %s", e.Track, e.Channel, e.Message.String())
}
