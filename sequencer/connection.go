package sequencer

import (
	"gitlab.com/gomidi/midi/v2"

	"go-pianolearn/score"
)

// Connection is where played events go, usually a MIDI output port.
type Connection interface {
	// Play sends one event. Returning false stops playback.
	Play(ev score.MidiEvent) bool
}

// AllNotesOffer is implemented by connections with a faster way to silence
// everything than one note off per key.
type AllNotesOffer interface {
	AllNotesOff()
}

// AllNotesOff silences every key on every channel. Without a native
// AllNotesOff it sends a note off for channels 0-15 by keys 0-127, in that
// order, ignoring rejections.
func AllNotesOff(c Connection) {
	if a, ok := c.(AllNotesOffer); ok {
		a.AllNotesOff()
		return
	}
	for ch := uint8(0); ch < 16; ch++ {
		for key := uint8(0); key < 128; key++ {
			c.Play(score.MidiEvent{Channel: ch, Message: midi.NoteOffVelocity(ch, key, 127)})
		}
	}
}

// Input delivers raw messages from a live MIDI input. The handler runs on
// the input's own goroutine and must not block.
type Input interface {
	Listen(handler func(msg []byte)) (stop func(), err error)
}
