package score

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when two timelines of different length are merged.
var ErrLengthMismatch = errors.New("sheet length mismatch")

// TrackEvent is one entry of a raw track: a delta in ticks and the event.
// Event is nil for entries the core does not model (meta text, sysex,
// end of track); they still advance time.
type TrackEvent struct {
	Delta uint32
	Event Event
}

// Track is an ordered list of raw track events.
type Track []TrackEvent

// Moment holds the events that happen at the same tick.
type Moment struct {
	Events []Event
}

// IsEmpty is true when the moment has no events.
func (m Moment) IsEmpty() bool {
	return len(m.Events) == 0
}

// Push appends an event to the moment.
func (m *Moment) Push(e Event) {
	m.Events = append(m.Events, e)
}

// Merge returns a new moment with the events of m followed by those of other.
func (m Moment) Merge(other Moment) Moment {
	if other.IsEmpty() {
		return m.clone()
	}
	if m.IsEmpty() {
		return other.clone()
	}
	events := make([]Event, 0, len(m.Events)+len(other.Events))
	events = append(events, m.Events...)
	events = append(events, other.Events...)
	return Moment{Events: events}
}

func (m Moment) clone() Moment {
	if m.IsEmpty() {
		return Moment{}
	}
	return Moment{Events: append([]Event(nil), m.Events...)}
}

// filter keeps the events for which keep returns true. An all-filtered
// moment collapses to the zero Moment.
func (m Moment) filter(keep func(Event) bool) Moment {
	var out Moment
	for _, e := range m.Events {
		if keep(e) {
			out.Push(e)
		}
	}
	return out
}

// Sheet is a timeline of moments; index i is tick i, so len is the length in ticks.
type Sheet []Moment

// Single lays one track out on a timeline.
func Single(track Track) Sheet {
	if len(track) == 0 {
		return nil
	}

	var (
		sheet Sheet
		cur   Moment
	)
	for _, te := range track {
		if te.Delta > 0 {
			sheet = append(sheet, cur)
			for i := uint32(1); i < te.Delta; i++ {
				sheet = append(sheet, Moment{})
			}
			cur = Moment{}
		}
		if te.Event != nil {
			cur.Push(te.Event)
		}
	}
	return append(sheet, cur)
}

// Sequential plays tracks one after another.
func Sequential(tracks []Track) Sheet {
	var sheet Sheet
	for _, t := range tracks {
		sheet = append(sheet, Single(t)...)
	}
	return sheet
}

// Parallel plays all tracks at once, merging moments at equal ticks. Shorter
// tracks are padded with empty moments.
func Parallel(tracks []Track) Sheet {
	var sheet Sheet
	for _, t := range tracks {
		single := Single(t)
		for len(sheet) < len(single) {
			sheet = append(sheet, Moment{})
		}
		for i, m := range single {
			if !m.IsEmpty() {
				sheet[i] = sheet[i].Merge(m)
			}
		}
	}
	return sheet
}

// Clone returns a deep copy of the sheet.
func (s Sheet) Clone() Sheet {
	if s == nil {
		return nil
	}
	out := make(Sheet, len(s))
	for i, m := range s {
		out[i] = m.clone()
	}
	return out
}

// ExtractNonMidi returns a copy of the sheet without Midi events.
func (s Sheet) ExtractNonMidi() Sheet {
	return s.filter(func(e Event) bool {
		_, isMidi := e.(MidiEvent)
		return !isMidi
	})
}

// OnlyTrack returns a copy holding only the Midi events of the given track.
// The length is unchanged.
func (s Sheet) OnlyTrack(track int) Sheet {
	return s.filter(func(e Event) bool {
		me, ok := e.(MidiEvent)
		return ok && me.Track == track
	})
}

func (s Sheet) filter(keep func(Event) bool) Sheet {
	if s == nil {
		return nil
	}
	out := make(Sheet, len(s))
	for i, m := range s {
		out[i] = m.filter(keep)
	}
	return out
}

// MergeWith adds the non-Midi events of other (tempo changes) to s. Both
// sheets must have the same length; on mismatch s is left untouched.
func (s Sheet) MergeWith(other Sheet) error {
	if len(s) != len(other) {
		return fmt.Errorf("merge %d ticks into %d: %w", len(other), len(s), ErrLengthMismatch)
	}
	donor := other.ExtractNonMidi()
	for i, m := range donor {
		if !m.IsEmpty() {
			s[i] = s[i].Merge(m)
		}
	}
	return nil
}

// Events counts all events in the sheet.
func (s Sheet) Events() int {
	n := 0
	for _, m := range s {
		n += len(m.Events)
	}
	return n
}
