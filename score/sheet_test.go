package score

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gitlab.com/gomidi/midi/v2"
)

func noteOn(track int, key, vel uint8) MidiEvent {
	me, _ := NewMidiEvent(track, midi.NoteOn(0, key, vel))
	return me
}

func noteOff(track int, key uint8) MidiEvent {
	me, _ := NewMidiEvent(track, midi.NoteOff(0, key))
	return me
}

// trackFromDeltas builds a track with one note on per delta.
func trackFromDeltas(index int, deltas []uint32) Track {
	var t Track
	for _, d := range deltas {
		t = append(t, TrackEvent{Delta: d, Event: noteOn(index, 60, 100)})
	}
	return t
}

func singleLen(deltas []uint32) int {
	if len(deltas) == 0 {
		return 0
	}
	n := 1
	for _, d := range deltas {
		n += int(d)
	}
	return n
}

func midiCount(m Moment) int {
	n := 0
	for _, e := range m.Events {
		if _, ok := e.(MidiEvent); ok {
			n++
		}
	}
	return n
}

func TestSingle(t *testing.T) {
	track := Track{
		{Delta: 0, Event: Tempo(500000)},
		{Delta: 0, Event: noteOn(1, 60, 90)},
		{Delta: 3, Event: noteOff(1, 60)},
		{Delta: 2, Event: nil},
	}

	sheet := Single(track)
	if len(sheet) != 6 {
		t.Fatalf("len = %d, want 6", len(sheet))
	}
	if got := len(sheet[0].Events); got != 2 {
		t.Errorf("tick 0 has %d events, want 2", got)
	}
	for _, i := range []int{1, 2, 4, 5} {
		if !sheet[i].IsEmpty() {
			t.Errorf("tick %d should be empty", i)
		}
	}
	if got := len(sheet[3].Events); got != 1 {
		t.Errorf("tick 3 has %d events, want 1", got)
	}
}

func TestSingleEmptyTrack(t *testing.T) {
	if sheet := Single(nil); len(sheet) != 0 {
		t.Errorf("len = %d, want 0", len(sheet))
	}
}

func TestParallelMergesEqualTicks(t *testing.T) {
	tracks := []Track{
		{{Delta: 0, Event: Tempo(400000)}},
		{{Delta: 2, Event: noteOn(1, 60, 100)}},
		{{Delta: 2, Event: noteOn(2, 48, 100)}, {Delta: 1, Event: noteOff(2, 48)}},
	}

	sheet := Parallel(tracks)
	if len(sheet) != 4 {
		t.Fatalf("len = %d, want 4", len(sheet))
	}
	if got := midiCount(sheet[2]); got != 2 {
		t.Errorf("tick 2 midi events = %d, want 2", got)
	}
	if _, ok := sheet[0].Events[0].(Tempo); !ok {
		t.Errorf("tick 0 should hold the tempo event")
	}
}

func TestSheetLengthProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	deltas := gen.SliceOf(gen.UInt32Range(0, 12))

	properties.Property("parallel length is the longest track", prop.ForAll(
		func(a, b, c []uint32) bool {
			tracks := []Track{trackFromDeltas(0, a), trackFromDeltas(1, b), trackFromDeltas(2, c)}
			want := max(singleLen(a), singleLen(b), singleLen(c))
			return len(Parallel(tracks)) == want
		},
		deltas, deltas, deltas,
	))

	properties.Property("sequential length is the sum of tracks", prop.ForAll(
		func(a, b, c []uint32) bool {
			tracks := []Track{trackFromDeltas(0, a), trackFromDeltas(1, b), trackFromDeltas(2, c)}
			want := singleLen(a) + singleLen(b) + singleLen(c)
			return len(Sequential(tracks)) == want
		},
		deltas, deltas, deltas,
	))

	properties.Property("merging extracted meta events keeps midi content", prop.ForAll(
		func(a, b []uint32) bool {
			tempoTrack := Track{{Delta: 0, Event: Tempo(500000)}}
			for _, d := range a {
				tempoTrack = append(tempoTrack, TrackEvent{Delta: d, Event: Tempo(400000 + d)})
			}
			sheet := Parallel([]Track{tempoTrack, trackFromDeltas(1, b)})

			target := sheet.Clone()
			if err := target.MergeWith(sheet); err != nil {
				return false
			}
			for i := range sheet {
				if midiCount(target[i]) != midiCount(sheet[i]) {
					return false
				}
			}
			return true
		},
		deltas, deltas,
	))

	properties.TestingRun(t)
}

func TestExtractNonMidi(t *testing.T) {
	sheet := Sheet{
		{Events: []Event{Tempo(500000), noteOn(1, 60, 100)}},
		{Events: []Event{noteOff(1, 60)}},
		{},
	}

	meta := sheet.ExtractNonMidi()
	if len(meta) != len(sheet) {
		t.Fatalf("len = %d, want %d", len(meta), len(sheet))
	}
	if len(meta[0].Events) != 1 {
		t.Errorf("tick 0 events = %d, want 1", len(meta[0].Events))
	}
	if meta[1].Events != nil {
		t.Errorf("tick 1 should collapse to the zero moment, got %v", meta[1].Events)
	}
	if len(sheet[0].Events) != 2 {
		t.Errorf("source sheet was modified")
	}
}

func TestOnlyTrackThenMerge(t *testing.T) {
	tracks := []Track{
		{{Delta: 0, Event: Tempo(500000)}, {Delta: 4, Event: Tempo(250000)}},
		{{Delta: 0, Event: noteOn(1, 72, 100)}, {Delta: 2, Event: noteOff(1, 72)}},
		{{Delta: 1, Event: noteOn(2, 48, 100)}, {Delta: 1, Event: noteOff(2, 48)}},
	}
	full := Parallel(tracks)

	right := full.OnlyTrack(1)
	if len(right) != len(full) {
		t.Fatalf("len = %d, want %d", len(right), len(full))
	}
	if err := right.MergeWith(full); err != nil {
		t.Fatalf("MergeWith: %v", err)
	}

	var tempos, notes int
	for _, m := range right {
		for _, e := range m.Events {
			switch e := e.(type) {
			case Tempo:
				tempos++
			case MidiEvent:
				notes++
				if e.Track != 1 {
					t.Errorf("event from track %d leaked into practice sheet", e.Track)
				}
			}
		}
	}
	if tempos != 2 || notes != 2 {
		t.Errorf("tempos=%d notes=%d, want 2 and 2", tempos, notes)
	}
}

func TestMergeWithLengthMismatch(t *testing.T) {
	a := Sheet{{Events: []Event{noteOn(0, 60, 1)}}, {}}
	b := Sheet{{Events: []Event{Tempo(1)}}}

	err := a.MergeWith(b)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if len(a[0].Events) != 1 {
		t.Errorf("receiver modified on mismatch")
	}
}

func TestMidiEventDecoding(t *testing.T) {
	on := noteOn(3, 64, 0)
	if key, vel, ok := on.NoteOn(); !ok || key != 64 || vel != 0 {
		t.Errorf("NoteOn() = %d, %d, %v", key, vel, ok)
	}
	if !on.Silences() {
		t.Errorf("velocity 0 note on should silence")
	}
	if noteOn(3, 64, 10).Silences() {
		t.Errorf("sounding note on should not silence")
	}
	if !noteOff(3, 64).Silences() {
		t.Errorf("note off should silence")
	}

	if _, ok := NewMidiEvent(0, midi.Message{0xFF, 0x2F, 0x00}); ok {
		t.Errorf("meta message accepted as midi event")
	}
	cc, ok := NewMidiEvent(2, midi.ControlChange(5, 64, 127))
	if !ok || cc.Channel != 5 || cc.Track != 2 {
		t.Errorf("control change = %+v, %v", cc, ok)
	}
	if _, ok := cc.Key(); ok {
		t.Errorf("control change has no key")
	}
}
