package score

import (
	"fmt"
	"io"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Format is the SMF track layout.
type Format int

const (
	FormatSingle     Format = 0
	FormatParallel   Format = 1
	FormatSequential Format = 2
)

func (f Format) String() string {
	switch f {
	case FormatSingle:
		return "single"
	case FormatParallel:
		return "parallel"
	case FormatSequential:
		return "sequential"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Timing is the header time division. Exactly one of TicksPerBeat
// (metrical) or FramesPerSecond/SubFrames (timecode) is set.
type Timing struct {
	TicksPerBeat    uint16
	FramesPerSecond uint8
	SubFrames       uint8
}

// Metrical is true for tick-per-beat timing.
func (t Timing) Metrical() bool {
	return t.TicksPerBeat > 0
}

// Timecode is true for frame based timing.
func (t Timing) Timecode() bool {
	return !t.Metrical() && t.FramesPerSecond > 0 && t.SubFrames > 0
}

func (t Timing) String() string {
	if t.Metrical() {
		return fmt.Sprintf("%d ticks/beat", t.TicksPerBeat)
	}
	return fmt.Sprintf("%d fps x %d", t.FramesPerSecond, t.SubFrames)
}

// Score is a parsed score: header plus raw tracks.
type Score struct {
	Format Format
	Timing Timing
	Tracks []Track
}

// Sheet lays the score out according to its format.
func (s *Score) Sheet() Sheet {
	if s.Format == FormatParallel {
		return Parallel(s.Tracks)
	}
	return Sequential(s.Tracks)
}

// ReadFile parses a Standard MIDI File from disk.
func ReadFile(path string) (*Score, error) {
	f, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromSMF(f), nil
}

// Read parses a Standard MIDI File.
func Read(r io.Reader) (*Score, error) {
	f, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read smf: %w", err)
	}
	return fromSMF(f), nil
}

func fromSMF(f *smf.SMF) *Score {
	s := &Score{Format: Format(f.Format())}

	switch tf := f.TimeFormat.(type) {
	case smf.MetricTicks:
		s.Timing.TicksPerBeat = uint16(tf)
	case smf.TimeCode:
		s.Timing.FramesPerSecond = tf.FramesPerSecond
		s.Timing.SubFrames = tf.SubFrames
	}

	for i, tr := range f.Tracks {
		s.Tracks = append(s.Tracks, convertTrack(i, tr))
	}
	return s
}

func convertTrack(index int, tr smf.Track) Track {
	out := make(Track, 0, len(tr))
	for _, ev := range tr {
		te := TrackEvent{Delta: ev.Delta}

		var bpm float64
		if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
			te.Event = Tempo(math.Round(60_000_000 / bpm))
		} else if me, ok := NewMidiEvent(index, midi.Message(ev.Message)); ok {
			te.Event = me
		}
		out = append(out, te)
	}
	return out
}
