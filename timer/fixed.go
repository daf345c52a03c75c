package timer

import (
	"time"

	"go-pianolearn/score"
)

// FixedTempo is the Timer for timecode scores. The value is the length of
// one tick in microseconds; tempo events are ignored.
//
// Few files use timecode division, so this path sees little real-world use.
type FixedTempo uint64

// NewFixedTempo derives the tick length from frames per second and
// subframes per frame.
func NewFixedTempo(framesPerSecond, subFrames uint8) FixedTempo {
	if framesPerSecond == 0 || subFrames == 0 {
		return 0
	}
	return FixedTempo(1_000_000 / float64(framesPerSecond) / float64(subFrames))
}

func (f FixedTempo) SleepDuration(nTicks uint32) time.Duration {
	return time.Duration(uint64(f)*uint64(nTicks)) * time.Microsecond
}

func (f FixedTempo) ChangeTempo(uint32) {}

func (f FixedTempo) Sleep(nTicks uint32) {
	Sleep(f.SleepDuration(nTicks))
}

func (f FixedTempo) Duration(moments []score.Moment) time.Duration {
	return duration(func() time.Duration { return f.SleepDuration(1) }, f.ChangeTempo, moments)
}
