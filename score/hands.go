package score

import (
	"fmt"
	"strings"
)

// Hand selects which part the learner practices.
type Hand int

const (
	HandRight Hand = iota
	HandLeft
	HandBoth
)

func (h Hand) String() string {
	switch h {
	case HandRight:
		return "right"
	case HandLeft:
		return "left"
	case HandBoth:
		return "both"
	}
	return fmt.Sprintf("hand(%d)", int(h))
}

// ParseHand accepts "right", "left", "both" or their index 0, 1, 2.
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r", "0":
		return HandRight, nil
	case "left", "l", "1":
		return HandLeft, nil
	case "both", "b", "2":
		return HandBoth, nil
	}
	return 0, fmt.Errorf("unknown hand %q (want right, left or both)", s)
}

// AllTracks as a practice track means every track is practiced.
const AllTracks = 0

// Hands holds the track indexes of the two piano parts.
type Hands struct {
	Right int
	Left  int
}

// Classify labels the last two tracks as right and left hand: the one whose
// first struck key is higher is the right hand. With fewer than two tracks
// both hands map to track 0.
func Classify(tracks []Track) Hands {
	if len(tracks) < 2 {
		return Hands{}
	}

	first, second := len(tracks)-2, len(tracks)-1
	if firstKey(tracks[second]) > firstKey(tracks[first]) {
		return Hands{Right: second, Left: first}
	}
	return Hands{Right: first, Left: second}
}

// Practice returns the practice track for the selected hand.
func (h Hands) Practice(hand Hand) int {
	switch hand {
	case HandRight:
		return h.Right
	case HandLeft:
		return h.Left
	}
	return AllTracks
}

// firstKey returns the key of the first note on in the track, or 0.
func firstKey(t Track) uint8 {
	for _, te := range t {
		me, ok := te.Event.(MidiEvent)
		if !ok {
			continue
		}
		if key, _, ok := me.NoteOn(); ok {
			return key
		}
	}
	return 0
}
