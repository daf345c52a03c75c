// Package led maps piano keys to positions on an addressable LED strip and
// picks the colour each lit key gets.
package led

// Strip geometry for an 88-key keyboard with two LEDs per key.
const (
	Count      = 176
	LowestKey  = 21
	HighestKey = 108
)

// Index returns the strip position of a key.
//
// The strip is wired in four bands that each lose one LED at the band edge,
// so the offset grows by one at keys 56, 69 and 93. Only keys for which
// InRange is true yield a valid position.
func Index(key uint8) int {
	var offset int
	switch {
	case key < 56:
		offset = 39
	case key < 69:
		offset = 40
	case key < 93:
		offset = 41
	default:
		offset = 42
	}
	return int(key)*2 - offset
}

// InRange reports whether key is on the physical keyboard.
func InRange(key uint8) bool {
	return key >= LowestKey && key <= HighestKey
}
