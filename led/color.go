package led

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type RGB [3]uint8

// Off is the colour of an unlit LED.
var Off RGB

// ParseRGB reads a "#rrggbb" colour.
func ParseRGB(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Off, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

// Scale dims the colour towards black; level 1 keeps it, 0 turns it off.
func (c RGB) Scale(level float64) RGB {
	if level >= 1 {
		return c
	}
	if level <= 0 {
		return Off
	}
	r, g, b := c.colorful().BlendRgb(colorful.Color{}, 1-level).Clamped().RGB255()
	return RGB{r, g, b}
}

// Role is why a key is lit.
type Role int

const (
	RoleRight   Role = iota // right hand / practice part
	RoleLeft                // other hand and accompaniment
	RoleWrong               // held key that was not asked for
	RoleRepress             // required key that is already down
)

func (r Role) String() string {
	switch r {
	case RoleRight:
		return "right"
	case RoleLeft:
		return "left"
	case RoleWrong:
		return "wrong"
	case RoleRepress:
		return "repress"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Palette holds the colour of each role.
type Palette struct {
	Right   RGB
	Left    RGB
	Wrong   RGB
	Repress RGB

	// MinLevel is the brightness of the softest note; louder notes scale
	// linearly up to full brightness.
	MinLevel float64

	// Rainbow, when set, colours RoleLeft notes by velocity instead.
	Rainbow *VelocityCurve
}

func DefaultPalette() Palette {
	return Palette{
		Right:    RGB{0, 0, 255},
		Left:     RGB{0, 160, 40},
		Wrong:    RGB{255, 0, 0},
		Repress:  RGB{255, 140, 0},
		MinLevel: 0.25,
	}
}

// Color returns the colour of a key sounding with the given role and
// velocity. Velocity 0 means the key is silent and always yields Off.
func (p Palette) Color(role Role, velocity uint8) RGB {
	if velocity == 0 {
		return Off
	}
	var base RGB
	switch role {
	case RoleRight:
		base = p.Right
	case RoleLeft:
		if p.Rainbow != nil {
			return p.Rainbow.Color(velocity)
		}
		base = p.Left
	case RoleWrong:
		return p.Wrong
	case RoleRepress:
		return p.Repress
	default:
		return Off
	}
	v := float64(velocity) / 127
	return base.Scale(p.MinLevel + (1-p.MinLevel)*math.Min(v, 1))
}
