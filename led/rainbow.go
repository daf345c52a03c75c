package led

import "math"

// PowerCurve bends x in [0,1] exponentially; p = 0 is the identity and
// positive p pushes values up.
func PowerCurve(x, p float64) float64 {
	if p == 0 {
		return x
	}
	return (math.Exp(-p*x) - 1) / (math.Exp(-p) - 1)
}

// VelocityCurve picks a rainbow colour from a note velocity. Scale and Curve
// are percentages, Offset rotates the wheel.
type VelocityCurve struct {
	Offset int `yaml:"offset"`
	Scale  int `yaml:"scale"`
	Curve  int `yaml:"curve"`
}

var DefaultVelocityCurve = VelocityCurve{Offset: 210, Scale: 120, Curve: 0}

// Index returns the rainbow position for velocity.
func (v VelocityCurve) Index(velocity uint8) int {
	x := 255 * PowerCurve(float64(velocity)/127, float64(v.Curve)/100) * float64(v.Scale) / 100
	i := int(math.Mod(math.Mod(x, 256)+float64(v.Offset), 256))
	if i < 0 {
		i += 256
	}
	return i
}

func (v VelocityCurve) Color(velocity uint8) RGB {
	return rainbow[v.Index(velocity)]
}
