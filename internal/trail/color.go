package trail

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB triple with channels in [0, 1].
type Color = colorful.Color

// ColorMap maps a z coordinate to a color along a hue ramp.
// Hues are expressed in turns, so 0.7 is 252°.
type ColorMap struct {
	MinZ       float64 `yaml:"min_z"`
	MaxZ       float64 `yaml:"max_z"`
	HueStart   float64 `yaml:"hue_start"`
	HueEnd     float64 `yaml:"hue_end"`
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
}

// DefaultColorMap ramps from violet at z=-30 to red at z=50.
var DefaultColorMap = ColorMap{
	MinZ:       -30,
	MaxZ:       50,
	HueStart:   0.7,
	HueEnd:     0.0,
	Saturation: 1.0,
	Lightness:  0.55,
}

// Normalize returns z's position between MinZ and MaxZ clamped to [0, 1].
func (m ColorMap) Normalize(z float64) float64 {
	span := m.MaxZ - m.MinZ
	if span == 0 || math.IsNaN(z) {
		return 0
	}
	t := (z - m.MinZ) / span
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// At returns the color for z.
func (m ColorMap) At(z float64) Color {
	t := m.Normalize(z)
	hue := m.HueStart + (m.HueEnd-m.HueStart)*t
	hue -= math.Floor(hue)
	return colorful.Hsl(hue*360, clamp01(m.Saturation), clamp01(m.Lightness))
}

// ColorOf maps z through DefaultColorMap.
func ColorOf(z float64) Color {
	return DefaultColorMap.At(z)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
