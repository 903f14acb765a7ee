package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RainbowPalette is the hue-ordered reference palette sampled by the rainbow mode.
var RainbowPalette = []colorful.Color{
	{R: 1, G: 0, B: 0},       // red
	{R: 1, G: 0.5, B: 0},     // orange
	{R: 1, G: 1, B: 0},       // yellow
	{R: 0, G: 1, B: 0},       // green
	{R: 0, G: 0, B: 1},       // blue
	{R: 0.29, G: 0, B: 0.51}, // indigo
	{R: 0.56, G: 0, B: 1},    // violet
}

// White is the constant color of the white mode.
var White = colorful.Color{R: 1, G: 1, B: 1}

// SamplePalette interpolates the palette piecewise-linearly at t.
// t is wrapped into [0, 1), scaled into segment space, and the colors at the floor and
// ceil indices are blended by the fractional remainder.
//
// Parameters:
//   - palette: ordered reference colors (empty yields black)
//   - t: sample parameter
//
// Returns:
//   - colorful.Color: the interpolated color
func SamplePalette(palette []colorful.Color, t float64) colorful.Color {
	switch len(palette) {
	case 0:
		return colorful.Color{}
	case 1:
		return palette[0]
	}

	t = wrap01(t)
	scaled := t * float64(len(palette)-1)
	lo := int(math.Floor(scaled))
	hi := min(int(math.Ceil(scaled)), len(palette)-1)
	frac := scaled - float64(lo)
	return palette[lo].BlendRgb(palette[hi], frac)
}

// wrap01 returns t mod 1 in [0, 1), also for negative t.
func wrap01(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	t = math.Mod(t, 1)
	if t < 0 {
		t++
	}
	if t >= 1 {
		t = 0
	}
	return t
}
