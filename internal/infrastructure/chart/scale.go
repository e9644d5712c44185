package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// plasma, sampled at ten stops
var plasma = []color.RGBA{
	{R: 13, G: 8, B: 135, A: 255},
	{R: 70, G: 3, B: 159, A: 255},
	{R: 114, G: 1, B: 168, A: 255},
	{R: 156, G: 23, B: 158, A: 255},
	{R: 189, G: 55, B: 134, A: 255},
	{R: 216, G: 87, B: 107, A: 255},
	{R: 237, G: 121, B: 83, A: 255},
	{R: 251, G: 159, B: 58, A: 255},
	{R: 253, G: 202, B: 38, A: 255},
	{R: 240, G: 249, B: 33, A: 255},
}

// scale is a continuous palette.ColorMap interpolating linearly between stops.
// Values outside [min, max] clamp to the end colours.
type scale struct {
	stops    []color.RGBA
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*scale)(nil)

// newScale spans [lo, hi]. A flat range is widened around lo so the colour
// bar still has extent and lo sits mid-scale.
func newScale(stops []color.RGBA, lo, hi float64) *scale {
	if !(hi > lo) {
		lo, hi = lo-0.5, lo+0.5
	}
	return &scale{stops: stops, min: lo, max: hi, alpha: 1}
}

func (s *scale) At(v float64) (color.Color, error) {
	c := s.colorAt((v - s.min) / (s.max - s.min))
	if s.alpha >= 1 {
		return c, nil
	}
	a := math.Max(s.alpha, 0)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}, nil
}

func (s *scale) Max() float64       { return s.max }
func (s *scale) SetMax(v float64)   { s.max = v }
func (s *scale) Min() float64       { return s.min }
func (s *scale) SetMin(v float64)   { s.min = v }
func (s *scale) Alpha() float64     { return s.alpha }
func (s *scale) SetAlpha(a float64) { s.alpha = a }

// Palette samples n evenly spaced colours, low to high.
func (s *scale) Palette(n int) palette.Palette {
	out := make(colors, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i], _ = s.At(s.min + t*(s.max-s.min))
	}
	return out
}

// colorAt interpolates the stops at t in [0, 1].
func (s *scale) colorAt(t float64) color.RGBA {
	if math.IsNaN(t) {
		t = 0.5
	}
	t = math.Min(math.Max(t, 0), 1)
	pos := t * float64(len(s.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(s.stops)-1 {
		return s.stops[len(s.stops)-1]
	}
	frac := pos - float64(i)
	a, b := s.stops[i], s.stops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }
