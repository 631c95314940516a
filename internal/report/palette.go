package report

import (
	"fmt"
	"image/color"
	"math"
)

// heatStops is a yellow to red ramp, low to high risk.
var heatStops = []color.RGBA{
	{0xff, 0xff, 0xcc, 0xff},
	{0xff, 0xed, 0xa0, 0xff},
	{0xfe, 0xd9, 0x76, 0xff},
	{0xfe, 0xb2, 0x4c, 0xff},
	{0xfd, 0x8d, 0x3c, 0xff},
	{0xfc, 0x4e, 0x2a, 0xff},
	{0xe3, 0x1a, 0x1c, 0xff},
	{0xbd, 0x00, 0x26, 0xff},
	{0x80, 0x00, 0x26, 0xff},
}

// heatPalette implements gonum's palette.Palette over heatStops.
type heatPalette struct{}

func (heatPalette) Colors() []color.Color {
	out := make([]color.Color, len(heatStops))
	for i, c := range heatStops {
		out[i] = c
	}
	return out
}

// HeatColor maps v within [lo, hi] onto the heat ramp, interpolating
// between stops. A degenerate range maps everything to the middle stop.
func HeatColor(v, lo, hi float64) color.RGBA {
	if hi <= lo || math.IsNaN(v) {
		return heatStops[len(heatStops)/2]
	}
	t := (v - lo) / (hi - lo)
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(heatStops)-1)
	i := int(math.Floor(pos))
	if i >= len(heatStops)-1 {
		return heatStops[len(heatStops)-1]
	}
	frac := pos - float64(i)
	a, b := heatStops[i], heatStops[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 0xff,
	}
}

// HexColor formats c as #rrggbb.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// InkFor picks black or white text for legibility on bg.
func InkFor(bg color.RGBA) color.RGBA {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 150 {
		return color.RGBA{0x1f, 0x29, 0x37, 0xff}
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
