// Package colorspace converts 8-bit RGB triples to HSV and back.
//
// Saturation and value are kept on the same 0-255 scale as the RGB
// channels rather than the conventional 0-1 fraction, so callers working
// in the integer pixel domain can add offsets to them directly. Hue is in
// degrees, 0 <= H < 360.
//
// All functions are pure and safe for concurrent use.
package colorspace

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color in hue/saturation/value space.
type HSV struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-255 (0=gray)
	V float64 `json:"v"` // Value: 0-255 (0=black)
}

// RGBToHSV converts 8-bit RGB components to HSV.
//
// The achromatic case (r == g == b) yields H = 0 and S = 0.
func RGBToHSV(r, g, b uint8) HSV {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v := c.Hsv()
	return HSV{H: h, S: s * 255.0, V: v * 255.0}
}

// HSVToRGB converts an HSV color back to 8-bit RGB components.
//
// The hue is reduced modulo 360 first, so negative hues and hues past a
// full turn wrap around the color wheel. Saturation and value are clamped
// to [0, 255]. Output channels are rounded to the nearest integer.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	c := colorful.Hsv(NormalizeHue(h), clampUnit(s/255.0), clampUnit(v/255.0))
	return c.Clamped().RGB255()
}

// ToRGB is HSVToRGB for an HSV value.
func (c HSV) ToRGB() (r, g, b uint8) {
	return HSVToRGB(c.H, c.S, c.V)
}

// NormalizeHue maps any finite angle in degrees onto [0, 360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360.0)
	if h < 0 {
		h += 360.0
	}
	// A tiny negative remainder can round back up to exactly 360.
	if h >= 360.0 {
		h = 0
	}
	return h
}

func clampUnit(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
