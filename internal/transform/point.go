package transform

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/math/f64"
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/pixel-tools-mcp/internal/colorspace"
	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// pixelFunc rewrites one RGBA pixel in place. p always has length 4.
type pixelFunc func(p []uint8)

// apply runs fn over every pixel of b, distributing row ranges across
// goroutines.
func apply(b *raster.Buffer, fn pixelFunc) {
	parallel.Line(b.Height, func(start, end int) {
		pix := b.Rows(start, end)
		for i := 0; i < len(pix); i += raster.Channels {
			fn(pix[i : i+raster.Channels : i+raster.Channels])
		}
	})
}

// Invert replaces each color channel with 255 minus its value.
func Invert(b *raster.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	apply(b, func(p []uint8) {
		p[raster.R] = 255 - p[raster.R]
		p[raster.G] = 255 - p[raster.G]
		p[raster.B] = 255 - p[raster.B]
	})
	return nil
}

// Threshold binarizes the raster. A pixel whose brightest channel is at
// least t becomes white, otherwise black. Alpha is kept.
//
// Returns ErrParameterOutOfRange if t is outside 0-255.
func Threshold(b *raster.Buffer, t int) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if t < 0 || t > 255 {
		return fmt.Errorf("%w: threshold %d not in 0-255", raster.ErrParameterOutOfRange, t)
	}
	apply(b, func(p []uint8) {
		m := max(p[raster.R], p[raster.G], p[raster.B])
		var out uint8
		if int(m) >= t {
			out = 255
		}
		p[raster.R], p[raster.G], p[raster.B] = out, out, out
	})
	return nil
}

// Hue rotates every pixel's hue by h degrees. Any finite h is accepted;
// the result wraps modulo 360.
func Hue(b *raster.Buffer, h float64) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := checkFinite("hue", h); err != nil {
		return err
	}
	apply(b, func(p []uint8) {
		c := colorspace.RGBToHSV(p[raster.R], p[raster.G], p[raster.B])
		c.H = colorspace.NormalizeHue(c.H + h)
		p[raster.R], p[raster.G], p[raster.B] = c.ToRGB()
	})
	return nil
}

// Saturation adds s (on the 0-255 scale) to every pixel's HSV saturation,
// clamping the result to [0, 255].
func Saturation(b *raster.Buffer, s float64) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := checkFinite("saturation", s); err != nil {
		return err
	}
	apply(b, func(p []uint8) {
		c := colorspace.RGBToHSV(p[raster.R], p[raster.G], p[raster.B])
		c.S = f64.Clamp(c.S+s, 0, 255)
		p[raster.R], p[raster.G], p[raster.B] = c.ToRGB()
	})
	return nil
}

// Value brightens or darkens every pixel by v.
//
// The dominant channel (every channel equal to the pixel's maximum, so a
// tie moves together) is shifted by v and clamped to [0, 255]. The other
// channels are rescaled so their ratio to the dominant channel is
// unchanged. A channel that was 0 stays 0, and a pure black pixel moves
// along the gray axis.
func Value(b *raster.Buffer, v float64) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := checkFinite("value", v); err != nil {
		return err
	}
	apply(b, func(p []uint8) {
		r, g, bl := float64(p[raster.R]), float64(p[raster.G]), float64(p[raster.B])
		m := max(r, g, bl)
		adjusted := f64.Clamp(m+v, 0, 255)
		p[raster.R] = rescale(r, m, adjusted)
		p[raster.G] = rescale(g, m, adjusted)
		p[raster.B] = rescale(bl, m, adjusted)
	})
	return nil
}

// rescale maps channel c from a pixel whose dominant value was m to one
// whose dominant value is adjusted.
func rescale(c, m, adjusted float64) uint8 {
	if c == m {
		return toByte(adjusted)
	}
	if c == 0 || m == 0 {
		return 0
	}
	return toByte(c * adjusted / m)
}

// Contrast multiplies every color channel by c and rounds.
//
// Returns ErrParameterOutOfRange unless c is a finite positive number.
func Contrast(b *raster.Buffer, c float64) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := checkFinite("contrast", c); err != nil {
		return err
	}
	if c <= 0 {
		return fmt.Errorf("%w: contrast factor %v must be positive", raster.ErrParameterOutOfRange, c)
	}

	// 256-entry lookup; every channel maps the same way.
	var lut [256]uint8
	for i := range lut {
		lut[i] = toByte(c * float64(i))
	}
	apply(b, func(p []uint8) {
		p[raster.R] = lut[p[raster.R]]
		p[raster.G] = lut[p[raster.G]]
		p[raster.B] = lut[p[raster.B]]
	})
	return nil
}

// Multiply scales each color channel by a per-channel factor.
//
// Each factor is first clamped to [0, 255]. A factor greater than 1 is
// read as a byte and divided by 255; a factor in [0, 1] is used as a
// fraction directly. So Multiply(b, 255, 128, 0) and
// Multiply(b, 1, 0.5, 0) are nearly identical.
func Multiply(b *raster.Buffer, mr, mg, mb float64) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"multiply r", mr}, {"multiply g", mg}, {"multiply b", mb}} {
		if err := checkFinite(f.name, f.v); err != nil {
			return err
		}
	}

	fr, fg, fb := MultiplyFraction(mr), MultiplyFraction(mg), MultiplyFraction(mb)
	var lr, lg, lb [256]uint8
	for i := 0; i < 256; i++ {
		lr[i] = toByte(float64(i) * fr)
		lg[i] = toByte(float64(i) * fg)
		lb[i] = toByte(float64(i) * fb)
	}
	apply(b, func(p []uint8) {
		p[raster.R] = lr[p[raster.R]]
		p[raster.G] = lg[p[raster.G]]
		p[raster.B] = lb[p[raster.B]]
	})
	return nil
}

// MultiplyFraction normalizes a Multiply factor to [0, 1].
func MultiplyFraction(m float64) float64 {
	m = f64.Clamp(m, 0, 255)
	if m > 1 {
		return m / 255.0
	}
	return m
}

func toByte(f float64) uint8 {
	return uint8(f64.Clamp(math.Round(f), 0, 255))
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", raster.ErrParameterOutOfRange, name, v)
	}
	return nil
}
