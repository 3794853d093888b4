// Package raster defines the in-memory pixel model shared by every
// operation in the engine.
//
// A Buffer holds one image as a flat, row-major sequence of interleaved,
// non-premultiplied RGBA samples. Channel c of pixel (x, y) lives at
// ((y*Width)+x)*4 + c. The buffer is owned by whoever created it; engine
// operations never retain a reference past the call they were given it in.
//
// Buffers are not safe for concurrent mutation. Parallel operations in
// this module split work by rows and each worker writes only its own rows.
package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Channels is the number of samples stored per pixel.
const Channels = 4

// Channel offsets within a pixel.
const (
	R = 0
	G = 1
	B = 2
	A = 3
)

// PixelQuad is a single RGBA pixel with 8-bit components.
type PixelQuad struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// Hex formats the quad as "#rrggbb". Alpha is excluded.
func (p PixelQuad) Hex() string {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}.Hex()
}

// CSS formats the quad as a CSS "rgb(r,g,b)" color.
func (p PixelQuad) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", p.R, p.G, p.B)
}

// Buffer is a 2-D raster of RGBA pixels.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed (transparent black) buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}, nil
}

// FromPix wraps an existing sample slice after validating its length.
// The slice is not copied.
func FromPix(width, height int, pix []uint8) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Pix: pix}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// FromImage copies any image into a new buffer, converting it to
// non-premultiplied 8-bit RGBA. The result origin is always (0, 0).
func FromImage(img image.Image) (*Buffer, error) {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	return FromPix(bounds.Dx(), bounds.Dy(), nrgba.Pix)
}

// Validate checks that the width and height are positive and that the
// sample count equals width * height * 4.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidDimensions)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: %dx%d needs %d samples, have %d",
			ErrInvalidDimensions, b.Width, b.Height, want, len(b.Pix))
	}
	return nil
}

// Offset returns the index of the red sample of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// Stride returns the number of samples in one row.
func (b *Buffer) Stride() int {
	return b.Width * Channels
}

// Row returns the samples of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []uint8 {
	start := y * b.Stride()
	return b.Pix[start : start+b.Stride() : start+b.Stride()]
}

// Rows returns the samples of rows [start, end) as one slice aliasing the
// buffer.
func (b *Buffer) Rows(start, end int) []uint8 {
	return b.Pix[start*b.Stride() : end*b.Stride()]
}

// At returns the pixel at (x, y). Coordinates must be in bounds.
func (b *Buffer) At(x, y int) PixelQuad {
	i := b.Offset(x, y)
	return PixelQuad{R: b.Pix[i+R], G: b.Pix[i+G], B: b.Pix[i+B], A: b.Pix[i+A]}
}

// Set writes the pixel at (x, y). Coordinates must be in bounds.
func (b *Buffer) Set(x, y int, p PixelQuad) {
	i := b.Offset(x, y)
	b.Pix[i+R] = p.R
	b.Pix[i+G] = p.G
	b.Pix[i+B] = p.B
	b.Pix[i+A] = p.A
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p PixelQuad) {
	for i := 0; i < len(b.Pix); i += Channels {
		b.Pix[i+R] = p.R
		b.Pix[i+G] = p.G
		b.Pix[i+B] = p.B
		b.Pix[i+A] = p.A
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Equal reports whether two buffers have the same dimensions and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Rect copies the pixels of the rectangle [x, x+w) × [y, y+h) into a new
// flat RGBA sequence, row by row.
//
// Returns ErrInvalidRegion if w or h is not positive or if the rectangle
// is not fully inside the raster.
func (b *Buffer) Rect(x, y, w, h int) ([]uint8, error) {
	if err := b.checkRect(x, y, w, h); err != nil {
		return nil, err
	}

	out := make([]uint8, 0, w*h*Channels)
	for row := y; row < y+h; row++ {
		start := b.Offset(x, row)
		out = append(out, b.Pix[start:start+w*Channels]...)
	}
	return out, nil
}

func (b *Buffer) checkRect(x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidRegion, w, h)
	}
	// Compared as x > Width-w so huge coordinates cannot wrap around.
	if x < 0 || y < 0 || x > b.Width-w || y > b.Height-h {
		return fmt.Errorf("%w: %dx%d at (%d,%d) outside raster bounds %dx%d",
			ErrInvalidRegion, w, h, x, y, b.Width, b.Height)
	}
	return nil
}

// Image returns an *image.NRGBA view of the buffer. The view shares the
// buffer's samples; writes through either are visible in both.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
