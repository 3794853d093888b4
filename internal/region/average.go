// Package region computes statistics over rectangular areas of a raster.
package region

import (
	"fmt"
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// Average returns the per-channel mean of a flat RGBA sequence, rounded
// half up to the nearest integer.
//
// Returns ErrEmptyRegion if pix holds no pixels, or ErrInvalidDimensions
// if its length is not a multiple of 4.
func Average(pix []uint8) (raster.PixelQuad, error) {
	if len(pix) == 0 {
		return raster.PixelQuad{}, fmt.Errorf("%w: no pixels to average", raster.ErrEmptyRegion)
	}
	if len(pix)%raster.Channels != 0 {
		return raster.PixelQuad{}, fmt.Errorf("%w: %d samples is not a whole number of RGBA pixels",
			raster.ErrInvalidDimensions, len(pix))
	}

	var sum [raster.Channels]uint64
	for i := 0; i < len(pix); i += raster.Channels {
		sum[raster.R] += uint64(pix[i+raster.R])
		sum[raster.G] += uint64(pix[i+raster.G])
		sum[raster.B] += uint64(pix[i+raster.B])
		sum[raster.A] += uint64(pix[i+raster.A])
	}

	n := float64(len(pix) / raster.Channels)
	mean := func(s uint64) uint8 {
		return uint8(math.Floor(float64(s)/n + 0.5))
	}
	return raster.PixelQuad{
		R: mean(sum[raster.R]),
		G: mean(sum[raster.G]),
		B: mean(sum[raster.B]),
		A: mean(sum[raster.A]),
	}, nil
}

// AverageRegion returns the mean pixel of the rectangle [x, x+w) × [y, y+h).
//
// Returns ErrInvalidRegion if w or h is not positive or the rectangle is
// not fully inside the raster. b is never modified.
func AverageRegion(b *raster.Buffer, x, y, w, h int) (raster.PixelQuad, error) {
	if err := b.Validate(); err != nil {
		return raster.PixelQuad{}, err
	}
	pix, err := b.Rect(x, y, w, h)
	if err != nil {
		return raster.PixelQuad{}, err
	}
	return Average(pix)
}

// Result is a region average in the forms a display client needs.
type Result struct {
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Pixels  int              `json:"pixels"`  // Number of pixels averaged
	Average raster.PixelQuad `json:"average"` // Rounded mean RGBA
	Hex     string           `json:"hex"`     // "#rrggbb", alpha excluded
	CSS     string           `json:"css"`     // "rgb(r,g,b)", e.g. for a page background
}

// Describe averages a region and packages the result for display.
func Describe(b *raster.Buffer, x, y, w, h int) (*Result, error) {
	avg, err := AverageRegion(b, x, y, w, h)
	if err != nil {
		return nil, err
	}
	return &Result{
		X:       x,
		Y:       y,
		Width:   w,
		Height:  h,
		Pixels:  w * h,
		Average: avg,
		Hex:     avg.Hex(),
		CSS:     avg.CSS(),
	}, nil
}
