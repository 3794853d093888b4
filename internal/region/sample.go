package region

import (
	"fmt"

	"github.com/ironsheep/pixel-tools-mcp/internal/colorspace"
	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// ColorResult is one pixel in the representations a display client asks for.
type ColorResult struct {
	RGBA raster.PixelQuad `json:"rgba"`
	Hex  string           `json:"hex"` // "#rrggbb", alpha excluded
	CSS  string           `json:"css"`
	HSV  colorspace.HSV   `json:"hsv"` // S and V on the 0-255 scale
}

// Sample returns the pixel at (x, y).
//
// Returns ErrInvalidRegion if the coordinate is outside the raster.
func Sample(b *raster.Buffer, x, y int) (*ColorResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	pix, err := b.Rect(x, y, 1, 1)
	if err != nil {
		return nil, err
	}
	p := raster.PixelQuad{R: pix[raster.R], G: pix[raster.G], B: pix[raster.B], A: pix[raster.A]}
	return &ColorResult{
		RGBA: p,
		Hex:  p.Hex(),
		CSS:  p.CSS(),
		HSV:  colorspace.RGBToHSV(p.R, p.G, p.B),
	}, nil
}

// LabeledPoint is a coordinate with an optional caller-chosen label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult is a sample together with where it was taken.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// SamplePoints samples every point in order. If any point is outside the
// raster no partial result is returned.
func SamplePoints(b *raster.Buffer, points []LabeledPoint) ([]LabeledColorResult, error) {
	out := make([]LabeledColorResult, 0, len(points))
	for _, p := range points {
		c, err := Sample(b, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		out = append(out, LabeledColorResult{Label: p.Label, X: p.X, Y: p.Y, Color: *c})
	}
	return out, nil
}
