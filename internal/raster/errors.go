package raster

import "errors"

// Error kinds reported by the pixel engine. Operations wrap these with
// context using fmt.Errorf("%w: ..."), so callers should compare with
// errors.Is.
var (
	// ErrInvalidDimensions reports a buffer whose sample count is not
	// width * height * 4, or a pixel sequence that is not a whole number
	// of RGBA quads.
	ErrInvalidDimensions = errors.New("invalid raster dimensions")

	// ErrInvalidRegion reports a non-positive region size or a rectangle
	// that leaves the raster bounds.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrEmptyRegion reports an average over zero pixels.
	ErrEmptyRegion = errors.New("empty region")

	// ErrDegenerateBinWindow reports a histogram reduction for which no
	// averaging window can be formed (a zero-length histogram).
	ErrDegenerateBinWindow = errors.New("degenerate bin window")

	// ErrParameterOutOfRange reports a transform or aggregation parameter
	// outside its documented domain.
	ErrParameterOutOfRange = errors.New("parameter out of range")
)
