// Package transform implements per-pixel point operations on a raster.
//
// Every operation validates its parameters and the buffer once, before any
// pixel is touched, then rewrites each pixel independently and in place.
// On error the buffer is left exactly as it was. Every output channel is
// clamped to [0, 255]; alpha is never modified.
//
// # Operations
//
//   - Invert: R,G,B -> 255 - value
//   - Threshold: opaque white if max(R,G,B) >= t, otherwise opaque black
//   - Hue: rotate hue by a signed number of degrees
//   - Saturation: add a signed offset to HSV saturation (0-255 scale)
//   - Value: add a signed offset to the dominant channel and rescale the
//     others to keep their ratio to it
//   - Contrast: R,G,B -> round(c * value)
//   - Multiply: R,G,B -> value * per-channel fraction
//
// # Concurrency
//
// Rows are split into contiguous ranges and processed on separate
// goroutines. Pixels share no state, so workers need no locking; each
// writes only to its own rows. Callers must not touch the buffer while an
// operation runs.
//
// # Composition
//
// Op names a single parameterised operation so transforms can be described
// as data (for example, decoded from a tool call). A Pipeline applies a
// sequence of Ops to a copy of its input and returns the copy, leaving
// the input unchanged if any step fails.
package transform
