// Package imaging connects rasters to files and to display clients.
//
// It decodes image files into raster buffers, keeps each client's working
// raster in a RasterCache, and encodes rasters back out as base64 PNG for
// display or as PNG/JPEG files on disk. The pixel operations themselves
// live in the transform, histogram and region packages; nothing here
// changes pixel values.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner.
// X increases rightward and Y increases downward. A region (x, y, w, h)
// covers columns x..x+w-1 and rows y..y+h-1.
//
// # Thread Safety
//
// RasterCache is safe for concurrent use. Get returns a private copy of
// the cached raster, so a caller may transform it freely and publish the
// result with Put.
//
// # Formats
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP. Decoded pixels are
// converted to non-premultiplied 8-bit RGBA. Encoding for display is always
// PNG; Save writes PNG or JPEG depending on the file extension.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O errors during loading or saving
//   - Undecodable or unsupported image files
//   - Invalid rasters (see raster.ErrInvalidDimensions)
package imaging
