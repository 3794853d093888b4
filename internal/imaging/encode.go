package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// EncodeResult contains a raster encoded for display.
type EncodeResult struct {
	Width       int    `json:"width"`  // Width of the encoded image (after scaling)
	Height      int    `json:"height"` // Height of the encoded image (after scaling)
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	SavedTo     string `json:"saved_to,omitempty"`
}

// Encode renders a raster as a base64 PNG.
//
// If scale is positive and not 1, the returned image is resized by that
// factor with Lanczos resampling. The raster itself is not changed.
func Encode(b *raster.Buffer, scale float64) (*EncodeResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	var img image.Image = b.Image()
	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(b.Width)*scale))
		newHeight := max(1, int(float64(b.Height)*scale))
		img = resize.Resize(uint(newWidth), uint(newHeight), img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodeResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes a raster to disk. The format follows the file extension:
// ".png" for PNG, ".jpg" or ".jpeg" for JPEG at quality 95.
func Save(b *raster.Buffer, path string) error {
	if err := b.Validate(); err != nil {
		return err
	}

	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	default:
		return fmt.Errorf("unsupported output format %q (use .png, .jpg or .jpeg)", filepath.Ext(path))
	}

	if err := imgio.Save(path, b.Image(), enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
