package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// DefaultMaxRasters is the cache capacity used when none is configured.
const DefaultMaxRasters = 16

// RasterCache holds the working raster of every image a client has loaded,
// keyed by file path.
//
// The first Get for a path decodes the file from disk. Edits are written
// back with Put, so successive transforms on the same path accumulate the
// way they would on a single editing surface. Reset discards the edits by
// decoding the file again.
//
// RasterCache is safe for concurrent use by multiple goroutines. Buffers
// handed out by Get are private copies; the cache never shares its own
// buffers with callers.
//
// # Memory Management
//
// At most the configured number of rasters are kept. When the cache is
// full, the entry that was loaded or stored longest ago is evicted. Evict
// and Clear release entries explicitly.
//
// # Example Usage
//
//	cache := imaging.NewRasterCache(0)
//	buf, err := cache.Get("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = transform.Invert(buf)
//	cache.Put("/path/to/image.png", buf)
type RasterCache struct {
	mu      sync.RWMutex
	max     int
	rasters map[string]*raster.Buffer
	order   []string // oldest first
}

// NewRasterCache creates an empty cache holding up to max rasters. A
// non-positive max selects DefaultMaxRasters.
func NewRasterCache(max int) *RasterCache {
	if max <= 0 {
		max = DefaultMaxRasters
	}
	return &RasterCache{
		max:     max,
		rasters: make(map[string]*raster.Buffer),
	}
}

// Get returns a copy of the working raster for path, decoding the file if
// it is not cached yet.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF
// orientation is applied when decoding JPEG and TIFF files.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
func (c *RasterCache) Get(path string) (*raster.Buffer, error) {
	c.mu.RLock()
	if b, ok := c.rasters[path]; ok {
		out := b.Clone()
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	b, err := decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A Put may have landed while decoding; its edits win.
	if cur, ok := c.rasters[path]; ok {
		return cur.Clone(), nil
	}
	c.store(path, b)
	return b.Clone(), nil
}

// Put replaces the working raster for path. The cache keeps its own copy.
func (c *RasterCache) Put(path string, b *raster.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	cp := b.Clone()

	c.mu.Lock()
	c.store(path, cp)
	c.mu.Unlock()
	return nil
}

// Reset discards any edits for path and decodes the file again.
func (c *RasterCache) Reset(path string) (*raster.Buffer, error) {
	c.Evict(path)
	return c.Get(path)
}

// store inserts or replaces an entry. The caller must hold c.mu.
func (c *RasterCache) store(path string, b *raster.Buffer) {
	if _, ok := c.rasters[path]; ok {
		c.unlink(path)
	}
	for len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.rasters, oldest)
	}
	c.rasters[path] = b
	c.order = append(c.order, path)
}

// unlink removes path from the eviction order. The caller must hold c.mu.
func (c *RasterCache) unlink(path string) {
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Evict removes a specific raster from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
// After eviction, the next Get call for this path will read from disk.
func (c *RasterCache) Evict(path string) {
	c.mu.Lock()
	if _, ok := c.rasters[path]; ok {
		delete(c.rasters, path)
		c.unlink(path)
	}
	c.mu.Unlock()
}

// Clear removes all rasters from the cache, freeing the associated memory.
func (c *RasterCache) Clear() {
	c.mu.Lock()
	c.rasters = make(map[string]*raster.Buffer)
	c.order = nil
	c.mu.Unlock()
}

// Len returns the number of cached rasters.
func (c *RasterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rasters)
}

// decode is the decoder used by RasterCache; tests replace it.
var decode = Decode

// Decode reads and decodes an image file into a new raster.
func Decode(path string) (*raster.Buffer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b, err := raster.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return b, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format detected from the file extension: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp", or "unknown".
	Format string `json:"format"`

	// HasAlpha reports whether any pixel of the working raster is not
	// fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache (if not already cached) and
// returns its metadata.
func LoadImageInfo(cache *RasterCache, path string) (*ImageInfo, error) {
	b, err := cache.Get(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &ImageInfo{
		Width:         b.Width,
		Height:        b.Height,
		Format:        formatFromExt(path),
		HasAlpha:      hasAlpha(b),
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Dimensions returns the dimensions of a raster.
func Dimensions(b *raster.Buffer) *DimensionsResult {
	return &DimensionsResult{Width: b.Width, Height: b.Height}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	default:
		return "unknown"
	}
}

func hasAlpha(b *raster.Buffer) bool {
	for i := raster.A; i < len(b.Pix); i += raster.Channels {
		if b.Pix[i] != 0xff {
			return true
		}
	}
	return false
}
