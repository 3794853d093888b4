// Package histogram builds per-channel frequency histograms of a raster and
// reduces histograms to fewer buckets for display.
package histogram

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// Size is the number of buckets in a channel histogram, one per 8-bit
// sample value.
const Size = 256

// Channel selects which color channel a histogram counts. Alpha is not
// histogrammed.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// ParseChannel accepts "r", "g", "b" or "red", "green", "blue" in any case.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	default:
		return 0, fmt.Errorf("%w: unknown channel %q (want r, g, or b)", raster.ErrParameterOutOfRange, s)
	}
}

// String returns the single-letter channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "r"
	case Green:
		return "g"
	case Blue:
		return "b"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

func (c Channel) offset() (int, error) {
	switch c {
	case Red:
		return raster.R, nil
	case Green:
		return raster.G, nil
	case Blue:
		return raster.B, nil
	default:
		return 0, fmt.Errorf("%w: invalid channel %d", raster.ErrParameterOutOfRange, int(c))
	}
}

// Histogram holds the frequency of every sample value of one channel.
type Histogram struct {
	Channel Channel   `json:"-"`
	Bins    [Size]int `json:"bins"` // Bins[v] is the number of pixels whose channel equals v
	Max     int       `json:"max"`  // Largest bucket frequency, for display scaling
}

// Compute counts the values of channel ch over every pixel of b.
//
// Rows are split across goroutines; each keeps a private partial
// histogram that is added into the result when its rows are done.
func Compute(b *raster.Buffer, ch Channel) (*Histogram, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	off, err := ch.offset()
	if err != nil {
		return nil, err
	}

	h := &Histogram{Channel: ch}
	var mu sync.Mutex
	parallel.Line(b.Height, func(start, end int) {
		var local [Size]int
		pix := b.Rows(start, end)
		for i := off; i < len(pix); i += raster.Channels {
			local[pix[i]]++
		}

		mu.Lock()
		for v, n := range local {
			h.Bins[v] += n
		}
		mu.Unlock()
	})

	for _, n := range h.Bins {
		if n > h.Max {
			h.Max = n
		}
	}
	return h, nil
}

// Total returns the sum of all buckets, which equals the pixel count of
// the raster the histogram was computed from.
func (h *Histogram) Total() int {
	total := 0
	for _, n := range h.Bins {
		total += n
	}
	return total
}

// Slice returns the buckets as a slice.
func (h *Histogram) Slice() []int {
	out := make([]int, Size)
	copy(out, h.Bins[:])
	return out
}

// Bin reduces the histogram to count buckets. See the package-level Bin.
func (h *Histogram) Bin(count int) ([]float64, error) {
	return Bin(h.Bins[:], count)
}

// MaxBins is the largest bucket count Bin accepts.
const MaxBins = 1 << 20

// Bin reduces a histogram of any length L to count buckets by local
// windowed averaging.
//
// The half-width of the window is span = floor((L/count)/2) + 1. Bucket i
// averages hist[left..right] inclusive, where left = max(0, i-span) and
// right = min(L-1, i+span). When count exceeds L, the window for a bucket
// past the end of hist collapses onto the last value.
//
// Returns ErrParameterOutOfRange if count is not in 1..MaxBins or any
// frequency is negative, or ErrDegenerateBinWindow if hist is empty.
func Bin(hist []int, count int) ([]float64, error) {
	if count <= 0 || count > MaxBins {
		return nil, fmt.Errorf("%w: bin count %d not in 1-%d", raster.ErrParameterOutOfRange, count, MaxBins)
	}
	n := len(hist)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty histogram", raster.ErrDegenerateBinWindow)
	}
	for j, f := range hist {
		if f < 0 {
			return nil, fmt.Errorf("%w: frequency %d at bucket %d is negative", raster.ErrParameterOutOfRange, f, j)
		}
	}

	span := int(math.Floor(float64(n)/float64(count)/2)) + 1

	out := make([]float64, count)
	for i := range out {
		right := min(n-1, i+span)
		left := min(max(0, i-span), right)

		sum := 0
		for j := left; j <= right; j++ {
			sum += hist[j]
		}
		out[i] = float64(sum) / float64(right-left+1)
	}
	return out, nil
}
