package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/pixel-tools-mcp/internal/raster"
)

// createUniformBuffer creates a w×h buffer filled with one color.
func createUniformBuffer(t *testing.T, w, h int, p raster.PixelQuad) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	b.Fill(p)
	return b
}

// createGradientBuffer creates an opaque buffer whose pixels cover a
// spread of channel values.
func createGradientBuffer(t *testing.T, w, h int) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, raster.PixelQuad{
				R: uint8(x * 7),
				G: uint8(y * 13),
				B: uint8((x + y) * 5),
				A: 255,
			})
		}
	}
	return b
}

// pixelOf applies op to a single-pixel buffer and returns the result.
func pixelOf(t *testing.T, p raster.PixelQuad, op func(*raster.Buffer) error) raster.PixelQuad {
	t.Helper()
	b := createUniformBuffer(t, 1, 1, p)
	if err := op(b); err != nil {
		t.Fatalf("operation failed: %v", err)
	}
	return b.At(0, 0)
}

func TestInvert_WhiteToBlack(t *testing.T) {
	b := createUniformBuffer(t, 2, 2, raster.PixelQuad{R: 255, G: 255, B: 255, A: 255})
	if err := Invert(b); err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	want := createUniformBuffer(t, 2, 2, raster.PixelQuad{R: 0, G: 0, B: 0, A: 255})
	if !b.Equal(want) {
		t.Errorf("got %v, want all opaque black", b.Pix)
	}
}

func TestInvert_Involution(t *testing.T) {
	b := createGradientBuffer(t, 37, 23)
	orig := b.Clone()

	if err := Invert(b); err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	if b.Equal(orig) {
		t.Fatal("single Invert should change the raster")
	}
	if err := Invert(b); err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	if !b.Equal(orig) {
		t.Error("Invert twice should restore the raster exactly")
	}
}

func TestInvert_PreservesAlpha(t *testing.T) {
	got := pixelOf(t, raster.PixelQuad{R: 10, G: 20, B: 30, A: 77}, Invert)
	want := raster.PixelQuad{R: 245, G: 235, B: 225, A: 77}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestInvert_MatchesBild(t *testing.T) {
	b := createGradientBuffer(t, 64, 48)
	ref := effect.Invert(b.Image())

	if err := Invert(b); err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	// Fully opaque, so bild's premultiplied output has the same samples.
	for i := range b.Pix {
		if b.Pix[i] != ref.Pix[i] {
			t.Fatalf("sample %d: got %d, bild %d", i, b.Pix[i], ref.Pix[i])
		}
	}
}

func TestInvert_LargeRasterCoversEveryRow(t *testing.T) {
	b := createUniformBuffer(t, 257, 131, raster.PixelQuad{R: 1, G: 2, B: 3, A: 255})
	if err := Invert(b); err != nil {
		t.Fatalf("Invert failed: %v", err)
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if got := b.At(x, y); got != (raster.PixelQuad{R: 254, G: 253, B: 252, A: 255}) {
				t.Fatalf("At(%d,%d): got %+v", x, y, got)
			}
		}
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		name string
		in   raster.PixelQuad
		t    int
		want raster.PixelQuad
	}{
		{"max equals threshold", raster.PixelQuad{R: 100, G: 50, B: 20, A: 200}, 100, raster.PixelQuad{R: 255, G: 255, B: 255, A: 200}},
		{"max below threshold", raster.PixelQuad{R: 100, G: 50, B: 20, A: 200}, 101, raster.PixelQuad{R: 0, G: 0, B: 0, A: 200}},
		{"blue dominant", raster.PixelQuad{R: 0, G: 0, B: 180, A: 255}, 128, raster.PixelQuad{R: 255, G: 255, B: 255, A: 255}},
		{"zero threshold", raster.PixelQuad{R: 0, G: 0, B: 0, A: 255}, 0, raster.PixelQuad{R: 255, G: 255, B: 255, A: 255}},
		{"max threshold", raster.PixelQuad{R: 254, G: 254, B: 254, A: 255}, 255, raster.PixelQuad{R: 0, G: 0, B: 0, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelOf(t, tt.in, func(b *raster.Buffer) error { return Threshold(b, tt.t) })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestThreshold_Idempotent(t *testing.T) {
	for _, th := range []int{0, 1, 64, 128, 200, 255} {
		b := createGradientBuffer(t, 40, 20)
		if err := Threshold(b, th); err != nil {
			t.Fatalf("Threshold(%d) failed: %v", th, err)
		}
		once := b.Clone()
		if err := Threshold(b, th); err != nil {
			t.Fatalf("Threshold(%d) failed: %v", th, err)
		}
		if !b.Equal(once) {
			t.Errorf("Threshold(%d) is not idempotent", th)
		}
	}
}

func TestThreshold_OutOfRange(t *testing.T) {
	for _, th := range []int{-1, 256} {
		b := createGradientBuffer(t, 4, 4)
		orig := b.Clone()
		err := Threshold(b, th)
		if !errors.Is(err, raster.ErrParameterOutOfRange) {
			t.Errorf("Threshold(%d): got %v, want ErrParameterOutOfRange", th, err)
		}
		if !b.Equal(orig) {
			t.Errorf("Threshold(%d) modified the raster on error", th)
		}
	}
}

func TestHue_Rotation(t *testing.T) {
	red := raster.PixelQuad{R: 255, G: 0, B: 0, A: 255}

	tests := []struct {
		name string
		h    float64
		want raster.PixelQuad
	}{
		{"to green", 120, raster.PixelQuad{R: 0, G: 255, B: 0, A: 255}},
		{"to blue", 240, raster.PixelQuad{R: 0, G: 0, B: 255, A: 255}},
		{"negative to blue", -120, raster.PixelQuad{R: 0, G: 0, B: 255, A: 255}},
		{"past full turn", 480, raster.PixelQuad{R: 0, G: 255, B: 0, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelOf(t, red, func(b *raster.Buffer) error { return Hue(b, tt.h) })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHue_FullTurnIsIdentity(t *testing.T) {
	b := createGradientBuffer(t, 37, 20)
	orig := b.Clone()

	if err := Hue(b, 360); err != nil {
		t.Fatalf("Hue failed: %v", err)
	}
	for i := range b.Pix {
		d := int(b.Pix[i]) - int(orig.Pix[i])
		if d < -1 || d > 1 {
			t.Fatalf("sample %d: got %d, want %d±1", i, b.Pix[i], orig.Pix[i])
		}
	}
}

func TestHue_GrayUnchanged(t *testing.T) {
	gray := raster.PixelQuad{R: 90, G: 90, B: 90, A: 10}
	got := pixelOf(t, gray, func(b *raster.Buffer) error { return Hue(b, 77) })
	if got != gray {
		t.Errorf("got %+v, want %+v", got, gray)
	}
}

func TestSaturation(t *testing.T) {
	tests := []struct {
		name string
		in   raster.PixelQuad
		s    float64
		want raster.PixelQuad
	}{
		{"desaturate fully", raster.PixelQuad{R: 255, G: 0, B: 0, A: 255}, -255, raster.PixelQuad{R: 255, G: 255, B: 255, A: 255}},
		{"clamp above", raster.PixelQuad{R: 255, G: 0, B: 0, A: 255}, 1000, raster.PixelQuad{R: 255, G: 0, B: 0, A: 255}},
		{"clamp below", raster.PixelQuad{R: 200, G: 100, B: 50, A: 255}, -1000, raster.PixelQuad{R: 200, G: 200, B: 200, A: 255}},
		{"saturate gray", raster.PixelQuad{R: 128, G: 128, B: 128, A: 90}, 100, raster.PixelQuad{R: 128, G: 78, B: 78, A: 90}},
		{"zero offset", raster.PixelQuad{R: 12, G: 200, B: 99, A: 255}, 0, raster.PixelQuad{R: 12, G: 200, B: 99, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelOf(t, tt.in, func(b *raster.Buffer) error { return Saturation(b, tt.s) })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   raster.PixelQuad
		v    float64
		want raster.PixelQuad
	}{
		{"red dominant brighten", raster.PixelQuad{R: 100, G: 50, B: 0, A: 255}, 50, raster.PixelQuad{R: 150, G: 75, B: 0, A: 255}},
		{"green dominant darken", raster.PixelQuad{R: 40, G: 200, B: 100, A: 255}, -100, raster.PixelQuad{R: 20, G: 100, B: 50, A: 255}},
		{"blue dominant", raster.PixelQuad{R: 25, G: 50, B: 100, A: 255}, 100, raster.PixelQuad{R: 50, G: 100, B: 200, A: 255}},
		{"two-way tie", raster.PixelQuad{R: 100, G: 100, B: 50, A: 255}, -50, raster.PixelQuad{R: 50, G: 50, B: 25, A: 255}},
		{"gray", raster.PixelQuad{R: 60, G: 60, B: 60, A: 255}, 20, raster.PixelQuad{R: 80, G: 80, B: 80, A: 255}},
		{"black brightens along gray axis", raster.PixelQuad{R: 0, G: 0, B: 0, A: 255}, 30, raster.PixelQuad{R: 30, G: 30, B: 30, A: 255}},
		{"zero channel stays zero", raster.PixelQuad{R: 0, G: 80, B: 0, A: 255}, 40, raster.PixelQuad{R: 0, G: 120, B: 0, A: 255}},
		{"clamp high rescales others", raster.PixelQuad{R: 200, G: 100, B: 0, A: 255}, 100, raster.PixelQuad{R: 255, G: 128, B: 0, A: 255}},
		{"clamp low", raster.PixelQuad{R: 10, G: 5, B: 0, A: 33}, -20, raster.PixelQuad{R: 0, G: 0, B: 0, A: 33}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelOf(t, tt.in, func(b *raster.Buffer) error { return Value(b, tt.v) })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContrast(t *testing.T) {
	tests := []struct {
		name string
		c    float64
		want raster.PixelQuad
	}{
		{"increase with clamp", 1.5, raster.PixelQuad{R: 150, G: 255, B: 75, A: 40}},
		{"decrease", 0.5, raster.PixelQuad{R: 50, G: 100, B: 25, A: 40}},
		{"identity", 1, raster.PixelQuad{R: 100, G: 200, B: 50, A: 40}},
		{"rounds to nearest", 0.333, raster.PixelQuad{R: 33, G: 67, B: 17, A: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := raster.PixelQuad{R: 100, G: 200, B: 50, A: 40}
			got := pixelOf(t, in, func(b *raster.Buffer) error { return Contrast(b, tt.c) })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContrast_InvalidFactor(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		b := createGradientBuffer(t, 3, 3)
		orig := b.Clone()
		if err := Contrast(b, c); !errors.Is(err, raster.ErrParameterOutOfRange) {
			t.Errorf("Contrast(%v): got %v, want ErrParameterOutOfRange", c, err)
		}
		if !b.Equal(orig) {
			t.Errorf("Contrast(%v) modified the raster on error", c)
		}
	}
}

func TestMultiply(t *testing.T) {
	in := raster.PixelQuad{R: 200, G: 100, B: 50, A: 99}

	tests := []struct {
		name       string
		mr, mg, mb float64
		want       raster.PixelQuad
	}{
		{"fractions", 1, 0.5, 0, raster.PixelQuad{R: 200, G: 50, B: 0, A: 99}},
		{"bytes", 255, 0, 255, raster.PixelQuad{R: 200, G: 0, B: 50, A: 99}},
		{"half byte", 128, 128, 128, raster.PixelQuad{R: 100, G: 50, B: 25, A: 99}},
		{"negative clamps to zero", -5, 1, 1, raster.PixelQuad{R: 0, G: 100, B: 50, A: 99}},
		{"oversized clamps to 255", 300, 1, 1, raster.PixelQuad{R: 200, G: 100, B: 50, A: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pixelOf(t, in, func(b *raster.Buffer) error { return Multiply(b, tt.mr, tt.mg, tt.mb) })
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMultiplyFraction(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{255, 1},
		{51, 0.2},
		{-3, 0},
		{1000, 1},
	}

	for _, tt := range tests {
		if got := MultiplyFraction(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MultiplyFraction(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOperations_RejectInvalidBuffer(t *testing.T) {
	bad := &raster.Buffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}

	ops := map[string]func(*raster.Buffer) error{
		"invert":     Invert,
		"threshold":  func(b *raster.Buffer) error { return Threshold(b, 10) },
		"hue":        func(b *raster.Buffer) error { return Hue(b, 10) },
		"saturation": func(b *raster.Buffer) error { return Saturation(b, 10) },
		"value":      func(b *raster.Buffer) error { return Value(b, 10) },
		"contrast":   func(b *raster.Buffer) error { return Contrast(b, 2) },
		"multiply":   func(b *raster.Buffer) error { return Multiply(b, 1, 1, 1) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(bad); !errors.Is(err, raster.ErrInvalidDimensions) {
				t.Errorf("got %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestOperations_RejectNonFinite(t *testing.T) {
	nan := math.NaN()
	ops := map[string]func(*raster.Buffer) error{
		"hue":        func(b *raster.Buffer) error { return Hue(b, nan) },
		"saturation": func(b *raster.Buffer) error { return Saturation(b, math.Inf(-1)) },
		"value":      func(b *raster.Buffer) error { return Value(b, nan) },
		"multiply":   func(b *raster.Buffer) error { return Multiply(b, 1, nan, 1) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			b := createGradientBuffer(t, 3, 3)
			orig := b.Clone()
			if err := op(b); !errors.Is(err, raster.ErrParameterOutOfRange) {
				t.Errorf("got %v, want ErrParameterOutOfRange", err)
			}
			if !b.Equal(orig) {
				t.Error("raster modified on error")
			}
		})
	}
}
