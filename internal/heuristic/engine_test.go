package heuristic

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ironsheep/image-cutout/internal/cutout"
)

const (
	white = 0xFFFFFFFF
	black = 0xFF000000
)

// newBuffer builds a width x height buffer filled with fill.
func newBuffer(t *testing.T, width, height int, fill uint32) []uint32 {
	t.Helper()
	pixels := make([]uint32, width*height)
	for i := range pixels {
		pixels[i] = fill
	}
	return pixels
}

func mustBuffer(t *testing.T, width, height int, pixels []uint32) *cutout.ImageBuffer {
	t.Helper()
	buf, err := cutout.NewImageBuffer(width, height, pixels)
	if err != nil {
		t.Fatalf("NewImageBuffer failed: %v", err)
	}
	return buf
}

func mustEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func mustConfig(t *testing.T, opts ...cutout.Option) cutout.Config {
	t.Helper()
	cfg, err := cutout.NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return cfg
}

// noiseImage returns a deterministic pseudo-random image.
func noiseImage(t *testing.T, width, height int) *cutout.ImageBuffer {
	t.Helper()
	pixels := make([]uint32, width*height)
	state := uint32(2463534242)
	for i := range pixels {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		pixels[i] = 0xFF000000 | state&0x00FFFFFF
	}
	return mustBuffer(t, width, height, pixels)
}

// gradientImage returns a square image that is white at the border and
// darkens smoothly towards the centre.
func gradientImage(t *testing.T, size int) *cutout.ImageBuffer {
	t.Helper()
	pixels := make([]uint32, size*size)
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := math.Max(math.Abs(float64(x)-c), math.Abs(float64(y)-c)) / c
			v := uint8(r * 255)
			pixels[y*size+x] = cutout.PackARGB(255, v, v, v)
		}
	}
	return mustBuffer(t, size, size, pixels)
}

func countPartial(m cutout.AlphaMask) int {
	n := 0
	for i := 0; i < m.Len(); i++ {
		if a := m.At(i); a > 0 && a < 255 {
			n++
		}
	}
	return n
}

func TestNew(t *testing.T) {
	e := mustEngine(t)
	if e.MaxPixels() != DefaultMaxPixels {
		t.Errorf("MaxPixels: got %d, want %d", e.MaxPixels(), DefaultMaxPixels)
	}

	for _, n := range []int64{0, -5} {
		if _, err := New(WithMaxPixels(n)); err == nil {
			t.Errorf("New(WithMaxPixels(%d)) should fail", n)
		}
	}
}

func TestRemoveBackground_SimpleForeground(t *testing.T) {
	pixels := newBuffer(t, 3, 3, white)
	pixels[4] = black
	img := mustBuffer(t, 3, 3, pixels)

	res, err := cutout.RemoveBackgroundDefault(mustEngine(t), img)
	if err != nil {
		t.Fatalf("RemoveBackground failed: %v", err)
	}

	if a := res.Alpha.At(4); a <= 240 {
		t.Errorf("center pixel should be mostly opaque, got %d", a)
	}
	for i := 0; i < 9; i++ {
		if i == 4 {
			continue
		}
		if a := res.Alpha.At(i); a >= 40 {
			t.Errorf("border pixel %d should be mostly transparent, got %d", i, a)
		}
	}
	if res.Preview == nil || res.Preview.Len() != 9 {
		t.Fatal("preview should cover every input pixel")
	}
}

func TestRemoveBackground_HardThresholdScenario(t *testing.T) {
	pixels := newBuffer(t, 4, 4, white)
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			pixels[y*4+x] = black
		}
	}
	img := mustBuffer(t, 4, 4, pixels)
	cfg := mustConfig(t, cutout.WithHardThreshold(128))

	res, err := mustEngine(t).RemoveBackground(img, cfg)
	if err != nil {
		t.Fatalf("RemoveBackground failed: %v", err)
	}

	values := map[uint8]int{}
	for i := 0; i < res.Alpha.Len(); i++ {
		values[res.Alpha.At(i)]++
	}
	if diff := cmp.Diff(map[uint8]int{0: 12, 255: 4}, values); diff != "" {
		t.Errorf("alpha histogram mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveBackground_HardThresholdIsBinary(t *testing.T) {
	img := noiseImage(t, 24, 17)
	e := mustEngine(t)

	for _, thr := range []float64{0, 1, 64, 128, 200, 254, 255} {
		res, err := e.RemoveBackground(img, mustConfig(t, cutout.WithHardThreshold(thr), cutout.WithSoftness(0.9)))
		if err != nil {
			t.Fatalf("threshold %v: RemoveBackground failed: %v", thr, err)
		}
		for i := 0; i < res.Alpha.Len(); i++ {
			if a := res.Alpha.At(i); a != 0 && a != 255 {
				t.Fatalf("threshold %v: pixel %d has intermediate alpha %d", thr, i, a)
			}
		}
	}
}

func TestRemoveBackground_UniformImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fill          uint32
		cfg           []cutout.Option
	}{
		{"soft 1x1", 1, 1, 0xFF336699, nil},
		{"soft 8x5", 8, 5, 0xFF336699, nil},
		{"hard zero threshold", 6, 6, 0xFFFFFFFF, []cutout.Option{cutout.WithHardThreshold(0)}},
		{"translucent pixels", 5, 5, 0x10ABCDEF, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := mustBuffer(t, tt.width, tt.height, newBuffer(t, tt.width, tt.height, tt.fill))
			res, err := mustEngine(t).RemoveBackground(img, mustConfig(t, tt.cfg...))
			if err != nil {
				t.Fatalf("RemoveBackground failed: %v", err)
			}
			for i := 0; i < res.Alpha.Len(); i++ {
				if a := res.Alpha.At(i); a != 0 {
					t.Fatalf("pixel %d: got alpha %d, want 0", i, a)
				}
			}
		})
	}
}

func TestRemoveBackground_Deterministic(t *testing.T) {
	img := noiseImage(t, 40, 31)
	e := mustEngine(t)

	for _, cfg := range []cutout.Config{
		cutout.DefaultConfig(),
		mustConfig(t, cutout.WithSoftness(0.75)),
		mustConfig(t, cutout.WithHardThreshold(90)),
	} {
		first, err := e.RemoveBackground(img, cfg)
		if err != nil {
			t.Fatalf("%v: RemoveBackground failed: %v", cfg, err)
		}
		second, err := e.RemoveBackground(img, cfg)
		if err != nil {
			t.Fatalf("%v: RemoveBackground failed: %v", cfg, err)
		}
		if diff := cmp.Diff(first.Alpha.Bytes(), second.Alpha.Bytes()); diff != "" {
			t.Errorf("%v: alpha differs between runs:\n%s", cfg, diff)
		}
		if diff := cmp.Diff(first.Preview.Pixels(), second.Preview.Pixels()); diff != "" {
			t.Errorf("%v: preview differs between runs:\n%s", cfg, diff)
		}
	}
}

func TestRemoveBackground_SoftnessMonotonic(t *testing.T) {
	// A 64x3 horizontal ramp is small enough to skip smoothing; the 33x33
	// radial gradient goes through it.
	ramp := make([]uint32, 64*3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(x * 4)
			ramp[y*64+x] = cutout.PackARGB(255, v, v, v)
		}
	}

	images := map[string]*cutout.ImageBuffer{
		"ramp":     mustBuffer(t, 64, 3, ramp),
		"gradient": gradientImage(t, 33),
	}
	softness := []float64{0, 0.1, 0.2, 0.35, 0.5, 0.65, 0.8, 0.9, 1}
	e := mustEngine(t)

	for name, img := range images {
		t.Run(name, func(t *testing.T) {
			prev := -1
			for _, s := range softness {
				res, err := e.RemoveBackground(img, mustConfig(t, cutout.WithSoftness(s)))
				if err != nil {
					t.Fatalf("softness %v: RemoveBackground failed: %v", s, err)
				}
				n := countPartial(res.Alpha)
				if n < prev {
					t.Errorf("softness %v: partial count %d dropped below %d", s, n, prev)
				}
				prev = n
			}
		})
	}
}

func TestRemoveBackground_SizeLimit(t *testing.T) {
	e := mustEngine(t, WithMaxPixels(12))

	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"N-1", 11, 1, false},
		{"N", 3, 4, true},
		{"N+1", 13, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := mustBuffer(t, tt.width, tt.height, newBuffer(t, tt.width, tt.height, white))
			_, err := e.RemoveBackground(img, cutout.DefaultConfig())
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, cutout.ErrSizeLimitExceeded) {
				t.Fatalf("expected ErrSizeLimitExceeded, got %v", err)
			}
			var sizeErr *cutout.SizeLimitError
			if !errors.As(err, &sizeErr) {
				t.Fatalf("expected *cutout.SizeLimitError, got %T", err)
			}
			if sizeErr.Width != tt.width || sizeErr.Height != tt.height || sizeErr.Limit != 12 {
				t.Errorf("unexpected error fields: %+v", sizeErr)
			}
		})
	}
}

func TestRemoveBackground_NilImage(t *testing.T) {
	_, err := mustEngine(t).RemoveBackground(nil, cutout.DefaultConfig())
	if !errors.Is(err, cutout.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestRemoveBackground_Preview(t *testing.T) {
	img := noiseImage(t, 19, 23)
	original := img.Pixels()

	res, err := mustEngine(t).RemoveBackground(img, cutout.DefaultConfig())
	if err != nil {
		t.Fatalf("RemoveBackground failed: %v", err)
	}

	if res.Preview.Len() != img.Len() {
		t.Fatalf("preview has %d pixels, input has %d", res.Preview.Len(), img.Len())
	}
	for i := 0; i < img.Len(); i++ {
		p := res.Preview.Pixel(i)
		if p&0x00FFFFFF != original[i]&0x00FFFFFF {
			t.Fatalf("pixel %d: preview RGB %#06x, input RGB %#06x", i, p&0x00FFFFFF, original[i]&0x00FFFFFF)
		}
		if uint8(p>>24) != res.Alpha.At(i) {
			t.Fatalf("pixel %d: preview alpha %d, mask %d", i, p>>24, res.Alpha.At(i))
		}
	}
	if diff := cmp.Diff(original, img.Pixels()); diff != "" {
		t.Errorf("input buffer was modified:\n%s", diff)
	}
}

func TestRemoveBackground_ModeIsIgnored(t *testing.T) {
	img := noiseImage(t, 16, 16)
	e := mustEngine(t)

	base, err := e.RemoveBackground(img, cutout.DefaultConfig())
	if err != nil {
		t.Fatalf("RemoveBackground failed: %v", err)
	}
	for _, m := range []cutout.Mode{cutout.ModePortrait, cutout.ModeObject} {
		res, err := e.RemoveBackground(img, mustConfig(t, cutout.WithMode(m)))
		if err != nil {
			t.Fatalf("mode %s: RemoveBackground failed: %v", m, err)
		}
		if diff := cmp.Diff(base.Alpha.Bytes(), res.Alpha.Bytes()); diff != "" {
			t.Errorf("mode %s changed the mask:\n%s", m, diff)
		}
	}
}

func TestEstimateBackground(t *testing.T) {
	// 3x3: border is eight pixels, centre is excluded.
	pixels := []uint32{
		0xFF000000, 0xFF000000, 0xFF000000,
		0xFF000000, 0xFFFFFFFF, 0xFF000000,
		0xFF000000, 0xFF000000, 0xFFFF0000,
	}
	bg, err := EstimateBackground(mustBuffer(t, 3, 3, pixels))
	if err != nil {
		t.Fatalf("EstimateBackground failed: %v", err)
	}
	if bg.R != 1.0/8 || bg.G != 0 || bg.B != 0 {
		t.Errorf("got %+v, want R=0.125 G=0 B=0", bg)
	}
}

func TestEstimateBackground_IgnoresAlpha(t *testing.T) {
	pixels := []uint32{0x00808080, 0xFF808080, 0x7F808080, 0x01808080}
	bg, err := EstimateBackground(mustBuffer(t, 2, 2, pixels))
	if err != nil {
		t.Fatalf("EstimateBackground failed: %v", err)
	}
	if bg.Hex() != "#808080" {
		t.Errorf("got %s, want #808080", bg.Hex())
	}
}
