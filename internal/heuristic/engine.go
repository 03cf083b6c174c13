package heuristic

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-cutout/internal/cutout"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

// DefaultMaxPixels is the largest pixel count (exclusive) an Engine accepts
// unless WithMaxPixels says otherwise.
const DefaultMaxPixels = 50_000_000

// Engine is the heuristic background-removal strategy. It satisfies
// cutout.Engine.
type Engine struct {
	maxPixels int64
	logger    zerolog.Logger
}

var _ cutout.Engine = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithMaxPixels sets the pixel-count limit. Images with width*height >= n are
// rejected.
func WithMaxPixels(n int64) Option {
	return func(e *Engine) { e.maxPixels = n }
}

// WithLogger routes the engine's debug output to l.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine. It fails if the pixel limit is not positive.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		maxPixels: DefaultMaxPixels,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxPixels <= 0 {
		return nil, errors.New("maxPixels must be positive")
	}
	return e, nil
}

// MaxPixels returns the configured pixel-count limit.
func (e *Engine) MaxPixels() int64 { return e.maxPixels }

// RemoveBackground computes an alpha mask and preview for img.
//
// The result is a pure function of the pixels and cfg: repeated calls with
// the same input produce byte-identical output.
//
// # Errors
//
//   - *cutout.SizeLimitError (matches cutout.ErrSizeLimitExceeded) when
//     width*height reaches the engine limit
//   - cutout.ErrEmptyBackgroundSample if no border pixels could be read
func (e *Engine) RemoveBackground(img *cutout.ImageBuffer, cfg cutout.Config) (*cutout.MatteResult, error) {
	if err := e.validate(img); err != nil {
		return nil, err
	}

	bg, err := EstimateBackground(img)
	if err != nil {
		return nil, err
	}

	maxDist := maxDistance(img, bg)
	threshold, hard := cfg.HardThreshold()

	var alpha []byte
	smoothed := false
	switch {
	case maxDist <= 0:
		// Every pixel matches the background.
		alpha = make([]byte, img.Len())
	case hard:
		alpha = mapAlpha(img, bg, maxDist, hardMapper(threshold))
	default:
		alpha = mapAlpha(img, bg, maxDist, logisticMapper(cfg.Softness()))
		if img.Width() > 3 && img.Height() > 3 {
			alpha = smoothAlpha(alpha, img.Width(), img.Height())
			smoothed = true
		}
	}

	mask, err := cutout.AlphaMaskOf(alpha, img.Len())
	if err != nil {
		return nil, err
	}
	preview, err := img.WithAlpha(mask)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Int("width", img.Width()).
		Int("height", img.Height()).
		Str("background", bg.Hex()).
		Float64("max_distance", maxDist).
		Bool("hard", hard).
		Bool("smoothed", smoothed).
		Stringer("mode", cfg.Mode()).
		Msg("matte computed")

	return &cutout.MatteResult{Alpha: mask, Preview: preview}, nil
}

func (e *Engine) validate(img *cutout.ImageBuffer) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", cutout.ErrInvalidDimensions)
	}
	pixels := int64(img.Width()) * int64(img.Height())
	if pixels >= e.maxPixels {
		return &cutout.SizeLimitError{Width: img.Width(), Height: img.Height(), Limit: e.maxPixels}
	}
	return nil
}

// EstimateBackground returns the mean colour of the image border, with
// channels in [0, 1]. Alpha is ignored.
//
// The top and bottom rows are sampled in full; the left and right columns
// skip the corners already counted. A single-row image therefore counts its
// row twice, which does not change the mean.
func EstimateBackground(img *cutout.ImageBuffer) (colorful.Color, error) {
	w, h := img.Width(), img.Height()
	var sumR, sumG, sumB int64
	count := 0

	sample := func(p uint32) {
		_, r, g, b := cutout.UnpackARGB(p)
		sumR += int64(r)
		sumG += int64(g)
		sumB += int64(b)
		count++
	}

	for x := 0; x < w; x++ {
		sample(img.At(x, 0))
		sample(img.At(x, h-1))
	}
	for y := 1; y < h-1; y++ {
		sample(img.At(0, y))
		sample(img.At(w-1, y))
	}

	if count == 0 {
		return colorful.Color{}, cutout.ErrEmptyBackgroundSample
	}

	n := float64(count) * 255
	return colorful.Color{
		R: float64(sumR) / n,
		G: float64(sumG) / n,
		B: float64(sumB) / n,
	}, nil
}
