package heuristic

import (
	"math"

	"github.com/ironsheep/image-cutout/internal/cutout"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// logisticCut is the normalized distance at the sigmoid's inflection point.
	logisticCut = 0.35

	minLogisticSpan = 1e-4
)

// alphaMapper turns a normalized background distance in [0, 1] into an alpha
// value.
type alphaMapper func(normalized float64) uint8

// pixelColor converts a packed pixel to a colour with channels in [0, 1].
func pixelColor(p uint32) colorful.Color {
	_, r, g, b := cutout.UnpackARGB(p)
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

func maxDistance(img *cutout.ImageBuffer, bg colorful.Color) float64 {
	var max float64
	for i, n := 0, img.Len(); i < n; i++ {
		if d := pixelColor(img.Pixel(i)).DistanceRgb(bg); d > max {
			max = d
		}
	}
	return max
}

// mapAlpha evaluates m for every pixel. maxDist must be positive.
func mapAlpha(img *cutout.ImageBuffer, bg colorful.Color, maxDist float64, m alphaMapper) []byte {
	alpha := make([]byte, img.Len())
	for i := range alpha {
		d := pixelColor(img.Pixel(i)).DistanceRgb(bg)
		alpha[i] = m(clamp01(d / maxDist))
	}
	return alpha
}

// hardMapper produces a binary mask: 255 where the normalized distance
// reaches threshold/255, 0 elsewhere.
func hardMapper(threshold float64) alphaMapper {
	t := clamp01(threshold / cutout.MaxHardThreshold)
	return func(v float64) uint8 {
		if v >= t {
			return 255
		}
		return 0
	}
}

// logisticMapper maps distances through a sigmoid with slope 8*(1-softness)+2,
// then rescales so that distance 0 maps to 0 and distance 1 maps to 255.
func logisticMapper(softness float64) alphaMapper {
	slope := 8*(1-clamp01(softness)) + 2
	logistic := func(v float64) float64 {
		return 1 / (1 + math.Exp(-slope*(clamp01(v)-logisticCut)))
	}

	minLog := logistic(0)
	span := math.Max(minLogisticSpan, logistic(1)-minLog)

	return func(v float64) uint8 {
		mapped := clamp01((logistic(v) - minLog) / span)
		return uint8(math.Round(mapped * 255))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
