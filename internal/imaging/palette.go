package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPaletteSize is the number of colors DominantColors returns when the
// caller asks for zero.
const DefaultPaletteSize = 5

// PaletteColor is one entry of a dominant-color palette.
type PaletteColor struct {
	ColorResult

	// Percentage is the share of sampled pixels closest to this color.
	Percentage float64 `json:"percentage"`
}

// PaletteResult lists the dominant colors of an image, most frequent first.
type PaletteResult struct {
	Colors []PaletteColor `json:"colors"`
}

// DominantColors clusters the pixels of img and returns up to count colors
// ordered by weight. Comparing the palette with the estimated background
// shows how separable the subject is.
func DominantColors(img image.Image, count int) (*PaletteResult, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	if count == 0 {
		count = DefaultPaletteSize
	}

	found := dominantcolor.FindWeight(img, count)
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Weight > found[j].Weight
	})

	colors := make([]PaletteColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		colors = append(colors, PaletteColor{
			ColorResult: NewColorResult(col, c.RGBA.A),
			Percentage:  round2(c.Weight * 100),
		})
	}
	return &PaletteResult{Colors: colors}, nil
}
