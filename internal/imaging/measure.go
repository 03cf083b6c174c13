package imaging

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-cutout/internal/cutout"
	"gonum.org/v1/gonum/stat"
)

// Bounds is a pixel rectangle; (X1,Y1) inclusive, (X2,Y2) exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// MaskStats summarizes an alpha mask
type MaskStats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Opaque          int     `json:"opaque"`
	Transparent     int     `json:"transparent"`
	Partial         int     `json:"partial"`
	CoveragePercent float64 `json:"coverage_percent"`
	MeanAlpha       float64 `json:"mean_alpha"`
	AlphaStdDev     float64 `json:"alpha_std_dev"`
	Foreground      *Bounds `json:"foreground,omitempty"`
}

// MeasureMask counts opaque, transparent and partial pixels and finds the
// bounding box of everything with alpha > 0. Foreground is nil when the mask
// is fully transparent.
func MeasureMask(mask cutout.AlphaMask, width int) (*MaskStats, error) {
	if width <= 0 || mask.Len()%width != 0 {
		return nil, fmt.Errorf("%w: mask of %d values cannot have width %d",
			cutout.ErrDimensionMismatch, mask.Len(), width)
	}
	height := mask.Len() / width

	stats := &MaskStats{Width: width, Height: height}
	minX, minY, maxX, maxY := width, height, -1, -1
	values := make([]float64, mask.Len())

	for i := 0; i < mask.Len(); i++ {
		a := mask.At(i)
		values[i] = float64(a)
		switch a {
		case 0:
			stats.Transparent++
			continue
		case 255:
			stats.Opaque++
		default:
			stats.Partial++
		}

		x, y := i%width, i/width
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}

	total := float64(mask.Len())
	stats.CoveragePercent = math.Round(float64(stats.Opaque+stats.Partial)/total*1000) / 10
	mean, std := stat.PopMeanStdDev(values, nil)
	stats.MeanAlpha = round2(mean)
	stats.AlphaStdDev = round2(std)
	if maxX >= 0 {
		stats.Foreground = &Bounds{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}
	}
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
