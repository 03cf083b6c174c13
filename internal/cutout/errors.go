package cutout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions     = errors.New("invalid image dimensions")
	ErrEmptyMask             = errors.New("alpha mask must not be empty")
	ErrInvalidConfig         = errors.New("invalid cutout configuration")
	ErrDimensionMismatch     = errors.New("alpha mask does not match image size")
	ErrSizeLimitExceeded     = errors.New("image exceeds pixel limit")
	ErrEmptyBackgroundSample = errors.New("image is empty: no border pixels to sample")
)

// SizeLimitError reports an image whose pixel count reached the engine limit.
type SizeLimitError struct {
	Width  int
	Height int
	Limit  int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("input image is too large (%dx%d = %d pixels), limit is %d pixels",
		e.Width, e.Height, int64(e.Width)*int64(e.Height), e.Limit)
}

// Is lets errors.Is(err, ErrSizeLimitExceeded) match a *SizeLimitError.
func (e *SizeLimitError) Is(target error) bool {
	return target == ErrSizeLimitExceeded
}
