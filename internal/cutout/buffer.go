package cutout

import "fmt"

// ImageBuffer is an immutable grid of packed ARGB pixels stored row-major.
//
// Each pixel is encoded as 0xAARRGGBB. Index i addresses the pixel at
// (i % Width, i / Width).
type ImageBuffer struct {
	width  int
	height int
	pixels []uint32
}

// NewImageBuffer validates the dimensions and wraps pixels in an ImageBuffer.
//
// Parameters:
//   - width, height: image size in pixels. Both must be positive.
//   - pixels: packed 0xAARRGGBB values, row-major. Length must be width*height.
//
// The buffer takes ownership of pixels; the caller must not modify the slice
// afterwards. Use Copy to obtain an independent buffer.
//
// # Errors
//
//   - ErrInvalidDimensions if width or height is not positive
//   - ErrInvalidDimensions if len(pixels) != width*height
func NewImageBuffer(width, height int, pixels []uint32) (*ImageBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image dimensions must be positive, got %dx%d",
			ErrInvalidDimensions, width, height)
	}
	if int64(len(pixels)) != int64(width)*int64(height) {
		return nil, fmt.Errorf("%w: pixel buffer size %d does not match dimensions %dx%d",
			ErrInvalidDimensions, len(pixels), width, height)
	}
	return &ImageBuffer{width: width, height: height, pixels: pixels}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuffer) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *ImageBuffer) Height() int { return b.height }

// Len returns the number of pixels (Width * Height).
func (b *ImageBuffer) Len() int { return len(b.pixels) }

// Pixel returns the packed pixel at flat index i.
func (b *ImageBuffer) Pixel(i int) uint32 { return b.pixels[i] }

// At returns the packed pixel at column x, row y.
func (b *ImageBuffer) At(x, y int) uint32 { return b.pixels[y*b.width+x] }

// Pixels returns a copy of the packed pixel data.
func (b *ImageBuffer) Pixels() []uint32 {
	out := make([]uint32, len(b.pixels))
	copy(out, b.pixels)
	return out
}

// Copy returns an independent buffer with identical content.
func (b *ImageBuffer) Copy() *ImageBuffer {
	return &ImageBuffer{width: b.width, height: b.height, pixels: b.Pixels()}
}

// WithAlpha builds a new buffer that keeps every pixel's RGB channels and
// replaces its alpha channel with the corresponding mask value.
//
// Returns ErrDimensionMismatch if the mask length differs from Len().
func (b *ImageBuffer) WithAlpha(mask AlphaMask) (*ImageBuffer, error) {
	if mask.Len() != len(b.pixels) {
		return nil, fmt.Errorf("%w: alpha mask size %d does not match image size %d",
			ErrDimensionMismatch, mask.Len(), len(b.pixels))
	}
	out := make([]uint32, len(b.pixels))
	for i, p := range b.pixels {
		out[i] = uint32(mask.data[i])<<24 | p&0x00FFFFFF
	}
	return &ImageBuffer{width: b.width, height: b.height, pixels: out}, nil
}

// PackARGB packs 8-bit channels into a 0xAARRGGBB pixel.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackARGB splits a 0xAARRGGBB pixel into its channels.
func UnpackARGB(p uint32) (a, r, g, b uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}
