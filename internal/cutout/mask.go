package cutout

import "fmt"

// AlphaMask holds one opacity value per pixel, 0 = transparent, 255 = opaque,
// in the same row-major order as the ImageBuffer it was computed from.
//
// The zero value is not a valid mask; build one with NewAlphaMask or
// AlphaMaskOf.
type AlphaMask struct {
	data []byte
}

// NewAlphaMask wraps data in an AlphaMask. The mask takes ownership of data.
// Returns ErrEmptyMask if data is empty.
func NewAlphaMask(data []byte) (AlphaMask, error) {
	if len(data) == 0 {
		return AlphaMask{}, ErrEmptyMask
	}
	return AlphaMask{data: data}, nil
}

// AlphaMaskOf is NewAlphaMask plus a check that data holds exactly expected
// values.
func AlphaMaskOf(data []byte, expected int) (AlphaMask, error) {
	if len(data) != expected {
		return AlphaMask{}, fmt.Errorf("%w: alpha mask size %d does not match expected %d",
			ErrDimensionMismatch, len(data), expected)
	}
	return NewAlphaMask(data)
}

// Len returns the number of values in the mask.
func (m AlphaMask) Len() int { return len(m.data) }

// At returns the alpha value at flat index i.
func (m AlphaMask) At(i int) uint8 { return m.data[i] }

// Bytes returns a copy of the mask values.
func (m AlphaMask) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
