package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/ironsheep/image-cutout/internal/cutout"
)

// ToBuffer converts img to a packed, non-premultiplied ARGB buffer.
//
// Any color model is accepted; the pixels are first normalized to NRGBA so a
// half-transparent red pixel keeps R=255 rather than the premultiplied 128.
// The buffer origin is the top-left corner of img.Bounds().
func ToBuffer(img image.Image) (*cutout.ImageBuffer, error) {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	pixels := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			pixels[y*w+x] = cutout.PackARGB(p[3], p[0], p[1], p[2])
		}
	}

	buf, err := cutout.NewImageBuffer(w, h, pixels)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return buf, nil
}

// FromBuffer converts a packed buffer to an *image.NRGBA anchored at (0,0).
func FromBuffer(buf *cutout.ImageBuffer) *image.NRGBA {
	w, h := buf.Width(), buf.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, n := 0, buf.Len(); i < n; i++ {
		a, r, g, b := cutout.UnpackARGB(buf.Pixel(i))
		o := (i/w)*dst.Stride + (i%w)*4
		dst.Pix[o+0] = r
		dst.Pix[o+1] = g
		dst.Pix[o+2] = b
		dst.Pix[o+3] = a
	}
	return dst
}

// MaskImage renders an alpha mask as a grayscale image, white = opaque.
func MaskImage(mask cutout.AlphaMask, width int) (*image.Gray, error) {
	if width <= 0 || mask.Len()%width != 0 {
		return nil, fmt.Errorf("%w: mask of %d values cannot have width %d",
			cutout.ErrDimensionMismatch, mask.Len(), width)
	}
	h := mask.Len() / width
	data := mask.Bytes()
	dst := image.NewGray(image.Rect(0, 0, width, h))
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+width], data[y*width:(y+1)*width])
	}
	return dst, nil
}

// SavePNG encodes img as PNG at path, creating missing parent directories.
func SavePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write PNG to %s: %w", path, err)
	}
	return nil
}

// SaveBuffer writes buf to path as a PNG with its alpha channel intact.
func SaveBuffer(buf *cutout.ImageBuffer, path string) error {
	return SavePNG(FromBuffer(buf), path)
}
