// Package imaging provides the image I/O and inspection helpers that sit
// around the matting engine.
//
// This package decodes image files into the packed cutout.ImageBuffer the
// engine consumes, encodes engine output back to PNG, samples colours, and
// summarizes alpha masks. All operations use a coordinate system where (0,0)
// is the top-left corner, X increases rightward, and Y increases downward.
//
// # Orientation
//
// Images are decoded with EXIF auto-orientation enabled. A JPEG carrying an
// orientation tag (values 2-8) is rotated and flipped into its upright form
// before any pixel reaches the engine, so masks always line up with what an
// image viewer shows.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Conversions and
// measurements are stateless and can be called concurrently on different
// inputs.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - File I/O errors during image loading or saving
//   - Undecodable or empty images
//   - Encoding errors during image output
package imaging
