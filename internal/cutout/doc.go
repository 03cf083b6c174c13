// Package cutout defines the value types and the engine contract shared by
// every background-removal strategy.
//
// # Data Model
//
// An ImageBuffer is an immutable, row-major grid of packed 0xAARRGGBB pixels
// with its origin at the top-left corner. An AlphaMask holds one opacity byte
// per pixel in the same order (0 = fully transparent, 255 = fully opaque).
// A Config bundles the matting parameters and is validated when it is built,
// so an engine never sees an out-of-range softness or threshold.
//
// # Engines
//
// Any strategy that satisfies Engine can be handed to the command-line and
// MCP front ends. The heuristic engine lives in package heuristic; learned
// engines would plug in the same way.
//
// # Error Handling
//
// Validation failures are reported through sentinel errors that callers test
// with errors.Is:
//   - ErrInvalidDimensions: non-positive size or pixel count mismatch
//   - ErrEmptyMask: an alpha mask with no data
//   - ErrInvalidConfig: softness, hard threshold or mode out of range
//   - ErrDimensionMismatch: mask length differs from the buffer's pixel count
//   - ErrSizeLimitExceeded: the image is too large for the engine
//   - ErrEmptyBackgroundSample: no border pixels could be sampled
package cutout
