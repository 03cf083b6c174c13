package cutout

// MatteResult is the output of one engine call. Ownership passes to the
// caller.
type MatteResult struct {
	// Alpha is the computed mask, one value per input pixel.
	Alpha AlphaMask

	// Preview is the input image with its alpha channel replaced by Alpha.
	// Engines that do not compose a preview leave it nil.
	Preview *ImageBuffer
}

// Engine removes the background from an image.
//
// Implementations must not modify img and must return a mask with exactly
// img.Len() values.
type Engine interface {
	RemoveBackground(img *ImageBuffer, cfg Config) (*MatteResult, error)
}

// EngineFunc adapts an ordinary function to the Engine interface.
type EngineFunc func(img *ImageBuffer, cfg Config) (*MatteResult, error)

// RemoveBackground calls f(img, cfg).
func (f EngineFunc) RemoveBackground(img *ImageBuffer, cfg Config) (*MatteResult, error) {
	return f(img, cfg)
}

// RemoveBackgroundDefault runs e with DefaultConfig.
func RemoveBackgroundDefault(e Engine, img *ImageBuffer) (*MatteResult, error) {
	return e.RemoveBackground(img, DefaultConfig())
}

// ApplyResult returns the image to write for a result: the preview when the
// engine composed one, otherwise img with the result's alpha applied.
func ApplyResult(img *ImageBuffer, res *MatteResult) (*ImageBuffer, error) {
	if res.Preview != nil {
		return res.Preview, nil
	}
	return img.WithAlpha(res.Alpha)
}
