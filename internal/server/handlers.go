package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-cutout/internal/cutout"
	"github.com/ironsheep/image-cutout/internal/heuristic"
	"github.com/ironsheep/image-cutout/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_remove_background").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// argumentError marks a tool failure caused by malformed or out-of-range
// arguments. It is reported as -32602 rather than -32000.
type argumentError struct {
	err error
}

func (e *argumentError) Error() string { return e.err.Error() }
func (e *argumentError) Unwrap() error { return e.err }

func invalidArgs(format string, args ...interface{}) error {
	return &argumentError{err: fmt.Errorf(format, args...)}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Invalid arguments return -32602; any other tool failure, including a panic
// inside the engine, returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) (resp *MCPResponse) {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("tool", params.Name).Interface("panic", r).Msg("tool crashed")
			resp = s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", fmt.Sprint(r))
		}
	}()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		s.logger.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_estimate_background":
		return s.handleImageEstimateBackground(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Background Removal
	case "image_remove_background":
		return s.handleImageRemoveBackground(args)
	case "image_mask_stats":
		return s.handleImageMaskStats(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments and requires a non-empty path.
func decodeArgs(args json.RawMessage, dst interface{ path() string }) error {
	if err := json.Unmarshal(args, dst); err != nil {
		return &argumentError{err: err}
	}
	if dst.path() == "" {
		return invalidArgs("path is required")
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (a *imageLoadArgs) path() string { return a.Path }

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (a *imageSampleColorArgs) path() string { return a.Path }

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

func (s *Server) handleImageEstimateBackground(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf, err := imaging.LoadBuffer(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	bg, err := heuristic.EstimateBackground(buf)
	if err != nil {
		return nil, err
	}
	return imaging.NewColorResult(bg, 255), nil
}

type imageDominantColorsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

func (a *imageDominantColorsArgs) path() string { return a.Path }

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count < 0 {
		return nil, invalidArgs("count must not be negative, got %d", a.Count)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantColors(img, a.Count)
}

// === Background Removal Handlers ===

type matteArgs struct {
	Path string   `json:"path"`
	Mode string   `json:"mode"`
	Soft *float64 `json:"soft"`
	Hard *float64 `json:"hard"`
}

func (a *matteArgs) path() string { return a.Path }

// config builds the engine configuration, filling unset fields from the
// server settings.
func (s *Server) config(a *matteArgs) (cutout.Config, error) {
	mode := s.settings.DefaultMode()
	if a.Mode != "" {
		m, err := cutout.ParseMode(a.Mode)
		if err != nil {
			return cutout.Config{}, &argumentError{err: err}
		}
		mode = m
	}

	softness := s.settings.Softness
	if a.Soft != nil {
		softness = *a.Soft
	}

	opts := []cutout.Option{cutout.WithMode(mode), cutout.WithSoftness(softness)}
	if a.Hard != nil {
		opts = append(opts, cutout.WithHardThreshold(*a.Hard))
	}
	cfg, err := cutout.NewConfig(opts...)
	if err != nil {
		return cutout.Config{}, &argumentError{err: err}
	}
	return cfg, nil
}

// matte loads the image at a.Path and runs the engine on it.
func (s *Server) matte(a *matteArgs) (*cutout.ImageBuffer, *cutout.MatteResult, cutout.Config, error) {
	cfg, err := s.config(a)
	if err != nil {
		return nil, nil, cfg, err
	}
	buf, err := imaging.LoadBuffer(s.cache, a.Path)
	if err != nil {
		return nil, nil, cfg, err
	}
	res, err := s.engine.RemoveBackground(buf, cfg)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("background removal failed: %w", err)
	}
	return buf, res, cfg, nil
}

type imageRemoveBackgroundArgs struct {
	matteArgs
	OutputPath string `json:"output_path"`
}

// RemoveBackgroundResult is returned by image_remove_background.
type RemoveBackgroundResult struct {
	OutputPath string              `json:"output_path"`
	Config     string              `json:"config"`
	Background imaging.ColorResult `json:"background"`
	Stats      *imaging.MaskStats  `json:"stats"`
}

func (s *Server) handleImageRemoveBackground(args json.RawMessage) (interface{}, error) {
	var a imageRemoveBackgroundArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, invalidArgs("output_path is required")
	}

	buf, res, cfg, err := s.matte(&a.matteArgs)
	if err != nil {
		return nil, err
	}

	out, err := cutout.ApplyResult(buf, res)
	if err != nil {
		return nil, err
	}
	if err := imaging.SaveBuffer(out, a.OutputPath); err != nil {
		return nil, err
	}
	// A later load of the output path must see the new file.
	s.cache.Evict(a.OutputPath)

	stats, err := imaging.MeasureMask(res.Alpha, buf.Width())
	if err != nil {
		return nil, err
	}
	bg, err := heuristic.EstimateBackground(buf)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("input", a.Path).
		Str("output", a.OutputPath).
		Stringer("config", cfg).
		Float64("coverage_percent", stats.CoveragePercent).
		Msg("cutout written")

	return &RemoveBackgroundResult{
		OutputPath: a.OutputPath,
		Config:     cfg.String(),
		Background: imaging.NewColorResult(bg, 255),
		Stats:      stats,
	}, nil
}

type imageMaskStatsArgs struct {
	matteArgs
	MaskOutputPath string `json:"mask_output_path"`
}

// MaskStatsResult is returned by image_mask_stats.
type MaskStatsResult struct {
	Config         string             `json:"config"`
	Stats          *imaging.MaskStats `json:"stats"`
	MaskOutputPath string             `json:"mask_output_path,omitempty"`
}

func (s *Server) handleImageMaskStats(args json.RawMessage) (interface{}, error) {
	var a imageMaskStatsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	buf, res, cfg, err := s.matte(&a.matteArgs)
	if err != nil {
		return nil, err
	}
	stats, err := imaging.MeasureMask(res.Alpha, buf.Width())
	if err != nil {
		return nil, err
	}

	if a.MaskOutputPath != "" {
		gray, err := imaging.MaskImage(res.Alpha, buf.Width())
		if err != nil {
			return nil, err
		}
		if err := imaging.SavePNG(gray, a.MaskOutputPath); err != nil {
			return nil, err
		}
		s.cache.Evict(a.MaskOutputPath)
	}

	return &MaskStatsResult{
		Config:         cfg.String(),
		Stats:          stats,
		MaskOutputPath: a.MaskOutputPath,
	}, nil
}
