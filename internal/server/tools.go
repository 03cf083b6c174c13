package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// matteProperties are the engine options shared by the background tools.
func matteProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"auto", "portrait", "object"},
			"description": "Subject hint. Accepted for compatibility; the heuristic engine treats all modes alike. Default auto",
		},
		"soft": map[string]interface{}{
			"type":        "number",
			"minimum":     0,
			"maximum":     1,
			"description": "Edge softness for the soft mask (0 = steep, 1 = gentle). Ignored when hard is given. Default 0.2",
		},
		"hard": map[string]interface{}{
			"type":        "number",
			"minimum":     0,
			"maximum":     255,
			"description": "Produce a binary mask: pixels whose background distance reaches hard/255 of the maximum become opaque",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	removeProps := matteProperties()
	removeProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Where to write the cutout PNG. Missing directories are created",
	}

	statsProps := matteProperties()
	statsProps["mask_output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path for a grayscale PNG of the mask (white = opaque)",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count. Sets this as the active image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_estimate_background",
			Description: "Estimate the background color as the mean of the image's border pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		{
			Name:        "image_dominant_colors",
			Description: "Extract the dominant colors of an image by clustering, most frequent first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},

		// Background Removal
		{
			Name:        "image_remove_background",
			Description: "Remove the background of an image and write the cutout as a PNG with transparency. Returns mask statistics and the estimated background color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": removeProps,
				"required":   []string{"path", "output_path"},
			},
		},
		{
			Name:        "image_mask_stats",
			Description: "Compute the background-removal mask without writing a cutout and report its coverage and foreground bounds.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": statsProps,
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
