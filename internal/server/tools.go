package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// transformSchema builds the input schema shared by every point-transform
// tool: the image path, optional output file and preview scale, plus the
// tool's own properties.
func transformSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	properties := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Optional file to write the edited image to (.png, .jpg or .jpeg)",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor for the returned preview. Default 1.0",
			"default":     1.0,
		},
	}
	for k, v := range props {
		properties[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   append([]string{"path"}, required...),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded pixels become the working raster for subsequent edits of this path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_reset",
			Description: "Discard all edits made to an image and reload it from disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Point Transforms
		{
			Name:        "image_invert",
			Description: "Invert the colors of the working raster (each channel becomes 255 minus its value). Alpha is unchanged.",
			InputSchema: transformSchema(nil),
		},
		{
			Name:        "image_threshold",
			Description: "Binarize the working raster: pixels whose brightest channel is at least the threshold become white, the rest black.",
			InputSchema: transformSchema(map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Threshold 0-255 (default 128)",
					"default":     128,
					"minimum":     0,
					"maximum":     255,
				},
			}),
		},
		{
			Name:        "image_hue",
			Description: "Rotate the hue of every pixel by a number of degrees.",
			InputSchema: transformSchema(map[string]interface{}{
				"degrees": map[string]interface{}{
					"type":        "number",
					"description": "Signed hue rotation in degrees; wraps modulo 360",
				},
			}, "degrees"),
		},
		{
			Name:        "image_saturation",
			Description: "Raise or lower HSV saturation. The amount is on a 0-255 scale and the result is clamped.",
			InputSchema: transformSchema(map[string]interface{}{
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Signed saturation offset (0-255 scale)",
				},
			}, "amount"),
		},
		{
			Name:        "image_value",
			Description: "Raise or lower brightness by shifting each pixel's dominant channel and rescaling the others to keep their ratios.",
			InputSchema: transformSchema(map[string]interface{}{
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Signed brightness offset (0-255 scale)",
				},
			}, "amount"),
		},
		{
			Name:        "image_contrast",
			Description: "Multiply every color channel by a positive factor, rounding and clamping to 0-255.",
			InputSchema: transformSchema(map[string]interface{}{
				"factor": map[string]interface{}{
					"type":             "number",
					"description":      "Positive multiplier (1.0 = unchanged)",
					"exclusiveMinimum": 0,
				},
			}, "factor"),
		},
		{
			Name:        "image_multiply",
			Description: "Multiply each color channel by its own factor. Factors above 1 are read as bytes (0-255), factors 0-1 as fractions.",
			InputSchema: transformSchema(map[string]interface{}{
				"r": map[string]interface{}{"type": "number", "description": "Red factor (default 1)", "default": 1},
				"g": map[string]interface{}{"type": "number", "description": "Green factor (default 1)", "default": 1},
				"b": map[string]interface{}{"type": "number", "description": "Blue factor (default 1)", "default": 1},
			}),
		},
		{
			Name:        "image_pipeline",
			Description: "Apply several point transforms in order. If any step fails the working raster is left unchanged.",
			InputSchema: transformSchema(map[string]interface{}{
				"steps": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"op": map[string]interface{}{
								"type": "string",
								"enum": []string{"contrast", "hue", "invert", "multiply", "saturation", "threshold", "value"},
							},
							"args": map[string]interface{}{
								"type":        "array",
								"items":       map[string]interface{}{"type": "number"},
								"description": "Numeric arguments in order (multiply takes r, g, b; invert takes none)",
							},
						},
						"required": []string{"op"},
					},
					"description": "Operations to apply",
				},
			}, "steps"),
		},

		// Statistics
		{
			Name:        "image_histogram",
			Description: "Count how many pixels take each value 0-255 in one color channel. Optionally reduce the 256 buckets to fewer for display.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"channel": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"r", "g", "b"},
						"description": "Channel to count (default 'r')",
						"default":     "r",
					},
					"bins": map[string]interface{}{
						"type":        "integer",
						"description": "Optional number of display buckets to reduce the histogram to",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_bin_histogram",
			Description: "Reduce any histogram to a number of buckets by local windowed averaging.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"histogram": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Bucket frequencies",
					},
					"bins": map[string]interface{}{
						"type":        "integer",
						"description": "Number of output buckets (must be positive)",
						"minimum":     1,
					},
				},
				"required": []string{"histogram", "bins"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of the working raster at one pixel, as RGBA, hex, CSS and HSV (saturation and value on a 0-255 scale).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{"type": "integer", "description": "X coordinate (0-based, left edge is 0)"},
					"y": map[string]interface{}{"type": "integer", "description": "Y coordinate (0-based, top edge is 0)"},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at several points in one call. Fails without partial results if any point is outside the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label echoed in the result"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_average_region",
			Description: "Average the pixels of a rectangular region. Returns RGBA plus hex and CSS forms of the mean color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x":      map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
					"y":      map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
					"width":  map[string]interface{}{"type": "integer", "description": "Region width in pixels (positive)"},
					"height": map[string]interface{}{"type": "integer", "description": "Region height in pixels (positive)"},
				},
				"required": []string{"path", "x", "y", "width", "height"},
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
