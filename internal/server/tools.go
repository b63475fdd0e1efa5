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

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Rectangle to process, relative to the image's top-left pixel. Omit to use the whole image.",
		"properties": map[string]interface{}{
			"x":      map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y":      map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"width":  map[string]interface{}{"type": "integer", "description": "Region width in pixels"},
			"height": map[string]interface{}{"type": "integer", "description": "Region height in pixels"},
		},
		"required": []string{"x", "y", "width", "height"},
	}
}

func outputPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional file to also write the result to. The extension picks PNG, JPEG or BMP.",
	}
}

// processingSchema builds the input schema shared by every processing tool,
// adding the tool-specific properties in extra.
func processingSchema(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := map[string]interface{}{
		"path":        pathProperty(),
		"region":      regionProperty(),
		"output_path": outputPathProperty(),
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   append([]string{"path"}, required...),
	}
}

func elementProperties() map[string]interface{} {
	return map[string]interface{}{
		"radius": map[string]interface{}{
			"type":        "integer",
			"description": "Structuring element radius; the element is (2r+1) square (default: 1)",
		},
		"shape": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"square", "cross"},
			"description": "Structuring element shape (default: square)",
		},
		"iterations": map[string]interface{}{
			"type":        "integer",
			"description": "Number of times the operation is repeated (default: 1)",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and whether it is already grayscale.",
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

		// Region and Color
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG.",
			InputSchema: processingSchema(nil, "region"),
		},
		{
			Name:        "image_grayscale",
			Description: "Convert an image (or a region of it) to single-channel luminance using 0.2989 R + 0.5870 G + 0.1140 B.",
			InputSchema: processingSchema(nil),
		},

		// Thresholding
		{
			Name: "image_threshold",
			Description: "Binarize an image. 'otsu' picks one global level that best separates two intensity classes and reports it. " +
				"'local' compares each pixel with the mean of its block_size neighborhood minus offset, which copes with uneven lighting.",
			InputSchema: processingSchema(map[string]interface{}{
				"method": map[string]interface{}{
					"type":        "string",
					"enum":        []string{MethodOtsu, MethodLocal},
					"description": "Threshold method (default: otsu)",
				},
				"block_size": map[string]interface{}{
					"type":        "integer",
					"description": "Local neighborhood size; odd, at least 3 and at most twice the larger image side plus one. Even values are raised by one with a warning (default: 35, capped to the image)",
				},
				"offset": map[string]interface{}{
					"type":        "number",
					"description": "Subtracted from the local mean before comparing (default: 0)",
				},
			}),
		},

		// Geometry
		{
			Name: "image_transform",
			Description: "Rotate, scale and translate an image about its center. Positive angles rotate counter-clockwise as displayed. " +
				"Pixels with no source are set to fill.",
			InputSchema: processingSchema(map[string]interface{}{
				"angle": map[string]interface{}{
					"type":        "number",
					"description": "Rotation in degrees (default: 0)",
				},
				"dx": map[string]interface{}{
					"type":        "number",
					"description": "Horizontal shift in pixels, positive moves content right (default: 0)",
				},
				"dy": map[string]interface{}{
					"type":        "number",
					"description": "Vertical shift in pixels, positive moves content down (default: 0)",
				},
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Zoom factor, greater than 0 (default: 1)",
				},
				"order": map[string]interface{}{
					"type":        "integer",
					"enum":        []int{0, 1},
					"description": "Interpolation: 0 nearest neighbor, 1 bilinear (default: 0)",
				},
				"fill": map[string]interface{}{
					"type":        []string{"integer", "string"},
					"description": "Fill intensity 0-255, or a hex color reduced to its luminance (default: 0)",
				},
				"expand": map[string]interface{}{
					"type":        "boolean",
					"description": "Grow the canvas so the whole transformed image fits (default: false)",
				},
				"grayscale": map[string]interface{}{
					"type":        "boolean",
					"description": "Convert to luminance before transforming (default: false)",
				},
			}),
		},

		// Morphology
		{
			Name: "image_morphology",
			Description: "Apply binary morphology. 'erode' shrinks foreground, 'dilate' grows it, 'open' removes specks " +
				"and 'close' fills small holes. The image must be binary unless binarize is set.",
			InputSchema: processingSchema(mergeProperties(elementProperties(), map[string]interface{}{
				"op": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"erode", "dilate", "open", "close"},
					"description": "Morphological operation",
				},
				"binarize": map[string]interface{}{
					"type":        "boolean",
					"description": "Apply an Otsu threshold first (default: false)",
				},
			}), "op"),
		},

		// Composition
		{
			Name: "image_pipeline",
			Description: "Run a list of steps over an image in order. Each step has an 'op' (crop, gray, otsu, local, transform, " +
				"erode, dilate, open, close) plus that operation's parameters, named as in the individual tools.",
			InputSchema: processingSchema(map[string]interface{}{
				"steps": map[string]interface{}{
					"type":        "array",
					"description": "Operations to apply, e.g. [{\"op\":\"gray\"},{\"op\":\"otsu\"},{\"op\":\"close\",\"radius\":1}]",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"op": map[string]interface{}{"type": "string"},
						},
						"required": []string{"op"},
					},
				},
			}, "steps"),
		},
	}
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
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
