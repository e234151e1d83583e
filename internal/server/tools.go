package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sourceProperties are the text input properties shared by the text tools.
// Exactly one of them must be given.
func sourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"text": map[string]interface{}{
			"type":        "string",
			"description": "Text to visualize. Mutually exclusive with path.",
		},
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a UTF-8 text file to visualize. Mutually exclusive with text.",
		},
	}
}

// renderProperties are the image options shared by the rendering tools.
func renderProperties() map[string]interface{} {
	return map[string]interface{}{
		"scale": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels per word cell (1-100). Defaults to the server's configured scale (20).",
		},
		"collapsed": map[string]interface{}{
			"type":        "boolean",
			"description": "Drop near-neutral cells (saturation below 0.2) and repack the rest into a smaller grid.",
			"default":     false,
		},
		"show_grid": map[string]interface{}{
			"type":        "boolean",
			"description": "Draw separators between word cells.",
			"default":     false,
		},
		"grid_color": map[string]interface{}{
			"type":        "string",
			"description": "Separator color as hex (e.g., '#00FF00'). Default black.",
			"default":     "#000000",
		},
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Rendering
		{
			Name:        "sentiment_render",
			Description: "Render text as a sentiment color field: one colored cell per word, laid out row by row in a square grid. Strongly polar words become saturated anchors whose color diffuses into nearby neutral words. Returns a base64-encoded PNG plus field statistics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": merge(sourceProperties(), renderProperties()),
			},
		},
		{
			Name:        "sentiment_render_file",
			Description: "Render text as a sentiment color field and write the image to disk. The format follows the output extension (.png, .jpg, .bmp).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(sourceProperties(), renderProperties(), map[string]interface{}{
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the image file to write",
					},
				}),
				"required": []string{"output_path"},
			},
		},
		{
			Name:        "sentiment_render_ocr",
			Description: "Read the words in an image with OCR (Tesseract) and render them as a sentiment color field. Low-confidence OCR words are dropped before scoring.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(renderProperties(), map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image to read",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (e.g., 'eng', 'deu'). Defaults to the server's configured language.",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Drop OCR words below this confidence (0.0-1.0). Defaults to the server's configured value.",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also write the rendered image to",
					},
				}),
				"required": []string{"image_path"},
			},
		},

		// Inspection
		{
			Name:        "sentiment_field",
			Description: "Compute the sentiment field of a text without rendering it. Returns grid size, anchor statistics, score statistics and per-word cells (position, polarity, anchor flag, HSV and RGB color).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(sourceProperties(), map[string]interface{}{
					"offset": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the first cell to return. Default 0",
						"default":     0,
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum cells to return (1-10000). Default 500",
						"default":     500,
					},
				}),
			},
		},
		{
			Name:        "sentiment_sample_cell",
			Description: "Get the word and final color at a grid position of a text's sentiment field.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(sourceProperties(), map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Column (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Row (0-based, from top)",
					},
				}),
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "sentiment_palette",
			Description: "Extract the dominant colors of a text's sentiment field, with their share of the grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(sourceProperties(), map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (1-20). Default 5",
						"default":     5,
					},
					"collapsed": map[string]interface{}{
						"type":        "boolean",
						"description": "Measure only the saturated cells kept by the collapsed view.",
						"default":     false,
					},
				}),
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
