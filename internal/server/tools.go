package server

import "github.com/ironsheep/render-edges-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the rendered image file",
	}
}

func thresholdProperties() (low, high map[string]interface{}) {
	low = map[string]interface{}{
		"type":        "number",
		"description": "Low hysteresis threshold as a fraction of full intensity (0-1). Default 0.1",
		"default":     0.1,
	}
	high = map[string]interface{}{
		"type":        "number",
		"description": "High hysteresis threshold as a fraction of full intensity (0-1). Must be >= threshold_low. Default 0.3",
		"default":     0.3,
	}
	return low, high
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"description": "Optional region to analyze (x2, y2 exclusive). If omitted, analyzes the entire image.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	low, high := thresholdProperties()

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it is large enough for edge detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_detect",
			Description: "Run Canny edge detection on a rendered image. Returns a black and white PNG (edges are white) with edge statistics. Optionally writes the edge map to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":           pathProperty(),
					"threshold_low":  low,
					"threshold_high": high,
					"region":         regionProperty(),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor applied before detection. Default 1.0",
						"default":     1.0,
					},
					"presmooth_sigma": map[string]interface{}{
						"type":        "number",
						"description": "Optional extra Gaussian blur radius for noisy renders. Default 0 (off)",
						"default":     0,
					},
					"parallel": map[string]interface{}{
						"type":        "boolean",
						"description": "Split the work across CPU cores. Output is identical. Default false",
						"default":     false,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the edge map to (format from extension: png, jpg, gif, tif, bmp)",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-read the file even if it was loaded before (use after a new render). Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_overlay",
			Description: "Detect edges and paint them over the source image in a solid color, to compare detected outlines with the render.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":           pathProperty(),
					"threshold_low":  low,
					"threshold_high": high,
					"region":         regionProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Edge color as #RRGGBB or #RGB. Default #FF0000",
						"default":     imaging.DefaultOverlayColor,
					},
					"opacity": map[string]interface{}{
						"type":        "number",
						"description": "Edge opacity (0-1). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "edge_stage",
			Description: "Visualize one intermediate buffer of the edge detection pipeline, for tuning thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"stage": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.StageNames,
						"description": "Pipeline stage to render",
					},
					"threshold_low":  low,
					"threshold_high": high,
					"region":         regionProperty(),
				},
				"required": []string{"path", "stage"},
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
