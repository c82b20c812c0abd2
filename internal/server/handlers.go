package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/render-edges-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "edge_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
	case "image_load":
		return s.handleImageLoad(args)
	case "edge_detect":
		return s.handleEdgeDetect(args)
	case "edge_overlay":
		return s.handleEdgeOverlay(args)
	case "edge_stage":
		return s.handleEdgeStage(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: "2.0", ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// edgeArgs holds the arguments shared by every edge tool. Thresholds are
// pointers so an explicit 0 is not replaced by the default.
type edgeArgs struct {
	Path          string          `json:"path"`
	ThresholdLow  *float64        `json:"threshold_low"`
	ThresholdHigh *float64        `json:"threshold_high"`
	Region        *imaging.Region `json:"region,omitempty"`
}

func (a *edgeArgs) options() imaging.EdgeOptions {
	opts := imaging.DefaultEdgeOptions()
	if a.ThresholdLow != nil {
		opts.ThresholdLow = *a.ThresholdLow
	}
	if a.ThresholdHigh != nil {
		opts.ThresholdHigh = *a.ThresholdHigh
	}
	opts.Region = a.Region
	return opts
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Edge Detection Handlers ===

type edgeDetectArgs struct {
	edgeArgs
	Scale          float64 `json:"scale"`
	PresmoothSigma float64 `json:"presmooth_sigma"`
	Parallel       bool    `json:"parallel"`
	OutputPath     string  `json:"output_path"`
	Reload         bool    `json:"reload"`
}

func (s *Server) handleEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a edgeDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := a.options()
	opts.Scale = a.Scale
	opts.PresmoothSigma = a.PresmoothSigma
	opts.Parallel = a.Parallel

	stages, err := imaging.DetectEdges(img, opts)
	if err != nil {
		return nil, err
	}
	result, err := imaging.NewEdgeDetectResult(stages.Edges)
	if err != nil {
		return nil, err
	}

	if a.OutputPath != "" {
		if err := imaging.Export(imaging.FromRaster(stages.Edges), a.OutputPath); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
	}
	return result, nil
}

type edgeOverlayArgs struct {
	edgeArgs
	Color   string   `json:"color"`
	Opacity *float64 `json:"opacity"`
}

func (s *Server) handleEdgeOverlay(args json.RawMessage) (interface{}, error) {
	var a edgeOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOverlayColor
	}
	opacity := 1.0
	if a.Opacity != nil {
		opacity = *a.Opacity
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeOverlay(img, a.options(), a.Color, opacity)
}

type edgeStageArgs struct {
	edgeArgs
	Stage string `json:"stage"`
}

func (s *Server) handleEdgeStage(args json.RawMessage) (interface{}, error) {
	var a edgeStageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Stage == "" {
		a.Stage = imaging.StageEdges
	}
	if err := imaging.ValidateStage(a.Stage); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeStage(img, a.options(), a.Stage)
}
