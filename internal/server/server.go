package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/render-edges-mcp/internal/canny"
	"github.com/ironsheep/render-edges-mcp/internal/imaging"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "render-edges-mcp"

	// maxRequestBytes bounds one request line.
	maxRequestBytes = 1024 * 1024
)

// Version is reported in serverInfo. cmd/edge-mcp overrides it at link time.
var Version = "0.1.0"

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type methodHandler func(*MCPRequest) *MCPResponse

// Server answers MCP requests for the edge tools. Decoded images are shared
// between calls through an ImageCache.
type Server struct {
	cache   *imaging.ImageCache
	methods map[string]methodHandler
}

// New creates a new MCP server instance
func New() *Server {
	s := &Server{cache: imaging.NewImageCache()}
	s.methods = map[string]methodHandler{
		"initialize": s.handleInitialize,
		"tools/list": s.handleToolsList,
		"tools/call": s.handleToolsCall,
		"ping":       s.handlePing,
	}
	return s
}

// Run serves stdin to stdout until stdin is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes each response
// as one line to w. Notifications get no response. A line that is not JSON
// is answered with a parse error and a null id.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, -32700, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}

		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}

// handleRequest routes one request through the method table.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}
	if h, ok := s.methods[req.Method]; ok {
		return h(req)
	}
	return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
}

func (s *Server) handlePing(req *MCPRequest) *MCPResponse {
	return &MCPResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{}}
}

// handleInitialize answers the handshake. Besides the server identity it
// reports the threshold defaults, so clients can show them before any call.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    serverName,
				"version": Version,
			},
			"defaults": map[string]float64{
				"threshold_low":  canny.DefaultLow,
				"threshold_high": canny.DefaultHigh,
			},
		},
	}
}
