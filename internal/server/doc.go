// Package server implements the MCP (Model Context Protocol) server for edge
// detection on rendered images.
//
// This package provides a JSON-RPC 2.0 server that exposes the Canny edge
// detector through the MCP protocol, so an MCP client can check the
// outlines in a render without leaving the conversation.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake (also reports the default thresholds)
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and get its metadata
//   - edge_detect: Binary edge map plus edge statistics, optionally saved to disk
//   - edge_overlay: Edges painted over the source image
//   - edge_stage: One intermediate pipeline buffer, for threshold tuning
//
// Thresholds are fractions of full intensity. Omitted thresholds default to
// 0.1 and 0.3; an explicit 0 is honoured.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the process. Pass
// "reload": true to edge_detect after re-rendering a file in place.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
