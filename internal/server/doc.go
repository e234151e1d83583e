// Package server implements the MCP (Model Context Protocol) server for
// sentiment field rendering.
//
// This package provides a JSON-RPC 2.0 server that turns text into sentiment
// color fields through the MCP protocol: every word becomes one colored cell,
// polar words act as anchors, and their color diffuses into the neutral words
// around them.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Rendering:
//   - sentiment_render: Render text as a base64 PNG
//   - sentiment_render_file: Render text to an image file
//   - sentiment_render_ocr: Read words from an image and render them
//
// Inspection:
//   - sentiment_field: Per-word cells and statistics
//   - sentiment_sample_cell: Word and color at a grid position
//   - sentiment_palette: Dominant colors of a field
//
// Text tools take their input from either "text" or "path" (a UTF-8 file).
//
// # Field Caching
//
// Fields are cached by source text (see pipeline.FieldCache), so rendering,
// sampling and inspecting the same text repeatedly synthesizes it once. The
// cache is bounded by SENTIMENT_MCP_CACHE_SIZE.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(cfg, runner, logger)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server error", "err", err)
//	}
package server
