// Package server implements the MCP (Model Context Protocol) server for the
// cutout engine.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_estimate_background: Mean color of the image border
//   - image_dominant_colors: Extract color palette
//
// Background Removal:
//   - image_remove_background: Write a transparent PNG cutout
//   - image_mask_stats: Report mask coverage without writing a cutout
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Paths
// the server writes to are evicted so later calls see the new file.
//
// # Error Handling
//
//   - -32601: unknown JSON-RPC method
//   - -32602: malformed tools/call params or invalid tool arguments
//   - -32000: tool execution failure, including engine panics
//
// The error data field carries the Go error string.
package server
