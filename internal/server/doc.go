// Package server exposes the grid slicing engine over MCP (Model Context
// Protocol).
//
// The server is a JSON-RPC 2.0 loop over stdio: requests arrive one per line
// on stdin, responses go to stdout, and logging goes to stderr so it never
// corrupts the protocol stream.
//
// Supported MCP methods:
//   - initialize: protocol handshake
//   - tools/list: enumerate available tools
//   - tools/call: execute a tool with arguments
//   - ping: health check
//
// # Tools
//
// Session and grid:
//   - image_load: load a source image and start an editing session
//   - image_dimensions: width and height of an image file
//   - grid_create: regenerate default boundaries for a new grid shape
//   - grid_lines: current boundary set
//   - session_state: lifecycle state plus staleness of candidate settings
//
// Boundary editing:
//   - drag_begin: capture one boundary edge scalar
//   - drag_move: overwrite the captured scalar from a pointer position
//   - drag_end: release the capture
//
// Output:
//   - grid_preview: render the editing surface with gutters dimmed
//   - grid_slice: run a slicing pass and return the encoded tiles
//   - slice_export_archive: write the last pass's tiles to a zip file
//
// # State
//
// The server holds one editing session (image, boundaries, last pass) plus an
// image cache keyed by path. Everything is in-memory; nothing persists across
// the process.
package server
