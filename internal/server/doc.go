// Package server implements the MCP (Model Context Protocol) server for
// raster processing tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: zerolog output on whatever writer the caller configured,
//     normally stderr
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Processing (each accepts path, an optional region and an optional
// output_path, and returns the result as base64 PNG):
//   - image_crop: Extract a rectangular region
//   - image_grayscale: Luminance conversion
//   - image_threshold: Otsu or local adaptive binarization
//   - image_transform: Rotate, scale and translate
//   - image_morphology: Erode, dilate, open or close a binary image
//   - image_pipeline: Any sequence of the above as declarative steps
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Each
// tool call builds its own grid from the cached image, so calls never share
// pixel data.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32700: the request line was not valid JSON
//   - -32601: unknown method
//   - -32602: malformed arguments, a missing path or an unknown tool
//   - -32000: the tool ran and failed; data carries the error string
//
// # Usage
//
//	srv := server.New(logger.New(os.Stderr, zerolog.InfoLevel))
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server stopped")
//	}
package server
