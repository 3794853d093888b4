// Package server implements the MCP (Model Context Protocol) server for pixel editing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes point transforms,
// histograms and region statistics over the MCP protocol.
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
//   - image_reset: Discard edits and reload from disk
//
// Point Transforms:
//   - image_invert, image_threshold
//   - image_hue, image_saturation, image_value
//   - image_contrast, image_multiply
//   - image_pipeline: Several transforms applied atomically
//
// Statistics:
//   - image_histogram: 256-bucket channel histogram, optionally binned
//   - image_bin_histogram: Reduce any histogram to fewer buckets
//   - image_sample_color, image_sample_colors_multi: Read pixels with HSV
//   - image_average_region: Mean color of a rectangle
//
// # Working Rasters
//
// Each loaded path has a working raster held in an imaging.RasterCache.
// Transform tools edit that raster, so successive calls accumulate. A tool
// that fails leaves the working raster unchanged. The cache is bounded;
// Config.MaxRasters sets how many paths stay resident.
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
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
