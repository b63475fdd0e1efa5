// Package imaging moves raster grids in and out of image files for the MCP
// server.
//
// It decodes files into cached image.Image values, crops a requested region
// into a raster.Grid, and encodes result grids either as base64 PNG for a
// response or to a file on disk.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left pixel:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - A Region names its top-left corner and its width and height
//
// # Supported Formats
//
// Decoding handles PNG, JPEG, GIF, BMP, TIFF and WebP. Saving handles PNG,
// JPEG and BMP, chosen by the output file extension.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Every other function is stateless.
// Grids returned by this package never share storage with cached images.
//
// # Error Handling
//
// Region and grid errors wrap the raster package's sentinel errors, so
// callers can test them with errors.Is:
//   - raster.ErrOutOfBounds for regions outside the image
//   - raster.ErrEmptyInput for nil images or grids
//
// File I/O and codec failures are returned wrapped with context.
package imaging
