// Package threshold binarizes single-channel intensity grids.
//
// Two modes are provided:
//
//   - Global (Otsu): one cut level for the whole grid, chosen to maximize the
//     inter-class variance of the intensity histogram.
//   - Local (adaptive): a per-pixel cut surface equal to the mean of the
//     blockSize x blockSize neighborhood minus an offset.
//
// In both modes a pixel becomes foreground (255) when its intensity is
// strictly greater than its cut, and background (0) otherwise.
//
// # Boundary Handling
//
// Local means are taken over a reflect-padded grid. Reflection repeats the
// edge pixel (d c b a | a b c d | d c b a), so edges are not darkened the way
// zero padding would darken them. Windows larger than the grid keep
// reflecting.
//
// # Block Size Adjustment
//
// The local window must have a center, so an even block size is raised to the
// next odd value. This is reported through Surface.Adjusted and
// LocalResult.Warning rather than applied silently; the package itself never
// logs.
package threshold
