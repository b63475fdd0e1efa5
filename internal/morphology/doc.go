// Package morphology implements binary erosion, dilation, opening and
// closing with a structuring element.
//
// Inputs must be single-channel binary grids (values 0 and 255). Pixels
// outside the grid count as background for both erosion and dilation.
//
// # Iterations
//
// Every operation takes an iteration count n and applies its base operation
// n times in sequence. This equals a single pass with an element grown n
// times only for symmetric convex elements such as Square; iterating Cross
// twice, for example, covers a diamond that Cross(2) does not.
//
// # Closing at the Border
//
// Close evaluates on a canvas padded with background by the total dilation
// reach, so foreground near the edge is not eaten by the erosion step and the
// result always contains the original foreground.
package morphology
