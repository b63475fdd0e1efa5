// Package pipeline composes the grid operations of this module into a
// declarative sequence of steps.
//
// The core packages (raster, threshold, affine, morphology) never call each
// other; a pipeline is the caller that chains them. A typical sequence is
// crop, gray, otsu or local, and then any mix of transform and morphology
// steps. Steps are plain data with JSON tags so they can be supplied by a
// client verbatim.
package pipeline
