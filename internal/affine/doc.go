// Package affine resamples grids under translation, rotation and uniform
// scaling.
//
// A transform is described by Params and realized as a single 2x3 affine
// matrix composed, in order, of scale, rotation about the grid's geometric
// center, and translation. Every destination pixel is mapped back through the
// inverse matrix to a source coordinate and sampled with nearest-neighbor or
// bilinear interpolation. Destination pixels that map outside the source are
// written with the fill value.
//
// # Coordinates
//
// Pixel centers sit at integer coordinates and the geometric center of a
// W x H grid is ((W-1)/2, (H-1)/2). A source coordinate is inside the grid
// when it falls within half a pixel of the outermost pixel centers. Positive
// angles rotate counter-clockwise as the image is displayed (Y down).
//
// # Canvas Size
//
// FixedSize keeps the source dimensions and clips whatever leaves the
// canvas. ExpandToFit grows the canvas to the rotated and scaled bounding box
// and maps the source center onto the new canvas center, plus any shift.
//
// Bilinear sampling of a binary grid produces intermediate values; binarize
// again if a {0,255} result is required.
package affine
