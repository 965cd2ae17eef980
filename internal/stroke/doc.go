// Package stroke turns flattened contours into stroke triangles.
//
// Each segment of a contour becomes a quad spanning width/2 on both sides of
// the centerline. Quads of adjacent segments share their corner vertices at
// smooth joins; elsewhere the outer side of the corner is filled with a fan
// anchored at the join point.
//
// # Vertices
//
// Every vertex carries the centerline point it was derived from and a normal
// such that
//
//	position = centerline + normal*width/2
//
// The normal has unit length except at miter tips, clipped miters and square
// cap corners, where it reaches the exact offset corner. Fan centers use a
// zero normal.
//
// # Line Caps
//
//   - Butt: the stroke ends flat at the endpoint
//   - Round: a half disc of radius width/2
//   - Square: the stroke extends width/2 past the endpoint
//
// # Line Joins
//
//   - Miter: sharp corner, replaced by a bevel past the miter limit
//   - MiterClip: sharp corner, cut off at the miter limit
//   - Round: circular arc around the join point
//   - Bevel: straight line across the corner
//
// The quads of adjacent segments overlap on the inner side of a corner, so
// the output must be drawn without blending artifacts from double coverage,
// or with a stencil.
package stroke
