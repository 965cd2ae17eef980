package tess

import "github.com/gogpu/tess/internal/geom"

// Point is a position in path space.
type Point = geom.Point

// Vector is a displacement in path space.
type Vector = geom.Vector

// Box is an axis-aligned rectangle. An empty path has an empty box with
// Min greater than Max.
type Box = geom.Box

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return geom.Pt(x, y)
}

// Vec is a convenience function to create a Vector.
func Vec(x, y float64) Vector {
	return geom.Vec(x, y)
}

// NewBox returns the smallest box containing both points.
func NewBox(p1, p2 Point) Box {
	return geom.NewBox(p1, p2)
}
