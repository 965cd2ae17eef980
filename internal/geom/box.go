package geom

import "math"

// Box represents an axis-aligned rectangle.
// Min holds the minimum coordinates, Max the maximum coordinates.
type Box struct {
	Min, Max Point
}

// EmptyBox returns a box that contains nothing. Extending it with a point
// yields the degenerate box around that point.
func EmptyBox() Box {
	return Box{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// NewBox creates a box from two corners.
// The points are normalized so Min <= Max.
func NewBox(p1, p2 Point) Box {
	return Box{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// IsEmpty reports whether the box contains no point.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Width returns the width of the box.
func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the height of the box.
func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Point) Box {
	return Box{
		Min: Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	if other.IsEmpty() {
		return b
	}
	return b.Extend(other.Min).Extend(other.Max)
}

// Contains reports whether the point is inside the box, borders included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
