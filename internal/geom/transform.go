package geom

import "math"

// Transform represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translation creates a translation.
func Translation(x, y float64) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// Scaling creates a scaling transformation.
func Scaling(x, y float64) Transform {
	return Transform{A: x, E: y}
}

// Rotation creates a rotation (angle in radians).
func Rotation(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Then returns the transformation that applies t first and then next.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		A: next.A*t.A + next.B*t.D,
		B: next.A*t.B + next.B*t.E,
		C: next.A*t.C + next.B*t.F + next.C,
		D: next.D*t.A + next.E*t.D,
		E: next.D*t.B + next.E*t.E,
		F: next.D*t.C + next.E*t.F + next.F,
	}
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyVector transforms a vector (no translation).
func (t Transform) ApplyVector(v Vector) Vector {
	return Vector{
		X: t.A*v.X + t.B*v.Y,
		Y: t.D*v.X + t.E*v.Y,
	}
}

// IsIdentity reports whether t is the identity transformation.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}
