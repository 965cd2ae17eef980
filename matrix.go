package tess

import "github.com/gogpu/tess/internal/geom"

// Transform is a 2D affine transformation applied by [Path.Transform].
// It uses a 2x3 matrix in row-major order:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Transform = geom.Transform

// Identity returns the identity transformation.
func Identity() Transform {
	return geom.Identity()
}

// Translate creates a translation.
func Translate(x, y float64) Transform {
	return geom.Translation(x, y)
}

// Scale creates a scaling transformation.
func Scale(x, y float64) Transform {
	return geom.Scaling(x, y)
}

// Rotate creates a rotation (angle in radians).
func Rotate(angle float64) Transform {
	return geom.Rotation(angle)
}
