package tess

import "errors"

var (
	// ErrTooManyVertices is returned when a tessellation needs more vertices
	// than the geometry's index type can address. The geometry is left as it
	// was before the call; retrying with uint32 indices may succeed.
	ErrTooManyVertices = errors.New("tess: too many vertices for the index type")

	// ErrTessellation wraps failures of the tessellation algorithms, such as
	// self-intersections that cannot be resolved or non-finite coordinates.
	ErrTessellation = errors.New("tess: tessellation failed")

	// ErrInvalidOptions is returned for out-of-range option values.
	ErrInvalidOptions = errors.New("tess: invalid options")
)
