// Package mesh defines the data exchanged between the path flattener, the
// tessellators and the geometry buffers: flattened contours going in,
// vertices and triangles coming out.
package mesh

import "github.com/gogpu/tess/internal/geom"

// Contour is one flattened subpath.
//
// Attrs holds len(Points)*AttrCount values: the interpolated custom
// attributes of each point, in point order.
type Contour struct {
	Points    []geom.Point
	Attrs     []float32
	AttrCount int
	Closed    bool
}

// Attr returns the attributes of point i. The slice aliases c.Attrs.
func (c *Contour) Attr(i int) []float32 {
	n := c.AttrCount
	return c.Attrs[i*n : (i+1)*n : (i+1)*n]
}

// Append adds a point with its attributes.
func (c *Contour) Append(p geom.Point, attrs []float32) {
	c.Points = append(c.Points, p)
	c.Attrs = append(c.Attrs, attrs[:c.AttrCount]...)
}

// Vertex is a tessellator output vertex before it is stored.
//
// For fill output OriginalPosition equals Position and Normal is zero.
// For stroke output OriginalPosition is the point on the path centerline and
// OriginalPosition + Normal*LineWidth/2 is the offset position. Normal is
// not unit length: it is longer at miter tips and square cap corners.
type Vertex struct {
	Position         geom.Point
	OriginalPosition geom.Point
	Normal           geom.Vector
	// Attrs is only valid for the duration of the AddVertex call.
	Attrs []float32
}

// Sink receives tessellator output.
type Sink interface {
	// AddVertex stores v and returns its index. It fails when the index
	// would not fit the sink's index width.
	AddVertex(v Vertex) (uint32, error)
	// AddTriangle appends one triangle of previously returned indices.
	AddTriangle(a, b, c uint32)
}

// Lerp writes the linear interpolation of a and b at t into dst.
func Lerp(dst, a, b []float32, t float64) {
	ft := float32(t)
	for i := range dst {
		dst[i] = a[i] + (b[i]-a[i])*ft
	}
}
