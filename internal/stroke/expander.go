package stroke

import (
	"errors"
	"math"

	"github.com/gogpu/tess/internal/geom"
	"github.com/gogpu/tess/internal/mesh"
)

// ErrNonFinite is returned when a contour contains NaN or infinite
// coordinates.
var ErrNonFinite = errors.New("stroke: non-finite coordinates")

// LineCap specifies the shape of open contour endpoints.
type LineCap uint8

const (
	// LineCapButt ends the stroke flat at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half disc.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin specifies the shape of interior corners.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp join, beveled past the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinMiterClip specifies a sharp join clipped at the miter limit.
	LineJoinMiterClip
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Style describes how contours are stroked.
type Style struct {
	Width      float64
	StartCap   LineCap
	EndCap     LineCap
	Join       LineJoin
	MiterLimit float64
	Tolerance  float64

	// ApplyWidth offsets positions along the normal. When false every vertex
	// is placed on the centerline and the width is left to the consumer.
	ApplyWidth bool
}

// DefaultStyle returns a 1-wide stroke with butt caps and miter joins.
func DefaultStyle() Style {
	return Style{
		Width:      1,
		MiterLimit: 4,
		Tolerance:  0.1,
		ApplyWidth: true,
	}
}

// Stats describes the last Expand call.
type Stats struct {
	Contours  int
	Vertices  int
	Triangles int
}

// pair is the left and right offset vertex at one centerline point.
type pair struct {
	left, right uint32
}

// join carries the geometry of one non-smooth corner. The outer normals
// point to the convex side of the turn.
type join struct {
	p      geom.Point
	attrs  []float32
	d0     geom.Vector
	outer0 geom.Vector
	outer1 geom.Vector
	o0, o1 uint32
	dot    float64
	cross  float64
}

// StrokeExpander converts contours into stroke triangles.
// It can be reused across calls but is not safe for concurrent use.
type StrokeExpander struct {
	style        Style
	hw           float64
	joinThresh   float64
	miterLimitSq float64

	sink  mesh.Sink
	err   error
	stats Stats

	pts       []geom.Point
	attrs     []float32
	attrCount int
	dirs      []geom.Vector
}

// NewStrokeExpander returns an expander with empty scratch buffers.
func NewStrokeExpander() *StrokeExpander {
	return &StrokeExpander{}
}

// Stats returns the statistics of the last Expand call.
func (e *StrokeExpander) Stats() Stats {
	return e.stats
}

// Expand strokes every contour into sink. A non-positive width produces no
// output. The first sink error aborts the expansion and is returned as is.
func (e *StrokeExpander) Expand(contours []mesh.Contour, style Style, sink mesh.Sink) error {
	e.stats = Stats{}
	if !(style.Width > 0) {
		return nil
	}
	for i := range contours {
		for _, p := range contours[i].Points {
			if !p.IsFinite() {
				return ErrNonFinite
			}
		}
	}
	if !(style.Tolerance >= geom.MinTolerance) {
		style.Tolerance = geom.MinTolerance
	}
	if style.MiterLimit < 1 {
		style.MiterLimit = 1
	}

	e.style = style
	e.hw = style.Width / 2
	e.joinThresh = 2 * style.Tolerance / style.Width
	e.miterLimitSq = style.MiterLimit * style.MiterLimit
	e.sink = sink
	e.err = nil
	defer func() { e.sink = nil }()

	for i := range contours {
		e.doContour(&contours[i])
		if e.err != nil {
			return e.err
		}
	}

	slogger().Debug("stroke: expanded",
		"contours", e.stats.Contours,
		"vertices", e.stats.Vertices,
		"triangles", e.stats.Triangles,
	)
	return nil
}

// dedup copies the contour into the scratch buffers without consecutive
// duplicate points. The first point of a run keeps its attributes.
func (e *StrokeExpander) dedup(c *mesh.Contour) {
	e.pts = e.pts[:0]
	e.attrs = e.attrs[:0]
	e.attrCount = c.AttrCount
	for i, p := range c.Points {
		if n := len(e.pts); n > 0 && e.pts[n-1] == p {
			continue
		}
		e.pts = append(e.pts, p)
		e.attrs = append(e.attrs, c.Attr(i)...)
	}
	if c.Closed {
		for len(e.pts) > 1 && e.pts[len(e.pts)-1] == e.pts[0] {
			e.pts = e.pts[:len(e.pts)-1]
			e.attrs = e.attrs[:len(e.pts)*e.attrCount]
		}
	}
}

func (e *StrokeExpander) attr(i int) []float32 {
	n := e.attrCount
	return e.attrs[i*n : (i+1)*n : (i+1)*n]
}

func (e *StrokeExpander) doContour(c *mesh.Contour) {
	e.dedup(c)
	n := len(e.pts)
	switch n {
	case 0:
		return
	case 1:
		e.doDot(e.pts[0], e.attr(0))
		return
	}
	e.stats.Contours++

	closed := c.Closed
	segments := n - 1
	if closed {
		segments = n
	}
	e.dirs = e.dirs[:0]
	for k := 0; k < segments; k++ {
		e.dirs = append(e.dirs, e.pts[(k+1)%n].Sub(e.pts[k]).Normalize())
	}

	var prev, first pair
	if closed {
		first, prev = e.doJoin(0, e.dirs[segments-1], e.dirs[0])
	} else {
		prev = e.startCap(e.pts[0], e.dirs[0], e.attr(0))
	}

	for k := 0; k < segments; k++ {
		next := k + 1
		var in, out pair
		switch {
		case closed && next == n:
			in = first
		case !closed && next == n-1:
			in = e.endCap(e.pts[next], e.dirs[k], e.attr(next))
		default:
			in, out = e.doJoin(next, e.dirs[k], e.dirs[next])
		}
		e.doLine(prev, in)
		prev = out
		if e.err != nil {
			return
		}
	}
}

// doLine emits the quad between the offset pairs at both ends of a segment.
func (e *StrokeExpander) doLine(from, to pair) {
	e.triangle(from.left, from.right, to.left)
	e.triangle(from.right, to.right, to.left)
}

// doJoin builds the corner at point i between directions d0 and d1. It
// returns the pair ending the incoming segment and the pair starting the
// outgoing one; smooth corners share a single pair.
func (e *StrokeExpander) doJoin(i int, d0, d1 geom.Vector) (in, out pair) {
	p := e.pts[i]
	attrs := e.attr(i)
	n0, n1 := d0.Perp(), d1.Perp()
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)

	if dot > 0 && math.Abs(cross) < e.joinThresh {
		m := n0.Add(n1).Mul(1 / (1 + dot))
		pr := pair{e.vertex(p, m, attrs), e.vertex(p, m.Neg(), attrs)}
		return pr, pr
	}

	in = pair{e.vertex(p, n0, attrs), e.vertex(p, n0.Neg(), attrs)}
	out = pair{e.vertex(p, n1, attrs), e.vertex(p, n1.Neg(), attrs)}

	// Turning towards the left normal puts the outer corner on the right.
	j := join{p: p, attrs: attrs, d0: d0, dot: dot, cross: cross}
	if cross > 0 {
		j.outer0, j.outer1 = n0.Neg(), n1.Neg()
		j.o0, j.o1 = in.right, out.right
	} else {
		j.outer0, j.outer1 = n0, n1
		j.o0, j.o1 = in.left, out.left
	}

	switch e.style.Join {
	case LineJoinMiter:
		e.applyMiterJoin(j, false)
	case LineJoinMiterClip:
		e.applyMiterJoin(j, true)
	case LineJoinRound:
		e.applyRoundJoin(j)
	default:
		e.applyBevelJoin(j)
	}
	return in, out
}

func (e *StrokeExpander) applyBevelJoin(j join) {
	center := e.vertex(j.p, geom.Vector{}, j.attrs)
	e.triangle(center, j.o0, j.o1)
}

// applyMiterJoin extends both outer edges to their intersection. The miter
// tip lies at distance 1/cos(φ) from the join point in half-width units,
// where φ is half the angle between the outer normals.
func (e *StrokeExpander) applyMiterJoin(j join, clip bool) {
	if 2 < (1+j.dot)*e.miterLimitSq {
		tip := j.outer0.Add(j.outer1).Mul(1 / (1 + j.dot))
		center := e.vertex(j.p, geom.Vector{}, j.attrs)
		t := e.vertex(j.p, tip, j.attrs)
		e.triangle(center, j.o0, t)
		e.triangle(center, t, j.o1)
		return
	}
	if !clip {
		e.applyBevelJoin(j)
		return
	}

	limit := e.style.MiterLimit
	var c0, c1 geom.Vector
	cosPhi := math.Sqrt(math.Max(0, (1+j.dot)/2))
	if cosPhi < 1e-6 {
		// The segments reverse; clip perpendicular to the incoming direction.
		ahead := j.d0.Mul(limit)
		c0 = j.outer0.Add(ahead)
		c1 = j.outer1.Add(ahead)
	} else {
		tip := j.outer0.Add(j.outer1).Mul(1 / (1 + j.dot))
		f := (limit - cosPhi) / (1/cosPhi - cosPhi)
		f = math.Min(math.Max(f, 0), 1)
		c0 = j.outer0.Add(tip.Sub(j.outer0).Mul(f))
		c1 = j.outer1.Add(tip.Sub(j.outer1).Mul(f))
	}

	center := e.vertex(j.p, geom.Vector{}, j.attrs)
	v0 := e.vertex(j.p, c0, j.attrs)
	v1 := e.vertex(j.p, c1, j.attrs)
	e.triangle(center, j.o0, v0)
	e.triangle(center, v0, v1)
	e.triangle(center, v1, j.o1)
}

// applyRoundJoin fills the outer corner with an arc around the join point.
// The sweep goes through the outside of the turn, also for reversals.
func (e *StrokeExpander) applyRoundJoin(j join) {
	angle := math.Abs(math.Atan2(j.cross, j.dot))
	if j.cross <= 0 {
		angle = -angle
	}
	e.fan(j.p, j.attrs, j.outer0, angle, j.o0, j.o1, 1)
}

// startCap returns the pair opening a contour at p with direction d.
func (e *StrokeExpander) startCap(p geom.Point, d geom.Vector, attrs []float32) pair {
	n := d.Perp()
	switch e.style.StartCap {
	case LineCapSquare:
		back := d.Neg()
		return pair{e.vertex(p, n.Add(back), attrs), e.vertex(p, n.Neg().Add(back), attrs)}
	case LineCapRound:
		pr := pair{e.vertex(p, n, attrs), e.vertex(p, n.Neg(), attrs)}
		e.fan(p, attrs, n, math.Pi, pr.left, pr.right, 2)
		return pr
	default:
		return pair{e.vertex(p, n, attrs), e.vertex(p, n.Neg(), attrs)}
	}
}

// endCap returns the pair closing a contour at p with direction d.
func (e *StrokeExpander) endCap(p geom.Point, d geom.Vector, attrs []float32) pair {
	n := d.Perp()
	switch e.style.EndCap {
	case LineCapSquare:
		return pair{e.vertex(p, n.Add(d), attrs), e.vertex(p, n.Neg().Add(d), attrs)}
	case LineCapRound:
		pr := pair{e.vertex(p, n, attrs), e.vertex(p, n.Neg(), attrs)}
		e.fan(p, attrs, n.Neg(), math.Pi, pr.right, pr.left, 2)
		return pr
	default:
		return pair{e.vertex(p, n, attrs), e.vertex(p, n.Neg(), attrs)}
	}
}

// doDot draws a contour that collapsed to one point. Only the start cap is
// considered; a butt cap draws nothing.
func (e *StrokeExpander) doDot(p geom.Point, attrs []float32) {
	switch e.style.StartCap {
	case LineCapRound:
		e.stats.Contours++
		from := geom.Vec(1, 0)
		first := e.vertex(p, from, attrs)
		e.fan(p, attrs, from, 2*math.Pi, first, first, 4)
	case LineCapSquare:
		e.stats.Contours++
		a := e.vertex(p, geom.Vec(-1, -1), attrs)
		b := e.vertex(p, geom.Vec(1, -1), attrs)
		c := e.vertex(p, geom.Vec(1, 1), attrs)
		d := e.vertex(p, geom.Vec(-1, 1), attrs)
		e.triangle(a, b, c)
		e.triangle(a, c, d)
	}
}

// fan emits triangles around p from the vertex first, whose normal is from,
// rotating by sweep radians to the vertex last.
func (e *StrokeExpander) fan(p geom.Point, attrs []float32, from geom.Vector, sweep float64, first, last uint32, minSegments int) {
	arc := geom.Arc{Radii: geom.Vec(e.hw, e.hw), SweepAngle: sweep}
	n := max(arc.FlattenSegments(e.style.Tolerance), minSegments)

	center := e.vertex(p, geom.Vector{}, attrs)
	prev := first
	for k := 1; k < n; k++ {
		v := e.vertex(p, from.Rotate(sweep*float64(k)/float64(n)), attrs)
		e.triangle(center, prev, v)
		prev = v
	}
	e.triangle(center, prev, last)
}

// vertex stores the vertex offset from center by normal in half-width
// units. After a sink failure it does nothing.
func (e *StrokeExpander) vertex(center geom.Point, normal geom.Vector, attrs []float32) uint32 {
	if e.err != nil {
		return 0
	}
	pos := center
	if e.style.ApplyWidth {
		pos = center.Add(normal.Mul(e.hw))
	}
	id, err := e.sink.AddVertex(mesh.Vertex{
		Position:         pos,
		OriginalPosition: center,
		Normal:           normal,
		Attrs:            attrs,
	})
	if err != nil {
		e.err = err
		return 0
	}
	e.stats.Vertices++
	return id
}

func (e *StrokeExpander) triangle(a, b, c uint32) {
	if e.err != nil {
		return
	}
	e.sink.AddTriangle(a, b, c)
	e.stats.Triangles++
}
