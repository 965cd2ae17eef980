package tess

import (
	"fmt"

	"github.com/gogpu/tess/internal/geom"
)

// Verb is a single drawing command of a Path.
type Verb uint8

const (
	// VerbBegin opens a subpath at its endpoint.
	VerbBegin Verb = iota
	// VerbLineTo draws a straight line to its endpoint.
	VerbLineTo
	// VerbQuadraticTo draws a quadratic Bézier with one control point.
	VerbQuadraticTo
	// VerbCubicTo draws a cubic Bézier with two control points.
	VerbCubicTo
	// VerbClose ends the subpath with a line back to its first point.
	VerbClose
	// VerbEnd ends the subpath without closing it.
	VerbEnd
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case VerbBegin:
		return "Begin"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadraticTo:
		return "QuadraticTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	case VerbEnd:
		return "End"
	default:
		return fmt.Sprintf("Verb(%d)", uint8(v))
	}
}

// points returns how many points the verb stores: control points followed
// by the endpoint.
func (v Verb) points() int {
	switch v {
	case VerbBegin, VerbLineTo:
		return 1
	case VerbQuadraticTo:
		return 2
	case VerbCubicTo:
		return 3
	default:
		return 0
	}
}

// Event is one verb of a Path together with the positions it connects.
//
// For VerbBegin From and To are the subpath start. For VerbClose and VerbEnd
// To is the first point of the subpath. Ctrl1 is set for quadratic and cubic
// verbs, Ctrl2 for cubic verbs only.
//
// FromAttrs and ToAttrs alias the Path's storage and must not be modified.
type Event struct {
	Verb      Verb
	From      Point
	Ctrl1     Point
	Ctrl2     Point
	To        Point
	FromAttrs []float32
	ToAttrs   []float32
}

// Path is an immutable sequence of subpaths. Each endpoint carries
// AttributeCount custom attributes.
//
// A Path is safe for concurrent readers.
type Path struct {
	verbs     []Verb
	points    []Point
	attrs     []float32
	attrCount int
}

// Subpath locates one subpath inside a Path.
type Subpath struct {
	path   *Path
	verbs  int
	nverbs int
	points int
	attrs  int
	closed bool
}

// AttributeCount returns the number of custom attributes per endpoint.
func (p *Path) AttributeCount() int {
	return p.attrCount
}

// IsEmpty reports whether the path has no subpaths.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the number of verbs, including Begin, Close and End.
func (p *Path) Verbs() int {
	return len(p.verbs)
}

// Events calls fn for every verb in order until fn returns false.
func (p *Path) Events(fn func(e Event) bool) {
	p.walk(0, len(p.verbs), 0, 0, fn)
}

// walk iterates verbs [v, end) whose storage starts at point index pi and
// attribute index ai.
func (p *Path) walk(v, end, pi, ai int, fn func(e Event) bool) {
	n := p.attrCount
	var first, current Point
	var firstAttrs, currentAttrs []float32

	for ; v < end; v++ {
		verb := p.verbs[v]
		e := Event{Verb: verb, From: current, FromAttrs: currentAttrs}

		switch verb {
		case VerbBegin:
			first = p.points[pi]
			firstAttrs = p.attrs[ai : ai+n : ai+n]
			e.From, e.FromAttrs = first, firstAttrs
			e.To, e.ToAttrs = first, firstAttrs
		case VerbLineTo:
			e.To = p.points[pi]
		case VerbQuadraticTo:
			e.Ctrl1 = p.points[pi]
			e.To = p.points[pi+1]
		case VerbCubicTo:
			e.Ctrl1 = p.points[pi]
			e.Ctrl2 = p.points[pi+1]
			e.To = p.points[pi+2]
		case VerbClose, VerbEnd:
			e.To, e.ToAttrs = first, firstAttrs
		}

		if np := verb.points(); np > 0 {
			if verb != VerbBegin {
				e.ToAttrs = p.attrs[ai : ai+n : ai+n]
			}
			pi += np
			ai += n
		}
		current, currentAttrs = e.To, e.ToAttrs
		if verb == VerbClose || verb == VerbEnd {
			current, currentAttrs = first, firstAttrs
		}

		if !fn(e) {
			return
		}
	}
}

// Subpaths returns the subpaths in order.
func (p *Path) Subpaths() []Subpath {
	var subs []Subpath
	pi, ai := 0, 0
	var cur Subpath
	for v, verb := range p.verbs {
		switch verb {
		case VerbBegin:
			cur = Subpath{path: p, verbs: v, points: pi, attrs: ai}
		case VerbClose, VerbEnd:
			cur.nverbs = v - cur.verbs + 1
			cur.closed = verb == VerbClose
			subs = append(subs, cur)
		}
		if np := verb.points(); np > 0 {
			pi += np
			ai += p.attrCount
		}
	}
	return subs
}

// Closed reports whether the subpath ends with VerbClose.
func (s Subpath) Closed() bool {
	return s.closed
}

// Start returns the first point of the subpath.
func (s Subpath) Start() Point {
	return s.path.points[s.points]
}

// Events calls fn for every verb of the subpath until fn returns false.
func (s Subpath) Events(fn func(e Event) bool) {
	s.path.walk(s.verbs, s.verbs+s.nverbs, s.points, s.attrs, fn)
}

// BoundingBox returns the tight bounds of the path, curve extrema included.
// An empty path returns an empty box.
func (p *Path) BoundingBox() Box {
	box := geom.EmptyBox()
	p.Events(func(e Event) bool {
		switch e.Verb {
		case VerbBegin, VerbLineTo:
			box = box.Extend(e.To)
		case VerbQuadraticTo:
			box = box.Union(geom.QuadBez{P0: e.From, P1: e.Ctrl1, P2: e.To}.BoundingBox())
		case VerbCubicTo:
			box = box.Union(geom.CubicBez{P0: e.From, P1: e.Ctrl1, P2: e.Ctrl2, P3: e.To}.BoundingBox())
		}
		return true
	})
	return box
}

// Transform returns a copy of the path with every point transformed.
// Attributes are copied unchanged.
func (p *Path) Transform(t Transform) *Path {
	out := &Path{
		verbs:     append([]Verb(nil), p.verbs...),
		points:    make([]Point, len(p.points)),
		attrs:     append([]float32(nil), p.attrs...),
		attrCount: p.attrCount,
	}
	for i, pt := range p.points {
		out.points[i] = t.Apply(pt)
	}
	return out
}
