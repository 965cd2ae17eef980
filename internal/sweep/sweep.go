// Package sweep implements the fill tessellator: a sweep-line decomposition
// of flattened contours into monotone polygons, triangulated on the fly.
//
// The pipeline is:
//
//  1. Contours become directed edges between deduplicated vertices.
//  2. Edges are split at crossings, T-junctions and collinear overlaps, and
//     vertices closer than a tolerance scaled to the input are merged.
//  3. Edges are oriented in sweep order (y, then x); coincident edges are
//     merged by summing their winding contributions.
//  4. Vertices are visited in sweep order while an ordered list of active
//     edges tracks the winding number of every region between them. Regions
//     that are inside under the fill rule own a monotone polygon that
//     receives each vertex on its boundary.
package sweep

import (
	"cmp"
	"errors"
	"slices"

	"github.com/gogpu/tess/internal/geom"
	"github.com/gogpu/tess/internal/mesh"
)

var (
	// ErrNotConverged is returned when intersection resolution keeps finding
	// new splits after the maximum number of passes.
	ErrNotConverged = errors.New("sweep: intersection resolution did not converge")

	// ErrInconsistent is returned when the active edge list contradicts the
	// vertex being processed, which only happens on numerically degenerate input.
	ErrInconsistent = errors.New("sweep: inconsistent active edge order")

	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("sweep: non-finite coordinate")
)

// FillRule decides which regions are inside from their winding number.
type FillRule uint8

const (
	// NonZero fills regions with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills regions with an odd winding number.
	EvenOdd
)

func (r FillRule) inside(winding int) bool {
	if r == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// Options configures a fill tessellation.
type Options struct {
	FillRule FillRule
	// Horizontal sweeps along x instead of y. The covered area is the same.
	Horizontal bool
}

// Stats describes the last tessellation.
type Stats struct {
	InputPoints int
	Vertices    int
	Triangles   int
	SplitPasses int
	SweepEdges  int
}

// Tessellator holds scratch buffers reused between runs. It is not safe for
// concurrent use.
type Tessellator struct {
	attrCount int
	pos       []geom.Point
	attrs     []float32
	index     map[geom.Point]int32
	scratch   []float32
	eps       float64
	parent    []int32

	edges      []edge
	splits     map[int32][]splitPoint
	found      int
	order      []int32
	candidates []int32

	sweepEdges []sweepEdge
	active     []activeEdge

	stats Stats
}

// edge is a contour edge in contour direction.
type edge struct {
	from, to int32
}

// sweepEdge is an edge oriented in sweep order.
type sweepEdge struct {
	upper, lower int32
	winding      int
}

type activeEdge struct {
	sweepEdge
	// span is the polygon of the region right of this edge, nil when that
	// region is outside.
	span *span
}

// span is the monotone polygon of an inside region. After a merge vertex the
// region temporarily holds two polygons that both wait for the next vertex.
type span struct {
	poly    *monotone
	pending *monotone
}

// New creates a fill tessellator.
func New() *Tessellator {
	return &Tessellator{
		index:  make(map[geom.Point]int32),
		splits: make(map[int32][]splitPoint),
	}
}

// Stats returns statistics about the last call to Tessellate.
func (t *Tessellator) Stats() Stats { return t.stats }

// Tessellate fills the contours into sink. Every contour is treated as
// closed. attrCount is the number of custom attributes per point.
func (t *Tessellator) Tessellate(contours []mesh.Contour, attrCount int, opts Options, sink mesh.Sink) error {
	t.reset(attrCount)

	if err := t.buildEdges(contours, opts.Horizontal); err != nil {
		return err
	}
	if len(t.edges) == 0 {
		return nil
	}
	t.setTolerance()

	passes, err := t.resolveIntersections()
	t.stats.SplitPasses = passes
	if err != nil {
		slogger().Warn("sweep: intersections unresolved", "passes", passes, "edges", len(t.edges))
		return err
	}

	t.orientEdges()
	if err := t.sweep(opts, sink); err != nil {
		return err
	}

	slogger().Debug("sweep: fill tessellated",
		"vertices", t.stats.Vertices,
		"triangles", t.stats.Triangles,
		"edges", t.stats.SweepEdges,
		"passes", t.stats.SplitPasses)
	return nil
}

func (t *Tessellator) reset(attrCount int) {
	t.attrCount = attrCount
	t.pos = t.pos[:0]
	t.attrs = t.attrs[:0]
	clear(t.index)
	t.edges = t.edges[:0]
	t.sweepEdges = t.sweepEdges[:0]
	t.active = t.active[:0]
	if cap(t.scratch) < attrCount {
		t.scratch = make([]float32, attrCount)
	}
	t.scratch = t.scratch[:attrCount]
	t.stats = Stats{}
}

func (t *Tessellator) attr(v int32) []float32 {
	n := t.attrCount
	return t.attrs[int(v)*n : (int(v)+1)*n]
}

// addVertex returns the vertex at p, creating it with attrs when new. The
// first attributes seen for a position win.
func (t *Tessellator) addVertex(p geom.Point, attrs []float32) int32 {
	if id, ok := t.index[p]; ok {
		return id
	}
	id := int32(len(t.pos))
	t.pos = append(t.pos, p)
	t.attrs = append(t.attrs, attrs[:t.attrCount]...)
	t.index[p] = id
	return id
}

func (t *Tessellator) buildEdges(contours []mesh.Contour, swap bool) error {
	for ci := range contours {
		c := &contours[ci]
		t.stats.InputPoints += len(c.Points)
		first, prev := int32(-1), int32(-1)
		for i, p := range c.Points {
			if !p.IsFinite() {
				return ErrNonFinite
			}
			if swap {
				p = p.Swap()
			}
			v := t.addVertex(p, c.Attr(i))
			if prev < 0 {
				first = v
			} else if v != prev {
				t.edges = append(t.edges, edge{from: prev, to: v})
			}
			prev = v
		}
		if prev >= 0 && prev != first {
			t.edges = append(t.edges, edge{from: prev, to: first})
		}
	}
	return nil
}

// before reports whether a comes before b in sweep order.
func before(a, b geom.Point) bool {
	return a.Y < b.Y || (a.Y == b.Y && a.X < b.X)
}

// orientEdges turns contour edges into sweep edges, merging coincident ones.
func (t *Tessellator) orientEdges() {
	type key struct{ upper, lower int32 }
	slot := make(map[key]int, len(t.edges))

	for _, e := range t.edges {
		if e.from == e.to {
			continue
		}
		k := key{upper: e.from, lower: e.to}
		w := 1
		if !before(t.pos[e.from], t.pos[e.to]) {
			k = key{upper: e.to, lower: e.from}
			w = -1
		}
		if i, ok := slot[k]; ok {
			t.sweepEdges[i].winding += w
			continue
		}
		slot[k] = len(t.sweepEdges)
		t.sweepEdges = append(t.sweepEdges, sweepEdge{upper: k.upper, lower: k.lower, winding: w})
	}

	t.sweepEdges = slices.DeleteFunc(t.sweepEdges, func(e sweepEdge) bool { return e.winding == 0 })
	t.stats.SweepEdges = len(t.sweepEdges)
}

// leftOf orders two edges leaving the same vertex from left to right.
func (t *Tessellator) leftOf(a, b sweepEdge) bool {
	da := t.pos[a.lower].Sub(t.pos[a.upper])
	db := t.pos[b.lower].Sub(t.pos[b.upper])
	return db.Cross(da) > 0
}

// rightOf reports whether p lies strictly right of the active edge.
func (t *Tessellator) rightOf(p geom.Point, e *activeEdge) bool {
	u := t.pos[e.upper]
	return t.pos[e.lower].Sub(u).Cross(p.Sub(u)) < 0
}

func (t *Tessellator) sweep(opts Options, sink mesh.Sink) error {
	// Vertices in sweep order; edges grouped by upper vertex, left to right.
	order := t.order[:0]
	for v := range t.pos {
		order = append(order, int32(v))
	}
	slices.SortFunc(order, func(a, b int32) int {
		pa, pb := t.pos[a], t.pos[b]
		if c := cmp.Compare(pa.Y, pb.Y); c != 0 {
			return c
		}
		return cmp.Compare(pa.X, pb.X)
	})
	t.order = order

	rank := make([]int32, len(t.pos))
	for r, v := range order {
		rank[v] = int32(r)
	}
	slices.SortFunc(t.sweepEdges, func(a, b sweepEdge) int {
		if c := cmp.Compare(rank[a.upper], rank[b.upper]); c != 0 {
			return c
		}
		switch {
		case t.leftOf(a, b):
			return -1
		case t.leftOf(b, a):
			return 1
		}
		return 0
	})

	emit := func(a, b, c uint32) {
		sink.AddTriangle(a, b, c)
		t.stats.Triangles++
	}
	newPoly := func(p geom.Point, id uint32) *monotone {
		m := &monotone{emit: emit}
		m.start(p, id)
		return m
	}

	rule := opts.FillRule
	next := 0
	for _, v := range order {
		p := t.pos[v]

		// Edges starting here.
		startLo := next
		for next < len(t.sweepEdges) && t.sweepEdges[next].upper == v {
			next++
		}
		starts := t.sweepEdges[startLo:next]

		// Edges ending here must be adjacent in the active list.
		i, j := -1, -1
		for k := range t.active {
			if t.active[k].lower != v {
				continue
			}
			switch {
			case i < 0:
				i, j = k, k+1
			case k == j:
				j = k + 1
			default:
				return ErrInconsistent
			}
		}
		if i < 0 {
			i = 0
			for i < len(t.active) && t.rightOf(p, &t.active[i]) {
				i++
			}
			j = i
		}
		if i == j && len(starts) == 0 {
			continue
		}

		wl := 0
		for k := 0; k < i; k++ {
			wl += t.active[k].winding
		}

		// Emit the vertex only if it borders an inside region.
		touches := rule.inside(wl)
		w := wl
		for k := i; k < j; k++ {
			w += t.active[k].winding
			touches = touches || rule.inside(w)
		}
		w = wl
		for _, e := range starts {
			w += e.winding
			touches = touches || rule.inside(w)
		}
		var id uint32
		if touches {
			out := p
			if opts.Horizontal {
				out = out.Swap()
			}
			var err error
			id, err = sink.AddVertex(mesh.Vertex{Position: out, OriginalPosition: out, Attrs: t.attr(v)})
			if err != nil {
				return err
			}
			t.stats.Vertices++
		}

		var left *span
		if i > 0 {
			left = t.active[i-1].span
		}

		// Polygons continuing left and right of the vertex.
		var lp, rp *monotone
		if i == j {
			// The vertex lies inside one region and splits it.
			if left != nil {
				if left.pending != nil {
					lp, rp = left.poly, left.pending
					lp.add(p, id, sideRight)
					rp.add(p, id, sideLeft)
				} else {
					poly := left.poly
					h := poly.top()
					q := newPoly(h.pos, h.id)
					if h.side == sideLeft {
						q.add(p, id, sideRight)
						poly.add(p, id, sideLeft)
						lp, rp = q, poly
					} else {
						poly.add(p, id, sideRight)
						q.add(p, id, sideLeft)
						lp, rp = poly, q
					}
				}
			}
		} else {
			// Regions between ending edges close here.
			for k := i; k < j-1; k++ {
				if s := t.active[k].span; s != nil {
					s.poly.end(id)
					if s.pending != nil {
						s.pending.end(id)
					}
				}
			}
			if left != nil {
				left.poly.add(p, id, sideRight)
				if left.pending != nil {
					left.pending.end(id)
				}
				lp = left.poly
			}
			if right := t.active[j-1].span; right != nil {
				if right.pending != nil {
					right.poly.end(id)
					right.pending.add(p, id, sideLeft)
					rp = right.pending
				} else {
					right.poly.add(p, id, sideLeft)
					rp = right.poly
				}
			}
		}

		// Replace the ending edges with the starting ones.
		added := make([]activeEdge, len(starts))
		for k, e := range starts {
			added[k] = activeEdge{sweepEdge: e}
		}
		t.active = slices.Replace(t.active, i, j, added...)
		m := len(starts)

		if m == 0 {
			// Merge vertex: both sides wait for the next vertex below.
			if i > 0 {
				switch {
				case lp != nil && rp != nil:
					t.active[i-1].span = &span{poly: lp, pending: rp}
				case lp != nil:
					t.active[i-1].span = &span{poly: lp}
				case rp != nil:
					t.active[i-1].span = &span{poly: rp}
				default:
					t.active[i-1].span = nil
				}
			}
			continue
		}

		if i > 0 {
			t.active[i-1].span = spanOf(lp)
		}
		w = wl
		for k := 0; k < m-1; k++ {
			w += starts[k].winding
			if rule.inside(w) {
				t.active[i+k].span = &span{poly: newPoly(p, id)}
			}
		}
		t.active[i+m-1].span = spanOf(rp)
	}

	if len(t.active) != 0 {
		return ErrInconsistent
	}
	return nil
}

func spanOf(m *monotone) *span {
	if m == nil {
		return nil
	}
	return &span{poly: m}
}
