package sweep

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"github.com/gogpu/tess/internal/geom"
	"github.com/gogpu/tess/internal/mesh"
)

// snapEpsilon is the distance, relative to the largest coordinate magnitude
// (at least 1), under which a vertex is considered to lie on an edge or on
// another vertex.
const snapEpsilon = 1e-7

// maxSplitPasses bounds the intersection resolution loop.
const maxSplitPasses = 16

type splitPoint struct {
	t float64
	v int32
}

// resolveIntersections splits edges at every crossing, T-junction and
// collinear overlap until no edge interior touches another edge. Each pass
// computes all splits against the edges of the previous pass, then merges
// the vertices the splits brought within t.eps of each other, so crossings
// computed from different edges of one line end up as a single vertex.
func (t *Tessellator) resolveIntersections() (passes int, err error) {
	t.mergeVertices()
	for passes = 1; passes <= maxSplitPasses; passes++ {
		if t.findSplits() == 0 {
			return passes, nil
		}
		t.applySplits()
		t.mergeVertices()
	}
	return passes, ErrNotConverged
}

// setTolerance scales snapEpsilon to the magnitude of the input.
func (t *Tessellator) setTolerance() {
	m := 1.0
	for _, p := range t.pos {
		m = max(m, math.Abs(p.X), math.Abs(p.Y))
	}
	t.eps = snapEpsilon * m
}

// findSplits records the split points of the current edge set and returns
// how many were found. Candidate pairs come from a sweep-and-prune over the
// edges' vertical extents.
func (t *Tessellator) findSplits() int {
	clear(t.splits)
	t.found = 0

	order := t.order[:0]
	for i := range t.edges {
		order = append(order, int32(i))
	}
	sort.Slice(order, func(a, b int) bool {
		return t.minY(order[a]) < t.minY(order[b])
	})
	t.order = order

	active := t.candidates[:0]
	for _, ei := range order {
		minY := t.minY(ei)
		minX, maxX := t.spanX(ei)

		k := 0
		for _, ai := range active {
			if t.maxY(ai) >= minY-t.eps {
				active[k] = ai
				k++
			}
		}
		active = active[:k]

		for _, ai := range active {
			aMin, aMax := t.spanX(ai)
			if aMax < minX-t.eps || aMin > maxX+t.eps {
				continue
			}
			t.intersectPair(ai, ei)
		}
		active = append(active, ei)
	}
	t.candidates = active
	return t.found
}

func (t *Tessellator) minY(e int32) float64 {
	return math.Min(t.pos[t.edges[e].from].Y, t.pos[t.edges[e].to].Y)
}

func (t *Tessellator) maxY(e int32) float64 {
	return math.Max(t.pos[t.edges[e].from].Y, t.pos[t.edges[e].to].Y)
}

func (t *Tessellator) spanX(e int32) (float64, float64) {
	a, b := t.pos[t.edges[e].from].X, t.pos[t.edges[e].to].X
	return math.Min(a, b), math.Max(a, b)
}

func (t *Tessellator) intersectPair(i, j int32) {
	e1, e2 := t.edges[i], t.edges[j]
	if (e1.from == e2.from && e1.to == e2.to) || (e1.from == e2.to && e1.to == e2.from) {
		return
	}
	p0, p1 := t.pos[e1.from], t.pos[e1.to]
	q0, q1 := t.pos[e2.from], t.pos[e2.to]

	// Endpoints resting on the other edge: T-junctions and collinear overlaps.
	touched := false
	for _, v := range [2]int32{e2.from, e2.to} {
		if v == e1.from || v == e1.to {
			continue
		}
		if at, ok := onSegment(t.pos[v], p0, p1, t.eps); ok {
			t.addSplit(i, at, v)
			touched = true
		}
	}
	for _, v := range [2]int32{e1.from, e1.to} {
		if v == e2.from || v == e2.to {
			continue
		}
		if at, ok := onSegment(t.pos[v], q0, q1, t.eps); ok {
			t.addSplit(j, at, v)
			touched = true
		}
	}
	if touched {
		return
	}
	if e1.from == e2.from || e1.from == e2.to || e1.to == e2.from || e1.to == e2.to {
		return
	}

	r := p1.Sub(p0)
	s := q1.Sub(q0)
	den := r.Cross(s)
	if den == 0 {
		return
	}
	qp := q0.Sub(p0)
	ta := qp.Cross(s) / den
	tb := qp.Cross(r) / den
	if ta <= 0 || ta >= 1 || tb <= 0 || tb >= 1 {
		return
	}

	x := p0.Add(r.Mul(ta))
	v, ok := t.splitNear(x, i, j)
	if !ok {
		mesh.Lerp(t.scratch, t.attr(e1.from), t.attr(e1.to), ta)
		v = t.addVertex(x, t.scratch)
	}
	t.addSplit(i, ta, v)
	t.addSplit(j, tb, v)
}

// splitNear returns a vertex already splitting edge i or j within t.eps of
// x. Collinear edges crossed by the same edge meet it there.
func (t *Tessellator) splitNear(x geom.Point, i, j int32) (int32, bool) {
	for _, e := range [2]int32{i, j} {
		for _, sp := range t.splits[e] {
			q := t.pos[sp.v]
			if math.Abs(q.X-x.X) <= t.eps && math.Abs(q.Y-x.Y) <= t.eps {
				return sp.v, true
			}
		}
	}
	return 0, false
}

func (t *Tessellator) addSplit(e int32, at float64, v int32) {
	edge := t.edges[e]
	if v == edge.from || v == edge.to {
		return
	}
	for _, sp := range t.splits[e] {
		if sp.v == v {
			return
		}
	}
	t.splits[e] = append(t.splits[e], splitPoint{t: at, v: v})
	t.found++
}

// applySplits replaces every split edge by the chain through its split
// vertices. The first piece reuses the edge slot.
func (t *Tessellator) applySplits() {
	keys := t.order[:0]
	for ei := range t.splits {
		keys = append(keys, ei)
	}
	slices.Sort(keys)
	t.order = keys

	for _, ei := range keys {
		points := t.splits[ei]
		sort.Slice(points, func(a, b int) bool { return points[a].t < points[b].t })

		e := t.edges[ei]
		prev := e.from
		pieces := 0
		for _, sp := range points {
			if sp.v == prev || sp.v == e.to {
				continue
			}
			if pieces == 0 {
				t.edges[ei] = edge{from: prev, to: sp.v}
			} else {
				t.edges = append(t.edges, edge{from: prev, to: sp.v})
			}
			pieces++
			prev = sp.v
		}
		if pieces > 0 {
			t.edges = append(t.edges, edge{from: prev, to: e.to})
		}
	}
}

// mergeVertices unifies vertices within t.eps of each other in both
// coordinates and drops the edges that collapse. Each group keeps its
// oldest vertex, so input points win over crossings. Returns the number of
// vertices merged away.
func (t *Tessellator) mergeVertices() int {
	n := len(t.pos)
	parent := t.parent[:0]
	for v := range n {
		parent = append(parent, int32(v))
	}
	t.parent = parent
	find := func(v int32) int32 {
		for parent[v] != v {
			parent[v] = parent[parent[v]]
			v = parent[v]
		}
		return v
	}

	byX := t.order[:0]
	for v := range n {
		byX = append(byX, int32(v))
	}
	slices.SortFunc(byX, func(a, b int32) int {
		return cmp.Compare(t.pos[a].X, t.pos[b].X)
	})
	t.order = byX

	merged := 0
	for k, va := range byX {
		pa := t.pos[va]
		for _, vb := range byX[k+1:] {
			pb := t.pos[vb]
			if pb.X-pa.X > t.eps {
				break
			}
			if math.Abs(pb.Y-pa.Y) > t.eps {
				continue
			}
			ra, rb := find(va), find(vb)
			if ra == rb {
				continue
			}
			if rb < ra {
				ra, rb = rb, ra
			}
			parent[rb] = ra
			merged++
		}
	}
	if merged == 0 {
		return 0
	}

	for v := range n {
		if r := find(int32(v)); r != int32(v) {
			t.index[t.pos[v]] = r
		}
	}
	k := 0
	for _, e := range t.edges {
		from, to := find(e.from), find(e.to)
		if from != to {
			t.edges[k] = edge{from: from, to: to}
			k++
		}
	}
	t.edges = t.edges[:k]
	return merged
}

// onSegment reports whether p lies on the interior of segment a-b within
// eps, and returns its parameter along the segment.
func onSegment(p, a, b geom.Point, eps float64) (float64, bool) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return 0, false
	}
	ap := p.Sub(a)
	at := ap.Dot(d) / (length * length)
	if at*length <= eps || (1-at)*length <= eps {
		return 0, false
	}
	if math.Abs(d.Cross(ap))/length > eps {
		return 0, false
	}
	return at, true
}
