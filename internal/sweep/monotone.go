package sweep

import "github.com/gogpu/tess/internal/geom"

// side identifies the chain of a monotone polygon a vertex belongs to.
type side uint8

const (
	sideTop side = iota
	sideLeft
	sideRight
)

type monoVertex struct {
	pos  geom.Point
	id   uint32
	side side
}

// monotone triangulates a polygon that is monotone with respect to the sweep
// order. Vertices arrive in sweep order, each tagged with the chain it lies
// on; triangles are emitted as soon as they are known to be inside.
type monotone struct {
	stack []monoVertex
	emit  func(a, b, c uint32)
}

func (m *monotone) start(pos geom.Point, id uint32) {
	m.stack = append(m.stack[:0], monoVertex{pos: pos, id: id, side: sideTop})
}

// top returns the most recently added vertex.
func (m *monotone) top() monoVertex {
	return m.stack[len(m.stack)-1]
}

func (m *monotone) add(pos geom.Point, id uint32, s side) {
	v := monoVertex{pos: pos, id: id, side: s}
	last := m.top()

	if len(m.stack) == 1 {
		m.stack = append(m.stack, v)
		return
	}

	if last.side != s {
		// v sees every stacked vertex of the opposite chain.
		for k := 1; k < len(m.stack); k++ {
			m.emit(m.stack[k-1].id, m.stack[k].id, id)
		}
		m.stack = append(m.stack[:0], last, v)
		return
	}

	// Same chain: pop while the corner at the stack top is convex.
	for len(m.stack) >= 2 {
		a := m.stack[len(m.stack)-2]
		b := m.stack[len(m.stack)-1]
		turn := b.pos.Sub(a.pos).Cross(v.pos.Sub(b.pos))
		if (s == sideLeft && turn >= 0) || (s == sideRight && turn <= 0) {
			break
		}
		m.emit(a.id, b.id, id)
		m.stack = m.stack[:len(m.stack)-1]
	}
	m.stack = append(m.stack, v)
}

// end closes the polygon at its last vertex.
func (m *monotone) end(id uint32) {
	for k := 1; k < len(m.stack); k++ {
		m.emit(m.stack[k-1].id, m.stack[k].id, id)
	}
	m.stack = m.stack[:0]
}
