package tess

import (
	"github.com/gogpu/tess/internal/geom"
	"github.com/gogpu/tess/internal/mesh"
)

// flattener turns a Path into polylines, reusing its buffers between calls.
type flattener struct {
	contours []mesh.Contour
	lerp     []float32
}

// flatten returns one contour per subpath. Curve points get their
// attributes interpolated by curve parameter. The result aliases the
// flattener's buffers and is valid until the next call.
func (f *flattener) flatten(p *Path, tolerance float64) []mesh.Contour {
	n := p.attrCount
	if cap(f.lerp) < n {
		f.lerp = make([]float32, n)
	}
	lerp := f.lerp[:n]

	contours := f.contours[:0]
	var c *mesh.Contour

	emitCurve := func(e Event) func(geom.Point, float64) {
		return func(pt geom.Point, t float64) {
			if t >= 1 {
				c.Append(e.To, e.ToAttrs)
				return
			}
			mesh.Lerp(lerp, e.FromAttrs, e.ToAttrs, t)
			c.Append(pt, lerp)
		}
	}

	p.Events(func(e Event) bool {
		switch e.Verb {
		case VerbBegin:
			if len(contours) < cap(contours) {
				contours = contours[:len(contours)+1]
			} else {
				contours = append(contours, mesh.Contour{})
			}
			c = &contours[len(contours)-1]
			c.Points = c.Points[:0]
			c.Attrs = c.Attrs[:0]
			c.AttrCount = n
			c.Closed = false
			c.Append(e.To, e.ToAttrs)
		case VerbLineTo:
			c.Append(e.To, e.ToAttrs)
		case VerbQuadraticTo:
			q := geom.QuadBez{P0: e.From, P1: e.Ctrl1, P2: e.To}
			geom.FlattenQuad(q, tolerance, emitCurve(e))
		case VerbCubicTo:
			cb := geom.CubicBez{P0: e.From, P1: e.Ctrl1, P2: e.Ctrl2, P3: e.To}
			geom.FlattenCubic(cb, tolerance, emitCurve(e))
		case VerbClose:
			c.Closed = true
		}
		return true
	})

	f.contours = contours
	return contours
}
