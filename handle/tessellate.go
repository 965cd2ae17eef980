package handle

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess"
)

// FillOptionsRecord is the plain form of tess.FillOptions.
//
// A non-positive Tolerance selects tess.DefaultTolerance. FillRule 0 is
// even-odd and any other value non-zero. Orientation 0 sweeps vertically
// and any other value horizontally.
type FillOptionsRecord struct {
	Tolerance   float32
	FillRule    int32
	Orientation int32

	// Color is RGBA in [0, 1], packed with PackColor.
	Color      [4]float32
	FillIndex  int32
	ShapeIndex int32
}

// StrokeOptionsRecord is the plain form of tess.StrokeOptions.
//
// Caps: 0 butt, 1 round, 2 square. Joins: 0 miter, 1 miter-clip, 2 bevel,
// 3 round. Other values select butt and miter. A non-positive MiterLimit
// or Tolerance selects the default. ApplyWidth is a boolean: zero keeps
// vertices on the path.
type StrokeOptionsRecord struct {
	StartCap   int32
	EndCap     int32
	Join       int32
	Width      float32
	MiterLimit float32
	Tolerance  float32
	ApplyWidth int32

	Color      [4]float32
	FillIndex  int32
	ShapeIndex int32
}

// OutputVertex is a tessellated vertex in GPU-friendly form.
type OutputVertex struct {
	Position         [2]float32
	OriginalPosition [2]float32
	// Normal is the unnormalized stroke offset direction, as in
	// tess.Vertex.Normal.
	Normal           [2]float32
	Color            uint32
	PrimitiveType    int32
	FillIndex        int32
	ShapeIndex       int32
}

func (r FillOptionsRecord) options() tess.FillOptions {
	o := tess.DefaultFillOptions()
	if r.Tolerance > 0 {
		o.Tolerance = float64(r.Tolerance)
	}
	if r.FillRule != 0 {
		o.FillRule = tess.FillRuleNonZero
	}
	if r.Orientation != 0 {
		o.Orientation = tess.OrientationHorizontal
	}
	o.Constants = tess.VertexConstants{
		Color:      PackColor(r.Color),
		FillIndex:  r.FillIndex,
		ShapeIndex: r.ShapeIndex,
	}
	return o
}

func capFromRecord(v int32) tess.LineCap {
	switch v {
	case 1:
		return tess.LineCapRound
	case 2:
		return tess.LineCapSquare
	default:
		return tess.LineCapButt
	}
}

func joinFromRecord(v int32) tess.LineJoin {
	switch v {
	case 1:
		return tess.LineJoinMiterClip
	case 2:
		return tess.LineJoinBevel
	case 3:
		return tess.LineJoinRound
	default:
		return tess.LineJoinMiter
	}
}

func (r StrokeOptionsRecord) options() tess.StrokeOptions {
	o := tess.DefaultStrokeOptions()
	o.StartCap = capFromRecord(r.StartCap)
	o.EndCap = capFromRecord(r.EndCap)
	o.LineJoin = joinFromRecord(r.Join)
	o.LineWidth = float64(r.Width)
	if r.MiterLimit > 0 {
		o.MiterLimit = float64(r.MiterLimit)
	}
	if r.Tolerance > 0 {
		o.Tolerance = float64(r.Tolerance)
	}
	o.ApplyLineWidth = r.ApplyWidth != 0
	o.Constants = tess.VertexConstants{
		Color:      PackColor(r.Color),
		FillIndex:  r.FillIndex,
		ShapeIndex: r.ShapeIndex,
	}
	return o
}

// geometry is the stored, read-only form of a tessellation.
type geometry struct {
	vertices  []OutputVertex
	attrs     []float32
	attrCount int
	indices16 []uint16
	indices32 []uint32
	format    gputypes.IndexFormat
}

func newGeometry[I tess.Index](g *tess.Geometry[I]) *geometry {
	out := &geometry{
		vertices:  make([]OutputVertex, len(g.Vertices)),
		attrs:     make([]float32, 0, len(g.Vertices)*g.AttributeCount()),
		attrCount: g.AttributeCount(),
		format:    g.IndexFormat(),
	}
	for i, v := range g.Vertices {
		out.vertices[i] = OutputVertex{
			Position:         [2]float32{float32(v.Position.X), float32(v.Position.Y)},
			OriginalPosition: [2]float32{float32(v.OriginalPosition.X), float32(v.OriginalPosition.Y)},
			Normal:           [2]float32{float32(v.Normal.X), float32(v.Normal.Y)},
			Color:            v.Constants.Color,
			PrimitiveType:    int32(v.PrimitiveType),
			FillIndex:        v.Constants.FillIndex,
			ShapeIndex:       v.Constants.ShapeIndex,
		}
		out.attrs = append(out.attrs, g.Attributes(i)...)
	}
	if out.format == gputypes.IndexFormatUint16 {
		out.indices16 = make([]uint16, len(g.Indices))
		for i, ix := range g.Indices {
			out.indices16[i] = uint16(ix)
		}
	} else {
		out.indices32 = make([]uint32, len(g.Indices))
		for i, ix := range g.Indices {
			out.indices32[i] = uint32(ix)
		}
	}
	return out
}

// TessellateFill16 fills a path into a geometry with 16-bit indices.
//
// msg may be nil. On success it is set to zero. When the path needs more
// than 65535 vertices the result and *msg are both zero: retry with
// TessellateFill32. On other failures the result is zero and *msg receives
// a message to release with FreeMessage.
func (s *Store) TessellateFill16(p PathHandle, opts FillOptionsRecord, msg *MessageHandle) GeometryHandle {
	return tessellate[uint16](s, p, msg, func(path *tess.Path, out tess.Output) error {
		t := s.fills.Get().(*tess.FillTessellator)
		defer s.fills.Put(t)
		return t.Tessellate(path, opts.options(), out)
	})
}

// TessellateFill32 fills a path into a geometry with 32-bit indices.
func (s *Store) TessellateFill32(p PathHandle, opts FillOptionsRecord, msg *MessageHandle) GeometryHandle {
	return tessellate[uint32](s, p, msg, func(path *tess.Path, out tess.Output) error {
		t := s.fills.Get().(*tess.FillTessellator)
		defer s.fills.Put(t)
		return t.Tessellate(path, opts.options(), out)
	})
}

// TessellateStroke16 strokes a path into a geometry with 16-bit indices.
// Errors are reported as for TessellateFill16.
func (s *Store) TessellateStroke16(p PathHandle, opts StrokeOptionsRecord, msg *MessageHandle) GeometryHandle {
	return tessellate[uint16](s, p, msg, func(path *tess.Path, out tess.Output) error {
		t := s.strokes.Get().(*tess.StrokeTessellator)
		defer s.strokes.Put(t)
		return t.Tessellate(path, opts.options(), out)
	})
}

// TessellateStroke32 strokes a path into a geometry with 32-bit indices.
func (s *Store) TessellateStroke32(p PathHandle, opts StrokeOptionsRecord, msg *MessageHandle) GeometryHandle {
	return tessellate[uint32](s, p, msg, func(path *tess.Path, out tess.Output) error {
		t := s.strokes.Get().(*tess.StrokeTessellator)
		defer s.strokes.Put(t)
		return t.Tessellate(path, opts.options(), out)
	})
}

// tessellate runs without the store lock and takes it again only to
// register the result.
func tessellate[I tess.Index](s *Store, p PathHandle, msg *MessageHandle, run func(*tess.Path, tess.Output) error) GeometryHandle {
	if msg != nil {
		*msg = 0
	}
	path := s.path(p)
	s.tessellations.Add(1)

	g := tess.NewGeometry[I]()
	if err := run(path, g); err != nil {
		if errors.Is(err, tess.ErrTooManyVertices) {
			s.overflows.Add(1)
			return 0
		}
		s.failures.Add(1)
		if msg != nil {
			text := err.Error()
			s.mu.Lock()
			*msg = MessageHandle(s.messages.insert(text))
			s.mu.Unlock()
		}
		return 0
	}
	out := newGeometry(g)

	s.mu.Lock()
	defer s.mu.Unlock()
	return GeometryHandle(s.geometries.insert(out))
}

func (s *Store) geometry(h GeometryHandle) *geometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.geometries.get(uint64(h))
}

// VertexCount returns the number of vertices of a geometry.
func (s *Store) VertexCount(h GeometryHandle) int {
	return len(s.geometry(h).vertices)
}

// IndexCount returns the number of indices of a geometry, three per
// triangle.
func (s *Store) IndexCount(h GeometryHandle) int {
	g := s.geometry(h)
	return len(g.indices16) + len(g.indices32)
}

// IndexFormat returns the index width of a geometry.
func (s *Store) IndexFormat(h GeometryHandle) gputypes.IndexFormat {
	return s.geometry(h).format
}

// Vertices returns the vertices of a geometry. The slice is owned by the
// store, valid until FreeGeometry and must not be modified.
func (s *Store) Vertices(h GeometryHandle) []OutputVertex {
	return s.geometry(h).vertices
}

// VertexAttributes returns the custom attributes of all vertices, stride
// is the path's attribute count. The slice is owned by the store.
func (s *Store) VertexAttributes(h GeometryHandle) (attrs []float32, stride int) {
	g := s.geometry(h)
	return g.attrs, g.attrCount
}

// Indices16 returns the indices of a 16-bit geometry. It panics for a
// 32-bit geometry.
func (s *Store) Indices16(h GeometryHandle) []uint16 {
	g := s.geometry(h)
	if g.format != gputypes.IndexFormatUint16 {
		panic(fmt.Sprintf("handle: geometry %#x has 32-bit indices", uint64(h)))
	}
	return g.indices16
}

// Indices32 returns the indices of a 32-bit geometry. It panics for a
// 16-bit geometry.
func (s *Store) Indices32(h GeometryHandle) []uint32 {
	g := s.geometry(h)
	if g.format != gputypes.IndexFormatUint32 {
		panic(fmt.Sprintf("handle: geometry %#x has 16-bit indices", uint64(h)))
	}
	return g.indices32
}

// FreeGeometry releases a geometry.
func (s *Store) FreeGeometry(h GeometryHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometries.remove(uint64(h))
}

// Message returns the text of an error message.
func (s *Store) Message(h MessageHandle) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.messages.get(uint64(h))
}

// FreeMessage releases an error message.
func (s *Store) FreeMessage(h MessageHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages.remove(uint64(h))
}
