package tess

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/tess/internal/mesh"
)

// Index is the element type of geometry index buffers.
type Index interface {
	~uint16 | ~uint32
}

// PrimitiveType tags vertices with the kind of primitive that produced them.
type PrimitiveType int32

const (
	// PrimitiveText is reserved for glyph geometry produced outside tess.
	PrimitiveText PrimitiveType = iota
	// PrimitiveFill marks fill tessellator output.
	PrimitiveFill
	// PrimitiveStroke marks stroke tessellator output.
	PrimitiveStroke
)

// String returns the primitive type name.
func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveText:
		return "Text"
	case PrimitiveFill:
		return "Fill"
	case PrimitiveStroke:
		return "Stroke"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", int32(p))
	}
}

// Vertex is one output vertex. Its custom attributes live in the Geometry,
// see [Geometry.Attributes].
type Vertex struct {
	Position Point

	// OriginalPosition is the point on the path the vertex was derived
	// from. It equals Position for fills.
	OriginalPosition Point

	// Normal satisfies Position = OriginalPosition + Normal*LineWidth/2 for
	// strokes tessellated with ApplyLineWidth. It is zero for fills.
	// Normal is not unit length. It grows at miter tips and square cap
	// corners, so shaders that extrude by it must not normalize it.
	Normal Vector

	PrimitiveType PrimitiveType
	Constants     VertexConstants
}

// Geometry is a vertex and index buffer pair. Indices come in triples, one
// per triangle. The index type bounds the number of vertices: 65535 for
// uint16 and 2^32-1 for uint32.
//
// A Geometry may receive several tessellations as long as their paths have
// the same attribute count. A finished Geometry is safe for concurrent
// readers.
type Geometry[I Index] struct {
	Vertices []Vertex
	Indices  []I

	attrs     []float32
	attrCount int
	mark      geometryMark
}

type geometryMark struct {
	vertices, indices, attrs int
}

// NewGeometry returns an empty Geometry.
func NewGeometry[I Index]() *Geometry[I] {
	return &Geometry[I]{}
}

// MaxVertices returns how many vertices a Geometry[I] can hold.
func MaxVertices[I Index]() uint64 {
	var zero I
	return uint64(^zero)
}

// AttributeCount returns the number of custom attributes per vertex.
func (g *Geometry[I]) AttributeCount() int {
	return g.attrCount
}

// Attributes returns the custom attributes of vertex i. The slice aliases
// the Geometry and must not be modified.
func (g *Geometry[I]) Attributes(i int) []float32 {
	n := g.attrCount
	return g.attrs[i*n : (i+1)*n : (i+1)*n]
}

// TriangleCount returns len(Indices)/3.
func (g *Geometry[I]) TriangleCount() int {
	return len(g.Indices) / 3
}

// Reset empties the Geometry, keeping its storage.
func (g *Geometry[I]) Reset() {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]
	g.attrs = g.attrs[:0]
	g.attrCount = 0
}

// IndexFormat returns the GPU index format matching I.
func (g *Geometry[I]) IndexFormat() gputypes.IndexFormat {
	if MaxVertices[I]() == math.MaxUint16 {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

// Packed vertex layout, in bytes.
const (
	offsetPosition         = 0
	offsetOriginalPosition = 8
	offsetNormal           = 16
	offsetColor            = 24
	offsetPrimitiveType    = 28
	offsetFillIndex        = 32
	offsetShapeIndex       = 36
	offsetAttributes       = 40
)

// VertexStride returns the size in bytes of one packed vertex.
func (g *Geometry[I]) VertexStride() int {
	return offsetAttributes + 4*g.attrCount
}

// VertexLayout describes the buffer produced by PackVertices. Shader
// locations 0 to 6 hold position, original position, normal, color,
// primitive type, fill index and shape index; custom attribute k is a float
// at location 7+k.
func (g *Geometry[I]) VertexLayout() gputypes.VertexBufferLayout {
	attrs := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: offsetPosition, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x2, Offset: offsetOriginalPosition, ShaderLocation: 1},
		{Format: gputypes.VertexFormatFloat32x2, Offset: offsetNormal, ShaderLocation: 2},
		{Format: gputypes.VertexFormatUint32, Offset: offsetColor, ShaderLocation: 3},
		{Format: gputypes.VertexFormatSint32, Offset: offsetPrimitiveType, ShaderLocation: 4},
		{Format: gputypes.VertexFormatSint32, Offset: offsetFillIndex, ShaderLocation: 5},
		{Format: gputypes.VertexFormatSint32, Offset: offsetShapeIndex, ShaderLocation: 6},
	}
	for k := 0; k < g.attrCount; k++ {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         gputypes.VertexFormatFloat32,
			Offset:         uint64(offsetAttributes + 4*k),
			ShaderLocation: uint32(7 + k),
		})
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(g.VertexStride()),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// PackVertices encodes the vertices little-endian following VertexLayout.
func (g *Geometry[I]) PackVertices() []byte {
	buf := make([]byte, 0, g.VertexStride()*len(g.Vertices))
	le := binary.LittleEndian
	f32 := func(b []byte, v float64) []byte {
		return le.AppendUint32(b, math.Float32bits(float32(v)))
	}
	for i, v := range g.Vertices {
		buf = f32(buf, v.Position.X)
		buf = f32(buf, v.Position.Y)
		buf = f32(buf, v.OriginalPosition.X)
		buf = f32(buf, v.OriginalPosition.Y)
		buf = f32(buf, v.Normal.X)
		buf = f32(buf, v.Normal.Y)
		buf = le.AppendUint32(buf, v.Constants.Color)
		buf = le.AppendUint32(buf, uint32(v.PrimitiveType))
		buf = le.AppendUint32(buf, uint32(v.Constants.FillIndex))
		buf = le.AppendUint32(buf, uint32(v.Constants.ShapeIndex))
		for _, a := range g.Attributes(i) {
			buf = le.AppendUint32(buf, math.Float32bits(a))
		}
	}
	return buf
}

// PackIndices encodes the indices little-endian in IndexFormat.
func (g *Geometry[I]) PackIndices() []byte {
	if MaxVertices[I]() == math.MaxUint16 {
		buf := make([]byte, 0, 2*len(g.Indices))
		for _, i := range g.Indices {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
		}
		return buf
	}
	buf := make([]byte, 0, 4*len(g.Indices))
	for _, i := range g.Indices {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(i))
	}
	return buf
}

// Output receives tessellator output. It is implemented by *Geometry[I].
type Output interface {
	begin(attrCount int, prim PrimitiveType, c VertexConstants) mesh.Sink
	rollback()
}

func (g *Geometry[I]) begin(attrCount int, prim PrimitiveType, c VertexConstants) mesh.Sink {
	if len(g.Vertices) > 0 && g.attrCount != attrCount {
		panic(fmt.Sprintf("tess: geometry holds %d attributes per vertex, path has %d", g.attrCount, attrCount))
	}
	g.attrCount = attrCount
	g.mark = geometryMark{
		vertices: len(g.Vertices),
		indices:  len(g.Indices),
		attrs:    len(g.attrs),
	}
	return &geometrySink[I]{g: g, prim: prim, constants: c, limit: MaxVertices[I]()}
}

// rollback drops everything added since the last begin.
func (g *Geometry[I]) rollback() {
	g.Vertices = g.Vertices[:g.mark.vertices]
	g.Indices = g.Indices[:g.mark.indices]
	g.attrs = g.attrs[:g.mark.attrs]
}

// geometrySink adapts a Geometry to the tessellators.
type geometrySink[I Index] struct {
	g         *Geometry[I]
	prim      PrimitiveType
	constants VertexConstants
	limit     uint64
}

func (s *geometrySink[I]) AddVertex(v mesh.Vertex) (uint32, error) {
	id := uint64(len(s.g.Vertices))
	if id >= s.limit {
		return 0, ErrTooManyVertices
	}
	s.g.Vertices = append(s.g.Vertices, Vertex{
		Position:         v.Position,
		OriginalPosition: v.OriginalPosition,
		Normal:           v.Normal,
		PrimitiveType:    s.prim,
		Constants:        s.constants,
	})
	s.g.attrs = append(s.g.attrs, v.Attrs[:s.g.attrCount]...)
	return uint32(id), nil
}

func (s *geometrySink[I]) AddTriangle(a, b, c uint32) {
	s.g.Indices = append(s.g.Indices, I(a), I(b), I(c))
}
