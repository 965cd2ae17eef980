package tess

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type smallIndex uint16

func TestMaxVertices(t *testing.T) {
	assert.Equal(t, uint64(65535), MaxVertices[uint16]())
	assert.Equal(t, uint64(math.MaxUint32), MaxVertices[uint32]())
	assert.Equal(t, uint64(65535), MaxVertices[smallIndex]())
}

func TestGeometry_IndexFormat(t *testing.T) {
	assert.Equal(t, gputypes.IndexFormatUint16, NewGeometry[uint16]().IndexFormat())
	assert.Equal(t, gputypes.IndexFormatUint16, NewGeometry[smallIndex]().IndexFormat())
	assert.Equal(t, gputypes.IndexFormatUint32, NewGeometry[uint32]().IndexFormat())
}

func packTestGeometry() *Geometry[uint16] {
	g := NewGeometry[uint16]()
	g.Vertices = []Vertex{
		{
			Position:         Pt(1, 2),
			OriginalPosition: Pt(3, 4),
			Normal:           Vec(0.5, -0.5),
			PrimitiveType:    PrimitiveStroke,
			Constants:        VertexConstants{Color: 0xAABBCCDD, FillIndex: 7, ShapeIndex: -1},
		},
		{Position: Pt(5, 6), OriginalPosition: Pt(5, 6), PrimitiveType: PrimitiveFill},
	}
	g.Indices = []uint16{0, 1, 1}
	g.attrs = []float32{9, 10}
	g.attrCount = 1
	return g
}

func TestGeometry_VertexLayout(t *testing.T) {
	g := packTestGeometry()
	layout := g.VertexLayout()

	assert.Equal(t, 44, g.VertexStride())
	assert.Equal(t, uint64(44), layout.ArrayStride)
	assert.Equal(t, gputypes.VertexStepModeVertex, layout.StepMode)
	require.Len(t, layout.Attributes, 8)

	for i, a := range layout.Attributes {
		assert.Equal(t, uint32(i), a.ShaderLocation)
	}
	assert.Equal(t, gputypes.VertexFormatFloat32x2, layout.Attributes[0].Format)
	assert.Equal(t, gputypes.VertexFormatUint32, layout.Attributes[3].Format)
	assert.Equal(t, uint64(24), layout.Attributes[3].Offset)
	assert.Equal(t, gputypes.VertexFormatFloat32, layout.Attributes[7].Format)
	assert.Equal(t, uint64(40), layout.Attributes[7].Offset)

	assert.Len(t, NewGeometry[uint32]().VertexLayout().Attributes, 7)
}

func TestGeometry_PackVertices(t *testing.T) {
	g := packTestGeometry()
	buf := g.PackVertices()
	require.Len(t, buf, 2*44)

	le := binary.LittleEndian
	f32 := func(off int) float32 { return math.Float32frombits(le.Uint32(buf[off:])) }

	assert.Equal(t, float32(1), f32(0))
	assert.Equal(t, float32(2), f32(4))
	assert.Equal(t, float32(3), f32(8))
	assert.Equal(t, float32(4), f32(12))
	assert.Equal(t, float32(0.5), f32(16))
	assert.Equal(t, float32(-0.5), f32(20))
	assert.Equal(t, uint32(0xAABBCCDD), le.Uint32(buf[24:]))
	assert.Equal(t, uint32(PrimitiveStroke), le.Uint32(buf[28:]))
	assert.Equal(t, int32(7), int32(le.Uint32(buf[32:])))
	assert.Equal(t, int32(-1), int32(le.Uint32(buf[36:])))
	assert.Equal(t, float32(9), f32(40))

	assert.Equal(t, float32(5), f32(44))
	assert.Equal(t, uint32(PrimitiveFill), le.Uint32(buf[44+28:]))
	assert.Equal(t, float32(10), f32(44+40))
}

func TestGeometry_PackIndices(t *testing.T) {
	g16 := packTestGeometry()
	assert.Equal(t, []byte{0, 0, 1, 0, 1, 0}, g16.PackIndices())

	g32 := NewGeometry[uint32]()
	g32.Indices = []uint32{1, 0x01020304}
	assert.Equal(t, []byte{1, 0, 0, 0, 4, 3, 2, 1}, g32.PackIndices())
}

func TestGeometry_Reset(t *testing.T) {
	g := packTestGeometry()
	g.Reset()

	assert.Empty(t, g.Vertices)
	assert.Empty(t, g.Indices)
	assert.Zero(t, g.AttributeCount())
	assert.Zero(t, g.TriangleCount())
}

func TestGeometry_AttributeCountMismatch(t *testing.T) {
	withAttr := NewBuilder(1)
	withAttr.AddRectangle(NewBox(Pt(0, 0), Pt(10, 10)), []float32{1})
	without := NewBuilder(0)
	without.AddRectangle(NewBox(Pt(0, 0), Pt(10, 10)), nil)

	g := NewGeometry[uint32]()
	tess := NewFillTessellator()
	require.NoError(t, tess.Tessellate(withAttr.Build(), DefaultFillOptions(), g))
	assert.Equal(t, 1, g.AttributeCount())

	assert.Panics(t, func() {
		_ = tess.Tessellate(without.Build(), DefaultFillOptions(), g)
	})
}

func TestPrimitiveType_String(t *testing.T) {
	assert.Equal(t, "Text", PrimitiveText.String())
	assert.Equal(t, "Fill", PrimitiveFill.String())
	assert.Equal(t, "Stroke", PrimitiveStroke.String())
	assert.Equal(t, "PrimitiveType(9)", PrimitiveType(9).String())
}

func TestPackedVersion(t *testing.T) {
	assert.Equal(t, uint32(0x01000001), PackedVersion())
}
