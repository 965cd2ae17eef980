package handle

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/svgpath"
)

// BuilderHandle identifies a live path builder. Zero is the null handle.
type BuilderHandle uint64

// PathHandle identifies a built path. Zero is the null handle.
type PathHandle uint64

// GeometryHandle identifies tessellator output. Zero is the null handle.
type GeometryHandle uint64

// MessageHandle identifies an error message. Zero is the null handle.
type MessageHandle uint64

// InputVertex is an endpoint passed to builder operations. Attributes must
// hold exactly the builder's attribute count.
type InputVertex struct {
	Position   [2]float32
	Attributes []float32
}

// Rect is an axis-aligned bounding rectangle. LowerLeft holds the minimum
// coordinates.
type Rect struct {
	LowerLeft  [2]float32
	UpperRight [2]float32
}

// Stats reports live objects and tessellation outcomes of a Store.
type Stats struct {
	Builders   int
	Paths      int
	Geometries int
	Messages   int

	Tessellations uint64
	Overflows     uint64
	Failures      uint64
}

// Store owns builders, paths, geometries and messages.
//
// Thread safety: Store is safe for concurrent use. A single mutex guards
// the handle tables. Tessellation runs outside it on pooled tessellators,
// so calls on distinct paths proceed in parallel.
type Store struct {
	mu         sync.Mutex
	builders   arena[*tess.Builder]
	paths      arena[*tess.Path]
	geometries arena[*geometry]
	messages   arena[string]

	fills   sync.Pool // *tess.FillTessellator
	strokes sync.Pool // *tess.StrokeTessellator

	// Statistics (atomic for lock-free reads)
	tessellations atomic.Uint64
	overflows     atomic.Uint64
	failures      atomic.Uint64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		builders:   newArena[*tess.Builder]("builder"),
		paths:      newArena[*tess.Path]("path"),
		geometries: newArena[*geometry]("geometry"),
		messages:   newArena[string]("message"),
		fills: sync.Pool{
			New: func() any { return tess.NewFillTessellator() },
		},
		strokes: sync.Pool{
			New: func() any { return tess.NewStrokeTessellator() },
		},
	}
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Builders:      s.builders.live,
		Paths:         s.paths.live,
		Geometries:    s.geometries.live,
		Messages:      s.messages.live,
		Tessellations: s.tessellations.Load(),
		Overflows:     s.overflows.Load(),
		Failures:      s.failures.Load(),
	}
}

// CreateBuilder creates a builder whose endpoints carry attrCount custom
// attributes.
func (s *Store) CreateBuilder(attrCount int) BuilderHandle {
	b := tess.NewBuilder(attrCount)
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuilderHandle(s.builders.insert(b))
}

// withBuilder runs fn on a live builder under the store lock.
func (s *Store) withBuilder(h BuilderHandle, fn func(b *tess.Builder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(*s.builders.get(uint64(h)))
}

func pt(p [2]float32) tess.Point {
	return tess.Pt(float64(p[0]), float64(p[1]))
}

// Begin opens a subpath at v.
func (s *Store) Begin(h BuilderHandle, v InputVertex) {
	s.withBuilder(h, func(b *tess.Builder) { b.Begin(pt(v.Position), v.Attributes) })
}

// LineTo adds a line to v.
func (s *Store) LineTo(h BuilderHandle, v InputVertex) {
	s.withBuilder(h, func(b *tess.Builder) { b.LineTo(pt(v.Position), v.Attributes) })
}

// QuadraticTo adds a quadratic Bézier through ctrl to v.
func (s *Store) QuadraticTo(h BuilderHandle, ctrl [2]float32, v InputVertex) {
	s.withBuilder(h, func(b *tess.Builder) { b.QuadraticTo(pt(ctrl), pt(v.Position), v.Attributes) })
}

// CubicTo adds a cubic Bézier through ctrl1 and ctrl2 to v.
func (s *Store) CubicTo(h BuilderHandle, ctrl1, ctrl2 [2]float32, v InputVertex) {
	s.withBuilder(h, func(b *tess.Builder) {
		b.CubicTo(pt(ctrl1), pt(ctrl2), pt(v.Position), v.Attributes)
	})
}

// ArcTo adds an SVG endpoint arc to v.
func (s *Store) ArcTo(h BuilderHandle, radii [2]float32, xRotation float32, largeArc, sweep bool, v InputVertex) {
	s.withBuilder(h, func(b *tess.Builder) {
		r := pt(radii).ToVector()
		b.ArcTo(pt(v.Position), r, float64(xRotation), largeArc, sweep, v.Attributes)
	})
}

// Close closes the open subpath.
func (s *Store) Close(h BuilderHandle) {
	s.withBuilder(h, func(b *tess.Builder) { b.Close() })
}

// End ends the open subpath, closing it if close is set.
func (s *Store) End(h BuilderHandle, close bool) {
	s.withBuilder(h, func(b *tess.Builder) { b.End(close) })
}

// AddRectangle adds the closed rectangle spanned by min and max.
func (s *Store) AddRectangle(h BuilderHandle, min, max [2]float32, attrs []float32) {
	s.withBuilder(h, func(b *tess.Builder) { b.AddRectangle(tess.NewBox(pt(min), pt(max)), attrs) })
}

// AddCircle adds a closed circle.
func (s *Store) AddCircle(h BuilderHandle, center [2]float32, radius float32, attrs []float32) {
	s.withBuilder(h, func(b *tess.Builder) { b.AddCircle(pt(center), float64(radius), attrs) })
}

// AddEllipse adds a closed ellipse rotated by xRotation radians.
func (s *Store) AddEllipse(h BuilderHandle, center, radii [2]float32, xRotation float32, attrs []float32) {
	s.withBuilder(h, func(b *tess.Builder) {
		b.AddEllipse(pt(center), pt(radii).ToVector(), float64(xRotation), attrs)
	})
}

// AddRoundedRectangle adds a rounded rectangle. radii holds the top-left,
// top-right, bottom-left and bottom-right radii.
func (s *Store) AddRoundedRectangle(h BuilderHandle, min, max [2]float32, radii [4]float32, attrs []float32) {
	s.withBuilder(h, func(b *tess.Builder) {
		b.AddRoundedRectangle(tess.NewBox(pt(min), pt(max)), tess.BorderRadii{
			TopLeft:     float64(radii[0]),
			TopRight:    float64(radii[1]),
			BottomLeft:  float64(radii[2]),
			BottomRight: float64(radii[3]),
		}, attrs)
	})
}

// AddSVGPath appends SVG path data, every endpoint taking attrs. On a
// syntax error the builder is left unchanged.
func (s *Store) AddSVGPath(h BuilderHandle, d string, attrs []float32) error {
	var err error
	s.withBuilder(h, func(b *tess.Builder) { err = svgpath.Parse(d, b, attrs) })
	return err
}

// Build consumes the builder and returns its path.
func (s *Store) Build(h BuilderHandle) PathHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.builders.remove(uint64(h))
	return PathHandle(s.paths.insert(b.Build()))
}

// FreePath releases a path.
func (s *Store) FreePath(h PathHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths.remove(uint64(h))
}

// path resolves a path handle. Paths are immutable, so the result is used
// without the lock.
func (s *Store) path(h PathHandle) *tess.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.paths.get(uint64(h))
}

// PathBounds returns the tight bounding rectangle of a path. An empty path
// has a zero Rect.
func (s *Store) PathBounds(h PathHandle) Rect {
	box := s.path(h).BoundingBox()
	if box.IsEmpty() {
		return Rect{}
	}
	return Rect{
		LowerLeft:  [2]float32{float32(box.Min.X), float32(box.Min.Y)},
		UpperRight: [2]float32{float32(box.Max.X), float32(box.Max.Y)},
	}
}
