package tess

import (
	"math"
	"slices"

	"github.com/gogpu/tess/internal/mesh"
)

// Dash is a dash pattern: alternating dash and gap lengths along a path.
// For example, [5, 3] draws 5 units and skips 3.
type Dash struct {
	// Array contains alternating dash/gap lengths. An odd-length array is
	// repeated once to make it even: [5] acts as [5, 5].
	Array []float64

	// Offset is how far into the pattern each subpath starts.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are taken as absolute values.
//
// Examples:
//
//	NewDash(5, 3)        // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDash(5)           // equivalent to [5, 5]
//
// Returns nil if no lengths are provided or none is positive.
func NewDash(lengths ...float64) *Dash {
	if !slices.ContainsFunc(lengths, func(l float64) bool { return l > 0 }) {
		return nil
	}
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}
	return &Dash{Array: normalized}
}

// WithOffset returns a copy of the pattern starting offset units in.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// PatternLength returns the length of one full cycle, odd arrays counted
// twice.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	var total float64
	for _, l := range d.Array {
		total += l
	}
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed reports whether the pattern has a positive, finite dash length.
// A nil Dash is solid.
func (d *Dash) IsDashed() bool {
	if d == nil {
		return false
	}
	total := d.PatternLength()
	return total > 0 && !math.IsInf(total, 0) && !math.IsNaN(total)
}

// NormalizedOffset returns the offset wrapped into [0, PatternLength).
func (d *Dash) NormalizedOffset() float64 {
	total := d.PatternLength()
	if total <= 0 {
		return 0
	}
	offset := math.Mod(d.Offset, total)
	if offset < 0 {
		offset += total
	}
	return offset
}

// Scale returns the pattern with every length and the offset multiplied by
// factor. Use it when a path is transformed before dashing.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	scaled := make([]float64, len(d.Array))
	for i, l := range d.Array {
		scaled[i] = l * factor
	}
	return &Dash{Array: scaled, Offset: d.Offset * factor}
}

// effectiveArray returns the array with odd-length arrays duplicated.
func (d *Dash) effectiveArray() []float64 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	return append(slices.Clip(d.Array), d.Array...)
}

// Dash splits the path into the open subpaths drawn by pattern d. Curves
// are flattened with tolerance first, so the result only has line verbs.
// Attributes are interpolated at dash ends.
//
// Every subpath restarts the pattern at d's offset, and a dash does not
// wrap around the start of a closed subpath. Zero-length dashes are
// dropped. A solid pattern returns p itself.
func (p *Path) Dash(d *Dash, tolerance float64) *Path {
	if !d.IsDashed() {
		return p
	}
	if !isPositive(tolerance) {
		tolerance = DefaultTolerance
	}
	var f flattener
	dd := dasher{
		b:       NewBuilder(p.attrCount),
		pattern: d.effectiveArray(),
		offset:  d.NormalizedOffset(),
		lerp:    make([]float32, p.attrCount),
		start:   make([]float32, p.attrCount),
	}
	for i := range f.flatten(p, tolerance) {
		dd.contour(&f.contours[i])
	}
	return dd.b.Build()
}

type dasher struct {
	b       *Builder
	pattern []float64
	offset  float64

	idx int     // current pattern entry
	rem float64 // length left in the current entry

	// A dash opens its subpath lazily so that zero-length dashes vanish.
	on      bool
	open    bool
	startPt Point
	start   []float32
	lerp    []float32
}

func (d *dasher) reset() {
	d.idx, d.rem = 0, d.pattern[0]
	for pos := d.offset; pos > 0; {
		if pos < d.rem {
			d.rem -= pos
			break
		}
		pos -= d.rem
		d.advance()
	}
	d.on = d.idx%2 == 0
	d.open = false
}

func (d *dasher) advance() {
	d.idx = (d.idx + 1) % len(d.pattern)
	d.rem = d.pattern[d.idx]
}

// toggle ends the current entry at pt.
func (d *dasher) toggle(pt Point, attrs []float32) {
	if d.on {
		d.lineTo(pt, attrs)
		if d.open {
			d.b.End(false)
			d.open = false
		}
	} else {
		d.startPt = pt
		copy(d.start, attrs)
	}
	d.on = !d.on
	d.advance()
}

func (d *dasher) lineTo(pt Point, attrs []float32) {
	if !d.open {
		if pt == d.startPt {
			return
		}
		d.b.Begin(d.startPt, d.start)
		d.open = true
	}
	d.b.LineTo(pt, attrs)
}

func (d *dasher) contour(c *mesh.Contour) {
	n := len(c.Points)
	if n == 0 {
		return
	}
	d.reset()
	d.startPt = c.Points[0]
	copy(d.start, c.Attr(0))

	segs := n - 1
	if c.Closed {
		segs = n
	}
	for s := range segs {
		a, b := s, (s+1)%n
		p0, p1 := c.Points[a], c.Points[b]
		length := p0.Distance(p1)
		t := 0.0
		for length-t > d.rem {
			t += d.rem
			frac := t / length
			mesh.Lerp(d.lerp, c.Attr(a), c.Attr(b), frac)
			d.toggle(p0.Lerp(p1, frac), d.lerp)
		}
		d.rem -= length - t
		if d.on {
			d.lineTo(p1, c.Attr(b))
		}
	}
	if d.open {
		d.b.End(false)
		d.open = false
	}
}
