// Package svgpath reads SVG path data ("M0 0 L10 0 Z") into tess paths.
//
// All commands of the SVG 1.1 path grammar are supported in absolute and
// relative form, including implicit repetition after a command letter.
// Smooth curves reflect the previous control point only after a curve of
// the same kind, otherwise the current point serves as control point.
package svgpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/tess"
)

// ErrSyntax is wrapped by all parse errors.
var ErrSyntax = errors.New("svgpath: syntax error")

// argCount is the number of arguments of each command.
var argCount = [...]int{
	'M': 2, 'Z': 0, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

type opKind uint8

const (
	opBegin opKind = iota
	opLine
	opQuad
	opCubic
	opArc
	opClose
	opEnd
)

// op is one absolute drawing command.
type op struct {
	kind     opKind
	pts      [3]tess.Point
	radii    tess.Vector
	rotation float64
	large    bool
	sweep    bool
}

// Parse appends the subpaths of the path data d to b. Every endpoint gets
// attrs, which must match b's attribute count. An open subpath of b is
// ended by the first moveto.
//
// The data is validated before b is touched: on error b is unchanged.
func Parse(d string, b *tess.Builder, attrs []float32) error {
	ops, err := parse([]byte(d), b.CurrentPosition())
	if err != nil {
		return err
	}
	for _, o := range ops {
		switch o.kind {
		case opBegin:
			if b.InSubpath() {
				b.End(false)
			}
			b.Begin(o.pts[0], attrs)
		case opLine:
			b.LineTo(o.pts[0], attrs)
		case opQuad:
			b.QuadraticTo(o.pts[0], o.pts[1], attrs)
		case opCubic:
			b.CubicTo(o.pts[0], o.pts[1], o.pts[2], attrs)
		case opArc:
			b.ArcTo(o.pts[0], o.radii, o.rotation, o.large, o.sweep, attrs)
		case opClose:
			b.Close()
		case opEnd:
			b.End(false)
		}
	}
	return nil
}

// ParsePath parses d into a new path without custom attributes.
func ParsePath(d string) (*tess.Path, error) {
	b := tess.NewBuilder(0)
	if err := Parse(d, b, nil); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// MustParsePath is like ParsePath but panics on error.
func MustParsePath(d string) *tess.Path {
	p, err := ParsePath(d)
	if err != nil {
		panic(err)
	}
	return p
}

func syntaxError(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at position %d: %s", ErrSyntax, pos+1, fmt.Sprintf(format, args...))
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t' || path[i] == '\f') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// parse converts path data into absolute commands. cur is the position
// that relative commands before the first moveto are measured from.
func parse(path []byte, cur tess.Point) ([]op, error) {
	var (
		ops   []op
		f     [7]float64
		start = cur
		ctrl  tess.Point // last control point of the previous curve
		prev  byte       // previous command, upper case
		cmd   byte
		open  bool
	)
	i := skipCommaWhitespace(path)
	if i == len(path) {
		return nil, nil
	}
	if c := upper(path[i]); c != 'M' {
		return nil, syntaxError(i, "path data must start with a moveto, got %q", path[i])
	}

	for {
		i += skipCommaWhitespace(path[i:])
		if i >= len(path) {
			break
		}

		repeat := cmd != 0 && upper(cmd) != 'Z' && isNumberStart(path[i])
		if !repeat {
			cmd = path[i]
			c := upper(cmd)
			if int(c) >= len(argCount) || (argCount[c] == 0 && c != 'Z') {
				return nil, syntaxError(i, "unknown command %q", cmd)
			}
			i++
			i += skipCommaWhitespace(path[i:])
		}
		c := upper(cmd)
		rel := cmd != c

		for j := 0; j < argCount[c]; j++ {
			if c == 'A' && (j == 3 || j == 4) {
				if i >= len(path) || (path[i] != '0' && path[i] != '1') {
					return nil, syntaxError(i, "arc flags of %q must be 0 or 1", cmd)
				}
				f[j] = float64(path[i] - '0')
				i++
			} else {
				num, n := strconv.ParseFloat(path[i:])
				if n == 0 {
					return nil, syntaxError(i, "command %q needs %d numbers", cmd, argCount[c])
				}
				f[j] = num
				i += n
			}
			i += skipCommaWhitespace(path[i:])
		}

		if c != 'M' && c != 'Z' && !open {
			// Drawing after a closepath starts a new subpath at its start.
			ops = append(ops, op{kind: opBegin, pts: [3]tess.Point{cur}})
			start = cur
			open = true
		}

		abs := func(x, y float64) tess.Point {
			if rel {
				return tess.Pt(cur.X+x, cur.Y+y)
			}
			return tess.Pt(x, y)
		}

		switch c {
		case 'M':
			if repeat {
				// Extra coordinate pairs after a moveto are linetos.
				cur = abs(f[0], f[1])
				ops = append(ops, op{kind: opLine, pts: [3]tess.Point{cur}})
				break
			}
			if open {
				ops = append(ops, op{kind: opEnd})
			}
			cur = abs(f[0], f[1])
			start = cur
			open = true
			ops = append(ops, op{kind: opBegin, pts: [3]tess.Point{cur}})
		case 'Z':
			if open {
				ops = append(ops, op{kind: opClose})
				open = false
			}
			cur = start
		case 'L':
			cur = abs(f[0], f[1])
			ops = append(ops, op{kind: opLine, pts: [3]tess.Point{cur}})
		case 'H':
			x := f[0]
			if rel {
				x += cur.X
			}
			cur = tess.Pt(x, cur.Y)
			ops = append(ops, op{kind: opLine, pts: [3]tess.Point{cur}})
		case 'V':
			y := f[0]
			if rel {
				y += cur.Y
			}
			cur = tess.Pt(cur.X, y)
			ops = append(ops, op{kind: opLine, pts: [3]tess.Point{cur}})
		case 'C', 'S':
			var c1, c2, to tess.Point
			if c == 'C' {
				c1, c2, to = abs(f[0], f[1]), abs(f[2], f[3]), abs(f[4], f[5])
			} else {
				c1 = cur
				if prev == 'C' || prev == 'S' {
					c1 = reflect(ctrl, cur)
				}
				c2, to = abs(f[0], f[1]), abs(f[2], f[3])
			}
			ops = append(ops, op{kind: opCubic, pts: [3]tess.Point{c1, c2, to}})
			ctrl, cur = c2, to
		case 'Q', 'T':
			var cp, to tess.Point
			if c == 'Q' {
				cp, to = abs(f[0], f[1]), abs(f[2], f[3])
			} else {
				cp = cur
				if prev == 'Q' || prev == 'T' {
					cp = reflect(ctrl, cur)
				}
				to = abs(f[0], f[1])
			}
			ops = append(ops, op{kind: opQuad, pts: [3]tess.Point{cp, to}})
			ctrl, cur = cp, to
		case 'A':
			to := abs(f[5], f[6])
			ops = append(ops, op{
				kind:     opArc,
				pts:      [3]tess.Point{to},
				radii:    tess.Vec(f[0], f[1]),
				rotation: f[2] * math.Pi / 180,
				large:    f[3] == 1,
				sweep:    f[4] == 1,
			})
			cur = to
		}
		prev = c
	}
	return ops, nil
}

// reflect mirrors p through center.
func reflect(p, center tess.Point) tess.Point {
	return tess.Pt(2*center.X-p.X, 2*center.Y-p.Y)
}
