// Package preview rasterizes tessellated geometry on the CPU so results can
// be inspected without a GPU.
package preview

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/tess"
)

// Fit returns the transform that maps box into a width x height image with
// margin pixels on every side, preserving the aspect ratio and centering
// the content. An empty or degenerate box maps to the identity.
func Fit(box tess.Box, width, height int, margin float64) tess.Transform {
	if box.IsEmpty() || box.Width() <= 0 || box.Height() <= 0 {
		return tess.Identity()
	}
	availW := float64(width) - 2*margin
	availH := float64(height) - 2*margin
	scale := min(availW/box.Width(), availH/box.Height())
	if scale <= 0 {
		return tess.Identity()
	}
	offX := margin + (availW-box.Width()*scale)/2
	offY := margin + (availH-box.Height()*scale)/2
	return tess.Translate(-box.Min.X, -box.Min.Y).
		Then(tess.Scale(scale, scale)).
		Then(tess.Translate(offX, offY))
}

// Mask rasterizes the triangles of g, mapped through view, into an alpha
// mask. Triangles are normalized to one orientation so that seams between
// neighbors do not cancel out.
func Mask[I tess.Index](g *tess.Geometry[I], width, height int, view tess.Transform) *image.Alpha {
	z := vector.NewRasterizer(width, height)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		addTriangle(z, g, i, view)
	}
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// Render draws every triangle of g onto dst with the color of its first
// vertex. Triangles of the same color are rasterized together.
func Render[I tess.Index](dst draw.Image, g *tess.Geometry[I], view tess.Transform) {
	b := dst.Bounds()
	layers := make(map[uint32]*vector.Rasterizer)
	var order []uint32
	for i := 0; i+2 < len(g.Indices); i += 3 {
		c := g.Vertices[g.Indices[i]].Constants.Color
		z, ok := layers[c]
		if !ok {
			z = vector.NewRasterizer(b.Dx(), b.Dy())
			layers[c] = z
			order = append(order, c)
		}
		addTriangle(z, g, i, view)
	}
	for _, c := range order {
		layers[c].Draw(dst, b, image.NewUniform(NRGBA(c)), image.Point{})
	}
}

// NRGBA converts a packed 0xRRGGBBAA vertex color.
func NRGBA(c uint32) color.NRGBA {
	return color.NRGBA{R: uint8(c >> 24), G: uint8(c >> 16), B: uint8(c >> 8), A: uint8(c)}
}

// Coverage returns the covered area of a mask in pixels.
func Coverage(m *image.Alpha) float64 {
	var sum int
	for _, a := range m.Pix {
		sum += int(a)
	}
	return float64(sum) / 255
}

func addTriangle[I tess.Index](z *vector.Rasterizer, g *tess.Geometry[I], i int, view tess.Transform) {
	a := view.Apply(g.Vertices[g.Indices[i]].Position)
	b := view.Apply(g.Vertices[g.Indices[i+1]].Position)
	c := view.Apply(g.Vertices[g.Indices[i+2]].Position)
	if b.Sub(a).Cross(c.Sub(a)) < 0 {
		b, c = c, b
	}
	z.MoveTo(float32(a.X), float32(a.Y))
	z.LineTo(float32(b.X), float32(b.Y))
	z.LineTo(float32(c.X), float32(c.Y))
	z.ClosePath()
}
