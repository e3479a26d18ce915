package render

import (
	"image"
	"image/color"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"
)

// SoftwareRasterizer renders into an in-memory RGBA buffer. It is the
// reference backend: headless, deterministic, no GPU or OS dependency.
// Fills use scanline coverage with nonzero winding; strokes are built as
// filled segment quads. Text is drawn with a bitmap face, so glyph shapes
// do not scale with font size; measurement still comes from the face
// source, which keeps layout consistent across backends.
type SoftwareRasterizer struct {
	img *image.RGBA
}

var _ Rasterizer = (*SoftwareRasterizer)(nil)

// NewSoftwareRasterizer allocates a w-by-h surface.
func NewSoftwareRasterizer(w, h int) (*SoftwareRasterizer, error) {
	if w <= 0 || h <= 0 || w > maxPixmapDim || h > maxPixmapDim {
		return nil, ErrBackendInit
	}
	return &SoftwareRasterizer{img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// Size implements Rasterizer.
func (r *SoftwareRasterizer) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing buffer for presentation and tests.
func (r *SoftwareRasterizer) Image() *image.RGBA { return r.img }

// Clear fills the whole surface with a color, ignoring any clip.
func (r *SoftwareRasterizer) Clear(c Color) {
	src := image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	xdraw.Draw(r.img, r.img.Bounds(), src, image.Point{}, xdraw.Src)
}

// PixelAt reads back a pixel, for tests.
func (r *SoftwareRasterizer) PixelAt(x, y int) Color {
	c := r.img.RGBAAt(x, y)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (r *SoftwareRasterizer) clipBounds(clip Rect, hasClip bool) image.Rectangle {
	b := r.img.Bounds()
	if !hasClip {
		return b
	}
	return b.Intersect(image.Rect(
		int(math32.Floor(clip.X)), int(math32.Floor(clip.Y)),
		int(math32.Ceil(clip.Right())), int(math32.Ceil(clip.Bottom())),
	))
}

// ============================================================================
// Fills
// ============================================================================

type edge struct {
	x0, y0, x1, y1 float32
	winding        int
}

func buildEdges(subpaths [][]Point) []edge {
	var edges []edge
	for _, pts := range subpaths {
		if len(pts) < 2 {
			continue
		}
		// Fill treats every subpath as closed.
		for i := 0; i < len(pts); i++ {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a.Y == b.Y {
				continue
			}
			w := 1
			if a.Y > b.Y {
				a, b = b, a
				w = -1
			}
			edges = append(edges, edge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, winding: w})
		}
	}
	return edges
}

type crossing struct {
	x       float32
	winding int
}

// FillPolygons implements Rasterizer using scanline nonzero-winding fill
// sampled at pixel centers.
func (r *SoftwareRasterizer) FillPolygons(subpaths [][]Point, paint Paint, alpha float32, clip Rect, hasClip bool) {
	edges := buildEdges(subpaths)
	if len(edges) == 0 || alpha <= 0 {
		return
	}
	bounds := r.clipBounds(clip, hasClip)
	if bounds.Empty() {
		return
	}

	minY, maxY := edges[0].y0, edges[0].y1
	for _, e := range edges {
		minY = min(minY, e.y0)
		maxY = max(maxY, e.y1)
	}
	y0 := max(bounds.Min.Y, int(math32.Floor(minY)))
	y1 := min(bounds.Max.Y, int(math32.Ceil(maxY)))

	crossings := make([]crossing, 0, 16)
	for py := y0; py < y1; py++ {
		sy := float32(py) + 0.5
		crossings = crossings[:0]
		for _, e := range edges {
			if sy < e.y0 || sy >= e.y1 {
				continue
			}
			t := (sy - e.y0) / (e.y1 - e.y0)
			crossings = append(crossings, crossing{x: e.x0 + t*(e.x1-e.x0), winding: e.winding})
		}
		if len(crossings) < 2 {
			continue
		}
		sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

		wind := 0
		var spanStart float32
		for _, cr := range crossings {
			was := wind
			wind += cr.winding
			if was == 0 && wind != 0 {
				spanStart = cr.x
			} else if was != 0 && wind == 0 {
				r.fillSpan(py, spanStart, cr.x, paint, alpha, bounds)
			}
		}
	}
}

func (r *SoftwareRasterizer) fillSpan(py int, x0, x1 float32, paint Paint, alpha float32, bounds image.Rectangle) {
	px0 := max(bounds.Min.X, int(math32.Round(x0)))
	px1 := min(bounds.Max.X, int(math32.Round(x1)))
	if px0 >= px1 {
		return
	}
	if !paint.IsPattern() {
		c := paint.At(0, 0, alpha)
		if c.A == 0 {
			return
		}
		if c.A == 255 {
			v := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
			for px := px0; px < px1; px++ {
				r.img.SetRGBA(px, py, v)
			}
			return
		}
		for px := px0; px < px1; px++ {
			r.blend(px, py, c)
		}
		return
	}
	sy := float32(py) + 0.5
	for px := px0; px < px1; px++ {
		r.blend(px, py, paint.At(float32(px)+0.5, sy, alpha))
	}
}

// blend composites a straight-alpha color over the buffer with src-over.
func (r *SoftwareRasterizer) blend(x, y int, c Color) {
	if c.A == 0 {
		return
	}
	d := r.img.RGBAAt(x, y)
	sa := uint32(c.A)
	inv := 255 - sa
	out := color.RGBA{
		R: uint8((uint32(c.R)*sa + uint32(d.R)*inv + 127) / 255),
		G: uint8((uint32(c.G)*sa + uint32(d.G)*inv + 127) / 255),
		B: uint8((uint32(c.B)*sa + uint32(d.B)*inv + 127) / 255),
		A: uint8(sa + (uint32(d.A)*inv+127)/255),
	}
	r.img.SetRGBA(x, y, out)
}

// ============================================================================
// Strokes
// ============================================================================

// StrokePolylines implements Rasterizer. Each segment becomes a filled
// quad of the stroke width; round joins and caps add a disc at the
// junction. Dashing splits the polylines before quads are built.
func (r *SoftwareRasterizer) StrokePolylines(subpaths [][]Point, paint Paint, alpha float32, width float32, cap LineCap, join LineJoin, dash []float32, dashOffset float32, clip Rect, hasClip bool) {
	if width <= 0 || alpha <= 0 {
		return
	}
	if len(dash) > 0 {
		subpaths = applyDash(subpaths, dash, dashOffset)
	}
	half := width / 2
	var quads [][]Point
	addDisc := func(c Point) {
		const segs = 12
		disc := make([]Point, 0, segs)
		for i := 0; i < segs; i++ {
			a := float32(i) / segs * 2 * math32.Pi
			disc = append(disc, Point{X: c.X + half*math32.Cos(a), Y: c.Y + half*math32.Sin(a)})
		}
		quads = append(quads, disc)
	}
	for _, pts := range subpaths {
		for i := 0; i+1 < len(pts); i++ {
			a, b := pts[i], pts[i+1]
			dx, dy := b.X-a.X, b.Y-a.Y
			l := math32.Hypot(dx, dy)
			if l == 0 {
				continue
			}
			nx, ny := -dy/l*half, dx/l*half
			if cap == CapSquare {
				ex, ey := dx/l*half, dy/l*half
				a = Point{X: a.X - ex, Y: a.Y - ey}
				b = Point{X: b.X + ex, Y: b.Y + ey}
			}
			quads = append(quads, []Point{
				{X: a.X + nx, Y: a.Y + ny},
				{X: b.X + nx, Y: b.Y + ny},
				{X: b.X - nx, Y: b.Y - ny},
				{X: a.X - nx, Y: a.Y - ny},
			})
			if i > 0 && join != JoinBevel {
				addDisc(pts[i])
			}
		}
		if cap == CapRound && len(pts) >= 2 {
			addDisc(pts[0])
			addDisc(pts[len(pts)-1])
		}
	}
	// Quads are filled one at a time so overlapping joins do not cancel
	// under nonzero winding.
	for _, q := range quads {
		r.FillPolygons([][]Point{q}, paint, alpha, clip, hasClip)
	}
}

// applyDash splits polylines into on-segments per the dash pattern.
func applyDash(subpaths [][]Point, dash []float32, offset float32) [][]Point {
	var total float32
	for _, d := range dash {
		if d < 0 {
			return subpaths
		}
		total += d
	}
	if total <= 0 {
		return subpaths
	}

	var out [][]Point
	for _, pts := range subpaths {
		if len(pts) < 2 {
			continue
		}
		idx := 0
		rem := dash[0]
		on := true
		for off := math32.Mod(offset, total); off > 0; {
			if off < rem {
				rem -= off
				break
			}
			off -= rem
			idx = (idx + 1) % len(dash)
			rem = dash[idx]
			on = !on
		}

		var cur []Point
		if on {
			cur = append(cur, pts[0])
		}
		for i := 0; i+1 < len(pts); i++ {
			a, b := pts[i], pts[i+1]
			segLen := Dist(a, b)
			pos := float32(0)
			for segLen-pos > rem {
				pos += rem
				t := pos / segLen
				pt := Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
				if on {
					cur = append(cur, pt)
					out = append(out, cur)
					cur = nil
				} else {
					cur = append(cur, pt)
				}
				on = !on
				idx = (idx + 1) % len(dash)
				rem = dash[idx]
			}
			rem -= segLen - pos
			if on {
				cur = append(cur, b)
			}
		}
		if len(cur) >= 2 {
			out = append(out, cur)
		}
	}
	return out
}

// ============================================================================
// Text
// ============================================================================

// DrawGlyphs implements Rasterizer with the built-in bitmap face. The
// baseline is given in device space.
func (r *SoftwareRasterizer) DrawGlyphs(text string, x, y float32, fs FontStyle, paint Paint, alpha float32, clip Rect, hasClip bool) {
	if text == "" || alpha <= 0 {
		return
	}
	c := paint.At(x, y, alpha)
	if c.A == 0 {
		return
	}
	bounds := r.clipBounds(clip, hasClip)
	if bounds.Empty() {
		return
	}
	dst := r.img.SubImage(bounds).(*image.RGBA)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}

// ============================================================================
// Images
// ============================================================================

// DrawImage implements Rasterizer. The source window is scaled into the
// destination rect through the pixmap's prepared-surface cache when the
// whole image is drawn, and directly otherwise.
func (r *SoftwareRasterizer) DrawImage(p *Pixmap, src RectI, dst Rect, clip Rect, hasClip bool) {
	if p == nil || src.IsEmpty() || dst.IsEmpty() {
		return
	}
	bounds := r.clipBounds(clip, hasClip)
	if bounds.Empty() {
		return
	}
	dstR := image.Rect(
		int(math32.Round(dst.X)), int(math32.Round(dst.Y)),
		int(math32.Round(dst.Right())), int(math32.Round(dst.Bottom())),
	)
	out := r.img.SubImage(bounds).(*image.RGBA)

	whole := src.X == 0 && src.Y == 0 && src.Width == p.Width() && src.Height == p.Height()
	if whole {
		prepared := p.Prepared(dstR.Dx(), dstR.Dy(), FitFill)
		xdraw.Draw(out, dstR, prepared, image.Point{}, xdraw.Over)
		return
	}
	srcR := image.Rect(src.X, src.Y, src.Right(), src.Bottom())
	xdraw.ApproxBiLinear.Scale(out, dstR, p.Image(), srcR, xdraw.Over, nil)
}
