package render

import "errors"

// ErrBackendInit is returned when a backend surface cannot be created.
// Creation failure is fatal for the window owning the context.
var ErrBackendInit = errors.New("render: backend initialization failed")

// Context is the backend contract: a stateful 2D drawing surface. All
// drawing operates on the current path and current state. Primitive calls
// are infallible once a context exists; malformed input is ignored and
// logged at debug level.
type Context interface {
	// State stack.
	PushState()
	PopState()
	ResetState()

	// Transforms compose left-to-right in parent coordinates.
	Translate(x, y float32)
	Rotate(angle float32)
	Scale(x, y float32)
	SetTransform(a, b, c, d, e, f float32)
	Transform(a, b, c, d, e, f float32)
	ResetTransform()

	// Clipping. Clips intersect with the current clip; ClearClipRect
	// restores the full surface (clips applied in outer saved states come
	// back on PopState).
	ClipRect(x, y, w, h float32)
	ClipRoundedRectangle(x, y, w, h, r float32)
	ClipPath()
	ClearClipRect()

	// Path construction.
	ClearPath()
	MoveTo(x, y float32)
	LineTo(x, y float32)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float32)
	QuadraticCurveTo(cx, cy, x, y float32)
	Arc(cx, cy, r, angle1, angle2 float32)
	ArcTo(x1, y1, x2, y2, r float32)
	Ellipse(cx, cy, rx, ry float32)
	RectPath(x, y, w, h float32)
	RoundedRectPath(x, y, w, h, r float32)
	CirclePath(cx, cy, r float32)
	ClosePath()

	// Paint sources.
	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetTextColor(c Color)
	SetFillPattern(p *PaintPattern)
	SetStrokePattern(p *PaintPattern)
	SetTextPattern(p *PaintPattern)
	SetStrokeWidth(w float32)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)
	SetMiterLimit(limit float32)
	SetLineDash(dash []float32, offset float32)
	SetGlobalAlpha(alpha float32)

	// Primitives.
	DrawLine(x1, y1, x2, y2 float32)
	DrawRectangle(x, y, w, h float32)
	FillRectangle(x, y, w, h float32)
	DrawRoundedRectangle(x, y, w, h, r float32)
	FillRoundedRectangle(x, y, w, h, r float32)
	DrawCircle(cx, cy, r float32)
	FillCircle(cx, cy, r float32)
	DrawEllipse(cx, cy, rx, ry float32)
	FillEllipse(cx, cy, rx, ry float32)
	DrawArc(cx, cy, r, angle1, angle2 float32)
	FillArc(cx, cy, r, angle1, angle2 float32)
	DrawBezierCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float32)
	DrawLinePath(points []Point)
	FillLinePath(points []Point)
	DrawRoundedRectangleWithBorders(rect Rect, radius float32, borders [4]BorderSide)
	StrokePath()
	FillPath()

	// Text.
	SetFontFace(family string, weight FontWeight, slant FontSlant)
	SetFontSize(size float32)
	SetTextAlignment(a TextAlignment)
	SetTextVerticalAlignment(a TextVerticalAlignment)
	SetTextWrap(w WrapMode)
	SetTextLineHeight(multiplier float32)
	SetTextIsMarkup(markup bool)
	DrawText(text string, x, y float32)
	DrawTextInRect(text string, x, y, w, h float32)
	GetTextLineDimensions(text string) Size
	GetTextDimensions(text string, maxWidth float32) Size
	GetTextIndexForXY(text string, x, y float32) int

	// Images.
	DrawPixmap(p *Pixmap, x, y, w, h float32, mode FitMode)
	DrawPartOfPixmap(p *Pixmap, src RectI, dst Rect)
	DrawPixmapTiled(p *Pixmap, x, y, w, h float32)

	// Surface.
	Width() int
	Height() int
}

// BorderSide configures one edge for DrawRoundedRectangleWithBorders,
// ordered [top, right, bottom, left].
type BorderSide struct {
	Width float32
	Color Color
	Dash  []float32
}

// Rasterizer is what a concrete backend implements. The Canvas layers the
// full Context contract (state, paths, text layout) on top of these
// operations. All coordinates arriving here are in device space.
type Rasterizer interface {
	FillPolygons(subpaths [][]Point, paint Paint, alpha float32, clip Rect, hasClip bool)
	StrokePolylines(subpaths [][]Point, paint Paint, alpha float32, width float32, cap LineCap, join LineJoin, dash []float32, dashOffset float32, clip Rect, hasClip bool)
	DrawGlyphs(text string, x, y float32, font FontStyle, paint Paint, alpha float32, clip Rect, hasClip bool)
	DrawImage(p *Pixmap, src RectI, dst Rect, clip Rect, hasClip bool)
	Size() (int, int)
}

// Canvas implements Context over a Rasterizer. It owns the state stack, the
// current path, and text layout; the rasterizer only ever sees flattened
// device-space geometry.
type Canvas struct {
	ras   Rasterizer
	state *stateStack
	path  Path
	faces FaceSource
}

var _ Context = (*Canvas)(nil)

// NewCanvas creates a context drawing through the given rasterizer. The
// face source resolves font styles for text operations; nil falls back to
// fixed metrics.
func NewCanvas(ras Rasterizer, faces FaceSource) (*Canvas, error) {
	if ras == nil {
		return nil, ErrBackendInit
	}
	if faces == nil {
		faces = FixedFaceSource{}
	}
	return &Canvas{ras: ras, state: newStateStack(), faces: faces}, nil
}

// Width implements Context.
func (c *Canvas) Width() int { w, _ := c.ras.Size(); return w }

// Height implements Context.
func (c *Canvas) Height() int { _, h := c.ras.Size(); return h }

// State returns a copy of the current render state, for inspection.
func (c *Canvas) State() State { return c.state.current.clone() }

// ============================================================================
// State Stack
// ============================================================================

func (c *Canvas) PushState() { c.state.push() }
func (c *Canvas) PopState()  { c.state.pop() }

func (c *Canvas) ResetState() {
	c.state.reset()
	c.path.Clear()
}

// ============================================================================
// Transforms
// ============================================================================

func (c *Canvas) Translate(x, y float32) {
	c.state.current.Transform = c.state.current.Transform.Translate(x, y)
}

func (c *Canvas) Rotate(angle float32) {
	c.state.current.Transform = c.state.current.Transform.Rotate(angle)
}

func (c *Canvas) Scale(x, y float32) {
	c.state.current.Transform = c.state.current.Transform.Scale(x, y)
}

func (c *Canvas) SetTransform(a, b, cc, d, e, f float32) {
	c.state.current.Transform = Matrix{A: a, B: b, C: cc, D: d, E: e, F: f}
}

func (c *Canvas) Transform(a, b, cc, d, e, f float32) {
	c.state.current.Transform = c.state.current.Transform.Mul(Matrix{A: a, B: b, C: cc, D: d, E: e, F: f})
}

func (c *Canvas) ResetTransform() {
	c.state.current.Transform = Identity()
}

// ============================================================================
// Clipping
// ============================================================================

func (c *Canvas) ClipRect(x, y, w, h float32) {
	c.clipDeviceRect(c.transformedBounds(Rect{X: x, Y: y, Width: w, Height: h}))
}

func (c *Canvas) ClipRoundedRectangle(x, y, w, h, r float32) {
	// Region clipping degrades to the bounding rect; corner coverage is the
	// rasterizer's concern when it supports region clips.
	c.ClipRect(x, y, w, h)
}

func (c *Canvas) ClipPath() {
	bounds := pathBounds(c.path.Transform(c.state.current.Transform))
	c.clipDeviceRect(bounds)
	c.path.Clear()
}

func (c *Canvas) ClearClipRect() {
	c.state.current.HasClip = false
	c.state.current.Clip = Rect{}
}

func (c *Canvas) clipDeviceRect(r Rect) {
	s := &c.state.current
	if s.HasClip {
		r = s.Clip.Intersect(r)
	}
	s.Clip = r
	s.HasClip = true
}

func (c *Canvas) transformedBounds(r Rect) Rect {
	m := c.state.current.Transform
	p1 := m.ApplyPoint(Point{X: r.X, Y: r.Y})
	p2 := m.ApplyPoint(Point{X: r.Right(), Y: r.Y})
	p3 := m.ApplyPoint(Point{X: r.Right(), Y: r.Bottom()})
	p4 := m.ApplyPoint(Point{X: r.X, Y: r.Bottom()})
	minX := min(min(p1.X, p2.X), min(p3.X, p4.X))
	minY := min(min(p1.Y, p2.Y), min(p3.Y, p4.Y))
	maxX := max(max(p1.X, p2.X), max(p3.X, p4.X))
	maxY := max(max(p1.Y, p2.Y), max(p3.Y, p4.Y))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func pathBounds(p *Path) Rect {
	var r Rect
	first := true
	add := func(pt Point) {
		if first {
			r = Rect{X: pt.X, Y: pt.Y}
			first = false
			return
		}
		r = r.Union(Rect{X: pt.X, Y: pt.Y, Width: 0.001, Height: 0.001})
	}
	for _, el := range p.Elements() {
		add(el.P)
		if el.Verb == VerbCubic {
			add(el.C1)
			add(el.C2)
		}
	}
	return r
}

// ============================================================================
// Path Construction
// ============================================================================

func (c *Canvas) ClearPath()          { c.path.Clear() }
func (c *Canvas) MoveTo(x, y float32) { c.path.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float32) { c.path.LineTo(x, y) }

func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float32) {
	c.path.BezierCurveTo(c1x, c1y, c2x, c2y, x, y)
}

func (c *Canvas) QuadraticCurveTo(cx, cy, x, y float32) {
	c.path.QuadraticCurveTo(cx, cy, x, y)
}

func (c *Canvas) Arc(cx, cy, r, angle1, angle2 float32) { c.path.Arc(cx, cy, r, angle1, angle2) }
func (c *Canvas) ArcTo(x1, y1, x2, y2, r float32)       { c.path.ArcTo(x1, y1, x2, y2, r) }
func (c *Canvas) Ellipse(cx, cy, rx, ry float32)        { c.path.Ellipse(cx, cy, rx, ry) }
func (c *Canvas) RectPath(x, y, w, h float32)           { c.path.Rect(x, y, w, h) }
func (c *Canvas) RoundedRectPath(x, y, w, h, r float32) { c.path.RoundedRect(x, y, w, h, r) }
func (c *Canvas) CirclePath(cx, cy, r float32)          { c.path.Circle(cx, cy, r) }
func (c *Canvas) ClosePath()                            { c.path.ClosePath() }

// ============================================================================
// Paint Sources
// ============================================================================

func (c *Canvas) SetFillColor(col Color)   { c.state.current.FillPaint = SolidPaint(col) }
func (c *Canvas) SetStrokeColor(col Color) { c.state.current.StrokePaint = SolidPaint(col) }
func (c *Canvas) SetTextColor(col Color)   { c.state.current.TextPaint = SolidPaint(col) }

func (c *Canvas) SetFillPattern(p *PaintPattern)   { c.state.current.FillPaint = PatternPaint(p) }
func (c *Canvas) SetStrokePattern(p *PaintPattern) { c.state.current.StrokePaint = PatternPaint(p) }
func (c *Canvas) SetTextPattern(p *PaintPattern)   { c.state.current.TextPaint = PatternPaint(p) }

func (c *Canvas) SetStrokeWidth(w float32) {
	if w < 0 {
		logger().Debug("negative stroke width ignored", "width", w)
		return
	}
	c.state.current.StrokeWidth = w
}

func (c *Canvas) SetLineCap(cap LineCap)       { c.state.current.LineCap = cap }
func (c *Canvas) SetLineJoin(j LineJoin)       { c.state.current.LineJoin = j }
func (c *Canvas) SetMiterLimit(limit float32)  { c.state.current.MiterLimit = limit }
func (c *Canvas) SetGlobalAlpha(alpha float32) { c.state.current.GlobalAlpha = clampf(alpha, 0, 1) }

func (c *Canvas) SetLineDash(dash []float32, offset float32) {
	c.state.current.Dash = dash
	c.state.current.DashOffset = offset
}

// ============================================================================
// Primitives
// ============================================================================

func (c *Canvas) DrawLine(x1, y1, x2, y2 float32) {
	c.path.Clear()
	c.path.MoveTo(x1, y1)
	c.path.LineTo(x2, y2)
	c.StrokePath()
}

func (c *Canvas) DrawRectangle(x, y, w, h float32) {
	c.path.Clear()
	c.path.Rect(x, y, w, h)
	c.StrokePath()
}

func (c *Canvas) FillRectangle(x, y, w, h float32) {
	c.path.Clear()
	c.path.Rect(x, y, w, h)
	c.FillPath()
}

func (c *Canvas) DrawRoundedRectangle(x, y, w, h, r float32) {
	c.path.Clear()
	c.path.RoundedRect(x, y, w, h, r)
	c.StrokePath()
}

func (c *Canvas) FillRoundedRectangle(x, y, w, h, r float32) {
	c.path.Clear()
	c.path.RoundedRect(x, y, w, h, r)
	c.FillPath()
}

func (c *Canvas) DrawCircle(cx, cy, r float32) {
	c.path.Clear()
	c.path.Circle(cx, cy, r)
	c.StrokePath()
}

func (c *Canvas) FillCircle(cx, cy, r float32) {
	c.path.Clear()
	c.path.Circle(cx, cy, r)
	c.FillPath()
}

func (c *Canvas) DrawEllipse(cx, cy, rx, ry float32) {
	c.path.Clear()
	c.path.Ellipse(cx, cy, rx, ry)
	c.StrokePath()
}

func (c *Canvas) FillEllipse(cx, cy, rx, ry float32) {
	c.path.Clear()
	c.path.Ellipse(cx, cy, rx, ry)
	c.FillPath()
}

func (c *Canvas) DrawArc(cx, cy, r, angle1, angle2 float32) {
	c.path.Clear()
	c.path.Arc(cx, cy, r, angle1, angle2)
	c.StrokePath()
}

func (c *Canvas) FillArc(cx, cy, r, angle1, angle2 float32) {
	c.path.Clear()
	c.path.MoveTo(cx, cy)
	c.path.Arc(cx, cy, r, angle1, angle2)
	c.path.ClosePath()
	c.FillPath()
}

func (c *Canvas) DrawBezierCurve(x1, y1, c1x, c1y, c2x, c2y, x2, y2 float32) {
	c.path.Clear()
	c.path.MoveTo(x1, y1)
	c.path.BezierCurveTo(c1x, c1y, c2x, c2y, x2, y2)
	c.StrokePath()
}

func (c *Canvas) DrawLinePath(points []Point) {
	if len(points) < 2 {
		logger().Debug("line path needs at least two points", "count", len(points))
		return
	}
	c.path.Clear()
	c.path.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.path.LineTo(p.X, p.Y)
	}
	c.StrokePath()
}

func (c *Canvas) FillLinePath(points []Point) {
	if len(points) < 3 {
		logger().Debug("fill path needs at least three points", "count", len(points))
		return
	}
	c.path.Clear()
	c.path.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.path.LineTo(p.X, p.Y)
	}
	c.path.ClosePath()
	c.FillPath()
}

// DrawRoundedRectangleWithBorders strokes each side independently with its
// own width, color and dash. Sides are ordered [top, right, bottom, left].
func (c *Canvas) DrawRoundedRectangleWithBorders(rect Rect, radius float32, borders [4]BorderSide) {
	type seg struct{ x1, y1, x2, y2 float32 }
	r := clampf(radius, 0, min(rect.Width, rect.Height)/2)
	segs := [4]seg{
		{rect.X + r, rect.Y, rect.Right() - r, rect.Y},
		{rect.Right(), rect.Y + r, rect.Right(), rect.Bottom() - r},
		{rect.Right() - r, rect.Bottom(), rect.X + r, rect.Bottom()},
		{rect.X, rect.Bottom() - r, rect.X, rect.Y + r},
	}
	c.PushState()
	for i, b := range borders {
		if b.Width <= 0 {
			continue
		}
		c.SetStrokeColor(b.Color)
		c.SetStrokeWidth(b.Width)
		c.SetLineDash(b.Dash, 0)
		s := segs[i]
		c.DrawLine(s.x1, s.y1, s.x2, s.y2)
	}
	c.PopState()
}

// StrokePath strokes the current path with the current stroke state, then
// clears it.
func (c *Canvas) StrokePath() {
	if c.path.IsEmpty() {
		return
	}
	s := c.state.current
	device := c.path.Transform(s.Transform)
	c.ras.StrokePolylines(
		device.Flatten(0.25), s.StrokePaint, s.GlobalAlpha,
		s.StrokeWidth, s.LineCap, s.LineJoin, s.Dash, s.DashOffset,
		s.Clip, s.HasClip,
	)
	c.path.Clear()
}

// FillPath fills the current path with the current fill state, then clears
// it.
func (c *Canvas) FillPath() {
	if c.path.IsEmpty() {
		return
	}
	s := c.state.current
	device := c.path.Transform(s.Transform)
	c.ras.FillPolygons(device.Flatten(0.25), s.FillPaint, s.GlobalAlpha, s.Clip, s.HasClip)
	c.path.Clear()
}

// ============================================================================
// Text
// ============================================================================

func (c *Canvas) SetFontFace(family string, weight FontWeight, slant FontSlant) {
	f := &c.state.current.Font
	f.Family = family
	f.Weight = weight
	f.Slant = slant
}

func (c *Canvas) SetFontSize(size float32) {
	if size <= 0 {
		logger().Debug("non-positive font size ignored", "size", size)
		return
	}
	c.state.current.Font.Size = size
}

func (c *Canvas) SetTextAlignment(a TextAlignment) { c.state.current.Text.Alignment = a }
func (c *Canvas) SetTextVerticalAlignment(a TextVerticalAlignment) {
	c.state.current.Text.VerticalAlignment = a
}
func (c *Canvas) SetTextWrap(w WrapMode)               { c.state.current.Text.Wrap = w }
func (c *Canvas) SetTextLineHeight(multiplier float32) { c.state.current.Text.LineHeight = multiplier }
func (c *Canvas) SetTextIsMarkup(markup bool)          { c.state.current.Text.IsMarkup = markup }

// DrawText draws a single line anchored at (x, y) = top-left of the line
// box, honoring horizontal alignment around x.
func (c *Canvas) DrawText(text string, x, y float32) {
	if text == "" {
		return
	}
	s := c.state.current
	face := c.faces.FaceFor(s.Font)
	w := face.Advance(text, s.Font.Size)
	switch s.Text.Alignment {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	c.drawTextLine(text, x, y, face)
}

// DrawTextInRect lays the text out within the rectangle, wrapping per the
// current wrap mode and applying both alignments.
func (c *Canvas) DrawTextInRect(text string, x, y, w, h float32) {
	if text == "" || w <= 0 || h <= 0 {
		return
	}
	s := c.state.current
	face := c.faces.FaceFor(s.Font)
	lines := LayoutText(face, s.Font, s.Text.Wrap, w, text)
	lineH := s.Text.EffectiveLineHeight(s.Font.Size)
	total := lineH * float32(len(lines))

	startY := y
	switch s.Text.VerticalAlignment {
	case VAlignMiddle:
		startY = y + (h-total)/2
	case VAlignBottom:
		startY = y + h - total
	}

	c.PushState()
	c.clipDeviceRect(c.transformedBounds(Rect{X: x, Y: y, Width: w, Height: h}))
	for i, line := range lines {
		lx := x
		switch s.Text.Alignment {
		case AlignCenter:
			lx = x + (w-line.Width)/2
		case AlignRight:
			lx = x + w - line.Width
		}
		c.drawTextLine(line.Text, lx, startY+float32(i)*lineH, face)
	}
	c.PopState()
}

func (c *Canvas) drawTextLine(text string, x, y float32, face Face) {
	if text == "" {
		return
	}
	s := c.state.current
	dx, dy := s.Transform.Apply(x, y)
	baseline := dy + face.Metrics(s.Font.Size).Ascent
	c.ras.DrawGlyphs(text, dx, baseline, s.Font, s.TextPaint, s.GlobalAlpha, s.Clip, s.HasClip)
}

// GetTextLineDimensions measures a single unwrapped line.
func (c *Canvas) GetTextLineDimensions(text string) Size {
	s := c.state.current
	face := c.faces.FaceFor(s.Font)
	return Size{
		Width:  face.Advance(text, s.Font.Size),
		Height: s.Text.EffectiveLineHeight(s.Font.Size),
	}
}

// GetTextDimensions measures text with wrapping at maxWidth.
func (c *Canvas) GetTextDimensions(text string, maxWidth float32) Size {
	s := c.state.current
	face := c.faces.FaceFor(s.Font)
	return MeasureText(face, s.Font, s.Text, maxWidth, text)
}

// GetTextIndexForXY hit-tests a character index within wrapped text laid
// out at origin with the current state.
func (c *Canvas) GetTextIndexForXY(text string, x, y float32) int {
	s := c.state.current
	face := c.faces.FaceFor(s.Font)
	lines := LayoutText(face, s.Font, s.Text.Wrap, 0, text)
	lineH := s.Text.EffectiveLineHeight(s.Font.Size)
	row := int(y / lineH)
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	line := lines[row]
	return line.Start + face.IndexForX(line.Text, s.Font.Size, x)
}

// ============================================================================
// Images
// ============================================================================

func (c *Canvas) DrawPixmap(p *Pixmap, x, y, w, h float32, mode FitMode) {
	if p == nil || w <= 0 || h <= 0 {
		logger().Debug("pixmap draw ignored", "nil", p == nil)
		return
	}
	s := c.state.current
	src, dst := p.FitRect(Rect{X: x, Y: y, Width: w, Height: h}, mode)
	dst = c.transformedBounds(dst)
	clip := Rect{X: x, Y: y, Width: w, Height: h}
	clip = c.transformedBounds(clip)
	if s.HasClip {
		clip = clip.Intersect(s.Clip)
	}
	c.ras.DrawImage(p, src, dst, clip, true)
}

func (c *Canvas) DrawPartOfPixmap(p *Pixmap, src RectI, dst Rect) {
	if p == nil || src.IsEmpty() || dst.IsEmpty() {
		return
	}
	s := c.state.current
	c.ras.DrawImage(p, src, c.transformedBounds(dst), s.Clip, s.HasClip)
}

// DrawPixmapTiled repeats the pixmap at natural size to cover the target
// rectangle.
func (c *Canvas) DrawPixmapTiled(p *Pixmap, x, y, w, h float32) {
	if p == nil || w <= 0 || h <= 0 {
		return
	}
	tileW := float32(p.Width())
	tileH := float32(p.Height())
	c.PushState()
	c.clipDeviceRect(c.transformedBounds(Rect{X: x, Y: y, Width: w, Height: h}))
	for ty := y; ty < y+h; ty += tileH {
		for tx := x; tx < x+w; tx += tileW {
			c.DrawPixmap(p, tx, ty, tileW, tileH, FitNoScale)
		}
	}
	c.PopState()
}
