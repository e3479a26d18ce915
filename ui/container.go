package ui

import (
	"github.com/ultracanvas/ultracanvas/render"
)

const (
	scrollbarThickness = 12
	scrollbarMinThumb  = 20
	wheelScrollStep    = 48
)

// Container hosts an ordered child collection behind a scrollable
// viewport. Child z-order is insertion order: later children render on
// top and hit-test first. An optional Layout computes child geometry.
type Container struct {
	*BaseElement

	children []Element
	layout   Layout

	// Content extent, from layout or child bounds.
	contentWidth  float32
	contentHeight float32

	// Scroll state. Offsets are clamped to [0, max].
	vOffset, hOffset float32
	vMax, hMax       float32
	vVisible         bool
	hVisible         bool

	draggingThumbV bool
	draggingThumbH bool
	dragStart      float32 // pointer position where the drag began
	dragStartOff   float32 // offset value at drag start
	hoverV, hoverH bool

	scrollEnabled bool
	background    *render.Color
	borderColor   *render.Color
	borderWidth   float32

	layoutDirty bool

	// owner is the element children see as their parent. Widgets that
	// embed Container (Toolbar, Dialog) set it to themselves so bubbling
	// and overridden methods reach the wrapper, not the embedded value.
	owner Element
}

// hasContainer unwraps widgets that embed Container so tree walks reach
// their children. The embedded Container satisfies it by promotion.
type hasContainer interface{ container() *Container }

func (c *Container) container() *Container { return c }

// containerOf returns the Container behind el, nil when el has none.
func containerOf(el Element) *Container {
	if h, ok := el.(hasContainer); ok {
		return h.container()
	}
	return nil
}

// setOwner registers the wrapper embedding this container.
func (c *Container) setOwner(el Element) { c.owner = el }

// self is the element identity children point at.
func (c *Container) self() Element {
	if c.owner != nil {
		return c.owner
	}
	return c
}

// NewContainer creates an empty scrollable container.
func NewContainer(stringID string) *Container {
	return &Container{
		BaseElement:   NewBaseElement(stringID),
		scrollEnabled: true,
		layoutDirty:   true,
	}
}

// SetBackground fills the container rect with a color before children.
func (c *Container) SetBackground(col render.Color) *Container {
	c.background = &col
	c.RequestRedraw()
	return c
}

// SetBorder draws a border inside the container bounds.
func (c *Container) SetBorder(col render.Color, width float32) *Container {
	c.borderColor = &col
	c.borderWidth = width
	c.RequestRedraw()
	return c
}

// SetScrollEnabled toggles the scroll viewport. Disabled containers clip
// but never scroll and show no scrollbars.
func (c *Container) SetScrollEnabled(v bool) *Container {
	c.scrollEnabled = v
	c.markLayoutDirty()
	return c
}

// ============================================================================
// Children
// ============================================================================

// Children returns a copy of the child list in z-order.
func (c *Container) Children() []Element {
	out := make([]Element, len(c.children))
	copy(out, c.children)
	return out
}

// AddChild appends a child. The child is adopted: parent and window
// pointers are set, and any previous parent releases it.
func (c *Container) AddChild(el Element) {
	c.AddOrMoveChild(el, -1)
}

// AddOrMoveChild inserts the child at index (-1 appends). If the child is
// already in this container it is relocated without re-adding; if it
// belongs to another container it is removed there first.
func (c *Container) AddOrMoveChild(el Element, index int) {
	if el == nil || el == c.self() {
		return
	}
	if cur := indexOfChild(c.children, el); cur >= 0 {
		if index < 0 || index >= len(c.children) {
			index = len(c.children) - 1
		}
		if cur == index {
			return
		}
		c.children = append(c.children[:cur], c.children[cur+1:]...)
		if index > len(c.children) {
			index = len(c.children)
		}
		c.children = append(c.children[:index], append([]Element{el}, c.children[index:]...)...)
		c.markLayoutDirty()
		return
	}
	if prev := containerOf(el.Parent()); prev != nil {
		prev.RemoveChild(el)
	}
	el.SetParent(c.self())
	el.SetWindow(c.Window())
	if index < 0 || index >= len(c.children) {
		c.children = append(c.children, el)
	} else {
		c.children = append(c.children[:index], append([]Element{el}, c.children[index:]...)...)
	}
	c.markLayoutDirty()
}

// RemoveChild detaches the child, clearing its parent pointer.
func (c *Container) RemoveChild(el Element) bool {
	i := indexOfChild(c.children, el)
	if i < 0 {
		return false
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
	el.SetParent(nil)
	el.SetWindow(nil)
	if c.layout != nil {
		c.layout.RemoveElement(el)
	}
	c.markLayoutDirty()
	return true
}

// ClearChildren detaches every child.
func (c *Container) ClearChildren() {
	for _, ch := range c.children {
		ch.SetParent(nil)
		ch.SetWindow(nil)
		if c.layout != nil {
			c.layout.RemoveElement(ch)
		}
	}
	c.children = c.children[:0]
	c.markLayoutDirty()
}

// FindChildByID returns the first child (depth-first) with the string id.
func (c *Container) FindChildByID(stringID string) Element {
	for _, ch := range c.children {
		if ch.StringID() == stringID {
			return ch
		}
		if sub := containerOf(ch); sub != nil {
			if found := sub.FindChildByID(stringID); found != nil {
				return found
			}
		}
	}
	return nil
}

func indexOfChild(children []Element, el Element) int {
	for i, ch := range children {
		if ch == el {
			return i
		}
	}
	return -1
}

// SetWindow attaches the whole subtree.
func (c *Container) SetWindow(w *Window) {
	c.BaseElement.SetWindow(w)
	for _, ch := range c.children {
		ch.SetWindow(w)
	}
}

// ============================================================================
// Layout
// ============================================================================

// SetLayout attaches a layout. Passing nil detaches.
func (c *Container) SetLayout(l Layout) {
	c.layout = l
	c.markLayoutDirty()
}

// Layout returns the attached layout, nil when none.
func (c *Container) Layout() Layout { return c.layout }

func (c *Container) markLayoutDirty() {
	c.layoutDirty = true
	if c.layout != nil {
		c.layout.Invalidate()
	}
	c.RequestRedraw()
}

// LayoutDirty reports whether UpdateLayout must run before render.
func (c *Container) LayoutDirty() bool {
	if c.layoutDirty {
		return true
	}
	return c.layout != nil && c.layout.Dirty()
}

// UpdateLayout runs the attached layout against the current content area,
// recomputes the content extent and scroll ranges, then recurses into
// child containers. Scroll offsets are preserved and clamped.
func (c *Container) UpdateLayout() {
	// Scrollbar visibility feeds the content area which feeds layout; two
	// passes settle the common case of a scrollbar appearing.
	for pass := 0; pass < 2; pass++ {
		content := c.ContentArea()
		if c.layout != nil {
			c.layout.PerformLayout(render.Rect{Width: content.Width, Height: content.Height})
		}
		c.recomputeContentExtent()
		c.updateScrollRanges(content)
	}
	c.layoutDirty = false
	for _, ch := range c.children {
		if sub := containerOf(ch); sub != nil {
			sub.UpdateLayout()
		}
	}
}

func (c *Container) recomputeContentExtent() {
	var w, h float32
	for _, ch := range c.children {
		if !ch.Visible() {
			continue
		}
		b := ch.Bounds()
		m := ch.Margin()
		w = max(w, b.Right()+m.Right)
		h = max(h, b.Bottom()+m.Bottom)
	}
	c.contentWidth = w
	c.contentHeight = h
}

func (c *Container) updateScrollRanges(content render.Rect) {
	if !c.scrollEnabled {
		c.vVisible, c.hVisible = false, false
		c.vMax, c.hMax = 0, 0
		c.vOffset, c.hOffset = 0, 0
		return
	}
	c.vVisible = c.contentHeight > content.Height
	c.hVisible = c.contentWidth > content.Width
	c.vMax = max(0, c.contentHeight-content.Height)
	c.hMax = max(0, c.contentWidth-content.Width)
	c.vOffset = clamp(c.vOffset, 0, c.vMax)
	c.hOffset = clamp(c.hOffset, 0, c.hMax)
}

// ContentArea returns the inner rectangle in container-local coordinates:
// bounds minus padding minus scrollbar reservations.
func (c *Container) ContentArea() render.Rect {
	b := c.Bounds()
	p := c.Padding()
	r := render.Rect{
		X:      p.Left,
		Y:      p.Top,
		Width:  b.Width - p.Horizontal(),
		Height: b.Height - p.Vertical(),
	}
	if c.vVisible {
		r.Width -= scrollbarThickness
	}
	if c.hVisible {
		r.Height -= scrollbarThickness
	}
	r.Width = max(0, r.Width)
	r.Height = max(0, r.Height)
	return r
}

// ContentSize returns the extent of the children.
func (c *Container) ContentSize() render.Size {
	return render.Size{Width: c.contentWidth, Height: c.contentHeight}
}

// ============================================================================
// Scrolling
// ============================================================================

// ScrollOffset implements scroller.
func (c *Container) ScrollOffset() (float32, float32) {
	return c.hOffset, c.vOffset
}

// ScrollBy shifts the viewport, clamping to the valid range. Reports
// whether either offset changed.
func (c *Container) ScrollBy(dx, dy float32) bool {
	oldH, oldV := c.hOffset, c.vOffset
	c.hOffset = clamp(c.hOffset+dx, 0, c.hMax)
	c.vOffset = clamp(c.vOffset+dy, 0, c.vMax)
	changed := c.hOffset != oldH || c.vOffset != oldV
	if changed {
		c.RequestRedraw()
	}
	return changed
}

// ScrollVertical shifts the vertical offset by delta.
func (c *Container) ScrollVertical(delta float32) { c.ScrollBy(0, delta) }

// ScrollHorizontal shifts the horizontal offset by delta.
func (c *Container) ScrollHorizontal(delta float32) { c.ScrollBy(delta, 0) }

// SetVerticalScrollPosition sets the absolute vertical offset, clamped.
func (c *Container) SetVerticalScrollPosition(pos float32) {
	c.vOffset = clamp(pos, 0, c.vMax)
	c.RequestRedraw()
}

// SetHorizontalScrollPosition sets the absolute horizontal offset, clamped.
func (c *Container) SetHorizontalScrollPosition(pos float32) {
	c.hOffset = clamp(pos, 0, c.hMax)
	c.RequestRedraw()
}

// VerticalScrollPosition returns the current vertical offset.
func (c *Container) VerticalScrollPosition() float32 { return c.vOffset }

// HorizontalScrollPosition returns the current horizontal offset.
func (c *Container) HorizontalScrollPosition() float32 { return c.hOffset }

func (c *Container) canScrollVertical() bool   { return c.scrollEnabled && c.vMax > 0 }
func (c *Container) canScrollHorizontal() bool { return c.scrollEnabled && c.hMax > 0 }

// ============================================================================
// Hit Testing
// ============================================================================

// FindElementAtPoint returns the deepest element under the point, given in
// container-content coordinates before scrolling. Children are tested
// topmost first. Returns nil when the point hits only the container.
func (c *Container) FindElementAtPoint(x, y float32) Element {
	sx := x + c.hOffset
	sy := y + c.vOffset
	for i := len(c.children) - 1; i >= 0; i-- {
		ch := c.children[i]
		if !ch.Visible() || !ch.Contains(sx, sy) {
			continue
		}
		if sub := containerOf(ch); sub != nil {
			b := sub.Bounds()
			p := sub.Padding()
			if deeper := sub.FindElementAtPoint(sx-b.X-p.Left, sy-b.Y-p.Top); deeper != nil {
				return deeper
			}
		}
		return ch
	}
	return nil
}

// chainAt appends the children along the hit path, deepest last. The
// container itself is appended by the caller.
func (c *Container) chainAt(x, y float32, chain []Element) []Element {
	sx := x + c.hOffset
	sy := y + c.vOffset
	for i := len(c.children) - 1; i >= 0; i-- {
		ch := c.children[i]
		if !ch.Visible() || !ch.Contains(sx, sy) {
			continue
		}
		chain = append(chain, ch)
		if sub := containerOf(ch); sub != nil {
			b := sub.Bounds()
			p := sub.Padding()
			chain = sub.chainAt(sx-b.X-p.Left, sy-b.Y-p.Top, chain)
		}
		return chain
	}
	return chain
}

// localPoint converts window coordinates into this container's content
// space (pre-scroll).
func (c *Container) localPoint(wx, wy float32) (float32, float32) {
	origin := c.WindowPoint()
	p := c.Padding()
	return wx - origin.X - p.Left, wy - origin.Y - p.Top
}

// ============================================================================
// Rendering
// ============================================================================

// Render draws background, border, children clipped to the content area
// (shifted by scroll), then scrollbars.
func (c *Container) Render(ctx render.Context) {
	b := c.Bounds()
	if c.background != nil {
		ctx.SetFillColor(*c.background)
		ctx.FillRectangle(0, 0, b.Width, b.Height)
	}
	if c.borderColor != nil && c.borderWidth > 0 {
		ctx.SetStrokeColor(*c.borderColor)
		ctx.SetStrokeWidth(c.borderWidth)
		ctx.DrawRectangle(0, 0, b.Width, b.Height)
	}

	content := c.ContentArea()
	ctx.PushState()
	ctx.ClipRect(content.X, content.Y, content.Width, content.Height)
	ctx.Translate(content.X-c.hOffset, content.Y-c.vOffset)
	for _, ch := range c.children {
		if !ch.Visible() {
			continue
		}
		cb := ch.Bounds()
		ctx.PushState()
		ctx.Translate(cb.X, cb.Y)
		ch.Render(ctx)
		ctx.PopState()
	}
	ctx.PopState()

	c.renderScrollbars(ctx, content)
}

func (c *Container) renderScrollbars(ctx render.Context, content render.Rect) {
	track := render.Color{R: 235, G: 235, B: 235, A: 255}
	thumb := render.Color{R: 170, G: 170, B: 170, A: 255}
	thumbHot := render.Color{R: 120, G: 120, B: 120, A: 255}

	if c.vVisible {
		tr := c.verticalTrackRect(content)
		ctx.SetFillColor(track)
		ctx.FillRectangle(tr.X, tr.Y, tr.Width, tr.Height)
		th := c.verticalThumbRect(content)
		col := thumb
		if c.hoverV || c.draggingThumbV {
			col = thumbHot
		}
		ctx.SetFillColor(col)
		ctx.FillRoundedRectangle(th.X+2, th.Y, th.Width-4, th.Height, (th.Width-4)/2)
	}
	if c.hVisible {
		tr := c.horizontalTrackRect(content)
		ctx.SetFillColor(track)
		ctx.FillRectangle(tr.X, tr.Y, tr.Width, tr.Height)
		th := c.horizontalThumbRect(content)
		col := thumb
		if c.hoverH || c.draggingThumbH {
			col = thumbHot
		}
		ctx.SetFillColor(col)
		ctx.FillRoundedRectangle(th.X, th.Y+2, th.Width, th.Height-4, (th.Height-4)/2)
	}
}

func (c *Container) verticalTrackRect(content render.Rect) render.Rect {
	return render.Rect{
		X:      content.X + content.Width,
		Y:      content.Y,
		Width:  scrollbarThickness,
		Height: content.Height,
	}
}

func (c *Container) verticalThumbRect(content render.Rect) render.Rect {
	track := c.verticalTrackRect(content)
	if c.contentHeight <= 0 {
		return track
	}
	h := max(scrollbarMinThumb, track.Height*content.Height/c.contentHeight)
	travel := track.Height - h
	var y float32
	if c.vMax > 0 {
		y = travel * c.vOffset / c.vMax
	}
	return render.Rect{X: track.X, Y: track.Y + y, Width: track.Width, Height: h}
}

func (c *Container) horizontalTrackRect(content render.Rect) render.Rect {
	return render.Rect{
		X:      content.X,
		Y:      content.Y + content.Height,
		Width:  content.Width,
		Height: scrollbarThickness,
	}
}

func (c *Container) horizontalThumbRect(content render.Rect) render.Rect {
	track := c.horizontalTrackRect(content)
	if c.contentWidth <= 0 {
		return track
	}
	w := max(scrollbarMinThumb, track.Width*content.Width/c.contentWidth)
	travel := track.Width - w
	var x float32
	if c.hMax > 0 {
		x = travel * c.hOffset / c.hMax
	}
	return render.Rect{X: track.X + x, Y: track.Y, Width: w, Height: track.Height}
}

// ============================================================================
// Events
// ============================================================================

// OnEvent handles scrollbar interaction and wheel scrolling. Event X/Y are
// container-local (relative to the bounds origin).
func (c *Container) OnEvent(ev *Event) bool {
	content := c.ContentArea()
	switch ev.Type {
	case EventMouseDown:
		if ev.Button != ButtonLeft {
			return false
		}
		return c.onScrollbarDown(ev, content)
	case EventMouseMove:
		if c.draggingThumbV {
			c.dragVertical(ev.Y, content)
			return true
		}
		if c.draggingThumbH {
			c.dragHorizontal(ev.X, content)
			return true
		}
		c.updateScrollbarHover(ev.X, ev.Y, content)
		return false
	case EventMouseUp:
		if c.draggingThumbV || c.draggingThumbH {
			c.draggingThumbV = false
			c.draggingThumbH = false
			c.RequestRedraw()
			return true
		}
		return false
	case EventMouseLeave:
		if c.hoverV || c.hoverH {
			c.hoverV, c.hoverH = false, false
			c.RequestRedraw()
		}
		return false
	case EventMouseWheel:
		if c.canScrollVertical() {
			return c.ScrollBy(0, -ev.WheelDelta*wheelScrollStep)
		}
		return false
	case EventMouseWheelHorizontal:
		if c.canScrollHorizontal() {
			return c.ScrollBy(-ev.WheelDelta*wheelScrollStep, 0)
		}
		return false
	}
	return false
}

func (c *Container) onScrollbarDown(ev *Event, content render.Rect) bool {
	pt := render.Point{X: ev.X, Y: ev.Y}
	if c.vVisible && c.verticalTrackRect(content).Contains(pt) {
		th := c.verticalThumbRect(content)
		if th.Contains(pt) {
			c.draggingThumbV = true
			c.dragStart = ev.Y
			c.dragStartOff = c.vOffset
		} else if ev.Y < th.Y {
			// Track click pages by the viewport size.
			c.ScrollBy(0, -content.Height)
		} else {
			c.ScrollBy(0, content.Height)
		}
		return true
	}
	if c.hVisible && c.horizontalTrackRect(content).Contains(pt) {
		th := c.horizontalThumbRect(content)
		if th.Contains(pt) {
			c.draggingThumbH = true
			c.dragStart = ev.X
			c.dragStartOff = c.hOffset
		} else if ev.X < th.X {
			c.ScrollBy(-content.Width, 0)
		} else {
			c.ScrollBy(content.Width, 0)
		}
		return true
	}
	return false
}

func (c *Container) dragVertical(y float32, content render.Rect) {
	track := c.verticalTrackRect(content)
	th := c.verticalThumbRect(content)
	travel := track.Height - th.Height
	if travel <= 0 {
		return
	}
	delta := (y - c.dragStart) * c.vMax / travel
	c.vOffset = clamp(c.dragStartOff+delta, 0, c.vMax)
	c.RequestRedraw()
}

func (c *Container) dragHorizontal(x float32, content render.Rect) {
	track := c.horizontalTrackRect(content)
	th := c.horizontalThumbRect(content)
	travel := track.Width - th.Width
	if travel <= 0 {
		return
	}
	delta := (x - c.dragStart) * c.hMax / travel
	c.hOffset = clamp(c.dragStartOff+delta, 0, c.hMax)
	c.RequestRedraw()
}

func (c *Container) updateScrollbarHover(x, y float32, content render.Rect) {
	pt := render.Point{X: x, Y: y}
	hv := c.vVisible && c.verticalTrackRect(content).Contains(pt)
	hh := c.hVisible && c.horizontalTrackRect(content).Contains(pt)
	if hv != c.hoverV || hh != c.hoverH {
		c.hoverV, c.hoverH = hv, hh
		c.RequestRedraw()
	}
}
