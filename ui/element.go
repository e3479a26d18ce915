// Package ui provides a retained-mode element tree: containers with
// scrolling, three layout engines (box, grid, flex), the standard widget
// set, and modal dialogs. Elements draw through render.Context and receive
// platform events through a Window's dispatcher.
//
// All element methods run on the main thread. Property setters are guarded
// so background timers may update properties, but tree mutation and event
// dispatch are main-thread only.
package ui

import (
	"sync"
	"sync/atomic"

	"github.com/ultracanvas/ultracanvas/render"
)

// ElementID uniquely identifies an element. IDs are stable for the life of
// the element and monotonically increasing.
type ElementID uint64

var nextElementID atomic.Uint64

func newElementID() ElementID {
	return ElementID(nextElementID.Add(1))
}

// Insets is edge spacing in left/top/right/bottom order.
type Insets struct {
	Left, Top, Right, Bottom float32
}

// Horizontal returns the combined left and right inset.
func (i Insets) Horizontal() float32 { return i.Left + i.Right }

// Vertical returns the combined top and bottom inset.
func (i Insets) Vertical() float32 { return i.Top + i.Bottom }

// UniformInsets returns equal insets on all four edges.
func UniformInsets(v float32) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Element is the node contract for the tree. Widgets embed *BaseElement
// for the common state and override Render, OnEvent and AcceptsFocus.
type Element interface {
	StringID() string
	NumericID() ElementID

	// Bounds are in parent-content coordinates (window coordinates for a
	// top-level element).
	Bounds() render.Rect
	SetBounds(x, y, w, h float32)
	SetPosition(x, y float32)
	SetSize(w, h float32)

	Parent() Element
	SetParent(p Element)
	Window() *Window
	SetWindow(w *Window)

	Visible() bool
	Enabled() bool
	Focused() bool
	SetFocused(focused bool)
	AcceptsFocus() bool

	Padding() Insets
	Margin() Insets

	PreferredSize() render.Size
	MinSize() render.Size
	MaxSize() render.Size

	// WindowPoint converts local (0,0) into window coordinates by walking
	// the parent chain, applying scroll offsets.
	WindowPoint() render.Point
	Contains(x, y float32) bool

	Render(ctx render.Context)
	OnEvent(ev *Event) bool

	RequestRedraw()
	InvalidateLayout()
}

// scroller is implemented by elements that shift their children by a
// scroll offset (Container). The dispatcher and coordinate walk use it.
type scroller interface {
	ScrollOffset() (x, y float32)
	ScrollBy(dx, dy float32) bool
}

// BaseElement carries identity, geometry and the common flags. It
// implements Element with default behavior; concrete widgets embed a
// pointer to it.
type BaseElement struct {
	mu sync.RWMutex

	stringID  string
	numericID ElementID

	bounds  render.Rect
	padding Insets
	margin  Insets

	visible   bool
	enabled   bool
	focusable bool
	focused   bool

	preferredSize *render.Size
	minSize       *render.Size
	maxSize       *render.Size

	parent Element
	window *Window
}

var _ Element = (*BaseElement)(nil)

// NewBaseElement creates the common element state. The string id is for
// application lookup; it need not be unique.
func NewBaseElement(stringID string) *BaseElement {
	return &BaseElement{
		stringID:  stringID,
		numericID: newElementID(),
		visible:   true,
		enabled:   true,
	}
}

// StringID returns the application-assigned identifier.
func (e *BaseElement) StringID() string { return e.stringID }

// NumericID returns the unique element id.
func (e *BaseElement) NumericID() ElementID { return e.numericID }

// ============================================================================
// Geometry
// ============================================================================

// Bounds returns the element rectangle in parent-content coordinates.
func (e *BaseElement) Bounds() render.Rect {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bounds
}

// SetBounds moves and resizes the element, invalidating the parent layout.
func (e *BaseElement) SetBounds(x, y, w, h float32) {
	e.mu.Lock()
	changed := e.bounds != (render.Rect{X: x, Y: y, Width: w, Height: h})
	e.bounds = render.Rect{X: x, Y: y, Width: w, Height: h}
	e.mu.Unlock()
	if changed {
		e.InvalidateLayout()
	}
}

// setBoundsDirect writes geometry without invalidating the parent layout.
// Layouts use it when applying computed geometry, which must not re-dirty
// the layout that produced it.
func (e *BaseElement) setBoundsDirect(r render.Rect) {
	e.mu.Lock()
	e.bounds = r
	e.mu.Unlock()
}

// SetPosition moves the element without resizing.
func (e *BaseElement) SetPosition(x, y float32) {
	b := e.Bounds()
	e.SetBounds(x, y, b.Width, b.Height)
}

// SetSize resizes the element in place.
func (e *BaseElement) SetSize(w, h float32) {
	b := e.Bounds()
	e.SetBounds(b.X, b.Y, w, h)
}

// SetPadding sets inner spacing.
func (e *BaseElement) SetPadding(p Insets) {
	e.mu.Lock()
	e.padding = p
	e.mu.Unlock()
	e.InvalidateLayout()
}

// Padding returns inner spacing.
func (e *BaseElement) Padding() Insets {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.padding
}

// SetMargin sets outer spacing consumed by layouts.
func (e *BaseElement) SetMargin(m Insets) {
	e.mu.Lock()
	e.margin = m
	e.mu.Unlock()
	e.InvalidateLayout()
}

// Margin returns outer spacing.
func (e *BaseElement) Margin() Insets {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.margin
}

// SetPreferredSize sets an explicit preferred size hint. A nil-equivalent
// zero hint is cleared with ClearSizeHints.
func (e *BaseElement) SetPreferredSize(w, h float32) {
	e.mu.Lock()
	e.preferredSize = &render.Size{Width: w, Height: h}
	e.mu.Unlock()
	e.InvalidateLayout()
}

// SetMinSize sets the minimum size hint.
func (e *BaseElement) SetMinSize(w, h float32) {
	e.mu.Lock()
	e.minSize = &render.Size{Width: w, Height: h}
	e.mu.Unlock()
	e.InvalidateLayout()
}

// SetMaxSize sets the maximum size hint.
func (e *BaseElement) SetMaxSize(w, h float32) {
	e.mu.Lock()
	e.maxSize = &render.Size{Width: w, Height: h}
	e.mu.Unlock()
	e.InvalidateLayout()
}

// ClearSizeHints drops all explicit size hints.
func (e *BaseElement) ClearSizeHints() {
	e.mu.Lock()
	e.preferredSize = nil
	e.minSize = nil
	e.maxSize = nil
	e.mu.Unlock()
	e.InvalidateLayout()
}

// PreferredSize returns the explicit hint, or current bounds size.
func (e *BaseElement) PreferredSize() render.Size {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.preferredSize != nil {
		return *e.preferredSize
	}
	return render.Size{Width: e.bounds.Width, Height: e.bounds.Height}
}

// MinSize returns the explicit hint, or zero.
func (e *BaseElement) MinSize() render.Size {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.minSize != nil {
		return *e.minSize
	}
	return render.Size{}
}

// MaxSize returns the explicit hint, or an unbounded size.
func (e *BaseElement) MaxSize() render.Size {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.maxSize != nil {
		return *e.maxSize
	}
	return render.Size{Width: unbounded, Height: unbounded}
}

const unbounded float32 = 1 << 24

// ============================================================================
// Tree Pointers
// ============================================================================

// Parent returns the owning element, nil for roots.
func (e *BaseElement) Parent() Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// SetParent is called by containers when adopting or releasing a child.
func (e *BaseElement) SetParent(p Element) {
	e.mu.Lock()
	e.parent = p
	e.mu.Unlock()
}

// Window returns the owning window, nil when detached.
func (e *BaseElement) Window() *Window {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.window
}

// SetWindow is called when the subtree is attached to a window.
func (e *BaseElement) SetWindow(w *Window) {
	e.mu.Lock()
	e.window = w
	e.mu.Unlock()
}

// WindowPoint walks the parent chain summing origins, content insets and
// scroll offsets.
func (e *BaseElement) WindowPoint() render.Point {
	b := e.Bounds()
	pt := render.Point{X: b.X, Y: b.Y}
	for p := e.Parent(); p != nil; p = p.Parent() {
		pb := p.Bounds()
		pad := p.Padding()
		pt.X += pb.X + pad.Left
		pt.Y += pb.Y + pad.Top
		if s, ok := p.(scroller); ok {
			sx, sy := s.ScrollOffset()
			pt.X -= sx
			pt.Y -= sy
		}
	}
	return pt
}

// ============================================================================
// Flags
// ============================================================================

// Visible reports whether the element participates in layout and render.
func (e *BaseElement) Visible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.visible
}

// SetVisible shows or hides the element.
func (e *BaseElement) SetVisible(v bool) {
	e.mu.Lock()
	changed := e.visible != v
	e.visible = v
	e.mu.Unlock()
	if changed {
		e.InvalidateLayout()
	}
}

// Enabled reports whether the element receives events.
func (e *BaseElement) Enabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetEnabled enables or disables event delivery.
func (e *BaseElement) SetEnabled(v bool) {
	e.mu.Lock()
	e.enabled = v
	e.mu.Unlock()
	e.RequestRedraw()
}

// Focused reports keyboard focus.
func (e *BaseElement) Focused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focused
}

// SetFocused updates the focus flag. The dispatcher owns focus transfer;
// this only records it.
func (e *BaseElement) SetFocused(f bool) {
	e.mu.Lock()
	e.focused = f
	e.mu.Unlock()
	e.RequestRedraw()
}

// SetFocusable marks the element as a keyboard focus stop.
func (e *BaseElement) SetFocusable(v bool) {
	e.mu.Lock()
	e.focusable = v
	e.mu.Unlock()
}

// AcceptsFocus reports whether the element takes keyboard focus.
func (e *BaseElement) AcceptsFocus() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focusable && e.enabled && e.visible
}

// Contains tests a point in parent-content coordinates.
func (e *BaseElement) Contains(x, y float32) bool {
	return e.Bounds().Contains(render.Point{X: x, Y: y})
}

// ============================================================================
// Defaults
// ============================================================================

// Render draws nothing; widgets override.
func (e *BaseElement) Render(ctx render.Context) {}

// OnEvent consumes nothing; widgets override.
func (e *BaseElement) OnEvent(ev *Event) bool { return false }

// RequestRedraw marks the owning window dirty for the next paint cycle.
func (e *BaseElement) RequestRedraw() {
	if w := e.Window(); w != nil {
		w.requestRedraw()
	}
}

// InvalidateLayout marks the nearest ancestor container's layout dirty.
func (e *BaseElement) InvalidateLayout() {
	for p := e.Parent(); p != nil; p = p.Parent() {
		if c := containerOf(p); c != nil {
			c.markLayoutDirty()
			return
		}
	}
	if w := e.Window(); w != nil {
		w.requestLayout()
	}
}
