package ui

import (
	"fmt"

	"github.com/ultracanvas/ultracanvas/render"
)

// Window is the root of one element tree: it owns the drawing surface,
// the dispatcher, the popup stack and the modal stack. The platform layer
// feeds it events and asks it to render frames.
type Window struct {
	title  string
	width  int
	height int

	surface    *render.Surface
	root       *Container
	dispatcher *Dispatcher

	// popups render above the root in LIFO order (menus, dropdowns).
	popups []Element
	// modals render above popups; only the top modal receives events.
	modals []Element

	dialogs *DialogManager

	background render.Color

	needsRedraw bool
	needsLayout bool
	closed      bool

	// OnClose runs after the window processed a close event.
	OnClose func()
}

// NewWindow creates a window with a software-backed surface. The face
// source feeds text shaping; nil uses fixed metrics.
func NewWindow(title string, width, height int, faces render.FaceSource) (*Window, error) {
	surface, err := render.NewSurface(width, height, faces)
	if err != nil {
		return nil, fmt.Errorf("ui: create window surface: %w", err)
	}
	w := &Window{
		title:       title,
		width:       width,
		height:      height,
		surface:     surface,
		background:  render.White,
		needsRedraw: true,
		needsLayout: true,
	}
	w.root = NewContainer("root")
	w.root.SetScrollEnabled(false)
	w.root.SetWindow(w)
	w.root.setBoundsDirect(render.Rect{Width: float32(width), Height: float32(height)})
	w.dispatcher = NewDispatcher(w)
	w.dialogs = NewDialogManager(w)
	return w, nil
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// Size returns the window dimensions in pixels.
func (w *Window) Size() (int, int) { return w.width, w.height }

// Root returns the root container filling the window.
func (w *Window) Root() *Container { return w.root }

// Dispatcher exposes focus control and event routing.
func (w *Window) Dispatcher() *Dispatcher { return w.dispatcher }

// Surface returns the drawing surface for presentation.
func (w *Window) Surface() *render.Surface { return w.surface }

// Context returns the surface's drawing context. Elements may use it for
// text measurement outside a Render call.
func (w *Window) Context() render.Context { return w.surface.Context() }

// Dialogs returns the window's modal dialog manager.
func (w *Window) Dialogs() *DialogManager { return w.dialogs }

// SetBackground sets the clear color painted before the tree.
func (w *Window) SetBackground(c render.Color) {
	w.background = c
	w.requestRedraw()
}

// Closed reports whether the window received a close event.
func (w *Window) Closed() bool { return w.closed }

func (w *Window) requestRedraw() { w.needsRedraw = true }
func (w *Window) requestLayout() {
	w.needsLayout = true
	w.needsRedraw = true
}

// ============================================================================
// Popups and Modals
// ============================================================================

// ShowPopup places an overlay element above the root. Popups hit-test
// before the root, topmost first. Bounds are window coordinates.
func (w *Window) ShowPopup(el Element) {
	if el == nil {
		return
	}
	el.SetWindow(w)
	w.popups = append(w.popups, el)
	w.requestRedraw()
}

// ClosePopup removes an overlay. Closing a popup also closes any popups
// stacked above it.
func (w *Window) ClosePopup(el Element) {
	for i, p := range w.popups {
		if p == el {
			for _, above := range w.popups[i:] {
				above.SetWindow(nil)
				w.dispatcher.clearElement(above)
			}
			w.popups = w.popups[:i]
			w.requestRedraw()
			return
		}
	}
}

// CloseAllPopups clears the popup stack.
func (w *Window) CloseAllPopups() {
	for _, p := range w.popups {
		p.SetWindow(nil)
		w.dispatcher.clearElement(p)
	}
	w.popups = w.popups[:0]
	w.requestRedraw()
}

// TopPopup returns the topmost popup, nil when none.
func (w *Window) TopPopup() Element {
	if len(w.popups) == 0 {
		return nil
	}
	return w.popups[len(w.popups)-1]
}

// showModal is called by the dialog manager when a dialog becomes
// visible. The top modal blocks all input beneath it.
func (w *Window) showModal(el Element) {
	el.SetWindow(w)
	w.modals = append(w.modals, el)
	w.requestRedraw()
}

// closeModal removes a dialog from the modal stack.
func (w *Window) closeModal(el Element) {
	for i, m := range w.modals {
		if m == el {
			w.modals = append(w.modals[:i], w.modals[i+1:]...)
			m.SetWindow(nil)
			w.dispatcher.clearElement(m)
			w.requestRedraw()
			return
		}
	}
}

// topModal returns the currently blocking dialog, nil when none.
func (w *Window) topModal() Element {
	if len(w.modals) == 0 {
		return nil
	}
	return w.modals[len(w.modals)-1]
}

// eventRoot is the subtree receiving events: top modal, else top popup,
// else the root container.
func (w *Window) eventRoot() Element {
	if m := w.topModal(); m != nil {
		return m
	}
	return w.root
}

// ============================================================================
// Hit Chain
// ============================================================================

// chainAt builds the propagation chain (root-first) for a window point.
// Modals swallow events outside their bounds; popups hit-test above the
// root, topmost first.
func (w *Window) chainAt(wx, wy float32) []Element {
	if m := w.topModal(); m != nil {
		if !m.Contains(wx, wy) {
			// The modal overlay absorbs outside clicks.
			return []Element{m}
		}
		return subtreeChain(m, wx, wy)
	}
	for i := len(w.popups) - 1; i >= 0; i-- {
		p := w.popups[i]
		if p.Visible() && p.Contains(wx, wy) {
			return subtreeChain(p, wx, wy)
		}
	}
	return subtreeChain(w.root, wx, wy)
}

// subtreeChain returns el plus the hit path through its descendants.
func subtreeChain(el Element, wx, wy float32) []Element {
	chain := []Element{el}
	if c := containerOf(el); c != nil {
		lx, ly := c.localPoint(wx, wy)
		chain = c.chainAt(lx, ly, chain)
	}
	return chain
}

// ============================================================================
// Event Entry
// ============================================================================

// DispatchEvent is the platform entry point. Returns true when any
// handler consumed the event.
func (w *Window) DispatchEvent(ev *Event) bool {
	if w.closed {
		return false
	}
	switch {
	case ev.Type == EventWindowResize:
		w.resize(int(ev.X), int(ev.Y))
		return true
	case ev.Type == EventWindowClose:
		w.close()
		return true
	case ev.IsMouse():
		return w.dispatcher.DispatchMouse(ev)
	case ev.IsKeyboard():
		return w.dispatcher.DispatchKey(ev)
	}
	return false
}

func (w *Window) resize(width, height int) {
	if width <= 0 || height <= 0 || (width == w.width && height == w.height) {
		return
	}
	if err := w.surface.Resize(width, height); err != nil {
		logger().Warn("window resize rejected", "width", width, "height", height, "err", err)
		return
	}
	w.width = width
	w.height = height
	w.root.setBoundsDirect(render.Rect{Width: float32(width), Height: float32(height)})
	w.root.markLayoutDirty()
	w.requestLayout()
}

// close cancels any active modals (delivering Cancel results) and marks
// the window closed.
func (w *Window) close() {
	if w.dialogs != nil {
		w.dialogs.CancelAll()
	}
	w.CloseAllPopups()
	w.closed = true
	if w.OnClose != nil {
		w.OnClose()
	}
}

// ============================================================================
// Frame
// ============================================================================

// RenderFrame runs pending layout, draws the tree, popups and modals into
// the staging surface and swaps buffers. Layout always runs before render
// within the same cycle.
func (w *Window) RenderFrame() {
	if w.closed {
		return
	}
	if w.needsLayout || w.root.LayoutDirty() {
		w.root.UpdateLayout()
		w.needsLayout = false
	}
	for _, p := range w.popups {
		if c := containerOf(p); c != nil && c.LayoutDirty() {
			c.UpdateLayout()
		}
	}
	for _, m := range w.modals {
		if c := containerOf(m); c != nil && c.LayoutDirty() {
			c.UpdateLayout()
		}
	}
	if !w.needsRedraw {
		return
	}

	ctx := w.surface.Context()
	ctx.ResetState()
	ctx.SetFillColor(w.background)
	ctx.FillRectangle(0, 0, float32(w.width), float32(w.height))

	w.renderElement(ctx, w.root)
	for _, p := range w.popups {
		if p.Visible() {
			w.renderElement(ctx, p)
		}
	}
	if len(w.modals) > 0 {
		// Dim everything beneath the modal stack.
		ctx.SetFillColor(render.Color{A: 96})
		ctx.FillRectangle(0, 0, float32(w.width), float32(w.height))
		for _, m := range w.modals {
			w.renderElement(ctx, m)
		}
	}

	w.surface.SwapBuffers()
	w.needsRedraw = false
}

func (w *Window) renderElement(ctx render.Context, el Element) {
	b := el.Bounds()
	ctx.PushState()
	ctx.Translate(b.X, b.Y)
	el.Render(ctx)
	ctx.PopState()
}
