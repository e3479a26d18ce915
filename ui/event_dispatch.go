package ui

import (
	"time"

	"github.com/chewxy/math32"
)

// ============================================================================
// Event Dispatcher
// ============================================================================

// Dispatcher routes events through the element tree: hit testing, hover
// enter/leave chains, capture/target/bubble propagation, focus transfer,
// press tracking and click counting.
type Dispatcher struct {
	window *Window

	hoveredChain []Element
	focused      Element
	pressed      Element
	pressedChain []Element

	lastClickTime time.Time
	lastClickX    float32
	lastClickY    float32
	clickCount    int

	doubleClickTime time.Duration
	doubleClickDist float32
}

// NewDispatcher creates a dispatcher for the window.
func NewDispatcher(w *Window) *Dispatcher {
	return &Dispatcher{
		window:          w,
		doubleClickTime: 500 * time.Millisecond,
		doubleClickDist: 5,
	}
}

// Focused returns the element holding keyboard focus, nil when none.
func (d *Dispatcher) Focused() Element { return d.focused }

// SetFocus transfers keyboard focus. Passing nil clears focus.
func (d *Dispatcher) SetFocus(el Element) {
	if d.focused == el {
		return
	}
	if d.focused != nil {
		d.focused.SetFocused(false)
	}
	d.focused = el
	if el != nil {
		el.SetFocused(true)
	}
}

// clearElement drops any state pointing at a detached element.
func (d *Dispatcher) clearElement(el Element) {
	if d.focused == el {
		d.focused = nil
	}
	if d.pressed == el {
		d.pressed = nil
		d.pressedChain = nil
	}
}

// ============================================================================
// Mouse
// ============================================================================

// DispatchMouse routes one mouse event. WindowX/WindowY must be set; the
// dispatcher fills X/Y per element.
func (d *Dispatcher) DispatchMouse(ev *Event) bool {
	chain := d.window.chainAt(ev.WindowX, ev.WindowY)

	switch ev.Type {
	case EventMouseMove:
		d.updateHoverChain(chain, ev)
		if d.pressed != nil {
			// Pressed elements capture moves for drag behavior.
			return d.deliverTo(d.pressed, ev, PhaseTarget)
		}
		return d.propagate(chain, ev)

	case EventMouseDown:
		d.countClick(ev)
		d.transferFocusForPress(chain)
		handled, consumer := d.propagateTracking(chain, ev)
		d.pressed = consumer
		if d.pressed == nil && len(chain) > 0 {
			d.pressed = chain[len(chain)-1]
		}
		d.pressedChain = chain
		return handled

	case EventMouseUp:
		ev.ClickCount = d.clickCount
		if d.pressed != nil {
			target := d.pressed
			d.pressed = nil
			d.pressedChain = nil
			if d.deliverTo(target, ev, PhaseTarget) {
				return true
			}
			return d.bubbleFrom(target, ev)
		}
		return d.propagate(chain, ev)

	case EventMouseWheel, EventMouseWheelHorizontal:
		// Deepest scrollable consumer wins; unconsumed wheel bubbles.
		for i := len(chain) - 1; i >= 0; i-- {
			if d.deliverTo(chain[i], ev, PhaseTarget) {
				return true
			}
		}
		return false

	case EventMouseLeave:
		d.updateHoverChain(nil, ev)
		return true
	}
	return d.propagate(chain, ev)
}

// countClick updates the single/double/triple click counter from the
// press time and position.
func (d *Dispatcher) countClick(ev *Event) {
	now := time.Now()
	dist := math32.Hypot(ev.WindowX-d.lastClickX, ev.WindowY-d.lastClickY)
	if now.Sub(d.lastClickTime) <= d.doubleClickTime && dist <= d.doubleClickDist {
		d.clickCount++
		if d.clickCount > 3 {
			d.clickCount = 1
		}
	} else {
		d.clickCount = 1
	}
	d.lastClickTime = now
	d.lastClickX = ev.WindowX
	d.lastClickY = ev.WindowY
	ev.ClickCount = d.clickCount
}

// transferFocusForPress moves focus to the deepest focus-accepting element
// in the chain. Pressing empty space clears focus.
func (d *Dispatcher) transferFocusForPress(chain []Element) {
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].AcceptsFocus() {
			d.SetFocus(chain[i])
			return
		}
	}
	d.SetFocus(nil)
}

// updateHoverChain diffs the previous and current hover chains, sending
// leave events deepest-first and enter events root-first.
func (d *Dispatcher) updateHoverChain(chain []Element, src *Event) {
	common := 0
	for common < len(chain) && common < len(d.hoveredChain) && chain[common] == d.hoveredChain[common] {
		common++
	}
	for i := len(d.hoveredChain) - 1; i >= common; i-- {
		leave := acquireEvent()
		leave.Type = EventMouseLeave
		leave.WindowX, leave.WindowY = src.WindowX, src.WindowY
		leave.GlobalX, leave.GlobalY = src.GlobalX, src.GlobalY
		d.deliverTo(d.hoveredChain[i], leave, PhaseTarget)
		releaseEvent(leave)
	}
	for i := common; i < len(chain); i++ {
		enter := acquireEvent()
		enter.Type = EventMouseEnter
		enter.WindowX, enter.WindowY = src.WindowX, src.WindowY
		enter.GlobalX, enter.GlobalY = src.GlobalX, src.GlobalY
		d.deliverTo(chain[i], enter, PhaseTarget)
		releaseEvent(enter)
	}
	d.hoveredChain = append(d.hoveredChain[:0], chain...)
}

// propagate runs the three-phase walk: capture root→target, target, then
// bubble target→root. Returns true when any handler consumed the event.
func (d *Dispatcher) propagate(chain []Element, ev *Event) bool {
	handled, _ := d.propagateTracking(chain, ev)
	return handled
}

// propagateTracking is propagate plus the identity of the consumer.
func (d *Dispatcher) propagateTracking(chain []Element, ev *Event) (bool, Element) {
	if len(chain) == 0 {
		return false, nil
	}
	for i := 0; i < len(chain)-1; i++ {
		if d.deliverTo(chain[i], ev, PhaseCapture) {
			return true, chain[i]
		}
	}
	target := chain[len(chain)-1]
	if d.deliverTo(target, ev, PhaseTarget) {
		return true, target
	}
	for i := len(chain) - 2; i >= 0; i-- {
		if d.deliverTo(chain[i], ev, PhaseBubble) {
			return true, chain[i]
		}
	}
	return false, nil
}

// bubbleFrom walks ancestors of el delivering in bubble phase.
func (d *Dispatcher) bubbleFrom(el Element, ev *Event) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if d.deliverTo(p, ev, PhaseBubble) {
			return true
		}
	}
	return false
}

// deliverTo invokes OnEvent with element-local coordinates.
func (d *Dispatcher) deliverTo(el Element, ev *Event, phase EventPhase) bool {
	if !el.Enabled() {
		return false
	}
	if ev.IsMouse() {
		origin := el.WindowPoint()
		ev.X = ev.WindowX - origin.X
		ev.Y = ev.WindowY - origin.Y
	}
	ev.Phase = phase
	if el.OnEvent(ev) {
		ev.Handled = true
		return true
	}
	return ev.Handled
}

// ============================================================================
// Keyboard
// ============================================================================

// DispatchKey routes a key event to the focused element, bubbling up the
// ancestor chain when unconsumed. Tab traverses focus.
func (d *Dispatcher) DispatchKey(ev *Event) bool {
	if ev.Type == EventKeyDown && ev.VirtualKey == KeyTab {
		if d.focused == nil || !consumesTab(d.focused) {
			d.TraverseFocus(!ev.Shift)
			return true
		}
	}
	if d.focused == nil {
		return false
	}
	if d.deliverTo(d.focused, ev, PhaseTarget) {
		return true
	}
	return d.bubbleFrom(d.focused, ev)
}

// consumesTab reports whether the focused element wants literal tab input.
func consumesTab(el Element) bool {
	t, ok := el.(interface{ WantsTab() bool })
	return ok && t.WantsTab()
}

// TraverseFocus moves focus to the next (or previous) focusable element in
// depth-first order over the current child order, wrapping around.
func (d *Dispatcher) TraverseFocus(forward bool) {
	stops := collectFocusable(d.window.eventRoot())
	if len(stops) == 0 {
		d.SetFocus(nil)
		return
	}
	cur := -1
	for i, el := range stops {
		if el == d.focused {
			cur = i
			break
		}
	}
	var next int
	if cur < 0 {
		if forward {
			next = 0
		} else {
			next = len(stops) - 1
		}
	} else if forward {
		next = (cur + 1) % len(stops)
	} else {
		next = (cur - 1 + len(stops)) % len(stops)
	}
	d.SetFocus(stops[next])
}

func collectFocusable(root Element) []Element {
	var out []Element
	var walk func(el Element)
	walk = func(el Element) {
		if !el.Visible() {
			return
		}
		if el.AcceptsFocus() {
			out = append(out, el)
		}
		if c := containerOf(el); c != nil {
			for _, ch := range c.children {
				walk(ch)
			}
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}
