package ui

import "testing"

type probeRecord struct {
	Type  EventType
	Phase EventPhase
}

// probeElement records every event it sees and consumes the configured
// types.
type probeElement struct {
	*BaseElement
	log        []probeRecord
	consume    map[EventType]bool
	lastClicks int
}

func newProbe(id string) *probeElement {
	return &probeElement{
		BaseElement: NewBaseElement(id),
		consume:     map[EventType]bool{},
	}
}

func (p *probeElement) OnEvent(ev *Event) bool {
	p.log = append(p.log, probeRecord{Type: ev.Type, Phase: ev.Phase})
	if ev.Type == EventMouseDown || ev.Type == EventMouseUp {
		p.lastClicks = ev.ClickCount
	}
	return p.consume[ev.Type]
}

func (p *probeElement) count(t EventType) int {
	n := 0
	for _, r := range p.log {
		if r.Type == t {
			n++
		}
	}
	return n
}

func testWindow(t *testing.T) *Window {
	t.Helper()
	w, err := NewWindow("test", 400, 300, nil)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return w
}

func mouseEvent(typ EventType, x, y float32) *Event {
	return &Event{Type: typ, WindowX: x, WindowY: y, Button: ButtonLeft}
}

func TestDispatcherHoverEnterLeave(t *testing.T) {
	w := testWindow(t)
	a := newProbe("a")
	a.SetBounds(0, 0, 100, 100)
	b := newProbe("b")
	b.SetBounds(200, 0, 100, 100)
	w.Root().AddChild(a)
	w.Root().AddChild(b)

	w.DispatchEvent(mouseEvent(EventMouseMove, 50, 50))
	if a.count(EventMouseEnter) != 1 {
		t.Fatalf("a enter count = %d, want 1", a.count(EventMouseEnter))
	}

	w.DispatchEvent(mouseEvent(EventMouseMove, 250, 50))
	if a.count(EventMouseLeave) != 1 {
		t.Errorf("a leave count = %d, want 1", a.count(EventMouseLeave))
	}
	if b.count(EventMouseEnter) != 1 {
		t.Errorf("b enter count = %d, want 1", b.count(EventMouseEnter))
	}

	// Moving within the same element emits no further enter events.
	w.DispatchEvent(mouseEvent(EventMouseMove, 260, 60))
	if b.count(EventMouseEnter) != 1 {
		t.Errorf("b enter count after second move = %d, want 1", b.count(EventMouseEnter))
	}
}

func TestDispatcherClickCounting(t *testing.T) {
	w := testWindow(t)
	p := newProbe("target")
	p.SetBounds(0, 0, 100, 100)
	w.Root().AddChild(p)

	for i := 1; i <= 3; i++ {
		w.DispatchEvent(mouseEvent(EventMouseDown, 50, 50))
		w.DispatchEvent(mouseEvent(EventMouseUp, 50, 50))
		if p.lastClicks != i {
			t.Fatalf("click %d: count = %d, want %d", i, p.lastClicks, i)
		}
	}

	// A fourth rapid press wraps back to a single click.
	w.DispatchEvent(mouseEvent(EventMouseDown, 50, 50))
	if p.lastClicks != 1 {
		t.Errorf("fourth press count = %d, want 1", p.lastClicks)
	}
}

func TestDispatcherClickCountResetsOnDistance(t *testing.T) {
	w := testWindow(t)
	p := newProbe("target")
	p.SetBounds(0, 0, 300, 100)
	w.Root().AddChild(p)

	w.DispatchEvent(mouseEvent(EventMouseDown, 50, 50))
	w.DispatchEvent(mouseEvent(EventMouseUp, 50, 50))
	w.DispatchEvent(mouseEvent(EventMouseDown, 200, 50))
	if p.lastClicks != 1 {
		t.Errorf("far press count = %d, want 1", p.lastClicks)
	}
}

func TestDispatcherFocusFollowsPress(t *testing.T) {
	w := testWindow(t)
	p := newProbe("field")
	p.SetBounds(0, 0, 100, 100)
	p.SetFocusable(true)
	w.Root().AddChild(p)

	w.DispatchEvent(mouseEvent(EventMouseDown, 50, 50))
	w.DispatchEvent(mouseEvent(EventMouseUp, 50, 50))
	if w.Dispatcher().Focused() != p {
		t.Fatalf("focused = %v, want the pressed element", w.Dispatcher().Focused())
	}
	if !p.Focused() {
		t.Error("element does not report focus")
	}

	// Pressing empty space clears focus.
	w.DispatchEvent(mouseEvent(EventMouseDown, 350, 250))
	if w.Dispatcher().Focused() != nil {
		t.Errorf("focused = %v, want nil", w.Dispatcher().Focused())
	}
	if p.Focused() {
		t.Error("element still reports focus")
	}
}

func TestDispatcherTabTraversal(t *testing.T) {
	w := testWindow(t)
	var probes []*probeElement
	for i := 0; i < 3; i++ {
		p := newProbe("stop")
		p.SetBounds(float32(i)*100, 0, 80, 40)
		p.SetFocusable(true)
		probes = append(probes, p)
		w.Root().AddChild(p)
	}

	tab := &Event{Type: EventKeyDown, VirtualKey: KeyTab}
	w.DispatchEvent(tab)
	if w.Dispatcher().Focused() != probes[0] {
		t.Fatalf("first tab focused %v, want first stop", w.Dispatcher().Focused())
	}

	w.DispatchEvent(&Event{Type: EventKeyDown, VirtualKey: KeyTab})
	if w.Dispatcher().Focused() != probes[1] {
		t.Fatalf("second tab focused %v, want second stop", w.Dispatcher().Focused())
	}

	w.DispatchEvent(&Event{Type: EventKeyDown, VirtualKey: KeyTab, Shift: true})
	if w.Dispatcher().Focused() != probes[0] {
		t.Errorf("shift-tab focused %v, want first stop", w.Dispatcher().Focused())
	}

	// Wrap from the last stop back to the first.
	w.Dispatcher().SetFocus(probes[2])
	w.DispatchEvent(&Event{Type: EventKeyDown, VirtualKey: KeyTab})
	if w.Dispatcher().Focused() != probes[0] {
		t.Errorf("wrap tab focused %v, want first stop", w.Dispatcher().Focused())
	}
}

func TestDispatcherPressedElementCapturesDrag(t *testing.T) {
	w := testWindow(t)
	a := newProbe("a")
	a.SetBounds(0, 0, 100, 100)
	a.consume[EventMouseDown] = true
	b := newProbe("b")
	b.SetBounds(200, 0, 100, 100)
	w.Root().AddChild(a)
	w.Root().AddChild(b)

	w.DispatchEvent(mouseEvent(EventMouseDown, 50, 50))
	w.DispatchEvent(mouseEvent(EventMouseMove, 250, 50))

	if a.count(EventMouseMove) != 1 {
		t.Errorf("pressed element move count = %d, want 1", a.count(EventMouseMove))
	}
	if b.count(EventMouseMove) != 0 {
		t.Errorf("other element move count = %d, want 0", b.count(EventMouseMove))
	}

	// Release goes to the pressed element too, then frees the capture.
	w.DispatchEvent(mouseEvent(EventMouseUp, 250, 50))
	if a.count(EventMouseUp) != 1 {
		t.Errorf("pressed element up count = %d, want 1", a.count(EventMouseUp))
	}
	w.DispatchEvent(mouseEvent(EventMouseMove, 250, 50))
	if b.count(EventMouseMove) != 1 {
		t.Errorf("move after release count = %d, want 1", b.count(EventMouseMove))
	}
}

func TestDispatcherKeyGoesToFocused(t *testing.T) {
	w := testWindow(t)
	p := newProbe("field")
	p.SetBounds(0, 0, 100, 100)
	p.SetFocusable(true)
	w.Root().AddChild(p)

	// No focus, no delivery.
	w.DispatchEvent(&Event{Type: EventKeyDown, VirtualKey: KeyA})
	if p.count(EventKeyDown) != 0 {
		t.Fatalf("unfocused key count = %d, want 0", p.count(EventKeyDown))
	}

	w.Dispatcher().SetFocus(p)
	w.DispatchEvent(&Event{Type: EventKeyDown, VirtualKey: KeyA})
	if p.count(EventKeyDown) != 1 {
		t.Errorf("focused key count = %d, want 1", p.count(EventKeyDown))
	}
}

func TestDispatcherWheelScrollsDeepestScrollable(t *testing.T) {
	w := testWindow(t)
	sc := NewContainer("scroller")
	sc.SetBounds(0, 0, 200, 100)
	sc.SetScrollEnabled(true)
	tall := NewBaseElement("tall")
	tall.SetBounds(0, 0, 100, 500)
	sc.AddChild(tall)
	w.Root().AddChild(sc)
	sc.UpdateLayout()

	ev := mouseEvent(EventMouseWheel, 50, 50)
	ev.WheelDelta = -1
	if !w.DispatchEvent(ev) {
		t.Fatal("wheel over scrollable container not consumed")
	}
	if got := sc.VerticalScrollPosition(); got != wheelScrollStep {
		t.Errorf("offset = %v, want %v", got, wheelScrollStep)
	}
}

func TestDispatcherLocalCoordinates(t *testing.T) {
	w := testWindow(t)
	inner := NewContainer("inner")
	inner.SetBounds(100, 50, 200, 200)
	p := newProbe("leaf")
	p.SetBounds(20, 30, 50, 50)
	inner.AddChild(p)
	w.Root().AddChild(inner)

	p.consume[EventMouseDown] = true
	down := mouseEvent(EventMouseDown, 130, 90)
	w.DispatchEvent(down)
	if down.X != 10 || down.Y != 10 {
		t.Errorf("local point = (%v, %v), want (10, 10)", down.X, down.Y)
	}
}
