package ui

import "sync"

// EventType discriminates the event union.
type EventType int

const (
	EventNone EventType = iota

	// Window events
	EventWindowFocus
	EventWindowBlur
	EventWindowResize
	EventWindowMove
	EventWindowClose
	EventWindowDestroy

	// Mouse events
	EventMouseMove
	EventMouseEnter
	EventMouseLeave
	EventMouseDown
	EventMouseUp
	EventMouseDoubleClick
	EventMouseWheel
	EventMouseWheelHorizontal

	// Keyboard events
	EventKeyDown
	EventKeyUp
	EventKeyChar
)

// MouseButton identifies which button a mouse event refers to.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Virtual key codes for the keys dispatch logic cares about. The platform
// layer maps native codes onto these; unmapped keys arrive as KeyUnknown
// with the native code preserved.
type Key int

const (
	KeyUnknown Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyShift
	KeyCtrl
	KeyAlt
	KeyMeta
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyF3
)

// EventPhase is the propagation phase the handler sees.
type EventPhase int

const (
	PhaseCapture EventPhase = iota
	PhaseTarget
	PhaseBubble
)

// Event is the tagged union delivered by the platform layer. X/Y are in
// the coordinate space of the element currently handling the event;
// WindowX/WindowY stay in window space; GlobalX/GlobalY in screen space.
type Event struct {
	Type EventType

	X, Y             float32
	WindowX, WindowY float32
	GlobalX, GlobalY float32

	Button     MouseButton
	WheelDelta float32
	ClickCount int // 1 single, 2 double, 3 triple; valid on MouseDown/Up

	Shift, Ctrl, Alt, Meta bool

	VirtualKey    Key
	NativeKeyCode int
	Character     rune
	Text          string

	Phase EventPhase

	// Handled stops propagation when set by a handler.
	Handled bool
}

// IsMouse reports whether the event carries mouse coordinates.
func (e *Event) IsMouse() bool {
	return e.Type >= EventMouseMove && e.Type <= EventMouseWheelHorizontal
}

// IsKeyboard reports whether the event is a key event.
func (e *Event) IsKeyboard() bool {
	return e.Type >= EventKeyDown && e.Type <= EventKeyChar
}

// eventPool recycles Event structs across dispatches. Synthetic events
// (enter/leave chains) are allocated per mouse move otherwise.
var eventPool = sync.Pool{
	New: func() any { return &Event{} },
}

// acquireEvent returns a zeroed event from the pool.
func acquireEvent() *Event {
	ev := eventPool.Get().(*Event)
	*ev = Event{}
	return ev
}

// releaseEvent returns an event to the pool. Callers must not retain it.
func releaseEvent(ev *Event) {
	eventPool.Put(ev)
}
