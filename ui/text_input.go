package ui

import (
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// clipboard is the process-local clipboard shared by text widgets. The
// platform layer may mirror it to the system clipboard.
var clipboard struct {
	mu   sync.Mutex
	text string
}

// ClipboardText returns the process-local clipboard content.
func ClipboardText() string {
	clipboard.mu.Lock()
	defer clipboard.mu.Unlock()
	return clipboard.text
}

// SetClipboardText replaces the process-local clipboard content.
func SetClipboardText(s string) {
	clipboard.mu.Lock()
	clipboard.text = s
	clipboard.mu.Unlock()
}

// TextInput is a single-line text field over a TextBuffer: selection,
// clipboard, undo/redo, placeholder when empty, optional read-only mode
// and a rune-count bound.
type TextInput struct {
	*BaseElement

	mu sync.RWMutex

	buffer      *TextBuffer
	placeholder string
	readOnly    bool
	fontSize    float32

	// scrollX keeps the caret visible when the text exceeds the field.
	scrollX  float32
	dragging bool

	background  render.Color
	border      render.Color
	focusBorder render.Color
	textColor   render.Color
	placeColor  render.Color
	selColor    render.Color

	// OnChange runs after any edit; OnSubmit on Enter.
	OnChange func(string)
	OnSubmit func(string)
}

var _ Element = (*TextInput)(nil)

// NewTextInput creates an empty editable field.
func NewTextInput(id string) *TextInput {
	t := &TextInput{
		BaseElement: NewBaseElement(id),
		buffer:      NewTextBuffer(""),
		fontSize:    14,
		background:  render.White,
		border:      render.Color{R: 150, G: 150, B: 150, A: 255},
		focusBorder: render.Color{R: 70, G: 120, B: 210, A: 255},
		textColor:   render.Black,
		placeColor:  render.Color{R: 160, G: 160, B: 160, A: 255},
		selColor:    render.Color{R: 180, G: 205, B: 240, A: 255},
	}
	t.SetFocusable(true)
	t.SetPadding(Insets{Left: 6, Top: 4, Right: 6, Bottom: 4})
	return t
}

// Text returns the field content.
func (t *TextInput) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.buffer.String()
}

// SetText replaces the content, for chaining.
func (t *TextInput) SetText(s string) *TextInput {
	t.mu.Lock()
	t.buffer.SetText(s)
	t.buffer.SetCursor(t.buffer.Len())
	t.mu.Unlock()
	t.notifyChange()
	return t
}

// SetPlaceholder sets the hint shown while empty, for chaining.
func (t *TextInput) SetPlaceholder(s string) *TextInput {
	t.mu.Lock()
	t.placeholder = s
	t.mu.Unlock()
	t.RequestRedraw()
	return t
}

// SetReadOnly disables editing while keeping selection and copy, for
// chaining.
func (t *TextInput) SetReadOnly(ro bool) *TextInput {
	t.mu.Lock()
	t.readOnly = ro
	t.mu.Unlock()
	return t
}

// SetMaxLength bounds the content length in runes, for chaining.
func (t *TextInput) SetMaxLength(n int) *TextInput {
	t.mu.Lock()
	t.buffer.SetMaxLength(n)
	t.mu.Unlock()
	return t
}

// Buffer exposes the underlying buffer for tests and advanced callers.
func (t *TextInput) Buffer() *TextBuffer { return t.buffer }

func (t *TextInput) notifyChange() {
	t.RequestRedraw()
	if t.OnChange != nil {
		t.OnChange(t.Text())
	}
}

// PreferredSize is a fixed-height row.
func (t *TextInput) PreferredSize() render.Size {
	if hint := t.BaseElement.PreferredSize(); hint.Width > 0 || hint.Height > 0 {
		return hint
	}
	pad := t.Padding()
	return render.Size{Width: 160, Height: t.fontSize + 6 + pad.Vertical()}
}

// measure returns the pixel width of the first n runes.
func (t *TextInput) measure(ctx render.Context, s string, n int) float32 {
	r := []rune(s)
	if n > len(r) {
		n = len(r)
	}
	return ctx.GetTextLineDimensions(string(r[:n])).Width
}

// ensureCaretVisible adjusts scrollX so the caret stays inside the field.
func (t *TextInput) ensureCaretVisible(ctx render.Context, innerW float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	caretX := t.measure(ctx, t.buffer.String(), t.buffer.Cursor())
	if caretX-t.scrollX > innerW-4 {
		t.scrollX = caretX - innerW + 4
	}
	if caretX-t.scrollX < 0 {
		t.scrollX = caretX
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
}

// Render implements Element.
func (t *TextInput) Render(ctx render.Context) {
	b := t.Bounds()
	pad := t.Padding()
	innerW := b.Width - pad.Horizontal()

	t.mu.RLock()
	text := t.buffer.String()
	placeholder := t.placeholder
	selS, selE, hasSel := t.buffer.Selection()
	cursor := t.buffer.Cursor()
	fontSize := t.fontSize
	t.mu.RUnlock()

	ctx.PushState()
	ctx.SetFillColor(t.background)
	ctx.FillRoundedRectangle(0, 0, b.Width, b.Height, 3)
	border := t.border
	if t.Focused() {
		border = t.focusBorder
	}
	ctx.SetStrokeColor(border)
	ctx.SetStrokeWidth(1)
	ctx.DrawRoundedRectangle(0.5, 0.5, b.Width-1, b.Height-1, 3)

	ctx.ClipRect(pad.Left, pad.Top, innerW, b.Height-pad.Vertical())
	ctx.SetFontSize(fontSize)
	ctx.SetTextAlignment(render.AlignLeft)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)

	t.ensureCaretVisible(ctx, innerW)
	t.mu.RLock()
	scrollX := t.scrollX
	t.mu.RUnlock()
	textX := pad.Left - scrollX

	if hasSel && t.Focused() {
		x0 := t.measure(ctx, text, selS)
		x1 := t.measure(ctx, text, selE)
		ctx.SetFillColor(t.selColor)
		ctx.FillRectangle(textX+x0, pad.Top, x1-x0, b.Height-pad.Vertical())
	}

	if text == "" && placeholder != "" && !t.Focused() {
		ctx.SetTextColor(t.placeColor)
		ctx.DrawTextInRect(placeholder, pad.Left, 0, innerW, b.Height)
	} else {
		ctx.SetTextColor(t.textColor)
		ctx.DrawTextInRect(text, textX, 0, b.Width+scrollX, b.Height)
	}

	if t.Focused() && t.Enabled() {
		caretX := textX + t.measure(ctx, text, cursor)
		ctx.SetStrokeColor(t.textColor)
		ctx.SetStrokeWidth(1)
		ctx.DrawLine(caretX, pad.Top+1, caretX, b.Height-pad.Bottom-1)
	}
	ctx.PopState()
}

// indexForX maps a field-local x coordinate to a rune index.
func (t *TextInput) indexForX(x float32) int {
	w := t.Window()
	if w == nil {
		return 0
	}
	ctx := w.Context()
	pad := t.Padding()
	t.mu.RLock()
	text := t.buffer.String()
	scrollX := t.scrollX
	fontSize := t.fontSize
	t.mu.RUnlock()
	ctx.PushState()
	ctx.SetFontSize(fontSize)
	idx := ctx.GetTextIndexForXY(text, x-pad.Left+scrollX, 0)
	ctx.PopState()
	return idx
}

// OnEvent implements Element.
func (t *TextInput) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseDown:
		if ev.Button != ButtonLeft {
			return false
		}
		idx := t.indexForX(ev.X)
		t.mu.Lock()
		switch ev.ClickCount {
		case 2:
			t.buffer.SetCursor(idx)
			t.buffer.MoveWord(false, false)
			t.buffer.MoveWord(true, true)
		case 3:
			t.buffer.SelectAll()
		default:
			t.buffer.MoveTo(idx, ev.Shift)
			t.dragging = true
		}
		t.mu.Unlock()
		t.RequestRedraw()
		return true
	case EventMouseUp:
		t.mu.Lock()
		was := t.dragging
		t.dragging = false
		t.mu.Unlock()
		return was
	case EventMouseMove:
		// Drag-select while the button is held; the dispatcher routes
		// moves to the pressed element.
		t.mu.RLock()
		dragging := t.dragging
		t.mu.RUnlock()
		if dragging {
			idx := t.indexForX(ev.X)
			t.mu.Lock()
			t.buffer.MoveTo(idx, true)
			t.mu.Unlock()
			t.RequestRedraw()
			return true
		}
	case EventKeyDown:
		return t.handleKey(ev)
	case EventKeyChar:
		if t.readOnlyNow() || ev.Character < ' ' {
			return false
		}
		t.mu.Lock()
		t.buffer.Insert(string(ev.Character))
		t.mu.Unlock()
		t.notifyChange()
		return true
	}
	return false
}

func (t *TextInput) readOnlyNow() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readOnly
}

func (t *TextInput) handleKey(ev *Event) bool {
	edited := false
	handled := true

	t.mu.Lock()
	b := t.buffer
	switch {
	case ev.Ctrl && ev.VirtualKey == KeyA:
		b.SelectAll()
	case ev.Ctrl && ev.VirtualKey == KeyC:
		if s := b.SelectedText(); s != "" {
			SetClipboardText(s)
		}
	case ev.Ctrl && ev.VirtualKey == KeyX:
		if s := b.SelectedText(); s != "" && !t.readOnly {
			SetClipboardText(s)
			b.DeleteBackward()
			edited = true
		}
	case ev.Ctrl && ev.VirtualKey == KeyV:
		if !t.readOnly {
			b.Insert(ClipboardText())
			edited = true
		}
	case ev.Ctrl && ev.VirtualKey == KeyZ:
		if !t.readOnly {
			edited = b.Undo()
		}
	case ev.Ctrl && ev.VirtualKey == KeyY:
		if !t.readOnly {
			edited = b.Redo()
		}
	case ev.VirtualKey == KeyLeft:
		if ev.Ctrl {
			b.MoveWord(false, ev.Shift)
		} else {
			b.MoveCursor(-1, ev.Shift)
		}
	case ev.VirtualKey == KeyRight:
		if ev.Ctrl {
			b.MoveWord(true, ev.Shift)
		} else {
			b.MoveCursor(1, ev.Shift)
		}
	case ev.VirtualKey == KeyHome:
		b.MoveTo(0, ev.Shift)
	case ev.VirtualKey == KeyEnd:
		b.MoveTo(b.Len(), ev.Shift)
	case ev.VirtualKey == KeyBackspace:
		if !t.readOnly {
			b.DeleteBackward()
			edited = true
		}
	case ev.VirtualKey == KeyDelete:
		if !t.readOnly {
			b.DeleteForward()
			edited = true
		}
	case ev.VirtualKey == KeyEnter:
		t.mu.Unlock()
		if t.OnSubmit != nil {
			t.OnSubmit(t.Text())
		}
		return true
	default:
		handled = false
	}
	t.mu.Unlock()

	if edited {
		t.notifyChange()
	} else if handled {
		t.RequestRedraw()
	}
	return handled
}
