package ui

import (
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// Button is a push button with hover and pressed visuals. OnClick fires
// when a press started on the button is released over it, or when Space or
// Enter is pressed while focused.
type Button struct {
	*BaseElement

	mu sync.RWMutex

	text     string
	fontSize float32

	background render.Color
	hoverBg    render.Color
	pressedBg  render.Color
	disabledBg render.Color
	textColor  render.Color
	border     render.Color
	radius     float32

	hovered bool
	pressed bool
	toggle  bool
	checked bool

	// OnClick runs on the main thread during event dispatch.
	OnClick func()
}

var _ Element = (*Button)(nil)

// NewButton creates a focusable button with the default visual set.
func NewButton(id, text string) *Button {
	b := &Button{
		BaseElement: NewBaseElement(id),
		text:        text,
		fontSize:    14,
		background:  render.Color{R: 225, G: 225, B: 225, A: 255},
		hoverBg:     render.Color{R: 210, G: 222, B: 240, A: 255},
		pressedBg:   render.Color{R: 180, G: 200, B: 230, A: 255},
		disabledBg:  render.Color{R: 240, G: 240, B: 240, A: 255},
		textColor:   render.Black,
		border:      render.Color{R: 150, G: 150, B: 150, A: 255},
		radius:      4,
	}
	b.SetFocusable(true)
	b.SetPadding(Insets{Left: 12, Top: 6, Right: 12, Bottom: 6})
	return b
}

// SetText replaces the button label, for chaining.
func (b *Button) SetText(text string) *Button {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	b.InvalidateLayout()
	b.RequestRedraw()
	return b
}

// Text returns the button label.
func (b *Button) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// SetColors sets the idle, hover and pressed backgrounds, for chaining.
func (b *Button) SetColors(idle, hover, pressed render.Color) *Button {
	b.mu.Lock()
	b.background = idle
	b.hoverBg = hover
	b.pressedBg = pressed
	b.mu.Unlock()
	b.RequestRedraw()
	return b
}

// SetTextColor sets the label color, for chaining.
func (b *Button) SetTextColor(c render.Color) *Button {
	b.mu.Lock()
	b.textColor = c
	b.mu.Unlock()
	b.RequestRedraw()
	return b
}

// SetCornerRadius sets the rounding radius, for chaining.
func (b *Button) SetCornerRadius(r float32) *Button {
	b.mu.Lock()
	b.radius = r
	b.mu.Unlock()
	b.RequestRedraw()
	return b
}

// SetToggle makes the button latch its checked state on click.
func (b *Button) SetToggle(on bool) *Button {
	b.mu.Lock()
	b.toggle = on
	b.mu.Unlock()
	return b
}

// Checked reports the latched state of a toggle button.
func (b *Button) Checked() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.checked
}

// SetChecked latches a toggle button programmatically.
func (b *Button) SetChecked(on bool) *Button {
	b.mu.Lock()
	b.checked = on
	b.mu.Unlock()
	b.RequestRedraw()
	return b
}

func (b *Button) activate() {
	b.mu.Lock()
	if b.toggle {
		b.checked = !b.checked
	}
	cb := b.OnClick
	b.mu.Unlock()
	b.RequestRedraw()
	if cb != nil {
		cb()
	}
}

// PreferredSize measures the label plus padding.
func (b *Button) PreferredSize() render.Size {
	if hint := b.BaseElement.PreferredSize(); hint.Width > 0 || hint.Height > 0 {
		return hint
	}
	pad := b.Padding()
	w := b.Window()
	if w == nil {
		return render.Size{Width: pad.Horizontal() + 60, Height: pad.Vertical() + 18}
	}
	ctx := w.Context()
	ctx.PushState()
	ctx.SetFontSize(b.fontSize)
	sz := ctx.GetTextLineDimensions(b.Text())
	ctx.PopState()
	return render.Size{Width: sz.Width + pad.Horizontal(), Height: sz.Height + pad.Vertical()}
}

// Render implements Element.
func (b *Button) Render(ctx render.Context) {
	bounds := b.Bounds()
	b.mu.RLock()
	bg := b.background
	switch {
	case !b.Enabled():
		bg = b.disabledBg
	case b.pressed || (b.toggle && b.checked):
		bg = b.pressedBg
	case b.hovered:
		bg = b.hoverBg
	}
	text := b.text
	textColor := b.textColor
	border := b.border
	radius := b.radius
	fontSize := b.fontSize
	b.mu.RUnlock()

	ctx.PushState()
	ctx.SetFillColor(bg)
	ctx.FillRoundedRectangle(0, 0, bounds.Width, bounds.Height, radius)
	ctx.SetStrokeColor(border)
	ctx.SetStrokeWidth(1)
	ctx.DrawRoundedRectangle(0.5, 0.5, bounds.Width-1, bounds.Height-1, radius)
	if b.Focused() {
		ctx.SetStrokeColor(render.Color{R: 70, G: 120, B: 210, A: 255})
		ctx.DrawRoundedRectangle(1.5, 1.5, bounds.Width-3, bounds.Height-3, radius)
	}
	ctx.SetFontSize(fontSize)
	ctx.SetTextColor(textColor)
	ctx.SetTextAlignment(render.AlignCenter)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)
	ctx.DrawTextInRect(text, 0, 0, bounds.Width, bounds.Height)
	ctx.PopState()
}

// OnEvent implements Element.
func (b *Button) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseEnter:
		b.mu.Lock()
		b.hovered = true
		b.mu.Unlock()
		b.RequestRedraw()
	case EventMouseLeave:
		b.mu.Lock()
		b.hovered = false
		b.pressed = false
		b.mu.Unlock()
		b.RequestRedraw()
	case EventMouseDown:
		if ev.Button == ButtonLeft {
			b.mu.Lock()
			b.pressed = true
			b.mu.Unlock()
			b.RequestRedraw()
			return true
		}
	case EventMouseUp:
		b.mu.Lock()
		wasPressed := b.pressed
		b.pressed = false
		b.mu.Unlock()
		if wasPressed && ev.Button == ButtonLeft {
			bounds := b.Bounds()
			if ev.X >= 0 && ev.Y >= 0 && ev.X < bounds.Width && ev.Y < bounds.Height {
				b.activate()
			}
			b.RequestRedraw()
			return true
		}
	case EventKeyDown:
		if b.Focused() && (ev.VirtualKey == KeySpace || ev.VirtualKey == KeyEnter) {
			b.activate()
			return true
		}
	}
	return false
}
