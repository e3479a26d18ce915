package ui

import (
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// Label is a static text element. It never takes focus and never consumes
// events.
type Label struct {
	*BaseElement

	mu sync.RWMutex

	text       string
	color      render.Color
	fontFamily string
	fontSize   float32
	fontWeight render.FontWeight
	fontSlant  render.FontSlant
	align      render.TextAlignment
	valign     render.TextVerticalAlignment
	wrap       render.WrapMode
}

var _ Element = (*Label)(nil)

// NewLabel creates a label with the default font (14 px, left/top aligned,
// no wrapping).
func NewLabel(id, text string) *Label {
	return &Label{
		BaseElement: NewBaseElement(id),
		text:        text,
		color:       render.Black,
		fontFamily:  "sans-serif",
		fontSize:    14,
		fontWeight:  render.WeightNormal,
	}
}

// SetText replaces the label text, for chaining.
func (l *Label) SetText(text string) *Label {
	l.mu.Lock()
	changed := l.text != text
	l.text = text
	l.mu.Unlock()
	if changed {
		l.InvalidateLayout()
		l.RequestRedraw()
	}
	return l
}

// Text returns the current text.
func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// SetColor sets the text color, for chaining.
func (l *Label) SetColor(c render.Color) *Label {
	l.mu.Lock()
	l.color = c
	l.mu.Unlock()
	l.RequestRedraw()
	return l
}

// SetFont sets family, size, weight and slant, for chaining.
func (l *Label) SetFont(family string, size float32, weight render.FontWeight, slant render.FontSlant) *Label {
	l.mu.Lock()
	l.fontFamily = family
	l.fontSize = size
	l.fontWeight = weight
	l.fontSlant = slant
	l.mu.Unlock()
	l.InvalidateLayout()
	return l
}

// SetAlignment sets horizontal and vertical text alignment, for chaining.
func (l *Label) SetAlignment(h render.TextAlignment, v render.TextVerticalAlignment) *Label {
	l.mu.Lock()
	l.align = h
	l.valign = v
	l.mu.Unlock()
	l.RequestRedraw()
	return l
}

// SetWrap sets the wrapping mode, for chaining.
func (l *Label) SetWrap(w render.WrapMode) *Label {
	l.mu.Lock()
	l.wrap = w
	l.mu.Unlock()
	l.InvalidateLayout()
	return l
}

// applyFont pushes the label's text state onto the context.
func (l *Label) applyFont(ctx render.Context) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ctx.SetFontFace(l.fontFamily, l.fontWeight, l.fontSlant)
	ctx.SetFontSize(l.fontSize)
	ctx.SetTextColor(l.color)
	ctx.SetTextAlignment(l.align)
	ctx.SetTextVerticalAlignment(l.valign)
	ctx.SetTextWrap(l.wrap)
}

// PreferredSize measures the text through the window's context when
// attached, else falls back to the explicit hint.
func (l *Label) PreferredSize() render.Size {
	if hint := l.BaseElement.PreferredSize(); hint.Width > 0 || hint.Height > 0 {
		return hint
	}
	w := l.Window()
	if w == nil {
		return render.Size{}
	}
	ctx := w.Context()
	ctx.PushState()
	l.applyFont(ctx)
	sz := ctx.GetTextLineDimensions(l.Text())
	ctx.PopState()
	pad := l.Padding()
	sz.Width += pad.Horizontal()
	sz.Height += pad.Vertical()
	return sz
}

// Render implements Element.
func (l *Label) Render(ctx render.Context) {
	b := l.Bounds()
	pad := l.Padding()
	ctx.PushState()
	l.applyFont(ctx)
	ctx.DrawTextInRect(l.Text(), pad.Left, pad.Top,
		b.Width-pad.Horizontal(), b.Height-pad.Vertical())
	ctx.PopState()
}
