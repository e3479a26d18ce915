package ui

import (
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// Dropdown is a single-selection list collapsed to one row. Clicking (or
// Space/Enter when focused) opens a popup with the options; Up/Down move
// the highlight, Enter commits, Escape dismisses.
type Dropdown struct {
	*BaseElement

	mu sync.RWMutex

	options  []string
	selected int
	rowH     float32

	background render.Color
	border     render.Color
	textColor  render.Color

	list *dropdownList

	// OnSelect runs when the selection changes.
	OnSelect func(index int, value string)
}

var _ Element = (*Dropdown)(nil)

// NewDropdown creates a dropdown with no selection (index -1).
func NewDropdown(id string, options ...string) *Dropdown {
	d := &Dropdown{
		BaseElement: NewBaseElement(id),
		options:     options,
		selected:    -1,
		rowH:        24,
		background:  render.White,
		border:      render.Color{R: 150, G: 150, B: 150, A: 255},
		textColor:   render.Black,
	}
	d.SetFocusable(true)
	return d
}

// SetOptions replaces the option list, clamping the selection.
func (d *Dropdown) SetOptions(options ...string) *Dropdown {
	d.mu.Lock()
	d.options = options
	if d.selected >= len(options) {
		d.selected = len(options) - 1
	}
	d.mu.Unlock()
	d.RequestRedraw()
	return d
}

// Options returns a copy of the option list.
func (d *Dropdown) Options() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.options))
	copy(out, d.options)
	return out
}

// SelectedIndex returns the selected option index, -1 when none.
func (d *Dropdown) SelectedIndex() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selected
}

// SelectedValue returns the selected option text, empty when none.
func (d *Dropdown) SelectedValue() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selected < 0 || d.selected >= len(d.options) {
		return ""
	}
	return d.options[d.selected]
}

// Select sets the selection by index. Out-of-range indices clear it.
func (d *Dropdown) Select(index int) *Dropdown {
	d.mu.Lock()
	if index < 0 || index >= len(d.options) {
		index = -1
	}
	changed := d.selected != index
	d.selected = index
	var value string
	if index >= 0 {
		value = d.options[index]
	}
	cb := d.OnSelect
	d.mu.Unlock()
	if changed {
		d.RequestRedraw()
		if cb != nil && index >= 0 {
			cb(index, value)
		}
	}
	return d
}

// IsOpen reports whether the option popup is showing.
func (d *Dropdown) IsOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.list != nil
}

// Open shows the option popup below the dropdown.
func (d *Dropdown) Open() {
	w := d.Window()
	if w == nil || d.IsOpen() {
		return
	}
	d.mu.RLock()
	n := len(d.options)
	rowH := d.rowH
	highlight := d.selected
	d.mu.RUnlock()
	if n == 0 {
		return
	}
	if highlight < 0 {
		highlight = 0
	}

	origin := d.WindowPoint()
	b := d.Bounds()
	list := &dropdownList{
		BaseElement: NewBaseElement(d.StringID() + ".list"),
		owner:       d,
		highlight:   highlight,
	}
	list.SetWindow(w)
	list.setBoundsDirect(render.Rect{
		X:      origin.X,
		Y:      origin.Y + b.Height,
		Width:  b.Width,
		Height: rowH * float32(n),
	})
	d.mu.Lock()
	d.list = list
	d.mu.Unlock()
	w.ShowPopup(list)
}

// Close dismisses the option popup.
func (d *Dropdown) Close() {
	d.mu.Lock()
	list := d.list
	d.list = nil
	d.mu.Unlock()
	if list != nil {
		if w := d.Window(); w != nil {
			w.ClosePopup(list)
		}
	}
}

// PreferredSize reserves room for the widest option plus the arrow.
func (d *Dropdown) PreferredSize() render.Size {
	if hint := d.BaseElement.PreferredSize(); hint.Width > 0 || hint.Height > 0 {
		return hint
	}
	var widest float32
	if w := d.Window(); w != nil {
		ctx := w.Context()
		ctx.PushState()
		ctx.SetFontSize(14)
		for _, opt := range d.Options() {
			if sz := ctx.GetTextLineDimensions(opt); sz.Width > widest {
				widest = sz.Width
			}
		}
		ctx.PopState()
	}
	return render.Size{Width: widest + 36, Height: 26}
}

// Render implements Element.
func (d *Dropdown) Render(ctx render.Context) {
	b := d.Bounds()
	d.mu.RLock()
	bg := d.background
	border := d.border
	textColor := d.textColor
	d.mu.RUnlock()

	ctx.PushState()
	ctx.SetFillColor(bg)
	ctx.FillRoundedRectangle(0, 0, b.Width, b.Height, 3)
	ctx.SetStrokeColor(border)
	ctx.SetStrokeWidth(1)
	ctx.DrawRoundedRectangle(0.5, 0.5, b.Width-1, b.Height-1, 3)

	ctx.SetFontSize(14)
	ctx.SetTextColor(textColor)
	ctx.SetTextAlignment(render.AlignLeft)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)
	ctx.DrawTextInRect(d.SelectedValue(), 8, 0, b.Width-30, b.Height)

	// Arrow glyph at the trailing edge.
	ax, ay := b.Width-16, b.Height/2-2
	ctx.SetFillColor(textColor)
	ctx.FillLinePath([]render.Point{{X: ax, Y: ay}, {X: ax + 8, Y: ay}, {X: ax + 4, Y: ay + 5}})
	ctx.PopState()
}

// OnEvent implements Element.
func (d *Dropdown) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseDown:
		if ev.Button == ButtonLeft {
			if d.IsOpen() {
				d.Close()
			} else {
				d.Open()
			}
			return true
		}
	case EventKeyDown:
		if !d.Focused() {
			return false
		}
		switch ev.VirtualKey {
		case KeySpace, KeyEnter:
			if d.IsOpen() {
				d.commitHighlight()
			} else {
				d.Open()
			}
			return true
		case KeyEscape:
			if d.IsOpen() {
				d.Close()
				return true
			}
		case KeyUp:
			d.moveHighlight(-1)
			return d.IsOpen()
		case KeyDown:
			d.moveHighlight(1)
			return d.IsOpen()
		}
	}
	return false
}

func (d *Dropdown) moveHighlight(delta int) {
	d.mu.Lock()
	list := d.list
	n := len(d.options)
	d.mu.Unlock()
	if list == nil || n == 0 {
		// Closed dropdowns step the selection directly.
		idx := d.SelectedIndex() + delta
		if idx >= 0 && idx < n {
			d.Select(idx)
		}
		return
	}
	list.mu.Lock()
	list.highlight = clampInt(list.highlight+delta, 0, n-1)
	list.mu.Unlock()
	list.RequestRedraw()
}

func (d *Dropdown) commitHighlight() {
	d.mu.RLock()
	list := d.list
	d.mu.RUnlock()
	if list == nil {
		return
	}
	list.mu.Lock()
	idx := list.highlight
	list.mu.Unlock()
	d.Close()
	d.Select(idx)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dropdownList is the popup option list. Its bounds are window
// coordinates, as for any popup.
type dropdownList struct {
	*BaseElement

	mu        sync.Mutex
	owner     *Dropdown
	highlight int
}

func (l *dropdownList) Render(ctx render.Context) {
	b := l.Bounds()
	opts := l.owner.Options()
	l.mu.Lock()
	highlight := l.highlight
	l.mu.Unlock()
	rowH := l.owner.rowH

	ctx.PushState()
	ctx.SetFillColor(render.White)
	ctx.FillRectangle(0, 0, b.Width, b.Height)
	ctx.SetStrokeColor(render.Color{R: 150, G: 150, B: 150, A: 255})
	ctx.SetStrokeWidth(1)
	ctx.DrawRectangle(0.5, 0.5, b.Width-1, b.Height-1)

	ctx.SetFontSize(14)
	ctx.SetTextAlignment(render.AlignLeft)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)
	for i, opt := range opts {
		y := float32(i) * rowH
		if i == highlight {
			ctx.SetFillColor(render.Color{R: 210, G: 225, B: 245, A: 255})
			ctx.FillRectangle(1, y, b.Width-2, rowH)
		}
		ctx.SetTextColor(render.Black)
		ctx.DrawTextInRect(opt, 8, y, b.Width-16, rowH)
	}
	ctx.PopState()
}

func (l *dropdownList) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseMove:
		idx := int(ev.Y / l.owner.rowH)
		if idx >= 0 && idx < len(l.owner.Options()) {
			l.mu.Lock()
			l.highlight = idx
			l.mu.Unlock()
			l.RequestRedraw()
		}
		return true
	case EventMouseDown:
		return true
	case EventMouseUp:
		idx := int(ev.Y / l.owner.rowH)
		d := l.owner
		d.Close()
		if idx >= 0 && idx < len(d.Options()) {
			d.Select(idx)
		}
		return true
	}
	return false
}
