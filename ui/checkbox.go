package ui

import (
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// CheckState is the tri-state value of a checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

// CheckboxStyle selects the visual variant.
type CheckboxStyle int

const (
	CheckboxStandard CheckboxStyle = iota
	CheckboxRounded
	CheckboxSwitch
	CheckboxRadio
	CheckboxMaterial
)

// RadioGroup elects a single selected checkbox among its members. Setting
// one member checked unchecks the rest.
type RadioGroup struct {
	mu      sync.Mutex
	members []*Checkbox
}

// NewRadioGroup creates an empty group.
func NewRadioGroup() *RadioGroup { return &RadioGroup{} }

// Add registers a checkbox with the group and switches it to the radio
// style.
func (g *RadioGroup) Add(cb *Checkbox) {
	g.mu.Lock()
	g.members = append(g.members, cb)
	g.mu.Unlock()
	cb.mu.Lock()
	cb.style = CheckboxRadio
	cb.group = g
	cb.mu.Unlock()
}

// Selected returns the checked member, or nil.
func (g *RadioGroup) Selected() *Checkbox {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, m := range g.members {
		if m.State() == Checked {
			return m
		}
	}
	return nil
}

// elect checks the given member and unchecks its peers.
func (g *RadioGroup) elect(chosen *Checkbox) {
	g.mu.Lock()
	members := make([]*Checkbox, len(g.members))
	copy(members, g.members)
	g.mu.Unlock()
	for _, m := range members {
		if m != chosen {
			m.setStateInternal(Unchecked)
		}
	}
	chosen.setStateInternal(Checked)
}

// Checkbox is a tri-state toggle with several visual variants. Space or
// Enter toggles when focused. A checkbox in a RadioGroup behaves as a
// radio button: clicking selects it and deselects peers.
type Checkbox struct {
	*BaseElement

	mu sync.RWMutex

	text  string
	state CheckState
	style CheckboxStyle
	group *RadioGroup

	boxColor   render.Color
	checkColor render.Color
	textColor  render.Color

	hovered bool

	// OnChange runs after the state changes through user interaction or
	// SetState.
	OnChange func(CheckState)
}

var _ Element = (*Checkbox)(nil)

const checkboxBoxSize = 16

// NewCheckbox creates an unchecked standard-style checkbox.
func NewCheckbox(id, text string) *Checkbox {
	c := &Checkbox{
		BaseElement: NewBaseElement(id),
		text:        text,
		boxColor:    render.Color{R: 120, G: 120, B: 120, A: 255},
		checkColor:  render.Color{R: 50, G: 110, B: 200, A: 255},
		textColor:   render.Black,
	}
	c.SetFocusable(true)
	return c
}

// SetStyle selects the visual variant, for chaining.
func (c *Checkbox) SetStyle(s CheckboxStyle) *Checkbox {
	c.mu.Lock()
	c.style = s
	c.mu.Unlock()
	c.RequestRedraw()
	return c
}

// Style returns the visual variant.
func (c *Checkbox) Style() CheckboxStyle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.style
}

// State returns the current check state.
func (c *Checkbox) State() CheckState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetState sets the check state. For a radio group member, setting Checked
// elects this member and unsets its peers.
func (c *Checkbox) SetState(s CheckState) *Checkbox {
	c.mu.RLock()
	group := c.group
	c.mu.RUnlock()
	if group != nil && s == Checked {
		group.elect(c)
		return c
	}
	c.setStateInternal(s)
	return c
}

func (c *Checkbox) setStateInternal(s CheckState) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	cb := c.OnChange
	c.mu.Unlock()
	if changed {
		c.RequestRedraw()
		if cb != nil {
			cb(s)
		}
	}
}

// Text returns the checkbox label.
func (c *Checkbox) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.text
}

// SetText replaces the label, for chaining.
func (c *Checkbox) SetText(text string) *Checkbox {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	c.InvalidateLayout()
	c.RequestRedraw()
	return c
}

// toggle advances the state. Indeterminate resolves to Checked; radio
// members always elect themselves.
func (c *Checkbox) toggle() {
	c.mu.RLock()
	group := c.group
	state := c.state
	c.mu.RUnlock()
	if group != nil {
		group.elect(c)
		return
	}
	if state == Checked {
		c.setStateInternal(Unchecked)
	} else {
		c.setStateInternal(Checked)
	}
}

// PreferredSize reserves the box glyph plus the measured label.
func (c *Checkbox) PreferredSize() render.Size {
	if hint := c.BaseElement.PreferredSize(); hint.Width > 0 || hint.Height > 0 {
		return hint
	}
	var textW, textH float32 = float32(len([]rune(c.Text()))) * 8, 16
	if w := c.Window(); w != nil {
		ctx := w.Context()
		ctx.PushState()
		ctx.SetFontSize(14)
		sz := ctx.GetTextLineDimensions(c.Text())
		ctx.PopState()
		textW, textH = sz.Width, sz.Height
	}
	boxW := float32(checkboxBoxSize)
	if c.Style() == CheckboxSwitch {
		boxW = checkboxBoxSize * 2
	}
	return render.Size{
		Width:  boxW + 6 + textW,
		Height: max(checkboxBoxSize+4, textH),
	}
}

// Render implements Element.
func (c *Checkbox) Render(ctx render.Context) {
	b := c.Bounds()
	c.mu.RLock()
	state := c.state
	style := c.style
	boxColor := c.boxColor
	checkColor := c.checkColor
	textColor := c.textColor
	text := c.text
	hovered := c.hovered
	c.mu.RUnlock()

	ctx.PushState()
	boxY := (b.Height - checkboxBoxSize) / 2
	if hovered && c.Enabled() {
		boxColor = render.Color{R: 70, G: 120, B: 210, A: 255}
	}

	textX := float32(checkboxBoxSize + 6)
	switch style {
	case CheckboxRadio:
		cx, cy, r := float32(checkboxBoxSize)/2, boxY+checkboxBoxSize/2, float32(checkboxBoxSize)/2-1
		ctx.SetStrokeColor(boxColor)
		ctx.SetStrokeWidth(1.5)
		ctx.DrawCircle(cx, cy, r)
		if state == Checked {
			ctx.SetFillColor(checkColor)
			ctx.FillCircle(cx, cy, r-4)
		}
	case CheckboxSwitch:
		trackW := float32(checkboxBoxSize * 2)
		track := render.Color{R: 190, G: 190, B: 190, A: 255}
		if state == Checked {
			track = checkColor
		}
		ctx.SetFillColor(track)
		ctx.FillRoundedRectangle(0, boxY, trackW, checkboxBoxSize, checkboxBoxSize/2)
		knobX := float32(2)
		if state == Checked {
			knobX = trackW - checkboxBoxSize + 2
		} else if state == Indeterminate {
			knobX = trackW/2 - checkboxBoxSize/2 + 2
		}
		ctx.SetFillColor(render.White)
		ctx.FillCircle(knobX+checkboxBoxSize/2-2, boxY+checkboxBoxSize/2, checkboxBoxSize/2-3)
		textX = trackW + 6
	default:
		radius := float32(2)
		if style == CheckboxRounded || style == CheckboxMaterial {
			radius = 5
		}
		if state != Unchecked {
			ctx.SetFillColor(checkColor)
			ctx.FillRoundedRectangle(0, boxY, checkboxBoxSize, checkboxBoxSize, radius)
		}
		ctx.SetStrokeColor(boxColor)
		ctx.SetStrokeWidth(1.5)
		ctx.DrawRoundedRectangle(0, boxY, checkboxBoxSize, checkboxBoxSize, radius)
		switch state {
		case Checked:
			ctx.SetStrokeColor(render.White)
			ctx.SetStrokeWidth(2)
			ctx.DrawLine(3.5, boxY+8.5, 6.5, boxY+11.5)
			ctx.DrawLine(6.5, boxY+11.5, 12.5, boxY+4.5)
		case Indeterminate:
			ctx.SetFillColor(render.White)
			ctx.FillRectangle(3, boxY+checkboxBoxSize/2-1.5, checkboxBoxSize-6, 3)
		}
	}

	if text != "" {
		ctx.SetFontSize(14)
		ctx.SetTextColor(textColor)
		ctx.SetTextAlignment(render.AlignLeft)
		ctx.SetTextVerticalAlignment(render.VAlignMiddle)
		ctx.DrawTextInRect(text, textX, 0, b.Width-textX, b.Height)
	}
	if c.Focused() {
		ctx.SetStrokeColor(render.Color{R: 70, G: 120, B: 210, A: 160})
		ctx.SetStrokeWidth(1)
		ctx.SetLineDash([]float32{2, 2}, 0)
		ctx.DrawRectangle(0.5, 0.5, b.Width-1, b.Height-1)
	}
	ctx.PopState()
}

// OnEvent implements Element.
func (c *Checkbox) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseEnter:
		c.mu.Lock()
		c.hovered = true
		c.mu.Unlock()
		c.RequestRedraw()
	case EventMouseLeave:
		c.mu.Lock()
		c.hovered = false
		c.mu.Unlock()
		c.RequestRedraw()
	case EventMouseDown:
		if ev.Button == ButtonLeft {
			return true
		}
	case EventMouseUp:
		if ev.Button == ButtonLeft {
			c.toggle()
			return true
		}
	case EventKeyDown:
		if c.Focused() && (ev.VirtualKey == KeySpace || ev.VirtualKey == KeyEnter) {
			c.toggle()
			return true
		}
	}
	return false
}
