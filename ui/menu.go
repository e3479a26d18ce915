package ui

import (
	"sync"
	"time"

	"github.com/ultracanvas/ultracanvas/render"
)

// MenuKind distinguishes the horizontal bar, a free popup and a submenu
// attached to a parent item.
type MenuKind int

const (
	Menubar MenuKind = iota
	PopupMenu
	SubmenuMenu
)

// MenuItemKind selects an item's behavior.
type MenuItemKind int

const (
	MenuAction MenuItemKind = iota
	MenuSeparator
	MenuCheckbox
	MenuRadio
	MenuSubmenu
	MenuInput
	MenuCustom
)

// MenuItem is one row of a menu. Zero value is a disabled separator; use
// the constructors.
type MenuItem struct {
	Kind     MenuItemKind
	Label    string
	Icon     *render.Pixmap
	Shortcut string
	Enabled  bool
	Checked  bool
	// RadioGroup partitions MenuRadio items; checking one unchecks its
	// group peers within the same menu.
	RadioGroup int
	Submenu    *Menu
	Input      *TextInput
	Custom     Element

	// OnActivate runs for Action items and after Checkbox/Radio items
	// change state.
	OnActivate func()
}

// ActionItem creates a plain activatable item.
func ActionItem(label, shortcut string, onActivate func()) *MenuItem {
	return &MenuItem{Kind: MenuAction, Label: label, Shortcut: shortcut, Enabled: true, OnActivate: onActivate}
}

// SeparatorItem creates a divider row.
func SeparatorItem() *MenuItem {
	return &MenuItem{Kind: MenuSeparator}
}

// CheckboxItem creates a toggling item.
func CheckboxItem(label string, checked bool, onActivate func()) *MenuItem {
	return &MenuItem{Kind: MenuCheckbox, Label: label, Enabled: true, Checked: checked, OnActivate: onActivate}
}

// RadioItem creates a group-exclusive toggling item.
func RadioItem(label string, group int, checked bool, onActivate func()) *MenuItem {
	return &MenuItem{Kind: MenuRadio, Label: label, Enabled: true, Checked: checked, RadioGroup: group, OnActivate: onActivate}
}

// SubmenuItem creates an item opening a child menu.
func SubmenuItem(label string, submenu *Menu) *MenuItem {
	submenu.kind = SubmenuMenu
	return &MenuItem{Kind: MenuSubmenu, Label: label, Enabled: true, Submenu: submenu}
}

// InputItem creates a row hosting an inline text field. Editing keys and
// mouse events inside the field go to the field; Up/Down and Escape stay
// with the menu.
func InputItem(label string, input *TextInput) *MenuItem {
	return &MenuItem{Kind: MenuInput, Label: label, Enabled: true, Input: input}
}

// CustomItem creates a row hosting an arbitrary element. The element is
// laid out to fill the row and receives the mouse events landing on it.
func CustomItem(custom Element) *MenuItem {
	return &MenuItem{Kind: MenuCustom, Enabled: true, Custom: custom}
}

// embedded returns the widget hosted by an Input or Custom row, nil for
// every other kind.
func (it *MenuItem) embedded() Element {
	switch it.Kind {
	case MenuInput:
		if it.Input != nil {
			return it.Input
		}
	case MenuCustom:
		return it.Custom
	}
	return nil
}

// itemHeight returns the height an item occupies in a popup column.
// Custom rows grow to their element's preference.
func itemHeight(it *MenuItem) float32 {
	switch it.Kind {
	case MenuSeparator:
		return menuSeparatorHeight
	case MenuCustom:
		if it.Custom != nil {
			if h := it.Custom.PreferredSize().Height + 4; h > menuRowHeight {
				return h
			}
		}
	}
	return menuRowHeight
}

const (
	menuRowHeight       = float32(26)
	menuSeparatorHeight = float32(9)
	menubarHeight       = float32(28)
	menuHoverDelay      = 250 * time.Millisecond
)

// Menu is a menubar or a popup column of items. A menubar renders its
// items horizontally and opens each item's submenu below it; popups open
// submenus to their right after a hover delay. Activating an Action
// dismisses the whole open tree.
type Menu struct {
	*BaseElement

	mu sync.Mutex

	kind      MenuKind
	items     []*MenuItem
	highlight int

	// open child submenu and the item index it belongs to.
	child    *Menu
	childIdx int
	parent   *Menu

	hoverDelay time.Duration
	hoverTimer *time.Timer

	background render.Color
	hoverBg    render.Color
	textColor  render.Color
	dimText    render.Color
}

var _ Element = (*Menu)(nil)

// NewMenu creates an empty menu of the given kind.
func NewMenu(id string, kind MenuKind) *Menu {
	m := &Menu{
		BaseElement: NewBaseElement(id),
		kind:        kind,
		highlight:   -1,
		childIdx:    -1,
		hoverDelay:  menuHoverDelay,
		background:  render.Color{R: 248, G: 248, B: 248, A: 255},
		hoverBg:     render.Color{R: 205, G: 220, B: 240, A: 255},
		textColor:   render.Black,
		dimText:     render.Color{R: 160, G: 160, B: 160, A: 255},
	}
	if kind == Menubar {
		m.SetFocusable(true)
	}
	return m
}

// SetHoverDelay configures the submenu open delay, for chaining.
func (m *Menu) SetHoverDelay(d time.Duration) *Menu {
	m.mu.Lock()
	m.hoverDelay = d
	m.mu.Unlock()
	return m
}

// AddItem appends an item, for chaining.
func (m *Menu) AddItem(it *MenuItem) *Menu {
	m.mu.Lock()
	m.items = append(m.items, it)
	m.mu.Unlock()
	m.RequestRedraw()
	return m
}

// Items returns the item slice. The caller must not mutate it during
// dispatch.
func (m *Menu) Items() []*MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items
}

// Kind returns the menu kind.
func (m *Menu) Kind() MenuKind { return m.kind }

// IsOpen reports whether this menu has an open child.
func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.child != nil
}

// root walks to the menubar or outermost popup.
func (m *Menu) root() *Menu {
	r := m
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// CloseAll dismisses every open submenu of the tree this menu belongs to.
func (m *Menu) CloseAll() {
	m.root().closeChild()
}

// closeChild closes this menu's open submenu chain, deepest first.
func (m *Menu) closeChild() {
	m.mu.Lock()
	child := m.child
	m.child = nil
	m.childIdx = -1
	if m.hoverTimer != nil {
		m.hoverTimer.Stop()
		m.hoverTimer = nil
	}
	m.mu.Unlock()
	if child == nil {
		return
	}
	child.closeChild()
	child.parent = nil
	if w := m.Window(); w != nil {
		w.ClosePopup(child)
	}
	m.RequestRedraw()
}

// openSubmenu shows items[idx].Submenu next to the item.
func (m *Menu) openSubmenu(idx int) {
	w := m.Window()
	if w == nil {
		return
	}
	m.mu.Lock()
	if idx < 0 || idx >= len(m.items) || m.childIdx == idx {
		m.mu.Unlock()
		return
	}
	it := m.items[idx]
	m.mu.Unlock()
	if it.Kind != MenuSubmenu || it.Submenu == nil || !it.Enabled {
		return
	}

	m.closeChild()

	sub := it.Submenu
	sub.parent = m
	sub.SetWindow(w)
	size := sub.popupSize(w)
	origin := m.WindowPoint()

	var x, y float32
	if m.kind == Menubar {
		x = origin.X + m.itemOffset(idx)
		y = origin.Y + menubarHeight
	} else {
		b := m.Bounds()
		x = origin.X + b.Width - 2
		y = origin.Y + m.itemY(idx)
	}
	sub.setBoundsDirect(render.Rect{X: x, Y: y, Width: size.Width, Height: size.Height})

	m.mu.Lock()
	m.child = sub
	m.childIdx = idx
	m.mu.Unlock()
	w.ShowPopup(sub)
	m.RequestRedraw()
}

// deepest returns the lowest open menu in the chain.
func (m *Menu) deepest() *Menu {
	d := m
	for {
		d.mu.Lock()
		child := d.child
		d.mu.Unlock()
		if child == nil {
			return d
		}
		d = child
	}
}

// ============================================================================
// Measurement
// ============================================================================

// popupSize measures the column layout of a popup or submenu.
func (m *Menu) popupSize(w *Window) render.Size {
	ctx := w.Context()
	ctx.PushState()
	ctx.SetFontSize(14)
	var width float32 = 120
	var height float32
	m.mu.Lock()
	items := m.items
	m.mu.Unlock()
	for _, it := range items {
		height += itemHeight(it)
		if it.Kind == MenuSeparator {
			continue
		}
		need := ctx.GetTextLineDimensions(it.Label).Width + 56
		if it.Shortcut != "" {
			need += ctx.GetTextLineDimensions(it.Shortcut).Width + 16
		}
		switch {
		case it.Kind == MenuInput && it.Input != nil:
			need += it.Input.PreferredSize().Width
		case it.Kind == MenuCustom && it.Custom != nil:
			if cw := it.Custom.PreferredSize().Width + 16; cw > need {
				need = cw
			}
		}
		if need > width {
			width = need
		}
	}
	ctx.PopState()
	return render.Size{Width: width, Height: height + 8}
}

// itemY returns the y offset of item idx inside a popup column.
func (m *Menu) itemY(idx int) float32 {
	y := float32(4)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < idx && i < len(m.items); i++ {
		y += itemHeight(m.items[i])
	}
	return y
}

// itemOffset returns the x offset of item idx inside a menubar row.
func (m *Menu) itemOffset(idx int) float32 {
	w := m.Window()
	if w == nil {
		return 0
	}
	ctx := w.Context()
	ctx.PushState()
	ctx.SetFontSize(14)
	var x float32
	m.mu.Lock()
	items := m.items
	m.mu.Unlock()
	for i := 0; i < idx && i < len(items); i++ {
		x += ctx.GetTextLineDimensions(items[i].Label).Width + 24
	}
	ctx.PopState()
	return x
}

// itemAt hit-tests an element-local point to an item index, -1 for none.
func (m *Menu) itemAt(x, y float32) int {
	m.mu.Lock()
	items := m.items
	m.mu.Unlock()
	if m.kind == Menubar {
		w := m.Window()
		if w == nil {
			return -1
		}
		ctx := w.Context()
		ctx.PushState()
		ctx.SetFontSize(14)
		var off float32
		idx := -1
		for i, it := range items {
			iw := ctx.GetTextLineDimensions(it.Label).Width + 24
			if x >= off && x < off+iw {
				idx = i
				break
			}
			off += iw
		}
		ctx.PopState()
		return idx
	}
	cy := float32(4)
	for i, it := range items {
		h := itemHeight(it)
		if y >= cy && y < cy+h {
			if it.Kind == MenuSeparator {
				return -1
			}
			return i
		}
		cy += h
	}
	return -1
}

// ============================================================================
// Activation
// ============================================================================

// activate performs item idx. Actions dismiss the whole tree; checkboxes
// and radios toggle in place.
func (m *Menu) activate(idx int) {
	m.mu.Lock()
	if idx < 0 || idx >= len(m.items) {
		m.mu.Unlock()
		return
	}
	it := m.items[idx]
	if !it.Enabled {
		m.mu.Unlock()
		return
	}
	switch it.Kind {
	case MenuCheckbox:
		it.Checked = !it.Checked
	case MenuRadio:
		for _, other := range m.items {
			if other.Kind == MenuRadio && other.RadioGroup == it.RadioGroup {
				other.Checked = other == it
			}
		}
	}
	m.mu.Unlock()

	switch it.Kind {
	case MenuAction:
		m.root().closeChild()
		if it.OnActivate != nil {
			it.OnActivate()
		}
	case MenuCheckbox, MenuRadio:
		m.RequestRedraw()
		if it.OnActivate != nil {
			it.OnActivate()
		}
	case MenuSubmenu:
		m.openSubmenu(idx)
		if it.Submenu != nil {
			it.Submenu.setHighlight(0)
		}
	}
}

func (m *Menu) setHighlight(idx int) {
	m.mu.Lock()
	m.highlight = idx
	m.mu.Unlock()
	m.RequestRedraw()
}

// moveHighlight steps the highlight over activatable items, wrapping.
func (m *Menu) moveHighlight(delta int) {
	m.mu.Lock()
	n := len(m.items)
	if n == 0 {
		m.mu.Unlock()
		return
	}
	idx := m.highlight
	for range m.items {
		idx += delta
		if idx < 0 {
			idx = n - 1
		}
		if idx >= n {
			idx = 0
		}
		if m.items[idx].Kind != MenuSeparator && m.items[idx].Enabled {
			break
		}
	}
	m.highlight = idx
	m.mu.Unlock()
	m.RequestRedraw()
}

// ============================================================================
// Rendering
// ============================================================================

// PreferredSize is the bar row for menubars, the measured column for
// popups.
func (m *Menu) PreferredSize() render.Size {
	if m.kind == Menubar {
		return render.Size{Width: unbounded, Height: menubarHeight}
	}
	if w := m.Window(); w != nil {
		return m.popupSize(w)
	}
	return render.Size{Width: 120, Height: menuRowHeight * float32(len(m.items))}
}

// Render implements Element.
func (m *Menu) Render(ctx render.Context) {
	if m.kind == Menubar {
		m.renderBar(ctx)
		return
	}
	m.renderPopup(ctx)
}

func (m *Menu) renderBar(ctx render.Context) {
	b := m.Bounds()
	m.mu.Lock()
	items := m.items
	highlight := m.highlight
	openIdx := m.childIdx
	m.mu.Unlock()

	ctx.PushState()
	ctx.SetFillColor(m.background)
	ctx.FillRectangle(0, 0, b.Width, b.Height)
	ctx.SetStrokeColor(render.Color{R: 220, G: 220, B: 220, A: 255})
	ctx.SetStrokeWidth(1)
	ctx.DrawLine(0, b.Height-0.5, b.Width, b.Height-0.5)

	ctx.SetFontSize(14)
	ctx.SetTextAlignment(render.AlignCenter)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)
	var x float32
	for i, it := range items {
		iw := ctx.GetTextLineDimensions(it.Label).Width + 24
		if i == openIdx || i == highlight {
			ctx.SetFillColor(m.hoverBg)
			ctx.FillRectangle(x, 0, iw, b.Height)
		}
		color := m.textColor
		if !it.Enabled {
			color = m.dimText
		}
		ctx.SetTextColor(color)
		ctx.DrawTextInRect(it.Label, x, 0, iw, b.Height)
		x += iw
	}
	ctx.PopState()
}

func (m *Menu) renderPopup(ctx render.Context) {
	b := m.Bounds()
	m.mu.Lock()
	items := m.items
	highlight := m.highlight
	m.mu.Unlock()

	ctx.PushState()
	ctx.SetFillColor(m.background)
	ctx.FillRectangle(0, 0, b.Width, b.Height)
	ctx.SetStrokeColor(render.Color{R: 185, G: 185, B: 185, A: 255})
	ctx.SetStrokeWidth(1)
	ctx.DrawRectangle(0.5, 0.5, b.Width-1, b.Height-1)

	ctx.SetFontSize(14)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)
	y := float32(4)
	for i, it := range items {
		h := itemHeight(it)
		if it.Kind == MenuSeparator {
			ctx.SetStrokeColor(render.Color{R: 215, G: 215, B: 215, A: 255})
			ctx.DrawLine(8, y+h/2, b.Width-8, y+h/2)
			y += h
			continue
		}
		if i == highlight && it.Enabled {
			ctx.SetFillColor(m.hoverBg)
			ctx.FillRectangle(2, y, b.Width-4, h)
		}
		color := m.textColor
		if !it.Enabled {
			color = m.dimText
		}

		// Input and Custom rows host a live widget: place it in the row
		// (bounds are menu-local, so hit tests line up with itemAt) and
		// render it translated.
		if el := it.embedded(); el != nil {
			er := render.Rect{X: 8, Y: y + 2, Width: b.Width - 16, Height: h - 4}
			if it.Kind == MenuInput {
				lw := ctx.GetTextLineDimensions(it.Label).Width
				if it.Label != "" {
					ctx.SetTextColor(color)
					ctx.SetTextAlignment(render.AlignLeft)
					ctx.DrawTextInRect(it.Label, 28, y, lw+4, h)
					er.X = 28 + lw + 8
				}
				er.Y = y + 3
				er.Width = b.Width - er.X - 8
				er.Height = h - 6
			}
			el.SetWindow(m.Window())
			el.SetBounds(er.X, er.Y, er.Width, er.Height)
			ctx.PushState()
			ctx.Translate(er.X, er.Y)
			el.Render(ctx)
			ctx.PopState()
			y += h
			continue
		}

		// Leading gutter: check mark, radio dot or icon.
		switch {
		case (it.Kind == MenuCheckbox || it.Kind == MenuRadio) && it.Checked:
			ctx.SetFillColor(color)
			if it.Kind == MenuRadio {
				ctx.FillCircle(14, y+menuRowHeight/2, 3)
			} else {
				ctx.SetStrokeColor(color)
				ctx.SetStrokeWidth(2)
				ctx.DrawLine(9, y+13, 13, y+17)
				ctx.DrawLine(13, y+17, 19, y+9)
			}
		case it.Icon != nil:
			ctx.DrawPixmap(it.Icon, 6, y+5, 16, 16, render.FitContain)
		}

		ctx.SetTextColor(color)
		ctx.SetTextAlignment(render.AlignLeft)
		ctx.DrawTextInRect(it.Label, 28, y, b.Width-36, h)
		if it.Shortcut != "" {
			ctx.SetTextColor(m.dimText)
			ctx.SetTextAlignment(render.AlignRight)
			ctx.DrawTextInRect(it.Shortcut, 28, y, b.Width-44, h)
		}
		if it.Kind == MenuSubmenu {
			ctx.SetFillColor(color)
			ctx.FillLinePath([]render.Point{
				{X: b.Width - 14, Y: y + 8}, {X: b.Width - 8, Y: y + h/2}, {X: b.Width - 14, Y: y + h - 8},
			})
		}
		y += h
	}
	ctx.PopState()
}

// ============================================================================
// Events
// ============================================================================

// forwardToEmbedded routes a mouse event landing inside an Input or
// Custom row's widget, translating to widget-local coordinates. The
// widget's bounds are menu-local, set during renderPopup.
func (m *Menu) forwardToEmbedded(idx int, ev *Event) bool {
	m.mu.Lock()
	var el Element
	if idx >= 0 && idx < len(m.items) && m.items[idx].Enabled {
		el = m.items[idx].embedded()
	}
	m.mu.Unlock()
	if el == nil {
		return false
	}
	eb := el.Bounds()
	if !eb.Contains(render.Point{X: ev.X, Y: ev.Y}) {
		return false
	}
	ox, oy := ev.X, ev.Y
	ev.X -= eb.X
	ev.Y -= eb.Y
	handled := el.OnEvent(ev)
	ev.X, ev.Y = ox, oy
	if handled {
		m.RequestRedraw()
	}
	return handled
}

// hostedInput returns the highlighted Input row's text field, if any.
func (m *Menu) hostedInput() *TextInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.highlight < 0 || m.highlight >= len(m.items) {
		return nil
	}
	if it := m.items[m.highlight]; it.Kind == MenuInput && it.Enabled {
		return it.Input
	}
	return nil
}

// OnEvent implements Element.
func (m *Menu) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseMove:
		idx := m.itemAt(ev.X, ev.Y)
		m.setHighlight(idx)
		if idx < 0 {
			return false
		}
		if m.kind != Menubar && m.forwardToEmbedded(idx, ev) {
			return true
		}
		m.mu.Lock()
		it := m.items[idx]
		barOpen := m.kind == Menubar && m.child != nil && m.childIdx != idx
		m.mu.Unlock()
		if barOpen {
			// An open menubar tracks hover: moving onto another title
			// switches menus immediately.
			m.openSubmenu(idx)
		} else if it.Kind == MenuSubmenu && m.kind != Menubar {
			m.scheduleSubmenu(idx)
		}
		return true
	case EventMouseLeave:
		if m.kind != Menubar {
			m.setHighlight(-1)
		}
		m.cancelPending()
	case EventMouseDown:
		if ev.Button != ButtonLeft {
			return false
		}
		idx := m.itemAt(ev.X, ev.Y)
		if idx < 0 {
			return m.kind != Menubar
		}
		if m.kind != Menubar && m.forwardToEmbedded(idx, ev) {
			m.setHighlight(idx)
			return true
		}
		if m.kind == Menubar {
			m.mu.Lock()
			alreadyOpen := m.childIdx == idx
			m.mu.Unlock()
			if alreadyOpen {
				m.closeChild()
			} else {
				m.openSubmenu(idx)
			}
			return true
		}
		return true
	case EventMouseUp:
		idx := m.itemAt(ev.X, ev.Y)
		if idx >= 0 && m.kind != Menubar {
			if m.forwardToEmbedded(idx, ev) {
				return true
			}
			m.activate(idx)
			return true
		}
		return m.kind != Menubar
	case EventKeyDown:
		return m.handleKey(ev)
	case EventKeyChar:
		if in := m.deepest().hostedInput(); in != nil {
			return in.OnEvent(ev)
		}
	}
	return false
}

// scheduleSubmenu opens items[idx].Submenu after the hover delay.
func (m *Menu) scheduleSubmenu(idx int) {
	m.mu.Lock()
	if m.hoverTimer != nil {
		m.hoverTimer.Stop()
	}
	delay := m.hoverDelay
	m.hoverTimer = time.AfterFunc(delay, func() {
		m.openSubmenu(idx)
	})
	m.mu.Unlock()
}

func (m *Menu) cancelPending() {
	m.mu.Lock()
	if m.hoverTimer != nil {
		m.hoverTimer.Stop()
		m.hoverTimer = nil
	}
	m.mu.Unlock()
}

// handleKey navigates the open chain. The menubar holds focus; keys act
// on the deepest open menu.
func (m *Menu) handleKey(ev *Event) bool {
	target := m.deepest()
	// A highlighted Input row gets the editing keys, Enter included, so
	// the field can commit through its own OnSubmit. Escape and Up/Down
	// stay with the menu for dismissal and navigation.
	if in := target.hostedInput(); in != nil {
		switch ev.VirtualKey {
		case KeyEscape, KeyUp, KeyDown:
		default:
			if in.OnEvent(ev) {
				target.RequestRedraw()
				return true
			}
		}
	}
	switch ev.VirtualKey {
	case KeyEscape:
		if target == m {
			if m.kind == Menubar {
				m.closeChild()
				return true
			}
			return false
		}
		target.parent.closeChild()
		return true
	case KeyUp:
		if target.kind != Menubar {
			target.moveHighlight(-1)
			return true
		}
	case KeyDown:
		if target.kind == Menubar {
			// Open the highlighted title.
			m.mu.Lock()
			idx := m.highlight
			m.mu.Unlock()
			m.openSubmenu(idx)
			if sub := m.deepest(); sub != m {
				sub.moveHighlight(1)
			}
		} else {
			target.moveHighlight(1)
		}
		return true
	case KeyLeft:
		if target.kind == SubmenuMenu && target.parent != nil && target.parent.kind != Menubar {
			target.parent.closeChild()
			return true
		}
		// At the top popup level the bar steps to the previous title.
		bar := m.root()
		if bar.kind == Menubar {
			bar.stepBar(-1)
			return true
		}
	case KeyRight:
		target.mu.Lock()
		var it *MenuItem
		if target.highlight >= 0 && target.highlight < len(target.items) {
			it = target.items[target.highlight]
		}
		idx := target.highlight
		target.mu.Unlock()
		if it != nil && it.Kind == MenuSubmenu {
			target.openSubmenu(idx)
			if sub := target.deepest(); sub != target {
				sub.moveHighlight(1)
			}
			return true
		}
		bar := m.root()
		if bar.kind == Menubar {
			bar.stepBar(1)
			return true
		}
	case KeyEnter, KeySpace:
		target.mu.Lock()
		idx := target.highlight
		target.mu.Unlock()
		if target.kind == Menubar {
			target.openSubmenu(idx)
		} else {
			target.activate(idx)
		}
		return true
	}
	return false
}

// stepBar moves the open menubar menu to the adjacent title.
func (m *Menu) stepBar(delta int) {
	m.mu.Lock()
	n := len(m.items)
	idx := m.childIdx
	wasOpen := m.child != nil
	m.mu.Unlock()
	if n == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + delta + n) % n
	}
	if wasOpen {
		m.openSubmenu(idx)
		if sub := m.deepest(); sub != m {
			sub.moveHighlight(1)
		}
	} else {
		m.setHighlight(idx)
	}
}
