package ui

import (
	"sort"
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// ToolbarOverflow selects what happens to items that do not fit.
type ToolbarOverflow int

const (
	// OverflowNone clips overflowing items at the toolbar edge.
	OverflowNone ToolbarOverflow = iota
	// OverflowWrap flows items onto additional rows or columns.
	OverflowWrap
	// OverflowMenu hides overflowing items and lists them in a chevron
	// menu generated from the items.
	OverflowMenu
	// OverflowScroll keeps one row and scrolls along the main axis.
	OverflowScroll
	// OverflowHide hides overflowing items outright.
	OverflowHide
)

// ToolbarItemKind tags what an entry is; separators and spacers have no
// element.
type ToolbarItemKind int

const (
	ToolWidget ToolbarItemKind = iota
	ToolSeparator
	ToolSpacer
	ToolStretch
)

// ToolbarItem is one toolbar entry. Widget entries carry the element plus
// the label and action used when the item is relocated into the overflow
// menu.
type ToolbarItem struct {
	Kind    ToolbarItemKind
	Element Element
	// Label names the item in the auto-generated overflow menu.
	Label string
	// Activate re-triggers the item from the overflow menu.
	Activate func()
	// Priority orders overflow hiding: lower values hide first.
	Priority int
	// Width is the fixed main-axis extent of a ToolSpacer.
	Width float32

	hidden bool
	// rect is the placed geometry of element-less entries (separators).
	rect       render.Rect
	horizontal bool
}

const (
	toolbarRowSize   = float32(32)
	toolbarSeparator = float32(9)
	toolbarGap       = float32(4)
	toolbarChevronW  = float32(20)
)

// Toolbar is a strip of small controls with five overflow strategies. It
// is a container; the entries' elements are its children.
type Toolbar struct {
	*Container

	mu sync.Mutex

	orientation BoxOrientation
	overflow    ToolbarOverflow
	items       []*ToolbarItem

	chevron      *Button
	overflowMenu *Menu
}

// NewToolbar creates an empty toolbar.
func NewToolbar(id string, orientation BoxOrientation) *Toolbar {
	t := &Toolbar{
		Container:   NewContainer(id),
		orientation: orientation,
	}
	t.Container.setOwner(t)
	t.SetScrollEnabled(false)
	t.SetPadding(UniformInsets(3))
	bg := render.Color{R: 242, G: 242, B: 242, A: 255}
	t.SetBackground(bg)
	t.SetLayout(&toolbarLayout{toolbar: t})

	t.chevron = NewButton(id+".overflow", "»")
	t.chevron.SetPadding(Insets{Left: 4, Top: 2, Right: 4, Bottom: 2})
	t.chevron.SetVisible(false)
	t.chevron.OnClick = t.openOverflowMenu
	t.Container.AddChild(t.chevron)
	return t
}

// SetOverflowMode selects the overflow strategy, for chaining.
func (t *Toolbar) SetOverflowMode(m ToolbarOverflow) *Toolbar {
	t.mu.Lock()
	t.overflow = m
	t.mu.Unlock()
	t.SetScrollEnabled(m == OverflowScroll)
	t.markLayoutDirty()
	return t
}

// OverflowMode returns the active strategy.
func (t *Toolbar) OverflowMode() ToolbarOverflow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overflow
}

// Items returns the entries in order.
func (t *Toolbar) Items() []*ToolbarItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.items
}

// AddItem appends a prepared entry and adopts its element.
func (t *Toolbar) AddItem(it *ToolbarItem) *ToolbarItem {
	t.mu.Lock()
	t.items = append(t.items, it)
	t.mu.Unlock()
	if it.Element != nil {
		t.Container.AddChild(it.Element)
	}
	t.markLayoutDirty()
	return it
}

// AddButton appends a push button.
func (t *Toolbar) AddButton(id, label string, onClick func()) *Button {
	b := NewButton(id, label)
	b.SetPadding(Insets{Left: 8, Top: 3, Right: 8, Bottom: 3})
	b.OnClick = onClick
	t.AddItem(&ToolbarItem{Kind: ToolWidget, Element: b, Label: label, Activate: onClick})
	return b
}

// AddToggle appends a latching button.
func (t *Toolbar) AddToggle(id, label string, onClick func()) *Button {
	b := t.AddButton(id, label, onClick)
	b.SetToggle(true)
	return b
}

// AddDropdown appends a dropdown with the given options.
func (t *Toolbar) AddDropdown(id string, options ...string) *Dropdown {
	d := NewDropdown(id, options...)
	t.AddItem(&ToolbarItem{Kind: ToolWidget, Element: d, Label: id, Activate: d.Open})
	return d
}

// AddLabel appends a static caption.
func (t *Toolbar) AddLabel(id, text string) *Label {
	l := NewLabel(id, text)
	t.AddItem(&ToolbarItem{Kind: ToolWidget, Element: l, Label: text})
	return l
}

// AddInput appends a text field with a fixed main-axis width.
func (t *Toolbar) AddInput(id string, width float32) *TextInput {
	in := NewTextInput(id)
	in.SetPreferredSize(width, toolbarRowSize-6)
	t.AddItem(&ToolbarItem{Kind: ToolWidget, Element: in, Label: id})
	return in
}

// AddCheckbox appends a checkbox.
func (t *Toolbar) AddCheckbox(id, label string) *Checkbox {
	c := NewCheckbox(id, label)
	t.AddItem(&ToolbarItem{Kind: ToolWidget, Element: c, Label: label, Activate: c.toggle})
	return c
}

// AddSeparator appends a thin divider.
func (t *Toolbar) AddSeparator() *ToolbarItem {
	return t.AddItem(&ToolbarItem{Kind: ToolSeparator})
}

// AddSpacer appends fixed empty space.
func (t *Toolbar) AddSpacer(width float32) *ToolbarItem {
	return t.AddItem(&ToolbarItem{Kind: ToolSpacer, Width: width})
}

// AddStretch appends expanding space pushing later items to the far end.
func (t *Toolbar) AddStretch() *ToolbarItem {
	return t.AddItem(&ToolbarItem{Kind: ToolStretch})
}

// openOverflowMenu builds a popup from the hidden items by priority and
// shows it under the chevron.
func (t *Toolbar) openOverflowMenu() {
	w := t.Window()
	if w == nil {
		return
	}
	menu := NewMenu(t.StringID()+".overflowmenu", PopupMenu)
	t.mu.Lock()
	for _, it := range t.items {
		if !it.hidden || it.Kind != ToolWidget {
			continue
		}
		menu.AddItem(ActionItem(it.Label, "", it.Activate))
	}
	t.overflowMenu = menu
	t.mu.Unlock()
	if len(menu.Items()) == 0 {
		return
	}

	menu.SetWindow(w)
	size := menu.popupSize(w)
	origin := t.chevron.WindowPoint()
	cb := t.chevron.Bounds()
	menu.setBoundsDirect(render.Rect{
		X: origin.X + cb.Width - size.Width, Y: origin.Y + cb.Height,
		Width: size.Width, Height: size.Height,
	})
	w.ShowPopup(menu)
}

// PreferredSize is one row across the parent's main axis.
func (t *Toolbar) PreferredSize() render.Size {
	if t.orientation == BoxHorizontal {
		return render.Size{Width: unbounded, Height: toolbarRowSize}
	}
	return render.Size{Width: toolbarRowSize, Height: unbounded}
}

// toolbarLayout places the entries. It is not constructed directly;
// NewToolbar installs it.
type toolbarLayout struct {
	toolbar *Toolbar
	dirty   bool
}

var _ Layout = (*toolbarLayout)(nil)

func (l *toolbarLayout) Invalidate() { l.dirty = true }
func (l *toolbarLayout) Dirty() bool { return l.dirty }
func (l *toolbarLayout) RemoveElement(el Element) bool {
	t := l.toolbar
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, it := range t.items {
		if it.Element == el {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// mainExtent is the main-axis size an entry wants.
func (l *toolbarLayout) mainExtent(it *ToolbarItem, horizontal bool) float32 {
	switch it.Kind {
	case ToolSeparator:
		return toolbarSeparator
	case ToolSpacer:
		return it.Width
	case ToolStretch:
		return 0
	}
	pref := it.Element.PreferredSize()
	if horizontal {
		return pref.Width
	}
	return pref.Height
}

func (l *toolbarLayout) PerformLayout(content render.Rect) {
	t := l.toolbar
	horizontal := t.orientation == BoxHorizontal
	mainSize := content.Width
	crossSize := content.Height
	if !horizontal {
		mainSize, crossSize = content.Height, content.Width
	}

	t.mu.Lock()
	items := make([]*ToolbarItem, len(t.items))
	copy(items, t.items)
	overflow := t.overflow
	t.mu.Unlock()

	for _, it := range items {
		it.hidden = false
	}

	switch overflow {
	case OverflowMenu, OverflowHide:
		l.hideOverflow(items, mainSize, horizontal, overflow == OverflowMenu)
	}

	needChevron := false
	for _, it := range items {
		if it.hidden {
			needChevron = true
			break
		}
	}
	t.chevron.SetVisible(overflow == OverflowMenu && needChevron)

	var pos, cross float32
	wrap := overflow == OverflowWrap
	for _, it := range items {
		if it.hidden {
			l.place(it, render.Rect{X: -10000, Y: -10000}, horizontal)
			continue
		}
		if it.Kind == ToolStretch {
			pos += l.stretchExtent(items, it, mainSize, horizontal)
			continue
		}
		main := l.mainExtent(it, horizontal)
		if wrap && pos > 0 && pos+main > mainSize {
			pos = 0
			cross += toolbarRowSize
		}
		itemCross := l.crossExtent(it, horizontal)
		crossOff := cross + (toolbarRowSize-itemCross)/2
		if crossOff < cross {
			crossOff = cross
		}
		var r render.Rect
		if horizontal {
			r = render.Rect{X: pos, Y: crossOff, Width: main, Height: itemCross}
		} else {
			r = render.Rect{X: crossOff, Y: pos, Width: itemCross, Height: main}
		}
		l.place(it, r, horizontal)
		pos += main + toolbarGap
	}

	// Chevron pinned at the trailing edge.
	if t.chevron.Visible() {
		if horizontal {
			t.chevron.setBoundsDirect(render.Rect{
				X: mainSize - toolbarChevronW, Y: 0,
				Width: toolbarChevronW, Height: crossSize,
			})
		} else {
			t.chevron.setBoundsDirect(render.Rect{
				X: 0, Y: mainSize - toolbarChevronW,
				Width: crossSize, Height: toolbarChevronW,
			})
		}
	}
	l.dirty = false
}

// hideOverflow drops lowest-priority widget entries until the rest fit.
// withChevron reserves space for the overflow button.
func (l *toolbarLayout) hideOverflow(items []*ToolbarItem, mainSize float32, horizontal, withChevron bool) {
	total := func() float32 {
		var sum float32
		for _, it := range items {
			if it.hidden || it.Kind == ToolStretch {
				continue
			}
			sum += l.mainExtent(it, horizontal) + toolbarGap
		}
		return sum
	}
	budget := mainSize
	if withChevron {
		budget -= toolbarChevronW + toolbarGap
	}
	if total() <= budget {
		return
	}

	// Hiding candidates, lowest priority first, later entries before
	// earlier ones at equal priority.
	candidates := make([]*ToolbarItem, 0, len(items))
	for _, it := range items {
		if it.Kind == ToolWidget {
			candidates = append(candidates, it)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	for _, it := range candidates {
		if total() <= budget {
			break
		}
		it.hidden = true
	}
}

// stretchExtent divides leftover space among the stretch entries.
func (l *toolbarLayout) stretchExtent(items []*ToolbarItem, _ *ToolbarItem, mainSize float32, horizontal bool) float32 {
	var used float32
	stretches := 0
	for _, it := range items {
		if it.hidden {
			continue
		}
		if it.Kind == ToolStretch {
			stretches++
			continue
		}
		used += l.mainExtent(it, horizontal) + toolbarGap
	}
	if stretches == 0 || used >= mainSize {
		return 0
	}
	return (mainSize - used) / float32(stretches)
}

func (l *toolbarLayout) place(it *ToolbarItem, r render.Rect, horizontal bool) {
	if it.Element == nil {
		it.bounds(r, horizontal)
		return
	}
	type direct interface{ setBoundsDirect(render.Rect) }
	if d, ok := it.Element.(direct); ok {
		d.setBoundsDirect(r)
	} else {
		it.Element.SetBounds(r.X, r.Y, r.Width, r.Height)
	}
}

// bounds records the geometry of an element-less entry so separators can
// be drawn.
func (it *ToolbarItem) bounds(r render.Rect, horizontal bool) {
	it.rect = r
	it.horizontal = horizontal
}

func (l *toolbarLayout) crossExtent(it *ToolbarItem, horizontal bool) float32 {
	if it.Element == nil {
		return toolbarRowSize - 6
	}
	pref := it.Element.PreferredSize()
	c := pref.Height
	if !horizontal {
		c = pref.Width
	}
	if c <= 0 || c > toolbarRowSize-4 {
		c = toolbarRowSize - 6
	}
	return c
}

func (l *toolbarLayout) MinimumSize() render.Size {
	if l.toolbar.orientation == BoxHorizontal {
		return render.Size{Width: toolbarChevronW, Height: toolbarRowSize}
	}
	return render.Size{Width: toolbarRowSize, Height: toolbarChevronW}
}

func (l *toolbarLayout) PreferredSize() render.Size {
	t := l.toolbar
	horizontal := t.orientation == BoxHorizontal
	var main float32
	t.mu.Lock()
	items := t.items
	t.mu.Unlock()
	for _, it := range items {
		if it.Kind == ToolStretch {
			continue
		}
		main += l.mainExtent(it, horizontal) + toolbarGap
	}
	if horizontal {
		return render.Size{Width: main, Height: toolbarRowSize}
	}
	return render.Size{Width: toolbarRowSize, Height: main}
}

// Render draws the strip, then separator ticks above the children.
func (t *Toolbar) Render(ctx render.Context) {
	t.Container.Render(ctx)

	t.mu.Lock()
	items := t.items
	t.mu.Unlock()
	content := t.ContentArea()
	ctx.PushState()
	ctx.Translate(content.X, content.Y)
	ctx.SetStrokeColor(render.Color{R: 200, G: 200, B: 200, A: 255})
	ctx.SetStrokeWidth(1)
	for _, it := range items {
		if it.Kind != ToolSeparator || it.hidden {
			continue
		}
		r := it.rect
		if it.horizontal {
			x := r.X + r.Width/2
			ctx.DrawLine(x, r.Y+2, x, r.Y+r.Height-2)
		} else {
			y := r.Y + r.Height/2
			ctx.DrawLine(r.X+2, y, r.X+r.Width-2, y)
		}
	}
	ctx.PopState()
}
