package ui

import "github.com/ultracanvas/ultracanvas/render"

// FlexDirection sets the main axis and its direction.
type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexRowReverse
	FlexColumn
	FlexColumnReverse
)

// FlexWrap controls whether items wrap onto new lines.
type FlexWrap int

const (
	FlexNoWrap FlexWrap = iota
	FlexWrapWrap
	FlexWrapReverse
)

// JustifyContent distributes items along the main axis.
type JustifyContent int

const (
	JustifyStart JustifyContent = iota
	JustifyEnd
	JustifyCenter
	JustifyBetween
	JustifyAround
	JustifyEvenly
)

// AlignItems aligns items on the cross axis within their line.
type AlignItems int

const (
	AlignStart AlignItems = iota
	AlignEnd
	AlignCenter
	AlignStretch
	AlignBaseline
)

// AlignSelf overrides the line alignment for one item.
type AlignSelf int

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfStart
	AlignSelfEnd
	AlignSelfCenter
	AlignSelfStretch
	AlignSelfBaseline
)

// AlignContent distributes wrapped lines on the cross axis.
type AlignContent int

const (
	AlignContentStart AlignContent = iota
	AlignContentEnd
	AlignContentCenter
	AlignContentBetween
	AlignContentAround
	AlignContentStretch
)

// FlexItem wraps one element with flexbox parameters. Shrink defaults
// to 1.
type FlexItem struct {
	LayoutItem
	Grow   float32
	Shrink float32
	// Basis is the starting main size; nil uses the preferred size.
	Basis *float32
	Self  AlignSelf
}

// SetGrow configures the grow factor, for chaining.
func (it *FlexItem) SetGrow(g float32) *FlexItem {
	it.Grow = g
	return it
}

// SetShrink configures the shrink factor, for chaining.
func (it *FlexItem) SetShrink(s float32) *FlexItem {
	it.Shrink = s
	return it
}

// SetBasis configures the flex basis in pixels, for chaining.
func (it *FlexItem) SetBasis(b float32) *FlexItem {
	it.Basis = &b
	return it
}

// SetAlignSelf overrides the container's item alignment, for chaining.
func (it *FlexItem) SetAlignSelf(a AlignSelf) *FlexItem {
	it.Self = a
	return it
}

// FlexLayout implements CSS-flexbox line breaking, flexible length
// resolution, and two-axis alignment.
type FlexLayout struct {
	baseLayout
	Direction    FlexDirection
	Wrap         FlexWrap
	Justify      JustifyContent
	AlignItems   AlignItems
	AlignContent AlignContent
	RowGap       float32
	ColumnGap    float32

	items []*FlexItem
}

var _ Layout = (*FlexLayout)(nil)

// NewFlexLayout creates a flex layout attached to the container.
func NewFlexLayout(c *Container) (*FlexLayout, error) {
	base, err := newBaseLayout(c)
	if err != nil {
		return nil, err
	}
	l := &FlexLayout{baseLayout: base}
	c.SetLayout(l)
	return l, nil
}

// AddElement appends an element, adopting it into the container.
func (l *FlexLayout) AddElement(el Element) *FlexItem {
	l.adopt(el)
	it := &FlexItem{Shrink: 1}
	it.element = el
	l.items = append(l.items, it)
	l.dirty = true
	return it
}

// RemoveElement implements Layout.
func (l *FlexLayout) RemoveElement(el Element) bool {
	for i, it := range l.items {
		if it.element == el {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.dirty = true
			return true
		}
	}
	return false
}

// Items returns the item list.
func (l *FlexLayout) Items() []*FlexItem { return l.items }

func (l *FlexLayout) isRow() bool {
	return l.Direction == FlexRow || l.Direction == FlexRowReverse
}

func (l *FlexLayout) isReverse() bool {
	return l.Direction == FlexRowReverse || l.Direction == FlexColumnReverse
}

// mainGap is the gap between adjacent items in a line; crossGap between
// lines.
func (l *FlexLayout) mainGap() float32 {
	if l.isRow() {
		return l.ColumnGap
	}
	return l.RowGap
}

func (l *FlexLayout) crossGap() float32 {
	if l.isRow() {
		return l.RowGap
	}
	return l.ColumnGap
}

type flexLine struct {
	items []*FlexItem
	sizes []float32 // resolved main sizes, parallel to items
	cross float32
}

// PerformLayout implements Layout.
func (l *FlexLayout) PerformLayout(content render.Rect) {
	row := l.isRow()
	mainSize := content.Width
	crossSize := content.Height
	if !row {
		mainSize, crossSize = content.Height, content.Width
	}

	var visible []*FlexItem
	for _, it := range l.items {
		if it.IsVisible() {
			visible = append(visible, it)
		}
	}
	if len(visible) == 0 {
		l.dirty = false
		return
	}

	lines := l.breakLines(visible, mainSize, row)
	for i := range lines {
		l.resolveLine(&lines[i], mainSize, crossSize, row)
	}
	if l.Wrap == FlexWrapReverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}

	// Cross positions of the lines.
	var linesCross float32
	for i := range lines {
		linesCross += lines[i].cross
	}
	linesCross += l.crossGap() * float32(len(lines)-1)
	crossPos, crossBetween := l.alignLines(crossSize, linesCross, len(lines))

	for i := range lines {
		line := &lines[i]
		lineCross := line.cross
		if len(lines) == 1 && l.Wrap == FlexNoWrap {
			// A single unwrapped line stretches to the container.
			lineCross = crossSize
		}
		l.placeLine(line, mainSize, crossPos, lineCross, row)
		crossPos += lineCross + l.crossGap() + crossBetween
	}
	l.dirty = false
}

// breakLines walks items in order, starting a new line when the next item
// would overflow the main size and wrapping is enabled.
func (l *FlexLayout) breakLines(items []*FlexItem, mainSize float32, row bool) []flexLine {
	gap := l.mainGap()
	var lines []flexLine
	cur := flexLine{}
	var used float32
	for _, it := range items {
		base := l.baseSize(it, mainSize, row)
		needed := base
		if len(cur.items) > 0 {
			needed += gap
		}
		if l.Wrap != FlexNoWrap && len(cur.items) > 0 && used+needed > mainSize {
			lines = append(lines, cur)
			cur = flexLine{}
			used = 0
			needed = base
		}
		cur.items = append(cur.items, it)
		cur.sizes = append(cur.sizes, base)
		used += needed
	}
	if len(cur.items) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// baseSize is the flex basis when set, else the preferred main size.
func (l *FlexLayout) baseSize(it *FlexItem, mainSize float32, row bool) float32 {
	if it.Basis != nil {
		return *it.Basis
	}
	if row {
		return it.resolveWidth(mainSize)
	}
	return it.resolveHeight(mainSize)
}

// resolveLine distributes free space by grow or shrink factors, clamps to
// the item constraints, and computes the line cross extent.
func (l *FlexLayout) resolveLine(line *flexLine, mainSize, crossSize float32, row bool) {
	gap := l.mainGap()
	var used, growTotal, shrinkWeight float32
	for i, it := range line.items {
		used += line.sizes[i]
		growTotal += it.Grow
		shrinkWeight += it.Shrink * line.sizes[i]
	}
	used += gap * float32(len(line.items)-1)
	remaining := mainSize - used

	if remaining > 0 && growTotal > 0 {
		for i, it := range line.items {
			line.sizes[i] += remaining * it.Grow / growTotal
		}
	} else if remaining < 0 && shrinkWeight > 0 {
		for i, it := range line.items {
			line.sizes[i] += remaining * it.Shrink * line.sizes[i] / shrinkWeight
		}
	}
	for i, it := range line.items {
		if row {
			line.sizes[i] = it.clampWidth(line.sizes[i])
		} else {
			line.sizes[i] = it.clampHeight(line.sizes[i])
		}
	}

	for _, it := range line.items {
		line.cross = max(line.cross, l.itemCrossBase(it, crossSize, row))
	}
}

func (l *FlexLayout) itemCrossBase(it *FlexItem, crossSize float32, row bool) float32 {
	if row {
		return it.clampHeight(it.resolveHeight(crossSize))
	}
	return it.clampWidth(it.resolveWidth(crossSize))
}

// placeLine positions one line's items along the main axis per Justify
// and on the cross axis per align-items/align-self.
func (l *FlexLayout) placeLine(line *flexLine, mainSize, crossPos, lineCross float32, row bool) {
	gap := l.mainGap()
	var itemsMain float32
	for _, s := range line.sizes {
		itemsMain += s
	}
	itemsMain += gap * float32(len(line.items)-1)
	leftover := max(0, mainSize-itemsMain)

	pos, between := justifyOffsets(l.Justify, leftover, len(line.items))
	for i, it := range line.items {
		main := line.sizes[i]
		cross, crossOff := l.alignItem(it, lineCross, row)

		x, y := pos, crossPos+crossOff
		w, h := main, cross
		if !row {
			x, y = crossPos+crossOff, pos
			w, h = cross, main
		}
		if l.isReverse() {
			if row {
				x = mainSize - x - w
			} else {
				y = mainSize - y - h
			}
		}
		it.computed = render.Rect{X: x, Y: y, Width: w, Height: h}
		it.applyToElement()
		pos += main + gap + between
	}
}

// justifyOffsets returns the starting offset and the extra gap between
// adjacent items for the given leftover space.
func justifyOffsets(j JustifyContent, leftover float32, n int) (start, between float32) {
	if leftover <= 0 || n == 0 {
		return 0, 0
	}
	switch j {
	case JustifyEnd:
		return leftover, 0
	case JustifyCenter:
		return leftover / 2, 0
	case JustifyBetween:
		if n > 1 {
			return 0, leftover / float32(n-1)
		}
		return 0, 0
	case JustifyAround:
		around := leftover / float32(n)
		return around / 2, around
	case JustifyEvenly:
		even := leftover / float32(n+1)
		return even, even
	}
	return 0, 0
}

// alignItem resolves cross size and offset for one item within its line.
func (l *FlexLayout) alignItem(it *FlexItem, lineCross float32, row bool) (size, offset float32) {
	align := l.AlignItems
	switch it.Self {
	case AlignSelfStart:
		align = AlignStart
	case AlignSelfEnd:
		align = AlignEnd
	case AlignSelfCenter:
		align = AlignCenter
	case AlignSelfStretch:
		align = AlignStretch
	case AlignSelfBaseline:
		align = AlignBaseline
	}
	if align == AlignStretch {
		if row {
			return it.clampHeight(lineCross), 0
		}
		return it.clampWidth(lineCross), 0
	}
	size = l.itemCrossBase(it, lineCross, row)
	switch align {
	case AlignCenter:
		offset = (lineCross - size) / 2
	case AlignEnd:
		offset = lineCross - size
	}
	// Baseline degrades to start; item baselines are not exposed by the
	// element contract.
	return size, max(0, offset)
}

// alignLines computes the starting cross offset and extra inter-line gap
// per AlignContent.
func (l *FlexLayout) alignLines(crossSize, linesCross float32, n int) (start, between float32) {
	leftover := crossSize - linesCross
	if leftover <= 0 || n == 0 {
		return 0, 0
	}
	switch l.AlignContent {
	case AlignContentEnd:
		return leftover, 0
	case AlignContentCenter:
		return leftover / 2, 0
	case AlignContentBetween:
		if n > 1 {
			return 0, leftover / float32(n-1)
		}
	case AlignContentAround:
		around := leftover / float32(n)
		return around / 2, around
	}
	return 0, 0
}

// MinimumSize implements Layout.
func (l *FlexLayout) MinimumSize() render.Size {
	var w, h float32
	for _, it := range l.items {
		if !it.IsVisible() {
			continue
		}
		w = max(w, it.minWidth())
		h = max(h, it.minHeight())
	}
	return render.Size{Width: w, Height: h}
}

// PreferredSize implements Layout: the single-line packed size.
func (l *FlexLayout) PreferredSize() render.Size {
	row := l.isRow()
	var main, cross float32
	n := 0
	for _, it := range l.items {
		if !it.IsVisible() {
			continue
		}
		if row {
			main += l.baseSize(it, 0, true)
			cross = max(cross, it.resolveHeight(0))
		} else {
			main += l.baseSize(it, 0, false)
			cross = max(cross, it.resolveWidth(0))
		}
		n++
	}
	if n > 1 {
		main += l.mainGap() * float32(n-1)
	}
	if row {
		return render.Size{Width: main, Height: cross}
	}
	return render.Size{Width: cross, Height: main}
}
