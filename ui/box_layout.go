package ui

import "github.com/ultracanvas/ultracanvas/render"

// BoxOrientation selects the main axis of a BoxLayout.
type BoxOrientation int

const (
	BoxHorizontal BoxOrientation = iota
	BoxVertical
)

// BoxItem wraps one element with linear-layout parameters.
type BoxItem struct {
	LayoutItem
	// Stretch distributes leftover main-axis space by weight. Zero means
	// the item keeps its fixed/auto size.
	Stretch float32
	// Align places the item on the cross axis.
	Align Alignment
}

// SetStretch configures the stretch weight, for chaining.
func (it *BoxItem) SetStretch(s float32) *BoxItem {
	it.Stretch = s
	return it
}

// SetAlign configures cross-axis alignment, for chaining.
func (it *BoxItem) SetAlign(a Alignment) *BoxItem {
	it.Align = a
	return it
}

// BoxLayout arranges items in a single row or column. Leftover space goes
// to stretch items by weight; without stretch items, MainAlign shifts the
// packed block.
type BoxLayout struct {
	baseLayout
	orientation BoxOrientation
	items       []*BoxItem

	// MainAlign positions the packed block when no stretch item absorbs
	// the leftover space.
	MainAlign Alignment
}

var _ Layout = (*BoxLayout)(nil)

// NewBoxLayout creates a box layout attached to the container.
func NewBoxLayout(c *Container, orientation BoxOrientation) (*BoxLayout, error) {
	base, err := newBaseLayout(c)
	if err != nil {
		return nil, err
	}
	l := &BoxLayout{baseLayout: base, orientation: orientation}
	c.SetLayout(l)
	return l, nil
}

// AddElement appends an element, adopting it into the container.
func (l *BoxLayout) AddElement(el Element) *BoxItem {
	return l.InsertElement(el, len(l.items))
}

// InsertElement inserts an element at the index, adopting it into the
// container. The returned item configures stretch and alignment.
func (l *BoxLayout) InsertElement(el Element, index int) *BoxItem {
	l.adopt(el)
	it := &BoxItem{}
	it.element = el
	if index < 0 || index > len(l.items) {
		index = len(l.items)
	}
	l.items = append(l.items[:index], append([]*BoxItem{it}, l.items[index:]...)...)
	l.dirty = true
	return it
}

// AddSpacing inserts a fixed-size placeholder with no element.
func (l *BoxLayout) AddSpacing(size float32) {
	it := &BoxItem{}
	it.WidthMode = SizeFixed
	it.HeightMode = SizeFixed
	it.FixedWidth = size
	it.FixedHeight = size
	l.items = append(l.items, it)
	l.dirty = true
}

// AddStretch inserts an invisible item that absorbs leftover space by
// weight.
func (l *BoxLayout) AddStretch(weight float32) {
	if weight <= 0 {
		weight = 1
	}
	it := &BoxItem{Stretch: weight}
	l.items = append(l.items, it)
	l.dirty = true
}

// RemoveElement implements Layout.
func (l *BoxLayout) RemoveElement(el Element) bool {
	for i, it := range l.items {
		if it.element == el {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.dirty = true
			return true
		}
	}
	return false
}

// Items returns the item list in layout order.
func (l *BoxLayout) Items() []*BoxItem { return l.items }

// PerformLayout implements Layout.
func (l *BoxLayout) PerformLayout(content render.Rect) {
	horizontal := l.orientation == BoxHorizontal
	mainSize := content.Width
	crossSize := content.Height
	if !horizontal {
		mainSize, crossSize = content.Height, content.Width
	}

	var visible []*BoxItem
	for _, it := range l.items {
		if it.IsVisible() {
			visible = append(visible, it)
		}
	}
	if len(visible) == 0 {
		l.dirty = false
		return
	}

	// First pass: fixed/auto sizes and stretch weights. Spacing between
	// fixed neighbors is charged against the distributable space; a
	// stretch item absorbs the gap that follows it.
	var fixedTotal, stretchTotal float32
	fixedCount := 0
	for _, it := range visible {
		if it.Stretch > 0 {
			stretchTotal += it.Stretch
			continue
		}
		fixedCount++
		if horizontal {
			fixedTotal += it.clampWidth(it.resolveWidth(mainSize))
		} else {
			fixedTotal += it.clampHeight(it.resolveHeight(mainSize))
		}
	}
	chargedGaps := len(visible) - 1
	if stretchTotal > 0 && fixedCount > 0 {
		chargedGaps = fixedCount - 1
	}
	remaining := mainSize - fixedTotal - l.spacing*float32(max(0, chargedGaps))
	var stretchUnit float32
	if stretchTotal > 0 && remaining > 0 {
		stretchUnit = remaining / stretchTotal
	}

	// Main-axis start offset when nothing absorbs the leftover.
	pos := float32(0)
	if stretchTotal == 0 && remaining > 0 {
		switch l.MainAlign {
		case AlignmentCenter:
			pos = remaining / 2
		case AlignmentEnd:
			pos = remaining
		}
	}

	for _, it := range visible {
		var main float32
		if it.Stretch > 0 {
			main = stretchUnit * it.Stretch
		} else if horizontal {
			main = it.resolveWidth(mainSize)
		} else {
			main = it.resolveHeight(mainSize)
		}
		if horizontal {
			main = it.clampWidth(main)
		} else {
			main = it.clampHeight(main)
		}

		cross, crossOff := l.crossPlacement(it, crossSize, horizontal)

		if horizontal {
			it.computed = render.Rect{X: pos, Y: crossOff, Width: main, Height: cross}
		} else {
			it.computed = render.Rect{X: crossOff, Y: pos, Width: cross, Height: main}
		}
		it.applyToElement()
		pos += main + l.spacing
	}
	l.dirty = false
}

func (l *BoxLayout) crossPlacement(it *BoxItem, crossSize float32, horizontal bool) (size, offset float32) {
	fill := it.Align == AlignmentFill ||
		(horizontal && it.HeightMode == SizeFill) ||
		(!horizontal && it.WidthMode == SizeFill)
	if fill {
		if horizontal {
			return it.clampHeight(crossSize), 0
		}
		return it.clampWidth(crossSize), 0
	}
	if horizontal {
		size = it.clampHeight(it.resolveHeight(crossSize))
	} else {
		size = it.clampWidth(it.resolveWidth(crossSize))
	}
	switch it.Align {
	case AlignmentCenter:
		offset = (crossSize - size) / 2
	case AlignmentEnd:
		offset = crossSize - size
	}
	return size, max(0, offset)
}

// MinimumSize implements Layout: the packed size using item minimums.
func (l *BoxLayout) MinimumSize() render.Size {
	return l.sumSize(func(it *BoxItem) (float32, float32) {
		return it.minWidth(), it.minHeight()
	})
}

// PreferredSize implements Layout: the packed size using preferred sizes.
func (l *BoxLayout) PreferredSize() render.Size {
	return l.sumSize(func(it *BoxItem) (float32, float32) {
		return it.resolveWidth(0), it.resolveHeight(0)
	})
}

func (l *BoxLayout) sumSize(measure func(*BoxItem) (float32, float32)) render.Size {
	var main, cross float32
	n := 0
	for _, it := range l.items {
		if !it.IsVisible() {
			continue
		}
		w, h := measure(it)
		m := it.Margin()
		w += m.Horizontal()
		h += m.Vertical()
		if l.orientation == BoxHorizontal {
			main += w
			cross = max(cross, h)
		} else {
			main += h
			cross = max(cross, w)
		}
		n++
	}
	if n > 1 {
		main += l.spacing * float32(n-1)
	}
	if l.orientation == BoxHorizontal {
		return render.Size{Width: main, Height: cross}
	}
	return render.Size{Width: cross, Height: main}
}
