package ui

import "github.com/ultracanvas/ultracanvas/render"

// TrackSizeMode describes how one grid row or column is sized.
type TrackSizeMode int

const (
	// TrackFixed is a pixel size.
	TrackFixed TrackSizeMode = iota
	// TrackAuto sizes to the largest non-spanning item in the track.
	TrackAuto
	// TrackPercent is a fraction of the available extent.
	TrackPercent
	// TrackStar shares the remaining space proportionally by weight.
	TrackStar
)

// TrackDef defines one row or column. Size is the pixel value for
// TrackFixed, the fraction for TrackPercent, and the weight for TrackStar.
// MaxSize zero means unbounded.
type TrackDef struct {
	Mode    TrackSizeMode
	Size    float32
	MinSize float32
	MaxSize float32
}

// FixedTrack is a pixel-sized track definition.
func FixedTrack(px float32) TrackDef { return TrackDef{Mode: TrackFixed, Size: px} }

// AutoTrack sizes to content.
func AutoTrack() TrackDef { return TrackDef{Mode: TrackAuto} }

// PercentTrack is a fraction of the available extent.
func PercentTrack(frac float32) TrackDef { return TrackDef{Mode: TrackPercent, Size: frac} }

// StarTrack shares remaining space by weight.
func StarTrack(weight float32) TrackDef { return TrackDef{Mode: TrackStar, Size: weight} }

// GridItem wraps one element with its cell placement.
type GridItem struct {
	LayoutItem
	Row, Col         int
	RowSpan, ColSpan int
	HAlign, VAlign   Alignment
}

// SetSpan configures row and column spans, for chaining.
func (it *GridItem) SetSpan(rowSpan, colSpan int) *GridItem {
	if rowSpan < 1 {
		rowSpan = 1
	}
	if colSpan < 1 {
		colSpan = 1
	}
	it.RowSpan, it.ColSpan = rowSpan, colSpan
	return it
}

// SetAlign configures in-cell alignment, for chaining.
func (it *GridItem) SetAlign(h, v Alignment) *GridItem {
	it.HAlign, it.VAlign = h, v
	return it
}

// GridLayout places items into rows and columns with spanning. Inserting
// at a cell beyond the defined tracks grows the definitions with Auto
// tracks.
type GridLayout struct {
	baseLayout
	rows  []TrackDef
	cols  []TrackDef
	items []*GridItem

	// Floors for Auto tracks with no measurable content.
	AutoRowMinimum    float32
	AutoColumnMinimum float32

	// Computed track sizes from the last PerformLayout.
	rowSizes []float32
	colSizes []float32
}

var _ Layout = (*GridLayout)(nil)

// NewGridLayout creates a grid layout attached to the container.
func NewGridLayout(c *Container) (*GridLayout, error) {
	base, err := newBaseLayout(c)
	if err != nil {
		return nil, err
	}
	l := &GridLayout{
		baseLayout:        base,
		AutoRowMinimum:    20,
		AutoColumnMinimum: 50,
	}
	c.SetLayout(l)
	return l, nil
}

// SetRowDefinitions replaces the row tracks.
func (l *GridLayout) SetRowDefinitions(defs ...TrackDef) {
	l.rows = defs
	l.dirty = true
}

// SetColumnDefinitions replaces the column tracks.
func (l *GridLayout) SetColumnDefinitions(defs ...TrackDef) {
	l.cols = defs
	l.dirty = true
}

// AddElement places an element at (row, col) with span 1x1, growing track
// definitions as needed.
func (l *GridLayout) AddElement(el Element, row, col int) *GridItem {
	l.adopt(el)
	it := &GridItem{Row: row, Col: col, RowSpan: 1, ColSpan: 1}
	it.element = el
	l.growTracks(row+1, col+1)
	l.items = append(l.items, it)
	l.dirty = true
	return it
}

func (l *GridLayout) growTracks(rows, cols int) {
	for len(l.rows) < rows {
		l.rows = append(l.rows, AutoTrack())
	}
	for len(l.cols) < cols {
		l.cols = append(l.cols, AutoTrack())
	}
}

// RemoveElement implements Layout.
func (l *GridLayout) RemoveElement(el Element) bool {
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
func (l *GridLayout) Items() []*GridItem { return l.items }

// ColumnSizes returns the resolved column widths from the last layout.
func (l *GridLayout) ColumnSizes() []float32 { return l.colSizes }

// RowSizes returns the resolved row heights from the last layout.
func (l *GridLayout) RowSizes() []float32 { return l.rowSizes }

// PerformLayout implements Layout.
func (l *GridLayout) PerformLayout(content render.Rect) {
	for _, it := range l.items {
		l.growTracks(it.Row+it.RowSpan, it.Col+it.ColSpan)
	}
	l.colSizes = l.resolveTracks(l.cols, content.Width, l.AutoColumnMinimum, l.autoColumnSize)
	l.rowSizes = l.resolveTracks(l.rows, content.Height, l.AutoRowMinimum, l.autoRowSize)

	for _, it := range l.items {
		if !it.IsVisible() {
			continue
		}
		cell := l.cellBounds(it)
		l.placeInCell(it, cell, content)
		it.applyToElement()
	}
	l.dirty = false
}

// resolveTracks computes pixel sizes for one axis: fixed and percent
// first, then auto from content, then star over the remainder.
func (l *GridLayout) resolveTracks(defs []TrackDef, available, autoFloor float32, autoSize func(track int) float32) []float32 {
	sizes := make([]float32, len(defs))
	var used, starTotal float32
	for i, def := range defs {
		switch def.Mode {
		case TrackFixed:
			sizes[i] = def.Size
		case TrackPercent:
			sizes[i] = available * def.Size
		case TrackAuto:
			sizes[i] = max(autoFloor, autoSize(i))
		case TrackStar:
			starTotal += def.Size
			continue
		}
		sizes[i] = clampTrack(sizes[i], def)
		used += sizes[i]
	}
	if len(defs) > 1 {
		used += l.spacing * float32(len(defs)-1)
	}
	if starTotal > 0 {
		remaining := max(0, available-used)
		for i, def := range defs {
			if def.Mode == TrackStar {
				sizes[i] = clampTrack(remaining*def.Size/starTotal, def)
			}
		}
	}
	return sizes
}

func clampTrack(v float32, def TrackDef) float32 {
	if v < def.MinSize {
		v = def.MinSize
	}
	if def.MaxSize > 0 && v > def.MaxSize {
		v = def.MaxSize
	}
	return v
}

// autoColumnSize is the widest preferred width among visible non-spanning
// items in the column.
func (l *GridLayout) autoColumnSize(col int) float32 {
	var w float32
	for _, it := range l.items {
		if !it.IsVisible() || it.Col != col || it.ColSpan > 1 {
			continue
		}
		m := it.Margin()
		w = max(w, it.resolveWidth(0)+m.Horizontal())
	}
	return w
}

func (l *GridLayout) autoRowSize(row int) float32 {
	var h float32
	for _, it := range l.items {
		if !it.IsVisible() || it.Row != row || it.RowSpan > 1 {
			continue
		}
		m := it.Margin()
		h = max(h, it.resolveHeight(0)+m.Vertical())
	}
	return h
}

// cellBounds sums track sizes and spacing for the item's cell region.
func (l *GridLayout) cellBounds(it *GridItem) render.Rect {
	x := spanOffset(l.colSizes, it.Col, l.spacing)
	y := spanOffset(l.rowSizes, it.Row, l.spacing)
	w := spanSize(l.colSizes, it.Col, it.ColSpan, l.spacing)
	h := spanSize(l.rowSizes, it.Row, it.RowSpan, l.spacing)
	return render.Rect{X: x, Y: y, Width: w, Height: h}
}

func spanOffset(sizes []float32, index int, spacing float32) float32 {
	var off float32
	for i := 0; i < index && i < len(sizes); i++ {
		off += sizes[i] + spacing
	}
	return off
}

func spanSize(sizes []float32, index, span int, spacing float32) float32 {
	var total float32
	for i := index; i < index+span && i < len(sizes); i++ {
		total += sizes[i]
	}
	if span > 1 {
		total += spacing * float32(span-1)
	}
	return total
}

// placeInCell sizes the item by mode and aligns it within the cell.
func (l *GridLayout) placeInCell(it *GridItem, cell, content render.Rect) {
	w := cell.Width
	if it.HAlign != AlignmentFill && it.WidthMode != SizeFill {
		w = it.clampWidth(min(it.resolveWidth(cell.Width), cell.Width))
	} else {
		w = it.clampWidth(w)
	}
	h := cell.Height
	if it.VAlign != AlignmentFill && it.HeightMode != SizeFill {
		h = it.clampHeight(min(it.resolveHeight(cell.Height), cell.Height))
	} else {
		h = it.clampHeight(h)
	}

	x := cell.X
	switch it.HAlign {
	case AlignmentCenter:
		x += (cell.Width - w) / 2
	case AlignmentEnd:
		x += cell.Width - w
	}
	y := cell.Y
	switch it.VAlign {
	case AlignmentCenter:
		y += (cell.Height - h) / 2
	case AlignmentEnd:
		y += cell.Height - h
	}
	it.computed = render.Rect{X: x, Y: y, Width: w, Height: h}
}

// MinimumSize implements Layout.
func (l *GridLayout) MinimumSize() render.Size {
	var w, h float32
	for _, def := range l.cols {
		w += def.MinSize
	}
	for _, def := range l.rows {
		h += def.MinSize
	}
	return render.Size{Width: w, Height: h}
}

// PreferredSize implements Layout: fixed and auto tracks at their
// resolved size, star tracks at their minimum.
func (l *GridLayout) PreferredSize() render.Size {
	var w float32
	for i, def := range l.cols {
		switch def.Mode {
		case TrackFixed:
			w += def.Size
		case TrackAuto:
			w += max(l.AutoColumnMinimum, l.autoColumnSize(i))
		default:
			w += def.MinSize
		}
	}
	var h float32
	for i, def := range l.rows {
		switch def.Mode {
		case TrackFixed:
			h += def.Size
		case TrackAuto:
			h += max(l.AutoRowMinimum, l.autoRowSize(i))
		default:
			h += def.MinSize
		}
	}
	if len(l.cols) > 1 {
		w += l.spacing * float32(len(l.cols)-1)
	}
	if len(l.rows) > 1 {
		h += l.spacing * float32(len(l.rows)-1)
	}
	return render.Size{Width: w, Height: h}
}
