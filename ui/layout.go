package ui

import (
	"errors"

	"github.com/ultracanvas/ultracanvas/render"
)

// ErrNilContainer is returned when a layout is created without a container.
var ErrNilContainer = errors.New("ui: layout requires a container")

// SizeMode describes how a layout resolves one axis of an item.
type SizeMode int

const (
	// SizeAuto uses the element's preferred size.
	SizeAuto SizeMode = iota
	// SizeFixed uses the item's fixed pixel value.
	SizeFixed
	// SizeFill stretches to the space the layout assigns.
	SizeFill
	// SizePercent resolves to a fraction of the available space.
	SizePercent
)

// Alignment places an item within the space a layout cell grants it.
type Alignment int

const (
	AlignmentStart Alignment = iota
	AlignmentCenter
	AlignmentEnd
	AlignmentFill
)

// Layout computes geometry for the children of one container. It owns
// ordered items wrapping the children but never mutates the container's
// child list during PerformLayout.
type Layout interface {
	// PerformLayout assigns geometry to every visible item within the
	// content rectangle (container-content coordinates).
	PerformLayout(content render.Rect)
	// RemoveElement drops the item wrapping the element.
	RemoveElement(el Element) bool
	// MinimumSize and PreferredSize feed the container's own size hints.
	MinimumSize() render.Size
	PreferredSize() render.Size
	// Invalidate marks the layout dirty; the container re-runs it before
	// the next render.
	Invalidate()
	Dirty() bool
}

// LayoutItem wraps one element with per-layout sizing attributes. Concrete
// layouts embed it in their own item types to add their parameters.
type LayoutItem struct {
	element Element // nil for spacer items

	WidthMode     SizeMode
	HeightMode    SizeMode
	FixedWidth    float32
	FixedHeight   float32
	WidthPercent  float32 // fraction in [0,1] when WidthMode is SizePercent
	HeightPercent float32

	// Explicit constraint overrides; nil falls back to the element hints.
	MinWidth, MinHeight *float32
	MaxWidth, MaxHeight *float32

	computed render.Rect
}

// Element returns the wrapped element; nil for spacers.
func (it *LayoutItem) Element() Element { return it.element }

// IsVisible reports whether the item takes part in layout.
func (it *LayoutItem) IsVisible() bool {
	return it.element == nil || it.element.Visible()
}

// Computed returns the geometry assigned by the last PerformLayout.
func (it *LayoutItem) Computed() render.Rect { return it.computed }

// Margin returns the wrapped element's margin, zero for spacers.
func (it *LayoutItem) Margin() Insets {
	if it.element == nil {
		return Insets{}
	}
	return it.element.Margin()
}

// resolveWidth computes the main width for Fixed/Percent/Auto modes.
// SizeFill is resolved by the owning layout.
func (it *LayoutItem) resolveWidth(available float32) float32 {
	switch it.WidthMode {
	case SizeFixed:
		return it.FixedWidth
	case SizePercent:
		return available * it.WidthPercent
	default:
		if it.element != nil {
			return it.element.PreferredSize().Width
		}
		return it.FixedWidth
	}
}

func (it *LayoutItem) resolveHeight(available float32) float32 {
	switch it.HeightMode {
	case SizeFixed:
		return it.FixedHeight
	case SizePercent:
		return available * it.HeightPercent
	default:
		if it.element != nil {
			return it.element.PreferredSize().Height
		}
		return it.FixedHeight
	}
}

func (it *LayoutItem) minWidth() float32 {
	if it.MinWidth != nil {
		return *it.MinWidth
	}
	if it.element != nil {
		return it.element.MinSize().Width
	}
	return 0
}

func (it *LayoutItem) minHeight() float32 {
	if it.MinHeight != nil {
		return *it.MinHeight
	}
	if it.element != nil {
		return it.element.MinSize().Height
	}
	return 0
}

func (it *LayoutItem) maxWidth() float32 {
	if it.MaxWidth != nil {
		return *it.MaxWidth
	}
	if it.element != nil {
		return it.element.MaxSize().Width
	}
	return unbounded
}

func (it *LayoutItem) maxHeight() float32 {
	if it.MaxHeight != nil {
		return *it.MaxHeight
	}
	if it.element != nil {
		return it.element.MaxSize().Height
	}
	return unbounded
}

func (it *LayoutItem) clampWidth(w float32) float32 {
	return clamp(w, it.minWidth(), it.maxWidth())
}

func (it *LayoutItem) clampHeight(h float32) float32 {
	return clamp(h, it.minHeight(), it.maxHeight())
}

// applyToElement writes the computed geometry into the element, shrinking
// by the element margins.
func (it *LayoutItem) applyToElement() {
	if it.element == nil {
		return
	}
	m := it.Margin()
	r := render.Rect{
		X:      it.computed.X + m.Left,
		Y:      it.computed.Y + m.Top,
		Width:  max(0, it.computed.Width-m.Horizontal()),
		Height: max(0, it.computed.Height-m.Vertical()),
	}
	if be, ok := it.element.(interface{ setBoundsDirect(render.Rect) }); ok {
		be.setBoundsDirect(r)
		return
	}
	it.element.SetBounds(r.X, r.Y, r.Width, r.Height)
}

// baseLayout carries the shared layout state.
type baseLayout struct {
	container *Container
	spacing   float32
	dirty     bool
}

func newBaseLayout(c *Container) (baseLayout, error) {
	if c == nil {
		return baseLayout{}, ErrNilContainer
	}
	return baseLayout{container: c, dirty: true}, nil
}

// Invalidate marks the layout for recomputation before the next render.
func (l *baseLayout) Invalidate() { l.dirty = true }

// Dirty reports whether PerformLayout must run.
func (l *baseLayout) Dirty() bool { return l.dirty }

// SetSpacing sets the gap between adjacent items.
func (l *baseLayout) SetSpacing(s float32) {
	l.spacing = s
	l.dirty = true
}

// Spacing returns the inter-item gap.
func (l *baseLayout) Spacing() float32 { return l.spacing }

// adopt adds the element to the container when not already present.
func (l *baseLayout) adopt(el Element) {
	if el == nil {
		return
	}
	l.container.AddOrMoveChild(el, -1)
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
