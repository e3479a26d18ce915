package render

import (
	"sort"
	"sync/atomic"
)

// ExtendMode defines how a gradient extends beyond its stop range.
type ExtendMode int

const (
	// ExtendPad clamps to the edge colors (default).
	ExtendPad ExtendMode = iota
	// ExtendRepeat tiles the gradient.
	ExtendRepeat
	// ExtendReflect mirrors the gradient on each repetition.
	ExtendReflect
)

// GradientStop is a color at a position within a gradient. Positions are in
// [0, 1].
type GradientStop struct {
	Position float32
	Color    Color
}

// PatternKind distinguishes gradient geometries.
type PatternKind int

const (
	PatternLinear PatternKind = iota
	PatternRadial
)

// PaintPattern is an opaque, reference-counted handle to a backend gradient.
// Patterns may be shared across paints; Retain/Release manage the backend
// handle, and the last holder destroys it.
type PaintPattern struct {
	kind   PatternKind
	stops  []GradientStop
	extend ExtendMode

	// Linear: p0 -> p1. Radial: center c0/r0 to c1/r1.
	p0, p1 Point
	r0, r1 float32

	refs     atomic.Int32
	released atomic.Bool
	// onDestroy releases the backend handle, if the backend allocated one.
	onDestroy func()
}

// NewLinearGradient creates a linear gradient pattern from (x0,y0) to
// (x1,y1). Stops are sorted by position.
func NewLinearGradient(x0, y0, x1, y1 float32, stops []GradientStop) *PaintPattern {
	p := &PaintPattern{
		kind:   PatternLinear,
		stops:  sortStops(stops),
		p0:     Point{X: x0, Y: y0},
		p1:     Point{X: x1, Y: y1},
		extend: ExtendPad,
	}
	p.refs.Store(1)
	return p
}

// NewRadialGradient creates a radial gradient pattern between two circles.
func NewRadialGradient(cx0, cy0, r0, cx1, cy1, r1 float32, stops []GradientStop) *PaintPattern {
	p := &PaintPattern{
		kind:   PatternRadial,
		stops:  sortStops(stops),
		p0:     Point{X: cx0, Y: cy0},
		p1:     Point{X: cx1, Y: cy1},
		r0:     r0,
		r1:     r1,
		extend: ExtendPad,
	}
	p.refs.Store(1)
	return p
}

// SetExtend sets how the gradient behaves outside [0, 1].
func (p *PaintPattern) SetExtend(mode ExtendMode) *PaintPattern {
	p.extend = mode
	return p
}

// Kind returns the gradient geometry.
func (p *PaintPattern) Kind() PatternKind { return p.kind }

// Stops returns the sorted stop list.
func (p *PaintPattern) Stops() []GradientStop { return p.stops }

// Retain adds a reference for another holder.
func (p *PaintPattern) Retain() *PaintPattern {
	p.refs.Add(1)
	return p
}

// Release drops a reference. The last release destroys the backend handle.
func (p *PaintPattern) Release() {
	if p.refs.Add(-1) == 0 && p.released.CompareAndSwap(false, true) {
		if p.onDestroy != nil {
			p.onDestroy()
		}
	}
}

// ColorAt evaluates the gradient at the point, applying the extend mode.
// Backends without native gradient support sample through this.
func (p *PaintPattern) ColorAt(x, y float32) Color {
	if len(p.stops) == 0 {
		return Transparent
	}
	var t float32
	switch p.kind {
	case PatternLinear:
		dx := p.p1.X - p.p0.X
		dy := p.p1.Y - p.p0.Y
		lenSq := dx*dx + dy*dy
		if lenSq == 0 {
			t = 0
		} else {
			t = ((x-p.p0.X)*dx + (y-p.p0.Y)*dy) / lenSq
		}
	case PatternRadial:
		d := Dist(Point{X: x, Y: y}, p.p1)
		if p.r1 == p.r0 {
			t = 1
		} else {
			t = (d - p.r0) / (p.r1 - p.r0)
		}
	}
	return p.colorForOffset(applyExtend(t, p.extend))
}

func (p *PaintPattern) colorForOffset(t float32) Color {
	stops := p.stops
	if t <= stops[0].Position {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Position {
			lo, hi := stops[i-1], stops[i]
			span := hi.Position - lo.Position
			if span == 0 {
				return hi.Color
			}
			return lo.Color.Blend(hi.Color, (t-lo.Position)/span)
		}
	}
	return last.Color
}

func applyExtend(t float32, mode ExtendMode) float32 {
	switch mode {
	case ExtendRepeat:
		t -= float32(int(t))
		if t < 0 {
			t++
		}
	case ExtendReflect:
		if t < 0 {
			t = -t
		}
		period := int(t)
		t -= float32(period)
		if period%2 == 1 {
			t = 1 - t
		}
	default:
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return t
}

func sortStops(stops []GradientStop) []GradientStop {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

// Paint is a drawing source: either a solid color or a gradient pattern.
type Paint struct {
	Color   Color
	Pattern *PaintPattern // nil for solid paints
}

// SolidPaint wraps a color as a paint.
func SolidPaint(c Color) Paint {
	return Paint{Color: c}
}

// PatternPaint wraps a gradient pattern as a paint.
func PatternPaint(p *PaintPattern) Paint {
	return Paint{Pattern: p}
}

// IsPattern reports whether the paint samples a gradient.
func (p Paint) IsPattern() bool { return p.Pattern != nil }

// At evaluates the paint at a point with a global alpha multiplier.
func (p Paint) At(x, y, alpha float32) Color {
	if p.Pattern != nil {
		return p.Pattern.ColorAt(x, y).ScaleAlpha(alpha)
	}
	return p.Color.ScaleAlpha(alpha)
}
