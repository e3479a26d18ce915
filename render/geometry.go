package render

import "github.com/chewxy/math32"

// Scalar constrains the numeric types geometry works with: int for screen
// coordinates, float32 for render coordinates.
type Scalar interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Point2D is a point in 2D space.
type Point2D[T Scalar] struct {
	X, Y T
}

// Size2D is a width/height pair.
type Size2D[T Scalar] struct {
	Width, Height T
}

// Rect2D is an axis-aligned rectangle with origin and size.
type Rect2D[T Scalar] struct {
	X, Y, Width, Height T
}

// Common concrete forms. Screen geometry is integer, render geometry float32.
type (
	Point  = Point2D[float32]
	Size   = Size2D[float32]
	Rect   = Rect2D[float32]
	PointI = Point2D[int]
	SizeI  = Size2D[int]
	RectI  = Rect2D[int]
)

// Pt is shorthand for a float32 point.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Sz is shorthand for a float32 size.
func Sz(w, h float32) Size { return Size{Width: w, Height: h} }

// Rc is shorthand for a float32 rect.
func Rc(x, y, w, h float32) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// Add returns the component-wise sum of two points.
func (p Point2D[T]) Add(q Point2D[T]) Point2D[T] {
	return Point2D[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point2D[T]) Sub(q Point2D[T]) Point2D[T] {
	return Point2D[T]{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsEmpty reports whether either dimension is not positive.
func (s Size2D[T]) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect2D[T]) Right() T { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect2D[T]) Bottom() T { return r.Y + r.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect2D[T]) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle. The top and
// left edges are inclusive, the bottom and right exclusive.
func (r Rect2D[T]) Contains(p Point2D[T]) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersect returns the overlap of two rectangles. An empty rectangle is
// returned when they do not overlap.
func (r Rect2D[T]) Intersect(o Rect2D[T]) Rect2D[T] {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect2D[T]{}
	}
	return Rect2D[T]{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Union returns the smallest rectangle containing both. Empty inputs are
// ignored.
func (r Rect2D[T]) Union(o Rect2D[T]) Rect2D[T] {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.X+r.Width, o.X+o.Width)
	y2 := max(r.Y+r.Height, o.Y+o.Height)
	return Rect2D[T]{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Inset shrinks the rectangle by d on every side. Collapses to empty when d
// exceeds half a dimension.
func (r Rect2D[T]) Inset(d T) Rect2D[T] {
	r.X += d
	r.Y += d
	r.Width -= 2 * d
	r.Height -= 2 * d
	if r.Width < 0 {
		r.Width = 0
	}
	if r.Height < 0 {
		r.Height = 0
	}
	return r
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect2D[T]) Offset(dx, dy T) Rect2D[T] {
	r.X += dx
	r.Y += dy
	return r
}

// RectIToRect converts an integer rect to render coordinates. Go does not
// allow methods on the instantiated aliases, so the conversions are free
// functions.
func RectIToRect(r RectI) Rect {
	return Rect{X: float32(r.X), Y: float32(r.Y), Width: float32(r.Width), Height: float32(r.Height)}
}

// RectToRectI rounds a render rect to screen coordinates.
func RectToRectI(r Rect) RectI {
	x := int(math32.Floor(r.X + 0.5))
	y := int(math32.Floor(r.Y + 0.5))
	return RectI{
		X:      x,
		Y:      y,
		Width:  int(math32.Floor(r.X+r.Width+0.5)) - x,
		Height: int(math32.Floor(r.Y+r.Height+0.5)) - y,
	}
}

// Dist returns the Euclidean distance between two float32 points.
func Dist(a, b Point) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

func min[T Scalar](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func max[T Scalar](a, b T) T {
	if a > b {
		return a
	}
	return b
}
