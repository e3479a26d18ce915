package render

import "github.com/chewxy/math32"

// PathVerb identifies a path segment type.
type PathVerb uint8

const (
	VerbMove PathVerb = iota
	VerbLine
	VerbCubic
	VerbClose
)

// PathElement is one segment of a path. Cubic segments carry two control
// points; quadratic input is promoted to cubic on construction.
type PathElement struct {
	Verb      PathVerb
	P, C1, C2 Point
}

// Path accumulates segments for filling or stroking. The zero value is an
// empty path ready for use.
type Path struct {
	elements []PathElement
	current  Point
	start    Point
	hasStart bool
}

// Clear removes all segments.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.current = Point{}
	p.start = Point{}
	p.hasStart = false
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool { return len(p.elements) == 0 }

// Elements returns the accumulated segments.
func (p *Path) Elements() []PathElement { return p.elements }

// Current returns the current pen position.
func (p *Path) Current() Point { return p.current }

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) {
	pt := Point{X: x, Y: y}
	p.elements = append(p.elements, PathElement{Verb: VerbMove, P: pt})
	p.current = pt
	p.start = pt
	p.hasStart = true
}

// LineTo appends a straight segment to (x, y). An implicit MoveTo(0,0) is
// issued when the path has no current point.
func (p *Path) LineTo(x, y float32) {
	p.ensureStart()
	pt := Point{X: x, Y: y}
	p.elements = append(p.elements, PathElement{Verb: VerbLine, P: pt})
	p.current = pt
}

// BezierCurveTo appends a cubic segment with control points (c1x,c1y) and
// (c2x,c2y) ending at (x, y).
func (p *Path) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.ensureStart()
	p.elements = append(p.elements, PathElement{
		Verb: VerbCubic,
		C1:   Point{X: c1x, Y: c1y},
		C2:   Point{X: c2x, Y: c2y},
		P:    Point{X: x, Y: y},
	})
	p.current = Point{X: x, Y: y}
}

// QuadraticCurveTo appends a quadratic segment, promoted to the equivalent
// cubic.
func (p *Path) QuadraticCurveTo(cx, cy, x, y float32) {
	p.ensureStart()
	cur := p.current
	c1x := cur.X + 2.0/3.0*(cx-cur.X)
	c1y := cur.Y + 2.0/3.0*(cy-cur.Y)
	c2x := x + 2.0/3.0*(cx-x)
	c2y := y + 2.0/3.0*(cy-y)
	p.BezierCurveTo(c1x, c1y, c2x, c2y, x, y)
}

// ClosePath appends a closing segment back to the subpath start.
func (p *Path) ClosePath() {
	if !p.hasStart {
		return
	}
	p.elements = append(p.elements, PathElement{Verb: VerbClose, P: p.start})
	p.current = p.start
}

// Relative variants. Each offsets from the current pen position.

func (p *Path) MoveToRel(dx, dy float32) { p.MoveTo(p.current.X+dx, p.current.Y+dy) }
func (p *Path) LineToRel(dx, dy float32) { p.LineTo(p.current.X+dx, p.current.Y+dy) }

func (p *Path) BezierCurveToRel(dc1x, dc1y, dc2x, dc2y, dx, dy float32) {
	c := p.current
	p.BezierCurveTo(c.X+dc1x, c.Y+dc1y, c.X+dc2x, c.Y+dc2y, c.X+dx, c.Y+dy)
}

func (p *Path) QuadraticCurveToRel(dcx, dcy, dx, dy float32) {
	c := p.current
	p.QuadraticCurveTo(c.X+dcx, c.Y+dcy, c.X+dx, c.Y+dy)
}

// Arc appends a circular arc around (cx, cy) with the given radius, from
// angle1 to angle2 (radians, increasing clockwise in y-down space). The arc
// connects to the current point with a line when one exists.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float32) {
	const maxSegmentAngle = math32.Pi / 2
	sweep := angle2 - angle1
	segments := int(math32.Ceil(math32.Abs(sweep) / maxSegmentAngle))
	if segments < 1 {
		segments = 1
	}
	step := sweep / float32(segments)

	sx := cx + r*math32.Cos(angle1)
	sy := cy + r*math32.Sin(angle1)
	if p.hasStart {
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	for i := 0; i < segments; i++ {
		a1 := angle1 + float32(i)*step
		a2 := a1 + step
		p.arcSegment(cx, cy, r, r, a1, a2)
	}
}

// ArcTo appends an arc of the given radius tangent to the lines from the
// current point to (x1,y1) and from (x1,y1) to (x2,y2).
func (p *Path) ArcTo(x1, y1, x2, y2, r float32) {
	p.ensureStart()
	p0 := p.current
	// Degenerate cases collapse to a line.
	d0x, d0y := p0.X-x1, p0.Y-y1
	d1x, d1y := x2-x1, y2-y1
	l0 := math32.Hypot(d0x, d0y)
	l1 := math32.Hypot(d1x, d1y)
	if r <= 0 || l0 == 0 || l1 == 0 {
		p.LineTo(x1, y1)
		return
	}
	d0x, d0y = d0x/l0, d0y/l0
	d1x, d1y = d1x/l1, d1y/l1
	cross := d0x*d1y - d0y*d1x
	if math32.Abs(cross) < 1e-6 {
		p.LineTo(x1, y1)
		return
	}
	// Distance from corner to each tangent point.
	cosHalf := d0x*d1x + d0y*d1y
	halfAngle := math32.Acos(clampf(cosHalf, -1, 1)) / 2
	dist := r / math32.Tan(halfAngle)
	t0x, t0y := x1+d0x*dist, y1+d0y*dist
	t1x, t1y := x1+d1x*dist, y1+d1y*dist
	// Arc center lies along the angle bisector.
	bx, by := d0x+d1x, d0y+d1y
	bl := math32.Hypot(bx, by)
	bx, by = bx/bl, by/bl
	centerDist := r / math32.Sin(halfAngle)
	cx, cy := x1+bx*centerDist, y1+by*centerDist

	a1 := math32.Atan2(t0y-cy, t0x-cx)
	a2 := math32.Atan2(t1y-cy, t1x-cx)
	// Pick the short sweep in the turn direction.
	sweep := a2 - a1
	for sweep > math32.Pi {
		sweep -= 2 * math32.Pi
	}
	for sweep < -math32.Pi {
		sweep += 2 * math32.Pi
	}
	p.LineTo(t0x, t0y)
	p.Arc(cx, cy, r, a1, a1+sweep)
}

// Ellipse appends a full ellipse centered at (cx, cy).
func (p *Path) Ellipse(cx, cy, rx, ry float32) {
	p.MoveTo(cx+rx, cy)
	const quarter = math32.Pi / 2
	for i := 0; i < 4; i++ {
		a1 := float32(i) * quarter
		p.arcSegment(cx, cy, rx, ry, a1, a1+quarter)
	}
	p.ClosePath()
}

// Circle appends a full circle.
func (p *Path) Circle(cx, cy, r float32) {
	p.Ellipse(cx, cy, r, r)
}

// Rect appends a rectangle subpath.
func (p *Path) Rect(x, y, w, h float32) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// RoundedRect appends a rectangle with uniform corner radius. The radius is
// clamped to half the smaller dimension.
func (p *Path) RoundedRect(x, y, w, h, r float32) {
	p.RoundedRectRadii(x, y, w, h, [4]float32{r, r, r, r})
}

// RoundedRectRadii appends a rectangle with per-corner radii ordered
// [topLeft, topRight, bottomRight, bottomLeft].
func (p *Path) RoundedRectRadii(x, y, w, h float32, radii [4]float32) {
	limit := min(w, h) / 2
	for i := range radii {
		radii[i] = clampf(radii[i], 0, limit)
	}
	tl, tr, br, bl := radii[0], radii[1], radii[2], radii[3]

	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	if tr > 0 {
		p.arcSegment(x+w-tr, y+tr, tr, tr, -math32.Pi/2, 0)
	}
	p.LineTo(x+w, y+h-br)
	if br > 0 {
		p.arcSegment(x+w-br, y+h-br, br, br, 0, math32.Pi/2)
	}
	p.LineTo(x+bl, y+h)
	if bl > 0 {
		p.arcSegment(x+bl, y+h-bl, bl, bl, math32.Pi/2, math32.Pi)
	}
	p.LineTo(x, y+tl)
	if tl > 0 {
		p.arcSegment(x+tl, y+tl, tl, tl, math32.Pi, 3*math32.Pi/2)
	}
	p.ClosePath()
}

// arcSegment approximates an elliptical arc of at most a quarter turn with a
// single cubic segment.
func (p *Path) arcSegment(cx, cy, rx, ry, a1, a2 float32) {
	// Standard kappa-style control point derivation for an arbitrary sweep.
	sweep := a2 - a1
	k := 4.0 / 3.0 * math32.Tan(sweep/4)

	s1, c1 := math32.Sincos(a1)
	s2, c2 := math32.Sincos(a2)

	x1 := cx + rx*c1
	y1 := cy + ry*s1
	x2 := cx + rx*c2
	y2 := cy + ry*s2

	if !p.hasStart {
		p.MoveTo(x1, y1)
	}
	p.BezierCurveTo(
		x1-k*rx*s1, y1+k*ry*c1,
		x2+k*rx*s2, y2-k*ry*c2,
		x2, y2,
	)
}

// Transform returns a copy of the path with every point mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		elements: make([]PathElement, len(p.elements)),
		current:  m.ApplyPoint(p.current),
		start:    m.ApplyPoint(p.start),
		hasStart: p.hasStart,
	}
	for i, el := range p.elements {
		out.elements[i] = PathElement{
			Verb: el.Verb,
			P:    m.ApplyPoint(el.P),
			C1:   m.ApplyPoint(el.C1),
			C2:   m.ApplyPoint(el.C2),
		}
	}
	return out
}

// Flatten converts the path into polyline subpaths using the given tolerance
// for curve subdivision. Each returned slice is one subpath; closed subpaths
// repeat their first point at the end.
func (p *Path) Flatten(tolerance float32) [][]Point {
	if tolerance <= 0 {
		tolerance = 0.25
	}
	var subpaths [][]Point
	var cur []Point
	flush := func() {
		if len(cur) > 1 {
			subpaths = append(subpaths, cur)
		}
		cur = nil
	}
	for _, el := range p.elements {
		switch el.Verb {
		case VerbMove:
			flush()
			cur = append(cur, el.P)
		case VerbLine:
			cur = append(cur, el.P)
		case VerbCubic:
			if len(cur) == 0 {
				cur = append(cur, Point{})
			}
			from := cur[len(cur)-1]
			cur = flattenCubic(cur, from, el.C1, el.C2, el.P, tolerance)
		case VerbClose:
			if len(cur) > 0 {
				cur = append(cur, cur[0])
			}
		}
	}
	flush()
	return subpaths
}

// flattenCubic subdivides a cubic bezier adaptively by midpoint distance.
func flattenCubic(dst []Point, p0, c1, c2, p1 Point, tol float32) []Point {
	// Flat enough when control points are within tolerance of the chord.
	d1 := distToSegment(c1, p0, p1)
	d2 := distToSegment(c2, p0, p1)
	if d1 <= tol && d2 <= tol {
		return append(dst, p1)
	}
	// de Casteljau split at t=0.5.
	mid := func(a, b Point) Point { return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2} }
	ab := mid(p0, c1)
	bc := mid(c1, c2)
	cd := mid(c2, p1)
	abc := mid(ab, bc)
	bcd := mid(bc, cd)
	m := mid(abc, bcd)
	dst = flattenCubic(dst, p0, ab, abc, m, tol)
	return flattenCubic(dst, m, bcd, cd, p1, tol)
}

func distToSegment(p, a, b Point) float32 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := clampf(((p.X-a.X)*dx+(p.Y-a.Y)*dy)/lenSq, 0, 1)
	return Dist(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

func (p *Path) ensureStart() {
	if !p.hasStart {
		p.MoveTo(0, 0)
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
