package render

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestPathFlattenPolyline(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	sub := p.Flatten(0.25)
	if len(sub) != 1 {
		t.Fatalf("subpath count = %d, want 1", len(sub))
	}
	want := []Point{{0, 0}, {10, 0}, {10, 10}}
	if len(sub[0]) != len(want) {
		t.Fatalf("point count = %d, want %d", len(sub[0]), len(want))
	}
	for i, pt := range want {
		if sub[0][i] != pt {
			t.Errorf("point %d = %+v, want %+v", i, sub[0][i], pt)
		}
	}
}

func TestPathMoveStartsNewSubpath(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(5, 0)
	p.MoveTo(20, 20)
	p.LineTo(25, 20)
	sub := p.Flatten(0.25)
	if len(sub) != 2 {
		t.Fatalf("subpath count = %d, want 2", len(sub))
	}
}

func TestPathQuadraticPromotion(t *testing.T) {
	// A quadratic and its cubic promotion must flatten to the same curve.
	var q Path
	q.MoveTo(0, 0)
	q.QuadraticCurveTo(5, 10, 10, 0)
	pts := q.Flatten(0.1)[0]

	for _, pt := range pts {
		// Every flattened point lies close to the parabola y = 2x(10-x)/10.
		wy := 2 * pt.X * (10 - pt.X) / 10
		if math32.Abs(pt.Y-wy) > 0.5 {
			t.Errorf("point (%v, %v) deviates from quadratic, want y near %v", pt.X, pt.Y, wy)
		}
	}
}

func TestPathCubicFlattenTolerance(t *testing.T) {
	var coarse, fine Path
	for _, p := range []*Path{&coarse, &fine} {
		p.MoveTo(0, 0)
		p.BezierCurveTo(0, 40, 40, 40, 40, 0)
	}
	nc := len(coarse.Flatten(5)[0])
	nf := len(fine.Flatten(0.05)[0])
	if nf <= nc {
		t.Errorf("fine tolerance produced %d points, coarse %d; want more for fine", nf, nc)
	}
}

func TestPathArcEndpoints(t *testing.T) {
	var p Path
	p.Arc(50, 50, 20, 0, math32.Pi)
	pts := p.Flatten(0.1)[0]
	first, last := pts[0], pts[len(pts)-1]
	if !approxEq(first.X, 70) || !approxEq(first.Y, 50) {
		t.Errorf("arc start = %+v, want (70, 50)", first)
	}
	if math32.Abs(last.X-30) > 0.05 || math32.Abs(last.Y-50) > 0.05 {
		t.Errorf("arc end = %+v, want (30, 50)", last)
	}
	for _, pt := range pts {
		r := math32.Hypot(pt.X-50, pt.Y-50)
		if math32.Abs(r-20) > 0.2 {
			t.Errorf("arc point %+v at radius %v, want 20", pt, r)
		}
	}
}

func TestPathClose(t *testing.T) {
	var p Path
	p.MoveTo(1, 2)
	p.LineTo(10, 2)
	p.LineTo(10, 12)
	p.ClosePath()
	pts := p.Flatten(0.25)[0]
	if last := pts[len(pts)-1]; last != (Point{X: 1, Y: 2}) {
		t.Errorf("close returned to %+v, want (1, 2)", last)
	}
}

func TestRoundedRectRadiusClamped(t *testing.T) {
	var p Path
	// Radius larger than half the short side must clamp, not fold over.
	p.RoundedRect(0, 0, 40, 20, 100)
	for _, pt := range p.Flatten(0.25)[0] {
		if pt.X < -0.01 || pt.X > 40.01 || pt.Y < -0.01 || pt.Y > 20.01 {
			t.Fatalf("point %+v escapes the rect", pt)
		}
	}
}

func TestPathTransform(t *testing.T) {
	var p Path
	p.MoveTo(1, 1)
	p.LineTo(2, 1)
	moved := p.Transform(TranslateM(10, 20))
	pts := moved.Flatten(0.25)[0]
	if pts[0] != (Point{X: 11, Y: 21}) || pts[1] != (Point{X: 12, Y: 21}) {
		t.Errorf("transformed points = %+v", pts)
	}
	// The source path is untouched.
	if orig := p.Flatten(0.25)[0][0]; orig != (Point{X: 1, Y: 1}) {
		t.Errorf("source path mutated: %+v", orig)
	}
}
