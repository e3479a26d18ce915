package render

import "testing"

func TestFillRectanglePixels(t *testing.T) {
	c, ras := newTestCanvas(t, 40, 40)
	c.SetFillColor(Red)
	c.FillRectangle(10, 10, 20, 20)

	inside := ras.PixelAt(20, 20)
	if inside != Red {
		t.Errorf("inside pixel = %+v, want red", inside)
	}
	if outside := ras.PixelAt(5, 5); outside.A != 0 {
		t.Errorf("outside pixel = %+v, want transparent", outside)
	}
	if edge := ras.PixelAt(30, 20); edge.A != 0 {
		t.Errorf("pixel past right edge = %+v, want transparent", edge)
	}
}

func TestFillHonorsClip(t *testing.T) {
	c, ras := newTestCanvas(t, 40, 40)
	c.ClipRect(0, 0, 15, 40)
	c.SetFillColor(Blue)
	c.FillRectangle(0, 0, 40, 40)

	if got := ras.PixelAt(5, 5); got != Blue {
		t.Errorf("clipped-in pixel = %+v, want blue", got)
	}
	if got := ras.PixelAt(20, 5); got.A != 0 {
		t.Errorf("clipped-out pixel = %+v, want transparent", got)
	}
}

func TestFillHonorsTransform(t *testing.T) {
	c, ras := newTestCanvas(t, 40, 40)
	c.Translate(20, 0)
	c.SetFillColor(Green)
	c.FillRectangle(0, 0, 10, 10)

	if got := ras.PixelAt(25, 5); got != Green {
		t.Errorf("translated pixel = %+v, want green", got)
	}
	if got := ras.PixelAt(5, 5); got.A != 0 {
		t.Errorf("origin pixel = %+v, want transparent", got)
	}
}

func TestGlobalAlphaBlends(t *testing.T) {
	c, ras := newTestCanvas(t, 10, 10)
	c.SetFillColor(White)
	c.FillRectangle(0, 0, 10, 10)
	c.SetFillColor(Black)
	c.SetGlobalAlpha(0.5)
	c.FillRectangle(0, 0, 10, 10)

	got := ras.PixelAt(5, 5)
	if got.R < 100 || got.R > 155 {
		t.Errorf("blended pixel = %+v, want mid gray", got)
	}
}

func TestStrokeLineCoversPath(t *testing.T) {
	c, ras := newTestCanvas(t, 40, 40)
	c.SetStrokeColor(Red)
	c.SetStrokeWidth(4)
	c.DrawLine(5, 20, 35, 20)

	if got := ras.PixelAt(20, 20); got != Red {
		t.Errorf("pixel on stroke = %+v, want red", got)
	}
	if got := ras.PixelAt(20, 30); got.A != 0 {
		t.Errorf("pixel off stroke = %+v, want transparent", got)
	}
}

func TestDashedStrokeHasGaps(t *testing.T) {
	c, ras := newTestCanvas(t, 60, 20)
	c.SetStrokeColor(Black)
	c.SetStrokeWidth(2)
	c.SetLineDash([]float32{6, 6}, 0)
	c.DrawLine(0, 10, 60, 10)

	if got := ras.PixelAt(2, 10); got.A == 0 {
		t.Error("expected paint inside the first dash")
	}
	if got := ras.PixelAt(9, 10); got.A != 0 {
		t.Errorf("expected a gap at x=9, got %+v", got)
	}
}

func TestLinearGradientFill(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0, []GradientStop{
		{Position: 0, Color: Black},
		{Position: 1, Color: White},
	})
	c, ras := newTestCanvas(t, 100, 10)
	c.SetFillPattern(g)
	c.FillRectangle(0, 0, 100, 10)

	left := ras.PixelAt(2, 5)
	right := ras.PixelAt(97, 5)
	if left.R > 30 {
		t.Errorf("left of gradient = %+v, want near black", left)
	}
	if right.R < 225 {
		t.Errorf("right of gradient = %+v, want near white", right)
	}
}

func TestSurfaceSwapAndResize(t *testing.T) {
	s, err := NewSurface(20, 20, FixedFaceSource{})
	if err != nil {
		t.Fatal(err)
	}
	ctx := s.Context()
	ctx.SetFillColor(Red)
	ctx.FillRectangle(0, 0, 20, 20)

	// Not presented yet.
	if got := s.Front().RGBAAt(5, 5); got.A != 0 {
		t.Errorf("front before swap = %+v, want transparent", got)
	}
	s.SwapBuffers()
	if got := s.Front().RGBAAt(5, 5); got.R != 255 {
		t.Errorf("front after swap = %+v, want red", got)
	}

	if err := s.Resize(30, 30); err != nil {
		t.Fatal(err)
	}
	if w, h := s.Size(); w != 30 || h != 30 {
		t.Errorf("size after resize = %dx%d, want 30x30", w, h)
	}
	// Old content survives in the top-left corner.
	if got := s.Front().RGBAAt(5, 5); got.R != 255 {
		t.Errorf("front after resize = %+v, want red preserved", got)
	}

	if err := s.Resize(0, 10); err == nil {
		t.Error("Resize(0, 10) succeeded, want error")
	}
}

func TestDrawPixmapPlacesPixels(t *testing.T) {
	p, err := NewPixmap(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p.Set(x, y, Blue)
		}
	}
	c, ras := newTestCanvas(t, 20, 20)
	c.DrawPixmap(p, 8, 8, 8, 8, FitFill)

	if got := ras.PixelAt(12, 12); got.B < 200 {
		t.Errorf("pixel inside drawn pixmap = %+v, want blue", got)
	}
	if got := ras.PixelAt(2, 2); got.A != 0 {
		t.Errorf("pixel outside drawn pixmap = %+v, want transparent", got)
	}
}
