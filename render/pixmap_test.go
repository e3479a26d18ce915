package render

import "testing"

func TestNewPixmapRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"too wide", maxPixmapDim + 1, 10},
		{"too tall", 10, maxPixmapDim + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPixmap(tt.w, tt.h); err != ErrResourceExhausted {
				t.Errorf("NewPixmap(%d, %d) err = %v, want ErrResourceExhausted", tt.w, tt.h, err)
			}
		})
	}
}

func TestFitRect(t *testing.T) {
	p, err := NewPixmap(100, 50) // 2:1 aspect
	if err != nil {
		t.Fatal(err)
	}
	dst := Rect{X: 0, Y: 0, Width: 200, Height: 200}

	t.Run("no scale keeps natural size", func(t *testing.T) {
		_, out := p.FitRect(dst, FitNoScale)
		if out.Width != 100 || out.Height != 50 {
			t.Errorf("out = %+v", out)
		}
	})
	t.Run("fill stretches", func(t *testing.T) {
		_, out := p.FitRect(dst, FitFill)
		if out != dst {
			t.Errorf("out = %+v, want %+v", out, dst)
		}
	})
	t.Run("contain letterboxes and centers", func(t *testing.T) {
		_, out := p.FitRect(dst, FitContain)
		want := Rect{X: 0, Y: 50, Width: 200, Height: 100}
		if out != want {
			t.Errorf("out = %+v, want %+v", out, want)
		}
	})
	t.Run("cover crops source", func(t *testing.T) {
		src, out := p.FitRect(dst, FitCover)
		if out != dst {
			t.Errorf("out = %+v, want %+v", out, dst)
		}
		// Scale is 4 (200/50); visible source window is 50x50, centered.
		want := RectI{X: 25, Y: 0, Width: 50, Height: 50}
		if src != want {
			t.Errorf("src = %+v, want %+v", src, want)
		}
	})
	t.Run("scale down never upscales", func(t *testing.T) {
		_, out := p.FitRect(dst, FitScaleDown)
		if out.Width != 100 || out.Height != 50 {
			t.Errorf("out = %+v, want natural size", out)
		}
	})
}

func TestPreparedCacheReuse(t *testing.T) {
	p, err := NewPixmap(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	a := p.Prepared(20, 20, FitFill)
	b := p.Prepared(20, 20, FitFill)
	if a != b {
		t.Error("same geometry returned distinct prepared surfaces")
	}
	c := p.Prepared(20, 20, FitContain)
	if c == a {
		t.Error("different fit mode shared a prepared surface")
	}
}

func TestPreparedCacheInvalidate(t *testing.T) {
	p, err := NewPixmap(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	a := p.Prepared(20, 20, FitFill)
	p.Set(0, 0, Red)
	p.InvalidatePrepared()
	b := p.Prepared(20, 20, FitFill)
	if a == b {
		t.Error("invalidated surface was reused")
	}
}

func TestPreparedCacheEviction(t *testing.T) {
	p, err := NewPixmap(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	first := p.Prepared(11, 11, FitFill)
	// Push more geometries than the cache holds.
	for i := 0; i < 12; i++ {
		p.Prepared(20+i, 20, FitFill)
	}
	second := p.Prepared(11, 11, FitFill)
	if first == second {
		t.Error("expected the oldest prepared surface to be evicted")
	}
}

func TestPixmapSetAtRoundTrip(t *testing.T) {
	p, err := NewPixmap(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	c := Color{R: 10, G: 20, B: 30, A: 255}
	p.Set(2, 3, c)
	if got := p.At(2, 3); got != c {
		t.Errorf("At = %+v, want %+v", got, c)
	}
}
