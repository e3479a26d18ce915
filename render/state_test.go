package render

import (
	"reflect"
	"testing"
)

func newTestCanvas(t *testing.T, w, h int) (*Canvas, *SoftwareRasterizer) {
	t.Helper()
	ras, err := NewSoftwareRasterizer(w, h)
	if err != nil {
		t.Fatalf("NewSoftwareRasterizer: %v", err)
	}
	c, err := NewCanvas(ras, FixedFaceSource{})
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	return c, ras
}

// mutateEverything touches every field of the render state.
func mutateEverything(c *Canvas) {
	c.Translate(5, 6)
	c.Rotate(0.3)
	c.Scale(2, 2)
	c.ClipRect(1, 1, 50, 50)
	c.SetFillColor(Red)
	c.SetStrokeColor(Green)
	c.SetTextColor(Blue)
	c.SetStrokeWidth(4)
	c.SetLineCap(CapRound)
	c.SetLineJoin(JoinBevel)
	c.SetMiterLimit(2)
	c.SetLineDash([]float32{4, 2}, 1)
	c.SetGlobalAlpha(0.5)
	c.SetFontFace("mono", WeightBold, SlantItalic)
	c.SetFontSize(22)
	c.SetTextAlignment(AlignCenter)
	c.SetTextVerticalAlignment(VAlignBottom)
	c.SetTextWrap(WrapChar)
	c.SetTextLineHeight(1.5)
}

func TestStatePushPopRestoresExactly(t *testing.T) {
	c, _ := newTestCanvas(t, 100, 100)
	mutateEverything(c)
	before := c.State()

	c.PushState()
	mutateEverything(c) // scribble over every field again
	c.SetFillColor(White)
	c.ClearClipRect()
	c.PopState()

	after := c.State()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state after push/mutate/pop differs:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestStateNestedPushPop(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	c.SetFillColor(Red)
	c.PushState()
	c.SetFillColor(Green)
	c.PushState()
	c.SetFillColor(Blue)
	c.PopState()
	if got := c.State().FillPaint.Color; got != Green {
		t.Errorf("after inner pop fill = %v, want %v", got, Green)
	}
	c.PopState()
	if got := c.State().FillPaint.Color; got != Red {
		t.Errorf("after outer pop fill = %v, want %v", got, Red)
	}
}

func TestStatePopOnEmptyStackIsNoop(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	c.SetFillColor(Red)
	c.PopState()
	c.PopState()
	if got := c.State().FillPaint.Color; got != Red {
		t.Errorf("fill after spurious pops = %v, want %v", got, Red)
	}
}

func TestStateDashIsDeepCopied(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	dash := []float32{3, 1}
	c.SetLineDash(dash, 0)
	c.PushState()
	c.SetLineDash([]float32{9, 9}, 0)
	dash[0] = 99 // caller mutates its slice after handing it over
	c.PopState()
	if got := c.State().Dash[1]; got != 1 {
		t.Errorf("restored dash[1] = %v, want 1", got)
	}
}

func TestResetStateClearsClipAndTransform(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 10)
	c.Translate(3, 3)
	c.ClipRect(0, 0, 2, 2)
	c.MoveTo(0, 0)
	c.ResetState()
	s := c.State()
	if !s.Transform.IsIdentity() {
		t.Error("transform not identity after reset")
	}
	if s.HasClip {
		t.Error("clip survived reset")
	}
}

func TestClipsIntersect(t *testing.T) {
	c, _ := newTestCanvas(t, 100, 100)
	c.ClipRect(10, 10, 50, 50)
	c.ClipRect(30, 0, 50, 30)
	s := c.State()
	want := Rect{X: 30, Y: 10, Width: 30, Height: 20}
	if s.Clip != want {
		t.Errorf("intersected clip = %+v, want %+v", s.Clip, want)
	}
}
