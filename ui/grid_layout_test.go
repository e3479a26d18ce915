package ui

import "testing"

func gridContainer(t *testing.T, w, h float32) (*Container, *GridLayout) {
	t.Helper()
	c := NewContainer("grid-host")
	c.SetBounds(0, 0, w, h)
	l, err := NewGridLayout(c)
	if err != nil {
		t.Fatalf("NewGridLayout: %v", err)
	}
	return c, l
}

func TestGridLayoutAutoThenStar(t *testing.T) {
	c, l := gridContainer(t, 400, 60)
	l.SetColumnDefinitions(AutoTrack(), StarTrack(1))
	l.SetRowDefinitions(FixedTrack(30), FixedTrack(30))

	name := testElement("name", 80, 20)
	value := testElement("value", 0, 20)
	l.AddElement(name, 0, 0)
	l.AddElement(value, 0, 1).SetAlign(AlignmentFill, AlignmentFill)
	c.UpdateLayout()

	cols := l.ColumnSizes()
	if cols[0] != 80 || cols[1] != 320 {
		t.Fatalf("column sizes = %v, want [80 320]", cols)
	}
	if got := name.Bounds().X; got != 0 {
		t.Errorf("auto-column item x = %v, want 0", got)
	}
	vb := value.Bounds()
	if vb.X != 80 || vb.Width != 320 {
		t.Errorf("star-column item = x %v w %v, want x 80 w 320", vb.X, vb.Width)
	}
}

func TestGridLayoutAutoColumnFloor(t *testing.T) {
	c, l := gridContainer(t, 400, 60)
	l.SetColumnDefinitions(AutoTrack(), StarTrack(1))
	l.SetRowDefinitions(FixedTrack(30))
	l.AddElement(testElement("tiny", 10, 20), 0, 0)
	c.UpdateLayout()

	// Auto columns never collapse below the configured floor.
	if got := l.ColumnSizes()[0]; got != 50 {
		t.Errorf("auto column = %v, want floor 50", got)
	}
}

func TestGridLayoutStarWeights(t *testing.T) {
	c, l := gridContainer(t, 300, 30)
	l.SetColumnDefinitions(StarTrack(1), StarTrack(2))
	l.SetRowDefinitions(FixedTrack(30))
	l.AddElement(testElement("a", 0, 20), 0, 0)
	l.AddElement(testElement("b", 0, 20), 0, 1)
	c.UpdateLayout()

	cols := l.ColumnSizes()
	if cols[0] != 100 || cols[1] != 200 {
		t.Errorf("column sizes = %v, want [100 200]", cols)
	}
}

func TestGridLayoutSpanCoversTracks(t *testing.T) {
	c, l := gridContainer(t, 300, 100)
	l.SetSpacing(10)
	l.SetColumnDefinitions(FixedTrack(100), FixedTrack(100))
	l.SetRowDefinitions(FixedTrack(30), FixedTrack(30))

	wide := testElement("wide", 0, 0)
	l.AddElement(wide, 0, 0).SetSpan(1, 2).SetAlign(AlignmentFill, AlignmentFill)
	c.UpdateLayout()

	// Two 100px tracks plus the 10px gap between them.
	if got := wide.Bounds().Width; got != 210 {
		t.Errorf("spanning width = %v, want 210", got)
	}
}

func TestGridLayoutSecondRowOffset(t *testing.T) {
	c, l := gridContainer(t, 300, 100)
	l.SetSpacing(5)
	l.SetColumnDefinitions(FixedTrack(100))
	l.SetRowDefinitions(FixedTrack(30), FixedTrack(30))
	a := testElement("a", 0, 0)
	b := testElement("b", 0, 0)
	l.AddElement(a, 0, 0)
	l.AddElement(b, 1, 0)
	c.UpdateLayout()

	if got := b.Bounds().Y; got != 35 {
		t.Errorf("second row y = %v, want 35", got)
	}
}

func TestGridLayoutGrowsTracksForOutOfRangeCell(t *testing.T) {
	c, l := gridContainer(t, 300, 100)
	l.AddElement(testElement("far", 40, 20), 2, 3)
	c.UpdateLayout()

	if got := len(l.RowSizes()); got != 3 {
		t.Errorf("row count = %d, want 3", got)
	}
	if got := len(l.ColumnSizes()); got != 4 {
		t.Errorf("column count = %d, want 4", got)
	}
}

func TestGridLayoutPercentTrack(t *testing.T) {
	c, l := gridContainer(t, 400, 40)
	l.SetColumnDefinitions(PercentTrack(0.25), StarTrack(1))
	l.SetRowDefinitions(FixedTrack(40))
	l.AddElement(testElement("a", 0, 20), 0, 0)
	c.UpdateLayout()

	cols := l.ColumnSizes()
	if cols[0] != 100 || cols[1] != 300 {
		t.Errorf("column sizes = %v, want [100 300]", cols)
	}
}
