package ui

import "testing"

func TestContainerScrollClampsToContent(t *testing.T) {
	c := NewContainer("scroller")
	c.SetBounds(0, 0, 400, 400)
	c.SetScrollEnabled(true)

	child := NewBaseElement("tall")
	child.SetBounds(0, 0, 200, 1000)
	c.AddChild(child)
	c.UpdateLayout()

	c.SetVerticalScrollPosition(5000)
	if got := c.VerticalScrollPosition(); got != 600 {
		t.Errorf("overscroll clamped to %v, want 600", got)
	}

	c.SetVerticalScrollPosition(-50)
	if got := c.VerticalScrollPosition(); got != 0 {
		t.Errorf("negative scroll clamped to %v, want 0", got)
	}

	if c.ScrollBy(0, 10000) && c.VerticalScrollPosition() != 600 {
		t.Errorf("ScrollBy overshoot = %v, want 600", c.VerticalScrollPosition())
	}
}

func TestContainerScrollDisabledStaysAtOrigin(t *testing.T) {
	c := NewContainer("static")
	c.SetBounds(0, 0, 100, 100)
	c.SetScrollEnabled(false)
	child := NewBaseElement("tall")
	child.SetBounds(0, 0, 50, 500)
	c.AddChild(child)
	c.UpdateLayout()

	c.SetVerticalScrollPosition(100)
	if got := c.VerticalScrollPosition(); got != 0 {
		t.Errorf("offset = %v, want 0 when scrolling is disabled", got)
	}
}

func TestContainerContentSizeTracksChildren(t *testing.T) {
	c := NewContainer("extent")
	c.SetBounds(0, 0, 100, 100)
	a := NewBaseElement("a")
	a.SetBounds(10, 10, 50, 30)
	b := NewBaseElement("b")
	b.SetBounds(0, 120, 80, 40)
	c.AddChild(a)
	c.AddChild(b)
	c.UpdateLayout()

	size := c.ContentSize()
	if size.Width != 80 || size.Height != 160 {
		t.Errorf("content size = %v x %v, want 80 x 160", size.Width, size.Height)
	}
}

func TestContainerFindElementAtPoint(t *testing.T) {
	outer := NewContainer("outer")
	outer.SetBounds(0, 0, 300, 300)
	inner := NewContainer("inner")
	inner.SetBounds(100, 100, 100, 100)
	leaf := NewBaseElement("leaf")
	leaf.SetBounds(10, 10, 30, 30)
	outer.AddChild(inner)
	inner.AddChild(leaf)

	tests := []struct {
		name string
		x, y float32
		want Element
	}{
		{"outside everything", 10, 10, nil},
		{"inner background", 105, 105, inner},
		{"nested leaf", 115, 115, leaf},
		{"past the leaf", 150, 150, inner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.FindElementAtPoint(tt.x, tt.y); got != tt.want {
				t.Errorf("hit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainerHitTestCompensatesScroll(t *testing.T) {
	c := NewContainer("scrolled")
	c.SetBounds(0, 0, 100, 100)
	c.SetScrollEnabled(true)
	child := NewBaseElement("row")
	child.SetBounds(0, 150, 80, 150)
	c.AddChild(child)
	c.UpdateLayout()
	c.SetVerticalScrollPosition(150)

	if got := c.FindElementAtPoint(10, 10); got != child {
		t.Errorf("hit after scroll = %v, want the scrolled-in child", got)
	}
}

func TestContainerTopmostChildWins(t *testing.T) {
	c := NewContainer("stack")
	c.SetBounds(0, 0, 100, 100)
	under := NewBaseElement("under")
	under.SetBounds(0, 0, 100, 100)
	over := NewBaseElement("over")
	over.SetBounds(0, 0, 100, 100)
	c.AddChild(under)
	c.AddChild(over)

	if got := c.FindElementAtPoint(50, 50); got != over {
		t.Errorf("hit = %v, want the later-added child", got)
	}
}

func TestContainerAddOrMoveChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	el := NewBaseElement("wanderer")

	a.AddChild(el)
	if el.Parent() != a {
		t.Fatalf("parent = %v, want first container", el.Parent())
	}
	b.AddOrMoveChild(el, -1)
	if el.Parent() != b {
		t.Errorf("parent after move = %v, want second container", el.Parent())
	}
	if len(a.Children()) != 0 {
		t.Errorf("old container still has %d children", len(a.Children()))
	}
	if len(b.Children()) != 1 {
		t.Errorf("new container has %d children, want 1", len(b.Children()))
	}
}

func TestContainerFindChildByIDRecursive(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewBaseElement("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if got := root.FindChildByID("leaf"); got != leaf {
		t.Errorf("FindChildByID = %v, want the nested leaf", got)
	}
	if got := root.FindChildByID("missing"); got != nil {
		t.Errorf("FindChildByID(missing) = %v, want nil", got)
	}
}

func TestContainerRemoveChildClearsParent(t *testing.T) {
	c := NewContainer("c")
	el := NewBaseElement("el")
	c.AddChild(el)

	if !c.RemoveChild(el) {
		t.Fatal("RemoveChild = false, want true")
	}
	if el.Parent() != nil {
		t.Errorf("parent after removal = %v, want nil", el.Parent())
	}
	if c.RemoveChild(el) {
		t.Error("second RemoveChild = true, want false")
	}
}
