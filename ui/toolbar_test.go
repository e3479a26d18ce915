package ui

import "testing"

func toolbarWithItems(width float32, widths ...float32) (*Toolbar, []*ToolbarItem) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetBounds(0, 0, width, toolbarRowSize+6)
	var items []*ToolbarItem
	for i, w := range widths {
		el := testElement("tool", w, 20)
		it := tb.AddItem(&ToolbarItem{
			Kind: ToolWidget, Element: el, Label: "tool", Priority: i,
		})
		items = append(items, it)
	}
	return tb, items
}

func TestToolbarAllItemsFit(t *testing.T) {
	tb, items := toolbarWithItems(500, 100, 100, 100)
	tb.UpdateLayout()

	for i, it := range items {
		if it.hidden {
			t.Errorf("item %d hidden with room to spare", i)
		}
	}
	// Second item sits one gap past the first.
	if got := items[1].Element.Bounds().X; got != 104 {
		t.Errorf("second item x = %v, want 104", got)
	}
}

func TestToolbarOverflowHideDropsLowestPriority(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetOverflowMode(OverflowHide)
	tb.SetBounds(0, 0, 218, toolbarRowSize+6)

	a := tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("a", 100, 20), Priority: 1})
	b := tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("b", 100, 20), Priority: 0})
	c := tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("c", 100, 20), Priority: 2})
	tb.UpdateLayout()

	if !b.hidden {
		t.Error("lowest-priority item not hidden")
	}
	if a.hidden || c.hidden {
		t.Error("higher-priority items hidden")
	}

	// Hidden entries are parked offscreen, the rest close ranks.
	if got := b.Element.Bounds().X; got != -10000 {
		t.Errorf("hidden item x = %v, want parked offscreen", got)
	}
	if got := c.Element.Bounds().X; got != 104 {
		t.Errorf("surviving item x = %v, want 104", got)
	}
}

func TestToolbarOverflowMenuShowsChevron(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetOverflowMode(OverflowMenu)
	tb.SetBounds(0, 0, 150, toolbarRowSize+6)
	tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("a", 100, 20), Label: "A"})
	tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("b", 100, 20), Label: "B"})
	tb.UpdateLayout()

	if !tb.chevron.Visible() {
		t.Error("chevron hidden despite overflow")
	}
}

func TestToolbarChevronHiddenWhenEverythingFits(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetOverflowMode(OverflowMenu)
	tb.SetBounds(0, 0, 500, toolbarRowSize+6)
	tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("a", 100, 20), Label: "A"})
	tb.UpdateLayout()

	if tb.chevron.Visible() {
		t.Error("chevron visible with nothing hidden")
	}
}

func TestToolbarWrapFlowsToSecondRow(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetOverflowMode(OverflowWrap)
	tb.SetBounds(0, 0, 156, 80)
	tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("a", 100, 20)})
	b := tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("b", 100, 20)})
	tb.UpdateLayout()

	bb := b.Element.Bounds()
	if bb.X != 0 {
		t.Errorf("wrapped item x = %v, want 0", bb.X)
	}
	if bb.Y < toolbarRowSize {
		t.Errorf("wrapped item y = %v, want at least %v", bb.Y, toolbarRowSize)
	}
}

func TestToolbarStretchPushesTrailingItems(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetBounds(0, 0, 306, toolbarRowSize+6)
	tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("lead", 100, 20)})
	tb.AddStretch()
	trail := tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("trail", 50, 20)})
	tb.UpdateLayout()

	// content 300: lead takes 104, trail 54; the stretch absorbs the rest.
	if got := trail.Element.Bounds().X; got != 246 {
		t.Errorf("trailing item x = %v, want 246", got)
	}
}

func TestToolbarSeparatorTakesFixedSpace(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	tb.SetBounds(0, 0, 400, toolbarRowSize+6)
	tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("a", 100, 20)})
	tb.AddSeparator()
	b := tb.AddItem(&ToolbarItem{Kind: ToolWidget, Element: testElement("b", 100, 20)})
	tb.UpdateLayout()

	// 100 + gap + 9 separator + gap.
	if got := b.Element.Bounds().X; got != 117 {
		t.Errorf("item after separator x = %v, want 117", got)
	}
}

func TestToolbarHelperConstructors(t *testing.T) {
	tb := NewToolbar("tb", BoxHorizontal)
	btn := tb.AddButton("save", "Save", nil)
	tgl := tb.AddToggle("bold", "B", nil)
	dd := tb.AddDropdown("lang", "go", "text")
	in := tb.AddInput("search", 120)

	if btn == nil || dd == nil || in == nil {
		t.Fatal("helper constructor returned nil")
	}
	if !tgl.toggle {
		t.Error("AddToggle button is not a toggle")
	}
	// Four widget entries registered.
	widgets := 0
	for _, it := range tb.Items() {
		if it.Kind == ToolWidget {
			widgets++
		}
	}
	if widgets != 4 {
		t.Errorf("widget entries = %d, want 4", widgets)
	}
}
