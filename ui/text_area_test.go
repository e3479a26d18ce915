package ui

import "testing"

func pos(line, col int) TextPosition { return TextPosition{Line: line, Col: col} }

func TestTextAreaSetTextSplitsLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
		lines []string
	}{
		{"empty is one line", "", 1, []string{""}},
		{"plain lines", "a\nb\nc", 3, []string{"a", "b", "c"}},
		{"crlf normalized", "a\r\nb", 2, []string{"a", "b"}},
		{"trailing newline keeps empty line", "a\n", 2, []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := NewTextArea("ta")
			ta.SetText(tt.text)
			if got := ta.LineCount(); got != tt.count {
				t.Fatalf("line count = %d, want %d", got, tt.count)
			}
			for i, want := range tt.lines {
				if got := ta.Line(i); got != want {
					t.Errorf("line %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestTextAreaInsertMultiline(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("head tail")
	ta.SetCursor(pos(0, 5))
	ta.InsertText("mid\n")

	if got := ta.Text(); got != "head mid\ntail" {
		t.Errorf("text = %q, want %q", got, "head mid\ntail")
	}
	if got := ta.Cursor(); got != pos(1, 0) {
		t.Errorf("cursor = %+v, want line 1 col 0", got)
	}
}

func TestTextAreaReplaceRange(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("one\ntwo\nthree")
	ta.ReplaceRange(pos(0, 3), pos(1, 3), "")

	if got := ta.Text(); got != "one\nthree" {
		t.Errorf("text = %q, want %q", got, "one\nthree")
	}
}

func TestTextAreaReplaceAllRangesSingleUndo(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("foo bar foo baz foo")
	ranges := [][2]TextPosition{
		{pos(0, 0), pos(0, 3)},
		{pos(0, 8), pos(0, 11)},
		{pos(0, 16), pos(0, 19)},
	}
	n := ta.ReplaceAllRanges(ranges, "qux")
	if n != 3 {
		t.Fatalf("replacement count = %d, want 3", n)
	}
	if got := ta.Text(); got != "qux bar qux baz qux" {
		t.Fatalf("text = %q, want %q", got, "qux bar qux baz qux")
	}

	// One undo step reverts the whole batch.
	if !ta.Undo() {
		t.Fatal("Undo = false, want true")
	}
	if got := ta.Text(); got != "foo bar foo baz foo" {
		t.Errorf("text after undo = %q, want the original", got)
	}
}

func TestTextAreaSelectionText(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("alpha\nbeta\ngamma")
	ta.SelectRange(pos(0, 2), pos(2, 3))

	if got := ta.SelectedText(); got != "pha\nbeta\ngam" {
		t.Errorf("selected = %q, want %q", got, "pha\nbeta\ngam")
	}

	start, end, ok := ta.Selection()
	if !ok || start != pos(0, 2) || end != pos(2, 3) {
		t.Errorf("selection = (%+v, %+v, %v)", start, end, ok)
	}
}

func TestTextAreaSelectionNormalized(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("alpha\nbeta")

	// Reversed endpoints come back in document order.
	ta.SelectRange(pos(1, 2), pos(0, 1))
	start, end, ok := ta.Selection()
	if !ok || start != pos(0, 1) || end != pos(1, 2) {
		t.Errorf("selection = (%+v, %+v, %v), want normalized order", start, end, ok)
	}
}

func TestTextAreaBackspaceJoinsLines(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("ab\ncd")
	ta.SetCursor(pos(1, 0))
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyBackspace})

	if got := ta.Text(); got != "abcd" {
		t.Errorf("text = %q, want %q", got, "abcd")
	}
	if got := ta.Cursor(); got != pos(0, 2) {
		t.Errorf("cursor = %+v, want line 0 col 2", got)
	}
}

func TestTextAreaDeleteJoinsLines(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("ab\ncd")
	ta.SetCursor(pos(0, 2))
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyDelete})

	if got := ta.Text(); got != "abcd" {
		t.Errorf("text = %q, want %q", got, "abcd")
	}
}

func TestTextAreaEnterSplitsLine(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("headtail")
	ta.SetCursor(pos(0, 4))
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyEnter})

	if got := ta.Text(); got != "head\ntail" {
		t.Errorf("text = %q, want %q", got, "head\ntail")
	}
	if got := ta.Cursor(); got != pos(1, 0) {
		t.Errorf("cursor = %+v, want line 1 col 0", got)
	}
}

func TestTextAreaTypedCharacterReplacesSelection(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("abcdef")
	ta.SelectRange(pos(0, 1), pos(0, 5))
	ta.OnEvent(&Event{Type: EventKeyChar, Character: 'X'})

	if got := ta.Text(); got != "aXf" {
		t.Errorf("text = %q, want %q", got, "aXf")
	}
}

func TestTextAreaReadOnlyRejectsEdits(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("locked")
	ta.SetReadOnly(true)

	ta.OnEvent(&Event{Type: EventKeyChar, Character: 'x'})
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyBackspace})
	if got := ta.Text(); got != "locked" {
		t.Errorf("text = %q, want unchanged", got)
	}
	if ta.WantsTab() {
		t.Error("read-only area claims literal tab input")
	}
}

func TestTextAreaCtrlWordNavigation(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("one two\nthree")
	ta.SetCursor(pos(0, 0))

	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyRight, Ctrl: true})
	if got := ta.Cursor(); got != pos(0, 4) {
		t.Fatalf("first jump = %+v, want col 4", got)
	}

	// Word movement crosses the line boundary.
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyRight, Ctrl: true})
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyRight, Ctrl: true})
	if got := ta.Cursor(); got.Line != 1 {
		t.Errorf("cursor = %+v, want line 1", got)
	}
}

func TestTextAreaCtrlHomeEnd(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("first\nsecond\nlast")
	ta.SetCursor(pos(1, 3))

	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyEnd, Ctrl: true})
	if got := ta.Cursor(); got != pos(2, 4) {
		t.Errorf("ctrl-end = %+v, want end of document", got)
	}

	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyHome, Ctrl: true})
	if got := ta.Cursor(); got != pos(0, 0) {
		t.Errorf("ctrl-home = %+v, want start of document", got)
	}
}

func TestTextAreaUndoRedoSequence(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("base")
	ta.SetCursor(pos(0, 4))
	ta.InsertText(" one")
	ta.InsertText(" two")

	ta.Undo()
	if got := ta.Text(); got != "base one" {
		t.Fatalf("after first undo = %q", got)
	}
	ta.Undo()
	if got := ta.Text(); got != "base" {
		t.Fatalf("after second undo = %q", got)
	}
	ta.Redo()
	if got := ta.Text(); got != "base one" {
		t.Errorf("after redo = %q", got)
	}
}

func TestTextAreaClipboardCopyPaste(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("copy this text")
	ta.SelectRange(pos(0, 0), pos(0, 4))
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyC, Ctrl: true})

	if got := ClipboardText(); got != "copy" {
		t.Fatalf("clipboard = %q, want %q", got, "copy")
	}

	ta.SetCursor(pos(0, 14))
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyV, Ctrl: true})
	if got := ta.Text(); got != "copy this textcopy" {
		t.Errorf("text after paste = %q", got)
	}
}

func TestTextAreaCutRemovesSelection(t *testing.T) {
	ta := NewTextArea("ta")
	ta.SetText("cut me out")
	ta.SelectRange(pos(0, 4), pos(0, 7))
	ta.OnEvent(&Event{Type: EventKeyDown, VirtualKey: KeyX, Ctrl: true})

	if got := ta.Text(); got != "cut out" {
		t.Errorf("text = %q, want %q", got, "cut out")
	}
	if got := ClipboardText(); got != "me " {
		t.Errorf("clipboard = %q, want %q", got, "me ")
	}
}

func TestTextPositionLess(t *testing.T) {
	tests := []struct {
		a, b TextPosition
		want bool
	}{
		{pos(0, 5), pos(1, 0), true},
		{pos(1, 0), pos(0, 5), false},
		{pos(2, 3), pos(2, 4), true},
		{pos(2, 4), pos(2, 4), false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%+v < %+v = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

type stubHighlighter struct{}

func (stubHighlighter) Spans(line string) []HighlightSpan {
	if line == "" {
		return nil
	}
	return []HighlightSpan{{Start: 0, End: 1}}
}

func TestTextAreaHighlighterChaining(t *testing.T) {
	ta := NewTextArea("ta").SetHighlighter(stubHighlighter{}).SetShowLineNumbers(true)
	if ta == nil {
		t.Fatal("chained setters returned nil")
	}
}
