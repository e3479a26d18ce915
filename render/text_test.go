package render

import "testing"

// testFace advances 10px per rune at size 20, which keeps expected widths
// easy to read.
var testFace = FixedFace{AdvanceEm: 0.5}

var testStyle = FontStyle{Family: "sans", Size: 20}

func lineTexts(lines []TextLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestLayoutTextWrapping(t *testing.T) {
	tests := []struct {
		name     string
		wrap     WrapMode
		maxWidth float32
		text     string
		want     []string
	}{
		{"no wrap keeps line", WrapNone, 30, "hello world", []string{"hello world"}},
		{"newlines always split", WrapNone, 0, "a\nb\nc", []string{"a", "b", "c"}},
		{"word wrap at spaces", WrapWord, 60, "one two three", []string{"one", "two", "three"}},
		{"word wrap packs what fits", WrapWord, 80, "ab cd ef", []string{"ab cd ef"}},
		{"long word breaks mid-word", WrapWord, 40, "abcdefgh xy", []string{"abcd", "efgh", "xy"}},
		{"char wrap splits anywhere", WrapChar, 40, "abcdefgh", []string{"abcd", "efgh"}},
		{"empty text is one empty line", WrapWord, 40, "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineTexts(LayoutText(testFace, testStyle, tt.wrap, tt.maxWidth, tt.text))
			if len(got) != len(tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLayoutTextLineStarts(t *testing.T) {
	lines := LayoutText(testFace, testStyle, WrapWord, 60, "one two three")
	wantStarts := []int{0, 4, 8}
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	for i, want := range wantStarts {
		if lines[i].Start != want {
			t.Errorf("line %d start = %d, want %d", i, lines[i].Start, want)
		}
	}
}

func TestMeasureText(t *testing.T) {
	style := TextStyle{Wrap: WrapWord, LineHeight: 1} // 20px lines
	got := MeasureText(testFace, testStyle, style, 60, "one two three")
	if got.Width != 50 || got.Height != 60 {
		t.Errorf("measured = %+v, want {50 60}", got)
	}
}

func TestFixedFaceIndexForX(t *testing.T) {
	tests := []struct {
		x    float32
		want int
	}{
		{-5, 0},
		{0, 0},
		{4, 0}, // left half of first rune
		{6, 1}, // right half rounds up
		{24, 2},
		{26, 3},
		{999, 5},
	}
	for _, tt := range tests {
		if got := testFace.IndexForX("hello", 20, tt.x); got != tt.want {
			t.Errorf("IndexForX(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestCanvasTextMeasurement(t *testing.T) {
	c, _ := newTestCanvas(t, 100, 100)
	c.SetFontSize(20)
	d := c.GetTextLineDimensions("abcd")
	if d.Width != 48 { // default fixed face: 0.6em per rune
		t.Errorf("line width = %v, want 48", d.Width)
	}
	if !approxEq(d.Height, 24) { // 1.2 line height default
		t.Errorf("line height = %v, want 24", d.Height)
	}
}

func TestGetTextIndexForXY(t *testing.T) {
	c, _ := newTestCanvas(t, 100, 100)
	c.SetFontSize(20)
	c.SetTextLineHeight(1)
	// Second line, third rune boundary. Default face advance is 12px.
	idx := c.GetTextIndexForXY("abc\ndefg", 25, 30)
	if idx != 6 {
		t.Errorf("index = %d, want 6", idx)
	}
}
