package editor

import (
	"testing"
)

func TestNewHighlighterUnknownLanguage(t *testing.T) {
	if h := NewHighlighter(""); h != nil {
		t.Error("NewHighlighter(\"\") != nil")
	}
	if h := NewHighlighter("klingon"); h != nil {
		t.Error("NewHighlighter(\"klingon\") != nil")
	}
}

func TestHighlighterSpansGoKeyword(t *testing.T) {
	h := NewHighlighter("go")
	if h == nil {
		t.Fatal("NewHighlighter(\"go\") = nil")
	}

	spans := h.Spans("package main")
	if len(spans) == 0 {
		t.Fatal("Spans() returned nothing for a keyword line")
	}
	first := spans[0]
	if first.Start != 0 || first.End < 7 {
		t.Errorf("first span = [%d,%d), want to start at 0 and cover %q", first.Start, first.End, "package")
	}
	for i, sp := range spans {
		if sp.End <= sp.Start {
			t.Errorf("span %d = [%d,%d), want non-empty", i, sp.Start, sp.End)
		}
		if i > 0 && sp.Start < spans[i-1].End {
			t.Errorf("span %d overlaps previous", i)
		}
	}
}

func TestHighlighterSpanPositionsAreRunes(t *testing.T) {
	h := NewHighlighter("go")
	if h == nil {
		t.Fatal("NewHighlighter(\"go\") = nil")
	}
	// "π" is one rune but two bytes; the line is 6 runes long.
	line := "π := 1"
	for _, sp := range h.Spans(line) {
		if sp.End > 6 {
			t.Errorf("span [%d,%d) past rune length 6", sp.Start, sp.End)
		}
	}
}

func TestHighlighterCaching(t *testing.T) {
	h := NewHighlighter("go")
	if h == nil {
		t.Fatal("NewHighlighter(\"go\") = nil")
	}
	line := "return nil"
	first := h.Spans(line)
	second := h.Spans(line)
	if len(first) != len(second) {
		t.Errorf("cached spans differ: %d vs %d", len(first), len(second))
	}
}

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"cmd/main.go", "Go"},
		{"script.py", "Python"},
		{"page.html", "HTML"},
		{"noext", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := LanguageForPath(tt.path); got != tt.want {
				t.Errorf("LanguageForPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
