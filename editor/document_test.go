package editor

import (
	"testing"
)

func TestDocumentTabIDsUnique(t *testing.T) {
	a := newDocumentTab("a")
	b := newDocumentTab("b")
	if a.ID() == b.ID() {
		t.Errorf("both tabs got id %d", a.ID())
	}
}

func TestDocumentTabModifiedTracking(t *testing.T) {
	d := newDocumentTab("x")
	if d.Modified() {
		t.Error("new tab reports modified")
	}
	d.Area().InsertText("hi")
	if !d.Modified() {
		t.Error("edit did not mark tab modified")
	}
	d.setContent("reset")
	if d.Modified() {
		t.Error("setContent left tab modified")
	}
	if d.Text() != "reset" {
		t.Errorf("Text() = %q, want %q", d.Text(), "reset")
	}
}

func TestDocumentTabRawCacheLimit(t *testing.T) {
	d := newDocumentTab("big")
	d.cacheRaw(make([]byte, rawCacheLimit+1))
	if d.raw != nil {
		t.Error("oversized raw bytes were cached")
	}
	d.cacheRaw([]byte("small"))
	if string(d.raw) != "small" {
		t.Errorf("raw = %q, want %q", d.raw, "small")
	}
}

func TestDocumentTabSetLanguage(t *testing.T) {
	d := newDocumentTab("code")
	d.SetLanguage("go")
	if d.Language() != "go" {
		t.Errorf("Language() = %q, want go", d.Language())
	}
	// Unknown languages must fall back to plain text without panicking
	// when the area renders.
	d.SetLanguage("klingon")
	if d.Language() != "klingon" {
		t.Errorf("Language() = %q, want recorded as-is", d.Language())
	}
}
