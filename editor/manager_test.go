package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ultracanvas/ultracanvas/ui"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	w, err := ui.NewWindow("test", 800, 600, nil)
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}
	cfg := DefaultConfig()
	cfg.Autosave.Enabled = false
	m := NewManager(w, &cfg)
	t.Cleanup(m.Shutdown)
	return m
}

func TestManagerCreateNewDocument(t *testing.T) {
	m := testManager(t)

	d := m.CreateNewDocument("")
	if d.Name() != "Untitled 1" {
		t.Errorf("Name() = %q, want %q", d.Name(), "Untitled 1")
	}
	if m.ActiveDocument() != d {
		t.Error("new document is not active")
	}

	d2 := m.CreateNewDocument("")
	if d2.Name() != "Untitled 2" {
		t.Errorf("Name() = %q, want %q", d2.Name(), "Untitled 2")
	}
	if m.Count() != 2 || m.ActiveIndex() != 1 {
		t.Errorf("Count() = %d ActiveIndex() = %d, want 2 and 1", m.Count(), m.ActiveIndex())
	}
	if d.Encoding() != "UTF-8" {
		t.Errorf("Encoding() = %q, want UTF-8", d.Encoding())
	}
}

func TestManagerOpenDetectsEncoding(t *testing.T) {
	m := testManager(t)

	// "Привет" in CP1251.
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := m.OpenDocumentFromPath(path)
	if err != nil {
		t.Fatalf("OpenDocumentFromPath() error = %v", err)
	}
	if d.Encoding() != "CP1251" {
		t.Errorf("Encoding() = %q, want CP1251", d.Encoding())
	}
	if d.Text() != "Привет" {
		t.Errorf("Text() = %q, want %q", d.Text(), "Привет")
	}
	if d.Modified() {
		t.Error("freshly opened document reports modified")
	}
	if len(m.Config().RecentFiles) != 1 {
		t.Errorf("RecentFiles = %v, want one entry", m.Config().RecentFiles)
	}
}

func TestManagerOpenTwiceActivates(t *testing.T) {
	m := testManager(t)

	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}
	first, err := m.OpenDocumentFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	m.CreateNewDocument("scratch")

	again, err := m.OpenDocumentFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("reopening same path created a second tab")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
	if m.ActiveDocument() != first {
		t.Error("reopened document is not active")
	}
}

func TestManagerSaveAs(t *testing.T) {
	m := testManager(t)

	d := m.CreateNewDocument("notes")
	d.Area().InsertText("saved text")
	if !d.Modified() {
		t.Fatal("edit did not mark the document modified")
	}

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := m.SaveDocumentAs(path); err != nil {
		t.Fatalf("SaveDocumentAs() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "saved text" {
		t.Errorf("file content = %q, want %q", data, "saved text")
	}
	if d.Modified() {
		t.Error("Modified() = true after save")
	}
	if d.Name() != "notes.txt" {
		t.Errorf("Name() = %q, want notes.txt", d.Name())
	}
}

func TestManagerSaveReencodes(t *testing.T) {
	m := testManager(t)

	path := filepath.Join(t.TempDir(), "ru.txt")
	if err := os.WriteFile(path, []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := m.OpenDocumentFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	d.Area().InsertText("мир ")

	if err := m.SaveDocument(); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// The file stays in the document's CP1251, not UTF-8.
	back, _, err := DecodeBytes(data, "CP1251")
	if err != nil {
		t.Fatal(err)
	}
	if back != "мир Привет" {
		t.Errorf("decoded file = %q, want %q", back, "мир Привет")
	}
}

func TestManagerCloseUnmodified(t *testing.T) {
	m := testManager(t)
	a := m.CreateNewDocument("a")
	b := m.CreateNewDocument("b")
	m.CreateNewDocument("c")

	if err := m.CloseDocument(2); err != nil {
		t.Fatalf("CloseDocument() error = %v", err)
	}
	if m.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", m.Count())
	}
	// The neighbor that slid into the closed slot becomes active.
	if m.ActiveDocument() != b {
		t.Errorf("active = %v, want %v", m.ActiveDocument().Name(), b.Name())
	}
	_ = a
}

func TestManagerCloseModifiedPrompts(t *testing.T) {
	m := testManager(t)
	d := m.CreateNewDocument("draft")
	d.Area().InsertText("unsaved")

	if err := m.CloseDocument(0); err != nil {
		t.Fatalf("CloseDocument() error = %v", err)
	}
	dm := m.window.Dialogs()
	if dm.ActiveCount() != 1 {
		t.Fatalf("ActiveCount() = %d, want confirm dialog", dm.ActiveCount())
	}

	// Cancel keeps the tab open.
	dm.Close(dm.CurrentModal(), ui.ResultCancel)
	if m.Count() != 1 {
		t.Fatalf("Count() = %d after cancel, want 1", m.Count())
	}

	// No discards it.
	m.CloseDocument(0)
	dm.Close(dm.CurrentModal(), ui.ResultNo)
	if m.Count() != 0 {
		t.Errorf("Count() = %d after discard, want 0", m.Count())
	}
}

func TestManagerCloseModifiedSaves(t *testing.T) {
	m := testManager(t)

	path := filepath.Join(t.TempDir(), "keep.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := m.OpenDocumentFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	d.Area().SetText("")
	d.Area().InsertText("new")

	m.CloseDocument(0)
	dm := m.window.Dialogs()
	dm.Close(dm.CurrentModal(), ui.ResultYes)

	if m.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", m.Count())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("file content = %q, want %q", data, "new")
	}
}

func TestManagerSelectEncodingCachedRaw(t *testing.T) {
	m := testManager(t)

	// 0xE0 is "а" in CP1251 and "à" in ISO-8859-1.
	path := filepath.Join(t.TempDir(), "one.txt")
	if err := os.WriteFile(path, []byte{0xE0}, 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := m.OpenDocumentFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Text() != "а" {
		t.Fatalf("Text() = %q, want CP1251 reading", d.Text())
	}

	if err := m.SelectEncoding(d, "ISO-8859-1"); err != nil {
		t.Fatalf("SelectEncoding() error = %v", err)
	}
	if d.Encoding() != "ISO-8859-1" {
		t.Errorf("Encoding() = %q, want ISO-8859-1", d.Encoding())
	}
	if d.Text() != "à" {
		t.Errorf("Text() = %q, want %q", d.Text(), "à")
	}
}

func TestManagerSelectEncodingUnsaved(t *testing.T) {
	m := testManager(t)
	d := m.CreateNewDocument("new")
	d.Area().InsertText("plain")

	if err := m.SelectEncoding(d, "CP1252"); err != nil {
		t.Fatalf("SelectEncoding() error = %v", err)
	}
	if d.Encoding() != "CP1252" {
		t.Errorf("Encoding() = %q, want CP1252", d.Encoding())
	}
	if d.Text() != "plain" {
		t.Errorf("Text() = %q, content must survive a retarget", d.Text())
	}

	if err := m.SelectEncoding(d, "EBCDIC"); err == nil {
		t.Error("SelectEncoding() accepted unknown encoding")
	}
}

func TestManagerCallbacks(t *testing.T) {
	m := testManager(t)

	var tabEvents, activeEvents int
	m.OnTabsChanged = func() { tabEvents++ }
	m.OnActiveChanged = func(*DocumentTab) { activeEvents++ }

	m.CreateNewDocument("a")
	m.CreateNewDocument("b")
	m.Activate(0)

	if tabEvents != 2 {
		t.Errorf("tab events = %d, want 2", tabEvents)
	}
	if activeEvents != 3 {
		t.Errorf("active events = %d, want 3", activeEvents)
	}
}
