package editor

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ultracanvas/ultracanvas/ui"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Editor.DefaultEncoding != "UTF-8" {
		t.Errorf("DefaultEncoding = %q, want UTF-8", cfg.Editor.DefaultEncoding)
	}
	if cfg.Editor.FontSize != 14 {
		t.Errorf("FontSize = %v, want 14", cfg.Editor.FontSize)
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.IntervalSeconds != 60 {
		t.Errorf("Autosave = %+v, want enabled at 60s", cfg.Autosave)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "editor.toml")

	cfg := DefaultConfig()
	cfg.Editor.DefaultEncoding = "CP1251"
	cfg.Autosave.IntervalSeconds = 30
	cfg.Search.FindHistory = []string{"alpha", "beta"}
	cfg.AddRecentFile("/tmp/a.txt")

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got.Editor.DefaultEncoding != "CP1251" {
		t.Errorf("DefaultEncoding = %q, want CP1251", got.Editor.DefaultEncoding)
	}
	if got.Autosave.IntervalSeconds != 30 {
		t.Errorf("IntervalSeconds = %d, want 30", got.Autosave.IntervalSeconds)
	}
	if len(got.Search.FindHistory) != 2 || got.Search.FindHistory[0] != "alpha" {
		t.Errorf("FindHistory = %v, want [alpha beta]", got.Search.FindHistory)
	}
	if len(got.RecentFiles) != 1 || got.RecentFiles[0] != "/tmp/a.txt" {
		t.Errorf("RecentFiles = %v, want [/tmp/a.txt]", got.RecentFiles)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	toml := "[autosave]\ninterval_seconds = 15\n"
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Autosave.IntervalSeconds != 15 {
		t.Errorf("IntervalSeconds = %d, want 15", cfg.Autosave.IntervalSeconds)
	}
	// Untouched sections keep their defaults.
	if cfg.Editor.DefaultEncoding != "UTF-8" || cfg.Editor.FontSize != 14 {
		t.Errorf("Editor = %+v, want defaults", cfg.Editor)
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.toml")
	if err := os.WriteFile(path, []byte("= not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want parse error")
	}
}

func TestAddRecentFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddRecentFile("/a")
	cfg.AddRecentFile("/b")
	cfg.AddRecentFile("/a")

	if len(cfg.RecentFiles) != 2 || cfg.RecentFiles[0] != "/a" || cfg.RecentFiles[1] != "/b" {
		t.Errorf("RecentFiles = %v, want [/a /b]", cfg.RecentFiles)
	}

	for i := 0; i < 15; i++ {
		cfg.AddRecentFile("/f" + strconv.Itoa(i))
	}
	if len(cfg.RecentFiles) != recentFileLimit {
		t.Errorf("len(RecentFiles) = %d, want %d", len(cfg.RecentFiles), recentFileLimit)
	}
	if cfg.RecentFiles[0] != "/f14" {
		t.Errorf("RecentFiles[0] = %q, want /f14", cfg.RecentFiles[0])
	}
}

func TestConfigSearchSync(t *testing.T) {
	s := NewSearch(ui.NewTextArea("doc"))
	s.Options.CaseSensitive = true
	s.findHistory = []string{"needle"}
	s.replaceHistory = []string{"thread"}

	cfg := DefaultConfig()
	cfg.SyncSearch(s)
	if !cfg.Search.CaseSensitive || len(cfg.Search.FindHistory) != 1 {
		t.Fatalf("SyncSearch gave %+v", cfg.Search)
	}

	restored := NewSearch(ui.NewTextArea("doc2"))
	cfg.ApplySearch(restored)
	if !restored.Options.CaseSensitive {
		t.Error("CaseSensitive not restored")
	}
	if h := restored.FindHistory(); len(h) != 1 || h[0] != "needle" {
		t.Errorf("FindHistory = %v, want [needle]", h)
	}
	if h := restored.ReplaceHistory(); len(h) != 1 || h[0] != "thread" {
		t.Errorf("ReplaceHistory = %v, want [thread]", h)
	}
}
