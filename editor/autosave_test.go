package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testAutosaver(t *testing.T) *Autosaver {
	t.Helper()
	return NewAutosaver(AutosaveConfig{
		Enabled:         true,
		IntervalSeconds: 60,
		Directory:       t.TempDir(),
	})
}

func TestAutosaverWriteAndRecover(t *testing.T) {
	a := testAutosaver(t)

	if err := a.WriteBackup(7, "draft content"); err != nil {
		t.Fatalf("WriteBackup() error = %v", err)
	}
	backups := a.Recover()
	if len(backups) != 1 {
		t.Fatalf("Recover() returned %d backups, want 1", len(backups))
	}
	if backups[0].DocID != 7 {
		t.Errorf("DocID = %d, want 7", backups[0].DocID)
	}
	data, err := os.ReadFile(backups[0].Path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "draft content" {
		t.Errorf("content = %q, want %q", data, "draft content")
	}
}

func TestAutosaverKeepsLatestOnly(t *testing.T) {
	a := testAutosaver(t)

	if err := a.WriteBackup(3, "first"); err != nil {
		t.Fatalf("WriteBackup() error = %v", err)
	}
	if err := a.WriteBackup(3, "second"); err != nil {
		t.Fatalf("WriteBackup() error = %v", err)
	}
	var count int
	for _, b := range a.scan() {
		if b.DocID == 3 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("backups for doc = %d, want 1", count)
	}
}

func TestAutosaverPrune(t *testing.T) {
	a := testAutosaver(t)

	a.WriteBackup(1, "one")
	a.WriteBackup(2, "two")
	a.Prune(1)

	backups := a.Recover()
	if len(backups) != 1 || backups[0].DocID != 2 {
		t.Errorf("Recover() = %+v, want only doc 2", backups)
	}
}

func TestAutosaverDisabled(t *testing.T) {
	dir := t.TempDir()
	a := NewAutosaver(AutosaveConfig{Enabled: false, Directory: dir})

	if a.Due() {
		t.Error("Due() = true for disabled autosaver")
	}
	if err := a.WriteBackup(1, "x"); err != nil {
		t.Fatalf("WriteBackup() error = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("wrote %d files while disabled, want 0", len(entries))
	}
}

func TestAutosaverDue(t *testing.T) {
	a := testAutosaver(t)
	if a.Due() {
		t.Error("Due() = true immediately after creation")
	}
	a.lastRun = time.Now().Add(-2 * time.Minute)
	if !a.Due() {
		t.Error("Due() = false after interval elapsed")
	}
	if a.Due() {
		t.Error("Due() = true twice in a row")
	}
}

func TestAutosaverCleanupStale(t *testing.T) {
	a := testAutosaver(t)

	old := time.Now().Add(-25 * time.Hour)
	oldPath := filepath.Join(a.Directory(), fmt.Sprintf("autosave_5_%d.bak", old.Unix()))
	if err := os.WriteFile(oldPath, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	a.WriteBackup(6, "fresh")

	a.CleanupStale()

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("stale backup still exists")
	}
	backups := a.Recover()
	if len(backups) != 1 || backups[0].DocID != 6 {
		t.Errorf("Recover() = %+v, want only doc 6", backups)
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name   string
		wantID int64
		wantOK bool
	}{
		{"autosave_12_1700000000.bak", 12, true},
		{"autosave_12.bak", 0, false},
		{"autosave_x_1700000000.bak", 0, false},
		{"autosave_12_x.bak", 0, false},
		{"notes_12_1700000000.bak", 0, false},
		{"autosave_12_1700000000.txt", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := parseBackupName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && b.DocID != tt.wantID {
				t.Errorf("DocID = %d, want %d", b.DocID, tt.wantID)
			}
		})
	}
}
