package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const autosaveStaleAfter = 24 * time.Hour

// Backup is one recovered autosave file.
type Backup struct {
	DocID   int64
	Path    string
	Written time.Time
}

// Autosaver writes periodic plain-UTF-8 backups of modified documents
// into a spill directory, named autosave_<docId>_<epochSeconds>.bak.
// It keeps no timer of its own; the host event loop polls Due and then
// drives Manager.AutosaveTick.
type Autosaver struct {
	cfg     AutosaveConfig
	lastRun time.Time
}

// NewAutosaver builds an autosaver; zero config fields fall back to the
// defaults (60s interval, os.TempDir()).
func NewAutosaver(cfg AutosaveConfig) *Autosaver {
	if cfg.IntervalSeconds <= 0 {
		cfg.IntervalSeconds = 60
	}
	if cfg.Directory == "" {
		cfg.Directory = os.TempDir()
	}
	return &Autosaver{cfg: cfg, lastRun: time.Now()}
}

// Enabled reports whether interval backups run at all.
func (a *Autosaver) Enabled() bool { return a.cfg.Enabled }

// Directory returns the spill directory.
func (a *Autosaver) Directory() string { return a.cfg.Directory }

// Due reports whether the interval has elapsed since the last run and,
// when it has, arms the next one.
func (a *Autosaver) Due() bool {
	if !a.cfg.Enabled {
		return false
	}
	interval := time.Duration(a.cfg.IntervalSeconds) * time.Second
	if time.Since(a.lastRun) < interval {
		return false
	}
	a.lastRun = time.Now()
	return true
}

func (a *Autosaver) backupPath(docID int64, at time.Time) string {
	name := fmt.Sprintf("autosave_%d_%d.bak", docID, at.Unix())
	return filepath.Join(a.cfg.Directory, name)
}

// WriteBackup spills one document and drops its older backups, so each
// document keeps exactly one recovery point.
func (a *Autosaver) WriteBackup(docID int64, text string) error {
	if !a.cfg.Enabled {
		return nil
	}
	path := a.backupPath(docID, time.Now())
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("editor: autosave %s: %w", path, err)
	}
	for _, b := range a.scan() {
		if b.DocID == docID && b.Path != path {
			os.Remove(b.Path)
		}
	}
	logger().Debug("autosave written", "doc", docID, "path", path)
	return nil
}

// Prune removes every backup of one document. Called after a real save
// and after a tab closes clean.
func (a *Autosaver) Prune(docID int64) {
	for _, b := range a.scan() {
		if b.DocID == docID {
			os.Remove(b.Path)
		}
	}
}

// Recover returns backups left behind by a previous session, newest
// first per document. The caller offers these for restore and is
// responsible for removing what it consumes.
func (a *Autosaver) Recover() []Backup {
	backups := a.scan()
	latest := make(map[int64]Backup, len(backups))
	for _, b := range backups {
		if prev, ok := latest[b.DocID]; !ok || b.Written.After(prev.Written) {
			latest[b.DocID] = b
		}
	}
	out := make([]Backup, 0, len(latest))
	for _, b := range latest {
		out = append(out, b)
	}
	return out
}

// CleanupStale deletes backups older than 24 hours.
func (a *Autosaver) CleanupStale() {
	cutoff := time.Now().Add(-autosaveStaleAfter)
	for _, b := range a.scan() {
		if b.Written.Before(cutoff) {
			os.Remove(b.Path)
			logger().Debug("stale autosave removed", "path", b.Path)
		}
	}
}

func (a *Autosaver) scan() []Backup {
	entries, err := os.ReadDir(a.cfg.Directory)
	if err != nil {
		return nil
	}
	var out []Backup
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, ok := parseBackupName(e.Name())
		if !ok {
			continue
		}
		b.Path = filepath.Join(a.cfg.Directory, e.Name())
		out = append(out, b)
	}
	return out
}

func parseBackupName(name string) (Backup, bool) {
	rest, ok := strings.CutPrefix(name, "autosave_")
	if !ok {
		return Backup{}, false
	}
	rest, ok = strings.CutSuffix(rest, ".bak")
	if !ok {
		return Backup{}, false
	}
	idStr, tsStr, ok := strings.Cut(rest, "_")
	if !ok {
		return Backup{}, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Backup{}, false
	}
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return Backup{}, false
	}
	return Backup{DocID: id, Written: time.Unix(ts, 0)}, true
}
