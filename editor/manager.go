package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ultracanvas/ultracanvas/ui"
)

// ErrNoDocument reports an operation against an empty manager or an
// out-of-range tab index.
var ErrNoDocument = errors.New("editor: no such document")

// Manager owns the open document tabs. All methods run on the main
// thread, like every other element-tree mutation.
type Manager struct {
	window *ui.Window
	config *Config

	tabs   []*DocumentTab
	active int64 // docId, 0 when no tabs

	autosave *Autosaver
	watcher  *Watcher

	untitledSeq int

	// OnTabsChanged fires after any tab list mutation; OnActiveChanged
	// after the active document switches.
	OnTabsChanged   func()
	OnActiveChanged func(*DocumentTab)
}

// NewManager creates a document manager bound to the window's dialog
// manager for its confirm/save prompts.
func NewManager(w *ui.Window, cfg *Config) *Manager {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	m := &Manager{window: w, config: cfg}
	m.autosave = NewAutosaver(cfg.Autosave)
	m.watcher = NewWatcher()
	m.watcher.OnChange = m.externalChange
	return m
}

// Config returns the live configuration.
func (m *Manager) Config() *Config { return m.config }

// Autosave returns the autosave manager.
func (m *Manager) Autosave() *Autosaver { return m.autosave }

// Watcher returns the external-modification watcher.
func (m *Manager) Watcher() *Watcher { return m.watcher }

// Documents returns the tabs in display order.
func (m *Manager) Documents() []*DocumentTab {
	out := make([]*DocumentTab, len(m.tabs))
	copy(out, m.tabs)
	return out
}

// Count returns the number of open tabs.
func (m *Manager) Count() int { return len(m.tabs) }

// ActiveDocument returns the active tab, nil when none is open.
func (m *Manager) ActiveDocument() *DocumentTab {
	return m.byID(m.active)
}

// ActiveIndex returns the active tab index, -1 when none.
func (m *Manager) ActiveIndex() int {
	return m.indexOf(m.active)
}

func (m *Manager) byID(id int64) *DocumentTab {
	for _, d := range m.tabs {
		if d.id == id {
			return d
		}
	}
	return nil
}

func (m *Manager) indexOf(id int64) int {
	for i, d := range m.tabs {
		if d.id == id {
			return i
		}
	}
	return -1
}

// Activate switches the active tab by index.
func (m *Manager) Activate(index int) error {
	if index < 0 || index >= len(m.tabs) {
		return fmt.Errorf("%w: index %d", ErrNoDocument, index)
	}
	m.setActive(m.tabs[index])
	return nil
}

func (m *Manager) setActive(d *DocumentTab) {
	if m.active == d.id {
		return
	}
	m.active = d.id
	if m.OnActiveChanged != nil {
		m.OnActiveChanged(d)
	}
}

func (m *Manager) applyEditorPrefs(d *DocumentTab) {
	d.area.SetFontSize(m.config.Editor.FontSize)
	d.area.SetShowLineNumbers(m.config.Editor.ShowLineNumbers)
}

func (m *Manager) notifyTabs() {
	if m.OnTabsChanged != nil {
		m.OnTabsChanged()
	}
}

// ============================================================================
// Create / Open
// ============================================================================

// CreateNewDocument opens a new empty tab and makes it active. An empty
// name gets the next "Untitled N" placeholder.
func (m *Manager) CreateNewDocument(name string) *DocumentTab {
	if name == "" {
		m.untitledSeq++
		name = fmt.Sprintf("Untitled %d", m.untitledSeq)
	}
	d := newDocumentTab(name)
	d.encoding = m.config.Editor.DefaultEncoding
	d.hadBOM = m.config.Editor.WriteBOM
	m.applyEditorPrefs(d)
	m.tabs = append(m.tabs, d)
	m.active = d.id
	logger().Debug("document created", "doc", d.id, "name", name)
	m.notifyTabs()
	if m.OnActiveChanged != nil {
		m.OnActiveChanged(d)
	}
	return d
}

// OpenDocumentFromPath opens a file. If a tab already shows the path it
// is activated instead of opening a second copy.
func (m *Manager) OpenDocumentFromPath(path string) (*DocumentTab, error) {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	for _, d := range m.tabs {
		if d.path == path {
			m.setActive(d)
			return d, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", path, err)
	}
	enc, conf := DetectEncoding(data)
	text, hadBOM, err := DecodeBytes(data, enc)
	if err != nil {
		return nil, err
	}

	d := newDocumentTab(filepath.Base(path))
	m.applyEditorPrefs(d)
	d.path = path
	d.encoding = enc
	d.confidence = conf
	d.hadBOM = hadBOM
	d.cacheRaw(data)
	d.setContent(text)
	d.SetLanguage(LanguageForPath(path))

	m.tabs = append(m.tabs, d)
	m.active = d.id
	m.watcher.Watch(path, d.id)
	m.config.AddRecentFile(path)
	logger().Debug("document opened",
		"doc", d.id, "path", path, "encoding", enc, "confidence", conf)
	m.notifyTabs()
	if m.OnActiveChanged != nil {
		m.OnActiveChanged(d)
	}
	return d, nil
}

// ============================================================================
// Save
// ============================================================================

// SaveDocument writes the active document back to its path, re-encoding
// from UTF-8 to the document encoding. Never-saved documents prompt for
// a path.
func (m *Manager) SaveDocument() error {
	d := m.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	if d.path == "" {
		m.promptSaveAs(d, nil)
		return nil
	}
	return m.writeDocument(d, d.path)
}

// SaveDocumentAs writes the active document to a new path.
func (m *Manager) SaveDocumentAs(path string) error {
	d := m.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	return m.writeDocument(d, path)
}

func (m *Manager) promptSaveAs(d *DocumentTab, then func(saved bool)) {
	m.window.Dialogs().ShowFile(ui.FileConfig{
		DialogConfig: ui.DialogConfig{Title: "Save As", Message: "Save " + d.name + " to:"},
		InitialPath:  d.name,
		Save:         true,
	}, func(r ui.DialogResult, path string) {
		saved := false
		if r == ui.ResultOK && path != "" {
			if err := m.writeDocument(d, path); err != nil {
				m.reportError("Save failed", err)
			} else {
				saved = true
			}
		}
		if then != nil {
			then(saved)
		}
	})
}

func (m *Manager) writeDocument(d *DocumentTab, path string) error {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	data, err := EncodeString(d.Text(), d.encoding, d.hadBOM)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("editor: save %s: %w", path, err)
	}
	if d.path != path {
		if d.path != "" {
			m.watcher.Unwatch(d.path)
		}
		d.path = path
		d.name = filepath.Base(path)
		d.SetLanguage(LanguageForPath(path))
		m.watcher.Watch(path, d.id)
	} else {
		// The watcher would report our own write as an external change.
		m.watcher.MarkSelfWrite(path)
	}
	d.cacheRaw(data)
	d.modified = false
	m.autosave.Prune(d.id)
	m.config.AddRecentFile(path)
	logger().Debug("document saved", "doc", d.id, "path", path, "encoding", d.encoding)
	m.notifyTabs()
	return nil
}

// ============================================================================
// Close
// ============================================================================

// CloseDocument closes the tab at index. Modified documents get the
// three-way confirm prompt; Yes saves first, No discards, Cancel keeps
// the tab open.
func (m *Manager) CloseDocument(index int) error {
	if index < 0 || index >= len(m.tabs) {
		return fmt.Errorf("%w: index %d", ErrNoDocument, index)
	}
	d := m.tabs[index]
	if !d.modified {
		m.removeTab(d)
		return nil
	}
	m.window.Dialogs().Confirm("Close "+d.name,
		"Save changes to "+d.name+" before closing?",
		func(r ui.DialogResult) {
			switch r {
			case ui.ResultYes:
				if d.path == "" {
					m.promptSaveAs(d, func(saved bool) {
						if saved {
							m.removeTab(d)
						}
					})
					return
				}
				if err := m.writeDocument(d, d.path); err != nil {
					m.reportError("Save failed", err)
					return
				}
				m.removeTab(d)
			case ui.ResultNo:
				m.removeTab(d)
			}
		})
	return nil
}

func (m *Manager) removeTab(d *DocumentTab) {
	idx := m.indexOf(d.id)
	if idx < 0 {
		return
	}
	m.tabs = append(m.tabs[:idx], m.tabs[idx+1:]...)
	if d.path != "" {
		m.watcher.Unwatch(d.path)
	}
	m.autosave.Prune(d.id)
	if m.active == d.id {
		m.active = 0
		if len(m.tabs) > 0 {
			// The neighbor that slid into the closed slot.
			next := idx
			if next >= len(m.tabs) {
				next = len(m.tabs) - 1
			}
			m.active = m.tabs[next].id
			if m.OnActiveChanged != nil {
				m.OnActiveChanged(m.tabs[next])
			}
		}
	}
	logger().Debug("document closed", "doc", d.id, "name", d.name)
	m.notifyTabs()
}

// ============================================================================
// Encoding re-selection
// ============================================================================

// SelectEncoding re-interprets the document in a new encoding. With raw
// bytes cached the change is immediate; otherwise the user is asked to
// reopen the file from disk.
func (m *Manager) SelectEncoding(d *DocumentTab, name string) error {
	if _, err := codecFor(name); err != nil {
		return err
	}
	if d.encoding == name {
		return nil
	}
	if d.raw != nil {
		return m.applyEncoding(d, name, d.raw)
	}
	if d.path == "" {
		// Nothing on disk to re-decode; just retarget future saves.
		d.encoding = name
		d.confidence = 1
		m.notifyTabs()
		return nil
	}
	m.window.Dialogs().Confirm("Change Encoding",
		"Reopen "+d.name+" from disk as "+name+"?",
		func(r ui.DialogResult) {
			if r != ui.ResultYes {
				return
			}
			data, err := os.ReadFile(d.path)
			if err != nil {
				m.reportError("Reopen failed", err)
				return
			}
			if err := m.applyEncoding(d, name, data); err != nil {
				m.reportError("Decode failed", err)
			}
		})
	return nil
}

func (m *Manager) applyEncoding(d *DocumentTab, name string, data []byte) error {
	text, hadBOM, err := DecodeBytes(data, name)
	if err != nil {
		return err
	}
	d.encoding = name
	d.confidence = 1
	d.hadBOM = hadBOM
	d.cacheRaw(data)
	d.setContent(text)
	logger().Debug("encoding changed", "doc", d.id, "encoding", name)
	m.notifyTabs()
	return nil
}

// ============================================================================
// External changes
// ============================================================================

// externalChange runs when the watcher reports an on-disk modification
// of an open document.
func (m *Manager) externalChange(docID int64, path string) {
	d := m.byID(docID)
	if d == nil {
		return
	}
	m.window.Dialogs().Confirm("File Changed",
		d.name+" was modified outside the editor. Reload from disk?",
		func(r ui.DialogResult) {
			if r != ui.ResultYes {
				return
			}
			data, err := os.ReadFile(path)
			if err != nil {
				m.reportError("Reload failed", err)
				return
			}
			if err := m.applyEncoding(d, d.encoding, data); err != nil {
				m.reportError("Reload failed", err)
			}
		})
}

// Tick is the per-frame hook for the host event loop: it drains
// external-change notifications and runs an autosave pass when one is
// due.
func (m *Manager) Tick() {
	m.watcher.Dispatch()
	if m.autosave.Due() {
		m.AutosaveTick()
	}
}

// AutosaveTick writes interval backups for every modified document. The
// host event loop calls this; see Autosaver.Due.
func (m *Manager) AutosaveTick() {
	for _, d := range m.tabs {
		if !d.modified {
			continue
		}
		if err := m.autosave.WriteBackup(d.id, d.Text()); err != nil {
			logger().Debug("autosave failed", "doc", d.id, "err", err)
		}
	}
}

// Shutdown releases the watcher and stops autosave bookkeeping.
func (m *Manager) Shutdown() {
	m.watcher.Close()
}

func (m *Manager) reportError(title string, err error) {
	logger().Debug("dialog error", "title", title, "err", err)
	m.window.Dialogs().Show(ui.DialogConfig{
		Title:   title,
		Message: err.Error(),
	}, nil)
}
