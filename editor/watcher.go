package editor

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// selfWriteGrace is how long after our own save a change event on the
// same path is swallowed instead of reported as external.
const selfWriteGrace = 2 * time.Second

// Watcher reports on-disk modifications of open documents. fsnotify
// events arrive on a background goroutine and are parked in a pending
// set; Dispatch drains them on the caller's goroutine so OnChange can
// touch the element tree safely.
type Watcher struct {
	fs *fsnotify.Watcher

	// OnChange runs from Dispatch for each externally modified file.
	OnChange func(docID int64, path string)

	mu         sync.Mutex
	docs       map[string]int64
	selfWrites map[string]time.Time
	pending    map[string]struct{}

	done chan struct{}
}

// NewWatcher starts the watcher. When the OS watch facility is
// unavailable the watcher degrades to a no-op rather than failing the
// editor.
func NewWatcher() *Watcher {
	w := &Watcher{
		docs:       make(map[string]int64),
		selfWrites: make(map[string]time.Time),
		pending:    make(map[string]struct{}),
		done:       make(chan struct{}),
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		logger().Debug("file watcher unavailable", "err", err)
		return w
	}
	w.fs = fs
	go w.run()
	return w
}

// Watch registers a document's file path.
func (w *Watcher) Watch(path string, docID int64) {
	w.mu.Lock()
	w.docs[path] = docID
	w.mu.Unlock()
	if w.fs != nil {
		if err := w.fs.Add(path); err != nil {
			logger().Debug("watch failed", "path", path, "err", err)
		}
	}
}

// Unwatch drops a path, discarding any pending event for it.
func (w *Watcher) Unwatch(path string) {
	w.mu.Lock()
	delete(w.docs, path)
	delete(w.pending, path)
	delete(w.selfWrites, path)
	w.mu.Unlock()
	if w.fs != nil {
		w.fs.Remove(path)
	}
}

// MarkSelfWrite suppresses the change event our own save is about to
// trigger.
func (w *Watcher) MarkSelfWrite(path string) {
	w.mu.Lock()
	w.selfWrites[path] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			if _, watched := w.docs[ev.Name]; watched {
				if at, self := w.selfWrites[ev.Name]; self && time.Since(at) < selfWriteGrace {
					delete(w.selfWrites, ev.Name)
				} else {
					w.pending[ev.Name] = struct{}{}
				}
			}
			w.mu.Unlock()
			// Editors that save by rename replace the inode; re-arm.
			if ev.Has(fsnotify.Rename) {
				w.fs.Add(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger().Debug("watch error", "err", err)
		}
	}
}

// Dispatch fires OnChange for every pending external modification. The
// host event loop calls this each frame alongside the autosave tick.
func (w *Watcher) Dispatch() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	type change struct {
		path string
		doc  int64
	}
	changes := make([]change, 0, len(w.pending))
	for path := range w.pending {
		if id, ok := w.docs[path]; ok {
			changes = append(changes, change{path, id})
		}
		delete(w.pending, path)
	}
	cb := w.OnChange
	w.mu.Unlock()
	if cb == nil {
		return
	}
	for _, c := range changes {
		logger().Debug("external change", "doc", c.doc, "path", c.path)
		cb(c.doc, c.path)
	}
}

// Close stops the watcher goroutine.
func (w *Watcher) Close() {
	select {
	case <-w.done:
		return
	default:
	}
	close(w.done)
	if w.fs != nil {
		w.fs.Close()
	}
}
