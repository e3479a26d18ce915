package editor

import (
	"sync/atomic"

	"github.com/ultracanvas/ultracanvas/ui"
)

// rawCacheLimit bounds the per-document raw-bytes cache. Files larger
// than this re-read from disk on encoding changes.
const rawCacheLimit = 10 << 20

var docIDCounter atomic.Int64

func nextDocID() int64 { return docIDCounter.Add(1) }

// DocumentTab is one open document. Tabs are identified internally by
// the stable ID; the tab index shifts as tabs close and reorder, so it
// is only ever a UI-facing handle.
type DocumentTab struct {
	id   int64
	name string
	path string

	// Encoding is the on-disk encoding; text in memory is always UTF-8.
	encoding   string
	confidence float32
	hadBOM     bool

	// raw caches the undecoded file bytes for cheap encoding
	// re-selection; nil when the file exceeded the cache limit.
	raw []byte

	language string
	modified bool

	area *ui.TextArea
}

func newDocumentTab(name string) *DocumentTab {
	d := &DocumentTab{
		id:       nextDocID(),
		name:     name,
		encoding: "UTF-8",
	}
	d.area = ui.NewTextArea(name).SetShowLineNumbers(true)
	d.area.OnChange = func() { d.modified = true }
	return d
}

// ID returns the stable document identifier.
func (d *DocumentTab) ID() int64 { return d.id }

// Name returns the display name (file base name, or the placeholder for
// unsaved documents).
func (d *DocumentTab) Name() string { return d.name }

// Path returns the file path, empty for never-saved documents.
func (d *DocumentTab) Path() string { return d.path }

// Encoding returns the document's on-disk encoding name.
func (d *DocumentTab) Encoding() string { return d.encoding }

// EncodingConfidence returns the detector's confidence for the current
// encoding; 1 for explicit user choices.
func (d *DocumentTab) EncodingConfidence() float32 { return d.confidence }

// HasBOM reports whether the file carried a byte-order mark, which is
// written back on save.
func (d *DocumentTab) HasBOM() bool { return d.hadBOM }

// Modified reports unsaved changes.
func (d *DocumentTab) Modified() bool { return d.modified }

// Language returns the syntax-highlight language, empty for plain text.
func (d *DocumentTab) Language() string { return d.language }

// SetLanguage selects the syntax-highlight language for this document.
func (d *DocumentTab) SetLanguage(lang string) {
	d.language = lang
	// Guard the typed-nil: a nil *Highlighter must not reach the
	// interface-valued setter.
	if h := NewHighlighter(lang); h != nil {
		d.area.SetHighlighter(h)
	} else {
		d.area.SetHighlighter(nil)
	}
}

// Area returns the text widget showing this document.
func (d *DocumentTab) Area() *ui.TextArea { return d.area }

// Text returns the document content as UTF-8.
func (d *DocumentTab) Text() string { return d.area.Text() }

// setContent loads decoded text, resetting the modified flag.
func (d *DocumentTab) setContent(text string) {
	d.area.SetText(text)
	d.modified = false
}

// cacheRaw stores the undecoded bytes when they fit the cache limit.
func (d *DocumentTab) cacheRaw(data []byte) {
	if len(data) > rawCacheLimit {
		d.raw = nil
		return
	}
	d.raw = data
}
