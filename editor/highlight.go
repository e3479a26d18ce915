package editor

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ultracanvas/ultracanvas/render"
	"github.com/ultracanvas/ultracanvas/ui"
)

// Highlighter tokenizes single lines with a chroma lexer and maps the
// token types through a chroma style to per-span colors. Lines are
// highlighted independently, so multi-line constructs (block comments,
// raw strings) color correctly only on their opening line; the tradeoff
// keeps Spans cheap enough to call per visible line per frame.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	mu    sync.Mutex
	cache map[string][]ui.HighlightSpan
}

const highlightCacheSize = 512

// NewHighlighter builds a highlighter for a chroma language name
// ("go", "python", "markdown", ...). Unknown languages return nil, which
// TextArea treats as plain text.
func NewHighlighter(lang string) *Highlighter {
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	style := styles.Get("friendly")
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: style,
		cache: make(map[string][]ui.HighlightSpan),
	}
}

// Language returns the lexer's canonical name.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Spans implements ui.Highlighter.
func (h *Highlighter) Spans(line string) []ui.HighlightSpan {
	h.mu.Lock()
	if spans, ok := h.cache[line]; ok {
		h.mu.Unlock()
		return spans
	}
	h.mu.Unlock()

	spans := h.tokenize(line)

	h.mu.Lock()
	if len(h.cache) >= highlightCacheSize {
		// Identical lines repeat (blanks, braces); full flushes are rare.
		clear(h.cache)
	}
	h.cache[line] = spans
	h.mu.Unlock()
	return spans
}

func (h *Highlighter) tokenize(line string) []ui.HighlightSpan {
	it, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}
	var spans []ui.HighlightSpan
	pos := 0
	for _, tok := range it.Tokens() {
		n := len([]rune(tok.Value))
		if n == 0 {
			continue
		}
		entry := h.style.Get(tok.Type)
		if entry.Colour.IsSet() {
			spans = append(spans, ui.HighlightSpan{
				Start:  pos,
				End:    pos + n,
				Color:  render.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()),
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			})
		}
		pos += n
	}
	return spans
}

// LanguageForPath picks the chroma language for a file path by its
// extension, empty when no lexer matches.
func LanguageForPath(path string) string {
	name := filepath.Base(path)
	if lexer := lexers.Match(name); lexer != nil {
		return lexer.Config().Name
	}
	// Match keys off the full filename; a bare extension like ".txt"
	// with an unknown stem still deserves a try via analysis-free aliases.
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return ""
	}
	if lexer := lexers.Get(ext); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
