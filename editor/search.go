package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ultracanvas/ultracanvas/ui"
)

const searchHistoryLimit = 20

// SearchOptions control how matches are found.
type SearchOptions struct {
	CaseSensitive bool
	WholeWord     bool
}

// Search is the find/replace controller for one text area. It keeps
// bounded most-recent-first histories of search and replace terms.
type Search struct {
	area *ui.TextArea

	Options SearchOptions

	findHistory    []string
	replaceHistory []string
}

// NewSearch binds a controller to a text area.
func NewSearch(area *ui.TextArea) *Search {
	return &Search{area: area}
}

// SetArea retargets the controller, e.g. when the active tab changes.
func (s *Search) SetArea(area *ui.TextArea) { s.area = area }

// FindHistory returns the recent search terms, most recent first.
func (s *Search) FindHistory() []string { return s.findHistory }

// ReplaceHistory returns the recent replacement terms, most recent first.
func (s *Search) ReplaceHistory() []string { return s.replaceHistory }

func pushHistory(hist []string, term string) []string {
	if term == "" {
		return hist
	}
	out := make([]string, 0, len(hist)+1)
	out = append(out, term)
	for _, h := range hist {
		if h != term {
			out = append(out, h)
		}
	}
	if len(out) > searchHistoryLimit {
		out = out[:searchHistoryLimit]
	}
	return out
}

// FindNext selects the next match after the cursor (or after the
// current selection), wrapping at the end. Reports whether a match was
// found.
func (s *Search) FindNext(term string) bool {
	return s.find(term, true)
}

// FindPrevious selects the closest match before the cursor, wrapping at
// the start.
func (s *Search) FindPrevious(term string) bool {
	return s.find(term, false)
}

func (s *Search) find(term string, forward bool) bool {
	if term == "" || s.area == nil {
		return false
	}
	s.findHistory = pushHistory(s.findHistory, term)

	matches := s.matches(term)
	if len(matches) == 0 {
		return false
	}

	from := s.area.Cursor()
	if start, end, ok := s.area.Selection(); ok {
		if forward {
			from = end
		} else {
			from = start
		}
	}

	var pick [2]ui.TextPosition
	found := false
	if forward {
		for _, m := range matches {
			if !m[0].Less(from) && m[0] != from {
				pick, found = m, true
				break
			}
		}
		if !found {
			pick, found = matches[0], true // wrap
		}
	} else {
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i][1].Less(from) || matches[i][1] == from {
				// The selection itself sits at [start,from); skip it.
				if matches[i][1] == from {
					if st, _, ok := s.area.Selection(); ok && matches[i][0] == st {
						continue
					}
				}
				pick, found = matches[i], true
				break
			}
		}
		if !found {
			pick, found = matches[len(matches)-1], true // wrap
		}
	}
	if !found {
		return false
	}
	s.area.SelectRange(pick[0], pick[1])
	s.area.SetCursor(pick[1])
	return true
}

// Count returns the number of matches in the whole document.
func (s *Search) Count(term string) int {
	if term == "" || s.area == nil {
		return 0
	}
	return len(s.matches(term))
}

// ReplaceNext replaces the current selection when it matches the term,
// then finds the next occurrence. Reports whether a replacement
// happened.
func (s *Search) ReplaceNext(term, repl string) bool {
	if term == "" || s.area == nil {
		return false
	}
	s.replaceHistory = pushHistory(s.replaceHistory, repl)

	replaced := false
	if start, end, ok := s.area.Selection(); ok {
		if s.termMatches(s.area.SelectedText(), term) {
			s.area.ReplaceRange(start, end, repl)
			replaced = true
		}
	}
	s.FindNext(term)
	return replaced
}

// ReplaceAll rewrites every match as one undoable edit and returns the
// replacement count.
func (s *Search) ReplaceAll(term, repl string) int {
	if term == "" || s.area == nil {
		return 0
	}
	s.findHistory = pushHistory(s.findHistory, term)
	s.replaceHistory = pushHistory(s.replaceHistory, repl)

	matches := s.matches(term)
	if len(matches) == 0 {
		return 0
	}
	n := s.area.ReplaceAllRanges(matches, repl)
	logger().Debug("replace all", "term", term, "count", n)
	return n
}

func (s *Search) termMatches(text, term string) bool {
	if s.Options.CaseSensitive {
		return text == term
	}
	return strings.EqualFold(text, term)
}

// matches scans line by line; a term cannot span a newline.
func (s *Search) matches(term string) [][2]ui.TextPosition {
	needle := term
	if !s.Options.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	needleRunes := utf8.RuneCountInString(needle)

	var out [][2]ui.TextPosition
	for i := 0; i < s.area.LineCount(); i++ {
		line := s.area.Line(i)
		hay := line
		if !s.Options.CaseSensitive {
			hay = strings.ToLower(hay)
		}
		byteOff := 0
		runeOff := 0
		for {
			idx := strings.Index(hay[byteOff:], needle)
			if idx < 0 {
				break
			}
			runeOff += utf8.RuneCountInString(hay[byteOff : byteOff+idx])
			start := runeOff
			end := start + needleRunes
			if !s.Options.WholeWord || wholeWordAt(line, start, end) {
				out = append(out, [2]ui.TextPosition{
					{Line: i, Col: start},
					{Line: i, Col: end},
				})
			}
			byteOff += idx + len(needle)
			runeOff = end
		}
	}
	return out
}

func wholeWordAt(line string, start, end int) bool {
	runes := []rune(line)
	if start > 0 && isWordRune(runes[start-1]) {
		return false
	}
	if end < len(runes) && isWordRune(runes[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
