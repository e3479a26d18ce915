package ui

import "unicode"

// maxUndoDepth bounds the undo history of a TextBuffer.
const maxUndoDepth = 200

// bufferSnapshot is one undo step: full text plus caret state. Buffers are
// small (single-line inputs, dialog fields), so whole-text snapshots are
// fine.
type bufferSnapshot struct {
	text   []rune
	cursor int
	anchor int
}

// TextBuffer is an editable rune sequence with a cursor, an optional
// selection anchor and bounded undo/redo. It carries no rendering state;
// widgets wrap it.
type TextBuffer struct {
	text   []rune
	cursor int
	// anchor is the fixed end of the selection, -1 when nothing is
	// selected.
	anchor int

	maxLength int // 0 = unlimited

	undo []bufferSnapshot
	redo []bufferSnapshot
}

// NewTextBuffer creates a buffer with the cursor at the end of text.
func NewTextBuffer(text string) *TextBuffer {
	r := []rune(text)
	return &TextBuffer{text: r, cursor: len(r), anchor: -1}
}

// String returns the buffer content.
func (b *TextBuffer) String() string { return string(b.text) }

// Len returns the rune count.
func (b *TextBuffer) Len() int { return len(b.text) }

// Cursor returns the caret position in runes.
func (b *TextBuffer) Cursor() int { return b.cursor }

// SetMaxLength bounds the rune count; 0 removes the bound.
func (b *TextBuffer) SetMaxLength(n int) { b.maxLength = n }

// SetCursor moves the caret, clamped to the text, clearing the selection.
func (b *TextBuffer) SetCursor(pos int) {
	b.cursor = clampInt(pos, 0, len(b.text))
	b.anchor = -1
}

// HasSelection reports whether a non-empty selection exists.
func (b *TextBuffer) HasSelection() bool {
	return b.anchor >= 0 && b.anchor != b.cursor
}

// Selection returns the selected range in ascending order; (0,0) and false
// when nothing is selected.
func (b *TextBuffer) Selection() (start, end int, ok bool) {
	if !b.HasSelection() {
		return 0, 0, false
	}
	if b.anchor < b.cursor {
		return b.anchor, b.cursor, true
	}
	return b.cursor, b.anchor, true
}

// SelectedText returns the selected runes as a string.
func (b *TextBuffer) SelectedText() string {
	s, e, ok := b.Selection()
	if !ok {
		return ""
	}
	return string(b.text[s:e])
}

// SelectAll selects the entire text with the caret at the end.
func (b *TextBuffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
}

// ClearSelection drops the selection, keeping the caret.
func (b *TextBuffer) ClearSelection() { b.anchor = -1 }

// MoveCursor moves by delta runes. With extend, the selection grows from
// the anchor; otherwise any selection collapses to the movement side
// first.
func (b *TextBuffer) MoveCursor(delta int, extend bool) {
	if extend {
		if b.anchor < 0 {
			b.anchor = b.cursor
		}
	} else if s, e, ok := b.Selection(); ok {
		if delta < 0 {
			b.cursor = s
		} else {
			b.cursor = e
		}
		b.anchor = -1
		return
	} else {
		b.anchor = -1
	}
	b.cursor = clampInt(b.cursor+delta, 0, len(b.text))
}

// MoveWord moves to the previous or next word boundary. Whitespace is the
// word break.
func (b *TextBuffer) MoveWord(forward, extend bool) {
	if extend && b.anchor < 0 {
		b.anchor = b.cursor
	}
	if !extend {
		b.anchor = -1
	}
	if forward {
		b.cursor = b.nextWord(b.cursor)
	} else {
		b.cursor = b.prevWord(b.cursor)
	}
}

func (b *TextBuffer) nextWord(pos int) int {
	n := len(b.text)
	for pos < n && !unicode.IsSpace(b.text[pos]) {
		pos++
	}
	for pos < n && unicode.IsSpace(b.text[pos]) {
		pos++
	}
	return pos
}

func (b *TextBuffer) prevWord(pos int) int {
	for pos > 0 && unicode.IsSpace(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(b.text[pos-1]) {
		pos--
	}
	return pos
}

// MoveTo jumps to an absolute position, optionally extending the
// selection.
func (b *TextBuffer) MoveTo(pos int, extend bool) {
	if extend {
		if b.anchor < 0 {
			b.anchor = b.cursor
		}
	} else {
		b.anchor = -1
	}
	b.cursor = clampInt(pos, 0, len(b.text))
}

// Insert types text at the caret, replacing any selection. Input beyond
// the max length is truncated.
func (b *TextBuffer) Insert(s string) {
	if s == "" {
		return
	}
	// A full buffer with nothing selected cannot change; bail before
	// recording an undo step.
	if b.maxLength > 0 && !b.HasSelection() && len(b.text) >= b.maxLength {
		return
	}
	b.pushUndo()
	b.deleteSelectionLocked()
	ins := []rune(s)
	if b.maxLength > 0 {
		room := b.maxLength - len(b.text)
		if room <= 0 {
			return
		}
		if len(ins) > room {
			ins = ins[:room]
		}
	}
	b.text = append(b.text[:b.cursor], append(ins, b.text[b.cursor:]...)...)
	b.cursor += len(ins)
}

// DeleteBackward removes the selection, or the rune before the caret.
func (b *TextBuffer) DeleteBackward() {
	if !b.HasSelection() && b.cursor == 0 {
		return
	}
	b.pushUndo()
	if b.deleteSelectionLocked() {
		return
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
}

// DeleteForward removes the selection, or the rune after the caret.
func (b *TextBuffer) DeleteForward() {
	if !b.HasSelection() && b.cursor >= len(b.text) {
		return
	}
	b.pushUndo()
	if b.deleteSelectionLocked() {
		return
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
}

// deleteSelectionLocked removes the selected range without recording undo.
func (b *TextBuffer) deleteSelectionLocked() bool {
	s, e, ok := b.Selection()
	if !ok {
		b.anchor = -1
		return false
	}
	b.text = append(b.text[:s], b.text[e:]...)
	b.cursor = s
	b.anchor = -1
	return true
}

// SetText replaces the whole content as one undoable operation.
func (b *TextBuffer) SetText(s string) {
	b.pushUndo()
	b.text = []rune(s)
	if b.maxLength > 0 && len(b.text) > b.maxLength {
		b.text = b.text[:b.maxLength]
	}
	b.cursor = clampInt(b.cursor, 0, len(b.text))
	b.anchor = -1
}

// ============================================================================
// Undo / Redo
// ============================================================================

func (b *TextBuffer) snapshot() bufferSnapshot {
	t := make([]rune, len(b.text))
	copy(t, b.text)
	return bufferSnapshot{text: t, cursor: b.cursor, anchor: b.anchor}
}

func (b *TextBuffer) restore(s bufferSnapshot) {
	b.text = s.text
	b.cursor = s.cursor
	b.anchor = s.anchor
}

func (b *TextBuffer) pushUndo() {
	b.undo = append(b.undo, b.snapshot())
	if len(b.undo) > maxUndoDepth {
		b.undo = b.undo[1:]
	}
	b.redo = b.redo[:0]
}

// CanUndo reports whether an undo step exists.
func (b *TextBuffer) CanUndo() bool { return len(b.undo) > 0 }

// CanRedo reports whether a redo step exists.
func (b *TextBuffer) CanRedo() bool { return len(b.redo) > 0 }

// Undo reverts the last edit. Returns false when the history is empty.
func (b *TextBuffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	b.redo = append(b.redo, b.snapshot())
	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.restore(last)
	return true
}

// Redo re-applies the last undone edit.
func (b *TextBuffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	b.undo = append(b.undo, b.snapshot())
	last := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.restore(last)
	return true
}
