package ui

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/ultracanvas/ultracanvas/render"
)

// TextPosition addresses a rune inside a TextArea: zero-based line, and a
// rune column within the line. Col == len(line) is the position after the
// last rune.
type TextPosition struct {
	Line, Col int
}

// Less orders positions document-wise.
func (p TextPosition) Less(q TextPosition) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// HighlightSpan colors a rune range of one line.
type HighlightSpan struct {
	Start, End int
	Color      render.Color
	Bold       bool
	Italic     bool
}

// Highlighter supplies per-line syntax colors. Implementations must be
// cheap; the area calls them for every visible line each frame.
type Highlighter interface {
	Spans(line string) []HighlightSpan
}

const areaUndoDepth = 200

type areaSnapshot struct {
	lines  []string
	cursor TextPosition
	anchor TextPosition
	hasSel bool
}

// TextArea is a multi-line text editor: per-line storage, cursor and
// selection, both scroll axes, optional line-number gutter and an optional
// syntax highlight hook. The viewport chases the cursor after edits and
// cursor movement, never after plain scrolling.
type TextArea struct {
	*BaseElement

	mu sync.RWMutex

	lines  [][]rune
	cursor TextPosition
	anchor TextPosition
	hasSel bool

	scrollX, scrollY float32
	dragging         bool

	fontSize   float32
	lineHeight float32

	showLineNumbers bool
	readOnly        bool
	highlighter     Highlighter

	undo []areaSnapshot
	redo []areaSnapshot

	background  render.Color
	textColor   render.Color
	selColor    render.Color
	gutterBg    render.Color
	gutterText  render.Color
	currentLine render.Color

	// OnChange runs after every edit with no arguments; callers read the
	// text back when they need it.
	OnChange func()
}

var _ Element = (*TextArea)(nil)

// NewTextArea creates an empty editable area.
func NewTextArea(id string) *TextArea {
	t := &TextArea{
		BaseElement: NewBaseElement(id),
		lines:       [][]rune{{}},
		fontSize:    14,
		lineHeight:  19,
		background:  render.White,
		textColor:   render.Black,
		selColor:    render.Color{R: 180, G: 205, B: 240, A: 255},
		gutterBg:    render.Color{R: 245, G: 245, B: 245, A: 255},
		gutterText:  render.Color{R: 150, G: 150, B: 150, A: 255},
		currentLine: render.Color{R: 248, G: 248, B: 240, A: 255},
	}
	t.SetFocusable(true)
	t.SetPadding(UniformInsets(4))
	return t
}

// WantsTab makes the dispatcher deliver Tab instead of moving focus.
func (t *TextArea) WantsTab() bool { return !t.readOnlyNow() }

func (t *TextArea) readOnlyNow() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.readOnly
}

// SetReadOnly disables editing, for chaining.
func (t *TextArea) SetReadOnly(ro bool) *TextArea {
	t.mu.Lock()
	t.readOnly = ro
	t.mu.Unlock()
	return t
}

// SetShowLineNumbers toggles the gutter, for chaining.
func (t *TextArea) SetShowLineNumbers(on bool) *TextArea {
	t.mu.Lock()
	t.showLineNumbers = on
	t.mu.Unlock()
	t.RequestRedraw()
	return t
}

// SetHighlighter installs the syntax hook; nil disables, for chaining.
func (t *TextArea) SetHighlighter(h Highlighter) *TextArea {
	t.mu.Lock()
	t.highlighter = h
	t.mu.Unlock()
	t.RequestRedraw()
	return t
}

// SetFontSize sets the text size and derives the line height, for
// chaining.
func (t *TextArea) SetFontSize(size float32) *TextArea {
	t.mu.Lock()
	t.fontSize = size
	t.lineHeight = size * 1.35
	t.mu.Unlock()
	t.RequestRedraw()
	return t
}

// ============================================================================
// Content access
// ============================================================================

// Text joins the lines with \n.
func (t *TextArea) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textLocked()
}

func (t *TextArea) textLocked() string {
	var sb strings.Builder
	for i, l := range t.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(l))
	}
	return sb.String()
}

// SetText replaces the whole content as one undoable edit and homes the
// cursor.
func (t *TextArea) SetText(s string) {
	t.mu.Lock()
	t.pushUndoLocked()
	t.lines = splitLines(s)
	t.cursor = TextPosition{}
	t.hasSel = false
	t.scrollX, t.scrollY = 0, 0
	t.mu.Unlock()
	t.notifyChange()
}

func splitLines(s string) [][]rune {
	parts := strings.Split(s, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(strings.TrimSuffix(p, "\r"))
	}
	return lines
}

// LineCount returns the number of lines, always at least 1.
func (t *TextArea) LineCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.lines)
}

// Line returns line i, empty when out of range.
func (t *TextArea) Line(i int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return string(t.lines[i])
}

// Cursor returns the caret position.
func (t *TextArea) Cursor() TextPosition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor
}

// SetCursor moves the caret, clamped, clearing the selection.
func (t *TextArea) SetCursor(p TextPosition) {
	t.mu.Lock()
	t.cursor = t.clampPosLocked(p)
	t.hasSel = false
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.RequestRedraw()
}

// Selection returns the normalized selected range.
func (t *TextArea) Selection() (start, end TextPosition, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectionLocked()
}

func (t *TextArea) selectionLocked() (start, end TextPosition, ok bool) {
	if !t.hasSel || t.anchor == t.cursor {
		return TextPosition{}, TextPosition{}, false
	}
	if t.anchor.Less(t.cursor) {
		return t.anchor, t.cursor, true
	}
	return t.cursor, t.anchor, true
}

// SelectRange sets the selection explicitly; the caret lands on end.
func (t *TextArea) SelectRange(start, end TextPosition) {
	t.mu.Lock()
	t.anchor = t.clampPosLocked(start)
	t.cursor = t.clampPosLocked(end)
	t.hasSel = true
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.RequestRedraw()
}

// SelectedText returns the selected range as a string.
func (t *TextArea) SelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, e, ok := t.selectionLocked()
	if !ok {
		return ""
	}
	return t.rangeTextLocked(s, e)
}

func (t *TextArea) rangeTextLocked(s, e TextPosition) string {
	if s.Line == e.Line {
		return string(t.lines[s.Line][s.Col:e.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(t.lines[s.Line][s.Col:]))
	for i := s.Line + 1; i < e.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(t.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(t.lines[e.Line][:e.Col]))
	return sb.String()
}

func (t *TextArea) clampPosLocked(p TextPosition) TextPosition {
	p.Line = clampInt(p.Line, 0, len(t.lines)-1)
	p.Col = clampInt(p.Col, 0, len(t.lines[p.Line]))
	return p
}

// ============================================================================
// Editing
// ============================================================================

func (t *TextArea) notifyChange() {
	t.RequestRedraw()
	if t.OnChange != nil {
		t.OnChange()
	}
}

// InsertText types text at the caret, replacing any selection. Newlines
// split lines.
func (t *TextArea) InsertText(s string) {
	if t.readOnlyNow() {
		return
	}
	t.mu.Lock()
	t.pushUndoLocked()
	t.deleteSelectionLocked()
	t.insertLocked(s)
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.notifyChange()
}

func (t *TextArea) insertLocked(s string) {
	ins := splitLines(s)
	line := t.lines[t.cursor.Line]
	head := make([]rune, t.cursor.Col)
	copy(head, line[:t.cursor.Col])
	tail := line[t.cursor.Col:]

	if len(ins) == 1 {
		t.lines[t.cursor.Line] = append(head, append(ins[0], tail...)...)
		t.cursor.Col += len(ins[0])
		return
	}
	first := append(head, ins[0]...)
	last := append(append([]rune{}, ins[len(ins)-1]...), tail...)
	mid := ins[1 : len(ins)-1]

	newLines := make([][]rune, 0, len(t.lines)+len(ins)-1)
	newLines = append(newLines, t.lines[:t.cursor.Line]...)
	newLines = append(newLines, first)
	newLines = append(newLines, mid...)
	newLines = append(newLines, last)
	newLines = append(newLines, t.lines[t.cursor.Line+1:]...)
	t.lines = newLines
	t.cursor.Line += len(ins) - 1
	t.cursor.Col = len(ins[len(ins)-1])
}

// ReplaceRange substitutes the range with text as one undoable edit and
// places the caret after the replacement.
func (t *TextArea) ReplaceRange(start, end TextPosition, text string) {
	if t.readOnlyNow() {
		return
	}
	t.mu.Lock()
	t.pushUndoLocked()
	start = t.clampPosLocked(start)
	end = t.clampPosLocked(end)
	if end.Less(start) {
		start, end = end, start
	}
	t.deleteRangeLocked(start, end)
	t.insertLocked(text)
	t.hasSel = false
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.notifyChange()
}

// ReplaceAllRanges substitutes every range (given in document order,
// non-overlapping) with text as a single undoable edit.
func (t *TextArea) ReplaceAllRanges(ranges [][2]TextPosition, text string) int {
	if t.readOnlyNow() || len(ranges) == 0 {
		return 0
	}
	t.mu.Lock()
	t.pushUndoLocked()
	// Apply back to front so earlier positions stay valid.
	for i := len(ranges) - 1; i >= 0; i-- {
		s := t.clampPosLocked(ranges[i][0])
		e := t.clampPosLocked(ranges[i][1])
		t.deleteRangeLocked(s, e)
		t.insertLocked(text)
	}
	t.hasSel = false
	n := len(ranges)
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.notifyChange()
	return n
}

func (t *TextArea) deleteRangeLocked(s, e TextPosition) {
	if s == e {
		t.cursor = s
		return
	}
	head := t.lines[s.Line][:s.Col]
	tail := t.lines[e.Line][e.Col:]
	merged := append(append([]rune{}, head...), tail...)
	newLines := make([][]rune, 0, len(t.lines)-(e.Line-s.Line))
	newLines = append(newLines, t.lines[:s.Line]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, t.lines[e.Line+1:]...)
	t.lines = newLines
	t.cursor = s
}

func (t *TextArea) deleteSelectionLocked() bool {
	s, e, ok := t.selectionLocked()
	t.hasSel = false
	if !ok {
		return false
	}
	t.deleteRangeLocked(s, e)
	return true
}

func (t *TextArea) deleteBackward() {
	t.mu.Lock()
	if t.hasSel {
		t.pushUndoLocked()
		t.deleteSelectionLocked()
		t.mu.Unlock()
		t.scrollCursorIntoView()
		t.notifyChange()
		return
	}
	if t.cursor.Col == 0 && t.cursor.Line == 0 {
		t.mu.Unlock()
		return
	}
	t.pushUndoLocked()
	if t.cursor.Col > 0 {
		line := t.lines[t.cursor.Line]
		t.lines[t.cursor.Line] = append(line[:t.cursor.Col-1], line[t.cursor.Col:]...)
		t.cursor.Col--
	} else {
		prev := t.lines[t.cursor.Line-1]
		col := len(prev)
		t.lines[t.cursor.Line-1] = append(prev, t.lines[t.cursor.Line]...)
		t.lines = append(t.lines[:t.cursor.Line], t.lines[t.cursor.Line+1:]...)
		t.cursor.Line--
		t.cursor.Col = col
	}
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.notifyChange()
}

func (t *TextArea) deleteForward() {
	t.mu.Lock()
	if t.hasSel {
		t.pushUndoLocked()
		t.deleteSelectionLocked()
		t.mu.Unlock()
		t.scrollCursorIntoView()
		t.notifyChange()
		return
	}
	line := t.lines[t.cursor.Line]
	if t.cursor.Col >= len(line) && t.cursor.Line >= len(t.lines)-1 {
		t.mu.Unlock()
		return
	}
	t.pushUndoLocked()
	if t.cursor.Col < len(line) {
		t.lines[t.cursor.Line] = append(line[:t.cursor.Col], line[t.cursor.Col+1:]...)
	} else {
		t.lines[t.cursor.Line] = append(line, t.lines[t.cursor.Line+1]...)
		t.lines = append(t.lines[:t.cursor.Line+1], t.lines[t.cursor.Line+2:]...)
	}
	t.mu.Unlock()
	t.notifyChange()
}

// ============================================================================
// Undo / Redo
// ============================================================================

func (t *TextArea) snapshotLocked() areaSnapshot {
	lines := make([]string, len(t.lines))
	for i, l := range t.lines {
		lines[i] = string(l)
	}
	return areaSnapshot{lines: lines, cursor: t.cursor, anchor: t.anchor, hasSel: t.hasSel}
}

func (t *TextArea) restoreLocked(s areaSnapshot) {
	t.lines = make([][]rune, len(s.lines))
	for i, l := range s.lines {
		t.lines[i] = []rune(l)
	}
	t.cursor = s.cursor
	t.anchor = s.anchor
	t.hasSel = s.hasSel
}

func (t *TextArea) pushUndoLocked() {
	t.undo = append(t.undo, t.snapshotLocked())
	if len(t.undo) > areaUndoDepth {
		t.undo = t.undo[1:]
	}
	t.redo = t.redo[:0]
}

// Undo reverts the last edit.
func (t *TextArea) Undo() bool {
	t.mu.Lock()
	if len(t.undo) == 0 {
		t.mu.Unlock()
		return false
	}
	t.redo = append(t.redo, t.snapshotLocked())
	last := t.undo[len(t.undo)-1]
	t.undo = t.undo[:len(t.undo)-1]
	t.restoreLocked(last)
	t.cursor = t.clampPosLocked(t.cursor)
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.notifyChange()
	return true
}

// Redo re-applies the last undone edit.
func (t *TextArea) Redo() bool {
	t.mu.Lock()
	if len(t.redo) == 0 {
		t.mu.Unlock()
		return false
	}
	t.undo = append(t.undo, t.snapshotLocked())
	last := t.redo[len(t.redo)-1]
	t.redo = t.redo[:len(t.redo)-1]
	t.restoreLocked(last)
	t.cursor = t.clampPosLocked(t.cursor)
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.notifyChange()
	return true
}

// ============================================================================
// Geometry and scrolling
// ============================================================================

// gutterWidth reserves room for the largest line number plus a divider.
func (t *TextArea) gutterWidth() float32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.showLineNumbers {
		return 0
	}
	digits := len(strconv.Itoa(len(t.lines)))
	if digits < 2 {
		digits = 2
	}
	return float32(digits)*t.fontSize*0.62 + 14
}

// measureCols returns the x offset of col within line through the window
// context.
func (t *TextArea) measureCols(line []rune, col int) float32 {
	w := t.Window()
	if w == nil {
		return float32(col) * t.fontSize * 0.6
	}
	if col > len(line) {
		col = len(line)
	}
	ctx := w.Context()
	ctx.PushState()
	ctx.SetFontSize(t.fontSize)
	x := ctx.GetTextLineDimensions(string(line[:col])).Width
	ctx.PopState()
	return x
}

// scrollCursorIntoView chases the caret. Called after edits and caret
// movement; plain wheel or scrollbar scrolling never calls it.
func (t *TextArea) scrollCursorIntoView() {
	b := t.Bounds()
	pad := t.Padding()
	t.mu.RLock()
	cursor := t.cursor
	line := t.lines[cursor.Line]
	lineH := t.lineHeight
	t.mu.RUnlock()

	viewW := b.Width - pad.Horizontal() - t.gutterWidth()
	viewH := b.Height - pad.Vertical()
	if viewW <= 0 || viewH <= 0 {
		return
	}
	caretX := t.measureCols(line, cursor.Col)
	caretY := float32(cursor.Line) * lineH

	t.mu.Lock()
	if caretY < t.scrollY {
		t.scrollY = caretY
	}
	if caretY+lineH > t.scrollY+viewH {
		t.scrollY = caretY + lineH - viewH
	}
	if caretX < t.scrollX {
		t.scrollX = caretX
	}
	if caretX > t.scrollX+viewW-4 {
		t.scrollX = caretX - viewW + 4
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
	if t.scrollY < 0 {
		t.scrollY = 0
	}
	t.mu.Unlock()
}

// ScrollTo sets absolute scroll offsets, clamped to the content.
func (t *TextArea) ScrollTo(x, y float32) {
	b := t.Bounds()
	pad := t.Padding()
	t.mu.Lock()
	maxY := float32(len(t.lines))*t.lineHeight - (b.Height - pad.Vertical())
	if maxY < 0 {
		maxY = 0
	}
	t.scrollY = clamp(y, 0, maxY)
	if x < 0 {
		x = 0
	}
	t.scrollX = x
	t.mu.Unlock()
	t.RequestRedraw()
}

// positionAt maps an element-local point to a text position.
func (t *TextArea) positionAt(x, y float32) TextPosition {
	pad := t.Padding()
	gutter := t.gutterWidth()
	t.mu.RLock()
	lineH := t.lineHeight
	scrollX, scrollY := t.scrollX, t.scrollY
	nLines := len(t.lines)
	t.mu.RUnlock()

	lineIdx := clampInt(int((y-pad.Top+scrollY)/lineH), 0, nLines-1)
	tx := x - pad.Left - gutter + scrollX

	w := t.Window()
	line := t.Line(lineIdx)
	if w == nil {
		return TextPosition{Line: lineIdx, Col: clampInt(int(tx/(t.fontSize*0.6)+0.5), 0, len([]rune(line)))}
	}
	ctx := w.Context()
	ctx.PushState()
	ctx.SetFontSize(t.fontSize)
	col := ctx.GetTextIndexForXY(line, tx, 0)
	ctx.PopState()
	return TextPosition{Line: lineIdx, Col: col}
}

// ============================================================================
// Rendering
// ============================================================================

// Render implements Element.
func (t *TextArea) Render(ctx render.Context) {
	b := t.Bounds()
	pad := t.Padding()
	gutter := t.gutterWidth()

	t.mu.RLock()
	lineH := t.lineHeight
	fontSize := t.fontSize
	scrollX, scrollY := t.scrollX, t.scrollY
	nLines := len(t.lines)
	cursor := t.cursor
	selS, selE, hasSel := t.selectionLocked()
	hl := t.highlighter
	showNums := t.showLineNumbers
	t.mu.RUnlock()

	ctx.PushState()
	ctx.SetFillColor(t.background)
	ctx.FillRectangle(0, 0, b.Width, b.Height)

	first := clampInt(int(scrollY/lineH), 0, nLines-1)
	last := clampInt(int((scrollY+b.Height)/lineH)+1, 0, nLines-1)

	textX := pad.Left + gutter - scrollX
	ctx.SetFontSize(fontSize)
	ctx.SetTextAlignment(render.AlignLeft)
	ctx.SetTextVerticalAlignment(render.VAlignTop)

	// Text plane, clipped right of the gutter.
	ctx.PushState()
	ctx.ClipRect(gutter, 0, b.Width-gutter, b.Height)

	for i := first; i <= last; i++ {
		y := pad.Top + float32(i)*lineH - scrollY
		line := t.Line(i)
		runes := []rune(line)

		if i == cursor.Line && t.Focused() && !hasSel {
			ctx.SetFillColor(t.currentLine)
			ctx.FillRectangle(gutter, y, b.Width-gutter, lineH)
		}

		if hasSel && i >= selS.Line && i <= selE.Line {
			startCol, endCol := 0, len(runes)
			if i == selS.Line {
				startCol = selS.Col
			}
			if i == selE.Line {
				endCol = selE.Col
			}
			x0 := t.measureCols(runes, startCol)
			x1 := t.measureCols(runes, endCol)
			if i < selE.Line {
				x1 += fontSize * 0.4 // show the selected newline
			}
			ctx.SetFillColor(t.selColor)
			ctx.FillRectangle(textX+x0, y, x1-x0, lineH)
		}

		if hl != nil && line != "" {
			t.renderHighlighted(ctx, line, hl.Spans(line), textX, y)
		} else {
			ctx.SetTextColor(t.textColor)
			ctx.DrawText(line, textX, y+(lineH-fontSize)/2)
		}
	}

	if t.Focused() && t.Enabled() {
		caretX := textX + t.measureCols([]rune(t.Line(cursor.Line)), cursor.Col)
		caretY := pad.Top + float32(cursor.Line)*lineH - scrollY
		ctx.SetStrokeColor(t.textColor)
		ctx.SetStrokeWidth(1)
		ctx.DrawLine(caretX, caretY+1, caretX, caretY+lineH-1)
	}
	ctx.PopState()

	if showNums {
		ctx.SetFillColor(t.gutterBg)
		ctx.FillRectangle(0, 0, gutter, b.Height)
		ctx.SetStrokeColor(render.Color{R: 220, G: 220, B: 220, A: 255})
		ctx.SetStrokeWidth(1)
		ctx.DrawLine(gutter-0.5, 0, gutter-0.5, b.Height)
		ctx.SetTextColor(t.gutterText)
		ctx.SetTextAlignment(render.AlignRight)
		for i := first; i <= last; i++ {
			y := pad.Top + float32(i)*lineH - scrollY
			ctx.DrawTextInRect(strconv.Itoa(i+1), 0, y, gutter-8, lineH)
		}
	}
	ctx.PopState()
}

func (t *TextArea) renderHighlighted(ctx render.Context, line string, spans []HighlightSpan, x, y float32) {
	runes := []rune(line)
	lineH := t.lineHeight
	fontSize := t.fontSize
	baseY := y + (lineH-fontSize)/2

	drawn := 0
	for _, sp := range spans {
		start := clampInt(sp.Start, 0, len(runes))
		end := clampInt(sp.End, start, len(runes))
		if start > drawn {
			ctx.SetTextColor(t.textColor)
			ctx.DrawText(string(runes[drawn:start]), x+t.measureCols(runes, drawn), baseY)
		}
		weight := render.WeightNormal
		if sp.Bold {
			weight = render.WeightBold
		}
		slant := render.SlantNormal
		if sp.Italic {
			slant = render.SlantItalic
		}
		ctx.SetFontFace("sans-serif", weight, slant)
		ctx.SetTextColor(sp.Color)
		ctx.DrawText(string(runes[start:end]), x+t.measureCols(runes, start), baseY)
		ctx.SetFontFace("sans-serif", render.WeightNormal, render.SlantNormal)
		drawn = end
	}
	if drawn < len(runes) {
		ctx.SetTextColor(t.textColor)
		ctx.DrawText(string(runes[drawn:]), x+t.measureCols(runes, drawn), baseY)
	}
}

// ============================================================================
// Events
// ============================================================================

// OnEvent implements Element.
func (t *TextArea) OnEvent(ev *Event) bool {
	switch ev.Type {
	case EventMouseDown:
		if ev.Button != ButtonLeft {
			return false
		}
		pos := t.positionAt(ev.X, ev.Y)
		t.mu.Lock()
		switch ev.ClickCount {
		case 2:
			t.selectWordLocked(pos)
		case 3:
			t.anchor = TextPosition{Line: pos.Line}
			t.cursor = t.clampPosLocked(TextPosition{Line: pos.Line, Col: 1 << 30})
			t.hasSel = true
		default:
			if ev.Shift {
				if !t.hasSel {
					t.anchor = t.cursor
					t.hasSel = true
				}
			} else {
				t.hasSel = false
			}
			t.cursor = t.clampPosLocked(pos)
			t.dragging = true
		}
		t.mu.Unlock()
		t.RequestRedraw()
		return true
	case EventMouseMove:
		t.mu.RLock()
		dragging := t.dragging
		t.mu.RUnlock()
		if dragging {
			pos := t.positionAt(ev.X, ev.Y)
			t.mu.Lock()
			if !t.hasSel {
				t.anchor = t.cursor
				t.hasSel = true
			}
			t.cursor = t.clampPosLocked(pos)
			t.mu.Unlock()
			t.RequestRedraw()
			return true
		}
	case EventMouseUp:
		t.mu.Lock()
		was := t.dragging
		t.dragging = false
		t.mu.Unlock()
		return was
	case EventMouseWheel:
		t.mu.RLock()
		x, y := t.scrollX, t.scrollY
		t.mu.RUnlock()
		t.ScrollTo(x, y-ev.WheelDelta*wheelScrollStep)
		return true
	case EventMouseWheelHorizontal:
		t.mu.RLock()
		x, y := t.scrollX, t.scrollY
		t.mu.RUnlock()
		t.ScrollTo(x-ev.WheelDelta*wheelScrollStep, y)
		return true
	case EventKeyDown:
		return t.handleKey(ev)
	case EventKeyChar:
		if t.readOnlyNow() || ev.Character < ' ' {
			return false
		}
		t.InsertText(string(ev.Character))
		return true
	}
	return false
}

func (t *TextArea) selectWordLocked(pos TextPosition) {
	pos = t.clampPosLocked(pos)
	line := t.lines[pos.Line]
	start, end := pos.Col, pos.Col
	for start > 0 && !unicode.IsSpace(line[start-1]) {
		start--
	}
	for end < len(line) && !unicode.IsSpace(line[end]) {
		end++
	}
	t.anchor = TextPosition{Line: pos.Line, Col: start}
	t.cursor = TextPosition{Line: pos.Line, Col: end}
	t.hasSel = start != end
}

func (t *TextArea) moveCursor(dLine, dCol int, extend bool) {
	t.mu.Lock()
	if extend {
		if !t.hasSel {
			t.anchor = t.cursor
			t.hasSel = true
		}
	} else {
		t.hasSel = false
	}
	c := t.cursor
	if dCol != 0 {
		c.Col += dCol
		if c.Col < 0 && c.Line > 0 {
			c.Line--
			c.Col = len(t.lines[c.Line])
		} else if c.Line < len(t.lines)-1 && c.Col > len(t.lines[c.Line]) {
			c.Line++
			c.Col = 0
		}
	}
	if dLine != 0 {
		c.Line += dLine
	}
	t.cursor = t.clampPosLocked(c)
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.RequestRedraw()
}

func (t *TextArea) moveWord(forward, extend bool) {
	t.mu.Lock()
	if extend {
		if !t.hasSel {
			t.anchor = t.cursor
			t.hasSel = true
		}
	} else {
		t.hasSel = false
	}
	c := t.cursor
	line := t.lines[c.Line]
	if forward {
		if c.Col >= len(line) && c.Line < len(t.lines)-1 {
			c.Line++
			c.Col = 0
		} else {
			for c.Col < len(line) && !unicode.IsSpace(line[c.Col]) {
				c.Col++
			}
			for c.Col < len(line) && unicode.IsSpace(line[c.Col]) {
				c.Col++
			}
		}
	} else {
		if c.Col == 0 && c.Line > 0 {
			c.Line--
			c.Col = len(t.lines[c.Line])
		} else {
			for c.Col > 0 && unicode.IsSpace(line[c.Col-1]) {
				c.Col--
			}
			for c.Col > 0 && !unicode.IsSpace(line[c.Col-1]) {
				c.Col--
			}
		}
	}
	t.cursor = t.clampPosLocked(c)
	t.mu.Unlock()
	t.scrollCursorIntoView()
	t.RequestRedraw()
}

func (t *TextArea) pageLines() int {
	b := t.Bounds()
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := int(b.Height / t.lineHeight)
	if n < 1 {
		n = 1
	}
	return n
}

func (t *TextArea) handleKey(ev *Event) bool {
	switch {
	case ev.Ctrl && ev.VirtualKey == KeyA:
		t.mu.Lock()
		t.anchor = TextPosition{}
		t.cursor = TextPosition{Line: len(t.lines) - 1, Col: len(t.lines[len(t.lines)-1])}
		t.hasSel = true
		t.mu.Unlock()
		t.RequestRedraw()
	case ev.Ctrl && ev.VirtualKey == KeyC:
		if s := t.SelectedText(); s != "" {
			SetClipboardText(s)
		}
	case ev.Ctrl && ev.VirtualKey == KeyX:
		if s := t.SelectedText(); s != "" && !t.readOnlyNow() {
			SetClipboardText(s)
			t.deleteBackward()
		}
	case ev.Ctrl && ev.VirtualKey == KeyV:
		if !t.readOnlyNow() {
			t.InsertText(ClipboardText())
		}
	case ev.Ctrl && ev.VirtualKey == KeyZ:
		t.Undo()
	case ev.Ctrl && ev.VirtualKey == KeyY:
		t.Redo()
	case ev.Ctrl && ev.VirtualKey == KeyHome:
		t.mu.Lock()
		if ev.Shift && !t.hasSel {
			t.anchor = t.cursor
		}
		t.hasSel = ev.Shift
		t.cursor = TextPosition{}
		t.mu.Unlock()
		t.scrollCursorIntoView()
		t.RequestRedraw()
	case ev.Ctrl && ev.VirtualKey == KeyEnd:
		t.mu.Lock()
		if ev.Shift && !t.hasSel {
			t.anchor = t.cursor
		}
		t.hasSel = ev.Shift
		t.cursor = TextPosition{Line: len(t.lines) - 1, Col: len(t.lines[len(t.lines)-1])}
		t.mu.Unlock()
		t.scrollCursorIntoView()
		t.RequestRedraw()
	case ev.VirtualKey == KeyLeft:
		if ev.Ctrl {
			t.moveWord(false, ev.Shift)
		} else {
			t.moveCursor(0, -1, ev.Shift)
		}
	case ev.VirtualKey == KeyRight:
		if ev.Ctrl {
			t.moveWord(true, ev.Shift)
		} else {
			t.moveCursor(0, 1, ev.Shift)
		}
	case ev.VirtualKey == KeyUp:
		t.moveCursor(-1, 0, ev.Shift)
	case ev.VirtualKey == KeyDown:
		t.moveCursor(1, 0, ev.Shift)
	case ev.VirtualKey == KeyPageUp:
		t.moveCursor(-t.pageLines(), 0, ev.Shift)
	case ev.VirtualKey == KeyPageDown:
		t.moveCursor(t.pageLines(), 0, ev.Shift)
	case ev.VirtualKey == KeyHome:
		t.mu.Lock()
		if ev.Shift && !t.hasSel {
			t.anchor = t.cursor
		}
		t.hasSel = ev.Shift
		t.cursor.Col = 0
		t.mu.Unlock()
		t.scrollCursorIntoView()
		t.RequestRedraw()
	case ev.VirtualKey == KeyEnd:
		t.mu.Lock()
		if ev.Shift && !t.hasSel {
			t.anchor = t.cursor
		}
		t.hasSel = ev.Shift
		t.cursor.Col = len(t.lines[t.cursor.Line])
		t.mu.Unlock()
		t.scrollCursorIntoView()
		t.RequestRedraw()
	case ev.VirtualKey == KeyBackspace:
		if !t.readOnlyNow() {
			t.deleteBackward()
		}
	case ev.VirtualKey == KeyDelete:
		if !t.readOnlyNow() {
			t.deleteForward()
		}
	case ev.VirtualKey == KeyEnter:
		if !t.readOnlyNow() {
			t.InsertText("\n")
		}
	case ev.VirtualKey == KeyTab:
		if !t.readOnlyNow() {
			t.InsertText("\t")
		}
	default:
		return false
	}
	return true
}
