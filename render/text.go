package render

import "strings"

// FontMetrics describes vertical metrics of a face at a given size, in
// pixels.
type FontMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// Height returns ascent + descent.
func (m FontMetrics) Height() float32 { return m.Ascent + m.Descent }

// Face measures text for a single font style. Implementations: the
// typesetting-backed face in shaper.go and the fixed-metrics face used by
// headless backends and tests.
type Face interface {
	// Metrics returns vertical metrics for the given size.
	Metrics(size float32) FontMetrics
	// Advance returns the advance width of the text at the given size.
	Advance(text string, size float32) float32
	// IndexForX returns the rune index in text nearest to the horizontal
	// offset x, for caret hit testing.
	IndexForX(text string, size float32, x float32) int
}

// FaceSource resolves font styles to faces. Backends hold one.
type FaceSource interface {
	FaceFor(style FontStyle) Face
}

// TextLine is a laid-out line of wrapped text.
type TextLine struct {
	Text  string
	Start int // rune offset of the line within the source text
	Width float32
}

// LayoutText breaks text into lines honoring the wrap mode and maximum
// width. Explicit newlines always break. maxWidth <= 0 disables wrapping.
func LayoutText(face Face, style FontStyle, wrap WrapMode, maxWidth float32, text string) []TextLine {
	var lines []TextLine
	offset := 0
	for _, raw := range strings.Split(text, "\n") {
		if wrap == WrapNone || maxWidth <= 0 {
			lines = append(lines, TextLine{Text: raw, Start: offset, Width: face.Advance(raw, style.Size)})
			offset += len([]rune(raw)) + 1
			continue
		}
		lines = append(lines, wrapLine(face, style, wrap, maxWidth, raw, offset)...)
		offset += len([]rune(raw)) + 1
	}
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	return lines
}

func wrapLine(face Face, style FontStyle, wrap WrapMode, maxWidth float32, line string, offset int) []TextLine {
	runes := []rune(line)
	if len(runes) == 0 {
		return []TextLine{{Start: offset}}
	}
	var out []TextLine
	emit := func(start, end int) {
		text := strings.TrimRight(string(runes[start:end]), " ")
		out = append(out, TextLine{
			Text:  text,
			Start: offset + start,
			Width: face.Advance(text, style.Size),
		})
	}
	start := 0
	lastSpace := -1
	for i := 0; i < len(runes); i++ {
		if runes[i] == ' ' {
			lastSpace = i
		}
		seg := string(runes[start : i+1])
		if face.Advance(seg, style.Size) <= maxWidth || i == start {
			continue
		}
		// Rune i overflows. Break at the last space for word wrap when one
		// exists in this segment, otherwise before the overflowing rune.
		brk := i
		if wrap == WrapWord && lastSpace > start {
			brk = lastSpace
		}
		emit(start, brk)
		for brk < len(runes) && runes[brk] == ' ' {
			brk++
		}
		start = brk
		lastSpace = -1
		i = brk - 1
	}
	if start < len(runes) {
		emit(start, len(runes))
	}
	if len(out) == 0 {
		out = []TextLine{{Start: offset}}
	}
	return out
}

// MeasureText returns the bounding size of text laid out with the given
// wrap constraint.
func MeasureText(face Face, font FontStyle, style TextStyle, maxWidth float32, text string) Size {
	lines := LayoutText(face, font, style.Wrap, maxWidth, text)
	var w float32
	for _, l := range lines {
		if l.Width > w {
			w = l.Width
		}
	}
	h := style.EffectiveLineHeight(font.Size) * float32(len(lines))
	return Size{Width: w, Height: h}
}
