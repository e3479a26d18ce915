package render

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedFace measures text with HarfBuzz shaping via go-text/typesetting.
// It caches the parsed font.Font (thread-safe) and pools HarfbuzzShaper
// instances, which are not safe for concurrent use.
type ShapedFace struct {
	fnt        *font.Font
	shaperPool sync.Pool
}

// ParseFace parses TTF/OTF font data into a measuring face.
func ParseFace(data []byte) (*ShapedFace, error) {
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &ShapedFace{
		fnt: parsed.Font,
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// Metrics implements Face.
func (f *ShapedFace) Metrics(size float32) FontMetrics {
	face := font.NewFace(f.fnt)
	ext, ok := face.FontHExtents()
	if !ok {
		return FontMetrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	upem := float32(face.Upem())
	scale := size / upem
	return FontMetrics{
		Ascent:  ext.Ascender * scale,
		Descent: -ext.Descender * scale,
		LineGap: ext.LineGap * scale,
	}
}

// Advance implements Face.
func (f *ShapedFace) Advance(text string, size float32) float32 {
	if text == "" {
		return 0
	}
	out := f.shape(text, size)
	var w fixed.Int26_6
	for _, g := range out.Glyphs {
		w += g.XAdvance
	}
	return float32(w) / 64
}

// IndexForX implements Face. It walks glyph clusters accumulating advances
// and returns the rune index whose glyph boundary is nearest to x.
func (f *ShapedFace) IndexForX(text string, size float32, x float32) int {
	runes := []rune(text)
	if len(runes) == 0 || x <= 0 {
		return 0
	}
	out := f.shape(text, size)
	var pos float32
	for _, g := range out.Glyphs {
		adv := float32(g.XAdvance) / 64
		if x < pos+adv/2 {
			return g.TextIndex()
		}
		pos += adv
	}
	return len(runes)
}

func (f *ShapedFace) shape(text string, size float32) shaping.Output {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.fnt),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	sh := f.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := sh.Shape(input)
	f.shaperPool.Put(sh)
	return out
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// FixedFace is a metrics-only face with a constant advance per rune. It
// backs headless contexts and deterministic layout tests, where shaping
// against a real font would tie results to font files.
type FixedFace struct {
	// AdvanceEm is the advance of every rune as a fraction of the font
	// size. 0 means the default 0.6.
	AdvanceEm float32
}

func (f FixedFace) em() float32 {
	if f.AdvanceEm > 0 {
		return f.AdvanceEm
	}
	return 0.6
}

// Metrics implements Face.
func (f FixedFace) Metrics(size float32) FontMetrics {
	return FontMetrics{Ascent: size * 0.8, Descent: size * 0.2}
}

// Advance implements Face.
func (f FixedFace) Advance(text string, size float32) float32 {
	n := 0
	for range text {
		n++
	}
	return float32(n) * size * f.em()
}

// IndexForX implements Face.
func (f FixedFace) IndexForX(text string, size float32, x float32) int {
	n := 0
	for range text {
		n++
	}
	if n == 0 {
		return 0
	}
	w := size * f.em()
	idx := int((x + w/2) / w)
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}

// FixedFaceSource returns the same fixed face for every style.
type FixedFaceSource struct {
	Face FixedFace
}

// FaceFor implements FaceSource.
func (s FixedFaceSource) FaceFor(FontStyle) Face { return s.Face }

// FontMap resolves styles to parsed faces by family name, falling back to a
// default face for unknown families.
type FontMap struct {
	mu       sync.RWMutex
	families map[string]*ShapedFace
	fallback Face
}

// NewFontMap creates a font map with the given fallback face. A nil
// fallback uses FixedFace metrics.
func NewFontMap(fallback Face) *FontMap {
	if fallback == nil {
		fallback = FixedFace{}
	}
	return &FontMap{
		families: make(map[string]*ShapedFace),
		fallback: fallback,
	}
}

// Add registers font data under a family name.
func (m *FontMap) Add(family string, data []byte) error {
	face, err := ParseFace(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.families[family] = face
	m.mu.Unlock()
	return nil
}

// FaceFor implements FaceSource.
func (m *FontMap) FaceFor(style FontStyle) Face {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.families[style.Family]; ok {
		return f
	}
	return m.fallback
}
