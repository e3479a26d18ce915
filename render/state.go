package render

// LineCap styles the ends of stroked segments.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin styles the corners of stroked paths.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// TextAlignment positions text horizontally relative to the anchor or rect.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
)

// TextVerticalAlignment positions text vertically within a rect.
type TextVerticalAlignment int

const (
	VAlignTop TextVerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// WrapMode controls line breaking in DrawTextInRect and measurement.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapChar
)

// FontWeight maps to the usual CSS scale.
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightMedium FontWeight = 500
	WeightBold   FontWeight = 700
)

// FontSlant selects upright or italic faces.
type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
)

// FontStyle identifies a face and size.
type FontStyle struct {
	Family string
	Size   float32
	Weight FontWeight
	Slant  FontSlant
}

// DefaultFontStyle is the state-stack default.
func DefaultFontStyle() FontStyle {
	return FontStyle{Family: "sans", Size: 14, Weight: WeightNormal}
}

// TextStyle carries paragraph-level text state.
type TextStyle struct {
	Alignment         TextAlignment
	VerticalAlignment TextVerticalAlignment
	Wrap              WrapMode
	LineHeight        float32 // multiplier; 0 means default 1.2
	IsMarkup          bool
}

// EffectiveLineHeight returns the line height in pixels for a font size.
func (t TextStyle) EffectiveLineHeight(fontSize float32) float32 {
	m := t.LineHeight
	if m == 0 {
		m = 1.2
	}
	return fontSize * m
}

// State is the full tuple saved by PushState and restored by PopState.
type State struct {
	Transform   Matrix
	Clip        Rect // in device space; zero rect means unclipped
	HasClip     bool
	StrokePaint Paint
	FillPaint   Paint
	TextPaint   Paint
	Font        FontStyle
	Text        TextStyle
	StrokeWidth float32
	LineCap     LineCap
	LineJoin    LineJoin
	MiterLimit  float32
	Dash        []float32
	DashOffset  float32
	GlobalAlpha float32
}

// defaultState returns the reset state: identity transform, black paints,
// no clip, hairline stroke, full alpha.
func defaultState() State {
	return State{
		Transform:   Identity(),
		StrokePaint: SolidPaint(Black),
		FillPaint:   SolidPaint(Black),
		TextPaint:   SolidPaint(Black),
		Font:        DefaultFontStyle(),
		StrokeWidth: 1,
		MiterLimit:  10,
		GlobalAlpha: 1,
	}
}

// clone deep-copies the state; the dash slice is the only reference field.
func (s State) clone() State {
	if len(s.Dash) > 0 {
		d := make([]float32, len(s.Dash))
		copy(d, s.Dash)
		s.Dash = d
	}
	return s
}

// stateStack is the LIFO stack behind PushState/PopState.
type stateStack struct {
	current State
	saved   []State
}

func newStateStack() *stateStack {
	return &stateStack{current: defaultState()}
}

func (s *stateStack) push() {
	s.saved = append(s.saved, s.current.clone())
}

// pop restores the most recently pushed state. Popping an empty stack is
// ignored.
func (s *stateStack) pop() {
	n := len(s.saved)
	if n == 0 {
		return
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

// reset clears the stack and restores defaults.
func (s *stateStack) reset() {
	s.saved = s.saved[:0]
	s.current = defaultState()
}

func (s *stateStack) depth() int { return len(s.saved) }
