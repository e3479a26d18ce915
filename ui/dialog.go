package ui

import (
	"sync"

	"github.com/ultracanvas/ultracanvas/render"
)

// DialogResult identifies which button (or dismissal path) ended a
// dialog.
type DialogResult int

const (
	ResultNone DialogResult = iota
	ResultOK
	ResultCancel
	ResultYes
	ResultNo
	ResultApply
	ResultClose
	ResultHelp
	ResultRetry
	ResultIgnore
	ResultAbort
)

// String returns the result name for logs.
func (r DialogResult) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultCancel:
		return "cancel"
	case ResultYes:
		return "yes"
	case ResultNo:
		return "no"
	case ResultApply:
		return "apply"
	case ResultClose:
		return "close"
	case ResultHelp:
		return "help"
	case ResultRetry:
		return "retry"
	case ResultIgnore:
		return "ignore"
	case ResultAbort:
		return "abort"
	}
	return "none"
}

// DialogButton is one button of the row. The default button answers
// Enter; Escape always answers Cancel.
type DialogButton struct {
	Label   string
	Result  DialogResult
	Default bool
}

// DialogConfig describes a message dialog.
type DialogConfig struct {
	Title   string
	Message string
	// Detail renders below the message in the dim secondary color.
	Detail  string
	Buttons []DialogButton
	Width   float32
}

// InputConfig describes a single-field prompt dialog.
type InputConfig struct {
	DialogConfig
	Placeholder string
	Initial     string
	MaxLength   int
}

// FileConfig describes a path prompt dialog.
type FileConfig struct {
	DialogConfig
	InitialPath string
	// Save switches the accept button label.
	Save bool
}

const (
	dialogTitleH   = float32(30)
	dialogButtonH  = float32(30)
	dialogButtonW  = float32(84)
	dialogMargin   = float32(14)
	dialogMinWidth = float32(320)
)

// Dialog is one modal overlay: title bar, message and detail, optional
// input field and a button row. It is created through the DialogManager.
type Dialog struct {
	*Container

	manager  *DialogManager
	config   DialogConfig
	callback func(DialogResult)
	// delivered guards the exactly-once callback contract.
	delivered bool

	input   *TextInput
	buttons []*Button
}

// Result dialogs route Escape to Cancel and Enter to the default button.
func (d *Dialog) OnEvent(ev *Event) bool {
	if ev.Type == EventKeyDown {
		switch ev.VirtualKey {
		case KeyEscape:
			d.manager.Close(d, ResultCancel)
			return true
		case KeyEnter:
			for i, btn := range d.config.Buttons {
				if btn.Default {
					d.manager.Close(d, d.config.Buttons[i].Result)
					return true
				}
			}
		}
	}
	return d.Container.OnEvent(ev)
}

// InputText returns the field content of an input or file dialog.
func (d *Dialog) InputText() string {
	if d.input == nil {
		return ""
	}
	return d.input.Text()
}

// Render draws the chrome, then the children.
func (d *Dialog) Render(ctx render.Context) {
	b := d.Bounds()
	ctx.PushState()
	// Drop shadow.
	ctx.SetFillColor(render.Color{A: 50})
	ctx.FillRoundedRectangle(3, 4, b.Width, b.Height, 6)
	ctx.SetFillColor(render.White)
	ctx.FillRoundedRectangle(0, 0, b.Width, b.Height, 6)
	ctx.SetStrokeColor(render.Color{R: 170, G: 170, B: 170, A: 255})
	ctx.SetStrokeWidth(1)
	ctx.DrawRoundedRectangle(0.5, 0.5, b.Width-1, b.Height-1, 6)

	ctx.SetFillColor(render.Color{R: 240, G: 242, B: 246, A: 255})
	ctx.FillRoundedRectangle(0, 0, b.Width, dialogTitleH, 6)
	ctx.FillRectangle(0, dialogTitleH/2, b.Width, dialogTitleH/2)
	ctx.SetFontSize(14)
	ctx.SetFontFace("sans-serif", render.WeightBold, render.SlantNormal)
	ctx.SetTextColor(render.Black)
	ctx.SetTextAlignment(render.AlignLeft)
	ctx.SetTextVerticalAlignment(render.VAlignMiddle)
	ctx.DrawTextInRect(d.config.Title, dialogMargin, 0, b.Width-2*dialogMargin, dialogTitleH)
	ctx.PopState()

	d.Container.Render(ctx)
}

// DialogManager owns the window's modal dialogs: an ordered active list
// where the last entry is the current modal (LIFO layering), and the
// default configurations Show falls back to.
type DialogManager struct {
	mu sync.Mutex

	window  *Window
	active  []*Dialog
	enabled bool

	defaultDialog DialogConfig
	defaultInput  InputConfig
	defaultFile   FileConfig
}

// NewDialogManager creates the manager for a window. Windows construct
// one themselves; tests may build extra managers.
func NewDialogManager(w *Window) *DialogManager {
	return &DialogManager{
		window:  w,
		enabled: true,
		defaultDialog: DialogConfig{
			Title:   "Message",
			Buttons: []DialogButton{{Label: "OK", Result: ResultOK, Default: true}},
			Width:   dialogMinWidth,
		},
		defaultInput: InputConfig{
			DialogConfig: DialogConfig{
				Title: "Input",
				Buttons: []DialogButton{
					{Label: "OK", Result: ResultOK, Default: true},
					{Label: "Cancel", Result: ResultCancel},
				},
				Width: dialogMinWidth,
			},
		},
		defaultFile: FileConfig{
			DialogConfig: DialogConfig{
				Title: "Open File",
				Buttons: []DialogButton{
					{Label: "Open", Result: ResultOK, Default: true},
					{Label: "Cancel", Result: ResultCancel},
				},
				Width: 420,
			},
		},
	}
}

// SetEnabled turns dialog display off; Show calls while disabled deliver
// Cancel immediately.
func (m *DialogManager) SetEnabled(on bool) {
	m.mu.Lock()
	m.enabled = on
	m.mu.Unlock()
}

// ActiveCount returns the number of registered dialogs.
func (m *DialogManager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// CurrentModal returns the top dialog, nil when none.
func (m *DialogManager) CurrentModal() *Dialog {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.active) == 0 {
		return nil
	}
	return m.active[len(m.active)-1]
}

// Show builds and displays a message dialog. Zero-value config fields
// fall back to the defaults. The callback runs exactly once, when the
// dialog closes.
func (m *DialogManager) Show(cfg DialogConfig, callback func(DialogResult)) *Dialog {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		if callback != nil {
			callback(ResultCancel)
		}
		return nil
	}
	if len(cfg.Buttons) == 0 {
		cfg.Buttons = m.defaultDialog.Buttons
	}
	if cfg.Title == "" {
		cfg.Title = m.defaultDialog.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = m.defaultDialog.Width
	}
	m.mu.Unlock()

	d := m.build(cfg, callback, nil)
	m.register(d)
	return d
}

// ShowInput displays a one-field prompt; the callback receives the result
// and the field content.
func (m *DialogManager) ShowInput(cfg InputConfig, callback func(DialogResult, string)) *Dialog {
	m.mu.Lock()
	enabled := m.enabled
	if len(cfg.Buttons) == 0 {
		cfg.Buttons = m.defaultInput.Buttons
	}
	if cfg.Title == "" {
		cfg.Title = m.defaultInput.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = m.defaultInput.DialogConfig.Width
	}
	m.mu.Unlock()
	if !enabled {
		if callback != nil {
			callback(ResultCancel, "")
		}
		return nil
	}

	input := NewTextInput("dialog.input")
	input.SetPlaceholder(cfg.Placeholder)
	if cfg.MaxLength > 0 {
		input.SetMaxLength(cfg.MaxLength)
	}
	input.SetText(cfg.Initial)

	var d *Dialog
	d = m.build(cfg.DialogConfig, func(r DialogResult) {
		if callback != nil {
			callback(r, d.InputText())
		}
	}, input)
	m.register(d)
	return d
}

// ShowFile displays a path prompt. There is no OS file chooser behind the
// render abstraction; the dialog takes a typed path.
func (m *DialogManager) ShowFile(cfg FileConfig, callback func(DialogResult, string)) *Dialog {
	m.mu.Lock()
	if cfg.Title == "" {
		if cfg.Save {
			cfg.Title = "Save File"
		} else {
			cfg.Title = m.defaultFile.Title
		}
	}
	if len(cfg.Buttons) == 0 {
		cfg.Buttons = m.defaultFile.Buttons
		if cfg.Save {
			cfg.Buttons = []DialogButton{
				{Label: "Save", Result: ResultOK, Default: true},
				{Label: "Cancel", Result: ResultCancel},
			}
		}
	}
	if cfg.Width <= 0 {
		cfg.Width = m.defaultFile.DialogConfig.Width
	}
	m.mu.Unlock()
	return m.ShowInput(InputConfig{
		DialogConfig: cfg.DialogConfig,
		Initial:      cfg.InitialPath,
		Placeholder:  "path",
	}, callback)
}

// Confirm displays the standard three-way save prompt.
func (m *DialogManager) Confirm(title, message string, callback func(DialogResult)) *Dialog {
	return m.Show(DialogConfig{
		Title:   title,
		Message: message,
		Buttons: []DialogButton{
			{Label: "Yes", Result: ResultYes, Default: true},
			{Label: "No", Result: ResultNo},
			{Label: "Cancel", Result: ResultCancel},
		},
	}, callback)
}

// build assembles the dialog tree and centers it in the window.
func (m *DialogManager) build(cfg DialogConfig, callback func(DialogResult), input *TextInput) *Dialog {
	d := &Dialog{
		Container: NewContainer("dialog"),
		manager:   m,
		config:    cfg,
		callback:  callback,
		input:     input,
	}
	d.Container.setOwner(d)
	d.SetScrollEnabled(false)
	d.SetWindow(m.window)
	d.SetFocusable(true)

	ctx := m.window.Context()
	ctx.PushState()
	ctx.SetFontSize(14)
	innerW := cfg.Width - 2*dialogMargin
	msgH := float32(0)
	if cfg.Message != "" {
		ctx.SetTextWrap(render.WrapWord)
		msgH = ctx.GetTextDimensions(cfg.Message, innerW).Height + 6
	}
	detailH := float32(0)
	if cfg.Detail != "" {
		detailH = ctx.GetTextDimensions(cfg.Detail, innerW).Height + 4
	}
	ctx.PopState()

	y := dialogTitleH + dialogMargin
	if cfg.Message != "" {
		msg := NewLabel("dialog.message", cfg.Message).SetWrap(render.WrapWord)
		msg.SetBounds(dialogMargin, y, innerW, msgH)
		d.AddChild(msg)
		y += msgH
	}
	if cfg.Detail != "" {
		det := NewLabel("dialog.detail", cfg.Detail).
			SetColor(render.Color{R: 120, G: 120, B: 120, A: 255}).
			SetWrap(render.WrapWord)
		det.SetBounds(dialogMargin, y, innerW, detailH)
		d.AddChild(det)
		y += detailH
	}
	if input != nil {
		input.SetBounds(dialogMargin, y+4, innerW, 26)
		d.AddChild(input)
		y += 34
	}

	y += dialogMargin
	bx := cfg.Width - dialogMargin
	for i := len(cfg.Buttons) - 1; i >= 0; i-- {
		bc := cfg.Buttons[i]
		result := bc.Result
		btn := NewButton("dialog.button", bc.Label)
		btn.OnClick = func() { m.Close(d, result) }
		bx -= dialogButtonW
		btn.SetBounds(bx, y, dialogButtonW, dialogButtonH)
		bx -= 8
		d.AddChild(btn)
		d.buttons = append(d.buttons, btn)
	}
	height := y + dialogButtonH + dialogMargin

	ww, wh := m.window.Size()
	d.setBoundsDirect(render.Rect{
		X:      (float32(ww) - cfg.Width) / 2,
		Y:      (float32(wh) - height) / 2.4,
		Width:  cfg.Width,
		Height: height,
	})
	return d
}

// register pushes the dialog onto the active stack and the window's modal
// layer.
func (m *DialogManager) register(d *Dialog) {
	m.mu.Lock()
	m.active = append(m.active, d)
	m.mu.Unlock()
	m.window.showModal(d)
	if d.input != nil {
		m.window.Dispatcher().SetFocus(d.input)
	} else {
		m.window.Dispatcher().SetFocus(d)
	}
	logger().Debug("dialog shown", "title", d.config.Title, "depth", m.ActiveCount())
}

// Close unregisters the dialog and delivers the result. The callback runs
// at most once; later Close calls for the same dialog are no-ops.
func (m *DialogManager) Close(d *Dialog, result DialogResult) {
	if d == nil {
		return
	}
	m.mu.Lock()
	if d.delivered {
		m.mu.Unlock()
		return
	}
	d.delivered = true
	for i, a := range m.active {
		if a == d {
			m.active = append(m.active[:i], m.active[i+1:]...)
			break
		}
	}
	cb := d.callback
	m.mu.Unlock()

	m.window.closeModal(d)
	logger().Debug("dialog closed", "title", d.config.Title, "result", result.String())
	if cb != nil {
		cb(result)
	}
}

// CancelAll closes every active dialog LIFO, delivering Cancel to each.
func (m *DialogManager) CancelAll() {
	for {
		d := m.CurrentModal()
		if d == nil {
			return
		}
		m.Close(d, ResultCancel)
	}
}
