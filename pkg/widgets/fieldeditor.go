package widgets

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/components"
	"github.com/tinyland/devconsole/pkg/layout"
	"github.com/tinyland/devconsole/pkg/profiles"
	"github.com/tinyland/devconsole/pkg/registry"
	"github.com/tinyland/devconsole/pkg/settings"
)

// fieldEditorMode is the tagged variant from spec.md §3: Normal,
// Selected(idx), Editing(idx, buffer), Selecting(idx, hover, options),
// ProfileSelecting(hover, options). Only one field is edited at a time.
type fieldEditorMode int

const (
	modeNormal fieldEditorMode = iota
	modeSelected
	modeEditing
	modeSelecting
	modeProfileSelecting
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldNumber
	fieldDropdown
	fieldFolder
)

type fieldSpec struct {
	label   string
	kind    fieldKind
	options []string
	get     func(settings.Settings) string
	set     func(*settings.Settings, string)
}

var fieldSpecs = []fieldSpec{
	{label: "Sketch directory", kind: fieldFolder,
		get: func(s settings.Settings) string { return s.SketchDirectory },
		set: func(s *settings.Settings, v string) { s.SketchDirectory = v }},
	{label: "Sketch name", kind: fieldText,
		get: func(s settings.Settings) string { return s.SketchName },
		set: func(s *settings.Settings, v string) { s.SketchName = v }},
	{label: "Environment", kind: fieldDropdown, options: []string{"arduino", "esp-idf", "pmake"},
		get: func(s settings.Settings) string { return s.Env },
		set: func(s *settings.Settings, v string) { s.Env = v }},
	{label: "Board model", kind: fieldText,
		get: func(s settings.Settings) string { return s.BoardModel },
		set: func(s *settings.Settings, v string) { s.BoardModel = v }},
	{label: "FQBN", kind: fieldText,
		get: func(s settings.Settings) string { return s.FQBN },
		set: func(s *settings.Settings, v string) { s.FQBN = v }},
	{label: "Port", kind: fieldText,
		get: func(s settings.Settings) string { return s.Port },
		set: func(s *settings.Settings, v string) { s.Port = v }},
	{label: "Baud rate", kind: fieldNumber,
		get: func(s settings.Settings) string { return strconv.FormatUint(uint64(s.Baudrate), 10) },
		set: func(s *settings.Settings, v string) {
			n, err := strconv.ParseUint(v, 10, 32)
			if err == nil {
				s.Baudrate = uint32(n)
			}
		}},
	{label: "Create log", kind: fieldDropdown, options: []string{"true", "false"},
		get: func(s settings.Settings) string { return strconv.FormatBool(s.CreateLog) },
		set: func(s *settings.Settings, v string) { s.CreateLog = v == "true" }},
	{label: "MQTT host", kind: fieldText,
		get: mqttGet(func(m *settings.MQTT) string { return m.Host }),
		set: mqttSet(func(m *settings.MQTT, v string) { m.Host = v })},
	{label: "MQTT port", kind: fieldNumber,
		get: mqttGet(func(m *settings.MQTT) string {
			if m.Port == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(m.Port), 10)
		}),
		set: mqttSet(func(m *settings.MQTT, v string) {
			n, err := strconv.ParseUint(v, 10, 16)
			if err == nil {
				m.Port = uint16(n)
			}
		})},
	{label: "MQTT username", kind: fieldText,
		get: mqttGet(func(m *settings.MQTT) string { return m.Username }),
		set: mqttSet(func(m *settings.MQTT, v string) { m.Username = v })},
	{label: "MQTT password", kind: fieldText,
		get: mqttGet(func(m *settings.MQTT) string { return m.Password }),
		set: mqttSet(func(m *settings.MQTT, v string) { m.Password = v })},
	{label: "MQTT status topic", kind: fieldText,
		get: mqttGet(func(m *settings.MQTT) string { return m.TopicStatus }),
		set: mqttSet(func(m *settings.MQTT, v string) { m.TopicStatus = v })},
	{label: "MQTT command topic", kind: fieldText,
		get: mqttGet(func(m *settings.MQTT) string { return m.TopicCommand }),
		set: mqttSet(func(m *settings.MQTT, v string) { m.TopicCommand = v })},
	{label: "MQTT telemetry topic", kind: fieldText,
		get: mqttGet(func(m *settings.MQTT) string { return m.TopicTelemetry }),
		set: mqttSet(func(m *settings.MQTT, v string) { m.TopicTelemetry = v })},
}

// mqttGet adapts a *settings.MQTT-scoped reader to a fieldSpec getter,
// reporting the empty string when MQTT is unconfigured rather than
// requiring every field to nil-check.
func mqttGet(read func(*settings.MQTT) string) func(settings.Settings) string {
	return func(s settings.Settings) string {
		if s.MQTT == nil {
			return ""
		}
		return read(s.MQTT)
	}
}

// mqttSet adapts a *settings.MQTT-scoped writer to a fieldSpec setter,
// lazily allocating MQTT on first edit. Settings.Validate's all-or-
// nothing rule catches a partially filled-in result at commit time.
func mqttSet(write func(*settings.MQTT, string)) func(*settings.Settings, string) {
	return func(s *settings.Settings, v string) {
		if s.MQTT == nil {
			s.MQTT = &settings.MQTT{}
		}
		write(s.MQTT, v)
	}
}

// FieldEditor owns the form state machine over the live Settings, per
// spec.md §3/§4.5: Tab/Shift+Tab cycle fields, Enter on a selected field
// opens it for editing with a buffer seeded from the current value, Esc
// reverts, Enter commits through the settings manager. Dropdown fields
// cycle their option list instead of opening a text buffer. Number
// fields reject non-numeric commits with a toast rather than a silent
// no-op.
type FieldEditor struct {
	Name string

	sm *settings.Manager
	pm *profiles.Manager

	mode    fieldEditorMode
	cursor  int // Selected/Editing field index
	input   textinput.Model
	hover   int // Selecting option index, or ProfileSelecting profile index
	options []string

	fieldRects []layout.Rect
}

// NewFieldEditor returns a FieldEditor bound to sm (committed on Enter)
// and pm (profiles browsable with 'p').
func NewFieldEditor(name string, sm *settings.Manager, pm *profiles.Manager) *FieldEditor {
	ti := textinput.New()
	ti.Prompt = ""
	return &FieldEditor{Name: name, sm: sm, pm: pm, mode: modeSelected, input: ti}
}

func (f *FieldEditor) ID() string      { return f.Name }
func (f *FieldEditor) OnTick(time.Time) {}

func (f *FieldEditor) HandleEvent(msg tea.Msg) app.Outcome {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if mouse, ok := msg.(tea.MouseMsg); ok {
			return f.handleMouse(mouse)
		}
		return app.ContinueOutcome()
	}

	switch f.mode {
	case modeNormal, modeSelected:
		return f.handleSelected(key)
	case modeEditing:
		return f.handleEditing(key)
	case modeSelecting:
		return f.handleSelecting(key)
	case modeProfileSelecting:
		return f.handleProfileSelecting(key)
	}
	return app.ContinueOutcome()
}

func (f *FieldEditor) handleMouse(m tea.MouseMsg) app.Outcome {
	if m.Type != tea.MouseLeft {
		return app.ContinueOutcome()
	}
	for i, r := range f.fieldRects {
		if r.Contains(m.X, m.Y) {
			f.cursor = i
			f.mode = modeSelected
			return app.ContinueOutcome()
		}
	}
	return app.ContinueOutcome()
}

func (f *FieldEditor) handleSelected(key tea.KeyMsg) app.Outcome {
	switch key.String() {
	case "tab":
		f.cursor = (f.cursor + 1) % len(fieldSpecs)
		return app.ContinueOutcome()
	case "shift+tab":
		f.cursor = (f.cursor - 1 + len(fieldSpecs)) % len(fieldSpecs)
		return app.ContinueOutcome()
	case "p":
		return f.openProfileSelecting()
	case "enter":
		return f.openField()
	}
	return app.ContinueOutcome()
}

func (f *FieldEditor) openField() app.Outcome {
	spec := fieldSpecs[f.cursor]
	current := f.sm.Get()

	switch spec.kind {
	case fieldDropdown:
		f.options = spec.options
		f.hover = 0
		for i, opt := range spec.options {
			if opt == spec.get(current) {
				f.hover = i
			}
		}
		f.mode = modeSelecting
		return app.ContinueOutcome()

	case fieldFolder:
		start := spec.get(current)
		if start == "" {
			start = "."
		}
		browser := NewFileBrowser(f.Name+".browser", start)
		browser.OnConfirm = func(path string) {
			f.commitField(spec, path)
		}
		return app.PushModalOutcome(browser)

	default:
		f.input.SetValue(spec.get(current))
		f.input.Focus()
		f.input.CursorEnd()
		f.mode = modeEditing
		return app.ContinueOutcome()
	}
}

func (f *FieldEditor) handleEditing(key tea.KeyMsg) app.Outcome {
	switch key.String() {
	case "esc":
		f.input.Blur()
		f.mode = modeSelected
		return app.ContinueOutcome()
	case "enter":
		spec := fieldSpecs[f.cursor]
		value := f.input.Value()
		if spec.kind == fieldNumber {
			if _, err := strconv.ParseUint(value, 10, 32); err != nil {
				return app.ToastOutcome(fmt.Sprintf("%s must be a number", spec.label), 2)
			}
		}
		f.input.Blur()
		f.mode = modeSelected
		return f.commitField(spec, value)
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(key)
	_ = cmd
	return app.ContinueOutcome()
}

func (f *FieldEditor) handleSelecting(key tea.KeyMsg) app.Outcome {
	switch key.String() {
	case "esc":
		f.mode = modeSelected
		return app.ContinueOutcome()
	case "up", "k":
		f.hover = (f.hover - 1 + len(f.options)) % len(f.options)
	case "down", "j":
		f.hover = (f.hover + 1) % len(f.options)
	case "enter":
		spec := fieldSpecs[f.cursor]
		f.mode = modeSelected
		return f.commitField(spec, f.options[f.hover])
	}
	return app.ContinueOutcome()
}

func (f *FieldEditor) commitField(spec fieldSpec, value string) app.Outcome {
	err := f.sm.Update(func(s *settings.Settings) { spec.set(s, value) })
	if err != nil {
		return app.ToastOutcome(fmt.Sprintf("could not save %s: %v", spec.label, err), 2)
	}
	return app.ContinueOutcome()
}

func (f *FieldEditor) openProfileSelecting() app.Outcome {
	names, err := f.pm.List()
	if err != nil || len(names) == 0 {
		return app.ToastOutcome("no saved profiles", 1)
	}
	f.options = names
	f.hover = 0
	f.mode = modeProfileSelecting
	return app.ContinueOutcome()
}

func (f *FieldEditor) handleProfileSelecting(key tea.KeyMsg) app.Outcome {
	switch key.String() {
	case "esc":
		f.mode = modeSelected
		return app.ContinueOutcome()
	case "up", "k":
		f.hover = (f.hover - 1 + len(f.options)) % len(f.options)
	case "down", "j":
		f.hover = (f.hover + 1) % len(f.options)
	case "enter":
		f.mode = modeSelected
		name := f.options[f.hover]
		loaded, err := f.pm.Load(name)
		if err != nil {
			return app.ToastOutcome(fmt.Sprintf("could not load profile %s: %v", name, err), 2)
		}
		if err := f.sm.Update(func(s *settings.Settings) { *s = loaded }); err != nil {
			return app.ToastOutcome(fmt.Sprintf("could not apply profile %s: %v", name, err), 2)
		}
		return app.ToastOutcome(fmt.Sprintf("loaded profile %s", name), 0)
	}
	return app.ContinueOutcome()
}

func (f *FieldEditor) Render(area layout.Rect, reg *registry.Registry) string {
	f.fieldRects = f.fieldRects[:0]
	current := f.sm.Get()

	var out string
	for i, spec := range fieldSpecs {
		row := layout.Rect{X: area.X, Y: area.Y + i, Width: area.Width, Height: 1}
		f.fieldRects = append(f.fieldRects, row)
		if i >= area.Height {
			continue
		}

		label := components.PadRight(spec.label+":", 18)
		var value string
		switch {
		case i == f.cursor && f.mode == modeEditing:
			value = f.input.View()
		case i == f.cursor && f.mode == modeSelecting:
			value = renderOptions(f.options, f.hover)
		default:
			value = spec.get(current)
			if spec.kind == fieldFolder {
				value += "  " // trailing folder-picker icon
			}
		}

		line := components.Color(ColorDim()) + label + components.Reset() + value
		if i == f.cursor {
			line = components.Bold(components.Color(ColorAccent()) + label) + components.Reset() + value
		}

		name := fmt.Sprintf("%s.field.%d", f.Name, i)
		reg.Register(name, registry.Rect{X: row.X, Y: row.Y, W: row.Width, H: row.Height})
		out += reg.Mark(name, components.Truncate(line, area.Width))
		if i < len(fieldSpecs)-1 {
			out += "\n"
		}
	}

	if f.mode == modeProfileSelecting {
		out += "\n\nLoad profile:\n" + renderOptions(f.options, f.hover)
	}

	return out
}

func renderOptions(options []string, hover int) string {
	var out string
	for i, opt := range options {
		if i == hover {
			out += components.Bold(components.Color(ColorAccent())+"["+opt+"]") + components.Reset()
		} else {
			out += " " + opt + " "
		}
	}
	return out
}
