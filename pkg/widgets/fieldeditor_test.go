package widgets

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinyland/devconsole/pkg/app"
	"github.com/tinyland/devconsole/pkg/profiles"
	"github.com/tinyland/devconsole/pkg/settings"
)

func newTestFieldEditor(t *testing.T) *FieldEditor {
	t.Helper()
	sm, err := settings.Load(t.TempDir() + "/settings.yaml")
	if err != nil {
		t.Fatalf("settings.Load: %v", err)
	}
	pm := profiles.New(t.TempDir(), "")
	return NewFieldEditor("fields", sm, pm)
}

func TestFieldEditorTabCyclesFields(t *testing.T) {
	f := newTestFieldEditor(t)
	f.HandleEvent(tea.KeyMsg{Type: tea.KeyTab})
	if f.cursor != 1 {
		t.Fatalf("expected cursor=1 after tab, got %d", f.cursor)
	}
}

func TestFieldEditorEditCommitsThroughSettings(t *testing.T) {
	f := newTestFieldEditor(t)
	f.cursor = 1 // Sketch name

	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}) // opens Editing
	if f.mode != modeEditing {
		t.Fatalf("expected modeEditing, got %v", f.mode)
	}

	for _, r := range "blink" {
		f.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}) // commit

	if got := f.sm.Get().SketchName; got != "blink" {
		t.Fatalf("expected sketch name committed as blink, got %q", got)
	}
	if f.mode != modeSelected {
		t.Fatalf("expected mode to return to Selected, got %v", f.mode)
	}
}

func TestFieldEditorEscRevertsEdit(t *testing.T) {
	f := newTestFieldEditor(t)
	f.cursor = 1

	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})
	f.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEsc})

	if f.sm.Get().SketchName != "" {
		t.Fatalf("expected esc to discard buffered edit, got %q", f.sm.Get().SketchName)
	}
}

func TestFieldEditorNumberFieldRejectsNonNumeric(t *testing.T) {
	f := newTestFieldEditor(t)
	f.cursor = 6 // Baud rate

	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})
	f.input.SetValue("")
	for _, r := range "abc" {
		f.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	outcome := f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})

	if outcome.Kind != app.ShowToast {
		t.Fatalf("expected ShowToast on invalid number, got %+v", outcome)
	}
	if f.sm.Get().Baudrate != settings.DefaultBaudrate {
		t.Fatalf("expected baudrate untouched, got %d", f.sm.Get().Baudrate)
	}
}

func TestFieldEditorDropdownSelectingCommitsOption(t *testing.T) {
	f := newTestFieldEditor(t)
	f.cursor = 2 // Environment

	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter}) // opens Selecting
	if f.mode != modeSelecting {
		t.Fatalf("expected modeSelecting, got %v", f.mode)
	}
	f.HandleEvent(tea.KeyMsg{Type: tea.KeyDown})
	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})

	if f.sm.Get().Env != "esp-idf" {
		t.Fatalf("expected env committed as esp-idf, got %q", f.sm.Get().Env)
	}
}

func TestMQTTFieldSpecsAllocateAndReadBack(t *testing.T) {
	mqttLabels := []string{
		"MQTT host", "MQTT port", "MQTT username", "MQTT password",
		"MQTT status topic", "MQTT command topic", "MQTT telemetry topic",
	}
	var s settings.Settings
	for _, label := range mqttLabels {
		var spec *fieldSpec
		for i := range fieldSpecs {
			if fieldSpecs[i].label == label {
				spec = &fieldSpecs[i]
			}
		}
		if spec == nil {
			t.Fatalf("expected a %q field spec", label)
		}
		if got := spec.get(s); got != "" {
			t.Errorf("%s: expected empty before any edit, got %q", label, got)
		}
		spec.set(&s, "1")
	}
	if s.MQTT == nil {
		t.Fatal("expected MQTT allocated after editing its fields")
	}
	if !s.MQTTConfigured() {
		t.Errorf("expected MQTTConfigured() true once every field is set, got MQTT=%+v", s.MQTT)
	}
}

func TestFieldEditorMQTTEditRejectedWhilePartial(t *testing.T) {
	f := newTestFieldEditor(t)
	mqttHost := -1
	for i, spec := range fieldSpecs {
		if spec.label == "MQTT host" {
			mqttHost = i
		}
	}
	if mqttHost < 0 {
		t.Fatal("expected an \"MQTT host\" field spec")
	}
	f.cursor = mqttHost

	f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})
	for _, r := range "broker.local" {
		f.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	outcome := f.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})

	if outcome.Kind != app.ShowToast {
		t.Fatalf("expected ShowToast for a partial all-or-nothing MQTT commit, got %+v", outcome)
	}
	if f.sm.Get().MQTT != nil {
		t.Fatalf("expected the rejected partial MQTT update not to persist, got %+v", f.sm.Get().MQTT)
	}
}
