package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := m.Get()
	if got.Baudrate != DefaultBaudrate {
		t.Errorf("Baudrate = %d, want default %d", got.Baudrate, DefaultBaudrate)
	}
}

func TestUpdatePersistsAndGetObservesLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := m.Update(func(s *Settings) { s.SketchName = "blink" }); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := m.Get().SketchName; got != "blink" {
		t.Errorf("SketchName = %q, want %q", got, "blink")
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload Load: %v", err)
	}
	if got := reloaded.Get().SketchName; got != "blink" {
		t.Errorf("reloaded SketchName = %q, want %q", got, "blink")
	}
}

func TestUpdateRejectsZeroBaudrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	err = m.Update(func(s *Settings) { s.Baudrate = 0 })
	if err == nil {
		t.Fatal("expected error for zero baudrate, got nil")
	}
	if got := m.Get().Baudrate; got != DefaultBaudrate {
		t.Errorf("in-memory Baudrate changed to %d after failed update", got)
	}
}

func TestUpdateRejectsPartialMQTT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	err = m.Update(func(s *Settings) {
		s.MQTT = &MQTT{Host: "broker.local"}
	})
	if err == nil {
		t.Fatal("expected error for partial mqtt config, got nil")
	}
}

func TestMQTTConfiguredAllOrNothing(t *testing.T) {
	s := Default()
	if s.MQTTConfigured() {
		t.Error("nil MQTT reported as configured")
	}

	s.MQTT = &MQTT{
		Host: "broker.local", Port: 1883, Username: "u", Password: "p",
		TopicStatus: "s", TopicCommand: "c", TopicTelemetry: "t",
	}
	if !s.MQTTConfigured() {
		t.Error("fully populated MQTT reported as not configured")
	}
}

func TestGetReturnsIndependentClone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Update(func(s *Settings) {
		s.MQTT = &MQTT{Host: "a", Port: 1, Username: "u", Password: "p", TopicStatus: "s", TopicCommand: "c", TopicTelemetry: "t"}
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	snap := m.Get()
	snap.MQTT.Host = "mutated"

	if got := m.Get().MQTT.Host; got != "a" {
		t.Errorf("mutating a Get() clone leaked into manager state: got %q", got)
	}
}

func TestNoSpuriousWriteOnIdenticalUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Update(func(s *Settings) { s.SketchName = "blink" }); err != nil {
		t.Fatalf("Update: %v", err)
	}

	info1, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := m.Update(func(s *Settings) { s.SketchName = "blink" }); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	info2, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if info1.Size() != info2.Size() {
		t.Errorf("file size changed across a semantically identical update: %d vs %d", info1.Size(), info2.Size())
	}
}
