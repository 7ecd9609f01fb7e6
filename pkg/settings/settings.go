// Package settings is the single source of truth for the dev console's
// user configuration. A Manager owns one in-memory Settings value behind a
// mutex and persists every successful update to disk, eliminating the
// dual-storage / manual-sync pattern that caused drift in earlier designs.
package settings

import "fmt"

// MQTT holds the broker connection and topic layout for telemetry
// publishing. A nil *MQTT on Settings means MQTT is not configured.
type MQTT struct {
	Host           string `yaml:"host" toml:"host"`
	Port           uint16 `yaml:"port" toml:"port"`
	Username       string `yaml:"username" toml:"username"`
	Password       string `yaml:"password" toml:"password"`
	TopicStatus    string `yaml:"topic_status" toml:"topic_status"`
	TopicCommand   string `yaml:"topic_command" toml:"topic_command"`
	TopicTelemetry string `yaml:"topic_telemetry" toml:"topic_telemetry"`
}

// Settings is the flat record of user configuration persisted across
// sessions: which sketch to build, which board and port to target, and
// (optionally) where to publish MQTT telemetry.
type Settings struct {
	SketchDirectory string `yaml:"sketch_directory" toml:"sketch_directory"`
	SketchName      string `yaml:"sketch_name" toml:"sketch_name"`
	Env             string `yaml:"env" toml:"env"`
	BoardModel      string `yaml:"board_model" toml:"board_model"`
	FQBN            string `yaml:"fqbn" toml:"fqbn"`
	Port            string `yaml:"port" toml:"port"`
	Baudrate        uint32 `yaml:"baudrate" toml:"baudrate"`
	CreateLog       bool   `yaml:"create_log" toml:"create_log"`
	MQTT            *MQTT  `yaml:"mqtt,omitempty" toml:"mqtt,omitempty"`
}

// DefaultBaudrate is used whenever a loaded or newly created record lacks
// a positive baud rate.
const DefaultBaudrate uint32 = 115200

// Default returns the settings used when no file exists yet, or when the
// file on disk is corrupt and we fall back to factory defaults.
func Default() Settings {
	return Settings{
		Env:      "arduino",
		FQBN:     "esp32:esp32:esp32s3",
		Baudrate: DefaultBaudrate,
	}
}

// MQTTConfigured reports whether MQTT is present with every field
// populated. A nil MQTT reports false.
func (s Settings) MQTTConfigured() bool {
	return s.MQTT != nil && s.MQTT.allFieldsSet()
}

func (m *MQTT) allFieldsSet() bool {
	return m.Host != "" && m.Port != 0 && m.Username != "" &&
		m.Password != "" && m.TopicStatus != "" && m.TopicCommand != "" &&
		m.TopicTelemetry != ""
}

// Validate enforces the invariants from the data model: a positive baud
// rate, and an MQTT block that is either absent or fully populated. Port
// is not checked (an empty port means "not yet chosen", which is valid
// before the first compile/upload).
func (s Settings) Validate() error {
	if s.Baudrate == 0 {
		return fmt.Errorf("settings: baudrate must be greater than zero")
	}
	if s.MQTT != nil && !s.MQTT.allFieldsSet() {
		return fmt.Errorf("settings: mqtt fields must be all-or-nothing")
	}
	return nil
}

// equal reports whether s and other describe the same configuration,
// comparing MQTT by value rather than by pointer identity.
func (s Settings) equal(other Settings) bool {
	lhs, rhs := s, other
	lhs.MQTT, rhs.MQTT = nil, nil
	if lhs != rhs {
		return false
	}
	switch {
	case s.MQTT == nil && other.MQTT == nil:
		return true
	case s.MQTT == nil || other.MQTT == nil:
		return false
	default:
		return *s.MQTT == *other.MQTT
	}
}

// Clone returns a deep copy so callers never share the MQTT pointer with
// the manager's internal state.
func (s Settings) Clone() Settings {
	cp := s
	if s.MQTT != nil {
		m := *s.MQTT
		cp.MQTT = &m
	}
	return cp
}
