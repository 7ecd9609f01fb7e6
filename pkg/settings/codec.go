package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Decode parses data according to the file extension of path. Unknown
// extensions are treated as YAML, the primary format. Exported so the
// profiles package can reuse the same dual-format codec.
func Decode(path string, data []byte, out *Settings) error {
	return decode(path, data, out)
}

// Encode serializes s according to the file extension of path. Exported
// so the profiles package can reuse the same dual-format codec.
func Encode(path string, s Settings) ([]byte, error) {
	return encode(path, s)
}

// AtomicWrite writes data to path via temp-file-then-rename. Exported so
// the profiles package can reuse the same persistence idiom.
func AtomicWrite(path string, data []byte) error {
	return atomicWrite(path, data)
}

// decode parses data according to the file extension of path. Unknown
// extensions are treated as YAML, the primary format.
func decode(path string, data []byte, out *Settings) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

// encode serializes s according to the file extension of path.
func encode(path string, s Settings) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return []byte(buf.String()), nil
	}
	return yaml.Marshal(s)
}

// atomicWrite writes data to path via a temp-file-then-rename, so a
// reader never observes a half-written file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("settings: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("settings: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("settings: rename into place: %w", err)
	}

	success = true
	return nil
}
