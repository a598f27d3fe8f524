package layout

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a layout from disk. A missing file yields the default layout.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Layout{}, err
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Marshal encodes l as YAML.
func Marshal(l Layout) ([]byte, error) {
	return yaml.Marshal(l)
}

// Save writes l to disk, creating parent directories as needed.
func Save(path string, l Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
