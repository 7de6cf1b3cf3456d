package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML writes data to path as TOML. Parent directories are created
// as needed and the file is kept private, like everything else mpass
// writes.
func SaveTOML(path string, data interface{}) error {
	encoded, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0600)
}

// LoadTOML decodes the TOML file at path into data.
func LoadTOML(path string, data interface{}) error {
	_, err := toml.DecodeFile(path, data)
	return err
}
