package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BackendGPG and BackendNative name the supported encryption backends.
const (
	BackendGPG    = "gpg"
	BackendNative = "native"
)

// UserConfig is the persisted per-user configuration (config.toml).
type UserConfig struct {
	User  User  `toml:"user"`
	Store Store `toml:"store"`
}

type User struct {
	UUID string `toml:"user_uuid"`
}

type Store struct {
	// Dir overrides the store root. Empty means <cwd>/.password-store.
	Dir string `toml:"dir"`

	// Backend selects the encryption provider: "gpg" (default) or "native".
	Backend string `toml:"backend"`

	// GPGProgram overrides the gpg binary name or path.
	GPGProgram string `toml:"gpg_program"`
}

func configPath() string {
	return filepath.Join(UserSettings.ConfigDir, "config.toml")
}

// LoadUserConfig loads config.toml, returning an empty config when the
// file does not exist yet.
func LoadUserConfig() (*UserConfig, error) {
	config := &UserConfig{}

	path := configPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig persists the user configuration.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(configPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// EnsureUserConfig loads the user config and generates a stable user UUID
// on first run. The UUID identifies this user in the store's audit trail.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	if config.User.UUID == "" {
		config.User.UUID = uuid.New().String()
		if err := SaveUserConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// StoreRoot resolves the store root directory. Precedence, highest first:
// the --store flag, the MPASS_STORE_DIR environment variable, the config
// file, then <cwd>/.password-store.
func StoreRoot(flagValue string, config *UserConfig) (string, error) {
	if flagValue != "" {
		return filepath.Clean(flagValue), nil
	}

	overrides, err := loadEnvOverrides()
	if err != nil {
		return "", err
	}
	if overrides.StoreDir != "" {
		return filepath.Clean(overrides.StoreDir), nil
	}

	if config != nil && config.Store.Dir != "" {
		return filepath.Clean(config.Store.Dir), nil
	}

	return DefaultStoreRoot()
}

// BackendName resolves which encryption backend to use, with the same
// precedence as StoreRoot (env over file over default).
func BackendName(config *UserConfig) (string, error) {
	overrides, err := loadEnvOverrides()
	if err != nil {
		return "", err
	}
	if overrides.Backend != "" {
		return overrides.Backend, nil
	}

	if config != nil && config.Store.Backend != "" {
		return config.Store.Backend, nil
	}

	return BackendGPG, nil
}

// GPGProgram resolves the gpg binary override, empty when unset.
func GPGProgram(config *UserConfig) (string, error) {
	overrides, err := loadEnvOverrides()
	if err != nil {
		return "", err
	}
	if overrides.GPGProgram != "" {
		return overrides.GPGProgram, nil
	}

	if config != nil {
		return config.Store.GPGProgram, nil
	}
	return "", nil
}
