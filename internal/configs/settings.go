package configs

import (
	"log"
	"os"
	"os/user"
	"path/filepath"
)

// Settings holds the per-user paths mpass works with. They depend only on
// the environment, not on any particular store, so they are resolved once
// at startup.
type Settings struct {
	// ConfigDir is where config.toml lives (e.g. ~/.config/mpass).
	ConfigDir string

	// KeyDir is where the native backend keeps recipient keypairs
	// (e.g. ~/.local/share/mpass/keys).
	KeyDir string

	// Username is the operating system account name, used for diagnostics.
	Username string
}

// UserSettings is the active settings instance. Tests may swap it for a
// temp-directory copy and restore it afterwards.
var UserSettings *Settings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("error getting home directory: %s", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	UserSettings = &Settings{
		ConfigDir: filepath.Join(configDir, "mpass"),
		KeyDir:    filepath.Join(dataDir, "mpass", "keys"),
		Username:  username,
	}
}

// DefaultStoreName is the store directory created under the working
// directory when no override is configured.
const DefaultStoreName = ".password-store"

// DefaultStoreRoot returns <cwd>/.password-store.
func DefaultStoreRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, DefaultStoreName), nil
}
