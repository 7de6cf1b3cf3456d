package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides are the environment variables that override config.toml.
type envOverrides struct {
	StoreDir   string `env:"MPASS_STORE_DIR"`
	Backend    string `env:"MPASS_BACKEND"`
	GPGProgram string `env:"MPASS_GPG"`
}

func loadEnvOverrides() (envOverrides, error) {
	overrides := envOverrides{}
	if err := env.Parse(&overrides); err != nil {
		return overrides, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return overrides, nil
}
