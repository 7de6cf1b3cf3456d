// Package configs manages mpass user configuration and path settings.
//
// Configuration comes from three layers, highest precedence first:
//
//  1. Command-line flags (--store)
//  2. Environment variables (MPASS_STORE_DIR, MPASS_BACKEND, MPASS_GPG)
//  3. The user config file, config.toml in the user config directory
//
// Anything still unset falls back to defaults: the store root is
// <cwd>/.password-store and the backend is gpg.
//
// The config file also carries a per-user UUID, generated on first use,
// which identifies the user in store audit entries. EnsureUserConfig
// creates it when missing.
//
// Package-level UserSettings holds environment-derived paths (config dir,
// native-backend key dir). Tests replace it with a temp-directory copy.
package configs
