package backend

import (
	"context"
	"fmt"

	"github.com/JustNevi/mpass/internal/configs"
	merrors "github.com/JustNevi/mpass/internal/errors"
)

// Backend seals and opens entry ciphertext. Implementations never touch
// the store tree; they transform bytes for a recipient id.
type Backend interface {
	// Name returns the configured backend name ("gpg" or "native").
	Name() string

	// Check reports whether the backend can run at all, wrapping
	// ErrBackendUnavailable when it cannot.
	Check() error

	// Encrypt seals plaintext for the recipient.
	Encrypt(ctx context.Context, plaintext []byte, recipient string) ([]byte, error)

	// Decrypt opens ciphertext using whatever local key material can.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// New constructs the backend the user configuration selects.
func New(config *configs.UserConfig) (Backend, error) {
	name, err := configs.BackendName(config)
	if err != nil {
		return nil, err
	}

	switch name {
	case configs.BackendGPG:
		program, err := configs.GPGProgram(config)
		if err != nil {
			return nil, err
		}
		return NewGPG(program), nil
	case configs.BackendNative:
		return NewNative(configs.UserSettings.KeyDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", merrors.ErrBackendUnavailable, name)
	}
}
