package workflows

import (
	"bytes"
	"context"

	"github.com/JustNevi/mpass/internal/clipboard"
	"github.com/JustNevi/mpass/internal/store"
)

// ClipMode selects what Show does with the decrypted secret.
type ClipMode int

const (
	// ClipNone returns the plaintext for display.
	ClipNone ClipMode = iota

	// ClipLine copies the first line to the clipboard.
	ClipLine

	// ClipAll copies the whole secret to the clipboard.
	ClipAll
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	// Path is the logical entry path.
	Path string

	// Clip selects display versus clipboard delivery.
	Clip ClipMode
}

// ShowResult contains the outcome of a show operation.
type ShowResult struct {
	// Path is the logical path that was read.
	Path string

	// Plaintext holds the secret, only when Clip was ClipNone.
	Plaintext []byte

	// Copied is true when the secret went to the clipboard instead.
	Copied bool

	// TimeoutSeconds is the clipboard expiry that was armed.
	TimeoutSeconds int
}

// Show decrypts an entry and either returns the plaintext or places it
// on the clipboard with an expiry. When a clipboard copy was requested
// the plaintext is never returned, so it cannot end up in scrollback.
//
// Returns ErrNotInitialized, ErrNotFound, or ErrDecryptionFailed.
func (m *Manager) Show(ctx context.Context, opts ShowOptions) (*ShowResult, error) {
	if _, err := m.requireInitialized(); err != nil {
		return nil, err
	}
	if err := store.ValidateLogicalPath(opts.Path); err != nil {
		return nil, err
	}

	ciphertext, err := m.store.ReadEntry(opts.Path)
	if err != nil {
		return nil, err
	}

	plaintext, err := m.backend.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, err
	}

	if opts.Clip == ClipNone {
		return &ShowResult{Path: opts.Path, Plaintext: plaintext}, nil
	}
	defer wipe(plaintext)

	value := plaintext
	if opts.Clip == ClipLine {
		value = firstLine(plaintext)
	}

	if err := m.clip(value, clipboard.DefaultTimeoutSeconds); err != nil {
		return nil, err
	}

	return &ShowResult{
		Path:           opts.Path,
		Copied:         true,
		TimeoutSeconds: clipboard.DefaultTimeoutSeconds,
	}, nil
}

// firstLine returns the secret's first line without its line ending.
func firstLine(plaintext []byte) []byte {
	line := plaintext
	if i := bytes.IndexByte(plaintext, '\n'); i >= 0 {
		line = plaintext[:i]
	}
	return bytes.TrimSuffix(line, []byte("\r"))
}
