package workflows

import (
	"context"
	"fmt"

	"github.com/JustNevi/mpass/internal/audit"
	"github.com/JustNevi/mpass/internal/configs"
	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/store"
)

// Source yields the plaintext for an entry. It runs only after every
// precondition has passed, so a prompt is never shown for an insert that
// would be rejected anyway.
type Source func() ([]byte, error)

// InsertOptions configures the insert workflow.
type InsertOptions struct {
	// Path is the logical entry path ("services/api/token").
	Path string

	// Source resolves the secret: prompt, stdin, or generator.
	Source Source

	// Force overwrites an existing entry without confirmation.
	Force bool

	// Confirm is asked before overwriting. A nil callback declines.
	Confirm func(message string) bool
}

// InsertResult contains the outcome of an insert operation.
type InsertResult struct {
	// Path is the logical path that was written.
	Path string

	// Created is false when an existing entry was overwritten.
	Created bool
}

// Insert encrypts a new secret under the store's bound recipient and
// writes it at the logical path.
//
// Returns ErrNotInitialized when there is no store, ErrInvalidPath for a
// malformed path, ErrConfirmationDeclined when an overwrite is refused,
// and errors from the Source (ErrInputMismatch, ErrEmptyInput) verbatim.
func (m *Manager) Insert(ctx context.Context, opts InsertOptions) (*InsertResult, error) {
	recipient, err := m.requireInitialized()
	if err != nil {
		return nil, err
	}
	if err := store.ValidateLogicalPath(opts.Path); err != nil {
		return nil, err
	}

	exists, err := m.store.HasEntry(opts.Path)
	if err != nil {
		return nil, err
	}
	if exists {
		message := fmt.Sprintf("An entry already exists for %s. Overwrite it?", opts.Path)
		if !confirm(opts.Force, opts.Confirm, message) {
			return nil, fmt.Errorf("%w: %s left unchanged", merrors.ErrConfirmationDeclined, opts.Path)
		}
	}

	plaintext, err := opts.Source()
	if err != nil {
		return nil, err
	}
	defer wipe(plaintext)

	ciphertext, err := m.backend.Encrypt(ctx, plaintext, recipient)
	if err != nil {
		return nil, err
	}

	if err := m.store.WriteEntry(opts.Path, ciphertext); err != nil {
		return nil, err
	}

	// Non-critical - the trail should carry a user UUID when possible.
	_, _ = configs.EnsureUserConfig()

	entry := audit.NewEntry("insert")
	entry.Path = opts.Path
	audit.Log(m.store.Root(), entry)

	if exists {
		m.recordHistory(ctx, fmt.Sprintf("Update %s in store.", opts.Path))
	} else {
		m.recordHistory(ctx, fmt.Sprintf("Add %s to store.", opts.Path))
	}

	return &InsertResult{Path: opts.Path, Created: !exists}, nil
}
