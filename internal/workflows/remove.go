package workflows

import (
	"context"
	"fmt"

	"github.com/JustNevi/mpass/internal/audit"
	"github.com/JustNevi/mpass/internal/configs"
	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/store"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Path is the logical entry path to delete.
	Path string

	// Force deletes without confirmation.
	Force bool

	// Confirm is asked before deleting. A nil callback declines.
	Confirm func(message string) bool
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Path is the logical path that was deleted.
	Path string
}

// Remove deletes an entry and prunes any directories the deletion left
// empty.
//
// Returns ErrNotInitialized, ErrNotFound, or ErrConfirmationDeclined.
func (m *Manager) Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	if _, err := m.requireInitialized(); err != nil {
		return nil, err
	}
	if err := store.ValidateLogicalPath(opts.Path); err != nil {
		return nil, err
	}

	exists, err := m.store.HasEntry(opts.Path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", merrors.ErrNotFound, opts.Path)
	}

	message := fmt.Sprintf("Are you sure you would like to delete %s?", opts.Path)
	if !confirm(opts.Force, opts.Confirm, message) {
		return nil, fmt.Errorf("%w: %s left in place", merrors.ErrConfirmationDeclined, opts.Path)
	}

	if err := m.store.RemoveEntry(opts.Path); err != nil {
		return nil, err
	}

	// Non-critical - the trail should carry a user UUID when possible.
	_, _ = configs.EnsureUserConfig()

	entry := audit.NewEntry("remove")
	entry.Path = opts.Path
	audit.Log(m.store.Root(), entry)

	m.recordHistory(ctx, fmt.Sprintf("Remove %s from store.", opts.Path))

	return &RemoveResult{Path: opts.Path}, nil
}
