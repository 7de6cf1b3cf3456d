package workflows

import (
	"context"
	"fmt"

	"github.com/JustNevi/mpass/internal/backend"
	"github.com/JustNevi/mpass/internal/clipboard"
	merrors "github.com/JustNevi/mpass/internal/errors"
	logger "github.com/JustNevi/mpass/internal/logging"
	"github.com/JustNevi/mpass/internal/store"
)

// VCS is the slice of version control the workflows drive. History is
// best-effort: a failing commit is reported as a warning, never as a
// failed operation.
type VCS interface {
	IsRepository(dir string) bool
	EnsureRepository(ctx context.Context, dir string) error
	CommitAll(ctx context.Context, dir string, message string) error
}

// Manager orchestrates the store operations: it joins the store tree,
// the encryption backend, and version control into the user-facing
// workflows, independent of CLI concerns like flag parsing and spinners.
type Manager struct {
	store   *store.Store
	backend backend.Backend
	vcs     VCS
	logger  logger.Logger

	// clip places a value on the system clipboard with an expiry.
	// Swappable so tests run without a real clipboard.
	clip func(value []byte, timeoutSeconds int) error
}

// NewManager returns a Manager over the given store, backend, and
// version control.
func NewManager(st *store.Store, be backend.Backend, vcs VCS, log logger.Logger) *Manager {
	return &Manager{
		store:   st,
		backend: be,
		vcs:     vcs,
		logger:  log,
		clip:    clipboard.Copy,
	}
}

// Store returns the underlying store tree.
func (m *Manager) Store() *store.Store {
	return m.store
}

// requireInitialized returns the bound recipient, or ErrNotInitialized
// when the store directory or its key binding is missing.
func (m *Manager) requireInitialized() (string, error) {
	if !m.store.Exists() {
		return "", fmt.Errorf("%w: no store at %s", merrors.ErrNotInitialized, m.store.Root())
	}
	return m.store.Binding()
}

// recordHistory commits the store state, warning instead of failing when
// git cannot.
func (m *Manager) recordHistory(ctx context.Context, message string) {
	if err := m.vcs.CommitAll(ctx, m.store.Root(), message); err != nil {
		m.logger.WarnfUser("Failed to record store history: %v", err)
	}
}

// confirm resolves a confirmation request: Force answers yes, a missing
// callback answers no.
func confirm(force bool, cb func(message string) bool, message string) bool {
	if force {
		return true
	}
	if cb == nil {
		return false
	}
	return cb(message)
}

// wipe overwrites sensitive bytes once they are no longer needed.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
