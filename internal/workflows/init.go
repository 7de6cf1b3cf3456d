package workflows

import (
	"context"
	"fmt"

	"github.com/JustNevi/mpass/internal/audit"
	"github.com/JustNevi/mpass/internal/configs"
	merrors "github.com/JustNevi/mpass/internal/errors"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Recipient is the key id every entry will be encrypted for.
	Recipient string

	// Force answers yes to the rebind confirmation.
	Force bool

	// Confirm is asked before an existing store is rebound and fully
	// reencrypted. A nil callback declines.
	Confirm func(message string) bool
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Recipient is the key id the store is now bound to.
	Recipient string

	// Created is true when a fresh store was created.
	Created bool

	// Rotated is true when an existing store was rebound and its
	// entries reencrypted.
	Rotated bool

	// ReencryptedCount is how many entries a rotation rewrote.
	ReencryptedCount int

	// Skipped is true when nothing was changed: the rebind was declined
	// or the target directory was unusable. Reason explains it.
	Skipped bool
	Reason  string
}

// Init creates the store, or rebinds an existing one to a new recipient.
//
// A fresh init creates the root directory, puts it under version control,
// and writes the key binding. Rebinding an initialized store reencrypts
// every entry: all entries are decrypted and reencrypted in memory first,
// and only when every one of them succeeded are the files and the binding
// rewritten, so a failure part way leaves the store fully readable under
// the old key.
//
// Returns ErrDecryptionFailed or ErrEncryptionFailed when an entry cannot
// be carried over to the new recipient.
func (m *Manager) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if opts.Recipient == "" {
		return nil, fmt.Errorf("%w: no recipient given", merrors.ErrInvalidPath)
	}

	if _, err := configs.EnsureUserConfig(); err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	if err := m.backend.Check(); err != nil {
		return nil, err
	}

	if m.store.Initialized() {
		return m.rebind(ctx, opts)
	}

	// A directory that already holds foreign content is not adopted;
	// only a missing or empty directory becomes a store.
	if m.store.Exists() && !m.store.EmptyDir() {
		return &InitResult{
			Recipient: opts.Recipient,
			Skipped:   true,
			Reason:    fmt.Sprintf("%s exists but is not a password store; refusing to adopt it", m.store.Root()),
		}, nil
	}

	if err := m.store.EnsureRoot(); err != nil {
		return nil, err
	}

	if err := m.vcs.EnsureRepository(ctx, m.store.Root()); err != nil {
		m.logger.WarnfUser("Store created without version control: %v", err)
	}

	if err := m.store.WriteBinding(opts.Recipient); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("init")
	entry.Recipient = opts.Recipient
	entry.Backend = m.backend.Name()
	audit.Log(m.store.Root(), entry)

	m.recordHistory(ctx, fmt.Sprintf("Initialize store for %s.", opts.Recipient))

	return &InitResult{Recipient: opts.Recipient, Created: true}, nil
}

// rebind reencrypts every entry for the new recipient and replaces the
// key binding.
func (m *Manager) rebind(ctx context.Context, opts InitOptions) (*InitResult, error) {
	oldRecipient, err := m.store.Binding()
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("The store is bound to %s. Rebind to %s and reencrypt every entry?", oldRecipient, opts.Recipient)
	if !confirm(opts.Force, opts.Confirm, message) {
		return &InitResult{
			Recipient: opts.Recipient,
			Skipped:   true,
			Reason:    "rebind declined; the store is unchanged",
		}, nil
	}

	paths, err := m.store.List("")
	if err != nil {
		return nil, err
	}

	// Carry every entry over in memory before touching any file, so a
	// failure on entry N leaves entries 0..N-1 untouched on disk.
	plaintexts := make([][]byte, len(paths))
	defer func() {
		for _, plaintext := range plaintexts {
			wipe(plaintext)
		}
	}()
	for i, path := range paths {
		ciphertext, err := m.store.ReadEntry(path)
		if err != nil {
			return nil, err
		}
		plaintexts[i], err = m.backend.Decrypt(ctx, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("cannot reencrypt %s: %w", path, err)
		}
	}

	reencrypted := make([][]byte, len(paths))
	for i, path := range paths {
		reencrypted[i], err = m.backend.Encrypt(ctx, plaintexts[i], opts.Recipient)
		if err != nil {
			return nil, fmt.Errorf("cannot reencrypt %s: %w", path, err)
		}
	}

	for i, path := range paths {
		if err := m.store.WriteEntry(path, reencrypted[i]); err != nil {
			return nil, err
		}
	}

	if err := m.store.WriteBinding(opts.Recipient); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("rotate")
	entry.Recipient = opts.Recipient
	entry.Backend = m.backend.Name()
	entry.Count = len(paths)
	audit.Log(m.store.Root(), entry)

	m.recordHistory(ctx, fmt.Sprintf("Reencrypt store for %s.", opts.Recipient))

	return &InitResult{
		Recipient:        opts.Recipient,
		Rotated:          true,
		ReencryptedCount: len(paths),
	}, nil
}
