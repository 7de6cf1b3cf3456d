package workflows

import (
	"context"
	"fmt"
	"os"
	"time"

	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/store"
)

// InfoOptions configures the info workflow.
type InfoOptions struct {
	// Path, when set, asks about a single entry instead of the store.
	Path string
}

// InfoResult describes the store, or one entry of it.
type InfoResult struct {
	// Store-level fields.
	Root       string
	Backend    string
	Recipient  string
	EntryCount int
	Repository bool

	// Entry-level fields, set when a Path was asked about. The
	// plaintext is deliberately absent.
	Path    string
	File    string
	Size    int64
	ModTime time.Time
}

// Info reports the store's root, backend, bound recipient, entry count,
// and version-control state. With a Path it reports the entry's on-disk
// file, size, and modification time instead, without decrypting anything.
//
// Returns ErrNotInitialized or, for an entry, ErrNotFound.
func (m *Manager) Info(ctx context.Context, opts InfoOptions) (*InfoResult, error) {
	recipient, err := m.requireInitialized()
	if err != nil {
		return nil, err
	}

	if opts.Path != "" {
		return m.entryInfo(opts.Path)
	}

	paths, err := m.store.List("")
	if err != nil {
		return nil, err
	}

	return &InfoResult{
		Root:       m.store.Root(),
		Backend:    m.backend.Name(),
		Recipient:  recipient,
		EntryCount: len(paths),
		Repository: m.vcs.IsRepository(m.store.Root()),
	}, nil
}

func (m *Manager) entryInfo(logical string) (*InfoResult, error) {
	if err := store.ValidateLogicalPath(logical); err != nil {
		return nil, err
	}

	file, err := m.store.EntryFile(logical)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", merrors.ErrNotFound, logical)
		}
		return nil, err
	}

	return &InfoResult{
		Path:    logical,
		File:    file,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
