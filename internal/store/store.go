package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	merrors "github.com/JustNevi/mpass/internal/errors"
)

// BindingFile is the key-binding marker at the store root. Its presence
// defines the store as initialized; its single line names the recipient
// every entry is encrypted for.
const BindingFile = ".gpg-id"

// Store is the on-disk tree of encrypted entries rooted at a single
// directory. It is a passive addressing layer: it maps logical paths to
// files and moves bytes, and leaves orchestration to the workflows.
type Store struct {
	root string
}

// New returns a Store rooted at the given directory. Nothing is created
// until an operation writes through it.
func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Exists reports whether the root directory is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// Initialized reports whether the key-binding marker exists. A store
// directory without a binding is not considered initialized.
func (s *Store) Initialized() bool {
	info, err := os.Stat(filepath.Join(s.root, BindingFile))
	return err == nil && info.Mode().IsRegular()
}

// EmptyDir reports whether the root exists but holds nothing at all.
func (s *Store) EmptyDir() bool {
	entries, err := os.ReadDir(s.root)
	return err == nil && len(entries) == 0
}

// EnsureRoot creates the root directory when missing.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0700); err != nil {
		return fmt.Errorf("failed to create store root %s: %w", s.root, err)
	}
	return nil
}

// Binding reads the bound recipient id from the marker file.
func (s *Store) Binding() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, BindingFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", merrors.ErrNotInitialized
		}
		return "", fmt.Errorf("failed to read key binding: %w", err)
	}

	recipient := strings.TrimSpace(string(data))
	if recipient == "" {
		return "", fmt.Errorf("%w: key binding file is empty", merrors.ErrNotInitialized)
	}
	return recipient, nil
}

// WriteBinding replaces the key binding wholesale. The binding is a single
// line; it is never partially updated.
func (s *Store) WriteBinding(recipient string) error {
	target := filepath.Join(s.root, BindingFile)
	if err := atomicWrite(target, []byte(recipient+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write key binding: %w", err)
	}
	return nil
}

// EntryFile maps a logical path into this store.
func (s *Store) EntryFile(logical string) (string, error) {
	return EntryFile(s.root, logical)
}

// HasEntry reports whether an entry exists at the logical path.
func (s *Store) HasEntry(logical string) (bool, error) {
	file, err := s.EntryFile(logical)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check entry %s: %w", logical, err)
	}
	return info.Mode().IsRegular(), nil
}

// ReadEntry returns the ciphertext stored at the logical path.
func (s *Store) ReadEntry(logical string) ([]byte, error) {
	file, err := s.EntryFile(logical)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", merrors.ErrNotFound, logical)
		}
		return nil, fmt.Errorf("failed to read entry %s: %w", logical, err)
	}
	return data, nil
}

// WriteEntry stores ciphertext at the logical path, creating parent
// directories on demand. The write is atomic: the ciphertext lands in a
// temp file in the target directory and is renamed over any previous
// entry, so a failure mid-write never truncates an existing entry.
func (s *Store) WriteEntry(logical string, ciphertext []byte) error {
	file, err := s.EntryFile(logical)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", logical, err)
	}

	if err := atomicWrite(file, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", logical, err)
	}
	return nil
}

// RemoveEntry deletes the entry and prunes any parent directories the
// deletion left empty, stopping at the store root.
func (s *Store) RemoveEntry(logical string) error {
	file, err := s.EntryFile(logical)
	if err != nil {
		return err
	}

	if err := os.Remove(file); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", merrors.ErrNotFound, logical)
		}
		return fmt.Errorf("failed to remove entry %s: %w", logical, err)
	}

	// os.Remove refuses to delete non-empty directories, so walking up
	// and removing until it fails prunes exactly the empty chain.
	for dir := filepath.Dir(file); dir != s.root; dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	return nil
}

// Walk streams the logical path of every entry under the subfolder
// ("" for the whole store) in filesystem traversal order. Dot-directories
// such as .git and dotfiles such as the key binding are skipped. The walk
// stops early when fn returns an error.
func (s *Store) Walk(subfolder string, fn func(logical string) error) error {
	base := s.root
	if subfolder != "" {
		if err := ValidateLogicalPath(subfolder); err != nil {
			return err
		}
		base = filepath.Join(s.root, filepath.FromSlash(subfolder))
	}
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed while walking store: %w", err)
		}

		name := d.Name()
		if d.IsDir() {
			if p != base && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(name, ".") {
			return nil
		}

		logical, ok := LogicalPath(s.root, p)
		if !ok {
			return nil
		}
		return fn(logical)
	})
}

// List collects every logical path under the subfolder and returns them
// sorted, so output and commits are deterministic.
func (s *Store) List(subfolder string) ([]string, error) {
	var entries []string
	err := s.Walk(subfolder, func(logical string) error {
		entries = append(entries, logical)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(entries)
	return entries, nil
}

// atomicWrite writes data to a temp file next to the target and renames it
// into place.
func atomicWrite(target string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
