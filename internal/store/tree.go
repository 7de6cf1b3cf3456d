package store

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	merrors "github.com/JustNevi/mpass/internal/errors"
)

// EntrySuffix marks a file as an encrypted entry. The suffix is fixed for
// every backend so stores stay interchangeable on disk.
const EntrySuffix = ".gpg"

// ValidateLogicalPath checks that a slash-delimited logical path is safe to
// map onto the filesystem. It rejects empty paths, absolute paths,
// backslashes, and any ".", "..", or empty segment.
func ValidateLogicalPath(logical string) error {
	if logical == "" {
		return fmt.Errorf("%w: empty path", merrors.ErrInvalidPath)
	}
	if strings.HasPrefix(logical, "/") {
		return fmt.Errorf("%w: %q is absolute", merrors.ErrInvalidPath, logical)
	}
	if strings.Contains(logical, "\\") {
		return fmt.Errorf("%w: %q contains a backslash", merrors.ErrInvalidPath, logical)
	}

	for _, segment := range strings.Split(logical, "/") {
		switch segment {
		case "":
			return fmt.Errorf("%w: %q contains an empty segment", merrors.ErrInvalidPath, logical)
		case ".", "..":
			return fmt.Errorf("%w: %q contains a traversal segment", merrors.ErrInvalidPath, logical)
		}
	}

	// The cleaned path must round-trip unchanged.
	if path.Clean(logical) != logical {
		return fmt.Errorf("%w: %q does not survive cleaning", merrors.ErrInvalidPath, logical)
	}

	return nil
}

// EntryFile maps a logical path to the on-disk ciphertext file under root.
// The mapping is a pure, bijective function: path segments become nested
// directories and the entry suffix is appended to the final segment.
func EntryFile(root, logical string) (string, error) {
	if err := ValidateLogicalPath(logical); err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(logical)+EntrySuffix), nil
}

// LogicalPath inverts EntryFile for a file discovered under root. It
// returns the slash-delimited logical path with the entry suffix stripped,
// and false when the file is not an entry.
func LogicalPath(root, file string) (string, bool) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", false
	}

	logical := filepath.ToSlash(rel)
	if logical == ".." || strings.HasPrefix(logical, "../") {
		return "", false
	}
	if !strings.HasSuffix(logical, EntrySuffix) {
		return "", false
	}

	logical = strings.TrimSuffix(logical, EntrySuffix)
	if ValidateLogicalPath(logical) != nil {
		return "", false
	}
	return logical, true
}
