package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Subfolder limits the listing to one subtree ("" for the whole
	// store).
	Subfolder string

	// Filter is an optional glob over logical paths ("services/**",
	// "**/prod*"). Empty means everything.
	Filter string
}

// ListResult contains the matching logical paths in sorted order.
type ListResult struct {
	Entries []string
}

// List returns the logical paths of the store's entries, sorted, with
// the optional subtree and glob filters applied. An initialized store
// with no entries lists as empty without error.
func (m *Manager) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if _, err := m.requireInitialized(); err != nil {
		return nil, err
	}

	if opts.Filter != "" && !doublestar.ValidatePattern(opts.Filter) {
		return nil, fmt.Errorf("invalid filter pattern %q", opts.Filter)
	}

	paths, err := m.store.List(opts.Subfolder)
	if err != nil {
		return nil, err
	}

	if opts.Filter == "" {
		return &ListResult{Entries: paths}, nil
	}

	var matched []string
	for _, path := range paths {
		ok, err := doublestar.Match(opts.Filter, path)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", opts.Filter, err)
		}
		if ok {
			matched = append(matched, path)
		}
	}
	return &ListResult{Entries: matched}, nil
}

// Find returns the sorted logical paths matching pattern anywhere in the
// tree: the pattern is tried against full paths and against path tails,
// so "github" finds both "github" and "work/github".
func (m *Manager) Find(ctx context.Context, pattern string) (*ListResult, error) {
	if pattern == "" {
		return nil, fmt.Errorf("no search pattern given")
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid search pattern %q", pattern)
	}

	if _, err := m.requireInitialized(); err != nil {
		return nil, err
	}

	paths, err := m.store.List("")
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, path := range paths {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
		}
		if !ok {
			ok, err = doublestar.Match("**/"+pattern, path)
			if err != nil {
				return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
			}
		}
		if ok {
			matched = append(matched, path)
		}
	}
	return &ListResult{Entries: matched}, nil
}
