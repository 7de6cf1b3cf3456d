package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gopasspw/gitconfig"

	merrors "github.com/JustNevi/mpass/internal/errors"
)

// Fallback commit identity applied locally when the effective git config
// has none, so automatic commits never abort on a fresh machine.
const (
	fallbackName  = "mpass"
	fallbackEmail = "mpass@localhost"
)

// Git records store history by shelling out to the git binary. All
// history is best-effort bookkeeping: the secret operations themselves
// never depend on it.
type Git struct{}

// New returns a Git adapter.
func New() *Git {
	return &Git{}
}

// Check verifies the git binary is reachable.
func (g *Git) Check() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("%w: git not found in PATH", merrors.ErrBackendUnavailable)
	}
	return nil
}

// IsRepository reports whether dir is a git work tree root.
func (g *Git) IsRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// EnsureRepository initializes a repository in dir when none exists.
// After init, a commit identity is guaranteed: when the effective git
// config carries no user.name or user.email, local fallbacks are set so
// commits cannot fail on an unconfigured machine.
func (g *Git) EnsureRepository(ctx context.Context, dir string) error {
	if g.IsRepository(dir) {
		return nil
	}
	if err := g.Check(); err != nil {
		return err
	}

	if _, err := g.output(ctx, dir, "init"); err != nil {
		return fmt.Errorf("failed to initialize git repository in %s: %w", dir, err)
	}

	if err := g.ensureIdentity(ctx, dir); err != nil {
		return err
	}
	return nil
}

// ensureIdentity reads the effective git configuration and sets local
// user.name/user.email only when they resolve to nothing.
func (g *Git) ensureIdentity(ctx context.Context, dir string) error {
	cfg := gitconfig.New().LoadAll(dir)

	if cfg.Get("user.name") == "" {
		if _, err := g.output(ctx, dir, "config", "user.name", fallbackName); err != nil {
			return fmt.Errorf("failed to set fallback commit identity: %w", err)
		}
	}
	if cfg.Get("user.email") == "" {
		if _, err := g.output(ctx, dir, "config", "user.email", fallbackEmail); err != nil {
			return fmt.Errorf("failed to set fallback commit identity: %w", err)
		}
	}
	return nil
}

// CommitAll stages everything under dir and commits it. A working tree
// with nothing to commit is success, not an error.
func (g *Git) CommitAll(ctx context.Context, dir string, message string) error {
	if !g.IsRepository(dir) {
		return nil
	}

	if _, err := g.output(ctx, dir, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}

	out, err := g.output(ctx, dir, "commit", "-m", message)
	if err != nil {
		if strings.Contains(out, "nothing to commit") || strings.Contains(out, "nothing added to commit") {
			return nil
		}
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	return nil
}

// Run executes an arbitrary git command in dir with inherited stdio, for
// direct passthrough from the CLI.
func (g *Git) Run(ctx context.Context, dir string, args ...string) error {
	if err := g.Check(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// output runs git in dir capturing combined output, returned for callers
// that need to inspect it on failure.
func (g *Git) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(buf.String())
		if out != "" {
			return out, fmt.Errorf("git %s: %v: %s", args[0], err, out)
		}
		return out, fmt.Errorf("git %s: %v", args[0], err)
	}
	return strings.TrimSpace(buf.String()), nil
}
