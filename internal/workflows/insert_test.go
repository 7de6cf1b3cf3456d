package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/JustNevi/mpass/internal/audit"
	merrors "github.com/JustNevi/mpass/internal/errors"
)

func TestInsertCreatesEntry(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)

	result, err := env.m.Insert(context.Background(), InsertOptions{
		Path:   "github",
		Source: func() ([]byte, error) { return []byte("hunter2"), nil },
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !result.Created || result.Path != "github" {
		t.Errorf("unexpected result: %+v", result)
	}

	ciphertext, err := env.store.ReadEntry("github")
	if err != nil {
		t.Fatalf("ReadEntry failed: %v", err)
	}
	if bytes.Contains(ciphertext, []byte("hunter2")) {
		t.Error("plaintext stored on disk")
	}

	if got := env.vcs.lastCommit(); got != "Add github to store." {
		t.Errorf("commit message = %q", got)
	}

	entries, err := audit.ReadEntries(env.store.Root())
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	last := entries[len(entries)-1]
	if last.Operation != "insert" || last.Path != "github" {
		t.Errorf("audit entry = %+v", last)
	}
}

func TestInsertUninitialized(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.m.Insert(context.Background(), InsertOptions{
		Path:   "github",
		Source: func() ([]byte, error) { return []byte("x"), nil },
	})
	if !errors.Is(err, merrors.ErrNotInitialized) {
		t.Errorf("Insert = %v, want ErrNotInitialized", err)
	}
}

func TestInsertInvalidPath(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)

	for _, path := range []string{"", "../escape", "a//b", "trailing/"} {
		_, err := env.m.Insert(context.Background(), InsertOptions{
			Path:   path,
			Source: func() ([]byte, error) { return []byte("x"), nil },
		})
		if !errors.Is(err, merrors.ErrInvalidPath) {
			t.Errorf("Insert(%q) = %v, want ErrInvalidPath", path, err)
		}
	}
}

func TestInsertOverwriteDeclined(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	insertEntry(t, env, "github", "old")

	before, _ := env.store.ReadEntry("github")

	_, err := env.m.Insert(context.Background(), InsertOptions{
		Path:    "github",
		Source:  func() ([]byte, error) { return []byte("new"), nil },
		Confirm: func(string) bool { return false },
	})
	if !errors.Is(err, merrors.ErrConfirmationDeclined) {
		t.Fatalf("Insert = %v, want ErrConfirmationDeclined", err)
	}

	after, _ := env.store.ReadEntry("github")
	if string(before) != string(after) {
		t.Error("entry rewritten despite declined overwrite")
	}
}

func TestInsertOverwriteConfirmed(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	insertEntry(t, env, "github", "old")

	result, err := env.m.Insert(context.Background(), InsertOptions{
		Path:    "github",
		Source:  func() ([]byte, error) { return []byte("new"), nil },
		Confirm: func(message string) bool { return strings.Contains(message, "github") },
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if result.Created {
		t.Error("overwrite reported as creation")
	}

	show, err := env.m.Show(context.Background(), ShowOptions{Path: "github"})
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if string(show.Plaintext) != "new" {
		t.Errorf("stored secret = %q, want %q", show.Plaintext, "new")
	}

	if got := env.vcs.lastCommit(); got != "Update github in store." {
		t.Errorf("commit message = %q", got)
	}
}

func TestInsertForceSkipsConfirmation(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	insertEntry(t, env, "github", "old")

	_, err := env.m.Insert(context.Background(), InsertOptions{
		Path:   "github",
		Source: func() ([]byte, error) { return []byte("new"), nil },
		Force:  true,
		Confirm: func(string) bool {
			t.Error("Confirm called despite Force")
			return false
		},
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
}

func TestInsertSourceErrorAborts(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)

	sourceErr := fmt.Errorf("%w: the entered passwords do not match", merrors.ErrInputMismatch)
	_, err := env.m.Insert(context.Background(), InsertOptions{
		Path:   "github",
		Source: func() ([]byte, error) { return nil, sourceErr },
	})
	if !errors.Is(err, merrors.ErrInputMismatch) {
		t.Fatalf("Insert = %v, want ErrInputMismatch", err)
	}

	exists, err := env.store.HasEntry("github")
	if err != nil {
		t.Fatalf("HasEntry failed: %v", err)
	}
	if exists {
		t.Error("entry written despite source failure")
	}
	if len(env.vcs.commits) > 1 {
		t.Errorf("commit recorded for failed insert: %v", env.vcs.commits)
	}
}

func TestInsertSourceNotAskedWhenDeclined(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	insertEntry(t, env, "github", "old")

	_, err := env.m.Insert(context.Background(), InsertOptions{
		Path: "github",
		Source: func() ([]byte, error) {
			t.Error("Source resolved for a declined insert")
			return []byte("new"), nil
		},
		Confirm: func(string) bool { return false },
	})
	if !errors.Is(err, merrors.ErrConfirmationDeclined) {
		t.Fatalf("Insert = %v, want ErrConfirmationDeclined", err)
	}
}

func TestInsertNestedPathCreatesDirectories(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	insertEntry(t, env, "work/mail/account", "secret")

	show, err := env.m.Show(context.Background(), ShowOptions{Path: "work/mail/account"})
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if string(show.Plaintext) != "secret" {
		t.Errorf("stored secret = %q", show.Plaintext)
	}
}
