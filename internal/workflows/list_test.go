package workflows

import (
	"context"
	"errors"
	"reflect"
	"testing"

	merrors "github.com/JustNevi/mpass/internal/errors"
)

func seedEntries(t *testing.T, env *testEnv) {
	t.Helper()
	for _, path := range []string{"github", "work/github", "work/mail", "services/api/token"} {
		insertEntry(t, env, path, "secret for "+path)
	}
}

func TestListSorted(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	seedEntries(t, env)

	result, err := env.m.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"github", "services/api/token", "work/github", "work/mail"}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("List = %v, want %v", result.Entries, want)
	}
}

func TestListSubfolder(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	seedEntries(t, env)

	result, err := env.m.List(context.Background(), ListOptions{Subfolder: "work"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"work/github", "work/mail"}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("List(work) = %v, want %v", result.Entries, want)
	}
}

func TestListFilter(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	seedEntries(t, env)

	result, err := env.m.List(context.Background(), ListOptions{Filter: "**/github"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"github", "work/github"}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("List(**/github) = %v, want %v", result.Entries, want)
	}
}

func TestListInvalidFilter(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)

	if _, err := env.m.List(context.Background(), ListOptions{Filter: "[unclosed"}); err == nil {
		t.Error("List accepted an invalid pattern")
	}
}

func TestListEmptyStore(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)

	result, err := env.m.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("List of empty store = %v", result.Entries)
	}
}

func TestListUninitialized(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.m.List(context.Background(), ListOptions{})
	if !errors.Is(err, merrors.ErrNotInitialized) {
		t.Errorf("List = %v, want ErrNotInitialized", err)
	}
}

func TestFindMatchesTailSegments(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	seedEntries(t, env)

	result, err := env.m.Find(context.Background(), "github")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	want := []string{"github", "work/github"}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("Find(github) = %v, want %v", result.Entries, want)
	}
}

func TestFindGlob(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	seedEntries(t, env)

	result, err := env.m.Find(context.Background(), "api/*")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	want := []string{"services/api/token"}
	if !reflect.DeepEqual(result.Entries, want) {
		t.Errorf("Find(api/*) = %v, want %v", result.Entries, want)
	}
}

func TestFindNoMatches(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)
	seedEntries(t, env)

	result, err := env.m.Find(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("Find(nonexistent) = %v", result.Entries)
	}
}

func TestFindEmptyPattern(t *testing.T) {
	env := newTestEnv(t)
	initStore(t, env)

	if _, err := env.m.Find(context.Background(), ""); err == nil {
		t.Error("Find accepted an empty pattern")
	}
}
