package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JustNevi/mpass/internal/input"

	sysclip "github.com/atotto/clipboard"
)

func TestInsertAndShowRoundTrip(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)

	output := mustRun(t, "insert", "--generate", "web/site", "--store", storeDir)
	if !strings.Contains(output, "Added") || !strings.Contains(output, "web/site") {
		t.Errorf("expected an added message, got: %s", output)
	}

	if _, err := os.Stat(filepath.Join(storeDir, "web", "site.gpg")); err != nil {
		t.Fatalf("entry file missing: %v", err)
	}

	shown := mustRun(t, "show", "web/site", "--store", storeDir)
	secret := strings.TrimSuffix(shown, "\n")
	if len(secret) != input.DefaultGeneratedLength {
		t.Errorf("expected a %d character generated secret, got %d: %q",
			input.DefaultGeneratedLength, len(secret), secret)
	}

	again := mustRun(t, "show", "web/site", "--store", storeDir)
	if shown != again {
		t.Errorf("repeated show returned different output: %q vs %q", shown, again)
	}
}

func TestInsertReadsPipedStdin(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)

	withStdin(t, "hunter2\n")
	mustRun(t, "insert", "mail/work", "--store", storeDir)

	shown := mustRun(t, "show", "mail/work", "--store", storeDir)
	if shown != "hunter2\n" {
		t.Errorf("expected the piped secret back, got %q", shown)
	}
}

func TestImplicitShowMatchesExplicit(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)
	mustRun(t, "insert", "--generate", "mail/work", "--store", storeDir)

	direct := mustRun(t, "show", "mail/work", "--store", storeDir)
	implicit := mustRun(t, "mail/work", "--store", storeDir)
	if direct != implicit {
		t.Errorf("bare path output %q differs from show output %q", implicit, direct)
	}
}

func TestInsertDeclinedOverwriteKeepsEntry(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)
	mustRun(t, "insert", "--generate", "web/site", "--store", storeDir)

	entryFile := filepath.Join(storeDir, "web", "site.gpg")
	before, err := os.ReadFile(entryFile)
	if err != nil {
		t.Fatalf("failed to read entry: %v", err)
	}

	// Stdin is empty, so the overwrite confirmation declines.
	output := mustRun(t, "insert", "--generate", "web/site", "--store", storeDir)
	if !strings.Contains(output, "Not overwriting") {
		t.Errorf("expected the decline to be reported, got: %s", output)
	}

	after, err := os.ReadFile(entryFile)
	if err != nil {
		t.Fatalf("failed to read entry: %v", err)
	}
	if string(before) != string(after) {
		t.Error("expected the declined overwrite to leave the ciphertext unchanged")
	}
}

func TestInsertForceOverwrites(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)
	mustRun(t, "insert", "--generate", "web/site", "--store", storeDir)

	output := mustRun(t, "insert", "--generate", "--force", "web/site", "--store", storeDir)
	if !strings.Contains(output, "Updated") {
		t.Errorf("expected an updated message, got: %s", output)
	}
}

func TestShowMissingEntryFails(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)

	if _, err := runCommand(t, "show", "no/such", "--store", storeDir); err == nil {
		t.Fatal("expected show of a missing entry to fail")
	}
}

func TestShowRejectsCombinedClipFlags(t *testing.T) {
	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)

	if _, err := runCommand(t, "show", "web/site", "-c", "-C", "--store", storeDir); err == nil {
		t.Fatal("expected combining --clip and --clip-all to fail")
	}
}

func TestShowClipCopiesFirstLine(t *testing.T) {
	if sysclip.Unsupported {
		t.Skip("clipboard not available on this platform")
	}
	if err := sysclip.WriteAll("mpass-clip-probe"); err != nil {
		t.Skipf("clipboard not usable: %v", err)
	}

	storeDir := setupTestEnvironment(t)
	mustRun(t, "init", "alice", "--store", storeDir)

	withStdin(t, "topsecret\nsecond line\n")
	mustRun(t, "insert", "login/site", "--store", storeDir)

	output := mustRun(t, "show", "login/site", "--clip", "--store", storeDir)
	if !strings.Contains(output, "Copied") {
		t.Errorf("expected a copied message, got: %s", output)
	}
	if strings.Contains(output, "topsecret") {
		t.Error("expected the secret to stay out of the output when copied")
	}

	got, err := sysclip.ReadAll()
	if err != nil {
		t.Fatalf("failed to read clipboard: %v", err)
	}
	if got != "topsecret" {
		t.Errorf("expected the first line on the clipboard, got %q", got)
	}
}
