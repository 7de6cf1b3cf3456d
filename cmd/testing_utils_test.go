// Shared helpers for the command tests: temp-directory environments,
// output capture, and a runner that executes the root command the way a
// user invocation would.
package cmd

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/JustNevi/mpass/internal/backend"
	"github.com/JustNevi/mpass/internal/configs"
)

// setupTestEnvironment points the user settings at temp directories,
// selects the native backend, and seeds an "alice" keypair. It returns
// the store path to pass via --store.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	tempUserDir := t.TempDir()

	originalUserSettings := configs.UserSettings
	t.Cleanup(func() {
		configs.UserSettings = originalUserSettings
	})
	configs.UserSettings = &configs.Settings{
		ConfigDir: filepath.Join(tempUserDir, "config"),
		KeyDir:    filepath.Join(tempUserDir, "keys"),
		Username:  "testuser",
	}

	t.Setenv("MPASS_BACKEND", "native")
	t.Setenv("MPASS_STORE_DIR", "")

	writeTestKeyPair(t, configs.UserSettings.KeyDir, "alice")

	return filepath.Join(tempDir, "store")
}

// writeTestKeyPair saves a small RSA keypair under dir. 2048 bits keeps
// the tests fast; key size does not change any code path.
func writeTestKeyPair(t *testing.T, dir string, name string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("failed to create key directory: %v", err)
	}

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(filepath.Join(dir, name), privPem, 0600); err != nil {
		t.Fatalf("failed to write private key: %v", err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("failed to marshal public key: %v", err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubASN1,
	})
	if err := os.WriteFile(filepath.Join(dir, name+backend.PublicKeySuffix), pubPem, 0600); err != nil {
		t.Fatalf("failed to write public key: %v", err)
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	reader, writer, _ := os.Pipe()
	os.Stdout = writer
	os.Stderr = writer

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, reader)
		done <- buf.String()
	}()

	err := fn()

	writer.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr
	output := <-done

	return output, err
}

// runCommand executes the root command with the given arguments, resetting
// all global command state first.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()
	RootCmd.SetArgs(args)
	return captureOutput(func() error {
		return RootCmd.Execute()
	})
}

// mustRun executes the root command and fails the test on error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()

	output, err := runCommand(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, output)
	}
	return output
}

// withStdin replaces os.Stdin with a pipe carrying the given input for
// the duration of the test.
func withStdin(t *testing.T, data string) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdin pipe: %v", err)
	}
	if _, err := writer.WriteString(data); err != nil {
		t.Fatalf("failed to fill stdin pipe: %v", err)
	}
	writer.Close()

	original := os.Stdin
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = original
		reader.Close()
	})
}
