package workflows

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JustNevi/mpass/internal/backend"
	"github.com/JustNevi/mpass/internal/configs"
	logger "github.com/JustNevi/mpass/internal/logging"
	"github.com/JustNevi/mpass/internal/store"
)

// fakeVCS records history operations instead of running git.
type fakeVCS struct {
	repos       map[string]bool
	commits     []string
	failCommits bool
}

func (f *fakeVCS) IsRepository(dir string) bool {
	return f.repos[dir]
}

func (f *fakeVCS) EnsureRepository(ctx context.Context, dir string) error {
	if f.repos == nil {
		f.repos = make(map[string]bool)
	}
	f.repos[dir] = true
	return nil
}

func (f *fakeVCS) CommitAll(ctx context.Context, dir string, message string) error {
	if f.failCommits {
		return errors.New("git unavailable")
	}
	f.commits = append(f.commits, message)
	return nil
}

func (f *fakeVCS) lastCommit() string {
	if len(f.commits) == 0 {
		return ""
	}
	return f.commits[len(f.commits)-1]
}

// testEnv is a fully wired Manager over temp directories, with a native
// backend keypair for "alice" and a capturing clipboard.
type testEnv struct {
	m       *Manager
	store   *store.Store
	vcs     *fakeVCS
	keyDir  string
	clipped [][]byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmp := t.TempDir()
	original := configs.UserSettings
	configs.UserSettings = &configs.Settings{
		ConfigDir: filepath.Join(tmp, "config"),
		KeyDir:    filepath.Join(tmp, "keys"),
		Username:  "tester",
	}
	t.Cleanup(func() { configs.UserSettings = original })

	keyDir := configs.UserSettings.KeyDir
	writeKeyPair(t, keyDir, "alice")

	env := &testEnv{
		store:  store.New(filepath.Join(tmp, "store")),
		vcs:    &fakeVCS{},
		keyDir: keyDir,
	}
	env.m = NewManager(env.store, backend.NewNative(keyDir), env.vcs, logger.Logger{})
	env.m.clip = func(value []byte, timeoutSeconds int) error {
		env.clipped = append(env.clipped, append([]byte{}, value...))
		return nil
	}
	return env
}

// initStore runs a forced Init for alice and fails the test if it does
// not create a fresh store.
func initStore(t *testing.T, env *testEnv) {
	t.Helper()

	result, err := env.m.Init(context.Background(), InitOptions{Recipient: "alice", Force: true})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !result.Created {
		t.Fatalf("Init did not create a store: %+v", result)
	}
}

// insertEntry writes a secret through the full workflow.
func insertEntry(t *testing.T, env *testEnv, path, secret string) {
	t.Helper()

	_, err := env.m.Insert(context.Background(), InsertOptions{
		Path:   path,
		Source: func() ([]byte, error) { return []byte(secret), nil },
	})
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", path, err)
	}
}

// writeKeyPair generates a 2048-bit RSA keypair in the PEM formats the
// keyring reads. Small keys keep the tests fast.
func writeKeyPair(t *testing.T, keyDir, name string) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}

	if err := os.MkdirAll(keyDir, 0700); err != nil {
		t.Fatalf("failed to create key directory: %v", err)
	}

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(filepath.Join(keyDir, name), privPem, 0600); err != nil {
		t.Fatalf("failed to write private key: %v", err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("failed to marshal public key: %v", err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubASN1,
	})
	if err := os.WriteFile(filepath.Join(keyDir, name+".pub"), pubPem, 0600); err != nil {
		t.Fatalf("failed to write public key: %v", err)
	}
}
