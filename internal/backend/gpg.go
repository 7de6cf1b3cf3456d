package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/JustNevi/mpass/internal/configs"
	merrors "github.com/JustNevi/mpass/internal/errors"
)

// gpgOptions are passed on every invocation. Compression is disabled so
// ciphertext diffs stay small in version control, and --no-encrypt-to
// keeps a user's default-recipient config from widening access.
var gpgOptions = []string{"--quiet", "--yes", "--batch", "--compress-algo=none", "--no-encrypt-to"}

// GPG shells out to the GnuPG binary. The recipient id is anything the
// local gpg keyring resolves (fingerprint, key id, or email).
type GPG struct {
	program string
}

// NewGPG returns a GPG backend. An empty program means autodetect, trying
// gpg2 before gpg.
func NewGPG(program string) *GPG {
	return &GPG{program: program}
}

func (g *GPG) Name() string {
	return configs.BackendGPG
}

// Check verifies the gpg binary is reachable.
func (g *GPG) Check() error {
	_, err := g.resolveProgram()
	return err
}

func (g *GPG) resolveProgram() (string, error) {
	if g.program != "" {
		path, err := exec.LookPath(g.program)
		if err != nil {
			return "", fmt.Errorf("%w: %s not found in PATH", merrors.ErrBackendUnavailable, g.program)
		}
		return path, nil
	}

	for _, candidate := range []string{"gpg2", "gpg"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: neither gpg2 nor gpg found in PATH", merrors.ErrBackendUnavailable)
}

func encryptArgs(recipient string) []string {
	args := append([]string{}, gpgOptions...)
	return append(args, "--encrypt", "--recipient", recipient)
}

func decryptArgs() []string {
	args := append([]string{}, gpgOptions...)
	return append(args, "--decrypt")
}

// Encrypt pipes plaintext through gpg --encrypt for the recipient.
func (g *GPG) Encrypt(ctx context.Context, plaintext []byte, recipient string) ([]byte, error) {
	out, err := g.run(ctx, plaintext, encryptArgs(recipient)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrEncryptionFailed, err)
	}
	return out, nil
}

// Decrypt pipes ciphertext through gpg --decrypt. Key availability and
// pinentry are gpg's business; a nonzero exit becomes ErrDecryptionFailed.
func (g *GPG) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	out, err := g.run(ctx, ciphertext, decryptArgs()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrDecryptionFailed, err)
	}
	return out, nil
}

func (g *GPG) run(ctx context.Context, input []byte, args ...string) ([]byte, error) {
	program, err := g.resolveProgram()
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %v: %s", program, err, msg)
		}
		return nil, fmt.Errorf("%s: %v", program, err)
	}
	return stdout.Bytes(), nil
}
