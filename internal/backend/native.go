package backend

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/JustNevi/mpass/internal/configs"
	merrors "github.com/JustNevi/mpass/internal/errors"
)

// envelopeMagic starts every native ciphertext. The trailing byte is a
// format version.
var envelopeMagic = []byte{'m', 'p', 0x01}

const (
	symKeySize = 32
	nonceSize  = 24
)

// Native seals entries without external tooling: a fresh 32-byte key per
// entry sealed with NaCl secretbox, the key wrapped with the recipient's
// RSA public key. Recipient ids name keypairs in the key directory
// ("work" resolves to <keyDir>/work.pub and <keyDir>/work).
type Native struct {
	keyDir string

	// Passphrase, when set, is asked for a named key so protected
	// OpenSSH private keys can be unlocked during decryption.
	Passphrase func(keyName string) ([]byte, error)
}

// NewNative returns a native backend over the given key directory.
func NewNative(keyDir string) *Native {
	return &Native{keyDir: keyDir}
}

func (n *Native) Name() string {
	return configs.BackendNative
}

// KeyDir returns the directory holding recipient keypairs.
func (n *Native) KeyDir() string {
	return n.keyDir
}

// Check verifies the key directory is usable. The directory not existing
// yet is fine; keygen creates it.
func (n *Native) Check() error {
	info, err := os.Stat(n.keyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: cannot access key directory %s: %v", merrors.ErrBackendUnavailable, n.keyDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", merrors.ErrBackendUnavailable, n.keyDir)
	}
	return nil
}

// HasRecipient reports whether a public key for the recipient exists.
func (n *Native) HasRecipient(recipient string) bool {
	_, err := os.Stat(filepath.Join(n.keyDir, recipient+PublicKeySuffix))
	return err == nil
}

// Encrypt seals plaintext for the recipient's public key.
func (n *Native) Encrypt(ctx context.Context, plaintext []byte, recipient string) ([]byte, error) {
	publicKey, err := LoadPublicKey(filepath.Join(n.keyDir, recipient+PublicKeySuffix))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrEncryptionFailed, err)
	}

	var symKey [symKeySize]byte
	if _, err := io.ReadFull(rand.Reader, symKey[:]); err != nil {
		return nil, fmt.Errorf("%w: failed to generate symmetric key: %v", merrors.ErrEncryptionFailed, err)
	}

	wrappedKey, err := rsa.EncryptPKCS1v15(rand.Reader, publicKey, symKey[:])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to wrap symmetric key: %v", merrors.ErrEncryptionFailed, err)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: failed to generate nonce: %v", merrors.ErrEncryptionFailed, err)
	}

	sealed := secretbox.Seal(nil, plaintext, &nonce, &symKey)
	return sealEnvelope(wrappedKey, nonce, sealed), nil
}

// Decrypt opens ciphertext by trying every private key in the key
// directory. The envelope does not name its recipient, so after a key
// rotation older entries still open with the previous key.
func (n *Native) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	wrappedKey, nonce, sealed, err := openEnvelope(ciphertext)
	if err != nil {
		return nil, err
	}

	names, err := ListPrivateKeys(n.keyDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", merrors.ErrDecryptionFailed, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no private keys in %s", merrors.ErrKeyNotFound, n.keyDir)
	}

	for _, name := range names {
		privateKey, err := n.loadPrivateKey(name)
		if err != nil {
			continue
		}

		symKeyBytes, err := rsa.DecryptPKCS1v15(rand.Reader, privateKey, wrappedKey)
		if err != nil || len(symKeyBytes) != symKeySize {
			continue
		}

		var symKey [symKeySize]byte
		copy(symKey[:], symKeyBytes)

		plaintext, ok := secretbox.Open(nil, sealed, &nonce, &symKey)
		if !ok {
			continue
		}
		return plaintext, nil
	}

	return nil, fmt.Errorf("%w: no local private key can open this entry", merrors.ErrDecryptionFailed)
}

func (n *Native) loadPrivateKey(name string) (*rsa.PrivateKey, error) {
	path := filepath.Join(n.keyDir, name)

	key, err := LoadPrivateKey(path, nil)
	if err == nil {
		return key, nil
	}
	if errors.Is(err, merrors.ErrPassphraseRequired) && n.Passphrase != nil {
		passphrase, askErr := n.Passphrase(name)
		if askErr != nil {
			return nil, askErr
		}
		return LoadPrivateKey(path, passphrase)
	}
	return nil, err
}

// sealEnvelope assembles the on-disk ciphertext:
// magic, big-endian uint16 wrapped-key length, wrapped key, nonce, box.
func sealEnvelope(wrappedKey []byte, nonce [nonceSize]byte, sealed []byte) []byte {
	out := make([]byte, 0, len(envelopeMagic)+2+len(wrappedKey)+nonceSize+len(sealed))
	out = append(out, envelopeMagic...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(wrappedKey)))
	out = append(out, wrappedKey...)
	out = append(out, nonce[:]...)
	out = append(out, sealed...)
	return out
}

// openEnvelope splits ciphertext back into its envelope fields, rejecting
// anything that does not carry the native magic or is truncated.
func openEnvelope(data []byte) (wrappedKey []byte, nonce [nonceSize]byte, sealed []byte, err error) {
	header := len(envelopeMagic) + 2
	if len(data) < header {
		return nil, nonce, nil, fmt.Errorf("%w: ciphertext too short", merrors.ErrDecryptionFailed)
	}
	for i, b := range envelopeMagic {
		if data[i] != b {
			return nil, nonce, nil, fmt.Errorf("%w: not a native ciphertext", merrors.ErrDecryptionFailed)
		}
	}

	wrappedLen := int(binary.BigEndian.Uint16(data[len(envelopeMagic):header]))
	if wrappedLen == 0 || len(data) < header+wrappedLen+nonceSize+secretbox.Overhead {
		return nil, nonce, nil, fmt.Errorf("%w: ciphertext truncated", merrors.ErrDecryptionFailed)
	}

	wrappedKey = data[header : header+wrappedLen]
	copy(nonce[:], data[header+wrappedLen:header+wrappedLen+nonceSize])
	sealed = data[header+wrappedLen+nonceSize:]
	return wrappedKey, nonce, sealed, nil
}
