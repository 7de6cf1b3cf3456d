package backend

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/ssh"

	merrors "github.com/JustNevi/mpass/internal/errors"
)

// PublicKeySuffix distinguishes public key files in the key directory.
// A keypair named "work" is stored as "work" and "work.pub".
const PublicKeySuffix = ".pub"

// LoadPublicKey loads an RSA public key from disk. Both PKIX PEM blocks
// and OpenSSH authorized_keys lines are accepted, so existing ssh keys
// can serve as recipients.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no public key at %s", merrors.ErrKeyNotFound, path)
		}
		return nil, err
	}

	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "PUBLIC KEY" {
			return nil, fmt.Errorf("failed to decode PEM block containing public key")
		}
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA public key")
		}
		return rsaPub, nil
	}

	sshPub, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key at %s: %w", path, err)
	}
	return rsaPublicKeyFromSSH(sshPub)
}

func rsaPublicKeyFromSSH(pub ssh.PublicKey) (*rsa.PublicKey, error) {
	crypto, ok := pub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("unsupported ssh public key type %s", pub.Type())
	}
	rsaPub, ok := crypto.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key (got %s)", pub.Type())
	}
	return rsaPub, nil
}

// LoadPrivateKey loads an RSA private key from disk. PKCS#1 PEM, PKCS#8
// PEM, and OpenSSH formats are accepted. A passphrase-protected OpenSSH
// key loaded without a passphrase returns ErrPassphraseRequired so the
// caller can prompt and retry.
func LoadPrivateKey(path string, passphrase []byte) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no private key at %s", merrors.ErrKeyNotFound, path)
		}
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("not an RSA private key")
		}
		return rsaKey, nil
	case "OPENSSH PRIVATE KEY":
		return parseOpenSSHPrivateKey(data, passphrase)
	default:
		return nil, fmt.Errorf("unsupported private key PEM type %q", block.Type)
	}
}

// parseOpenSSHPrivateKey parses an OpenSSH-format private key, with or
// without a passphrase.
func parseOpenSSHPrivateKey(pemBytes []byte, passphrase []byte) (*rsa.PrivateKey, error) {
	var key interface{}
	var err error
	if len(passphrase) == 0 {
		key, err = ssh.ParseRawPrivateKey(pemBytes)
	} else {
		key, err = ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, passphrase)
	}
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: key is passphrase protected", merrors.ErrPassphraseRequired)
		}
		return nil, err
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA private key (got %T)", key)
	}
	return rsaKey, nil
}

// GenerateKeyPair creates a new RSA keypair and saves it as PKCS#1 PEM
// (private) plus PKIX PEM (public).
func GenerateKeyPair(privatePath string, publicPath string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(privatePath), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(privatePath, privPem, 0600); err != nil {
		return fmt.Errorf("failed to save private key at %s: %w", privatePath, err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubASN1,
	})
	if err := os.WriteFile(publicPath, pubPem, 0600); err != nil {
		return fmt.Errorf("failed to save public key at %s: %w", publicPath, err)
	}

	return nil
}

// ListPrivateKeys returns the names of the private keys in the key
// directory, sorted. A missing directory is an empty keyring.
func ListPrivateKeys(keyDir string) ([]string, error) {
	entries, err := os.ReadDir(keyDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read key directory %s: %w", keyDir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasSuffix(name, PublicKeySuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}
