package errors

import "errors"

// Store state errors indicate issues with the store directory or its key binding.
var (
	// ErrNotInitialized indicates the store directory or its key binding is absent.
	ErrNotInitialized = errors.New("password store is not initialized")

	// ErrAlreadyInitialized indicates the store already has an active key binding.
	ErrAlreadyInitialized = errors.New("password store is already initialized")

	// ErrNotFound indicates no entry exists at the requested path.
	ErrNotFound = errors.New("entry not found in the store")

	// ErrEntryExists indicates an entry already exists at the requested path.
	ErrEntryExists = errors.New("entry already exists")

	// ErrInvalidPath indicates the logical path is empty, absolute, or escapes the store.
	ErrInvalidPath = errors.New("invalid entry path")
)

// Backend errors indicate failures in the encryption provider.
var (
	// ErrDecryptionFailed indicates the backend rejected the ciphertext or the key does not match.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncryptionFailed indicates the backend refused to produce ciphertext.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrBackendUnavailable indicates an external tool is missing or not executable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrKeyNotFound indicates no key material exists for the requested recipient.
	ErrKeyNotFound = errors.New("recipient key not found")

	// ErrKeyExists indicates key material already exists for the recipient.
	ErrKeyExists = errors.New("recipient key already exists")

	// ErrPassphraseRequired indicates a private key is encrypted and needs a passphrase.
	ErrPassphraseRequired = errors.New("private key is passphrase protected")
)

// Input errors indicate user-driven aborts during interactive operations.
var (
	// ErrConfirmationDeclined indicates the user answered no to a confirmation prompt.
	// This is a clean abort, not a failure.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrInputMismatch indicates two manually entered secrets differ.
	ErrInputMismatch = errors.New("entered secrets do not match")

	// ErrEmptyInput indicates no secret content was provided.
	ErrEmptyInput = errors.New("empty secret")
)
