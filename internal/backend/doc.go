// Package backend provides the encryption providers that seal and open
// store entries.
//
// # Backends
//
// The gpg backend shells out to GnuPG and is the default: recipients are
// whatever the local gpg keyring resolves, and agent, pinentry, and
// hardware tokens all work unchanged. The native backend needs no
// external tooling; it seals each entry with a fresh NaCl secretbox key
// wrapped by the recipient's RSA public key, with keypairs kept in the
// user's data directory.
//
// Both produce opaque ciphertext handled identically by the store layer.
// Selection happens through configuration (store.backend) or the
// MPASS_BACKEND environment variable.
package backend
