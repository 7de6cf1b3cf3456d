// Package store maps logical secret paths onto the on-disk store tree and
// performs the raw file operations behind every command.
//
// # Layout
//
// A store is a plain directory. Each secret lives in its own file named
// after its logical path with a ".gpg" suffix, so "services/api/token"
// becomes "<root>/services/api/token.gpg". The root carries a single
// ".gpg-id" marker naming the recipient all entries are encrypted for;
// a directory without that marker is not a store.
//
// # Guarantees
//
// The package never touches plaintext. Entries are written atomically via
// a temp file and rename, created with 0600 permissions under 0700
// directories, and removing an entry prunes any parent directories the
// deletion left empty. Logical paths are validated before they touch the
// filesystem, so traversal outside the root is rejected up front.
package store
