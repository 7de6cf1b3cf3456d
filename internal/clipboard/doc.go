// Package clipboard copies secrets to the system clipboard with an
// automatic expiry.
//
// Copying spawns a second, detached mpass process ("unclip") that sleeps
// out the timeout and then clears the clipboard. The parent hands the
// child only a SHA-256 checksum of the copied value; the child re-reads
// the clipboard and wipes it only on a checksum match, so a value the
// user copied afterwards survives.
package clipboard
