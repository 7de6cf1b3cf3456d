// Package audit provides an audit trail for store mutations.
//
// Every mutating operation (init, insert, remove, key changes) is
// recorded in a store-level log, so the history of who changed what
// survives alongside the entries themselves.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at
// the store root:
//
//	.audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS account name and user UUID
//   - Operation name
//   - Operation-specific details (entry path, recipient, counts)
//
// # Usage
//
// Create an entry with user info pre-populated:
//
//	entry := audit.NewEntry("insert")
//	entry.Path = "services/api/token"
//	audit.Log(root, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. When a write fails (permissions, full
// disk), the secret operation still completes; the trail is bookkeeping,
// never a gate.
//
// # Reading Logs
//
// ReadEntries parses a store's log for display or analysis. Lines that
// do not parse, such as a torn final write, are skipped.
package audit
