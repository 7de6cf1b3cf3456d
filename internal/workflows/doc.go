// Package workflows provides high-level orchestration for mpass commands.
//
// Workflows coordinate multiple operations across packages (store,
// backend, vcs, audit) to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow method
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating the store state and the requested path
//   - Performing the core operation through the backend and store tree
//   - Recording the audit trail entry and the git commit
//
// # Available Workflows
//
// Each command has a corresponding Manager method:
//
//   - Init: Creates the store, or rebinds it to a new recipient
//   - Insert: Encrypts and writes a secret at a logical path
//   - Show: Decrypts a secret for display or the clipboard
//   - Remove: Deletes an entry and prunes emptied directories
//   - List/Find: Walks the tree with optional glob filtering
//   - Info: Reports store or entry metadata without decrypting
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package,
// allowing the CLI layer to provide appropriate user-facing messages
// without string matching. Use errors.Is() to check for specific error
// conditions:
//
//	result, err := manager.Insert(ctx, opts)
//	if errors.Is(err, merrors.ErrConfirmationDeclined) {
//	    // A decline is a clean exit, not a failure
//	}
//
// # Confirmation
//
// Destructive operations take a Confirm callback instead of reading the
// terminal themselves. Force answers yes, a nil callback answers no, so
// a workflow can never block waiting for input the caller did not plan
// for.
//
// # Context Usage
//
// All workflow methods accept a context.Context as their first
// parameter. This enables cancellation and timeouts for the backend and
// git invocations they drive.
package workflows
