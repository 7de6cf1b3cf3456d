// Package errors defines sentinel errors for mpass operations.
//
// Errors are grouped by concern: store state, encryption backend, and
// interactive input. Callers wrap these with context using fmt.Errorf
// and the %w verb, and match them with errors.Is:
//
//	if err := workflows.Remove(ctx, opts); errors.Is(err, merrors.ErrNotFound) {
//		// report and recover locally
//	}
//
// ErrConfirmationDeclined and ErrNotFound are informational conditions:
// the command layer reports them and exits cleanly, and no store mutation
// or commit may have happened when they are returned. Everything else is
// a real failure surfaced to the user with its diagnostic.
package errors
