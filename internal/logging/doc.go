// Package logger provides leveled, color-prefixed logging for mpass commands.
//
// Verbosity is controlled by the --verbose and --debug flags:
//
//	Logger.Infof()   // shown with --verbose or --debug
//	Logger.Debugf()  // shown only with --debug
//	Logger.Warnf()   // shown with --verbose or --debug
//	Logger.WarnfUser()        // always shown (user must act)
//	Logger.Errorf()           // always shown
//	Logger.ErrorfAndReturn()  // always shown, returns the error for RunE
//
// Info and debug output goes to stdout; warnings and errors go to stderr.
// Secret plaintext must never be passed to any of these methods.
package logger
