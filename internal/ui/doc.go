// Package ui provides semantic text formatting for mpass command output.
//
// Formatters pair a color with a plain-text fallback so output stays
// readable when colors are disabled (NO_COLOR, dumb terminals, pipes):
//
//	msg := ui.Success.Sprint("✓") + " Added " + ui.Path.Sprint("email/work")
//
// Commands build their final messages from these formatters instead of
// calling fatih/color directly, which keeps glyph and color choices
// consistent across the CLI.
package ui
