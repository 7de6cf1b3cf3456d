package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies one semantic style to text, with a plain-text fallback
// when color output is disabled.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the styled string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the styled string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline appends a trailing newline unless s already ends in one.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor reports whether color output should be disabled, honoring both
// the NO_COLOR convention (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters used across mpass command output.
var (
	// Success formats success glyphs and messages. Green.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats failure glyphs and messages. Red.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warnings. Yellow.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators. Cyan.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Code formats runnable commands. Yellow with color, backticks without.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file paths and entry names. Yellow.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Recipient formats key ids and recipient identities. Cyan with color,
	// single quotes without.
	Recipient = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary detail. Gray with color, parentheses without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
