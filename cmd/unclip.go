package cmd

import (
	"os"
	"time"

	"github.com/JustNevi/mpass/internal/clipboard"

	"github.com/spf13/cobra"
)

var unclipTimeout int

func init() {
	unclipCmd.Flags().IntVar(&unclipTimeout, "timeout", clipboard.DefaultTimeoutSeconds, "seconds to wait before clearing")
}

// resetUnclipCommandState resets the unclip command's global state for testing.
func resetUnclipCommandState() {
	unclipTimeout = clipboard.DefaultTimeoutSeconds
}

// unclipCmd is spawned detached by the clipboard copy and is not meant to
// be run by hand. It clears the clipboard only if it still holds the value
// that was copied, identified by the checksum passed in the environment.
var unclipCmd = &cobra.Command{
	Use:    "unclip",
	Short:  "Clears the clipboard after a delay",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		checksum := os.Getenv(clipboard.ChecksumEnv)
		time.Sleep(time.Duration(unclipTimeout) * time.Second)
		return clipboard.ClearIfUnchanged(checksum)
	},
}
