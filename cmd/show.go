package cmd

import (
	"fmt"

	"github.com/JustNevi/mpass/internal/ui"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	clipLine bool
	clipAll  bool
)

func init() {
	showCmd.Flags().BoolVarP(&clipLine, "clip", "c", false, "copy the first line to the clipboard instead of printing")
	showCmd.Flags().BoolVarP(&clipAll, "clip-all", "C", false, "copy the whole secret to the clipboard instead of printing")
}

// resetShowCommandState resets the show command's global state for testing.
func resetShowCommandState() {
	clipLine = false
	clipAll = false
}

var showCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Decrypts an entry and prints it, or copies it to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// runShow backs both "mpass show <path>" and the bare "mpass <path>" form.
func runShow(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting show command")
	path := args[0]

	if clipLine && clipAll {
		return fmt.Errorf("--clip and --clip-all cannot be combined")
	}

	manager, err := newManager()
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
	}

	mode := workflows.ClipNone
	switch {
	case clipAll:
		mode = workflows.ClipAll
	case clipLine:
		mode = workflows.ClipLine
	}

	result, err := manager.Show(cmd.Context(), workflows.ShowOptions{Path: path, Clip: mode})
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to show %s: %v", path, err)
	}

	if result.Copied {
		fmt.Printf("%s Copied %s to the clipboard. Clearing in %d seconds.\n",
			ui.Success.Sprint("✓"), ui.Path.Sprint(result.Path), result.TimeoutSeconds)
		return nil
	}

	fmt.Print(ui.EnsureNewline(string(result.Plaintext)))
	return nil
}
