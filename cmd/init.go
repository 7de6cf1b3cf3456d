package cmd

import (
	"fmt"

	"github.com/JustNevi/mpass/internal/ui"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "reencrypt for a new key without confirmation")
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init <key-id>",
	Short: "Initializes the password store for a key, or reencrypts it for a new one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing password store...", verbose)
		defer cleanup()

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
		}
		Logger.Debugf("Initializing store at %s for %s", manager.Store().Root(), args[0])

		result, err := manager.Init(cmd.Context(), workflows.InitOptions{
			Recipient: args[0],
			Force:     initForce,
			Confirm:   promptConfirm(spinner),
		})
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to initialize the store: %v", err)
		}

		switch {
		case result.Skipped:
			finalMessage := ui.Info.Sprint("→") + " " + result.Reason
			spinner.FinalMSG = finalMessage
		case result.Rotated:
			finalMessage := ui.Success.Sprint("✓") + " Store reencrypted for " + ui.Recipient.Sprint(result.Recipient) + "\n" +
				ui.Info.Sprint("→") + " " + fmt.Sprintf("%d entries rewritten", result.ReencryptedCount)
			spinner.FinalMSG = finalMessage
		default:
			finalMessage := ui.Success.Sprint("✓") + " Password store initialized for " + ui.Recipient.Sprint(result.Recipient) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("mpass insert <path>") + " to add your first secret"
			spinner.FinalMSG = finalMessage
		}
		return nil
	},
}
