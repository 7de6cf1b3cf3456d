package cmd

import (
	"errors"

	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/ui"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/spf13/cobra"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "delete without confirmation")
}

// resetRemoveCommandState resets the rm command's global state for testing.
func resetRemoveCommandState() {
	removeForce = false
}

var removeCmd = &cobra.Command{
	Use:     "rm <path>",
	Aliases: []string{"remove", "delete"},
	Short:   "Deletes an entry from the store",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rm command")
		path := args[0]

		spinner, cleanup := startSpinner("Removing "+path+"...", verbose)
		defer cleanup()

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
		}

		result, err := manager.Remove(cmd.Context(), workflows.RemoveOptions{
			Path:    path,
			Force:   removeForce,
			Confirm: promptConfirm(spinner),
		})
		switch {
		case errors.Is(err, merrors.ErrNotInitialized):
			spinner.FinalMSG = notInitializedMessage()
			return nil
		case errors.Is(err, merrors.ErrConfirmationDeclined):
			spinner.FinalMSG = ui.Info.Sprint("→") + " Not removing " + ui.Path.Sprint(path)
			return nil
		case errors.Is(err, merrors.ErrNotFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Path.Sprint(path) + " is not in the store"
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("Failed to remove %s: %v", path, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Path.Sprint(result.Path)
		return nil
	},
}
