package cmd

import (
	"errors"
	"fmt"

	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/spf13/cobra"
)

var listFilter string

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "glob over entry paths, e.g. \"services/**\"")
}

// resetListCommandState resets the ls command's global state for testing.
func resetListCommandState() {
	listFilter = ""
}

var listCmd = &cobra.Command{
	Use:     "ls [subfolder]",
	Aliases: []string{"list"},
	Short:   "Lists the entries in the store",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting ls command")
		subfolder := ""
		if len(args) == 1 {
			subfolder = args[0]
		}

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
		}

		result, err := manager.List(cmd.Context(), workflows.ListOptions{
			Subfolder: subfolder,
			Filter:    listFilter,
		})
		if errors.Is(err, merrors.ErrNotInitialized) {
			fmt.Println(notInitializedMessage())
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list the store: %v", err)
		}

		for _, entry := range result.Entries {
			fmt.Println(entry)
		}
		return nil
	},
}
