package cmd

import (
	"errors"
	"fmt"

	merrors "github.com/JustNevi/mpass/internal/errors"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <pattern>",
	Short: "Searches entry paths by glob pattern",
	Long: `Searches the store for entries whose path matches the pattern. The
pattern is matched against whole paths and against path tails, so
"github" finds both "github" and "work/github".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting find command")

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
		}

		result, err := manager.Find(cmd.Context(), args[0])
		if errors.Is(err, merrors.ErrNotInitialized) {
			fmt.Println(notInitializedMessage())
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to search the store: %v", err)
		}

		for _, entry := range result.Entries {
			fmt.Println(entry)
		}
		return nil
	},
}
