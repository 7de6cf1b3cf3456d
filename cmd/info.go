package cmd

import (
	"errors"
	"fmt"
	"time"

	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [<path>]",
	Short: "Shows store details, or one entry's metadata without decrypting it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting info command")

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		result, err := manager.Info(cmd.Context(), workflows.InfoOptions{Path: path})
		if errors.Is(err, merrors.ErrNotInitialized) {
			fmt.Println(notInitializedMessage())
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read store info: %v", err)
		}

		if path != "" {
			fmt.Printf("Entry:    %s\n", result.Path)
			fmt.Printf("File:     %s\n", result.File)
			fmt.Printf("Size:     %d bytes\n", result.Size)
			fmt.Printf("Modified: %s\n", result.ModTime.Format(time.RFC3339))
			return nil
		}

		fmt.Println()
		banner := figure.NewColorFigure("mpass", "alligator2", "cyan", true)
		banner.Print()
		fmt.Println()

		history := "none"
		if result.Repository {
			history = "git"
		}
		fmt.Printf("Store:     %s\n", result.Root)
		fmt.Printf("Backend:   %s\n", result.Backend)
		fmt.Printf("Recipient: %s\n", result.Recipient)
		fmt.Printf("Entries:   %d\n", result.EntryCount)
		fmt.Printf("History:   %s\n", history)
		return nil
	},
}
