package cmd

import (
	"fmt"

	"github.com/JustNevi/mpass/internal/configs"
	"github.com/JustNevi/mpass/internal/store"
	"github.com/JustNevi/mpass/internal/vcs"

	"github.com/spf13/cobra"
)

var gitCmd = &cobra.Command{
	Use:   "git <args>",
	Short: "Runs a git command inside the store",
	Long: `Runs an arbitrary git command with the store as its working directory,
so "mpass git log" shows the store's history. Flags after "git" belong
to git, not to mpass.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting git command")

		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load configuration: %v", err)
		}
		root, err := configs.StoreRoot(storePath, config)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve the store root: %v", err)
		}

		if !store.New(root).Exists() {
			fmt.Println(notInitializedMessage())
			return nil
		}

		git := vcs.New()
		if err := git.Check(); err != nil {
			return Logger.ErrorfAndReturn("git is not available: %v", err)
		}

		Logger.Debugf("Running git %v in %s", args, root)
		return git.Run(cmd.Context(), root, args...)
	},
}
