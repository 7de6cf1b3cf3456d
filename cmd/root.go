package cmd

import (
	"fmt"
	"strings"

	logger "github.com/JustNevi/mpass/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose   bool
	debug     bool
	storePath string

	// Logger is the logger every command logs through. It is rebuilt from
	// the persistent flags before each run.
	Logger logger.Logger

	RootCmd = &cobra.Command{
		Use:   "mpass",
		Short: "mpass - An encrypted password store with git history.",
		Long: `mpass is a command-line password manager. Secrets live as individually
encrypted files in a directory tree, every change is recorded as a git
commit, and encryption is done by your local gpg installation or by a
built-in keypair backend.

Features:
  - Store each secret as its own encrypted file
  - Keep the full history of the store in git
  - Copy secrets to the clipboard with automatic clearing
  - Work with gpg, or standalone with mpass keypairs

Usage:
  mpass <command> [flags]
  mpass <path>       Shorthand for 'mpass show <path>'

Run 'mpass help <command>' for more details on a specific command.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Logger initialized with verbose=%v, debug=%v", verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if len(args) > 1 {
				return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			// A bare path reads like "mpass show <path>".
			return runShow(cmd, args)
		},
	}
)

// normalizeFlags lets flags be spelled with underscores as well as dashes,
// so --clip_all parses as --clip-all.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	RootCmd.SetGlobalNormalizationFunc(normalizeFlags)

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "path to the password store")

	// The shorthand show form accepts show's clipboard flags too, so
	// "mpass <path> -c" parses.
	RootCmd.Flags().BoolVarP(&clipLine, "clip", "c", false, "copy the first line to the clipboard instead of printing")
	RootCmd.Flags().BoolVarP(&clipAll, "clip-all", "C", false, "copy the whole secret to the clipboard instead of printing")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(insertCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(findCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(gitCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(unclipCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Helper functions for testing

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global command state for testing purposes.
func ResetGlobalState() {
	verbose = false
	debug = false
	storePath = ""
	Logger = logger.Logger{}
	resetInitCommandState()
	resetInsertCommandState()
	resetShowCommandState()
	resetRemoveCommandState()
	resetListCommandState()
	resetKeygenCommandState()
	resetUnclipCommandState()
}

// SetVerbose sets the verbose flag for testing purposes.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing purposes.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing purposes.
func SetLogger(l logger.Logger) {
	Logger = l
}
