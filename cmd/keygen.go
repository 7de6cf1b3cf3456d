package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/JustNevi/mpass/internal/backend"
	"github.com/JustNevi/mpass/internal/configs"
	"github.com/JustNevi/mpass/internal/ui"

	"github.com/spf13/cobra"
)

var keygenForce bool

func init() {
	keygenCmd.Flags().BoolVarP(&keygenForce, "force", "f", false, "overwrite an existing keypair")
}

// resetKeygenCommandState resets the keygen command's global state for testing.
func resetKeygenCommandState() {
	keygenForce = false
}

var keygenCmd = &cobra.Command{
	Use:   "keygen <id>",
	Short: "Creates a local RSA keypair for the native backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")
		id := args[0]

		spinner, cleanup := startSpinner("Generating keypair "+id+"...", verbose)
		defer cleanup()

		if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
			return Logger.ErrorfAndReturn("Invalid key id %q: key ids are bare names", id)
		}

		privatePath := filepath.Join(configs.UserSettings.KeyDir, id)
		publicPath := privatePath + backend.PublicKeySuffix
		Logger.Debugf("Keypair paths: %s, %s", privatePath, publicPath)

		if !keygenForce {
			if _, err := os.Stat(privatePath); err == nil {
				finalMessage := ui.Error.Sprint("✗") + " " + ui.Path.Sprint(id) + " already exists\n" +
					"To override, run: " + ui.Code.Sprint("mpass keygen "+id+" --force")
				spinner.FinalMSG = finalMessage
				return nil
			}
		} else {
			Logger.Infof("Force flag set, will override an existing keypair")
			spinner.Stop()
			Logger.WarnfUser("Overwriting a keypair loses access to everything encrypted for it")
			spinner.Restart()
		}

		if err := backend.GenerateKeyPair(privatePath, publicPath); err != nil {
			return Logger.ErrorfAndReturn("Failed to generate keypair: %v", err)
		}
		Logger.Infof("Keypair created successfully")

		finalMessage := ui.Success.Sprint("✓") + " Keypair " + ui.Recipient.Sprint(id) + " created\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("mpass init "+id) + " to bind a store to it"
		spinner.FinalMSG = finalMessage
		return nil
	},
}
