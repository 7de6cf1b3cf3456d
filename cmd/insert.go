package cmd

import (
	"errors"
	"fmt"
	"os"

	merrors "github.com/JustNevi/mpass/internal/errors"
	"github.com/JustNevi/mpass/internal/input"
	"github.com/JustNevi/mpass/internal/ui"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	insertMultiline bool
	insertGenerate  bool
	insertNoSymbols bool
	insertForce     bool
	insertLength    int
)

func init() {
	insertCmd.Flags().BoolVarP(&insertMultiline, "multiline", "m", false, "read lines until a blank line or EOF")
	insertCmd.Flags().BoolVarP(&insertGenerate, "generate", "g", false, "generate the secret instead of prompting")
	insertCmd.Flags().BoolVarP(&insertNoSymbols, "no-symbols", "G", false, "generate from letters and digits only")
	insertCmd.Flags().BoolVarP(&insertForce, "force", "f", false, "overwrite an existing entry without confirmation")
	insertCmd.Flags().IntVar(&insertLength, "length", input.DefaultGeneratedLength, "length of a generated secret")
}

// resetInsertCommandState resets the insert command's global state for testing.
func resetInsertCommandState() {
	insertMultiline = false
	insertGenerate = false
	insertNoSymbols = false
	insertForce = false
	insertLength = input.DefaultGeneratedLength
}

var insertCmd = &cobra.Command{
	Use:   "insert <path>",
	Short: "Encrypts a new secret into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting insert command")
		path := args[0]

		spinner, cleanup := startSpinner("Inserting "+path+"...", verbose)
		defer cleanup()

		manager, err := newManager()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to set up the store: %v", err)
		}

		// The source runs only after the workflow has validated the path
		// and settled any overwrite question, so a prompt never shows for
		// an insert that would be rejected.
		generated := ""
		source := func() ([]byte, error) {
			switch {
			case insertGenerate || insertNoSymbols:
				Logger.Debugf("Generating a %d character secret", insertLength)
				value, err := input.Generate(insertLength, insertNoSymbols)
				if err != nil {
					return nil, err
				}
				generated = value
				return []byte(value), nil
			case !input.IsTerminal():
				Logger.Debugf("Reading secret from stdin")
				return input.ReadMultiline(os.Stdin, false)
			case insertMultiline:
				spinner.Stop()
				fmt.Printf("Enter contents of %s and finish with an empty line:\n", path)
				data, err := input.ReadMultiline(os.Stdin, true)
				spinner.Restart()
				return data, err
			default:
				spinner.Stop()
				data, err := input.PromptSecret(path)
				spinner.Restart()
				return data, err
			}
		}

		result, err := manager.Insert(cmd.Context(), workflows.InsertOptions{
			Path:    path,
			Source:  source,
			Force:   insertForce,
			Confirm: promptConfirm(spinner),
		})
		switch {
		case errors.Is(err, merrors.ErrNotInitialized):
			spinner.FinalMSG = notInitializedMessage()
			return nil
		case errors.Is(err, merrors.ErrConfirmationDeclined):
			spinner.FinalMSG = ui.Info.Sprint("→") + " Not overwriting " + ui.Path.Sprint(path)
			return nil
		case err != nil:
			return Logger.ErrorfAndReturn("Failed to insert %s: %v", path, err)
		}

		verb := "Added"
		if !result.Created {
			verb = "Updated"
		}
		finalMessage := ui.Success.Sprint("✓") + " " + verb + " " + ui.Path.Sprint(result.Path)
		if generated != "" {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Generated secret: " + ui.Code.Sprint(generated)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
