package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/JustNevi/mpass/internal/backend"
	"github.com/JustNevi/mpass/internal/configs"
	"github.com/JustNevi/mpass/internal/input"
	"github.com/JustNevi/mpass/internal/store"
	"github.com/JustNevi/mpass/internal/ui"
	"github.com/JustNevi/mpass/internal/vcs"
	"github.com/JustNevi/mpass/internal/workflows"

	"github.com/briandowns/spinner"
)

// startSpinner shows a progress spinner for message and returns it with
// a cleanup function the caller defers. With --verbose or --debug the
// spinner stays off and the message becomes an info line, keeping log
// output unbroken.
//
// Handlers set spinner.FinalMSG without a trailing newline; cleanup runs
// it through ui.EnsureNewline before printing.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	interactive := !verbose && !debug
	if interactive {
		s.Start()
		// Stray log writes would tear the spinner line.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if interactive {
			log.SetOutput(os.Stdout)
		}

		// Stop would print FinalMSG as-is; take it over so the newline
		// handling stays in one place.
		finalMsg := s.FinalMSG
		s.FinalMSG = ""
		if interactive {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Print(ui.EnsureNewline(finalMsg))
		}
	}

	return s, cleanup
}

// newManager builds the workflow manager from the resolved configuration.
// The --store flag wins over MPASS_STORE_DIR, which wins over config.toml.
func newManager() (*workflows.Manager, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, err
	}

	root, err := configs.StoreRoot(storePath, config)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Store root resolved to: %s", root)

	be, err := backend.New(config)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Encryption backend: %s", be.Name())

	// Protected native keys unlock through the terminal.
	if native, ok := be.(*backend.Native); ok {
		native.Passphrase = func(keyName string) ([]byte, error) {
			return input.ReadPassphrase(fmt.Sprintf("Enter passphrase for key %s: ", keyName))
		}
	}

	return workflows.NewManager(store.New(root), be, vcs.New(), Logger), nil
}

// promptConfirm returns a confirmation callback that pauses the spinner,
// asks the question on the terminal, and resumes.
func promptConfirm(s *spinner.Spinner) func(message string) bool {
	return func(message string) bool {
		s.Stop()
		answer := input.AskYesNo(os.Stdin, os.Stdout, message)
		s.Restart()
		return answer
	}
}

// notInitializedMessage is the shared final message for commands that need
// an initialized store and did not find one.
func notInitializedMessage() string {
	return ui.Error.Sprint("✗") + " Password store has not been initialized\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("mpass init <key-id>") + " first"
}
