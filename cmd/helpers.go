package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/utils"

	"github.com/briandowns/spinner"
)

// startSpinner starts a spinner on stdout unless output is verbose or not a
// terminal. The returned cleanup stops it and prints FinalMSG.
//
// FinalMSG does not need a trailing newline.
func startSpinner(out io.Writer, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	active := !verbose && !debug && out == io.Writer(os.Stdout) && utils.IsTerminal(os.Stdout)
	if active {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// printFailures prints one line per failed item of a batch.
func printFailures(out io.Writer, failures []kerrors.BatchFailure) {
	for _, f := range failures {
		fmt.Fprintf(out, "  %s %s: %v\n", ui.Error.Sprint("✗"), ui.Path.Sprint(f.Path), f.Err)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
