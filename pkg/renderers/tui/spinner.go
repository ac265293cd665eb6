package tui

import (
	"io"

	"github.com/pterm/pterm"
)

func ptermSpinner(w io.Writer, message string) func() {
	spinner, err := pterm.DefaultSpinner.
		WithWriter(w).
		WithRemoveWhenDone(true).
		Start(message)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = spinner.Stop()
	}
}
