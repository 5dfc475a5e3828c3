package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner is a stoppable activity indicator. The zero value is a no-op.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner shows suffix next to a spinner on w. It does nothing when the
// terminal is not interactive, so redirected output stays clean.
func StartSpinner(w io.Writer, caps TerminalCapabilities, suffix string) *Spinner {
	if !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	s.Suffix = " " + suffix
	s.Start()
	return &Spinner{s: s}
}

// Stop halts the spinner and clears its line.
func (sp *Spinner) Stop() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Stop()
}
