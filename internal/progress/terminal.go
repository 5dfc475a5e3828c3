// Package progress detects terminal capabilities and shows a spinner while
// whatsnew waits on the network.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the output terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities detects terminal features for stdout.
// Checks: stdout isatty, NO_COLOR env, WHATSNEW_ASCII env, terminal width.
func DetectTerminalCapabilities() TerminalCapabilities {
	return detect(os.Stdout)
}

func detect(w io.Writer) TerminalCapabilities {
	f, ok := w.(*os.File)
	isTTY := ok && term.IsTerminal(int(f.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("WHATSNEW_ASCII") == "1"

	width := 0
	if isTTY {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// ProgressSymbols holds the glyphs used for status output.
type ProgressSymbols struct {
	Checkmark  string
	Warning    string
	Arrow      string
	SpinnerSet int
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/⚠/→ with braille spinner (set 14). ASCII: [OK]/[WARN]/-> with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Warning:    "⚠",
			Arrow:      "→",
			SpinnerSet: 14,
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Warning:    "[WARN]",
		Arrow:      "->",
		SpinnerSet: 9,
	}
}
