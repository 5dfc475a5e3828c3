package cli

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/ariel-frischer/whatsnew/internal/progress"
	"github.com/ariel-frischer/whatsnew/internal/update"
)

// asciiSymbols is the symbol set used when the terminal lacks unicode.
var asciiSymbols = progress.SelectSymbols(progress.TerminalCapabilities{})

// fakeChecker answers CheckForUpdate with a fixed latest version.
type fakeChecker struct {
	latest string
	err    error
	calls  atomic.Int32
}

func (f *fakeChecker) CheckForUpdate(_ context.Context, current string) (*update.UpdateCheck, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &update.UpdateCheck{
		CurrentVersion:  current,
		LatestVersion:   f.latest,
		UpdateAvailable: update.IsNewer(f.latest, strings.TrimPrefix(current, "v")),
	}, nil
}

// stubSource serves a fixed document or error.
type stubSource struct {
	name string
	doc  string
	err  error
}

func (s stubSource) Fetch(context.Context) (string, error) { return s.doc, s.err }

func (s stubSource) String() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}
