package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/ariel-frischer/whatsnew/internal/build"
	"github.com/ariel-frischer/whatsnew/internal/progress"
	"github.com/ariel-frischer/whatsnew/internal/update"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	// updateCheckTimeout is the maximum time to wait for update check before returning.
	updateCheckTimeout = 500 * time.Millisecond
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for whatsnew",
	Example: `  # Show version info
  whatsnew version

  # Plain output (for scripts)
  whatsnew version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()

		// Start async update check before displaying version
		var updateChan <-chan *update.UpdateCheck
		if !build.IsDevBuild() {
			checker := update.NewChecker(appConfig.VersionURL, appConfig.Timeout)
			updateChan = startAsyncUpdateCheck(cmd.Context(), checker, build.CurrentVersion())
		}

		if appConfig.Plain {
			printPlainVersion(out)
		} else {
			printPrettyVersion(out)
		}

		displayUpdateNotification(out, updateChan, updateCheckTimeout,
			progress.SelectSymbols(progress.DetectTerminalCapabilities()))
	},
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "whatsnew %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints aligned, colored version info
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n\n", cyan("whatsnew"))
	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
	for _, item := range info {
		fmt.Fprintf(w, "  %s  %s\n", yellow(fmt.Sprintf("%10s", item.label)), white(item.value))
	}
	fmt.Fprintln(w)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

// startAsyncUpdateCheck starts an update check in a goroutine and returns a channel for the result.
func startAsyncUpdateCheck(ctx context.Context, checker updateChecker, current string) <-chan *update.UpdateCheck {
	if ctx == nil {
		ctx = context.Background()
	}

	resultChan := make(chan *update.UpdateCheck, 1)
	go func() {
		defer close(resultChan)
		result, err := checker.CheckForUpdate(ctx, current)
		if err != nil {
			// Update check is optional
			return
		}
		resultChan <- result
	}()

	return resultChan
}

// displayUpdateNotification waits up to timeout for the update check and
// prints a hint when a newer release exists.
func displayUpdateNotification(w io.Writer, resultChan <-chan *update.UpdateCheck, timeout time.Duration, sym progress.ProgressSymbols) {
	if resultChan == nil {
		return
	}

	select {
	case result := <-resultChan:
		if result != nil && result.UpdateAvailable {
			printUpdateAvailable(w, result.LatestVersion, sym)
		}
	case <-time.After(timeout):
		// Don't block on slow network
	}
}

// printUpdateAvailable prints an update notification message.
func printUpdateAvailable(w io.Writer, latestVersion string, sym progress.ProgressSymbols) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s %s %s\n",
		green(sym.Arrow),
		fmt.Sprintf("A new version is available: %s", green(latestVersion)),
		dim("(run 'whatsnew check' to see what's new)"),
	)
}
