package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariel-frischer/whatsnew/internal/build"
	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/ariel-frischer/whatsnew/internal/progress"
	"github.com/ariel-frischer/whatsnew/internal/update"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	checkCurrentFlag string
	checkMaxFlag     int
)

// updateChecker is satisfied by *update.Checker.
type updateChecker interface {
	CheckForUpdate(ctx context.Context, current string) (*update.UpdateCheck, error)
}

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"ck"},
	Short:   "Check for an update and show what it brings",
	Long: `Check whether a newer release is published and, if so, print the
changelog sections between the installed version and the latest one.

Network failures are not reported as errors: the check simply shows nothing.
Run with --debug to see why.`,
	Example: `  # Check for available updates
  whatsnew check

  # Pretend a different version is installed
  whatsnew check --current 0.2.0

  # Plain output (for scripts)
  whatsnew check --plain`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkCurrentFlag, "current", "", "Installed version (default: this binary's version)")
	checkCmd.Flags().IntVar(&checkMaxFlag, "max", -1, "Show at most N releases (0 = all; default from config)")
}

// runCheck executes the update check command.
func runCheck(cmd *cobra.Command, _ []string) error {
	current := checkCurrentFlag
	if current == "" {
		current = build.CurrentVersion()
	}

	maxSections := appConfig.MaxSections
	if checkMaxFlag >= 0 {
		maxSections = checkMaxFlag
	}

	primary, fallback := changelogSources(appConfig, "", "")
	checker := update.NewChecker(appConfig.VersionURL, appConfig.Timeout)

	caps := progress.DetectTerminalCapabilities()
	var sp *progress.Spinner
	if !appConfig.Plain {
		sp = progress.StartSpinner(cmd.ErrOrStderr(), caps, "Checking for updates...")
	}
	output := executeCheck(cmd.Context(), checker, primary, fallback, current, changelog.FormatOptions{
		Plain:       appConfig.Plain,
		MaxSections: maxSections,
	}, progress.SelectSymbols(caps))
	sp.Stop()

	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// checkOutcome holds everything gathered by the concurrent fetches.
type checkOutcome struct {
	check *update.UpdateCheck
	doc   string
	docOK bool
}

// executeCheck performs the update check and returns formatted output.
// Transport failures degrade to no output rather than an error.
func executeCheck(ctx context.Context, checker updateChecker, primary, fallback changelog.Source, current string, opts changelog.FormatOptions, sym progress.ProgressSymbols) string {
	if ctx == nil {
		ctx = context.Background()
	}
	if update.IsDevVersion(current) {
		return formatDevBuildMessage(current, opts.Plain, sym)
	}

	outcome, err := gatherCheck(ctx, checker, primary, fallback, current)
	if err != nil {
		log.Debug().Err(err).Msg("update check failed")
		return ""
	}

	if !outcome.check.UpdateAvailable {
		return formatUpToDate(outcome.check, opts.Plain, sym)
	}
	return formatUpdateAvailable(outcome, opts, sym)
}

// gatherCheck fetches the latest version and the changelog concurrently.
// A failed version lookup cancels the changelog fetch; a failed changelog
// fetch only leaves docOK false.
func gatherCheck(ctx context.Context, checker updateChecker, primary, fallback changelog.Source, current string) (checkOutcome, error) {
	var outcome checkOutcome
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		check, err := checker.CheckForUpdate(gctx, current)
		if err != nil {
			return fmt.Errorf("checking latest version: %w", err)
		}
		outcome.check = check
		return nil
	})

	g.Go(func() error {
		doc, fromPrimary, err := changelog.FetchWithFallback(gctx, primary, fallback)
		if err != nil {
			log.Debug().Err(err).Str("source", primary.String()).Msg("changelog unavailable")
			return nil
		}
		if !fromPrimary {
			log.Debug().Str("source", primary.String()).Msg("using embedded changelog")
		}
		outcome.doc, outcome.docOK = doc, true
		return nil
	})

	if err := g.Wait(); err != nil {
		return checkOutcome{}, err
	}
	return outcome, nil
}

// formatDevBuildMessage returns a message for dev builds.
func formatDevBuildMessage(version string, plain bool, sym progress.ProgressSymbols) string {
	if plain {
		return fmt.Sprintf("version: %s\nstatus: dev-build\nmessage: update check not applicable\n", version)
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	return fmt.Sprintf("%s Running dev build - update check not applicable\n%s\n",
		yellow(sym.Warning),
		dim("  Install a release version to enable update checks"))
}

// formatUpToDate returns output when already on latest version.
func formatUpToDate(check *update.UpdateCheck, plain bool, sym progress.ProgressSymbols) string {
	if plain {
		return fmt.Sprintf("current: %s\nlatest: %s\nupdate_available: false\n",
			check.CurrentVersion, check.LatestVersion)
	}

	green := color.New(color.FgGreen).SprintFunc()
	return fmt.Sprintf("%s Already on latest version (%s)\n",
		green(sym.Checkmark),
		check.CurrentVersion)
}

// formatUpdateAvailable returns the update banner followed by the release notes.
func formatUpdateAvailable(outcome checkOutcome, opts changelog.FormatOptions, sym progress.ProgressSymbols) string {
	check := outcome.check
	current := strings.TrimPrefix(check.CurrentVersion, "v")

	var sb strings.Builder
	if opts.Plain {
		sb.WriteString(fmt.Sprintf("current: %s\nlatest: %s\nupdate_available: true\n",
			check.CurrentVersion, check.LatestVersion))
	} else {
		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()
		sb.WriteString(fmt.Sprintf("%s Update available: %s %s %s\n%s\n",
			green(sym.Checkmark),
			dim(check.CurrentVersion),
			sym.Arrow,
			cyan(check.LatestVersion),
			dim("  Run 'whatsnew upgrade' to upgrade")))
	}

	if !outcome.docOK {
		return sb.String()
	}

	result := changelog.Extract(outcome.doc, current, check.LatestVersion)
	if result.Inverted {
		log.Warn().
			Str("current", current).
			Str("latest", check.LatestVersion).
			Msg("installed version is listed above the latest release in the changelog")
	}
	if result.Status != changelog.StatusFound {
		log.Debug().Str("status", result.Status.String()).Msg("no release notes to show")
		return sb.String()
	}

	sb.WriteString("\n")
	if !opts.Plain {
		dim := color.New(color.Faint).SprintFunc()
		sb.WriteString(dim(fmt.Sprintf("What's new since %s:", current)) + "\n\n")
	}
	sb.WriteString(changelog.RenderString(result, opts))
	return sb.String()
}
