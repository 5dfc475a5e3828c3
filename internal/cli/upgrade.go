package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/whatsnew/internal/build"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/ariel-frischer/whatsnew/internal/progress"
	"github.com/ariel-frischer/whatsnew/internal/update"
	"github.com/ariel-frischer/whatsnew/internal/upgrade"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	upgradeDryRun  bool
	upgradeForce   bool
	upgradeVersion string
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Install the latest release with the configured command",
	Long: `Run the configured upgrade_cmd for the latest release.

The command is a template: {{VERSION}} is replaced with the target version
and the result is split into arguments like a shell would, without running
a shell.`,
	Example: `  # Show what would run
  whatsnew upgrade --dry-run

  # Reinstall even when already on the latest release
  whatsnew upgrade --force

  # Install a specific release
  whatsnew upgrade --version 0.3.0`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeDryRun, "dry-run", false, "Print the command without running it")
	upgradeCmd.Flags().BoolVar(&upgradeForce, "force", false, "Upgrade even when no newer release is found")
	upgradeCmd.Flags().StringVar(&upgradeVersion, "version", "", "Target version (default: latest release)")
}

// upgradeRequest is the parsed form of the upgrade command flags.
type upgradeRequest struct {
	Current string
	Target  string
	DryRun  bool
	Force   bool
}

// commandRunner is satisfied by upgrade.Runner.
type commandRunner interface {
	Command(version string) ([]string, error)
	Validate() error
	Run(ctx context.Context, version string, stdout, stderr io.Writer) error
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(appConfig.UpgradeCmd) == "" {
		return clierrors.UpgradeNotConfigured()
	}

	req := upgradeRequest{
		Current: build.CurrentVersion(),
		Target:  upgradeVersion,
		DryRun:  upgradeDryRun,
		Force:   upgradeForce,
	}
	checker := update.NewChecker(appConfig.VersionURL, appConfig.Timeout)
	runner := upgrade.Runner{Template: appConfig.UpgradeCmd}
	sym := progress.SelectSymbols(progress.DetectTerminalCapabilities())
	return executeUpgrade(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), checker, runner, req, appConfig.Plain, sym)
}

// executeUpgrade resolves the target version and runs, or prints, the upgrade command.
func executeUpgrade(ctx context.Context, stdout, stderr io.Writer, checker updateChecker, runner commandRunner, req upgradeRequest, plain bool, sym progress.ProgressSymbols) error {
	if ctx == nil {
		ctx = context.Background()
	}

	target := strings.TrimPrefix(req.Target, "v")
	if target == "" {
		if update.IsDevVersion(req.Current) && !req.Force {
			return clierrors.NewArgumentError(
				"running a dev build; cannot tell whether an upgrade is needed",
				"Pass --force to install the latest release anyway",
				"Or pass --version to choose a release",
			)
		}
		check, err := checker.CheckForUpdate(ctx, req.Current)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Network,
				"could not determine the latest release",
				"Check your network connection and version_url")
		}
		if !check.UpdateAvailable && !req.Force {
			fmt.Fprintf(stdout, "Already on latest version (%s)\n", check.CurrentVersion)
			return nil
		}
		target = check.LatestVersion
		if target == "" {
			return clierrors.NewNotFoundError("no published release found", "Pass --version to choose a release")
		}
	}

	args, err := runner.Command(target)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration,
			"invalid upgrade_cmd", "Check the quoting in upgrade_cmd")
	}

	if req.DryRun {
		fmt.Fprintln(stdout, strings.Join(args, " "))
		return nil
	}

	if err := runner.Validate(); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration,
			"upgrade_cmd cannot run", "Install the tool upgrade_cmd invokes or fix its path")
	}

	if plain {
		fmt.Fprintf(stderr, "upgrading to %s\n", target)
	} else {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(stderr, "%s Upgrading to %s\n", cyan(sym.Arrow), cyan(target))
	}

	if err := runner.Run(ctx, target, stdout, stderr); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime,
			fmt.Sprintf("upgrade to %s failed", target))
	}
	return nil
}
