package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/whatsnew/internal/config"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/ariel-frischer/whatsnew/internal/logging"
	"github.com/ariel-frischer/whatsnew/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugFlag  bool
	plainFlag  bool

	// appConfig is loaded once per invocation by the root PersistentPreRunE.
	appConfig *config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   "whatsnew",
	Short: "Show the release notes you gain by upgrading",
	Long: `whatsnew compares the installed version with the latest release and
prints every changelog section between the two, newest first.

The changelog is a Markdown document with one "## [x.y.z]" heading per release.`,
	Example: `  # Is there an update, and what does it bring?
  whatsnew check

  # Release notes between two versions of a local changelog
  whatsnew notes --from 1.0.0 --to 1.2.0 --file CHANGELOG.md`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: .whatsnew.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output without colors")

	rootCmd.AddCommand(checkCmd, notesCmd, sectionsCmd, upgradeCmd, versionCmd, configCmd)
}

// setupRun loads configuration and configures logging and colors.
func setupRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.InvalidConfig(err)
	}
	appConfig = cfg

	caps := progress.DetectTerminalCapabilities()
	if plainFlag {
		cfg.Plain = true
	}
	if cfg.Plain || !caps.SupportsColor {
		color.NoColor = true
	}

	logging.Setup(cmd.ErrOrStderr(), debugFlag || cfg.Debug, color.NoColor)
	return nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	reportError(os.Stderr, err)
	return err
}

// reportError prints err unless it only carries an exit code.
func reportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr, plainFlag || (appConfig != nil && appConfig.Plain))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
