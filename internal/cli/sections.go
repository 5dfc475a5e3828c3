package cli

import (
	"context"
	"io"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/spf13/cobra"
)

var (
	sectionsFileFlag string
	sectionsURLFlag  string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the releases found in a changelog",
	Long: `List every "## [version]" section of a changelog in document order.
Headings without a closing bracket are shown as malformed; they never match
a version in 'notes' or 'check'.`,
	Example: `  whatsnew sections --file CHANGELOG.md`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		primary, fallback := changelogSources(appConfig, sectionsFileFlag, sectionsURLFlag)
		return executeSections(cmd.Context(), cmd.OutOrStdout(), primary, fallback, appConfig.Plain)
	},
}

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsFileFlag, "file", "f", "", "Read the changelog from a local file")
	sectionsCmd.Flags().StringVar(&sectionsURLFlag, "url", "", "Fetch the changelog from a URL")
	sectionsCmd.MarkFlagsMutuallyExclusive("file", "url")
}

func executeSections(ctx context.Context, w io.Writer, primary, fallback changelog.Source, plain bool) error {
	doc, _, err := changelog.FetchWithFallback(ctx, primary, fallback)
	if err != nil {
		return clierrors.ChangelogUnavailable(primary.String(), err)
	}
	changelog.RenderTable(w, changelog.ParseSections(doc), plain)
	return nil
}
