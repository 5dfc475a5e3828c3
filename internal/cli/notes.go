package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	notesFromFlag   string
	notesToFlag     string
	notesFileFlag   string
	notesURLFlag    string
	notesFormatFlag string
	notesMaxFlag    int
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Print the release notes between two versions",
	Long: `Print every changelog section from --to (inclusive) down to --from
(exclusive), newest first.

Versions are matched exactly against the "## [x.y.z]" headings. When --from
is not in the changelog, everything from --to to the oldest release is shown.`,
	Example: `  # Notes for upgrading 1.0.0 -> 1.2.0 from a local file
  whatsnew notes --from 1.0.0 --to 1.2.0 --file CHANGELOG.md

  # From a remote changelog, as YAML
  whatsnew notes --from 1.0.0 --to 1.2.0 --url https://example.com/CHANGELOG.md --format yaml`,
	Args: cobra.NoArgs,
	RunE: runNotes,
}

func init() {
	notesCmd.Flags().StringVar(&notesFromFlag, "from", "", "Installed version (excluded)")
	notesCmd.Flags().StringVar(&notesToFlag, "to", "", "Version being upgraded to (included)")
	notesCmd.Flags().StringVarP(&notesFileFlag, "file", "f", "", "Read the changelog from a local file")
	notesCmd.Flags().StringVar(&notesURLFlag, "url", "", "Fetch the changelog from a URL")
	notesCmd.Flags().StringVarP(&notesFormatFlag, "format", "o", "text", "Output format: text | yaml")
	notesCmd.Flags().IntVar(&notesMaxFlag, "max", 0, "Show at most N releases (0 = all)")
	notesCmd.MarkFlagsMutuallyExclusive("file", "url")
}

// notesRequest is the parsed form of the notes command flags.
type notesRequest struct {
	From        string
	To          string
	Format      string
	Plain       bool
	MaxSections int
}

func runNotes(cmd *cobra.Command, _ []string) error {
	primary, fallback := changelogSources(appConfig, notesFileFlag, notesURLFlag)
	req := notesRequest{
		From:        notesFromFlag,
		To:          notesToFlag,
		Format:      notesFormatFlag,
		Plain:       appConfig.Plain,
		MaxSections: notesMaxFlag,
	}
	return executeNotes(cmd.Context(), cmd.OutOrStdout(), primary, fallback, req)
}

// executeNotes loads the changelog and writes the requested range to w.
func executeNotes(ctx context.Context, w io.Writer, primary, fallback changelog.Source, req notesRequest) error {
	if req.To == "" {
		return clierrors.MissingVersionFlag("to")
	}
	if req.Format != "text" && req.Format != "yaml" {
		return clierrors.NewArgumentError(
			fmt.Sprintf("unknown format %q", req.Format),
			"Use --format text or --format yaml",
		)
	}

	doc, _, err := changelog.FetchWithFallback(ctx, primary, fallback)
	if err != nil {
		return clierrors.ChangelogUnavailable(primary.String(), err)
	}

	result := changelog.Extract(doc, req.From, req.To)
	log.Debug().
		Str("from", req.From).
		Str("to", req.To).
		Str("status", result.Status.String()).
		Int("sections", len(result.Sections)).
		Msg("extracted release notes")

	if result.Inverted {
		log.Warn().Msgf("--from %s appears above --to %s in the changelog; arguments may be swapped", req.From, req.To)
	}

	if req.Format == "yaml" {
		return changelog.RenderYAML(w, result)
	}

	switch result.Status {
	case changelog.StatusNoSections:
		return clierrors.NewNotFoundError(
			fmt.Sprintf("no \"## [version]\" sections found in %s", primary),
			"Check that the file is a Markdown changelog",
		)
	case changelog.StatusNotFound:
		return clierrors.VersionNotFound(req.To, changelog.Versions(doc))
	}

	return changelog.Render(w, result, changelog.FormatOptions{
		Plain:       req.Plain,
		MaxSections: req.MaxSections,
	})
}
