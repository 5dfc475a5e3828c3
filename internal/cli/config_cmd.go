package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/whatsnew/internal/config"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configShowFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect whatsnew configuration",
	Long: `Inspect the resolved configuration.

Sources, lowest to highest priority: built-in defaults, user config
(~/.config/whatsnew/config.yml), project config (.whatsnew.yml or --config),
and WHATSNEW_* environment variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Example: `  whatsnew config show
  whatsnew config show --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showConfig(cmd.OutOrStdout(), appConfig, configShowFormat)
	},
}

var configTemplateCmd = &cobra.Command{
	Use:     "template",
	Short:   "Print a commented config file",
	Example: `  whatsnew config template > .whatsnew.yml`,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user: %s\n", userPath)
		fmt.Fprintf(out, "project: %s\n", config.ProjectConfigPath())
		return nil
	},
}

func init() {
	configShowCmd.Flags().StringVarP(&configShowFormat, "format", "o", "table", "Output format: table | yaml")
	configCmd.AddCommand(configShowCmd, configTemplateCmd, configPathCmd)
}

// configRow is one key/value line of `config show`.
type configRow struct {
	Key   string
	Value interface{}
}

func configRows(cfg *config.Configuration) []configRow {
	return []configRow{
		{"changelog_url", cfg.ChangelogURL},
		{"changelog_file", cfg.ChangelogFile},
		{"version_url", cfg.VersionURL},
		{"timeout", cfg.Timeout.String()},
		{"plain", cfg.Plain},
		{"max_sections", cfg.MaxSections},
		{"upgrade_cmd", cfg.UpgradeCmd},
		{"debug", cfg.Debug},
	}
}

// showConfig writes cfg as a table or as YAML.
func showConfig(w io.Writer, cfg *config.Configuration, format string) error {
	rows := configRows(cfg)

	switch format {
	case "yaml":
		node := yaml.Node{Kind: yaml.MappingNode}
		for _, row := range rows {
			var key, value yaml.Node
			if err := key.Encode(row.Key); err != nil {
				return err
			}
			if err := value.Encode(row.Value); err != nil {
				return err
			}
			node.Content = append(node.Content, &key, &value)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	case "table":
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Key", "Value"})
		for _, row := range rows {
			t.AppendRow(table.Row{row.Key, row.Value})
		}
		if cfg.Plain {
			t.SetStyle(table.StyleDefault)
		} else {
			t.SetStyle(table.StyleRounded)
		}
		t.Render()
		return nil
	default:
		return clierrors.NewArgumentError(
			fmt.Sprintf("unknown format %q", format),
			"Use --format table or --format yaml",
		)
	}
}
