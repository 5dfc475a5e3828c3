package changelog

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// yamlResult is the document shape written by RenderYAML.
type yamlResult struct {
	Status   string    `yaml:"status"`
	Inverted bool      `yaml:"inverted,omitempty"`
	Sections []Section `yaml:"sections"`
}

// RenderYAML writes r as a YAML document for scripts.
func RenderYAML(w io.Writer, r Result) error {
	out := yamlResult{
		Status:   r.Status.String(),
		Inverted: r.Inverted,
		Sections: r.Sections,
	}
	if out.Sections == nil {
		out.Sections = []Section{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return enc.Close()
}

// RenderTable writes a table of sections with a one-line summary each.
func RenderTable(w io.Writer, sections []Section, plain bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Version", "Summary"})
	for i, s := range sections {
		label := s.Label
		if s.Malformed {
			label = "(malformed) " + label
		}
		t.AppendRow(table.Row{i + 1, label, Summary(s, 60)})
	}
	if plain {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleRounded)
	}
	t.Render()
}
