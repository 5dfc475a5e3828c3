package changelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderYAML(&buf, Extract(fourReleases, "1.1.0", "1.3.0")))

	var got struct {
		Status   string `yaml:"status"`
		Sections []struct {
			Version string `yaml:"version"`
			Body    string `yaml:"body"`
		} `yaml:"sections"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "found", got.Status)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "1.3.0", got.Sections[0].Version)
	assert.Equal(t, "1.2.0", got.Sections[1].Version)
	assert.Equal(t, "## [1.2.0] (2024-03-01)\n### Fixed\n- Bug B", got.Sections[1].Body)
}

func TestRenderYAML_NotFound(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderYAML(&buf, Extract(fourReleases, "1.0.0", "9.0.0")))
	assert.Contains(t, buf.String(), "status: not-found")
	assert.Contains(t, buf.String(), "sections: []")
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	sections := ParseSections(fourReleases + "\n## [0.1.0 (broken)\n- old\n")

	var buf bytes.Buffer
	RenderTable(&buf, sections, true)

	out := buf.String()
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "1.3.0")
	assert.Contains(t, out, "Feature C")
	assert.Contains(t, out, "(malformed) 0.1.0 (broken)")
}
