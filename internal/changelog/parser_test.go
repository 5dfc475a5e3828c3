package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourReleases = `# Changelog

All notable changes to this project will be documented in this file.

## [1.3.0] (2024-04-01)
### Added
- Feature C

## [1.2.0] (2024-03-01)
### Fixed
- Bug B

## [1.1.0] (2024-02-01)
- Change A

## [1.0.0] (2024-01-01)
- Initial release
`

func TestParseSections(t *testing.T) {
	t.Parallel()

	sections := ParseSections(fourReleases)
	require.Len(t, sections, 4)

	assert.Equal(t, []string{"1.3.0", "1.2.0", "1.1.0", "1.0.0"}, Result{Sections: sections}.Labels())
	assert.Equal(t, "## [1.3.0] (2024-04-01)\n### Added\n- Feature C", sections[0].Body)
	assert.Equal(t, "## [1.0.0] (2024-01-01)\n- Initial release", sections[3].Body)
	for _, s := range sections {
		assert.False(t, s.Malformed)
	}
}

func TestParseSections_EdgeCases(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc        string
		wantLabels []string
		wantBodies []string
		malformed  []bool
	}{
		"empty document": {
			doc: "",
		},
		"preamble only": {
			doc: "# Changelog\n\nNothing released yet.\n",
		},
		"marker at document start": {
			doc:        "## [2.0.0]\n- Big\n",
			wantLabels: []string{"2.0.0"},
			wantBodies: []string{"## [2.0.0]\n- Big"},
			malformed:  []bool{false},
		},
		"missing closing bracket": {
			doc:        "## [1.1.0] (d)\n- a\n\n## [1.0.0 (d)\n- b\n",
			wantLabels: []string{"1.1.0", "1.0.0 (d)"},
			wantBodies: []string{"## [1.1.0] (d)\n- a", "## [1.0.0 (d)\n- b"},
			malformed:  []bool{false, true},
		},
		"heading without brackets is body text": {
			doc:        "## [1.3.0] (d)\n- c\n\n## 1.2.0 (d)\n- b\n",
			wantLabels: []string{"1.3.0"},
			wantBodies: []string{"## [1.3.0] (d)\n- c\n\n## 1.2.0 (d)\n- b"},
			malformed:  []bool{false},
		},
		"deeper heading is not a marker": {
			doc:        "## [1.0.0]\n### [docs](https://example.com)\n- x\n",
			wantLabels: []string{"1.0.0"},
			wantBodies: []string{"## [1.0.0]\n### [docs](https://example.com)\n- x"},
			malformed:  []bool{false},
		},
		"marker mid-line is not a marker": {
			doc:        "## [1.0.0]\nsee ## [0.9.0] for details\n",
			wantLabels: []string{"1.0.0"},
			wantBodies: []string{"## [1.0.0]\nsee ## [0.9.0] for details"},
			malformed:  []bool{false},
		},
		"crlf line endings": {
			doc:        "intro\r\n## [1.0.0] (d)\r\n- x\r\n",
			wantLabels: []string{"1.0.0"},
			wantBodies: []string{"## [1.0.0] (d)\r\n- x"},
			malformed:  []bool{false},
		},
		"closing bracket only on a later line": {
			doc:        "## [1.0.0\n- see [link]\n",
			wantLabels: []string{"1.0.0"},
			wantBodies: []string{"## [1.0.0\n- see [link]"},
			malformed:  []bool{true},
		},
		"label is not normalized": {
			doc:        "## [ v1.0.0 ]\n",
			wantLabels: []string{" v1.0.0 "},
			wantBodies: []string{"## [ v1.0.0 ]"},
			malformed:  []bool{false},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sections := ParseSections(tt.doc)
			require.Len(t, sections, len(tt.wantLabels))
			for i, s := range sections {
				assert.Equal(t, tt.wantLabels[i], s.Label)
				assert.Equal(t, tt.wantBodies[i], s.Body)
				assert.Equal(t, tt.malformed[i], s.Malformed)
			}
		})
	}
}

func TestVersions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"1.3.0", "1.2.0", "1.1.0", "1.0.0"}, Versions(fourReleases))
	assert.Equal(t, []string{"1.1.0"}, Versions("## [1.1.0]\n## [1.0.0\n"))
	assert.Empty(t, Versions(""))
}

func TestContains(t *testing.T) {
	t.Parallel()

	assert.True(t, Contains(fourReleases, "1.2.0"))
	assert.False(t, Contains(fourReleases, "1.2"))
	assert.False(t, Contains(fourReleases, "v1.2.0"))
	assert.False(t, Contains(fourReleases, ""))
	assert.False(t, Contains("## [1.0.0 (d)\n", "1.0.0 (d)"))
}
