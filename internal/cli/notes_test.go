package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	clierrors "github.com/ariel-frischer/whatsnew/internal/errors"
	"github.com/ariel-frischer/whatsnew/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExecuteNotes(t *testing.T) {
	t.Parallel()

	doc := testutil.Changelog("1.3.0", "1.2.0", "1.1.0", "1.0.0")

	tests := map[string]struct {
		req          notesRequest
		primary      changelog.Source
		wantContain  []string
		wantAbsent   []string
		wantCategory *clierrors.ErrorCategory
	}{
		"range between two versions": {
			req:         notesRequest{From: "1.1.0", To: "1.3.0", Format: "text", Plain: true},
			primary:     stubSource{doc: doc},
			wantContain: []string{"## [1.3.0]", "## [1.2.0]"},
			wantAbsent:  []string{"## [1.1.0]", "# Changelog"},
		},
		"from not in changelog runs to the end": {
			req:         notesRequest{From: "0.9.0", To: "1.1.0", Format: "text", Plain: true},
			primary:     stubSource{doc: doc},
			wantContain: []string{"## [1.1.0]", "## [1.0.0]"},
			wantAbsent:  []string{"## [1.2.0]"},
		},
		"same version yields one section": {
			req:         notesRequest{From: "1.2.0", To: "1.2.0", Format: "text", Plain: true},
			primary:     stubSource{doc: doc},
			wantContain: []string{"## [1.2.0]"},
			wantAbsent:  []string{"## [1.3.0]", "## [1.1.0]"},
		},
		"max limits output": {
			req:         notesRequest{From: "1.0.0", To: "1.3.0", Format: "text", Plain: true, MaxSections: 2},
			primary:     stubSource{doc: doc},
			wantContain: []string{"## [1.3.0]", "## [1.2.0]", "...and 1 more release(s)"},
			wantAbsent:  []string{"## [1.1.0]"},
		},
		"missing to flag": {
			req:          notesRequest{From: "1.0.0", Format: "text"},
			primary:      stubSource{doc: doc},
			wantCategory: categoryPtr(clierrors.Argument),
		},
		"unknown format": {
			req:          notesRequest{To: "1.0.0", Format: "json"},
			primary:      stubSource{doc: doc},
			wantCategory: categoryPtr(clierrors.Argument),
		},
		"update version not found": {
			req:          notesRequest{From: "1.0.0", To: "2.0.0", Format: "text"},
			primary:      stubSource{doc: doc},
			wantCategory: categoryPtr(clierrors.NotFound),
		},
		"document without sections": {
			req:          notesRequest{From: "1.0.0", To: "1.1.0", Format: "text"},
			primary:      stubSource{doc: "# Changelog\n\nNothing yet.\n"},
			wantCategory: categoryPtr(clierrors.NotFound),
		},
		"changelog unavailable": {
			req:          notesRequest{From: "1.0.0", To: "1.1.0", Format: "text"},
			primary:      stubSource{err: errors.New("offline")},
			wantCategory: categoryPtr(clierrors.Network),
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := executeNotes(context.Background(), &buf, tt.primary, nil, tt.req)
			if tt.wantCategory != nil {
				require.Error(t, err)
				cliErr := clierrors.AsCLIError(err)
				require.NotNil(t, cliErr)
				assert.Equal(t, *tt.wantCategory, cliErr.Category)
				assert.Empty(t, buf.String())
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, buf.String(), want)
			}
			for _, absent := range tt.wantAbsent {
				assert.NotContains(t, buf.String(), absent)
			}
		})
	}
}

func TestExecuteNotes_NotFoundListsVersions(t *testing.T) {
	t.Parallel()

	doc := testutil.Changelog("1.1.0", "1.0.0")
	err := executeNotes(context.Background(), &bytes.Buffer{}, stubSource{doc: doc}, nil,
		notesRequest{From: "1.0.0", To: "1.2", Format: "text"})
	require.Error(t, err)

	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Contains(t, cliErr.Remediation, "Available versions: 1.1.0, 1.0.0")
}

func TestExecuteNotes_YAML(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		to         string
		wantStatus string
		wantCount  int
	}{
		"found":     {to: "1.1.0", wantStatus: "found", wantCount: 1},
		"not found": {to: "3.0.0", wantStatus: "not-found", wantCount: 0},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := executeNotes(context.Background(), &buf, stubSource{doc: testutil.Changelog("1.1.0", "1.0.0")}, nil,
				notesRequest{From: "1.0.0", To: tt.to, Format: "yaml"})
			require.NoError(t, err)

			var out struct {
				Status   string `yaml:"status"`
				Sections []struct {
					Version string `yaml:"version"`
				} `yaml:"sections"`
			}
			require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Len(t, out.Sections, tt.wantCount)
		})
	}
}

func TestExecuteNotes_FileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(testutil.Changelog("2.0.0", "1.0.0")), 0o644))

	var buf bytes.Buffer
	err := executeNotes(context.Background(), &buf, changelog.FileSource{Path: path}, nil,
		notesRequest{From: "1.0.0", To: "2.0.0", Format: "text", Plain: true})
	require.NoError(t, err)
	assert.Equal(t, "## [2.0.0] - 2025-01-01\n\n### Added\n\n- Feature from 2.0.0\n", buf.String())
}

func categoryPtr(c clierrors.ErrorCategory) *clierrors.ErrorCategory {
	return &c
}
