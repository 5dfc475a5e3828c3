package changelog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Fetch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		handler      http.HandlerFunc
		wantErr      bool
		wantNotFound bool
		wantErrMsg   string
	}{
		"successful fetch": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(fourReleases))
			},
		},
		"server error": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:      true,
			wantNotFound: true,
			wantErrMsg:   "unexpected status code: 500",
		},
		"not found": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantErr:      true,
			wantNotFound: true,
			wantErrMsg:   "unexpected status code: 404",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			doc, err := NewHTTPSource(server.URL, time.Second).Fetch(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNotFound, errors.Is(err, ErrNotFound))
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, fourReleases, doc)
		})
	}
}

func TestHTTPSource_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPSource(url, time.Second).Fetch(context.Background())
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, url, nf.Location)
}

func TestHTTPSource_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPSource(server.URL, time.Second).Fetch(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestFileSource_Fetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(fourReleases), 0o644))

	doc, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fourReleases, doc)

	_, err = FileSource{Path: filepath.Join(dir, "missing.md")}.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSources_RejectOversizedDocument(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		size    int
		wantErr bool
	}{
		"exactly at the limit": {size: maxDocumentSize},
		"one byte over":        {size: maxDocumentSize + 1, wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			body := strings.Repeat("x", tt.size)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(server.Close)

			path := filepath.Join(t.TempDir(), "CHANGELOG.md")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			sources := []Source{NewHTTPSource(server.URL, 10*time.Second), FileSource{Path: path}}
			for _, src := range sources {
				doc, err := src.Fetch(context.Background())
				if tt.wantErr {
					require.Error(t, err, src.String())
					assert.ErrorIs(t, err, ErrTooLarge, src.String())
					assert.ErrorIs(t, err, ErrNotFound, src.String())
					assert.Empty(t, doc)
					continue
				}
				require.NoError(t, err, src.String())
				assert.Len(t, doc, tt.size, src.String())
			}
		})
	}
}

type stubSource struct {
	doc string
	err error
}

func (s stubSource) Fetch(context.Context) (string, error) { return s.doc, s.err }
func (s stubSource) String() string                       { return "stub" }

func TestFetchWithFallback(t *testing.T) {
	t.Parallel()

	boom := &NotFoundError{Location: "remote", Err: errors.New("offline")}

	tests := map[string]struct {
		primary     Source
		fallback    Source
		wantDoc     string
		wantPrimary bool
		wantErr     bool
	}{
		"primary succeeds": {
			primary:     stubSource{doc: "remote"},
			fallback:    stubSource{doc: "local"},
			wantDoc:     "remote",
			wantPrimary: true,
		},
		"fallback used": {
			primary:  stubSource{err: boom},
			fallback: stubSource{doc: "local"},
			wantDoc:  "local",
		},
		"both fail": {
			primary:  stubSource{err: boom},
			fallback: stubSource{err: errors.New("also broken")},
			wantErr:  true,
		},
		"no fallback": {
			primary: stubSource{err: boom},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			doc, fromPrimary, err := FetchWithFallback(context.Background(), tt.primary, tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDoc, doc)
			assert.Equal(t, tt.wantPrimary, fromPrimary)
		})
	}
}
