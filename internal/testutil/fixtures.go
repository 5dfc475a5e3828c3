package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// Changelog builds a Keep a Changelog style document with one section per
// version, in the order given (newest first). Each section has an "Added"
// entry naming its version, so tests can assert which sections were kept.
func Changelog(versions ...string) string {
	var sb strings.Builder
	sb.WriteString("# Changelog\n\nAll notable changes to this project are documented here.\n\n")
	for _, v := range versions {
		fmt.Fprintf(&sb, "## [%s] - 2025-01-01\n\n### Added\n\n- Feature from %s\n\n", v, v)
	}
	return sb.String()
}

// Server is an httptest server that counts requests.
type Server struct {
	*httptest.Server
	hits atomic.Int32
}

// Hits returns how many requests the server has answered.
func (s *Server) Hits() int {
	return int(s.hits.Load())
}

// NewDocumentServer serves body with status for every request.
func NewDocumentServer(t *testing.T, status int, body string) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

// NewReleaseServer answers like the GitHub latest-release API with tag.
func NewReleaseServer(t *testing.T, tag string) *Server {
	t.Helper()
	body, err := json.Marshal(map[string]string{"tag_name": tag})
	if err != nil {
		t.Fatalf("encoding release: %v", err)
	}
	return NewDocumentServer(t, http.StatusOK, string(body))
}
