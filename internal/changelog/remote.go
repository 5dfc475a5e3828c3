package changelog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultRemoteTimeout is the default timeout for remote changelog fetches.
const DefaultRemoteTimeout = 5 * time.Second

// maxDocumentSize caps how much of a changelog is read from any source.
const maxDocumentSize = 10 << 20

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("changelog not found")

// ErrTooLarge is wrapped when a document exceeds maxDocumentSize.
var ErrTooLarge = fmt.Errorf("changelog exceeds %d bytes", maxDocumentSize)

// NotFoundError is returned when a changelog source is absent or unreachable.
type NotFoundError struct {
	Location string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("changelog not found at %s: %v", e.Location, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Source yields the raw text of a changelog document.
type Source interface {
	Fetch(ctx context.Context) (string, error)
	String() string
}

// HTTPSource fetches the changelog with a single GET request. It does not retry.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns an HTTPSource whose requests time out after timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch downloads the document. Any failure, including an oversized body, is
// reported as *NotFoundError.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &NotFoundError{Location: s.URL, Err: fmt.Errorf("making request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &NotFoundError{Location: s.URL, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := readDocument(resp.Body)
	if err != nil {
		return "", &NotFoundError{Location: s.URL, Err: fmt.Errorf("reading response: %w", err)}
	}
	return body, nil
}

// FileSource reads the changelog from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

// Fetch reads the file. A missing or unreadable file is a *NotFoundError.
func (s FileSource) Fetch(_ context.Context) (string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return "", &NotFoundError{Location: s.Path, Err: err}
	}
	defer f.Close()

	body, err := readDocument(f)
	if err != nil {
		return "", &NotFoundError{Location: s.Path, Err: err}
	}
	return body, nil
}

// readDocument reads r in full, failing with ErrTooLarge instead of
// returning a truncated document.
func readDocument(r io.Reader) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxDocumentSize {
		return "", ErrTooLarge
	}
	return string(body), nil
}

// FetchWithFallback fetches from primary and falls back to fallback on error.
// The boolean reports whether the document came from primary.
func FetchWithFallback(ctx context.Context, primary, fallback Source) (string, bool, error) {
	doc, err := primary.Fetch(ctx)
	if err == nil {
		return doc, true, nil
	}
	if fallback == nil {
		return "", false, err
	}

	doc, fbErr := fallback.Fetch(ctx)
	if fbErr != nil {
		return "", false, fmt.Errorf("%s failed (%v) and %s failed: %w", primary, err, fallback, fbErr)
	}
	return doc, false, nil
}
