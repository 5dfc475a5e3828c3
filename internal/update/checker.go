package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultHTTPTimeout bounds a single request to the version endpoint.
const DefaultHTTPTimeout = 5 * time.Second

// maxVersionBody caps how much of the version endpoint response is read.
const maxVersionBody = 1 << 20

// ErrNoRelease is returned when the version endpoint does not name a usable release.
var ErrNoRelease = errors.New("no releases found")

// UpdateCheck is the outcome of comparing the running version to the latest release.
type UpdateCheck struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

// Checker queries a remote endpoint for the latest published version.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a Checker for url whose requests time out after timeout.
func NewChecker(url string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &Checker{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// releasePayload covers the two JSON shapes seen in the wild: GitHub's
// latest-release API (tag_name) and package registries (version).
type releasePayload struct {
	TagName string `json:"tag_name"`
	Version string `json:"version"`
}

// LatestVersion fetches the latest published version. The endpoint may answer
// with a JSON object carrying tag_name or version, or with a plain-text body.
// The result is a cleaned tag without a "v" prefix.
func (c *Checker) LatestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("rate limit exceeded (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNoRelease
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionBody))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	raw := parseVersionBody(body)
	tag, ok := CleanTag(raw)
	if !ok {
		return "", fmt.Errorf("%w: unusable tag %q", ErrNoRelease, raw)
	}
	return tag, nil
}

func parseVersionBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var p releasePayload
		if err := json.Unmarshal([]byte(trimmed), &p); err == nil {
			if p.TagName != "" {
				return p.TagName
			}
			return p.Version
		}
	}
	return trimmed
}

// CheckForUpdate compares current against the latest published version.
// Dev builds never make a network call and never report an update.
func (c *Checker) CheckForUpdate(ctx context.Context, current string) (*UpdateCheck, error) {
	check := &UpdateCheck{CurrentVersion: current}
	if IsDevVersion(current) {
		return check, nil
	}

	latest, err := c.LatestVersion(ctx)
	if err != nil {
		return nil, err
	}
	check.LatestVersion = latest

	cur := strings.TrimPrefix(strings.TrimSpace(current), "v")
	check.UpdateAvailable = IsNewer(latest, cur)

	log.Debug().
		Str("current", cur).
		Str("latest", latest).
		Bool("update_available", check.UpdateAvailable).
		Msg("compared versions")

	return check, nil
}
