package changelog

import (
	"context"
	_ "embed"
	"errors"
)

//go:embed CHANGELOG.md
var embeddedChangelog string

// Embedded returns the CHANGELOG.md compiled into the binary.
func Embedded() string {
	return embeddedChangelog
}

// EmbeddedSource serves the embedded changelog. It is used when the remote
// copy cannot be fetched; it only knows releases up to the running build.
type EmbeddedSource struct{}

func (EmbeddedSource) String() string { return "embedded changelog" }

// Fetch returns the embedded document, or a NotFoundError if the binary was
// built without it.
func (EmbeddedSource) Fetch(_ context.Context) (string, error) {
	if embeddedChangelog == "" {
		return "", &NotFoundError{
			Location: "embedded changelog",
			Err:      errors.New("binary was built without embedded content"),
		}
	}
	return embeddedChangelog, nil
}
