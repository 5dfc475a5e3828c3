package update

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IsDevVersion reports whether version identifies a local development build.
func IsDevVersion(version string) bool {
	v := strings.TrimSpace(version)
	return v == "" || v == "dev" || v == "0.0.0-dev"
}

// CleanTag normalizes a release tag such as "v1.4.0" to "1.4.0".
// It returns ("", false) for dev builds and for tags that are not valid
// semantic versions, in which case no comparison should be attempted.
func CleanTag(tag string) (string, bool) {
	if IsDevVersion(tag) {
		return "", false
	}
	trimmed := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	if _, err := semver.NewVersion(trimmed); err != nil {
		return "", false
	}
	return trimmed, true
}
