package config

import "time"

const (
	// DefaultChangelogURL is the published changelog of whatsnew itself.
	DefaultChangelogURL = "https://raw.githubusercontent.com/ariel-frischer/whatsnew/main/internal/changelog/CHANGELOG.md"
	// DefaultVersionURL is the GitHub latest-release endpoint for whatsnew.
	DefaultVersionURL = "https://api.github.com/repos/ariel-frischer/whatsnew/releases/latest"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# whatsnew configuration

changelog_url: ` + DefaultChangelogURL + `
changelog_file: ""                    # Read a local CHANGELOG.md instead of changelog_url
version_url: ` + DefaultVersionURL + `
timeout: 5s                           # Per-request timeout
plain: false                          # Plain output without colors
max_sections: 0                       # Releases shown by 'check' (0 = all)
upgrade_cmd: ""                       # e.g. "go install github.com/ariel-frischer/whatsnew/cmd/whatsnew@v{{VERSION}}"
debug: false                          # Debug logging on stderr
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_url":  DefaultChangelogURL,
		"changelog_file": "",
		"version_url":    DefaultVersionURL,
		"timeout":        (5 * time.Second).String(),
		"plain":          false,
		"max_sections":   0,
		"upgrade_cmd":    "",
		"debug":          false,
	}
}
