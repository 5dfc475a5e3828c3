package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the whatsnew CLI.

// MissingVersionFlag creates an error for a required version flag left empty.
func MissingVersionFlag(flag string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("--%s is required", flag),
		"whatsnew notes --from <installed> --to <update>",
		"Pass both the installed version and the version you upgrade to",
		"Example: whatsnew notes --from 1.0.0 --to 1.2.0",
	)
}

// VersionNotFound creates an error for an update version absent from the changelog.
func VersionNotFound(version string, available []string) *CLIError {
	remediation := []string{"Versions are matched exactly: \"1.2\" does not match \"1.2.0\""}
	if len(available) > 0 {
		shown := available
		if len(shown) > 5 {
			shown = shown[:5]
		}
		remediation = append(remediation, "Available versions: "+strings.Join(shown, ", "))
	}
	return NewNotFoundError(
		fmt.Sprintf("version %q not found in changelog", version),
		remediation...,
	)
}

// ChangelogUnavailable creates an error for a changelog that could not be loaded.
func ChangelogUnavailable(location string, err error) *CLIError {
	return WrapWithMessage(err, Network,
		fmt.Sprintf("could not load changelog from %s", location),
		"Check your network connection",
		"Or point changelog_file at a local CHANGELOG.md",
	)
}

// InvalidConfig creates an error for configuration that failed to load.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check ~/.config/whatsnew/config.yml and .whatsnew.yml",
		"Run 'whatsnew config show' to inspect the resolved values",
	)
}

// UpgradeNotConfigured creates an error when no upgrade command is set.
func UpgradeNotConfigured() *CLIError {
	return NewConfigError(
		"no upgrade command configured",
		"Set upgrade_cmd in your config, e.g. upgrade_cmd: \"brew upgrade whatsnew\"",
		"Use {{VERSION}} to insert the target version",
	)
}
