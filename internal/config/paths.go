package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/whatsnew/config.yml
// - macOS: ~/Library/Application Support/whatsnew/config.yml
// - Windows: %APPDATA%\whatsnew\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "whatsnew", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .whatsnew.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".whatsnew.yml"
}

// LegacyUserConfigPath returns the path to the legacy user-level JSON config file.
// This was the old location: ~/.whatsnew/config.json
func LegacyUserConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".whatsnew", "config.json"), nil
}
