// whatsnew - show the release notes you gain by upgrading
// Source: https://github.com/ariel-frischer/whatsnew

// Package config provides hierarchical configuration management for whatsnew using koanf.
// Configuration is loaded with priority: environment variables > project config (.whatsnew.yml)
// > user config (~/.config/whatsnew/config.yml) > defaults. A legacy JSON user config
// (~/.whatsnew/config.json) is still read, with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix of every environment variable read by Load.
const envPrefix = "WHATSNEW_"

// Configuration represents the whatsnew CLI configuration.
type Configuration struct {
	// ChangelogURL is where the published CHANGELOG.md is fetched from.
	ChangelogURL string `koanf:"changelog_url" validate:"omitempty,url"`
	// ChangelogFile reads the changelog from a local file instead of ChangelogURL.
	ChangelogFile string `koanf:"changelog_file"`
	// VersionURL answers with the latest published version (GitHub latest-release
	// API, a registry document with a "version" field, or plain text).
	VersionURL string `koanf:"version_url" validate:"omitempty,url"`
	// Timeout bounds each remote request.
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
	Plain   bool          `koanf:"plain"`
	// MaxSections limits how many releases check prints (0 = all).
	MaxSections int `koanf:"max_sections" validate:"min=0,max=1000"`
	// UpgradeCmd is the package manager command run by 'whatsnew upgrade'.
	// {{VERSION}} is replaced with the target version.
	UpgradeCmd string `koanf:"upgrade_cmd"`
	Debug      bool   `koanf:"debug"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .whatsnew.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (for testing)
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
func loadUserConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath := customPath
	legacyUserPath := ""
	if userYAMLPath == "" {
		userYAMLPath, _ = UserConfigPath()
		legacyUserPath, _ = LegacyUserConfigPath()
	}

	switch {
	case fileExists(userYAMLPath):
		if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
			return fmt.Errorf("loading user YAML config: %w", err)
		}
	case fileExists(legacyUserPath):
		if err := k.Load(file.Provider(legacyUserPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy user config %s: %w", legacyUserPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyUserPath)
			fmt.Fprintf(warningWriter, "  Move its settings to %s (YAML).\n\n", userYAMLPath)
		}
	}
	return nil
}

// loadProjectConfig loads project-level config. customPath overrides the default
// location and must exist when given.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s does not exist", customPath)
		}
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "project"); err != nil {
		return fmt.Errorf("loading project YAML config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogFile = expandHomePath(cfg.ChangelogFile)
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: WHATSNEW_MAX_SECTIONS -> max_sections
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
