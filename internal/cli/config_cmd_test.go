package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/ariel-frischer/whatsnew/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testConfig() *config.Configuration {
	return &config.Configuration{
		ChangelogURL: config.DefaultChangelogURL,
		VersionURL:   config.DefaultVersionURL,
		Timeout:      3 * time.Second,
		Plain:        true,
		MaxSections:  5,
		UpgradeCmd:   "brew upgrade whatsnew",
	}
}

func TestShowConfig_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, testConfig(), "yaml"))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "3s", got["timeout"])
	assert.Equal(t, 5, got["max_sections"])
	assert.Equal(t, "brew upgrade whatsnew", got["upgrade_cmd"])
	assert.Equal(t, true, got["plain"])
	assert.Len(t, got, 8)
}

func TestShowConfig_YAMLKeyOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, testConfig(), "yaml"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("changelog_url: ")))
	assert.Contains(t, buf.String(), "changelog_url: "+config.DefaultChangelogURL)
}

func TestShowConfig_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, showConfig(&buf, testConfig(), "table"))
	for _, key := range []string{"KEY", "VALUE", "changelog_url", "version_url", "upgrade_cmd", "3s"} {
		assert.Contains(t, buf.String(), key)
	}
}

func TestShowConfig_UnknownFormat(t *testing.T) {
	t.Parallel()

	assert.Error(t, showConfig(&bytes.Buffer{}, testConfig(), "xml"))
}
