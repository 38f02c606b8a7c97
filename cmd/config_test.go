package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppartarr/tunedeck/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("SPOTIFY_ID", "")
	t.Setenv("SPOTIFY_SECRET", "")

	loaded, err := loadSettings(filepath.Join(t.TempDir(), "missing.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, defaultSettings().Concurrency, loaded.Concurrency)
	assert.Equal(t, "m3u", loaded.PlaylistEncoding)
	assert.Equal(t, 10*time.Minute, loaded.timeout())
}

func TestLoadSettingsMissingExplicitFile(t *testing.T) {
	_, err := loadSettings(filepath.Join(t.TempDir(), "missing.toml"), true)
	assert.Error(t, err)
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunedeck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
output = "/music"
concurrency = 8
attempts = 5
timeout = "30s"
threshold = 75.0
lyrics = true
spotify_id = "file-id"
`), 0o644))
	t.Setenv("SPOTIFY_ID", "env-id")
	t.Setenv("SPOTIFY_SECRET", "")

	loaded, err := loadSettings(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/music", loaded.Output)
	assert.Equal(t, 8, loaded.Concurrency)
	assert.Equal(t, 5, loaded.Attempts)
	assert.Equal(t, 30*time.Second, loaded.timeout())
	assert.True(t, loaded.Lyrics)
	// the environment wins over the file
	assert.Equal(t, "env-id", loaded.SpotifyID)
}

func TestMatchConfigThreshold(t *testing.T) {
	loaded := defaultSettings()
	loaded.Threshold = 75
	assert.Equal(t, 75.0, loaded.matchConfig().Threshold)

	loaded.Threshold = 0
	assert.Equal(t, match.DefaultConfig().Threshold, loaded.matchConfig().Threshold)
}

func TestTimeoutFallback(t *testing.T) {
	loaded := defaultSettings()
	loaded.Timeout = "bogus"
	assert.Equal(t, 10*time.Minute, loaded.timeout())
}

func TestHTTPClientIsBounded(t *testing.T) {
	loaded := defaultSettings()
	loaded.Timeout = "30s"
	assert.Equal(t, 30*time.Second, loaded.httpClient().Timeout)
}

func TestResolveOutput(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cwd, "music"), resolveOutput("music"))
	assert.Equal(t, "/music", resolveOutput("/music"))
}
