package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/ppartarr/tunedeck/match"
	"github.com/ppartarr/tunedeck/util"
)

// settings gathers everything the sync run needs; the file
// is optional, flags override it, credentials may also come
// from the environment
type settings struct {
	Output           string  `toml:"output"`
	Concurrency      int     `toml:"concurrency"`
	Attempts         int     `toml:"attempts"`
	Timeout          string  `toml:"timeout"`
	Threshold        float64 `toml:"threshold"`
	PlaylistEncoding string  `toml:"playlist_encoding"`
	Lyrics           bool    `toml:"lyrics"`
	SpotifyID        string  `toml:"spotify_id"`
	SpotifySecret    string  `toml:"spotify_secret"`
}

func defaultSettings() settings {
	return settings{
		Output:           xdg.UserDirs.Music,
		Concurrency:      4,
		Attempts:         3,
		Timeout:          "10m",
		Threshold:        match.DefaultConfig().Threshold,
		PlaylistEncoding: "m3u",
	}
}

func defaultSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, "tunedeck", "tunedeck.toml")
}

// loadSettings layers the optional TOML file over the
// defaults; a missing file at the default location is fine,
// an explicitly requested one is not
func loadSettings(path string, explicit bool) (settings, error) {
	loaded := defaultSettings()

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return loaded, err
		}
		return withEnvCredentials(loaded), nil
	}
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return loaded, err
	}
	return withEnvCredentials(loaded), nil
}

func withEnvCredentials(loaded settings) settings {
	loaded.SpotifyID = util.First(os.Getenv("SPOTIFY_ID"), loaded.SpotifyID)
	loaded.SpotifySecret = util.First(os.Getenv("SPOTIFY_SECRET"), loaded.SpotifySecret)
	return loaded
}

func (loaded settings) timeout() time.Duration {
	timeout, err := time.ParseDuration(loaded.Timeout)
	if err != nil || timeout <= 0 {
		return 10 * time.Minute
	}
	return timeout
}

// httpClient bounds every scraping round trip (search,
// lyrics, artwork) so a hung response cannot stall a worker
func (loaded settings) httpClient() *http.Client {
	return &http.Client{Timeout: loaded.timeout()}
}

// resolveOutput anchors the output path before the process
// chdirs into it; a relative path would otherwise point
// inside itself afterwards
func resolveOutput(output string) string {
	if absolute, err := filepath.Abs(output); err == nil {
		return absolute
	}
	return output
}

func (loaded settings) matchConfig() match.Config {
	config := match.DefaultConfig()
	if loaded.Threshold > 0 {
		config.Threshold = loaded.Threshold
	}
	return config
}
