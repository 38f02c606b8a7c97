package entity

import (
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestSong(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Shape of You", "Shape of You"},
		{"Shape of You - Acoustic", "Shape of You"},
		{"Shape of You (Acoustic)", "Shape of You"},
		{"Shape of You [Remastered]", "Shape of You"},
	}
	for _, test := range tests {
		track := &Track{Title: test.title}
		assert.Equal(t, test.expected, track.Song(), "title %q", test.title)
	}
}

func TestArtist(t *testing.T) {
	assert.Equal(t, "Ed Sheeran", (&Track{Artists: []string{"Ed Sheeran", "Somebody"}}).Artist())
	assert.Empty(t, (&Track{}).Artist())
}

func TestQuery(t *testing.T) {
	track := &Track{Title: "Shape of You", Artists: []string{"Ed Sheeran"}}
	assert.Equal(t, "Ed Sheeran - Shape of You", track.Query())
}

func TestPathFinal(t *testing.T) {
	assert.Equal(t, "Ed Sheeran - Shape of You.mp3",
		(&Track{Title: "Shape of You", Artists: []string{"Ed Sheeran"}}).Path().Final())

	assert.Equal(t, "Ed Sheeran - Shape of You (ft Mr X).mp3",
		(&Track{Title: "Shape of You", Artists: []string{"Ed Sheeran", "Mr. X"}}).Path().Final())

	assert.Equal(t, "Ed Sheeran - Shape of You (Acoustic).mp3",
		(&Track{Title: "Shape of You - Acoustic", Artists: []string{"Ed Sheeran"}}).Path().Final())
}

func TestPathCacheNames(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	xdg.Reload()

	track := &Track{ID: "4uLU6hMCjMI75M1A2tKUQC"}
	assert.Contains(t, track.Path().Fetch(), ".stream")
	assert.Contains(t, track.Path().Transcode(), ".mp3")
	assert.NotEqual(t, track.Path().Fetch(), track.Path().Transcode())
}
