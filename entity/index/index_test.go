package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/id3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	var (
		dir    = t.TempDir()
		tagged = filepath.Join(dir, "Ed Sheeran - Shape of You.mp3")
	)
	require.NoError(t, os.WriteFile(tagged, []byte("not really audio"), 0o644))
	require.NoError(t, id3.WriteTrack(tagged, &entity.Track{ID: "indexed-id", Title: "Shape of You"}, ""))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untagged.mp3"), []byte("junk"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("junk"), 0o644))

	built := New()
	require.NoError(t, built.Build(dir))

	assert.Equal(t, 1, built.Size())
	status, ok := built.Get(&entity.Track{ID: "indexed-id"})
	assert.True(t, ok)
	assert.Equal(t, Installed, status)
	assert.Equal(t, tagged, built.Path(&entity.Track{ID: "indexed-id"}))

	_, ok = built.Get(&entity.Track{ID: "unknown-id"})
	assert.False(t, ok)
}

func TestSetAndSize(t *testing.T) {
	built := New()
	built.Set(&entity.Track{ID: "one"}, Online)
	built.Set(&entity.Track{ID: "two"}, Installed)
	built.Set(&entity.Track{ID: "three"}, Installed)

	assert.Equal(t, 3, built.Size())
	assert.Equal(t, 2, built.Size(Installed))
	assert.Equal(t, 1, built.Size(Online))
}
