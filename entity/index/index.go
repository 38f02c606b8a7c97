// package index keeps track of which reference tracks are
// already satisfied by the local library, keyed on the
// source identifier embedded in each file's tags.
package index

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/id3"
)

type Status int

const (
	// Online means the track is known upstream only and
	// has to be downloaded
	Online Status = iota
	// Installed means a local file already carries the
	// track's source identifier
	Installed
)

type Index struct {
	mutex sync.RWMutex
	data  map[string]Status
	paths map[string]string
}

func New() *Index {
	return &Index{
		data:  map[string]Status{},
		paths: map[string]string{},
	}
}

// Build scans path for audio files carrying an embedded
// source identifier and marks those tracks as installed;
// unreadable files are skipped, not fatal
func (index *Index) Build(path string) error {
	return filepath.WalkDir(path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(path), "."+entity.TrackFormat) {
			return nil
		}

		tag, err := id3.Open(path)
		if err != nil {
			return nil
		}
		defer tag.Close()

		if id := tag.SourceID(); id != "" {
			index.mutex.Lock()
			index.data[id] = Installed
			index.paths[id] = path
			index.mutex.Unlock()
		}
		return nil
	})
}

func (index *Index) Get(track *entity.Track) (Status, bool) {
	index.mutex.RLock()
	defer index.mutex.RUnlock()
	status, ok := index.data[track.ID]
	return status, ok
}

func (index *Index) Set(track *entity.Track, status Status) {
	index.mutex.Lock()
	defer index.mutex.Unlock()
	index.data[track.ID] = status
}

// Path returns the local file previously indexed for the
// given track, if any
func (index *Index) Path(track *entity.Track) string {
	index.mutex.RLock()
	defer index.mutex.RUnlock()
	return index.paths[track.ID]
}

// Size counts the indexed tracks, optionally restricted
// to the given statuses
func (index *Index) Size(statuses ...Status) int {
	index.mutex.RLock()
	defer index.mutex.RUnlock()

	if len(statuses) == 0 {
		return len(index.data)
	}

	counter := 0
	for _, status := range index.data {
		for _, wanted := range statuses {
			if status == wanted {
				counter++
				break
			}
		}
	}
	return counter
}
