package playlist

import (
	"fmt"
	"os"

	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/util"
)

type Playlist struct {
	ID     string
	Name   string
	Owner  string
	Tracks []*entity.Track
}

// Encoder streams playlist entries to an m3u file next to
// the installed tracks
type Encoder struct {
	file *os.File
}

func (playlist *Playlist) Encoder(encoding string) (*Encoder, error) {
	if encoding != "m3u" {
		return nil, fmt.Errorf("unsupported playlist encoding: %s", encoding)
	}

	file, err := os.Create(util.LegalizeFilename(playlist.Name) + ".m3u")
	if err != nil {
		return nil, err
	}

	if _, err := fmt.Fprintln(file, "#EXTM3U"); err != nil {
		file.Close()
		return nil, err
	}
	return &Encoder{file}, nil
}

func (encoder *Encoder) Add(track *entity.Track) error {
	if _, err := fmt.Fprintf(encoder.file, "#EXTINF:%d,%s - %s\n%s\n",
		track.Duration, track.Artist(), track.Title, track.Path().Final()); err != nil {
		return err
	}
	return nil
}

func (encoder *Encoder) Close() error {
	return encoder.file.Close()
}
