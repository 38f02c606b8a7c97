package entity

import (
	"fmt"
	"path"
	"strings"

	"github.com/gosimple/slug"
	"github.com/ppartarr/tunedeck/util"
)

type Artwork struct {
	URL  string
	Data []byte
}

// Track is the canonical description of a song to be
// satisfied, as returned by the upstream streaming
// service; read-only once built.
type Track struct {
	ID       string
	Title    string
	Artists  []string // ordered, primary first
	Album    string
	Artwork  Artwork
	Duration int // in seconds
	ISRC     string
	Lyrics   string
	Number   int // track number within the album
	Year     int
	Explicit bool
}

type TrackPath struct {
	track *Track
}

const (
	TrackFormat   = "mp3"
	ArtworkFormat = "jpg"
)

// certain track titles include the variant description,
// this function aims to strip out that part:
// > Title: Name - Acoustic
// > Song:  Name
func (track *Track) Song() (song string) {
	song = track.Title
	song = strings.Split(song+" - ", " - ")[0]
	song = strings.Split(song+" (", " (")[0]
	song = strings.Split(song+" [", " [")[0]
	return
}

// Artist returns the primary artist name
func (track *Track) Artist() string {
	if len(track.Artists) == 0 {
		return ""
	}
	return track.Artists[0]
}

// Query returns the free-text search string used against
// download providers, i.e. "Artist - Title"
func (track *Track) Query() string {
	return fmt.Sprintf("%s - %s", track.Artist(), track.Title)
}

func (track *Track) Path() TrackPath {
	return TrackPath{track}
}

// Final is the track filename at its installation
// destination: "Artist - Title (ft Others).mp3"
func (trackPath TrackPath) Final() string {
	title := trackPath.track.Title
	if idx := strings.Index(title, " - "); idx > 0 {
		title = fmt.Sprintf("%s (%s)",
			strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:]))
	}

	if len(trackPath.track.Artists) > 1 {
		featuring := make([]string, 0, len(trackPath.track.Artists)-1)
		for _, artist := range trackPath.track.Artists[1:] {
			featuring = append(featuring, strings.ReplaceAll(artist, ".", ""))
		}
		title = fmt.Sprintf("%s (ft %s)", title, strings.Join(featuring, ", "))
	}

	artist := strings.ReplaceAll(trackPath.track.Artist(), ".", "")
	return util.LegalizeFilename(fmt.Sprintf("%s - %s.%s", artist, title, TrackFormat))
}

// Fetch is the cache path the raw upstream stream gets
// pulled to, before transcoding
func (trackPath TrackPath) Fetch() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.stream", slug.Make(trackPath.track.ID))),
	)
}

// Transcode is the cache path of the converted blob,
// before installation
func (trackPath TrackPath) Transcode() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", slug.Make(trackPath.track.ID), TrackFormat)),
	)
}

func (trackPath TrackPath) Artwork() string {
	return util.CacheFile(
		util.LegalizeFilename(fmt.Sprintf("%s.%s", slug.Make(path.Base(trackPath.track.Artwork.URL)), ArtworkFormat)),
	)
}
