package id3

import (
	"strings"

	"github.com/ppartarr/tunedeck/entity"
)

// WriteTrack embeds the whole metadata set of the given
// reference track into the file at path, replacing any
// frames a previous run may have left behind.
func WriteTrack(path string, track *entity.Track, sourceURL string) error {
	tag, err := Open(path)
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.DeleteAllFrames()
	tag.SetTitle(track.Title)
	tag.SetArtist(strings.Join(track.Artists, ", "))
	tag.SetAlbum(track.Album)
	tag.SetSourceID(track.ID)
	tag.SetSourceURL(sourceURL)
	tag.SetDuration(track.Duration)
	if track.Number > 0 {
		tag.SetTrackNumber(track.Number)
	}
	if track.Year > 0 {
		tag.SetYear(track.Year)
	}
	if track.ISRC != "" {
		tag.SetISRC(track.ISRC)
	}
	if len(track.Artwork.Data) > 0 {
		tag.SetAttachedPicture(track.Artwork.Data)
	}
	if track.Lyrics != "" {
		tag.SetUnsynchronizedLyrics(track.Lyrics)
	}

	return tag.Save()
}
