// package spotify adapts the upstream streaming service to
// the application's track model: it is the input boundary
// producing reference tracks, nothing more.
package spotify

import (
	"context"
	"strconv"

	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/entity/playlist"
	"github.com/zmb3/spotify/v2"
)

type Client struct {
	*spotify.Client
}

// Track resolves a single track identifier
func (client *Client) Track(ctx context.Context, id string) (*entity.Track, error) {
	full, err := client.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return nil, err
	}
	return fullTrack(full), nil
}

// Playlist enumerates a playlist into reference tracks,
// following pagination
func (client *Client) Playlist(ctx context.Context, id string) (*playlist.Playlist, error) {
	full, err := client.GetPlaylist(ctx, spotify.ID(id))
	if err != nil {
		return nil, err
	}

	result := &playlist.Playlist{
		ID:    string(full.ID),
		Name:  full.Name,
		Owner: full.Owner.DisplayName,
	}

	items, err := client.GetPlaylistItems(ctx, spotify.ID(id))
	if err != nil {
		return nil, err
	}
	for {
		for _, item := range items.Items {
			if item.Track.Track == nil {
				continue
			}
			result.Tracks = append(result.Tracks, fullTrack(item.Track.Track))
		}
		if err := client.NextPage(ctx, items); err == spotify.ErrNoMorePages {
			break
		} else if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Album enumerates an album into reference tracks
func (client *Client) Album(ctx context.Context, id string) ([]*entity.Track, error) {
	album, err := client.GetAlbum(ctx, spotify.ID(id))
	if err != nil {
		return nil, err
	}

	var tracks []*entity.Track
	for _, simple := range album.Tracks.Tracks {
		tracks = append(tracks, simpleTrack(&simple, album))
	}
	return tracks, nil
}

// Library enumerates the authenticated user's saved
// tracks, up to limit (everything when limit is 0)
func (client *Client) Library(ctx context.Context, limit int) ([]*entity.Track, error) {
	saved, err := client.CurrentUsersTracks(ctx)
	if err != nil {
		return nil, err
	}

	var tracks []*entity.Track
	for {
		for index := range saved.Tracks {
			if limit > 0 && len(tracks) >= limit {
				return tracks, nil
			}
			tracks = append(tracks, fullTrack(&saved.Tracks[index].FullTrack))
		}
		if err := client.NextPage(ctx, saved); err == spotify.ErrNoMorePages {
			break
		} else if err != nil {
			return nil, err
		}
	}
	return tracks, nil
}

func fullTrack(full *spotify.FullTrack) *entity.Track {
	track := &entity.Track{
		ID:       string(full.ID),
		Title:    full.Name,
		Album:    full.Album.Name,
		Duration: int(full.Duration / 1000),
		ISRC:     full.ExternalIDs["isrc"],
		Number:   int(full.TrackNumber),
		Year:     releaseYear(full.Album.ReleaseDate),
		Explicit: full.Explicit,
	}
	for _, artist := range full.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	if len(full.Album.Images) > 0 {
		track.Artwork.URL = full.Album.Images[0].URL
	}
	return track
}

func simpleTrack(simple *spotify.SimpleTrack, album *spotify.FullAlbum) *entity.Track {
	track := &entity.Track{
		ID:       string(simple.ID),
		Title:    simple.Name,
		Album:    album.Name,
		Duration: int(simple.Duration / 1000),
		Number:   int(simple.TrackNumber),
		Year:     releaseYear(album.ReleaseDate),
		Explicit: simple.Explicit,
	}
	for _, artist := range simple.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}
	if len(album.Images) > 0 {
		track.Artwork.URL = album.Images[0].URL
	}
	return track
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
