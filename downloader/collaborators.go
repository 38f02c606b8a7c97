package downloader

import (
	"context"
	"time"

	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/id3"
	"github.com/ppartarr/tunedeck/util/cmd"
)

// Fetcher pulls the raw media stream behind a source URL
// into a local file
type Fetcher interface {
	Fetch(ctx context.Context, url, path string) error
}

// Transcoder converts a raw stream file into the target
// audio container
type Transcoder interface {
	Transcode(ctx context.Context, input, output string) error
}

// Tagger embeds the reference track metadata into the
// produced file
type Tagger interface {
	Write(path string, track *entity.Track, sourceURL string) error
}

// YouTubeDlFetcher shells out to yt-dlp, bounding every
// call with its own timeout
type YouTubeDlFetcher struct {
	Timeout time.Duration
}

func (fetcher YouTubeDlFetcher) Fetch(ctx context.Context, url, path string) error {
	if fetcher.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fetcher.Timeout)
		defer cancel()
	}
	return cmd.YouTubeDl(ctx, url, path)
}

// FFmpegTranscoder shells out to ffmpeg, bounding every
// call with its own timeout
type FFmpegTranscoder struct {
	Timeout time.Duration
}

func (transcoder FFmpegTranscoder) Transcode(ctx context.Context, input, output string) error {
	if transcoder.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, transcoder.Timeout)
		defer cancel()
	}
	return cmd.FFmpeg(ctx, input, output)
}

// ID3Tagger writes ID3v2 frames in place
type ID3Tagger struct{}

func (ID3Tagger) Write(path string, track *entity.Track, sourceURL string) error {
	return id3.WriteTrack(path, track, sourceURL)
}
