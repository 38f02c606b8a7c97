package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ppartarr/tunedeck/downloader"
	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/entity/index"
	"github.com/ppartarr/tunedeck/entity/playlist"
	"github.com/ppartarr/tunedeck/lyrics"
	"github.com/ppartarr/tunedeck/match"
	"github.com/ppartarr/tunedeck/provider"
	"github.com/ppartarr/tunedeck/spotify"
	"github.com/ppartarr/tunedeck/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	cmdRoot.AddCommand(cmdSync())
}

func cmdSync() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "sync",
		Short:        "Synchronize collections",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				configPath   = util.ErrWrap(defaultSettingsPath())(cmd.Flags().GetString("config"))
				library      = util.ErrWrap(false)(cmd.Flags().GetBool("library"))
				libraryLimit = util.ErrWrap(0)(cmd.Flags().GetInt("library-limit"))
				playlists    = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("playlist"))
				albums       = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("album"))
				tracks       = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("track"))
			)

			loaded, err := loadSettings(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				loaded.Output = util.ErrWrap(loaded.Output)(cmd.Flags().GetString("output"))
			}
			if cmd.Flags().Changed("concurrency") {
				loaded.Concurrency = util.ErrWrap(loaded.Concurrency)(cmd.Flags().GetInt("concurrency"))
			}
			if cmd.Flags().Changed("lyrics") {
				loaded.Lyrics = util.ErrWrap(loaded.Lyrics)(cmd.Flags().GetBool("lyrics"))
			}
			if cmd.Flags().Changed("playlist-encoding") {
				loaded.PlaylistEncoding = util.ErrWrap(loaded.PlaylistEncoding)(cmd.Flags().GetString("playlist-encoding"))
			}

			loaded.Output = resolveOutput(loaded.Output)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := os.MkdirAll(loaded.Output, 0o755); err != nil {
				return err
			}
			// playlist files are emitted relative to the library root
			if err := os.Chdir(loaded.Output); err != nil {
				return err
			}

			tui.Lot("auth").Printf("authenticating")
			client, err := authenticate(ctx, loaded, library)
			if err != nil {
				return err
			}
			tui.Lot("auth").Close()

			indexData := index.New()
			tui.Lot("index").Printf("scanning")
			if err := indexData.Build(loaded.Output); err != nil {
				return err
			}
			tui.Lot("index").Close(strconv.Itoa(indexData.Size()) + " tracks")

			batch, mixes, err := fetch(ctx, client, library, libraryLimit, playlists, albums, tracks)
			if err != nil {
				return err
			}
			tui.Lot("fetch").Close(fmt.Sprintf("%d tracks", len(batch)))

			report := syncer(loaded, indexData).RunAll(ctx, batch)
			render(report)

			if err := mix(mixes, loaded.PlaylistEncoding, indexData); err != nil {
				return err
			}

			if count := len(report.NotStarted); count > 0 {
				return fmt.Errorf("interrupted with %d tracks not started", count)
			}
			if report.Failed() {
				return fmt.Errorf("%d tracks failed", report.Count(downloader.StatusFailed))
			}
			tui.Printf("synchronization complete")
			return nil
		},
		PreRun: func(cmd *cobra.Command, _ []string) {
			var (
				playlists = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("playlist"))
				albums    = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("album"))
				tracks    = util.ErrWrap([]string{})(cmd.Flags().GetStringArray("track"))
			)
			if len(playlists)+len(albums)+len(tracks) == 0 {
				cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
					if flag.Name == "library" {
						util.ErrSuppress(flag.Value.Set("true"))
					}
				})
			}
		},
	}
	cmd.Flags().StringP("output", "o", defaultSettings().Output, "Output synchronization path")
	cmd.Flags().StringP("config", "c", defaultSettingsPath(), "Configuration file path")
	cmd.Flags().Int("concurrency", defaultSettings().Concurrency, "Number of tracks to process in parallel")
	cmd.Flags().String("playlist-encoding", "m3u", "Playlist output files encoding")
	cmd.Flags().BoolP("library", "l", false, "Synchronize library (auto-enabled if no collection is supplied)")
	cmd.Flags().Int("library-limit", 0, "Number of tracks to fetch from library (unlimited if 0)")
	cmd.Flags().StringArrayP("playlist", "p", []string{}, "Synchronize playlist")
	cmd.Flags().StringArrayP("album", "a", []string{}, "Synchronize album")
	cmd.Flags().StringArrayP("track", "t", []string{}, "Synchronize track")
	cmd.Flags().BoolP("lyrics", "y", false, "Fetch and embed lyrics")
	return cmd
}

// authenticate picks the cheapest grant that can serve the
// run: the user library needs the authorization code flow,
// public collections get by on client credentials
func authenticate(ctx context.Context, loaded settings, library bool) (*spotify.Client, error) {
	if library {
		return spotify.AuthenticateUser(ctx, loaded.SpotifyID, loaded.SpotifySecret, func(url string) {
			tui.Printf("authorize via %s", url)
		})
	}
	return spotify.Authenticate(ctx, loaded.SpotifyID, loaded.SpotifySecret)
}

// fetch enumerates every requested collection into a single
// deduplicated batch, keeping playlists aside for the final
// mixing stage
func fetch(ctx context.Context, client *spotify.Client, library bool, libraryLimit int, playlists, albums, tracks []string) ([]*entity.Track, []*playlist.Playlist, error) {
	var (
		seen  = map[string]struct{}{}
		batch []*entity.Track
		mixes []*playlist.Playlist
	)
	add := func(track *entity.Track) {
		if _, duplicate := seen[track.ID]; duplicate {
			return
		}
		seen[track.ID] = struct{}{}
		batch = append(batch, track)
		tui.Lot("fetch").Printf("%s by %s", track.Title, track.Artist())
	}

	if library {
		tui.Lot("fetch").Printf("library")
		fetched, err := client.Library(ctx, libraryLimit)
		if err != nil {
			return nil, nil, err
		}
		for _, track := range fetched {
			add(track)
		}
	}
	for _, id := range albums {
		tui.Lot("fetch").Printf("album %s", id)
		fetched, err := client.Album(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		for _, track := range fetched {
			add(track)
		}
	}
	for _, id := range tracks {
		tui.Lot("fetch").Printf("track %s", id)
		fetched, err := client.Track(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		add(fetched)
	}
	for _, id := range playlists {
		tui.Lot("fetch").Printf("playlist %s", id)
		fetched, err := client.Playlist(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		for _, track := range fetched.Tracks {
			add(track)
		}
		mixes = append(mixes, fetched)
	}
	return batch, mixes, nil
}

func syncer(loaded settings, indexData *index.Index) *downloader.Syncer {
	policy := downloader.DefaultRetryPolicy()
	if loaded.Attempts > 0 {
		policy.MaxAttempts = loaded.Attempts
	}

	task := &downloader.Task{
		Output:     loaded.Output,
		Fetcher:    downloader.YouTubeDlFetcher{Timeout: loaded.timeout()},
		Transcoder: downloader.FFmpegTranscoder{Timeout: loaded.timeout()},
		Tagger:     downloader.ID3Tagger{},
		Index:      indexData,
		Policy:     policy,
		Timeout:    loaded.timeout(),
	}
	if loaded.Lyrics {
		task.Lyrics = lyrics.NewMusixmatch(loaded.httpClient())
	}

	matcher := match.New(provider.NewYouTube(loaded.httpClient()), loaded.matchConfig())
	return downloader.NewSyncer(matcher, task, loaded.Concurrency)
}

// render prints one permanent line per outcome plus the
// aggregate counters
func render(report *downloader.Report) {
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case downloader.StatusSuccess:
			tui.Printf("done %s by %s", outcome.Track.Title, outcome.Track.Artist())
		case downloader.StatusSkipped:
			tui.Printf("skip %s by %s (%s)", outcome.Track.Title, outcome.Track.Artist(), outcome.Reason)
		default:
			tui.AnchorPrintf("fail %s by %s: %s: %s",
				outcome.Track.Title, outcome.Track.Artist(), outcome.Kind, outcome.Reason)
		}
		for _, warning := range outcome.Warnings {
			tui.AnchorPrintf("warn %s by %s: %s", outcome.Track.Title, outcome.Track.Artist(), warning)
		}
	}
	tui.Printf("%d done, %d skipped, %d failed",
		report.Count(downloader.StatusSuccess),
		report.Count(downloader.StatusSkipped),
		report.Count(downloader.StatusFailed))
}

// mix emits a playlist file per requested playlist,
// referencing installed tracks only
func mix(mixes []*playlist.Playlist, encoding string, indexData *index.Index) error {
	for _, mixed := range mixes {
		tui.Lot("mix").Printf("%s", mixed.Name)
		encoder, err := mixed.Encoder(encoding)
		if err != nil {
			return err
		}

		for _, track := range mixed.Tracks {
			if status, ok := indexData.Get(track); !ok || status != index.Installed {
				continue
			}
			if err := encoder.Add(track); err != nil {
				util.ErrSuppress(encoder.Close())
				return err
			}
		}
		if err := encoder.Close(); err != nil {
			return err
		}
	}
	if len(mixes) > 0 {
		tui.Lot("mix").Close(fmt.Sprintf("%d playlists", len(mixes)))
	}
	return nil
}
