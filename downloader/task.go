package downloader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arunsworld/nursery"
	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/entity/index"
	"github.com/ppartarr/tunedeck/id3"
	"github.com/ppartarr/tunedeck/lyrics"
	"github.com/ppartarr/tunedeck/match"
	"github.com/ppartarr/tunedeck/processor"
	"github.com/ppartarr/tunedeck/provider"
	"github.com/ppartarr/tunedeck/util"
)

// minInstalledSize guards the already-exists shortcut
// against zero-byte leftovers of interrupted runs
const minInstalledSize = 32 * 1024

// Task is the per-track download pipeline. Collaborators
// are injected; the zero value is not usable.
type Task struct {
	Output     string
	Fetcher    Fetcher
	Transcoder Transcoder
	Tagger     Tagger
	Lyrics     lyrics.Provider // optional
	Index      *index.Index    // optional
	Policy     RetryPolicy
	Timeout    time.Duration // bounds the asset collection round
}

// Run drives track through fetch, transcode, asset
// collection, tagging and installation, retrying transient
// failures per the policy. It never returns an error: all
// failure paths resolve to a classified Outcome.
func (task *Task) Run(ctx context.Context, track *entity.Track, selection match.Selection) Outcome {
	if !selection.Matched() {
		return failed(track, ErrorKindNoMatch, string(selection.Reason), 0)
	}

	destination := filepath.Join(task.Output, track.Path().Final())
	if task.alreadyInstalled(track, destination) {
		return skipped(track, "already-exists")
	}

	policy := task.Policy
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		outcome := task.attempt(ctx, track, selection.Candidate, destination)
		outcome.Attempts = attempt

		if outcome.Status != StatusFailed ||
			policy.Retryable == nil || !policy.Retryable(outcome.Kind) ||
			attempt >= policy.MaxAttempts || ctx.Err() != nil {
			return outcome
		}
		if policy.Backoff != nil {
			if err := util.SleepContext(ctx, policy.Backoff(attempt)); err != nil {
				return outcome
			}
		}
	}
}

// attempt is a single pass over the pipeline; temporary
// files are removed on every exit path
func (task *Task) attempt(ctx context.Context, track *entity.Track, candidate *provider.Candidate, destination string) Outcome {
	if err := ctx.Err(); err != nil {
		return failed(track, ErrorKindFetch, "canceled before fetch: "+err.Error(), 0)
	}

	fetchPath := track.Path().Fetch()
	defer os.Remove(fetchPath)

	if err := task.Fetcher.Fetch(ctx, candidate.URL, fetchPath); err != nil {
		return failed(track, ErrorKindFetch, util.Excerpt(err.Error()), 0)
	}

	if err := ctx.Err(); err != nil {
		return failed(track, ErrorKindFetch, "canceled before transcode: "+err.Error(), 0)
	}

	transcodePath := track.Path().Transcode()
	defer os.Remove(transcodePath)

	if err := task.Transcoder.Transcode(ctx, fetchPath, transcodePath); err != nil {
		return failed(track, ErrorKindTranscode, util.Excerpt(err.Error()), 0)
	}

	tagged, warnings := task.collect(ctx, track)

	// a downloaded but unlabeled file beats no file at all:
	// tagging failure is recorded, never fatal
	if err := task.Tagger.Write(transcodePath, tagged, candidate.URL); err != nil {
		warnings = append(warnings, "tagging failed: "+util.Excerpt(err.Error()))
	}

	if err := util.FileMoveOrCopy(transcodePath, destination, true); err != nil {
		return failed(track, ErrorKindInstall, err.Error(), 0)
	}

	if task.Index != nil {
		task.Index.Set(track, index.Installed)
	}
	return success(track, destination, 0, warnings)
}

// collect pulls artwork and lyrics concurrently into a
// private copy of the track; both assets are best-effort
// and must not wedge the worker past the task timeout
func (task *Task) collect(ctx context.Context, track *entity.Track) (*entity.Track, []string) {
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	var (
		tagged   = *track
		mutex    sync.Mutex
		warnings []string
		jobs     []nursery.ConcurrentJob
	)

	warn := func(message string) {
		mutex.Lock()
		defer mutex.Unlock()
		warnings = append(warnings, message)
	}

	if track.Artwork.URL != "" {
		jobs = append(jobs, func(_ context.Context, _ chan error) {
			artwork := make(chan []byte, 1)
			defer close(artwork)
			if err := Download(ctx, track.Artwork.URL, track.Path().Artwork(), processor.Artwork{}, artwork); err != nil {
				warn("artwork failed: " + util.Excerpt(err.Error()))
				return
			}
			tagged.Artwork.Data = <-artwork
		})
	}

	if task.Lyrics != nil {
		jobs = append(jobs, func(_ context.Context, _ chan error) {
			text, err := task.Lyrics.Search(ctx, track)
			if err != nil {
				warn("lyrics failed: " + util.Excerpt(err.Error()))
				return
			}
			tagged.Lyrics = text
		})
	}

	if len(jobs) > 0 {
		util.ErrSuppress(nursery.RunConcurrently(jobs...))
	}
	return &tagged, warnings
}

// alreadyInstalled applies the skip heuristic: an indexed
// track, or a plausibly sized destination file whose
// embedded source identifier does not contradict the track
func (task *Task) alreadyInstalled(track *entity.Track, destination string) bool {
	if task.Index != nil {
		if status, ok := task.Index.Get(track); ok && status == index.Installed {
			return true
		}
	}

	info, err := os.Stat(destination)
	if err != nil || info.Size() < minInstalledSize {
		return false
	}

	tag, err := id3.Open(destination)
	if err != nil {
		// unreadable tags on a plausible file: trust the
		// size heuristic rather than re-fetch
		return true
	}
	defer tag.Close()

	id := tag.SourceID()
	return id == "" || id == track.ID
}
