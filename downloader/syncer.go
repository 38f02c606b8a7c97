package downloader

import (
	"context"

	"github.com/arunsworld/nursery"
	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/match"
	"github.com/ppartarr/tunedeck/util"
)

// Syncer fans a batch of reference tracks out over a
// bounded pool of workers, each running match + download
// for one track at a time. One track's failure never
// aborts the others.
type Syncer struct {
	matcher     *match.Matcher
	task        *Task
	concurrency int
}

func NewSyncer(matcher *match.Matcher, task *Task, concurrency int) *Syncer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Syncer{
		matcher:     matcher,
		task:        task,
		concurrency: concurrency,
	}
}

// Report aggregates a whole batch: every submitted track
// lands either in Outcomes or, after cancellation only, in
// NotStarted — never in both, never in neither.
type Report struct {
	Outcomes   []Outcome
	NotStarted []*entity.Track
}

func (report *Report) Count(status Status) int {
	counter := 0
	for _, outcome := range report.Outcomes {
		if outcome.Status == status {
			counter++
		}
	}
	return counter
}

// Failed reports whether any track ended in failure, the
// signal the process exit status is derived from
func (report *Report) Failed() bool {
	return report.Count(StatusFailed) > 0
}

// RunAll processes every track under the configured
// concurrency limit. Once ctx is canceled no new track is
// started; tracks already in flight finish (or abort at
// their next collaborator-call boundary) and their
// outcomes are preserved.
func (syncer *Syncer) RunAll(ctx context.Context, tracks []*entity.Track) *Report {
	var (
		jobs       = make(chan *entity.Track, len(tracks))
		results    = make(chan Outcome, len(tracks))
		notStarted = make(chan *entity.Track, len(tracks))
	)
	for _, track := range tracks {
		jobs <- track
	}
	close(jobs)

	worker := func(ctx context.Context, _ chan error) {
		for track := range jobs {
			if ctx.Err() != nil {
				notStarted <- track
				continue
			}
			results <- syncer.run(ctx, track)
		}
	}
	util.ErrSuppress(nursery.RunMultipleCopiesConcurrentlyWithContext(ctx, syncer.concurrency, worker))
	close(results)
	close(notStarted)

	report := &Report{}
	for outcome := range results {
		report.Outcomes = append(report.Outcomes, outcome)
	}
	for track := range notStarted {
		report.NotStarted = append(report.NotStarted, track)
	}
	return report
}

func (syncer *Syncer) run(ctx context.Context, track *entity.Track) Outcome {
	selection, attempts, err := syncer.matchWithRetry(ctx, track)
	if err != nil {
		return failed(track, ErrorKindFetch, "search failed: "+util.Excerpt(err.Error()), attempts)
	}
	return syncer.task.Run(ctx, track, selection)
}

// matchWithRetry applies the shared retry policy to the
// search round: transport failures there are as transient
// as fetch failures
func (syncer *Syncer) matchWithRetry(ctx context.Context, track *entity.Track) (match.Selection, int, error) {
	policy := syncer.task.Policy
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var (
		selection match.Selection
		err       error
	)
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		selection, err = syncer.matcher.Match(ctx, track)
		if err == nil {
			return selection, attempt, nil
		}
		if ctx.Err() != nil ||
			policy.Retryable == nil || !policy.Retryable(ErrorKindFetch) ||
			attempt == policy.MaxAttempts {
			return selection, attempt, err
		}
		if policy.Backoff != nil {
			if sleepErr := util.SleepContext(ctx, policy.Backoff(attempt)); sleepErr != nil {
				return selection, attempt, err
			}
		}
	}
	return selection, policy.MaxAttempts, err
}
