package match

import (
	"context"

	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/provider"
)

type NoMatchReason string

const (
	NoResults      NoMatchReason = "no-results"
	BelowThreshold NoMatchReason = "below-threshold"
)

// Selection is the single outcome of a matching attempt:
// either a candidate with its score, or a no-match reason
type Selection struct {
	Candidate *provider.Candidate
	Score     Score
	Reason    NoMatchReason
}

func (selection Selection) Matched() bool {
	return selection.Candidate != nil
}

// isrcDurationTolerance bounds the duration delta, in
// seconds, accepted on the ISRC shortcut
const isrcDurationTolerance = 3

type Matcher struct {
	provider provider.Provider
	scorer   *Scorer
	config   Config
}

func New(searcher provider.Provider, config Config) *Matcher {
	return &Matcher{
		provider: searcher,
		scorer:   NewScorer(config),
		config:   config,
	}
}

// Match resolves track to the best candidate the provider
// yields. The returned error covers transport failures
// only; every matching verdict, including failure to find
// anything acceptable, lands in the Selection.
func (matcher *Matcher) Match(ctx context.Context, track *entity.Track) (Selection, error) {
	var candidates []*provider.Candidate

	// an ISRC uniquely identifies the recording: a single,
	// tightly matching hit short-circuits the whole scoring
	// round
	if track.ISRC != "" {
		results, err := matcher.provider.Search(ctx, track.ISRC)
		if err != nil {
			return Selection{}, err
		}
		if len(results) == 1 && matcher.isrcHit(track, results[0]) {
			return Selection{Candidate: results[0], Score: matcher.scorer.Score(track, results[0])}, nil
		}
		candidates = results
	}

	results, err := matcher.provider.Search(ctx, track.Query())
	if err != nil {
		return Selection{}, err
	}
	candidates = dedupe(append(candidates, results...))

	return matcher.Select(track, candidates), nil
}

// Select scores the given candidates and applies the
// acceptance policy. Pure and deterministic: a fixed
// candidate ordering always yields the same selection.
func (matcher *Matcher) Select(track *entity.Track, candidates []*provider.Candidate) Selection {
	if len(candidates) == 0 {
		return Selection{Reason: NoResults}
	}

	var (
		best      *provider.Candidate
		bestScore Score
	)
	for _, candidate := range candidates {
		score := matcher.scorer.Score(track, candidate)
		if best == nil || score.Total > bestScore.Total ||
			(score.Total == bestScore.Total && preferable(candidate, best)) {
			best, bestScore = candidate, score
		}
	}

	if bestScore.Total < matcher.config.Threshold {
		return Selection{Reason: BelowThreshold}
	}
	return Selection{Candidate: best, Score: bestScore}
}

// preferable breaks score ties: official uploads first,
// then candidates with a known duration; first-seen order
// wins otherwise, keeping the selection stable
func preferable(challenger, incumbent *provider.Candidate) bool {
	if challenger.Official != incumbent.Official {
		return challenger.Official
	}
	if (challenger.Duration > 0) != (incumbent.Duration > 0) {
		return challenger.Duration > 0
	}
	return false
}

func (matcher *Matcher) isrcHit(track *entity.Track, candidate *provider.Candidate) bool {
	if Normalize(candidate.Title) != Normalize(track.Title) {
		return false
	}
	if candidate.Duration == 0 || track.Duration == 0 {
		return false
	}

	delta := track.Duration - candidate.Duration
	if delta < 0 {
		delta = -delta
	}
	return delta <= isrcDurationTolerance
}

// dedupe drops candidates already seen under the same
// source identifier, preserving first-seen order
func dedupe(candidates []*provider.Candidate) []*provider.Candidate {
	var (
		seen = make(map[string]struct{}, len(candidates))
		kept = make([]*provider.Candidate, 0, len(candidates))
	)
	for _, candidate := range candidates {
		if _, duplicate := seen[candidate.ID]; duplicate {
			continue
		}
		seen[candidate.ID] = struct{}{}
		kept = append(kept, candidate)
	}
	return kept
}
