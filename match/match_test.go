package match

import (
	"context"
	"errors"
	"testing"

	"github.com/ppartarr/tunedeck/provider"
	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	results map[string][]*provider.Candidate
	err     error
	queries []string
}

func (fake *fakeProvider) Search(_ context.Context, query string) ([]*provider.Candidate, error) {
	fake.queries = append(fake.queries, query)
	if fake.err != nil {
		return nil, fake.err
	}
	return fake.results[query], nil
}

func TestMatchNoResults(t *testing.T) {
	matcher := New(&fakeProvider{}, DefaultConfig())
	selection, err := matcher.Match(context.Background(), testTrack())
	assert.NoError(t, err)
	assert.False(t, selection.Matched())
	assert.Equal(t, NoResults, selection.Reason)
}

func TestMatchBelowThreshold(t *testing.T) {
	track := testTrack()
	matcher := New(&fakeProvider{results: map[string][]*provider.Candidate{
		track.Query(): {{ID: "bad", Title: "Relaxing Rain Sounds 10 Hours", Duration: 36000}},
	}}, DefaultConfig())

	selection, err := matcher.Match(context.Background(), track)
	assert.NoError(t, err)
	assert.False(t, selection.Matched())
	assert.Equal(t, BelowThreshold, selection.Reason)
}

func TestMatchPicksBest(t *testing.T) {
	track := testTrack()
	matcher := New(&fakeProvider{results: map[string][]*provider.Candidate{
		track.Query(): {
			{ID: "karaoke", Title: "Shape of You (Karaoke Version)", Uploader: "Karaoke Planet", Duration: 233},
			{ID: "official", Title: "Ed Sheeran - Shape of You (Official Audio)", Uploader: "Ed Sheeran", Duration: 233, Official: true},
		},
	}}, DefaultConfig())

	selection, err := matcher.Match(context.Background(), track)
	assert.NoError(t, err)
	assert.True(t, selection.Matched())
	assert.Equal(t, "official", selection.Candidate.ID)
}

func TestMatchTransportError(t *testing.T) {
	matcher := New(&fakeProvider{err: errors.New("connection reset")}, DefaultConfig())
	_, err := matcher.Match(context.Background(), testTrack())
	assert.Error(t, err)
}

func TestMatchISRCShortcut(t *testing.T) {
	var (
		track    = testTrack()
		searcher = &fakeProvider{results: map[string][]*provider.Candidate{}}
	)
	track.ISRC = "GBAHS1600463"
	searcher.results[track.ISRC] = []*provider.Candidate{
		{ID: "isrc-hit", Title: "Shape of You", Duration: 232},
	}

	matcher := New(searcher, DefaultConfig())
	selection, err := matcher.Match(context.Background(), track)
	assert.NoError(t, err)
	assert.True(t, selection.Matched())
	assert.Equal(t, "isrc-hit", selection.Candidate.ID)
	// the shortcut avoids the free-text search round
	assert.Equal(t, []string{track.ISRC}, searcher.queries)
}

func TestMatchISRCRejectedOnDurationDrift(t *testing.T) {
	var (
		track    = testTrack()
		searcher = &fakeProvider{results: map[string][]*provider.Candidate{}}
	)
	track.ISRC = "GBAHS1600463"
	searcher.results[track.ISRC] = []*provider.Candidate{
		{ID: "drifted", Title: "Shape of You", Duration: 250},
	}
	searcher.results[track.Query()] = []*provider.Candidate{
		{ID: "proper", Title: "Ed Sheeran - Shape of You", Uploader: "Ed Sheeran", Duration: 233},
	}

	matcher := New(searcher, DefaultConfig())
	selection, err := matcher.Match(context.Background(), track)
	assert.NoError(t, err)
	assert.True(t, selection.Matched())
	assert.Equal(t, "proper", selection.Candidate.ID)
	assert.Equal(t, []string{track.ISRC, track.Query()}, searcher.queries)
}

func TestSelectTieBreakOfficial(t *testing.T) {
	var (
		track  = testTrack()
		config = DefaultConfig()
	)
	track.Duration = 0

	// with the bonus neutralized the totals tie exactly:
	// officiality itself must decide, not arrival order
	config.OfficialBonus = 0
	selection := New(&fakeProvider{}, config).Select(track, []*provider.Candidate{
		{ID: "first", Title: "Ed Sheeran - Shape of You", Duration: 233},
		{ID: "second", Title: "Ed Sheeran - Shape of You", Duration: 233, Official: true},
	})
	assert.Equal(t, "second", selection.Candidate.ID)
}

func TestSelectTieBreakKnownDuration(t *testing.T) {
	var (
		track   = testTrack()
		matcher = New(&fakeProvider{}, DefaultConfig())
	)
	track.Duration = 0

	selection := matcher.Select(track, []*provider.Candidate{
		{ID: "unknown", Title: "Ed Sheeran - Shape of You"},
		{ID: "known", Title: "Ed Sheeran - Shape of You", Duration: 233},
	})
	assert.Equal(t, "known", selection.Candidate.ID)
}

func TestSelectStable(t *testing.T) {
	var (
		track      = testTrack()
		matcher    = New(&fakeProvider{}, DefaultConfig())
		candidates = []*provider.Candidate{
			{ID: "one", Title: "Ed Sheeran - Shape of You", Duration: 233},
			{ID: "two", Title: "Ed Sheeran - Shape of You", Duration: 233},
			{ID: "three", Title: "Ed Sheeran - Shape of You", Duration: 233},
		}
		first = matcher.Select(track, candidates)
	)
	assert.Equal(t, "one", first.Candidate.ID)
	for counter := 0; counter < 10; counter++ {
		assert.Equal(t, first.Candidate.ID, matcher.Select(track, candidates).Candidate.ID)
	}
}

func TestDedupe(t *testing.T) {
	deduped := dedupe([]*provider.Candidate{
		{ID: "one"}, {ID: "two"}, {ID: "one"}, {ID: "three"}, {ID: "two"},
	})
	identifiers := make([]string, 0, len(deduped))
	for _, candidate := range deduped {
		identifiers = append(identifiers, candidate.ID)
	}
	assert.Equal(t, []string{"one", "two", "three"}, identifiers)
}
