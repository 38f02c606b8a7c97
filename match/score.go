package match

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ppartarr/tunedeck/entity"
	"github.com/ppartarr/tunedeck/provider"
)

// neutralArtistScore applies when the reference carries no
// artist information at all: unknown must not punish
const neutralArtistScore = 50

// Score is the confidence breakdown for a single
// (reference track, candidate) pair; Total lies in [0,100]
type Score struct {
	Title           float64
	Artist          float64
	DurationPenalty float64
	SourceBonus     float64
	Total           float64
}

type Scorer struct {
	config Config
}

func NewScorer(config Config) *Scorer {
	return &Scorer{config: config}
}

// Score rates how well candidate satisfies track. Pure and
// deterministic: identical inputs yield identical scores.
func (scorer *Scorer) Score(track *entity.Track, candidate *provider.Candidate) Score {
	var (
		title   = Normalize(candidate.Title)
		display = Normalize(candidate.Title + " " + candidate.Uploader)
		score   = Score{
			Title:           scorer.titleScore(track, title),
			Artist:          scorer.artistScore(track, title, display),
			DurationPenalty: scorer.durationPenalty(track, candidate),
		}
	)
	if candidate.Official {
		score.SourceBonus = scorer.config.OfficialBonus
	}

	base := (scorer.config.TitleWeight*score.Title + scorer.config.ArtistWeight*score.Artist) /
		(scorer.config.TitleWeight + scorer.config.ArtistWeight)
	score.Total = clamp(base-score.DurationPenalty+score.SourceBonus, 0, 100)
	return score
}

// titleScore compares the candidate display title against
// both the bare reference title and the "artist - title"
// form, keeping the best: uploads name tracks either way
func (scorer *Scorer) titleScore(track *entity.Track, title string) float64 {
	best := Similarity(Normalize(track.Title), title)
	if combined := Similarity(Normalize(track.Query()), title); combined > best {
		best = combined
	}
	if song := Similarity(Normalize(track.Song()), title); song > best {
		best = song
	}
	return best
}

// artistScore averages, over every reference artist, the
// best evidence that the artist appears in the candidate:
// token containment in the title or whole-string fuzzy
// similarity against title plus uploader
func (scorer *Scorer) artistScore(track *entity.Track, title, display string) float64 {
	if len(track.Artists) == 0 {
		return neutralArtistScore
	}

	total := 0.0
	for _, artist := range track.Artists {
		var (
			name = Normalize(artist)
			best = tokenContainment(name, title)
		)
		if containment := tokenContainment(name, display); containment > best {
			best = containment
		}
		if similarity := Similarity(name, display); similarity > best {
			best = similarity
		}
		total += best
	}
	return total / float64(len(track.Artists))
}

func (scorer *Scorer) durationPenalty(track *entity.Track, candidate *provider.Candidate) float64 {
	if track.Duration == 0 {
		return 0
	}
	if candidate.Duration == 0 {
		return scorer.config.UnknownDurationPenalty
	}

	delta := float64(track.Duration - candidate.Duration)
	if delta < 0 {
		delta = -delta
	}

	penalty := delta * scorer.config.DurationPenaltyPerSecond
	if penalty > scorer.config.DurationPenaltyCap {
		penalty = scorer.config.DurationPenaltyCap
	}
	return penalty
}

// Similarity is a 0-100 fuzzy ratio between two normalized
// strings, Levenshtein distance over their token-sorted
// forms so that word order does not matter
func Similarity(first, second string) float64 {
	first, second = tokenSort(first), tokenSort(second)
	if first == second {
		return 100
	}
	if first == "" || second == "" {
		return 0
	}

	var (
		distance = levenshtein.ComputeDistance(first, second)
		longest  = len([]rune(first))
	)
	if length := len([]rune(second)); length > longest {
		longest = length
	}
	return 100 * (1 - float64(distance)/float64(longest))
}

// tokenContainment is the share of name tokens present in
// the text, as a 0-100 score
func tokenContainment(name, text string) float64 {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return 0
	}

	var (
		present = make(map[string]struct{})
		found   = 0
	)
	for _, token := range strings.Fields(text) {
		present[token] = struct{}{}
	}
	for _, token := range tokens {
		if _, ok := present[token]; ok {
			found++
		}
	}
	return 100 * float64(found) / float64(len(tokens))
}

func clamp(value, lower, upper float64) float64 {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
