// package match scores download candidates against the
// reference track they should satisfy and picks the best
// one, or none, under a fixed acceptance policy.
package match

// Config carries the scoring weights and the acceptance
// policy. The values are policy constants: they stay fixed
// across a release so that scores are reproducible.
type Config struct {
	// TitleWeight and ArtistWeight blend the two fuzzy
	// sub-scores; title similarity dominates
	TitleWeight  float64
	ArtistWeight float64

	// DurationPenaltyPerSecond grows the penalty linearly
	// with the duration delta, up to DurationPenaltyCap
	DurationPenaltyPerSecond float64
	DurationPenaltyCap       float64

	// UnknownDurationPenalty applies when the candidate
	// length is unknown: worse than a small mismatch,
	// better than a large one
	UnknownDurationPenalty float64

	// OfficialBonus rewards candidates flagged as likely
	// official/album uploads
	OfficialBonus float64

	// Threshold is the minimum total score a candidate
	// must reach to be accepted
	Threshold float64
}

func DefaultConfig() Config {
	return Config{
		TitleWeight:              0.6,
		ArtistWeight:             0.4,
		DurationPenaltyPerSecond: 2,
		DurationPenaltyCap:       30,
		UnknownDurationPenalty:   10,
		OfficialBonus:            5,
		Threshold:                60,
	}
}
