// package downloader turns matched reference tracks into
// tagged audio files on disk: a per-track pipeline (fetch,
// transcode, collect, tag, install) and a bounded worker
// pool running many of them with per-track failure
// isolation.
package downloader

import "github.com/ppartarr/tunedeck/entity"

type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

func (status Status) String() string {
	switch status {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// ErrorKind classifies a failed outcome; only fetch
// failures are considered transient
type ErrorKind string

const (
	ErrorKindNoMatch   ErrorKind = "no-match"
	ErrorKindFetch     ErrorKind = "fetch-error"
	ErrorKindTranscode ErrorKind = "transcode-error"
	ErrorKindInstall   ErrorKind = "install-error"
)

// Outcome is the single, final verdict for one reference
// track: exactly one is produced per track the pipeline
// actually starts, whatever the collaborators do
type Outcome struct {
	Track    *entity.Track
	Status   Status
	Path     string    // installed file, set on success
	Reason   string    // human-readable explanation
	Kind     ErrorKind // set when Status is StatusFailed
	Attempts int       // pipeline attempts consumed
	Warnings []string  // non-fatal hiccups, e.g. tagging
}

func success(track *entity.Track, path string, attempts int, warnings []string) Outcome {
	return Outcome{
		Track:    track,
		Status:   StatusSuccess,
		Path:     path,
		Attempts: attempts,
		Warnings: warnings,
	}
}

func skipped(track *entity.Track, reason string) Outcome {
	return Outcome{Track: track, Status: StatusSkipped, Reason: reason}
}

func failed(track *entity.Track, kind ErrorKind, reason string, attempts int) Outcome {
	return Outcome{
		Track:    track,
		Status:   StatusFailed,
		Kind:     kind,
		Reason:   reason,
		Attempts: attempts,
	}
}
