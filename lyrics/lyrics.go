// package lyrics looks song texts up so they can be
// embedded next to the rest of the metadata; every failure
// here is strictly non-fatal to the download pipeline.
package lyrics

import (
	"context"

	"github.com/ppartarr/tunedeck/entity"
)

type Provider interface {
	// Search returns the lyrics for the given track, or an
	// empty string when none could be found
	Search(ctx context.Context, track *entity.Track) (string, error)
}
