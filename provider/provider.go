// package provider abstracts the search side of download
// providers: given a free-text query, return the list of
// candidate media sources it yields.
package provider

import "context"

// Candidate is a single search result potentially matching
// a reference track. Fields are populated at the provider
// boundary and immutable afterwards.
type Candidate struct {
	ID       string // opaque source identifier
	URL      string // address usable to fetch the media
	Title    string // displayed title, free text
	Uploader string // displayed uploader/channel, free text
	Duration int    // in seconds, 0 when unknown
	Views    int    // popularity signal, 0 when unknown
	Official bool   // likely official/album upload
}

type Provider interface {
	// Search returns the candidates for the given query,
	// in provider ranking order; an empty result is not
	// an error
	Search(ctx context.Context, query string) ([]*Candidate, error)
}
