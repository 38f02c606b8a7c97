package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppartarr/tunedeck/entity"
)

const (
	musixmatchBaseURL   = "https://www.musixmatch.com"
	musixmatchSearchURL = musixmatchBaseURL + "/search/%s"
	userAgent           = "Mozilla/5.0 (X11; Linux x86_64; rv:115.0) Gecko/20100101 Firefox/115.0"
)

// Musixmatch scrapes the public search and lyrics pages
type Musixmatch struct {
	client *http.Client
}

func NewMusixmatch(client *http.Client) *Musixmatch {
	if client == nil {
		client = http.DefaultClient
	}
	return &Musixmatch{client: client}
}

func (musixmatch *Musixmatch) Search(ctx context.Context, track *entity.Track) (string, error) {
	query := fmt.Sprintf("%s - %s", track.Title, strings.Join(track.Artists, ", "))

	songPath, err := musixmatch.songPath(ctx, url.PathEscape(query))
	if err != nil || songPath == "" {
		return "", err
	}

	document, err := musixmatch.document(ctx, musixmatchBaseURL+songPath)
	if err != nil {
		return "", err
	}

	var paragraphs []string
	document.Find("p.mxm-lyrics__content").Each(func(_ int, paragraph *goquery.Selection) {
		paragraphs = append(paragraphs, paragraph.Text())
	})
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// songPath finds the first lyrics page link on the search
// results, falling back to the tracks-only results page
func (musixmatch *Musixmatch) songPath(ctx context.Context, query string) (string, error) {
	for _, path := range []string{query, query + "/tracks"} {
		document, err := musixmatch.document(ctx, fmt.Sprintf(musixmatchSearchURL, path))
		if err != nil {
			return "", err
		}

		if href, ok := document.Find("a[href^='/lyrics/']").First().Attr("href"); ok {
			return href, nil
		}
	}
	return "", nil
}

func (musixmatch *Musixmatch) document(ctx context.Context, address string) (*goquery.Document, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", userAgent)

	response, err := musixmatch.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("musixmatch: unexpected status %d", response.StatusCode)
	}
	return goquery.NewDocumentFromReader(response.Body)
}
