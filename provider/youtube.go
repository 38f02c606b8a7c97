package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	youTubeResultsURL = "https://www.youtube.com/results?search_query=%s"
	youTubeWatchURL   = "https://www.youtube.com/watch?v=%s"
	userAgent         = "Mozilla/5.0 (X11; Linux x86_64; rv:115.0) Gecko/20100101 Firefox/115.0"
)

// YouTube scrapes the public results page: candidate data
// lives in the ytInitialData blob embedded in a script tag.
type YouTube struct {
	client *http.Client
}

func NewYouTube(client *http.Client) *YouTube {
	if client == nil {
		client = http.DefaultClient
	}
	return &YouTube{client: client}
}

func (youtube *YouTube) Search(ctx context.Context, query string) ([]*Candidate, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf(youTubeResultsURL, url.QueryEscape(query)), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept-Language", "en")

	response, err := youtube.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube search: unexpected status %d", response.StatusCode)
	}

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	var payload string
	document.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		if data, ok := initialData(script.Text()); ok {
			payload = data
			return false
		}
		return true
	})
	if payload == "" {
		// no results section at all, not a transport failure
		return nil, nil
	}

	return parseInitialData(payload)
}

// initialData extracts the JSON blob assigned to the
// ytInitialData variable, when present in the script body
func initialData(script string) (string, bool) {
	const marker = "var ytInitialData = "

	index := strings.Index(script, marker)
	if index < 0 {
		return "", false
	}

	data := script[index+len(marker):]
	if end := strings.LastIndex(data, "};"); end >= 0 {
		data = data[:end+1]
	}
	data = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(data), ";"))
	if !strings.HasPrefix(data, "{") {
		return "", false
	}
	return data, true
}
