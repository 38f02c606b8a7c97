package provider

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (roundTrip roundTripFunc) RoundTrip(request *http.Request) (*http.Response, error) {
	return roundTrip(request)
}

func resultsPage(body string) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})}
}

func TestSearch(t *testing.T) {
	youtube := NewYouTube(resultsPage(
		`<html><head><script>var ytInitialData = ` + samplePayload + `;</script></head><body></body></html>`))

	candidates, err := youtube.Search(context.Background(), "ed sheeran shape of you")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "abc123", candidates[0].ID)
	assert.Equal(t, "def456", candidates[1].ID)
}

func TestSearchNoPayload(t *testing.T) {
	youtube := NewYouTube(resultsPage(`<html><body>nothing here</body></html>`))

	candidates, err := youtube.Search(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Nil(t, candidates)
}

func TestSearchBadStatus(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	})}

	_, err := NewYouTube(client).Search(context.Background(), "anything")
	assert.Error(t, err)
}
