package provider

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type textRuns struct {
	Runs []struct {
		Text string `json:"text"`
	} `json:"runs"`
	SimpleText string `json:"simpleText"`
}

func (text textRuns) String() string {
	if text.SimpleText != "" {
		return text.SimpleText
	}

	var builder strings.Builder
	for _, run := range text.Runs {
		builder.WriteString(run.Text)
	}
	return builder.String()
}

type videoRenderer struct {
	VideoID       string   `json:"videoId"`
	Title         textRuns `json:"title"`
	OwnerText     textRuns `json:"ownerText"`
	LengthText    textRuns `json:"lengthText"`
	ViewCountText textRuns `json:"viewCountText"`
	OwnerBadges   []struct {
		MetadataBadgeRenderer struct {
			Style string `json:"style"`
		} `json:"metadataBadgeRenderer"`
	} `json:"ownerBadges"`
}

type searchData struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer struct {
							Contents []struct {
								VideoRenderer *videoRenderer `json:"videoRenderer"`
							} `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

func parseInitialData(payload string) ([]*Candidate, error) {
	var data searchData
	if err := json.UnmarshalFromString(payload, &data); err != nil {
		return nil, fmt.Errorf("youtube search: decoding results: %w", err)
	}

	var candidates []*Candidate
	for _, section := range data.Contents.TwoColumnSearchResultsRenderer.
		PrimaryContents.SectionListRenderer.Contents {
		for _, item := range section.ItemSectionRenderer.Contents {
			if item.VideoRenderer == nil {
				continue
			}
			if candidate := item.VideoRenderer.candidate(); candidate != nil {
				candidates = append(candidates, candidate)
			}
		}
	}
	return candidates, nil
}

func (renderer *videoRenderer) candidate() *Candidate {
	if renderer.VideoID == "" {
		return nil
	}

	uploader := renderer.OwnerText.String()
	return &Candidate{
		ID:       renderer.VideoID,
		URL:      fmt.Sprintf(youTubeWatchURL, renderer.VideoID),
		Title:    renderer.Title.String(),
		Uploader: uploader,
		Duration: ParseDuration(renderer.LengthText.String()),
		Views:    parseViews(renderer.ViewCountText.String()),
		Official: renderer.verifiedArtist() || OfficialUploader(uploader),
	}
}

func (renderer *videoRenderer) verifiedArtist() bool {
	for _, badge := range renderer.OwnerBadges {
		if badge.MetadataBadgeRenderer.Style == "BADGE_STYLE_TYPE_VERIFIED_ARTIST" {
			return true
		}
	}
	return false
}

// OfficialUploader reports whether the uploader name alone
// marks an official/album upload, i.e. auto-generated
// "Artist - Topic" channels and self-declared official ones
func OfficialUploader(uploader string) bool {
	lower := strings.ToLower(strings.TrimSpace(uploader))
	return strings.HasSuffix(lower, " - topic") ||
		strings.HasSuffix(lower, "official") ||
		strings.Contains(lower, "official channel")
}

// ParseDuration converts a clock-style length ("3:53",
// "1:02:33") into seconds, yielding 0 on anything else
func ParseDuration(length string) int {
	if length == "" {
		return 0
	}

	seconds, multiplier := 0, 1
	parts := strings.Split(length, ":")
	for index := len(parts) - 1; index >= 0; index-- {
		value, err := strconv.Atoi(strings.TrimSpace(parts[index]))
		if err != nil {
			return 0
		}
		seconds += value * multiplier
		multiplier *= 60
	}
	return seconds
}

func parseViews(text string) int {
	var digits strings.Builder
	for _, char := range text {
		if char >= '0' && char <= '9' {
			digits.WriteRune(char)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	views, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return views
}
