// package id3 wraps ID3v2 frame handling for the tags the
// application reads back (source identifiers) and writes
// (the full metadata set of a reference track).
package id3

import (
	"strconv"

	"github.com/bogem/id3v2/v2"
)

const (
	frameDescriptionSourceID  = "SOURCEID"
	frameDescriptionSourceURL = "SOURCEURL"
)

type Tag struct {
	*id3v2.Tag
}

func Open(path string, options ...id3v2.Options) (*Tag, error) {
	opts := id3v2.Options{Parse: true}
	if len(options) > 0 {
		opts = options[0]
	}

	tag, err := id3v2.Open(path, opts)
	if err != nil {
		return nil, err
	}
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return &Tag{tag}, nil
}

func (tag *Tag) userDefinedText(description string) string {
	for _, frame := range tag.GetFrames(tag.CommonID("User defined text information frame")) {
		text, ok := frame.(id3v2.UserDefinedTextFrame)
		if ok && text.Description == description {
			return text.Value
		}
	}
	return ""
}

func (tag *Tag) setUserDefinedText(description, value string) {
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       value,
	})
}

// SourceID returns the streaming-service track identifier
// previously embedded in the file, if any
func (tag *Tag) SourceID() string {
	return tag.userDefinedText(frameDescriptionSourceID)
}

func (tag *Tag) SetSourceID(id string) {
	tag.setUserDefinedText(frameDescriptionSourceID, id)
}

// SourceURL returns the upstream media URL the audio was
// downloaded from, if any
func (tag *Tag) SourceURL() string {
	return tag.userDefinedText(frameDescriptionSourceURL)
}

func (tag *Tag) SetSourceURL(url string) {
	tag.setUserDefinedText(frameDescriptionSourceURL, url)
}

func (tag *Tag) SetTrackNumber(number int) {
	tag.AddTextFrame(tag.CommonID("Track number/Position in set"),
		id3v2.EncodingUTF8, strconv.Itoa(number))
}

func (tag *Tag) SetYear(year int) {
	tag.AddTextFrame(tag.CommonID("Year"), id3v2.EncodingUTF8, strconv.Itoa(year))
}

func (tag *Tag) SetISRC(isrc string) {
	tag.AddTextFrame("TSRC", id3v2.EncodingUTF8, isrc)
}

// SetDuration embeds the track length, in milliseconds,
// as a TLEN frame
func (tag *Tag) SetDuration(seconds int) {
	tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, strconv.Itoa(seconds*1000))
}

func (tag *Tag) SetAttachedPicture(data []byte) {
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Front Cover",
		Picture:     data,
	})
}

func (tag *Tag) SetUnsynchronizedLyrics(lyrics string) {
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "eng",
		ContentDescriptor: "Lyrics",
		Lyrics:            lyrics,
	})
}
