// package processor hosts post-download byte transforms
// applied to collected assets before they get embedded.
package processor

import (
	"bytes"
	"image"
	"image/jpeg"

	// register the decoders artwork CDNs actually serve
	_ "image/png"

	"github.com/nfnt/resize"
)

type Processor interface {
	Do(data []byte) ([]byte, error)
}

const (
	artworkBound       = 600
	artworkJPEGQuality = 90
)

// Artwork normalizes cover images to an embeddable JPEG
// bounded at 600x600, the usual front-cover size players
// cope well with
type Artwork struct{}

func (Artwork) Do(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var (
		thumbnail = resize.Thumbnail(artworkBound, artworkBound, decoded, resize.Lanczos3)
		buffer    bytes.Buffer
	)
	if err := jpeg.Encode(&buffer, thumbnail, &jpeg.Options{Quality: artworkJPEGQuality}); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
