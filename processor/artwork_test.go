package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			canvas.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, canvas))
	return buffer.Bytes()
}

func TestArtworkShrinksOversizedImages(t *testing.T) {
	data, err := Artwork{}.Do(encodePNG(t, 1200, 800))
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, decoded.Bounds().Dx(), artworkBound)
	assert.LessOrEqual(t, decoded.Bounds().Dy(), artworkBound)
}

func TestArtworkKeepsSmallImages(t *testing.T) {
	data, err := Artwork{}.Do(encodePNG(t, 300, 300))
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 300, decoded.Bounds().Dx())
	assert.Equal(t, 300, decoded.Bounds().Dy())
}

func TestArtworkRejectsGarbage(t *testing.T) {
	_, err := Artwork{}.Do([]byte("not an image"))
	assert.Error(t, err)
}
