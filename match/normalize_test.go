package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Shape of You", "shape of you"},
		{"Shape of You [Official Video]", "shape of you"},
		{"Café (Live)", "cafe"},
		{"AC/DC", "ac dc"},
		{"Some Song (feat. Somebody)", "some song"},
		{"Some Song feat. Somebody", "some song somebody"},
		{"Song - Acoustic", "song acoustic"},
		{"  WILDEST   dreams  ", "wildest dreams"},
		{"", ""},
		{"(only brackets)", ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, Normalize(test.input), "input %q", test.input)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, input := range []string{
		"Shape of You [Official Video]",
		"Café (Live)",
		"Señorita ft. Somebody {Remix}",
		"plain words",
	} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100.0, Similarity("shape of you", "shape of you"))
	assert.Equal(t, 100.0, Similarity("of you shape", "shape of you"))
	assert.Equal(t, 0.0, Similarity("", "shape of you"))
	assert.Equal(t, 0.0, Similarity("shape of you", ""))

	partial := Similarity("shape of you", "shape of me")
	assert.Greater(t, partial, 0.0)
	assert.Less(t, partial, 100.0)
}
