package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gosimple/slug"
)

// brackets of any shape carry variant annotations (remix,
// live, lyric video, featuring credits), never the song
// name itself
var bracketed = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)

// tokens dropped after slugging: featuring credits appear
// with wildly inconsistent spellings across providers
var droppedTokens = map[string]struct{}{
	"feat":      {},
	"ft":        {},
	"featuring": {},
}

// Normalize canonicalizes free-text titles and artist
// names for comparison: lowercase, diacritics stripped,
// bracketed qualifiers removed, punctuation collapsed to
// single spaces. Pure and idempotent.
func Normalize(text string) string {
	text = bracketed.ReplaceAllString(text, " ")

	// slug.Make lowercases, transliterates diacritics and
	// turns every punctuation run into a single hyphen
	var kept []string
	for _, token := range strings.Split(slug.Make(text), "-") {
		if token == "" {
			continue
		}
		if _, dropped := droppedTokens[token]; dropped {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// tokenSort rebuilds a normalized string with its tokens
// in lexical order, making comparisons order-insensitive
func tokenSort(text string) string {
	tokens := strings.Fields(text)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
