package pipeline

import (
	"testing"

	"github.com/hagstofa/toknun/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAnnotate(t *testing.T, toks []Token, lex Lexicon) []Token {
	t.Helper()
	out, err := Collect(NewAnnotate(FromSlice(toks), lex, false))
	require.NoError(t, err)
	return out
}

func TestAnnotateAttachesMeanings(t *testing.T) {
	lex := lexicon.NewMemoryLexicon([]Meaning{
		{Stem: "hestur", Category: "kk", Wordform: "hestur"},
	})
	out := runAnnotate(t, []Token{Word("hestur", nil, nil)}, lex)
	require.Len(t, out, 1)
	require.Len(t, out[0].Meanings, 1)
	assert.Equal(t, "kk", out[0].Meanings[0].Category)
}

func TestAnnotateSkipsWordsWithExistingMeanings(t *testing.T) {
	lex := lexicon.NewMemoryLexicon(nil)
	existing := []Meaning{{Stem: "í dag", Category: "ao"}}
	out := runAnnotate(t, []Token{Word("í dag", existing, nil)}, lex)
	require.Len(t, out, 1)
	assert.Equal(t, existing, out[0].Meanings)
}

func TestAnnotatePrefersCanonicalCasingAtSentenceStart(t *testing.T) {
	lex := lexicon.NewMemoryLexicon([]Meaning{
		{Stem: "reykjavík", Category: "örnefni", Wordform: "Reykjavík"},
	})
	out := runAnnotate(t, []Token{
		{Kind: SBEGIN},
		Word("REYKJAVÍK", nil, nil),
	}, lex)
	require.Len(t, out, 2)
	assert.Equal(t, "Reykjavík", out[1].Txt)
}

func TestAnnotateLeavesUnknownWordUntouched(t *testing.T) {
	lex := lexicon.NewMemoryLexicon(nil)
	out := runAnnotate(t, []Token{Word("bleh", nil, nil)}, lex)
	require.Len(t, out, 1)
	assert.Equal(t, "bleh", out[0].Txt)
	assert.Empty(t, out[0].Meanings)
}

func TestAnnotatePassesNonWordThrough(t *testing.T) {
	lex := lexicon.NewMemoryLexicon(nil)
	out := runAnnotate(t, []Token{Punctuation(":", nil), Word("Næst", nil, nil)}, lex)
	require.Len(t, out, 2)
	assert.Equal(t, PUNCTUATION, out[0].Kind)
}
