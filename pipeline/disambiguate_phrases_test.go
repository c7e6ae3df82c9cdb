package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDisambiguate(t *testing.T, toks []Token) []Token {
	t.Helper()
	out, err := Collect(NewDisambiguatePhrases(FromSlice(toks), DefaultAmbiguousPhrases()))
	require.NoError(t, err)
	return out
}

func TestDisambiguatePhrasesPrunesToDeclaredCategory(t *testing.T) {
	in := []Token{
		Word("í", []Meaning{{Category: "fs"}, {Category: "ao"}}, nil),
		Word("stað", []Meaning{{Category: "kk"}, {Category: "hk"}}, nil),
	}
	out := runDisambiguate(t, in)
	require.Len(t, out, 2)
	require.Len(t, out[0].Meanings, 1)
	assert.Equal(t, "fs", out[0].Meanings[0].Category)
	require.Len(t, out[1].Meanings, 1)
	assert.Equal(t, "kk", out[1].Meanings[0].Category)
}

func TestDisambiguatePhrasesSynthesizesMissingPreposition(t *testing.T) {
	in := []Token{
		Word("í", []Meaning{{Category: "ao"}}, nil),
		Word("stað", []Meaning{{Category: "kk"}}, nil),
	}
	out := runDisambiguate(t, in)
	require.Len(t, out, 2)
	require.Len(t, out[0].Meanings, 1)
	assert.Equal(t, "fs", out[0].Meanings[0].Category)
	assert.Equal(t, "í", out[0].Meanings[0].Wordform)
}

func TestDisambiguatePhrasesLeavesUnmatchedWordsAlone(t *testing.T) {
	in := []Token{Word("hestur", []Meaning{{Category: "kk"}}, nil)}
	out := runDisambiguate(t, in)
	require.Len(t, out, 1)
	assert.Equal(t, "hestur", out[0].Txt)
	assert.Len(t, out[0].Meanings, 1)
}
