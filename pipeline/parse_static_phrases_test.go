package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStaticPhrases(t *testing.T, toks []Token) []Token {
	t.Helper()
	out, err := Collect(NewParseStaticPhrases(FromSlice(toks), DefaultStaticPhrases(), false))
	require.NoError(t, err)
	return out
}

func TestParseStaticPhrasesFusesTwoWordPhrase(t *testing.T) {
	in := []Token{Word("í", nil, nil), Word("dag", nil, nil)}
	out := runStaticPhrases(t, in)
	require.Len(t, out, 1)
	assert.Equal(t, "í dag", out[0].Txt)
	assert.Len(t, out[0].Meanings, 1)
}

func TestParseStaticPhrasesFusesThreeWordPhrase(t *testing.T) {
	in := []Token{Word("þar", nil, nil), Word("að", nil, nil), Word("auki", nil, nil)}
	out := runStaticPhrases(t, in)
	require.Len(t, out, 1)
	assert.Equal(t, "þar að auki", out[0].Txt)
}

func TestParseStaticPhrasesRetriesAfterFailedExtension(t *testing.T) {
	in := []Token{Word("dag", nil, nil), Word("í", nil, nil), Word("dag", nil, nil)}
	out := runStaticPhrases(t, in)
	require.Len(t, out, 2)
	assert.Equal(t, "dag", out[0].Txt)
	assert.Equal(t, "í dag", out[1].Txt)
}

func TestParseStaticPhrasesFlushesOnNonWord(t *testing.T) {
	in := []Token{Word("í", nil, nil), Punctuation(",", nil), Word("dag", nil, nil)}
	out := runStaticPhrases(t, in)
	require.Len(t, out, 3, "the comma interrupts the in-progress match, leaving both words unfused")
	assert.Equal(t, "í", out[0].Txt)
	assert.Equal(t, PUNCTUATION, out[1].Kind)
	assert.Equal(t, "dag", out[2].Txt)
}
