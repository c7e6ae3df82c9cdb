package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSentences(t *testing.T, toks []Token) []Token {
	t.Helper()
	out, err := Collect(NewParseSentences(FromSlice(toks)))
	require.NoError(t, err)
	return out
}

func TestParseSentencesWrapsSingleSentence(t *testing.T) {
	in := []Token{Word("Hæ", nil, nil), Punctuation(".", nil)}
	out := runSentences(t, in)
	require.Len(t, out, 4)
	assert.Equal(t, SBEGIN, out[0].Kind)
	assert.Equal(t, WORD, out[1].Kind)
	assert.Equal(t, PUNCTUATION, out[2].Kind)
	assert.Equal(t, SEND, out[3].Kind)
}

func TestParseSentencesAutoClosesAtEOF(t *testing.T) {
	in := []Token{Word("hestur", nil, nil)}
	out := runSentences(t, in)
	require.Len(t, out, 3)
	assert.Equal(t, SBEGIN, out[0].Kind)
	assert.Equal(t, WORD, out[1].Kind)
	assert.Equal(t, SEND, out[2].Kind)
}

func TestParseSentencesElidesEmptyParagraph(t *testing.T) {
	in := []Token{
		BeginParagraph(),
		EndParagraph(),
		Word("hestur", nil, nil),
	}
	out := runSentences(t, in)
	require.Len(t, out, 3, "empty P_BEGIN/P_END pair should be elided entirely")
	assert.Equal(t, SBEGIN, out[0].Kind)
	assert.Equal(t, WORD, out[1].Kind)
	assert.Equal(t, SEND, out[2].Kind)
}

func TestParseSentencesWrapsNonEmptyParagraph(t *testing.T) {
	in := []Token{
		BeginParagraph(),
		Word("hestur", nil, nil),
		Punctuation(".", nil),
		EndParagraph(),
	}
	out := runSentences(t, in)
	require.Len(t, out, 6)
	assert.Equal(t, PBEGIN, out[0].Kind)
	assert.Equal(t, SBEGIN, out[1].Kind)
	assert.Equal(t, SEND, out[4].Kind)
	assert.Equal(t, PEND, out[5].Kind)
}

func TestParseSentencesAbsorbsTrailingQuote(t *testing.T) {
	in := []Token{
		Word("hann", nil, nil),
		Punctuation(".", nil),
		Punctuation("\"", nil),
		Word("Næst", nil, nil),
	}
	out := runSentences(t, in)
	// SBEGIN hann . " SEND SBEGIN Næst SEND
	require.Len(t, out, 8)
	assert.Equal(t, PUNCTUATION, out[3].Kind)
	assert.Equal(t, "\"", out[3].Txt, "closing quote absorbed before SEND")
	assert.Equal(t, SEND, out[4].Kind)
	assert.Equal(t, SBEGIN, out[5].Kind)
}
