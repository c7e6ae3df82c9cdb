package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hagstofa/toknun/pipeline"
)

func TestMemoryLexiconExactMatchWins(t *testing.T) {
	l := NewMemoryLexicon([]pipeline.Meaning{
		{Wordform: "Jón", Category: "ism"},
		{Wordform: "jón", Category: "kk"},
	})
	canonical, m, err := l.LookupWord("Jón", false, false)
	require.NoError(t, err)
	assert.Equal(t, "Jón", canonical)
	require.Len(t, m, 1)
	assert.Equal(t, "ism", m[0].Category)
}

func TestMemoryLexiconCaseInsensitiveFallback(t *testing.T) {
	l := NewMemoryLexicon([]pipeline.Meaning{{Wordform: "hestur", Category: "kk"}})
	canonical, m, err := l.LookupWord("Hestur", false, false)
	require.NoError(t, err)
	assert.Equal(t, "Hestur", canonical, "no exact entry: surface casing is preserved")
	require.Len(t, m, 1)
}

func TestMemoryLexiconPrefersCanonicalCasingAtSentenceStart(t *testing.T) {
	l := NewMemoryLexicon([]pipeline.Meaning{{Wordform: "Reykjavík", Category: "örn"}})
	canonical, m, err := l.LookupWord("reykjavík", true, false)
	require.NoError(t, err)
	assert.Equal(t, "Reykjavík", canonical, "sentence-initial lowercase lookup prefers the dictionary's capitalized entry")
	require.Len(t, m, 1)
}

func TestMemoryLexiconPrefersCanonicalCasingWithAutoUppercase(t *testing.T) {
	l := NewMemoryLexicon([]pipeline.Meaning{{Wordform: "Ísland", Category: "örn"}})
	canonical, _, err := l.LookupWord("ísland", false, true)
	require.NoError(t, err)
	assert.Equal(t, "Ísland", canonical)
}

func TestMemoryLexiconUnknownWordReturnsNoMeanings(t *testing.T) {
	l := NewMemoryLexicon(nil)
	canonical, m, err := l.LookupWord("blöðrusnigill", false, false)
	require.NoError(t, err)
	assert.Equal(t, "blöðrusnigill", canonical)
	assert.Nil(t, m)
}

func TestMemoryLexiconAddRegistersNewMeaning(t *testing.T) {
	l := NewMemoryLexicon(nil)
	l.Add(pipeline.Meaning{Wordform: "Vestur-Þýskaland", Category: "hk"})
	m, err := l.Meanings("Vestur-Þýskaland")
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Equal(t, "hk", m[0].Category)
}

func TestMemoryLexiconMeaningsIsCaseSensitiveExactMatch(t *testing.T) {
	l := NewMemoryLexicon([]pipeline.Meaning{{Wordform: "Vestur-Þýskaland", Category: "hk"}})
	m, err := l.Meanings("vestur-þýskaland")
	require.NoError(t, err)
	assert.Nil(t, m, "Meanings does no case folding")
}

func TestMemoryLexiconClose(t *testing.T) {
	l := NewMemoryLexicon(nil)
	require.NoError(t, l.Close())
	assert.True(t, l.closed)
}

func TestOpenLexiconReturnsReleaseFunc(t *testing.T) {
	l := NewMemoryLexicon(nil)
	lex, release := pipeline.OpenLexicon(l)
	assert.Same(t, pipeline.Lexicon(l), lex)
	assert.NoError(t, release())
	assert.True(t, l.closed)
}
