package phrasematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDict() *Dict {
	return NewDict([]Phrase{
		{Words: []string{"til", "dæmis"}, Payload: "e.g."},
		{Words: []string{"í", "dag"}, Payload: "today"},
		{Words: []string{"í", "gær"}, Payload: "yesterday"},
	})
}

func TestMatcherCompletesTwoWordPhrase(t *testing.T) {
	m := NewMatcher(sampleDict())

	extended, _, _, completed := m.Feed("til")
	assert.True(t, extended)
	assert.False(t, completed)

	extended, start, idx, completed := m.Feed("dæmis")
	assert.False(t, extended)
	assert.True(t, completed)
	assert.Equal(t, 0, start)
	assert.Equal(t, "e.g.", m.Payload(idx))
}

func TestMatcherDisambiguatesSharedPrefix(t *testing.T) {
	m := NewMatcher(sampleDict())

	extended, _, _, completed := m.Feed("í")
	assert.True(t, extended)
	assert.False(t, completed)

	_, _, idx, completed := m.Feed("gær")
	assert.True(t, completed)
	assert.Equal(t, "yesterday", m.Payload(idx))
}

func TestMatcherStartsPhraseAndReset(t *testing.T) {
	m := NewMatcher(sampleDict())
	assert.True(t, m.StartsPhrase("til"))
	assert.False(t, m.StartsPhrase("hestur"))

	m.Feed("til")
	assert.Equal(t, 1, m.QueueLen())
	m.Reset()
	assert.Equal(t, 0, m.QueueLen())
	assert.Empty(t, m.Queue())
}

func TestMatcherNonMatchDoesNotExtendQueue(t *testing.T) {
	m := NewMatcher(sampleDict())
	extended, _, _, completed := m.Feed("hestur")
	assert.False(t, extended)
	assert.False(t, completed)
	assert.Equal(t, 0, m.QueueLen(), "a word that neither extends nor starts a phrase is not queued")
}

func TestMatcherTracksShorterPhraseStartingMidQueue(t *testing.T) {
	// "a b c" and "b c" overlap: "b" both extends "a b c" and starts
	// "b c", and when both complete on "c" the longer phrase from queue
	// position 0 is the one reported.
	dict := NewDict([]Phrase{
		{Words: []string{"a", "b", "c"}, Payload: "long"},
		{Words: []string{"b", "c"}, Payload: "short"},
	})
	m := NewMatcher(dict)

	extended, _, _, completed := m.Feed("a")
	assert.True(t, extended)
	assert.False(t, completed)

	extended, _, _, completed = m.Feed("b")
	assert.True(t, extended)
	assert.False(t, completed)

	extended, start, idx, completed := m.Feed("c")
	assert.False(t, extended)
	assert.True(t, completed)
	assert.Equal(t, 0, start, "the longer phrase starting at position 0 wins the simultaneous completion")
	assert.Equal(t, "long", m.Payload(idx))
}

func TestMatcherCompletionTieBreaksDeterministically(t *testing.T) {
	// Two phrases of equal length both ending on the same word must
	// resolve to the same winner every time, never map iteration order.
	dict := NewDict([]Phrase{
		{Words: []string{"a"}, Payload: "first"},
		{Words: []string{"a"}, Payload: "second"},
	})
	for i := 0; i < 20; i++ {
		m := NewMatcher(dict)
		_, start, idx, completed := m.Feed("a")
		assert.True(t, completed)
		assert.Equal(t, 0, start)
		assert.Equal(t, "first", m.Payload(idx))
	}
}
