package pipeline

import (
	"context"
	"testing"

	"github.com/hagstofa/toknun/entitydb"
	"github.com/hagstofa/toknun/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRawTokenize(t *testing.T, text string) []Token {
	t.Helper()
	out, err := Collect(RawTokenize(text, false, DefaultDictionaries()))
	require.NoError(t, err)
	return out
}

func runTokenize(t *testing.T, text string, dict Dictionaries, lex Lexicon, db entitydb.Lookup) []Token {
	t.Helper()
	if lex == nil {
		lex = lexicon.NewMemoryLexicon(nil)
	}
	out, err := Collect(Tokenize(context.Background(), text, false, dict, lex, db, nil))
	require.NoError(t, err)
	return out
}

// assertWellFormedSentences checks the order-preservation and
// sentence-well-formedness invariants (spec.md §8): SBEGIN/SEND nest
// without overlap and every other token lies strictly between a pair.
func assertWellFormedSentences(t *testing.T, toks []Token) {
	t.Helper()
	depth := 0
	for i, tok := range toks {
		switch tok.Kind {
		case SBEGIN:
			require.Zero(t, depth, "nested SBEGIN at index %d", i)
			depth++
		case SEND:
			require.Equal(t, 1, depth, "unbalanced SEND at index %d", i)
			depth--
		default:
			assert.Equal(t, 1, depth, "token %d (%v %q) falls outside a sentence", i, tok.Kind, tok.Txt)
		}
	}
	require.Zero(t, depth, "stream ended mid-sentence")
}

func TestTokenizeSentenceWellFormedness(t *testing.T) {
	out := runRawTokenize(t, "Þetta er fyrsta setningin. Þetta er önnur setningin!")
	assertWellFormedSentences(t, out)
}

func TestTokenizeScenarioPersonName(t *testing.T) {
	lex := lexicon.NewMemoryLexicon([]Meaning{
		{Wordform: "Jón", Category: "ism", Inflection: "KK-NF-ET"},
		{Wordform: "keypti", Category: "so"},
		{Wordform: "bók", Category: "kvk"},
	})
	out := runTokenize(t, "Jón keypti bók.", DefaultDictionaries(), lex, nil)
	require.Len(t, out, 6)
	assert.Equal(t, SBEGIN, out[0].Kind)
	require.Equal(t, PERSON, out[1].Kind)
	assert.Equal(t, "Jón", out[1].Txt)
	assert.Equal(t, WORD, out[2].Kind)
	assert.Equal(t, "keypti", out[2].Txt)
	assert.Equal(t, WORD, out[3].Kind)
	assert.Equal(t, "bók", out[3].Txt)
	assert.Equal(t, PUNCTUATION, out[4].Kind)
	assert.Equal(t, SEND, out[5].Kind)
}

func TestTokenizeScenarioTimeExpression(t *testing.T) {
	out := runTokenize(t, "Fundurinn er kl. 8 á morgun.", DefaultDictionaries(), nil, nil)
	var clock *Token
	for i := range out {
		if out[i].Kind == TIME {
			clock = &out[i]
		}
	}
	require.NotNil(t, clock, "expected a fused TIME token among %v", out)
	assert.Equal(t, "kl. 8", clock.Txt)
	assert.Equal(t, TimeVal{H: 8}, clock.Time)
}

func TestTokenizeScenarioAmount(t *testing.T) {
	dict := DefaultDictionaries()
	dict.Names.CurrencyNouns["kr"] = "ISK"
	out := runTokenize(t, "Kostnaður var 1.234,56 kr.", dict, nil, nil)
	var amount *Token
	for i := range out {
		if out[i].Kind == AMOUNT {
			amount = &out[i]
		}
	}
	require.NotNil(t, amount, "expected a fused AMOUNT token among %v", out)
	assert.Equal(t, "ISK", amount.Amount.ISO)
	assert.InDelta(t, 1234.56, amount.Amount.Value, 0.001)
}

func TestTokenizeScenarioTimestamp(t *testing.T) {
	out := runTokenize(t, "10. janúar 2023 kl. 14:30", DefaultDictionaries(), nil, nil)
	require.Len(t, out, 3)
	assert.Equal(t, SBEGIN, out[0].Kind)
	assert.Equal(t, TIMESTAMPABS, out[1].Kind, "day+month+year and kl.+time must all fuse in a single pass")
	assert.Equal(t, TimestampVal{Y: 2023, Mo: 1, D: 10, H: 14, M: 30, S: 0}, out[1].Timestamp)
	assert.Equal(t, SEND, out[2].Kind)
}

func TestTokenizeScenarioLastnameResolvesToFullEntity(t *testing.T) {
	rows := []entitydb.Row{{Name: "Hillary Rodham Clinton", Verb: "er", Definition: "fyrrverandi utanríkisráðherra"}}
	db := entitydb.NewMemoryStore(rows)
	out := runTokenize(t, "Hillary Rodham Clinton sagði eitthvað. Clinton bætti við.", DefaultDictionaries(), nil, db)

	var firstMention, secondMention *Token
	for i := range out {
		if out[i].Kind == ENTITY && firstMention == nil {
			firstMention = &out[i]
			continue
		}
		if out[i].Kind == ENTITY {
			secondMention = &out[i]
		}
	}
	require.NotNil(t, firstMention)
	require.NotNil(t, secondMention)
	assert.Equal(t, "Hillary Rodham Clinton", firstMention.Txt)
	require.Len(t, firstMention.Entity, 1)
	assert.Equal(t, "fyrrverandi utanríkisráðherra", firstMention.Entity[0].Definition)
	assert.Equal(t, "Clinton", secondMention.Txt, "the later bare surname still surfaces with its own surface text")
}

func TestTokenizeScenarioOrdinalFromRomanNumeral(t *testing.T) {
	out := runRawTokenize(t, "Kafli IV. hefst hér.")
	require.Len(t, out, 7)
	assert.Equal(t, ORDINAL, out[2].Kind)
	assert.Equal(t, 4, out[2].Ordinal)
}
