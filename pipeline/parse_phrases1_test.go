package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPhrases1(t *testing.T, toks []Token, lex Lexicon) []Token {
	t.Helper()
	out, err := Collect(NewParsePhrases1(FromSlice(toks), DefaultPhrases1Dict(), lex))
	require.NoError(t, err)
	return out
}

func TestParsePhrases1NumberWordChain(t *testing.T) {
	in := []Token{
		{Kind: NUMBER, Txt: "2", Number: NumberVal{Value: 2}},
		Word("hundrað", nil, nil),
	}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, NUMBER, out[0].Kind)
	assert.Equal(t, 200.0, out[0].Number.Value)
}

func TestParsePhrases1AmountAbbrev(t *testing.T) {
	in := []Token{
		{Kind: NUMBER, Txt: "5", Number: NumberVal{Value: 5}},
		Word("m.kr", nil, nil),
	}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, AMOUNT, out[0].Kind)
	assert.Equal(t, "ISK", out[0].Amount.ISO)
	assert.Equal(t, 5e6, out[0].Amount.Value)
}

func TestParsePhrases1FullDateTimeChain(t *testing.T) {
	in := []Token{
		{Kind: ORDINAL, Txt: "17.", Ordinal: 17},
		Word("júní", nil, nil),
		{Kind: NUMBER, Txt: "2024", Number: NumberVal{Value: 2024}},
		{Kind: TIME, Txt: "14:00", Time: TimeVal{14, 0, 0}},
	}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1, "day, month, year, and time should all fuse into one timestamp in a single pass")
	assert.Equal(t, TIMESTAMPABS, out[0].Kind)
	assert.Equal(t, TimestampVal{Y: 2024, Mo: 6, D: 17, H: 14, M: 0, S: 0}, out[0].Timestamp)
}

func TestParsePhrases1StandaloneMonthIsDaterel(t *testing.T) {
	in := []Token{Word("júní", nil, nil)}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, DATEREL, out[0].Kind)
	assert.Equal(t, DateVal{Y: 0, M: 6, D: 0}, out[0].Date)
}

func TestParsePhrases1MonthAndYear(t *testing.T) {
	in := []Token{
		Word("júní", nil, nil),
		{Kind: NUMBER, Txt: "2024", Number: NumberVal{Value: 2024}},
	}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, DATEREL, out[0].Kind, "day is still unknown, so the date stays relative")
	assert.Equal(t, DateVal{Y: 2024, M: 6, D: 0}, out[0].Date)
}

func TestParsePhrases1NationalityCurrency(t *testing.T) {
	in := []Token{Word("bandarísk", nil, nil), Word("dalur", nil, nil)}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, CURRENCY, out[0].Kind)
	assert.Equal(t, "USD", out[0].Currency.ISO)
}

func TestParsePhrases1CompositeHyphenWithOg(t *testing.T) {
	in := []Token{
		Word("stjórnskipunar", nil, nil),
		Punctuation("-", nil),
		Word("og", nil, nil),
		Word("eftirlitsnefnd", []Meaning{{Stem: "eftirlitsnefnd", Category: "kvk"}}, nil),
	}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "stjórnskipunar- og eftirlitsnefnd", out[0].Txt)
}

func TestParsePhrases1CompositeHyphenAdjPrefix(t *testing.T) {
	in := []Token{
		Word("hálf", nil, nil),
		Punctuation("-", nil),
		Word("opinberri", []Meaning{{Category: "lo"}}, nil),
	}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, "hálf-opinberri", out[0].Txt)
}

func TestParsePhrases1LeavesPlainWordAlone(t *testing.T) {
	in := []Token{Word("hestur", nil, nil)}
	out := runPhrases1(t, in, nil)
	require.Len(t, out, 1)
	assert.Equal(t, WORD, out[0].Kind)
	assert.Equal(t, "hestur", out[0].Txt)
}
