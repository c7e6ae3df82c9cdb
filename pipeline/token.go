// Package pipeline implements the lazy, multi-stage token-stream
// tokenizer for Icelandic text.
package pipeline

import "fmt"

// Kind identifies the category of a Token. Values are stable and match
// the integer codes consumed by downstream systems.
type Kind int

const (
	PUNCTUATION  Kind = 1
	TIME         Kind = 2
	DATE         Kind = 3
	YEAR         Kind = 4
	NUMBER       Kind = 5
	WORD         Kind = 6
	TELNO        Kind = 7
	PERCENT      Kind = 8
	URL          Kind = 9
	ORDINAL      Kind = 10
	TIMESTAMP    Kind = 11
	CURRENCY     Kind = 12
	AMOUNT       Kind = 13
	PERSON       Kind = 14
	EMAIL        Kind = 15
	ENTITY       Kind = 16
	UNKNOWN      Kind = 17
	DATEABS      Kind = 18
	DATEREL      Kind = 19
	TIMESTAMPABS Kind = 20
	TIMESTAMPREL Kind = 21
	MEASUREMENT  Kind = 22

	PBEGIN Kind = 10001
	PEND   Kind = 10002
	SBEGIN Kind = 11001
	SEND   Kind = 11002
)

// String renders a human-readable kind name, mirroring TOK.descr in the
// source tokenizer.
func (k Kind) String() string {
	switch k {
	case PUNCTUATION:
		return "PUNCTUATION"
	case TIME:
		return "TIME"
	case DATE:
		return "DATE"
	case YEAR:
		return "YEAR"
	case NUMBER:
		return "NUMBER"
	case WORD:
		return "WORD"
	case TELNO:
		return "TELNO"
	case PERCENT:
		return "PERCENT"
	case URL:
		return "URL"
	case ORDINAL:
		return "ORDINAL"
	case TIMESTAMP:
		return "TIMESTAMP"
	case CURRENCY:
		return "CURRENCY"
	case AMOUNT:
		return "AMOUNT"
	case PERSON:
		return "PERSON"
	case EMAIL:
		return "EMAIL"
	case ENTITY:
		return "ENTITY"
	case UNKNOWN:
		return "UNKNOWN"
	case DATEABS:
		return "DATEABS"
	case DATEREL:
		return "DATEREL"
	case TIMESTAMPABS:
		return "TIMESTAMPABS"
	case TIMESTAMPREL:
		return "TIMESTAMPREL"
	case MEASUREMENT:
		return "MEASUREMENT"
	case PBEGIN:
		return "P_BEGIN"
	case PEND:
		return "P_END"
	case SBEGIN:
		return "S_BEGIN"
	case SEND:
		return "S_END"
	default:
		return "UNKNOWN"
	}
}

// SpacingClass classifies punctuation for the spacing matrix (§6).
type SpacingClass int

const (
	SpacingNone SpacingClass = iota
	SpacingLeft
	SpacingCenter
	SpacingRight
	SpacingWord
)

// Meaning is a single lexical interpretation of a word, as returned by a
// Lexicon. Field names mirror the BIN tuple: stem, utg, category, class,
// wordform, inflection.
type Meaning struct {
	Stem       string // stofn
	Utg        int    // unique identifier within the lexicon
	Category   string // ordfl: kk, kvk, hk, lo, to, töl, fs, ism, föð, móð, nafn, ao, ob, ...
	Class      string // fl: finer-grained subclass
	Wordform   string // orðmynd: the inflected surface form
	Inflection string // beyging: uppercase, dash-joined inflection code, e.g. "KK-NF-ET" for singular; case markers are NF/ÞF/ÞGF/EF
}

// PersonName is a single (name, gender, case) candidate carried by a
// PERSON token. Gender and case may be empty, meaning "unspecified".
type PersonName struct {
	Name   string
	Gender string // kk, kvk, hk, or "" if unspecified
	Case   string // nf, þf, þgf, ef, or "" if unspecified
}

// Compatible reports whether a following candidate np may extend p,
// per the PersonName invariants in spec.md §3.
func (p PersonName) Compatible(np PersonName) bool {
	if np.Gender != "" && p.Gender != "" && np.Gender != p.Gender {
		return false
	}
	if np.Case != "" && p.Case != "" && np.Case != p.Case {
		return false
	}
	return true
}

// TimeVal is the (h, m, s) payload of a TIME token.
type TimeVal struct{ H, M, S int }

// DateVal is the (y, m, d) payload of DATE/DATEABS/DATEREL tokens.
// A zero component means "unknown".
type DateVal struct{ Y, M, D int }

// TimestampVal is the (y, mo, d, h, m, s) payload of TIMESTAMP family tokens.
type TimestampVal struct{ Y, Mo, D, H, M, S int }

// NumberVal is the payload of a NUMBER token.
type NumberVal struct {
	Value   float64
	Cases   []string
	Genders []string
}

// CurrencyVal is the payload of a CURRENCY token.
type CurrencyVal struct {
	ISO     string
	Cases   []string
	Genders []string
}

// AmountVal is the payload of an AMOUNT token.
type AmountVal struct {
	Value   float64
	ISO     string
	Cases   []string
	Genders []string
}

// MeasurementVal is the payload of a MEASUREMENT token. UnitClass is one
// of A (area), T (time), L (length), C (temperature), W (weight), V (volume).
type MeasurementVal struct {
	UnitClass string
	Value     float64
}

// PercentVal is the payload of a PERCENT token.
type PercentVal struct {
	Value   float64
	Cases   []string
	Genders []string
}

// SentenceVal carries the placeholders an S_BEGIN token accumulates.
type SentenceVal struct {
	NumParses int
	ErrIndex  int
}

// Token is a tagged record flowing through the pipeline. Only the field
// matching Kind is meaningful; the others are left at their zero value.
// error is never dropped across fusions: CompoundError concatenates it.
type Token struct {
	Kind Kind
	Txt  string
	Err  []int

	Time        TimeVal
	Date        DateVal
	Timestamp   TimestampVal
	Year        int
	Number      NumberVal
	Currency    CurrencyVal
	Amount      AmountVal
	Measurement MeasurementVal
	Percent     PercentVal
	Ordinal     int
	Meanings    []Meaning
	Person      []PersonName
	Entity      []EntityDef
	Spacing     SpacingClass
	Sentence    SentenceVal
}

// EntityDef is a single definition row for an ENTITY token, copied from
// the entity-store row the match completed on.
type EntityDef struct {
	Name       string
	Verb       string
	Definition string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Txt)
}

// Word constructs a WORD token.
func Word(txt string, meanings []Meaning, err []int) Token {
	return Token{Kind: WORD, Txt: txt, Meanings: meanings, Err: err}
}

// Punctuation constructs a PUNCTUATION token, inferring its spacing class.
func Punctuation(txt string, err []int) Token {
	return Token{Kind: PUNCTUATION, Txt: txt, Spacing: ClassifyPunctuation(txt), Err: err}
}

// Unknown constructs an UNKNOWN token.
func Unknown(txt string, err []int) Token {
	return Token{Kind: UNKNOWN, Txt: txt, Err: err}
}

// BeginParagraph constructs a P_BEGIN delimiter.
func BeginParagraph() Token { return Token{Kind: PBEGIN} }

// EndParagraph constructs a P_END delimiter.
func EndParagraph() Token { return Token{Kind: PEND} }

// BeginSentence constructs an S_BEGIN delimiter.
func BeginSentence() Token { return Token{Kind: SBEGIN} }

// EndSentence constructs an S_END delimiter.
func EndSentence() Token { return Token{Kind: SEND} }
