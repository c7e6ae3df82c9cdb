package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/hagstofa/toknun/entitycache"
	"github.com/hagstofa/toknun/entitydb"
)

// Run identifies one pipeline invocation (SPEC_FULL.md §B: google/uuid).
// The pipeline stages themselves neither create nor carry a Run.
type Run struct {
	ID uuid.UUID
}

// NewRun stamps a fresh Run identifier.
func NewRun() Run { return Run{ID: uuid.New()} }

// Dictionaries bundles every config-driven dictionary the pipeline stages
// need. Defaults are provided by DefaultDictionaries; a production
// deployment overrides some or all of them (see config.LoadDictionaries).
type Dictionaries struct {
	Abbreviations    Abbreviations
	Compounds        CompoundDictionaries
	StaticPhrases    []StaticPhrase
	Phrases1         Phrases1Dict
	Names            NameDictionaries
	AmbiguousPhrases []AmbiguousPhrase
}

// DefaultDictionaries bundles every package-level default so the pipeline
// runs standalone without external configuration.
func DefaultDictionaries() Dictionaries {
	return Dictionaries{
		Abbreviations:    DefaultAbbreviations(),
		Compounds:        DefaultCompoundDictionaries(),
		StaticPhrases:    DefaultStaticPhrases(),
		Phrases1:         DefaultPhrases1Dict(),
		Names:            DefaultNameDictionaries(),
		AmbiguousPhrases: DefaultAmbiguousPhrases(),
	}
}

// RawTokenize builds the pipeline up through parse_errors_1 (spec.md §6):
// whitespace split, char classification, particle fusion, sentence
// delimiters, and compound-error correction. It performs no lexicon or
// entity-DB lookups and therefore cannot fail.
func RawTokenize(text string, autoUppercase bool, dict Dictionaries) Producer {
	p1 := NewParseTokens(text, autoUppercase)
	p2 := NewParseParticles(p1, dict.Abbreviations)
	p3 := NewParseSentences(p2)
	p4 := NewParseErrors1(p3, dict.Compounds)
	return p4
}

// Tokenize builds the full pipeline (spec.md §6): raw_tokenize followed by
// static-phrase matching, lexicon annotation, the two numeric/date/name
// fusion stages, entity recognition, and ambiguous-phrase disambiguation.
//
// lex is used as given; Tokenize neither opens nor closes it (see
// TokenizeWithLexicon). db may be nil, in which case entity recognition is
// skipped and WORD/ENTITY tokens pass through unchanged. A nil cache with
// a non-nil db is replaced by a fresh in-process MemoryCache.
func Tokenize(ctx context.Context, text string, autoUppercase bool, dict Dictionaries, lex Lexicon, db entitydb.Lookup, cache entitycache.Cache) Producer {
	p5 := NewParseStaticPhrases(RawTokenize(text, autoUppercase, dict), dict.StaticPhrases, autoUppercase)
	p6 := NewAnnotate(p5, lex, autoUppercase)
	p7 := NewParsePhrases1(p6, dict.Phrases1, lex)
	p8 := NewParsePhrases2(p7, dict.Names)

	var p9 Producer = p8
	if db != nil {
		if cache == nil {
			cache = entitycache.NewMemoryCache()
		}
		p9 = NewRecognizeEntities(ctx, p8, db, cache, lex, dict.Abbreviations)
	}

	return NewDisambiguatePhrases(p9, dict.AmbiguousPhrases)
}

// TokenizeWithLexicon is a convenience wrapper that opens lex for the
// duration of the run and returns its release function alongside the
// Producer. Nothing is released automatically: the caller calls release
// (typically deferred) once it stops pulling, on every exit path.
func TokenizeWithLexicon(ctx context.Context, text string, autoUppercase bool, dict Dictionaries, lex Lexicon, db entitydb.Lookup, cache entitycache.Cache) (Producer, func() error) {
	acquired, release := OpenLexicon(lex)
	return Tokenize(ctx, text, autoUppercase, dict, acquired, db, cache), release
}
