package pipeline

// Lexicon looks up word forms and manages its own lifetime. Open/Close
// brackets a pipeline run the way a DB connection or file handle would;
// callers must call Close exactly once, typically via defer, to release
// resources on every exit path including error propagation (spec.md §5).
//
// The interface lives here, next to Meaning, rather than in package
// lexicon: lexicon's implementations already need to import pipeline for
// Meaning, so declaring Lexicon there too would make pipeline import
// lexicon right back, an import cycle. entitydb.Lookup and
// entitycache.Cache avoid the same trap by not referencing any pipeline
// type in their method signatures; Lexicon can't avoid it, so the
// interface moves instead.
type Lexicon interface {
	// LookupWord returns the canonical surface form and its known
	// meanings for txt. atSentenceStart and autoUppercase mirror the
	// case-sensitivity rules in spec.md §4.6: a lexicon may accept a
	// lowercase lookup of a capitalized dictionary entry when the word
	// sits at the start of a sentence, and may uppercase-correct a
	// lowercase word when autoUppercase is set and no lowercase meaning
	// exists.
	LookupWord(txt string, atSentenceStart, autoUppercase bool) (canonical string, meanings []Meaning, err error)

	// Meanings returns all known meanings of an exact compound surface
	// form, e.g. "Vestur-Þýskaland", without any case folding. Used by
	// the composite-hyphen resolver (spec.md §4.7) to check whether a
	// fused word is itself a lexicon entry.
	Meanings(compound string) ([]Meaning, error)

	// Close releases any resources the lexicon holds open.
	Close() error
}

// OpenLexicon acquires a Lexicon for the duration of one pipeline run and
// returns a release function that the caller must invoke (typically via
// defer) regardless of how the run ends. This is the scoped-acquisition
// pattern spec.md §3/§5 requires for the lexicon handle.
func OpenLexicon(l Lexicon) (Lexicon, func() error) {
	return l, l.Close
}
