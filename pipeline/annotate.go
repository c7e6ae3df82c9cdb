package pipeline

// Annotate is the sixth pipeline stage (spec.md §4.6): it attaches
// morphological meanings from the lexicon to every WORD that doesn't
// already carry them (e.g. from a static-phrase fusion), tracking the
// at_sentence_start flag.
type Annotate struct {
	upstream        Producer
	lex             Lexicon
	autoUppercase   bool
	atSentenceStart bool
}

// NewAnnotate wraps upstream with the lexicon-lookup stage.
func NewAnnotate(upstream Producer, lex Lexicon, autoUppercase bool) *Annotate {
	return &Annotate{upstream: upstream, lex: lex, autoUppercase: autoUppercase, atSentenceStart: true}
}

func (a *Annotate) Next() (Token, bool, error) {
	t, ok, err := a.upstream.Next()
	if err != nil || !ok {
		return Token{}, ok, err
	}

	switch t.Kind {
	case SBEGIN:
		a.atSentenceStart = true
		return t, true, nil
	case PUNCTUATION:
		if t.Txt == ":" {
			a.atSentenceStart = true
		}
		// any other punctuation leaves at_sentence_start unchanged, so a
		// word following an opening quote/paren at sentence start is
		// still looked up as sentence-initial.
		return t, true, nil
	case ORDINAL:
		return t, true, nil
	}

	wasSentenceStart := a.atSentenceStart
	a.atSentenceStart = false

	if t.Kind != WORD || len(t.Meanings) > 0 {
		return t, true, nil
	}

	canonical, meanings, lerr := a.lex.LookupWord(t.Txt, wasSentenceStart, a.autoUppercase)
	if lerr != nil {
		return Token{}, false, NewPipelineError("annotate", lerr)
	}
	return Word(canonical, meanings, t.Err), true, nil
}
