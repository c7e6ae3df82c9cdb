package pipeline

// sentenceEnders is the set of punctuation texts that end a sentence.
var sentenceEnders = map[string]bool{".": true, "?": true, "!": true, "…": true}

// sentenceFinishers may trail a sentence-ending mark without opening a new
// sentence (closing quotes/parens).
var sentenceFinishers = map[string]bool{
	")": true, "]": true, "“": true, "»": true, "”": true, "’": true, "\"": true, "…": true,
}

// ParseSentences is the third pipeline stage (spec.md §4.3): it wraps each
// sentence in S_BEGIN/S_END and each paragraph in P_BEGIN/P_END, eliding
// empty paragraph pairs.
type ParseSentences struct {
	upstream   Producer
	pending    []Token
	held       *Token
	inSentence bool
	pendingPar bool
	upDone     bool
}

// next pulls the next upstream token, preferring one already peeked and
// pushed back via held.
func (s *ParseSentences) next() (Token, bool, error) {
	if s.held != nil {
		t := *s.held
		s.held = nil
		return t, true, nil
	}
	return s.upstream.Next()
}

// NewParseSentences wraps upstream with the sentence/paragraph delimiter stage.
func NewParseSentences(upstream Producer) *ParseSentences {
	return &ParseSentences{upstream: upstream}
}

func (s *ParseSentences) Next() (Token, bool, error) {
	for {
		if len(s.pending) > 0 {
			t := s.pending[0]
			s.pending = s.pending[1:]
			return t, true, nil
		}
		if s.upDone {
			return Token{}, false, nil
		}

		t, ok, err := s.next()
		if err != nil {
			return Token{}, false, err
		}
		if !ok {
			s.upDone = true
			if s.inSentence {
				s.inSentence = false
				s.pending = append(s.pending, EndSentence())
				continue
			}
			return Token{}, false, nil
		}

		switch t.Kind {
		case PBEGIN:
			if s.inSentence {
				s.pending = append(s.pending, EndSentence())
				s.inSentence = false
			}
			s.pendingPar = true
			continue

		case PEND:
			if s.inSentence {
				s.pending = append(s.pending, EndSentence())
				s.inSentence = false
			}
			if s.pendingPar {
				// empty P_BEGIN/P_END pair: elide both.
				s.pendingPar = false
				continue
			}
			s.pending = append(s.pending, EndParagraph())
			continue
		}

		if s.pendingPar {
			s.pending = append(s.pending, BeginParagraph())
			s.pendingPar = false
		}
		if !s.inSentence {
			s.pending = append(s.pending, BeginSentence())
			s.inSentence = true
		}
		s.pending = append(s.pending, t)

		if t.Kind == PUNCTUATION && sentenceEnders[t.Txt] {
			// consume trailing sentence-finisher punctuation before closing.
			for {
				nt, nok, nerr := s.upstream.Next()
				if nerr != nil {
					return Token{}, false, nerr
				}
				if !nok {
					s.upDone = true
					break
				}
				if nt.Kind == PUNCTUATION && sentenceFinishers[nt.Txt] {
					s.pending = append(s.pending, nt)
					continue
				}
				s.held = &nt
				break
			}
			s.pending = append(s.pending, EndSentence())
			s.inSentence = false
		}
	}
}
