package pipeline

// Producer is a lazy, pull-driven source of tokens. Each stage in the
// pipeline wraps an upstream Producer and is itself a Producer, so the
// whole chain advances one token at a time from the final consumer's
// pull (spec.md §5: "single-threaded, cooperative, pull-driven").
//
// Next returns the next token, or ok=false when the stream is
// exhausted. A non-nil error is a hard failure (spec.md §7) and
// terminates the stream; callers must stop pulling once err != nil.
type Producer interface {
	Next() (tok Token, ok bool, err error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func() (Token, bool, error)

func (f ProducerFunc) Next() (Token, bool, error) { return f() }

// sliceProducer replays a fixed slice of tokens; used in tests and to
// seed a pipeline from pre-built tokens.
type sliceProducer struct {
	toks []Token
	pos  int
}

// FromSlice returns a Producer that yields the given tokens in order.
func FromSlice(toks []Token) Producer {
	return &sliceProducer{toks: toks}
}

func (s *sliceProducer) Next() (Token, bool, error) {
	if s.pos >= len(s.toks) {
		return Token{}, false, nil
	}
	t := s.toks[s.pos]
	s.pos++
	return t, true, nil
}

// Collect pulls every token from p until exhaustion or error.
func Collect(p Producer) ([]Token, error) {
	var out []Token
	for {
		t, ok, err := p.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, t)
	}
}
