package pipeline

// CompoundDictionaries holds the config-driven tables parse_errors1 needs:
// words that were wrongly joined and should be split, adjacent word pairs
// that were wrongly split and should be joined, and a reduplication
// allow-list (spec.md §4.4, SPEC_FULL.md §D.7).
type CompoundDictionaries struct {
	// WronglyJoined maps a lowercased wrongly-joined compound to its
	// correct constituent words, e.g. "aðdraganda" -> nil (not split),
	// "migrationarstjórn" -> ["migrations", "stjórn"].
	WronglyJoined map[string][]string
	// SplitCompounds maps "first second" (lowercased, space-joined) to the
	// fused form, e.g. "morgun daginn" -> "morgundaginn".
	SplitCompounds map[string]string
	// AllowedMultiples is the reduplication allow-list: words that may
	// legitimately repeat adjacently, e.g. "já já", "nei nei".
	AllowedMultiples map[string]bool
}

// DefaultCompoundDictionaries returns a small representative default; see
// DefaultAbbreviations for the same rationale.
func DefaultCompoundDictionaries() CompoundDictionaries {
	return CompoundDictionaries{
		WronglyJoined: map[string][]string{
			"migrationarstjórn": {"migrations", "stjórn"},
		},
		SplitCompounds: map[string]string{
			"morgun daginn": "morgundaginn",
			"hvunn dags":    "hvunndags",
		},
		AllowedMultiples: map[string]bool{
			"já": true, "nei": true, "ha": true, "bla": true,
		},
	}
}

// ParseErrors1 is the fourth pipeline stage (spec.md §4.4): it folds
// reduplicated WORDs, splits wrongly-joined compounds, and fuses
// wrongly-split compound pairs. raw_tokenize (spec.md §6) stops here.
type ParseErrors1 struct {
	upstream Producer
	dict     CompoundDictionaries
	pending  []Token
	prev     *Token
}

// NewParseErrors1 wraps upstream with the compound-error correction stage.
func NewParseErrors1(upstream Producer, dict CompoundDictionaries) *ParseErrors1 {
	return &ParseErrors1{upstream: upstream, dict: dict}
}

func (p *ParseErrors1) Next() (Token, bool, error) {
	for {
		if len(p.pending) > 0 {
			t := p.pending[0]
			p.pending = p.pending[1:]
			return t, true, nil
		}

		var cur Token
		if p.prev != nil {
			cur = *p.prev
			p.prev = nil
		} else {
			t, ok, err := p.upstream.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			cur = t
		}

		// Reduplication: fold cur with a following identical WORD.
		if cur.Kind == WORD {
			for {
				nt, ok, err := p.upstream.Next()
				if err != nil {
					return Token{}, false, err
				}
				if !ok {
					p.emitCompoundSplit(cur)
					return p.Next()
				}
				if nt.Kind == WORD && nt.Txt == cur.Txt && !p.dict.AllowedMultiples[lower(cur.Txt)] {
					cur = Word(cur.Txt, cur.Meanings, CompoundError(cur.Err, nt.Err, []int{ErrPunctuationFixed}))
					continue
				}
				// Wrongly-split compound: (cur, nt) present as a pair.
				if nt.Kind == WORD {
					key := lower(cur.Txt) + " " + lower(nt.Txt)
					if fused, ok := p.dict.SplitCompounds[key]; ok {
						cur = Word(fused, nil, CompoundError(cur.Err, nt.Err, []int{ErrWronglySplitCompound}))
						continue
					}
				}
				p.prev = &nt
				break
			}
		}

		p.emitCompoundSplit(cur)
		return p.Next()
	}
}

// emitCompoundSplit splits a WORD whose lowercased text is a known
// wrongly-joined compound into its constituent WORDs, each flagged with
// error code 4; otherwise queues cur unchanged.
func (p *ParseErrors1) emitCompoundSplit(cur Token) {
	if cur.Kind == WORD {
		if parts, ok := p.dict.WronglyJoined[lower(cur.Txt)]; ok && len(parts) > 1 {
			for _, part := range parts {
				p.pending = append(p.pending, Word(part, nil, []int{ErrWronglyJoinedCompound}))
			}
			return
		}
	}
	p.pending = append(p.pending, cur)
}
