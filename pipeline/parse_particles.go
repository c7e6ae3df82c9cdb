package pipeline

import "unicode"

// Abbreviations is the dictionary parse_particles consults to decide
// whether a WORD is an abbreviation requiring a trailing dot, and how it
// behaves at a potential sentence boundary (spec.md §2, GLOSSARY). A
// representative default is provided by DefaultAbbreviations; callers
// supply their own via NewParseParticles for production dictionaries.
type Abbreviations struct {
	// Singles are abbreviations that require a trailing dot to be
	// recognized at all (e.g. "t.d.", "o.s.frv.").
	Singles map[string]bool
	// Finishers may stand at the end of a sentence.
	Finishers map[string]bool
	// NotFinishers never end a sentence.
	NotFinishers map[string]bool
	// NameFinishers do not treat a following capitalized word as the
	// start of a new PERSON/sentence for disambiguation purposes.
	NameFinishers map[string]bool
	// ClockAbbrev recognizes a word as introducing a time, like "kl."
	ClockAbbrev map[string]bool
	// ClockWords maps a spelled-out clock word to an (h, m) pair, e.g.
	// "átta" -> (8, 0).
	ClockWords map[string]TimeVal
	// ClockHalf maps spelled-out half-hour words, e.g. "hálfátta" -> (7, 30).
	ClockHalf map[string]TimeVal
	// Months maps a month name to its 1-based index.
	Months map[string]int
	// SIUnits maps an SI/measurement unit word to its unit class
	// (A, T, L, C, W, V).
	SIUnits map[string]string
	// PercentWords recognizes a word following a NUMBER as "%" spelled out.
	PercentWords map[string]bool
}

// DefaultAbbreviations returns a small representative dictionary so the
// pipeline runs standalone without external configuration; production
// deployments load a full dictionary via the config package and pass it
// to NewParseParticles.
func DefaultAbbreviations() Abbreviations {
	return Abbreviations{
		Singles: map[string]bool{
			"t.d": true, "þ.e": true, "o.s.frv": true, "m.a": true, "nr": true, "kl": true,
		},
		Finishers: map[string]bool{
			"o.s.frv": true,
		},
		NotFinishers: map[string]bool{
			"t.d": true, "þ.e": true, "m.a": true,
		},
		NameFinishers: map[string]bool{
			"hr": true, "frk": true, "dr": true,
		},
		ClockAbbrev: map[string]bool{
			"klukkan": true, "kl": true,
		},
		ClockWords: map[string]TimeVal{
			"átta": {8, 0, 0}, "níu": {9, 0, 0}, "tíu": {10, 0, 0},
		},
		ClockHalf: map[string]TimeVal{
			"hálfátta": {7, 30, 0}, "hálfníu": {8, 30, 0}, "hálftíu": {9, 30, 0},
		},
		Months: map[string]int{
			"janúar": 1, "febrúar": 2, "mars": 3, "apríl": 4, "maí": 5, "júní": 6,
			"júlí": 7, "ágúst": 8, "september": 9, "október": 10, "nóvember": 11, "desember": 12,
		},
		SIUnits: map[string]string{
			"km": "L", "m": "L", "cm": "L", "mm": "L",
			"kg": "W", "g": "W", "mg": "W",
			"klst": "T", "sek": "T", "mín": "T",
			"°C": "C",
			"m²": "A", "ha": "A",
			"l": "V",
		},
		PercentWords: map[string]bool{
			"prósent": true, "hundraðshluti": true,
		},
	}
}

// ParseParticles is the second pipeline stage (spec.md §4.2): it holds one
// lookahead over the raw token stream and fuses abbreviation+dot,
// currency-symbol+number, clock expressions, year expressions, percent,
// ordinals, and SI-unit measurements.
type ParseParticles struct {
	upstream Producer
	abbrev   Abbreviations
	queue    []Token
	upErr    error
	upDone   bool
	done     bool
}

// NewParseParticles wraps upstream with the particle-fusion stage.
func NewParseParticles(upstream Producer, abbrev Abbreviations) *ParseParticles {
	return &ParseParticles{upstream: upstream, abbrev: abbrev}
}

// lookahead ensures at least n tokens are buffered in the queue (fewer if
// upstream is exhausted or erroring) and returns them without consuming.
func (p *ParseParticles) lookahead(n int) ([]Token, error) {
	for len(p.queue) < n && !p.upDone && p.upErr == nil {
		t, ok, err := p.upstream.Next()
		if err != nil {
			p.upErr = err
			break
		}
		if !ok {
			p.upDone = true
			break
		}
		p.queue = append(p.queue, t)
	}
	if len(p.queue) > n {
		return p.queue[:n], p.upErr
	}
	return p.queue, p.upErr
}

func (p *ParseParticles) consume(n int) {
	p.queue = p.queue[n:]
}

func (p *ParseParticles) fill() (Token, bool, error) {
	la, err := p.lookahead(1)
	if err != nil {
		return Token{}, false, err
	}
	if len(la) == 0 {
		return Token{}, false, nil
	}
	t := la[0]
	p.consume(1)
	return t, true, nil
}

func (p *ParseParticles) Next() (Token, bool, error) {
	if p.done {
		return Token{}, false, nil
	}
	cur, ok, err := p.fill()
	if err != nil || !ok {
		p.done = !ok
		return Token{}, ok, err
	}

	// Captured before any fusion below can rewrite cur.Txt (e.g. "kl" growing
	// a trailing dot), mirroring the original's clock flag snapshotted at the
	// top of the loop body rather than re-derived from the mutated token.
	clockIntroducer := cur.Kind == WORD && p.abbrev.ClockAbbrev[lower(cur.Txt)]

	// "$"/"€" + NUMBER -> AMOUNT
	if cur.Kind == PUNCTUATION && (cur.Txt == "$" || cur.Txt == "€") {
		if la, err := p.lookahead(1); err == nil && len(la) == 1 && la[0].Kind == NUMBER {
			next := la[0]
			p.consume(1)
			iso := "USD"
			if cur.Txt == "€" {
				iso = "EUR"
			}
			cur = Token{Kind: AMOUNT, Txt: cur.Txt + next.Txt, Amount: AmountVal{
				Value: next.Number.Value, ISO: iso, Cases: next.Number.Cases, Genders: next.Number.Genders,
			}, Err: CompoundError(cur.Err, next.Err)}
		}
	}

	// abbreviation + dot
	if cur.Kind == WORD && !endsWithDot(cur.Txt) && p.isAbbrev(cur.Txt) {
		if la, err := p.lookahead(2); err == nil && len(la) >= 1 && la[0].Kind == PUNCTUATION && la[0].Txt == "." {
			next := la[0]
			var after Token
			aok := len(la) >= 2
			if aok {
				after = la[1]
			}
			endsSentence := sentencePotentiallyEnds(after, aok, p.abbrev)
			// At a potential sentence end a Finisher or NotFinisher stays
			// bare and the dot is left queued as its own PUNCTUATION token;
			// in every other case the abbreviation absorbs the dot.
			if !(endsSentence && (p.abbrev.Finishers[cur.Txt] || p.abbrev.NotFinishers[cur.Txt])) {
				p.consume(1)
				cur = Word(cur.Txt+".", cur.Meanings, CompoundError(cur.Err, next.Err))
			}
		}
	}

	// klukkan/kl + TIME|NUMBER -> TIME
	if clockIntroducer {
		if la, err := p.lookahead(1); err == nil && len(la) == 1 {
			next := la[0]
			switch next.Kind {
			case TIME:
				p.consume(1)
				cur = Token{Kind: TIME, Txt: cur.Txt + " " + next.Txt, Time: next.Time, Err: CompoundError(cur.Err, next.Err)}
			case NUMBER:
				p.consume(1)
				h := int(next.Number.Value)
				cur = Token{Kind: TIME, Txt: cur.Txt + " " + next.Txt, Time: TimeVal{H: h}, Err: CompoundError(cur.Err, next.Err)}
			case WORD:
				if tv, ok := p.abbrev.ClockWords[lower(next.Txt)]; ok {
					p.consume(1)
					cur = Token{Kind: TIME, Txt: cur.Txt + " " + next.Txt, Time: tv, Err: CompoundError(cur.Err, next.Err)}
				}
			}
		}
	}

	// standalone spelled-out half-hour word
	if cur.Kind == WORD {
		if tv, ok := p.abbrev.ClockHalf[lower(cur.Txt)]; ok {
			cur = Token{Kind: TIME, Txt: cur.Txt, Time: tv, Err: cur.Err}
		}
	}

	// árið|ársins|árinu + YEAR|NUMBER -> YEAR
	if cur.Kind == WORD && isYearIntroducer(cur.Txt) {
		if la, err := p.lookahead(1); err == nil && len(la) == 1 && (la[0].Kind == YEAR || la[0].Kind == NUMBER) {
			next := la[0]
			p.consume(1)
			y := next.Year
			if next.Kind == NUMBER {
				y = int(next.Number.Value)
			}
			cur = Token{Kind: YEAR, Txt: cur.Txt + " " + next.Txt, Year: y, Err: CompoundError(cur.Err, next.Err)}
		}
	}

	// YEAR|NUMBER + f.Kr/e.Kr -> YEAR
	if cur.Kind == YEAR || cur.Kind == NUMBER {
		if la, err := p.lookahead(1); err == nil && len(la) == 1 && la[0].Kind == WORD {
			next := la[0]
			lw := lower(next.Txt)
			if lw == "f.kr" || lw == "e.kr" {
				p.consume(1)
				y := cur.Year
				if cur.Kind == NUMBER {
					y = int(cur.Number.Value)
				}
				if lw == "f.kr" {
					y = -y
				}
				cur = Token{Kind: YEAR, Txt: cur.Txt + " " + next.Txt, Year: y, Err: CompoundError(cur.Err, next.Err)}
			}
		}
	}

	// NUMBER + "%" -> PERCENT
	if cur.Kind == NUMBER {
		if la, err := p.lookahead(1); err == nil && len(la) == 1 && la[0].Kind == PUNCTUATION && la[0].Txt == "%" {
			next := la[0]
			p.consume(1)
			cur = Token{Kind: PERCENT, Txt: cur.Txt + "%", Percent: PercentVal{
				Value: cur.Number.Value, Cases: cur.Number.Cases, Genders: cur.Number.Genders,
			}, Err: CompoundError(cur.Err, next.Err)}
		}
	}

	// NUMBER-or-Roman + "." -> ORDINAL, unless lookahead backs off
	if cur.Kind == NUMBER || (cur.Kind == WORD && isRomanNumeral(cur.Txt)) {
		if la, err := p.lookahead(2); err == nil && len(la) >= 1 && la[0].Kind == PUNCTUATION && la[0].Txt == "." {
			next := la[0]
			var after Token
			aok := len(la) >= 2
			if aok {
				after = la[1]
			}
			if !backsOffOrdinal(after, aok) {
				p.consume(1)
				var n int
				if cur.Kind == NUMBER {
					n = int(cur.Number.Value)
				} else {
					n = romanToInt(cur.Txt)
				}
				cur = Token{Kind: ORDINAL, Txt: cur.Txt + ".", Ordinal: n, Err: CompoundError(cur.Err, next.Err)}
			}
		}
	}

	// NUMBER + SI unit -> MEASUREMENT
	if cur.Kind == NUMBER {
		if la, err := p.lookahead(1); err == nil && len(la) == 1 && la[0].Kind == WORD {
			next := la[0]
			if cls, ok := p.abbrev.SIUnits[next.Txt]; ok {
				p.consume(1)
				cur = Token{Kind: MEASUREMENT, Txt: cur.Txt + " " + next.Txt, Measurement: MeasurementVal{
					UnitClass: cls, Value: cur.Number.Value,
				}, Err: CompoundError(cur.Err, next.Err)}
			}
		}
	}

	return cur, true, nil
}

func (p *ParseParticles) isAbbrev(txt string) bool {
	if p.abbrev.Singles[txt] {
		return true
	}
	lw := lower(txt)
	if lw != txt && p.abbrev.Singles[lw] && !p.abbrev.Singles[txt+"_nodot"] {
		return true
	}
	return false
}

func sentencePotentiallyEnds(after Token, ok bool, abbrev Abbreviations) bool {
	if !ok {
		return true
	}
	if after.Kind == SEND || after.Kind == PEND {
		return true
	}
	if after.Kind == WORD && startsUpper(after.Txt) {
		if abbrev.Months[lower(after.Txt)] != 0 {
			return false
		}
		return true
	}
	return false
}

func backsOffOrdinal(after Token, ok bool) bool {
	if !ok {
		return true
	}
	if after.Kind == SEND || after.Kind == PEND {
		return true
	}
	if after.Kind == PUNCTUATION && after.Spacing == SpacingLeft {
		return true
	}
	if after.Kind == WORD && startsUpper(after.Txt) {
		return true
	}
	return false
}

func isYearIntroducer(txt string) bool {
	switch lower(txt) {
	case "árið", "ársins", "árinu":
		return true
	}
	return false
}

func endsWithDot(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '.'
}

func lower(s string) string {
	r := []rune(s)
	for i, c := range r {
		r[i] = unicode.ToLower(c)
	}
	return string(r)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
