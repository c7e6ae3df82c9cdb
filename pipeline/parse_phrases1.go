package pipeline

import "strings"

// Phrases1Dict holds the config-driven number/date/currency dictionaries
// parse_phrases1 needs (spec.md §4.7, SPEC_FULL.md §D).
type Phrases1Dict struct {
	// Multipliers maps a numeral WORD's stem to its numeric value, e.g.
	// "hundrað" -> 100, "þúsund" -> 1000, "milljón" -> 1e6.
	Multipliers map[string]float64
	// AmountAbbrev maps an ISK amount abbreviation to its multiplier,
	// e.g. "m.kr" -> 1e6, "ma.kr" -> 1e9.
	AmountAbbrev map[string]float64
	// PercentageWords recognizes a spelled-out percentage unit.
	PercentageWords map[string]bool
	// DaysOfMonth maps a spelled-out ordinal day word to its value, e.g.
	// "fyrsti" -> 1.
	DaysOfMonth map[string]int
	// Months maps a month name to its 1-based index.
	Months map[string]int
	// AdjPrefixes are composite-hyphen adjective prefixes: "hálf", "marg", "semí".
	AdjPrefixes map[string]bool
	// Nationalities maps a nationality-adjective stem to an ISO country code.
	Nationalities map[string]string
	// CurrencyNouns maps a currency-noun stem to its base currency name.
	CurrencyNouns map[string]string
	// NationalCurrency maps "countryCode|baseCurrency" to the ISO code.
	NationalCurrency map[string]string
}

// DefaultPhrases1Dict returns a small representative default.
func DefaultPhrases1Dict() Phrases1Dict {
	return Phrases1Dict{
		Multipliers: map[string]float64{
			"hundrað": 100, "þúsund": 1000, "milljón": 1e6, "milljarður": 1e9,
		},
		AmountAbbrev: map[string]float64{
			"m.kr": 1e6, "ma.kr": 1e9, "þús.kr": 1e3,
		},
		PercentageWords: map[string]bool{
			"prósent": true, "hundraðshluti": true,
		},
		DaysOfMonth: map[string]int{
			"fyrsti": 1, "annar": 2, "þriðji": 3, "fjórði": 4, "fimmti": 5,
		},
		Months: map[string]int{
			"janúar": 1, "febrúar": 2, "mars": 3, "apríl": 4, "maí": 5, "júní": 6,
			"júlí": 7, "ágúst": 8, "september": 9, "október": 10, "nóvember": 11, "desember": 12,
		},
		AdjPrefixes: map[string]bool{"hálf": true, "marg": true, "semí": true},
		Nationalities: map[string]string{
			"bandarísk": "US", "íslensk": "IS", "evrópsk": "EU", "bresk": "GB", "japönsk": "JP",
		},
		CurrencyNouns: map[string]string{
			"dalur": "USD", "króna": "ISK", "pund": "GBP", "jen": "JPY",
		},
		NationalCurrency: map[string]string{
			"US|USD": "USD", "GB|GBP": "GBP", "JP|JPY": "JPY",
		},
	}
}

// ParsePhrases1 is the seventh pipeline stage (spec.md §4.7): single
// lookahead, fusing numeric word chains, dates, month+year, nationality
// currencies, and composite-hyphen compounds.
type ParsePhrases1 struct {
	upstream Producer
	dict     Phrases1Dict
	lex      Lexicon
	queue    []Token
	upErr    error
	upDone   bool
}

// NewParsePhrases1 wraps upstream with the phrase-fusion stage. lex is
// consulted by the composite-hyphen resolver to test whether a fused
// "A-B" form is itself a lexicon entry.
func NewParsePhrases1(upstream Producer, dict Phrases1Dict, lex Lexicon) *ParsePhrases1 {
	return &ParsePhrases1{upstream: upstream, dict: dict, lex: lex}
}

func (p *ParsePhrases1) lookahead(n int) ([]Token, error) {
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

func (p *ParsePhrases1) consume(n int) { p.queue = p.queue[n:] }

func (p *ParsePhrases1) fill() (Token, bool, error) {
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

func (p *ParsePhrases1) Next() (Token, bool, error) {
	cur, ok, err := p.fill()
	if err != nil || !ok {
		return Token{}, ok, err
	}

	// Number-word chains.
	for {
		curVal, curIsNum := p.numericValue(cur)
		if !curIsNum {
			break
		}
		la, lerr := p.lookahead(1)
		if lerr != nil {
			return Token{}, false, lerr
		}
		if len(la) != 1 || la[0].Kind != WORD {
			break
		}
		next := la[0]
		mult, isMult := p.dict.Multipliers[lower(next.Txt)]
		if !isMult {
			break
		}
		p.consume(1)
		nCases, nGenders := meaningCasesGenders(next.Meanings)
		cCases, _ := meaningCasesGenders(cur.Meanings)
		useCases := nCases
		if containsCase(nCases, "ef") && len(cCases) > 0 && !containsCase(cCases, "ef") {
			useCases = cCases
		}
		cur = Token{Kind: NUMBER, Txt: cur.Txt + " " + next.Txt, Number: NumberVal{
			Value: curVal * mult, Cases: useCases, Genders: nGenders,
		}, Err: CompoundError(cur.Err, next.Err)}
	}

	// Amount abbreviation fuse.
	if cur.Kind == NUMBER {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 && la[0].Kind == WORD {
			if mult, ok := p.dict.AmountAbbrev[lower(la[0].Txt)]; ok {
				next := la[0]
				p.consume(1)
				cur = Token{Kind: AMOUNT, Txt: cur.Txt + " " + next.Txt, Amount: AmountVal{
					Value: cur.Number.Value * mult, ISO: "ISK", Cases: cur.Number.Cases, Genders: cur.Number.Genders,
				}, Err: CompoundError(cur.Err, next.Err)}
			}
		}
	}

	// Percentage word fuse.
	if cur.Kind == NUMBER {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 && la[0].Kind == WORD && p.dict.PercentageWords[lower(la[0].Txt)] {
			next := la[0]
			p.consume(1)
			cur = Token{Kind: PERCENT, Txt: cur.Txt + " " + next.Txt, Percent: PercentVal{
				Value: cur.Number.Value, Cases: cur.Number.Cases, Genders: cur.Number.Genders,
			}, Err: CompoundError(cur.Err, next.Err)}
		}
	}

	// {ORDINAL|NUMBER|day-word} + month -> DATE y=0
	if dayVal, ok := p.dayComponent(cur); ok {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 && la[0].Kind == WORD {
			if mo, isMonth := p.dict.Months[lower(la[0].Txt)]; isMonth {
				next := la[0]
				p.consume(1)
				cur = Token{Kind: DATE, Txt: cur.Txt + " " + next.Txt, Date: DateVal{Y: 0, M: mo, D: dayVal},
					Err: CompoundError(cur.Err, next.Err)}
			}
		}
	}

	// DATE(y=0) + NUMBER|YEAR -> DATE with y filled.
	if cur.Kind == DATE && cur.Date.Y == 0 {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 {
			next := la[0]
			var y int
			var yok bool
			if next.Kind == YEAR {
				y, yok = next.Year, true
			} else if next.Kind == NUMBER {
				v := int(next.Number.Value)
				if v >= 1776 && v <= 2100 {
					y, yok = v, true
				}
			}
			if yok {
				p.consume(1)
				cur = Token{Kind: DATE, Txt: cur.Txt + " " + next.Txt, Date: DateVal{Y: y, M: cur.Date.M, D: cur.Date.D},
					Err: CompoundError(cur.Err, next.Err)}
			}
		}
	}

	// month + YEAR|NUMBER -> DATE d=0, or a standalone month -> DATEREL.
	if cur.Kind == WORD {
		if mo, isMonth := p.dict.Months[lower(cur.Txt)]; isMonth {
			fused := false
			if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 {
				next := la[0]
				var y int
				var yok bool
				if next.Kind == YEAR {
					y, yok = next.Year, true
				} else if next.Kind == NUMBER {
					v := int(next.Number.Value)
					if v >= 1776 && v <= 2100 {
						y, yok = v, true
					}
				}
				if yok {
					p.consume(1)
					cur = Token{Kind: DATE, Txt: cur.Txt + " " + next.Txt, Date: DateVal{Y: y, M: mo, D: 0},
						Err: CompoundError(cur.Err, next.Err)}
					fused = true
				}
			}
			if !fused {
				cur = Token{Kind: DATEREL, Txt: cur.Txt, Date: DateVal{Y: 0, M: mo, D: 0}, Err: cur.Err}
			}
		}
	}

	if cur.Kind == DATE {
		cur = classifyDate(cur)
	}

	// DATEABS/DATEREL + TIME -> TIMESTAMP family.
	if cur.Kind == DATEABS || cur.Kind == DATEREL {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 && la[0].Kind == TIME {
			next := la[0]
			p.consume(1)
			kind := TIMESTAMPREL
			if cur.Kind == DATEABS {
				kind = TIMESTAMPABS
			}
			cur = Token{Kind: kind, Txt: cur.Txt + " " + next.Txt, Timestamp: TimestampVal{
				Y: cur.Date.Y, Mo: cur.Date.M, D: cur.Date.D, H: next.Time.H, M: next.Time.M, S: next.Time.S,
			}, Err: CompoundError(cur.Err, next.Err)}
		}
	}

	// Nationality adjective + currency noun -> CURRENCY.
	if cur.Kind == WORD {
		if code, isNat := p.dict.Nationalities[lower(cur.Txt)]; isNat {
			if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 && la[0].Kind == WORD {
				next := la[0]
				if base, isCur := p.dict.CurrencyNouns[lower(next.Txt)]; isCur {
					if iso, ok := p.dict.NationalCurrency[code+"|"+base]; ok {
						p.consume(1)
						cCases, cGenders := meaningCasesGenders(cur.Meanings)
						nCases, _ := meaningCasesGenders(next.Meanings)
						cur = Token{Kind: CURRENCY, Txt: cur.Txt + " " + next.Txt, Currency: CurrencyVal{
							ISO: iso, Cases: intersectStrings(cCases, nCases), Genders: cGenders,
						}, Err: CompoundError(cur.Err, next.Err)}
					}
				}
			}
		}
	}

	// Composite hyphen fusion: WORD + "-" PUNCTUATION + lookahead.
	if cur.Kind == WORD {
		if la, lerr := p.lookahead(2); lerr == nil && len(la) >= 1 && la[0].Kind == PUNCTUATION && la[0].Txt == "-" {
			if fused, consumed, ok := p.resolveCompositeHyphen(cur, la); ok {
				p.consume(consumed)
				cur = fused
			}
		}
	}

	return cur, true, nil
}

func (p *ParsePhrases1) resolveCompositeHyphen(cur Token, la []Token) (Token, int, bool) {
	if len(la) < 2 {
		return Token{}, 0, false
	}
	hyphen := la[0]
	lookahead := la[1]

	if lookahead.Kind == WORD && (lower(lookahead.Txt) == "og" || lower(lookahead.Txt) == "eða") {
		la3, err := p.lookahead(3)
		if err != nil || len(la3) < 3 || la3[2].Kind != WORD {
			return Token{}, 0, false
		}
		secondWord := la3[2]
		fused := Word(cur.Txt+"- "+lookahead.Txt+" "+secondWord.Txt, secondWord.Meanings,
			CompoundError(cur.Err, hyphen.Err, lookahead.Err, secondWord.Err))
		return fused, 3, true
	}

	if lookahead.Kind == WORD {
		if p.dict.AdjPrefixes[lower(cur.Txt)] && hasAdjOrAdvMeaning(lookahead.Meanings) {
			fused := Word(cur.Txt+"-"+lookahead.Txt, lookahead.Meanings, CompoundError(cur.Err, hyphen.Err, lookahead.Err))
			return fused, 2, true
		}
		candidate := cur.Txt + "-" + lookahead.Txt
		if p.lex != nil {
			if meanings, err := p.lex.Meanings(candidate); err == nil && len(meanings) > 0 {
				fused := Word(candidate, meanings, CompoundError(cur.Err, hyphen.Err, lookahead.Err))
				return fused, 2, true
			}
		}
	}
	return Token{}, 0, false
}

func hasAdjOrAdvMeaning(meanings []Meaning) bool {
	for _, m := range meanings {
		if m.Category == "lo" || m.Category == "ao" {
			return true
		}
	}
	return false
}

// classifyDate upgrades a DATE token to DATEABS or DATEREL per spec.md §4.7.
func classifyDate(t Token) Token {
	if isDateAbs(t.Date) {
		t.Kind = DATEABS
	} else {
		t.Kind = DATEREL
	}
	return t
}

// dayComponent implements the exact three-way mapping spec.md §4.7 names
// (resolving Open Question #2): ORDINAL.val, NUMBER.val, or
// DaysOfMonth[text], with no dead branch.
func (p *ParsePhrases1) dayComponent(t Token) (value int, ok bool) {
	switch t.Kind {
	case ORDINAL:
		return t.Ordinal, true
	case NUMBER:
		return int(t.Number.Value), true
	case WORD:
		if v, found := p.dict.DaysOfMonth[lower(t.Txt)]; found {
			return v, true
		}
	}
	return 0, false
}

func (p *ParsePhrases1) numericValue(t Token) (float64, bool) {
	switch t.Kind {
	case NUMBER:
		return t.Number.Value, true
	case WORD:
		if v, ok := p.dict.Multipliers[lower(t.Txt)]; ok {
			return v, true
		}
	}
	return 0, false
}

// inflectionCases maps an uppercase BÍN case marker (as found in
// Meaning.Inflection, e.g. "KK-NF-ET") to its lowercase canonical code,
// the same convention parse_phrases2.go's inflectionToCase uses.
var inflectionCases = []struct{ marker, code string }{
	{"NF", "nf"}, {"ÞF", "þf"}, {"ÞGF", "þgf"}, {"EF", "ef"},
}

func meaningCasesGenders(meanings []Meaning) (cases, genders []string) {
	seenCase := map[string]bool{}
	seenGender := map[string]bool{}
	for _, m := range meanings {
		switch m.Category {
		case "kk", "kvk", "hk":
			if !seenGender[m.Category] {
				seenGender[m.Category] = true
				genders = append(genders, m.Category)
			}
		}
		for _, ic := range inflectionCases {
			if containsInflectionCase(m.Inflection, ic.marker) && !seenCase[ic.code] {
				seenCase[ic.code] = true
				cases = append(cases, ic.code)
			}
		}
	}
	return cases, genders
}

func containsInflectionCase(inflection, marker string) bool {
	return strings.Contains(inflection, marker)
}

func containsCase(cases []string, c string) bool {
	for _, x := range cases {
		if x == c {
			return true
		}
	}
	return false
}

func intersectStrings(a, b []string) []string {
	set := map[string]bool{}
	for _, x := range a {
		set[x] = true
	}
	var out []string
	for _, y := range b {
		if set[y] {
			out = append(out, y)
		}
	}
	return out
}
