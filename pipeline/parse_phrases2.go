package pipeline

import "strings"

// NameDictionaries holds the config-driven tables the name accumulator
// needs (spec.md §4.8).
type NameDictionaries struct {
	// NotNameAtSentenceStart blacklists given names that are disallowed
	// as a PERSON candidate at sentence start (SPEC_FULL.md §D.6).
	NotNameAtSentenceStart map[string]bool
	// NobiliaryParticles are surname-joining particles: van, de, den, der, el, al.
	NobiliaryParticles map[string]bool
	// NamePreferences allow-lists a word that would otherwise be treated
	// as a weak name and reverted to WORD.
	NamePreferences map[string]bool
	// CurrencyNouns maps a currency-noun text to its ISO code for the
	// NUMBER+currency->AMOUNT rule; it is separate from parse_phrases1's
	// currency tables.
	CurrencyNouns map[string]string
}

// DefaultNameDictionaries returns a small representative default.
func DefaultNameDictionaries() NameDictionaries {
	return NameDictionaries{
		NotNameAtSentenceStart: map[string]bool{"Annar": true, "Önnur": true},
		NobiliaryParticles:     map[string]bool{"van": true, "de": true, "den": true, "der": true, "el": true, "al": true},
		NamePreferences:        map[string]bool{},
		CurrencyNouns: map[string]string{
			"krónur": "ISK", "dollarar": "USD", "pund": "GBP", "evrur": "EUR",
		},
	}
}

// ParsePhrases2 is the eighth pipeline stage (spec.md §4.8): single
// lookahead, folding NUMBER+currency into AMOUNT, TIME+DATE into
// TIMESTAMP, and accumulating multi-word person names with gender/case
// agreement.
type ParsePhrases2 struct {
	upstream        Producer
	dict            NameDictionaries
	names           []PersonName // previously-seen full names, for lastname-style substitution within this stage
	queue           []Token
	upErr           error
	upDone          bool
	atSentenceStart bool
}

// NewParsePhrases2 wraps upstream with the name-accumulation stage.
func NewParsePhrases2(upstream Producer, dict NameDictionaries) *ParsePhrases2 {
	return &ParsePhrases2{upstream: upstream, dict: dict, atSentenceStart: true}
}

func (p *ParsePhrases2) lookahead(n int) ([]Token, error) {
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

func (p *ParsePhrases2) consume(n int) { p.queue = p.queue[n:] }

func (p *ParsePhrases2) fill() (Token, bool, error) {
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

func (p *ParsePhrases2) Next() (Token, bool, error) {
	cur, ok, err := p.fill()
	if err != nil || !ok {
		return Token{}, ok, err
	}

	wasSentenceStart := p.atSentenceStart
	if cur.Kind != PUNCTUATION {
		p.atSentenceStart = false
	}
	if cur.Kind == SBEGIN {
		p.atSentenceStart = true
	}
	if cur.Kind == PUNCTUATION && cur.Txt == ":" {
		p.atSentenceStart = true
	}

	// NUMBER + currency -> AMOUNT
	if cur.Kind == NUMBER {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 {
			next := la[0]
			if next.Kind == CURRENCY {
				p.consume(1)
				return Token{Kind: AMOUNT, Txt: cur.Txt + " " + next.Txt, Amount: AmountVal{
					Value: cur.Number.Value, ISO: next.Currency.ISO,
					Cases: intersectStrings(cur.Number.Cases, next.Currency.Cases), Genders: next.Currency.Genders,
				}, Err: CompoundError(cur.Err, next.Err)}, true, nil
			}
			if next.Kind == WORD {
				if iso, ok := p.dict.CurrencyNouns[lower(next.Txt)]; ok {
					p.consume(1)
					return Token{Kind: AMOUNT, Txt: cur.Txt + " " + next.Txt, Amount: AmountVal{
						Value: cur.Number.Value, ISO: iso, Cases: cur.Number.Cases,
					}, Err: CompoundError(cur.Err, next.Err)}, true, nil
				}
			}
		}
	}

	// TIME + DATEABS/DATEREL -> TIMESTAMP family
	if cur.Kind == TIME {
		if la, lerr := p.lookahead(1); lerr == nil && len(la) == 1 {
			next := la[0]
			if next.Kind == DATEABS || next.Kind == DATEREL {
				p.consume(1)
				kind := TIMESTAMPREL
				if next.Kind == DATEABS {
					kind = TIMESTAMPABS
				}
				return Token{Kind: kind, Txt: cur.Txt + " " + next.Txt, Timestamp: TimestampVal{
					Y: next.Date.Y, Mo: next.Date.M, D: next.Date.D, H: cur.Time.H, M: cur.Time.M, S: cur.Time.S,
				}, Err: CompoundError(cur.Err, next.Err)}, true, nil
			}
		}
	}

	// Generic-name class "nafn" converts directly to PERSON.
	if cur.Kind == WORD && len(cur.Meanings) > 0 && cur.Meanings[0].Category == "nafn" {
		gender := firstGenderOf(cur.Meanings)
		var cands []PersonName
		for _, c := range []string{"nf", "þf", "þgf", "ef"} {
			cands = append(cands, PersonName{Name: cur.Txt, Gender: gender, Case: c})
		}
		return Token{Kind: PERSON, Txt: cur.Txt, Person: cands, Err: cur.Err}, true, nil
	}

	// Given-name detection.
	if cur.Kind == WORD && startsUpper(cur.Txt) && !(wasSentenceStart && p.dict.NotNameAtSentenceStart[cur.Txt]) {
		cands := givenNameCandidates(cur)
		if len(cands) > 0 {
			return p.accumulate(cur, cands, wasSentenceStart)
		}
	}

	return cur, true, nil
}

// givenNameCandidates returns PersonName candidates for a WORD with a
// singular (ET) "ism" meaning.
func givenNameCandidates(t Token) []PersonName {
	var cands []PersonName
	for _, m := range t.Meanings {
		if m.Category != "ism" {
			continue
		}
		if !strings.Contains(m.Inflection, "ET") {
			continue
		}
		c := inflectionToCase(m.Inflection)
		cands = append(cands, PersonName{Name: t.Txt, Gender: genderOf(m), Case: c})
	}
	return cands
}

// accumulate greedily extends a name-candidate sequence over given names,
// middle initials, nobiliary particles, and patronym/matronym surnames,
// then applies the weak-name backoff (spec.md §4.8).
func (p *ParsePhrases2) accumulate(first Token, cands []PersonName, atStart bool) (Token, bool, error) {
	fullTxt := first.Txt
	errs := first.Err
	patronym := false
	wordCount := 1

	for {
		la, lerr := p.lookahead(1)
		if lerr != nil {
			return Token{}, false, lerr
		}
		if len(la) != 1 {
			break
		}
		next := la[0]

		if next.Kind == WORD {
			if extra := givenNameCandidates(next); len(extra) > 0 {
				if merged, ok := compatibleMerge(cands, extra); ok {
					cands = merged
					fullTxt += " " + next.Txt
					errs = CompoundError(errs, next.Err)
					wordCount++
					p.consume(1)
					continue
				}
			}
			if isMiddleInitial(next.Txt) || p.dict.NobiliaryParticles[lower(next.Txt)] {
				extra := []PersonName{{Name: next.Txt}}
				merged, _ := compatibleMerge(cands, extra)
				cands = merged
				fullTxt += " " + next.Txt
				errs = CompoundError(errs, next.Err)
				wordCount++
				p.consume(1)
				continue
			}
			if isSurnameClass(next.Meanings, "föð") || isSurnameClass(next.Meanings, "móð") {
				extra := surnameCandidates(next)
				if merged, ok := compatibleMerge(cands, extra); ok {
					cands = merged
					fullTxt += " " + next.Txt
					errs = CompoundError(errs, next.Err)
					patronym = true
					wordCount++
					p.consume(1)
				}
				break
			}
			if !patronym && startsUpper(next.Txt) && isUnknownSurnameCandidate(next) {
				extra := []PersonName{{Name: next.Txt}}
				merged, _ := compatibleMerge(cands, extra)
				cands = merged
				fullTxt += " " + next.Txt
				errs = CompoundError(errs, next.Err)
				patronym = true
				wordCount++
				p.consume(1)
				continue
			}
		}
		break
	}

	personTok := Token{Kind: PERSON, Txt: fullTxt, Person: cands, Err: errs}

	if patronym {
		p.names = append(p.names, cands...)
		return personTok, true, nil
	}

	if full, ok := p.matchKnownName(cands); ok {
		personTok.Person = full
	} else if isWeakName(first, atStart, wordCount, patronym, p.dict) {
		return Word(first.Txt, first.Meanings, first.Err), true, nil
	}
	return personTok, true, nil
}

func compatibleMerge(cands, next []PersonName) ([]PersonName, bool) {
	var out []PersonName
	for _, c := range cands {
		for _, n := range next {
			if c.Compatible(n) {
				merged := c
				if n.Gender != "" {
					merged.Gender = n.Gender
				}
				if n.Case != "" {
					merged.Case = n.Case
				}
				merged.Name = c.Name + " " + n.Name
				out = append(out, merged)
			}
		}
	}
	if len(out) == 0 {
		return cands, false
	}
	return out, true
}

func surnameCandidates(t Token) []PersonName {
	var out []PersonName
	for _, m := range t.Meanings {
		if m.Category != "föð" && m.Category != "móð" {
			continue
		}
		out = append(out, PersonName{Name: t.Txt, Gender: genderOf(m), Case: inflectionToCase(m.Inflection)})
	}
	return out
}

func isSurnameClass(meanings []Meaning, class string) bool {
	for _, m := range meanings {
		if m.Category == class {
			return true
		}
	}
	return false
}

func isUnknownSurnameCandidate(t Token) bool {
	if !startsUpper(t.Txt) {
		return false
	}
	if isAllUpper(t.Txt) {
		return false // looks like an acronym
	}
	return true
}

func isAllUpper(s string) bool {
	has := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			has = true
		}
	}
	return has
}

func isMiddleInitial(txt string) bool {
	s := strings.Trim(txt, "[].")
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	return startsUpper(s)
}

func (p *ParsePhrases2) matchKnownName(cands []PersonName) ([]PersonName, bool) {
	for _, seen := range p.names {
		for _, c := range cands {
			if c.Gender != "" && seen.Gender != "" && c.Gender != seen.Gender {
				continue
			}
			if strings.HasPrefix(seen.Name, c.Name) {
				return []PersonName{seen}, true
			}
		}
	}
	return nil, false
}

// isWeakName implements the weak-name backoff: at-sentence-start AND
// single token AND not patronym AND no previously-seen match AND the
// word has other non-ism meanings AND not in the name-preferences
// allow-list. numWords is the count of accumulated name words (not the
// candidate-meaning count), so a multi-word accumulation that fell
// through to here (no patronym, no known-name match) is never reverted.
func isWeakName(t Token, atStart bool, numWords int, patronym bool, dict NameDictionaries) bool {
	if !atStart || numWords != 1 || patronym {
		return false
	}
	if dict.NamePreferences[t.Txt] {
		return false
	}
	for _, m := range t.Meanings {
		if m.Category != "ism" {
			return true
		}
	}
	return false
}

func genderOf(m Meaning) string {
	switch m.Category {
	case "kk", "kvk", "hk":
		return m.Category
	}
	return ""
}

func firstGenderOf(meanings []Meaning) string {
	if len(meanings) == 0 {
		return ""
	}
	return genderOf(meanings[0])
}

func inflectionToCase(inflection string) string {
	for _, c := range []string{"NF", "ÞF", "ÞGF", "EF"} {
		if strings.Contains(inflection, c) {
			switch c {
			case "NF":
				return "nf"
			case "ÞF":
				return "þf"
			case "ÞGF":
				return "þgf"
			case "EF":
				return "ef"
			}
		}
	}
	return ""
}
