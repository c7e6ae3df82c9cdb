package pipeline

import (
	"strings"

	"github.com/hagstofa/toknun/pipeline/phrasematch"
)

// StaticPhrase is one entry in the static-phrase dictionary: a sequence of
// word texts that together carry a declared set of lexical meanings, e.g.
// "Fjármálaráðuneyti Íslands" as a single proper-noun WORD.
type StaticPhrase struct {
	Words    []string
	Meanings []Meaning
}

// DefaultStaticPhrases returns a small representative set.
func DefaultStaticPhrases() []StaticPhrase {
	return []StaticPhrase{
		{Words: []string{"í", "dag"}, Meanings: []Meaning{{Stem: "í dag", Category: "ao", Wordform: "í dag"}}},
		{Words: []string{"þar", "að", "auki"}, Meanings: []Meaning{{Stem: "þar að auki", Category: "ao", Wordform: "þar að auki"}}},
	}
}

// ParseStaticPhrases is the fifth pipeline stage (spec.md §4.5): an
// N-token longest-match replacer that fuses a run of WORD tokens matching
// a static-phrase dictionary entry into one synthetic WORD.
type ParseStaticPhrases struct {
	upstream      Producer
	matcher       *phrasematch.Matcher
	phrases       []StaticPhrase
	queued        []Token
	pending       []Token
	autoUppercase bool
}

// NewParseStaticPhrases wraps upstream with the static-phrase matcher.
func NewParseStaticPhrases(upstream Producer, phrases []StaticPhrase, autoUppercase bool) *ParseStaticPhrases {
	entries := make([]phrasematch.Phrase, len(phrases))
	for i, ph := range phrases {
		entries[i] = phrasematch.Phrase{Words: ph.Words, Payload: ph.Meanings}
	}
	return &ParseStaticPhrases{
		upstream:      upstream,
		matcher:       phrasematch.NewMatcher(phrasematch.NewDict(entries)),
		phrases:       phrases,
		autoUppercase: autoUppercase,
	}
}

func (p *ParseStaticPhrases) Next() (Token, bool, error) {
	for {
		if len(p.pending) > 0 {
			t := p.pending[0]
			p.pending = p.pending[1:]
			return t, true, nil
		}

		t, ok, err := p.upstream.Next()
		if err != nil {
			return Token{}, false, err
		}
		if !ok {
			if len(p.queued) > 0 {
				p.flushQueueUnmatched()
				continue
			}
			return Token{}, false, nil
		}

		if t.Kind != WORD {
			p.flushQueueUnmatched()
			p.pending = append(p.pending, t)
			continue
		}

		word := lower(t.Txt)
		if p.autoUppercase && len([]rune(word)) == 1 {
			// single-letter lowercase words are never phrase starters.
			p.flushQueueUnmatched()
			p.pending = append(p.pending, t)
			continue
		}

		extended, start, completedAt, completed := p.matcher.Feed(word)
		if extended || completed {
			p.queued = append(p.queued, t)
			if completed {
				p.flushQueueMatched(start, completedAt)
			}
			continue
		}

		// Does not extend; flush old queue, then try word as a fresh start.
		p.flushQueueUnmatched()
		extended, start, completedAt, completed = p.matcher.Feed(word)
		if extended || completed {
			p.queued = append(p.queued, t)
			if completed {
				p.flushQueueMatched(start, completedAt)
			}
			continue
		}
		p.pending = append(p.pending, t)
	}
}

func (p *ParseStaticPhrases) flushQueueUnmatched() {
	p.pending = append(p.pending, p.queued...)
	p.queued = nil
	p.matcher.Reset()
}

// flushQueueMatched emits the matched phrase's own synthetic WORD plus
// any leftover queued tokens before it that never joined the match (the
// start offset is nonzero when the phrase began mid-queue).
func (p *ParseStaticPhrases) flushQueueMatched(start, phraseIdx int) {
	leftover := p.queued[:start]
	matched := p.queued[start:]
	p.pending = append(p.pending, leftover...)

	var txt []string
	var errs []int
	for _, t := range matched {
		txt = append(txt, t.Txt)
		errs = CompoundError(errs, t.Err)
	}
	meanings := p.phrases[phraseIdx].Meanings
	p.pending = append(p.pending, Word(strings.Join(txt, " "), meanings, errs))
	p.queued = nil
	p.matcher.Reset()
}
