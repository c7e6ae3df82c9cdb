package pipeline

import "github.com/hagstofa/toknun/pipeline/phrasematch"

// AmbiguousPhrase declares, for a fixed word sequence, which lexical
// category each position should be pruned to.
type AmbiguousPhrase struct {
	Words      []string
	Categories []string // same length as Words
}

// DefaultAmbiguousPhrases returns a small representative set.
func DefaultAmbiguousPhrases() []AmbiguousPhrase {
	return []AmbiguousPhrase{
		{Words: []string{"í", "stað"}, Categories: []string{"fs", "kk"}},
	}
}

// DisambiguatePhrases is the tenth pipeline stage (spec.md §4.10): the
// same longest-match machinery as parse_static_phrases, but on a match it
// prunes each queued WORD's meanings to the category declared for that
// position instead of fusing the tokens.
type DisambiguatePhrases struct {
	upstream Producer
	matcher  *phrasematch.Matcher
	phrases  []AmbiguousPhrase
	queued   []Token
	pending  []Token
}

// NewDisambiguatePhrases wraps upstream with the ambiguous-phrase stage.
func NewDisambiguatePhrases(upstream Producer, phrases []AmbiguousPhrase) *DisambiguatePhrases {
	entries := make([]phrasematch.Phrase, len(phrases))
	for i, ph := range phrases {
		entries[i] = phrasematch.Phrase{Words: ph.Words, Payload: ph.Categories}
	}
	return &DisambiguatePhrases{
		upstream: upstream,
		matcher:  phrasematch.NewMatcher(phrasematch.NewDict(entries)),
		phrases:  phrases,
	}
}

func (d *DisambiguatePhrases) Next() (Token, bool, error) {
	for {
		if len(d.pending) > 0 {
			t := d.pending[0]
			d.pending = d.pending[1:]
			return t, true, nil
		}

		t, ok, err := d.upstream.Next()
		if err != nil {
			return Token{}, false, err
		}
		if !ok {
			if len(d.queued) > 0 {
				d.flushUnmatched()
				continue
			}
			return Token{}, false, nil
		}

		if t.Kind != WORD {
			d.flushUnmatched()
			d.pending = append(d.pending, t)
			continue
		}

		word := lower(t.Txt)
		extended, start, idx, completed := d.matcher.Feed(word)
		if extended || completed {
			d.queued = append(d.queued, t)
			if completed {
				d.flushMatched(start, idx)
			}
			continue
		}

		d.flushUnmatched()
		extended, start, idx, completed = d.matcher.Feed(word)
		if extended || completed {
			d.queued = append(d.queued, t)
			if completed {
				d.flushMatched(start, idx)
			}
			continue
		}
		d.pending = append(d.pending, t)
	}
}

func (d *DisambiguatePhrases) flushUnmatched() {
	d.pending = append(d.pending, d.queued...)
	d.queued = nil
	d.matcher.Reset()
}

// flushMatched prunes the matched phrase's tokens to their declared
// per-position category; any leftover queued tokens before the match's
// start (from a phrase that began mid-queue) pass through unpruned.
func (d *DisambiguatePhrases) flushMatched(start, phraseIdx int) {
	leftover := d.queued[:start]
	matched := d.queued[start:]
	d.pending = append(d.pending, leftover...)

	categories := d.phrases[phraseIdx].Categories
	for i, t := range matched {
		if i >= len(categories) {
			d.pending = append(d.pending, t)
			continue
		}
		cat := categories[i]
		pruned := pruneMeanings(t.Meanings, cat)
		if cat == "fs" && len(pruned) == 0 {
			pruned = []Meaning{{Stem: t.Txt, Category: "fs", Class: "alm", Wordform: t.Txt, Inflection: "-"}}
		}
		d.pending = append(d.pending, Word(t.Txt, pruned, t.Err))
	}
	d.queued = nil
	d.matcher.Reset()
}

func pruneMeanings(meanings []Meaning, category string) []Meaning {
	var out []Meaning
	for _, m := range meanings {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}
