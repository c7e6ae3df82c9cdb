package pipeline

import (
	"context"
	"strings"

	"github.com/hagstofa/toknun/entitycache"
	"github.com/hagstofa/toknun/entitydb"
)

// RecognizeEntities is the ninth pipeline stage (spec.md §4.9): an
// N-token longest-match entity recognizer backed by a database, which
// also maintains a last-word -> full-name map so that a later bare
// surname resolves back to the full name it was first seen with.
type RecognizeEntities struct {
	upstream Producer
	db       entitydb.Lookup
	cache    entitycache.Cache
	lex      Lexicon
	abbrev   Abbreviations

	queued []Token
	state  map[string][]entityStep

	lastnames map[string]Token
	pending   []Token
	ctx       context.Context
}

type entityStep struct {
	row     entitydb.Row
	wordIdx int
}

// NewRecognizeEntities wraps upstream with the entity-recognition stage.
// db is queried lazily, one first-word lookup per cache miss.
func NewRecognizeEntities(ctx context.Context, upstream Producer, db entitydb.Lookup, cache entitycache.Cache, lex Lexicon, abbrev Abbreviations) *RecognizeEntities {
	return &RecognizeEntities{
		upstream:  upstream,
		db:        db,
		cache:     cache,
		lex:       lex,
		abbrev:    abbrev,
		lastnames: make(map[string]Token),
		ctx:       ctx,
	}
}

func (r *RecognizeEntities) Next() (Token, bool, error) {
	for {
		if len(r.pending) > 0 {
			t := r.pending[0]
			r.pending = r.pending[1:]
			return t, true, nil
		}

		t, ok, err := r.upstream.Next()
		if err != nil {
			return Token{}, false, err
		}
		if !ok {
			r.flushQueue()
			if len(r.pending) > 0 {
				continue
			}
			return Token{}, false, nil
		}

		if t.Kind != WORD {
			r.flushQueue()
			r.pending = append(r.pending, r.resolveLastname(t))
			continue
		}

		if r.isAutoUppercaseAbbrev(t.Txt) {
			r.flushQueue()
			r.pending = append(r.pending, r.resolveLastname(t))
			continue
		}

		if r.extend(t) {
			continue
		}

		r.flushQueue()
		if r.extend(t) {
			continue
		}
		r.pending = append(r.pending, r.resolveLastname(t))
	}
}

// extend attempts to grow the current match with word token t; returns
// true if t was consumed into the queue (whether or not a match just
// completed).
func (r *RecognizeEntities) extend(t Token) bool {
	if r.state == nil {
		rows, err := r.lookupFirstWord(t.Txt)
		if err != nil {
			return false
		}
		if len(rows) == 0 {
			return false
		}
		r.state = make(map[string][]entityStep)
		for _, row := range rows {
			words := strings.Fields(row.Name)
			if len(words) == 0 || !strings.EqualFold(words[0], t.Txt) {
				continue
			}
			if len(words) == 1 {
				r.state["\x00complete"] = append(r.state["\x00complete"], entityStep{row: row})
				continue
			}
			r.state[words[1]] = append(r.state[words[1]], entityStep{row: row, wordIdx: 1})
		}
		if len(r.state) == 0 {
			r.state = nil
			return false
		}
		r.queued = append(r.queued, t)
		r.updateLastnames()
		return true
	}

	next := make(map[string][]entityStep)
	matchedAny := false
	for _, st := range r.state[t.Txt] {
		words := strings.Fields(st.row.Name)
		idx := st.wordIdx + 1
		matchedAny = true
		if idx >= len(words) {
			next["\x00complete"] = append(next["\x00complete"], entityStep{row: st.row})
			continue
		}
		next[words[idx]] = append(next[words[idx]], entityStep{row: st.row, wordIdx: idx})
	}
	if !matchedAny {
		return false
	}
	r.state = next
	r.queued = append(r.queued, t)
	r.updateLastnames()
	return true
}

func (r *RecognizeEntities) lookupFirstWord(word string) ([]entitydb.Row, error) {
	if rows, ok, err := r.cache.Get(r.ctx, word); err == nil && ok {
		return rows, nil
	}
	rows, err := r.db.FindPrefix(r.ctx, word)
	if err != nil {
		return nil, NewPipelineError("recognize_entities", err)
	}
	_ = r.cache.Set(r.ctx, word, rows)
	return rows, nil
}

// updateLastnames seeds the lastnames map with the full text of the
// in-progress match, keyed by its final word, removing any shorter
// intermediate-word entry that would now collide.
func (r *RecognizeEntities) updateLastnames() {
	if len(r.queued) < 2 {
		return
	}
	last := r.queued[len(r.queued)-1]
	if !startsUpper(r.queued[0].Txt) {
		return
	}
	if r.isPatronymOrMatronym(last.Txt) {
		return
	}
	var txt []string
	for _, q := range r.queued {
		txt = append(txt, q.Txt)
	}
	joined := strings.Join(txt, " ")
	full := Token{Kind: ENTITY, Txt: joined, Entity: []EntityDef{{Name: joined}}}
	for _, q := range r.queued[:len(r.queued)-1] {
		delete(r.lastnames, q.Txt)
	}
	r.lastnames[last.Txt] = full
}

// isPatronymOrMatronym implements the supplemented exclusion rule
// (SPEC_FULL.md §D.5): a lexicon lookup for class föð/móð stops a word
// from being seeded as a lastnames key.
func (r *RecognizeEntities) isPatronymOrMatronym(word string) bool {
	if r.lex == nil {
		return false
	}
	meanings, err := r.lex.Meanings(word)
	if err != nil {
		return false
	}
	for _, m := range meanings {
		if m.Category == "föð" || m.Category == "móð" {
			return true
		}
	}
	return false
}

func (r *RecognizeEntities) flushQueue() {
	if len(r.queued) == 0 {
		r.state = nil
		return
	}
	if steps, ok := r.state["\x00complete"]; ok && len(steps) > 0 {
		row := steps[len(steps)-1].row
		var txt []string
		var errs []int
		for _, q := range r.queued {
			txt = append(txt, q.Txt)
			errs = CompoundError(errs, q.Err)
		}
		r.pending = append(r.pending, Token{
			Kind: ENTITY, Txt: strings.Join(txt, " "),
			Entity: []EntityDef{{Name: row.Name, Verb: row.Verb, Definition: row.Definition}},
			Err:    errs,
		})
	} else {
		r.pending = append(r.pending, r.queued...)
	}
	r.queued = nil
	r.state = nil
}

// resolveLastname rewrites a single-token uppercase WORD that matches a
// previously-seen lastnames entry into an ENTITY referring to the full form.
func (r *RecognizeEntities) resolveLastname(t Token) Token {
	if t.Kind != WORD || !startsUpper(t.Txt) {
		return t
	}
	if full, ok := r.lastnames[t.Txt]; ok {
		return Token{Kind: full.Kind, Txt: t.Txt, Entity: full.Entity, Person: full.Person, Err: t.Err}
	}
	if stripped := strings.TrimSuffix(t.Txt, "s"); stripped != t.Txt {
		if full, ok := r.lastnames[stripped]; ok {
			return Token{Kind: full.Kind, Txt: t.Txt, Entity: full.Entity, Person: full.Person, Err: t.Err}
		}
	}
	return t
}

func (r *RecognizeEntities) isAutoUppercaseAbbrev(txt string) bool {
	return len([]rune(txt)) == 1 && r.abbrev.Singles[lower(txt)]
}
