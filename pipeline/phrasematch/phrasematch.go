// Package phrasematch implements the N-token longest-match state machine
// shared by the static-phrase replacer and the ambiguous-phrase
// disambiguator (spec.md §4.5, §4.10): both walk a token stream holding a
// queue of provisionally-matched tokens and a map from "next expected
// word" to the set of phrases still reachable from that point.
package phrasematch

// Phrase is one entry in a phrase dictionary: an ordered list of word
// texts (lowercased) plus an opaque payload returned on a full match.
type Phrase struct {
	Words   []string
	Payload any
}

// step is one node reachable from the current queue: the words still
// needed to complete phrase Index, and whether this queue already spells
// out a complete match (Words empty). Start records the queue position
// (before the word that began this candidate was appended) so a
// completion occurring mid-queue can report exactly which suffix of the
// queue the matched phrase spans.
type step struct {
	Words []string
	Index int
	Start int
}

// Dict indexes a set of phrases by their starting word for efficient
// lookahead and supports descending into per-position state.
type Dict struct {
	phrases []Phrase
	starts  map[string][]int // word -> phrase indices beginning with it
}

// NewDict builds a Dict from phrases. Phrase word texts should already be
// lowercased by the caller except where a proper noun requires exact case.
func NewDict(phrases []Phrase) *Dict {
	d := &Dict{phrases: phrases, starts: make(map[string][]int)}
	for i, ph := range phrases {
		if len(ph.Words) == 0 {
			continue
		}
		w := ph.Words[0]
		d.starts[w] = append(d.starts[w], i)
	}
	return d
}

// Matcher walks one token stream against a Dict, tracking the queue of
// provisionally-matched tokens and the current reachable-state map.
type Matcher struct {
	dict    *Dict
	queue   []string  // word texts queued so far
	state   map[string][]step // next expected word -> reachable continuations
}

// NewMatcher starts a fresh matcher over dict.
func NewMatcher(dict *Dict) *Matcher {
	return &Matcher{dict: dict, state: make(map[string][]step)}
}

// Reset clears the queue and state, as when a non-word token flushes the
// match in progress.
func (m *Matcher) Reset() {
	m.queue = nil
	m.state = make(map[string][]step)
}

// QueueLen reports how many tokens are currently queued.
func (m *Matcher) QueueLen() int { return len(m.queue) }

// Feed advances the matcher by one word. It returns:
//   - extended: true if, after word, at least one phrase (in progress or
//     started by word) still needs more words, whether or not word also
//     completed one — the caller should keep queueing.
//   - start: when completed, the queue position where the completed
//     phrase begins (so the caller can slice the words it queued into
//     the leftover prefix and the matched suffix). Meaningless when
//     completed is false.
//   - completedAt: the dictionary index of the completed phrase, or -1.
//   - completed: true if queueing word completed at least one phrase.
//
// A word may both extend an in-progress phrase and begin a brand new one
// (e.g. phrases "a b c" and "b c" both reachable after "a b"): every word
// is checked against the dictionary's starting words regardless of
// whether the queue is already non-empty, so shorter phrases overlapping
// a longer one in progress are never missed. When more than one phrase
// completes on the same word, the longest match wins (smallest start);
// ties break on the lower phrase index, so the result never depends on
// map iteration order.
func (m *Matcher) Feed(word string) (extended bool, start int, completedAt int, completed bool) {
	next := make(map[string][]step)
	start = -1
	completedAt = -1

	consider := func(st step) {
		if len(st.Words) == 0 {
			if !completed || st.Start < start || (st.Start == start && st.Index < completedAt) {
				completed = true
				start = st.Start
				completedAt = st.Index
			}
			return
		}
		nw := st.Words[0]
		next[nw] = append(next[nw], step{Words: st.Words[1:], Index: st.Index, Start: st.Start})
		extended = true
	}

	// Try to extend any state reachable via word.
	for _, st := range m.state[word] {
		consider(st)
	}

	// word may also itself begin one or more new phrases, whether or not
	// the queue is already mid-match.
	for _, idx := range m.dict.starts[word] {
		ph := m.dict.phrases[idx]
		consider(step{Words: ph.Words[1:], Index: idx, Start: len(m.queue)})
	}

	if extended || completed {
		m.queue = append(m.queue, word)
		m.state = next
	}
	return extended, start, completedAt, completed
}

// Payload returns the payload for phrase index idx.
func (m *Matcher) Payload(idx int) any {
	return m.phrase(idx).Payload
}

func (m *Matcher) phrase(idx int) Phrase {
	return m.dict.phrases[idx]
}

// Queue returns a copy of the currently queued word texts.
func (m *Matcher) Queue() []string {
	out := make([]string, len(m.queue))
	copy(out, m.queue)
	return out
}

// StartsPhrase reports whether word begins at least one phrase in dict,
// used by callers to decide whether a token that fails to extend the
// current match should instead begin a new one.
func (m *Matcher) StartsPhrase(word string) bool {
	return len(m.dict.starts[word]) > 0
}
