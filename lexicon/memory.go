package lexicon

import (
	"strings"
	"sync"

	"github.com/hagstofa/toknun/pipeline"
)

// MemoryLexicon is an in-memory pipeline.Lexicon backed by a map from
// lowercased wordform to its meanings. It is the reference test
// implementation spec.md §9 calls for ("the test implementation is
// in-memory"), and is suitable for small deployments that load a
// snapshot of a morphological dictionary at startup.
type MemoryLexicon struct {
	mu      sync.RWMutex
	byWord  map[string][]pipeline.Meaning
	byExact map[string][]pipeline.Meaning // exact-case entries, e.g. compounds
	closed  bool
}

var _ pipeline.Lexicon = (*MemoryLexicon)(nil)

// NewMemoryLexicon builds a MemoryLexicon from a flat list of meanings,
// indexing each by its lowercased Wordform.
func NewMemoryLexicon(meanings []pipeline.Meaning) *MemoryLexicon {
	l := &MemoryLexicon{
		byWord:  make(map[string][]pipeline.Meaning),
		byExact: make(map[string][]pipeline.Meaning),
	}
	for _, m := range meanings {
		key := strings.ToLower(m.Wordform)
		l.byWord[key] = append(l.byWord[key], m)
		l.byExact[m.Wordform] = append(l.byExact[m.Wordform], m)
	}
	return l
}

// Add inserts additional meanings, e.g. to register a composite word
// formed by the composite-hyphen resolver.
func (l *MemoryLexicon) Add(m pipeline.Meaning) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := strings.ToLower(m.Wordform)
	l.byWord[key] = append(l.byWord[key], m)
	l.byExact[m.Wordform] = append(l.byExact[m.Wordform], m)
}

func (l *MemoryLexicon) LookupWord(txt string, atSentenceStart, autoUppercase bool) (string, []pipeline.Meaning, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if m, ok := l.byExact[txt]; ok {
		return txt, m, nil
	}
	lower := strings.ToLower(txt)
	if m, ok := l.byWord[lower]; ok {
		// Word matched case-insensitively: at sentence start, or when
		// auto-uppercasing is requested, prefer the dictionary's own
		// canonical casing if it differs only in case.
		canonical := txt
		if atSentenceStart || autoUppercase {
			if exact, ok := l.byExact[capitalize(lower)]; ok {
				return capitalize(lower), exact, nil
			}
		}
		return canonical, m, nil
	}
	return txt, nil, nil
}

func (l *MemoryLexicon) Meanings(compound string) ([]pipeline.Meaning, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if m, ok := l.byExact[compound]; ok {
		return m, nil
	}
	return nil, nil
}

func (l *MemoryLexicon) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
