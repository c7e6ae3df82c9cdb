package entitydb

import (
	"context"
	"strings"
)

// MemoryStore is an in-memory Lookup, the test implementation spec.md §9
// calls for.
type MemoryStore struct {
	rows []Row
}

// NewMemoryStore builds a MemoryStore from a fixed row set.
func NewMemoryStore(rows []Row) *MemoryStore {
	return &MemoryStore{rows: rows}
}

func (s *MemoryStore) FindPrefix(_ context.Context, word string) ([]Row, error) {
	var out []Row
	prefix := word + " "
	for _, r := range s.rows {
		if r.Name == word || strings.HasPrefix(r.Name, prefix) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
