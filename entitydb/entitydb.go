// Package entitydb abstracts the relational entity store recognize_entities
// queries (spec.md §1, §9: "Entity DB access — abstract behind a small
// query interface"). Row mirrors the scraperdb.py Entity table: a name, a
// governing verb ("er", "var", ...), and a one-line definition.
package entitydb

import "context"

// Row is one entity definition as returned by a prefix lookup.
type Row struct {
	Name       string
	Verb       string
	Definition string
	Authority  float64
}

// Lookup is the query surface the pipeline's recognize_entities stage
// consumes. The real implementation issues a parameterized SQL query;
// tests use an in-memory implementation.
type Lookup interface {
	// FindPrefix returns every row whose Name is exactly word or begins
	// with "word " (spec.md §4.9: `name LIKE "word %" OR name = "word"`).
	FindPrefix(ctx context.Context, word string) ([]Row, error)

	// Close releases the underlying session. A session supplied by the
	// caller (spec.md §5) is not closed here; Close is a no-op in that case.
	Close() error
}
