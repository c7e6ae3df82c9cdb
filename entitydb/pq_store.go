package entitydb

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

// PQStore is the secondary Lookup implementation, backed by database/sql
// and lib/pq, selected when the configured database driver is "pq"
// (PgxStore is used otherwise), whatever the DSN's scheme.
type PQStore struct {
	db    *sql.DB
	owned bool
}

// OpenPQStore opens a new database/sql connection via lib/pq.
func OpenPQStore(ctx context.Context, dsn string) (*PQStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, ConvertDBError(err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ConvertDBError(err)
	}
	return &PQStore{db: db, owned: true}, nil
}

// NewPQStoreFromDB wraps a caller-supplied *sql.DB (e.g. under go-sqlmock
// in tests); Close is a no-op since the caller owns its lifetime.
func NewPQStoreFromDB(db *sql.DB) *PQStore {
	return &PQStore{db: db}
}

func (s *PQStore) FindPrefix(ctx context.Context, word string) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, entityPrefixQuery, word, word+" %")
	if err != nil {
		return nil, ConvertDBError(err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Name, &r.Verb, &r.Definition, &r.Authority); err != nil {
			return nil, ConvertDBError(err)
		}
		out = append(out, r)
	}
	return out, ConvertDBError(rows.Err())
}

func (s *PQStore) Close() error {
	if s.owned && s.db != nil {
		return s.db.Close()
	}
	return nil
}
