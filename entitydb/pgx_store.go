package entitydb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStore is the primary Lookup implementation, backed by jackc/pgx/v5.
// It wraps a connection pool or a single transaction (when the caller
// supplies an enclosing session, spec.md §5).
type PgxStore struct {
	pool  *pgxpool.Pool
	tx    pgx.Tx
	owned bool
}

// OpenPgxStore opens a new pooled connection from dsn. The returned store
// owns the pool and closes it on Close.
func OpenPgxStore(ctx context.Context, dsn string) (*PgxStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, ConvertDBError(err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConvertDBError(err)
	}
	return &PgxStore{pool: pool, owned: true}, nil
}

// NewPgxStoreFromTx wraps a caller-supplied transaction; Close is a no-op
// since the caller owns its lifetime.
func NewPgxStoreFromTx(tx pgx.Tx) *PgxStore {
	return &PgxStore{tx: tx}
}

const entityPrefixQuery = `
SELECT name, verb, definition, authority
FROM entities
WHERE name = $1 OR name LIKE $2
ORDER BY authority DESC
`

func (s *PgxStore) FindPrefix(ctx context.Context, word string) ([]Row, error) {
	var rows pgx.Rows
	var err error
	if s.tx != nil {
		rows, err = s.tx.Query(ctx, entityPrefixQuery, word, word+" %")
	} else {
		rows, err = s.pool.Query(ctx, entityPrefixQuery, word, word+" %")
	}
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

func (s *PgxStore) Close() error {
	if s.owned && s.pool != nil {
		s.pool.Close()
	}
	return nil
}
