package entitydb

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPQStoreFindPrefixScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "verb", "definition", "authority"}).
		AddRow("Jón Jónsson", "er", "forsætisráðherra", 0.9)
	mock.ExpectQuery("SELECT name, verb, definition, authority").
		WithArgs("Jón", "Jón %").
		WillReturnRows(rows)

	store := NewPQStoreFromDB(db)
	out, err := store.FindPrefix(context.Background(), "Jón")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Jón Jónsson", out[0].Name)
	assert.Equal(t, 0.9, out[0].Authority)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPQStoreFindPrefixConvertsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, verb, definition, authority").
		WillReturnError(errors.New("connection refused"))

	store := NewPQStoreFromDB(db)
	_, err = store.FindPrefix(context.Background(), "Jón")
	assert.ErrorIs(t, err, ErrConnFailed)
}

func TestPQStoreCloseIsNoOpForBorrowedDB(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPQStoreFromDB(db)
	assert.NoError(t, store.Close())
}
