package store

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_GetInt64_Found(t *testing.T) {
	s, mock := newMockStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT value FROM kv WHERE key = \$1`).
		WithArgs("coins-9").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(int64(420)))

	v, ok, err := s.GetInt64(context.Background(), "coins-9")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(420), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetInt64_Missing(t *testing.T) {
	s, mock := newMockStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT value FROM kv WHERE key = \$1`).
		WithArgs("coins-9").
		WillReturnRows(pgxmock.NewRows([]string{"value"}))

	v, ok, err := s.GetInt64(context.Background(), "coins-9")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, v)
}

func TestPostgres_SetInt64_Upsert(t *testing.T) {
	s, mock := newMockStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO kv \(key, value\) VALUES \(\$1, \$2\)`).
		WithArgs("lastrenewal-3", int64(1700000000000)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SetInt64(context.Background(), "lastrenewal-3", 1700000000000)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetInt64_Error(t *testing.T) {
	s, mock := newMockStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO kv`).
		WithArgs("coins-1", int64(5)).
		WillReturnError(errors.New("connection reset"))

	err := s.SetInt64(context.Background(), "coins-1", 5)
	require.Error(t, err)
}

func TestPostgres_Delete(t *testing.T) {
	s, mock := newMockStore(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM kv WHERE key = \$1`).
		WithArgs("coins-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, s.Delete(context.Background(), "coins-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
