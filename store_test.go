package sqlrecord

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type note struct {
	ID   int64  `db:"id"`
	Body string `db:"body"`
}

func (note) TableName() string { return "notes" }

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file:store_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := New(db, SQLite, nil)
	t.Cleanup(func() { _ = s.Close() })
	_, err = s.DB().Exec(`CREATE TABLE IF NOT EXISTS notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);`)
	require.NoError(t, err)
	return s
}

func countNotes(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	s := setupStore(t)

	err := s.WithTx(context.Background(), nil, func(txs *Store) error {
		return Insert(context.Background(), txs, note{ID: 1, Body: "ok"})
	})
	require.NoError(t, err)
	require.Equal(t, 1, countNotes(t, s), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	s := setupStore(t)

	err := s.WithTx(context.Background(), nil, func(txs *Store) error {
		e := Insert(context.Background(), txs, note{ID: 1, Body: "fail"})
		require.NoError(t, e)
		return errors.New("boom") // должно привести к ROLLBACK
	})
	require.Error(t, err)

	require.Equal(t, 0, countNotes(t, s), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	s := setupStore(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countNotes(t, s), "must rollback on panic")
	}()

	_ = s.WithTx(context.Background(), nil, func(txs *Store) error {
		e := Insert(context.Background(), txs, note{ID: 1, Body: "panic"})
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_NestedJoinsOuterTransaction(t *testing.T) {
	s := setupStore(t)

	err := s.WithTx(context.Background(), nil, func(outer *Store) error {
		inner := outer.WithTx(context.Background(), nil, func(txs *Store) error {
			return Insert(context.Background(), txs, note{ID: 1, Body: "inner"})
		})
		require.NoError(t, inner)

		e := Insert(context.Background(), outer, note{ID: 2, Body: "outer"})
		require.NoError(t, e)

		return errors.New("roll everything back")
	})
	require.Error(t, err)

	// the inner call joined the outer transaction, so nothing survives
	require.Equal(t, 0, countNotes(t, s))
}

func TestWithTx_BeginError(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Close()) // ломаем соединение

	err := s.WithTx(context.Background(), nil, func(txs *Store) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), SQLite, "file:open_tests?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, SQLite, s.Dialect())
	require.NotNil(t, s.DB())
	require.Equal(t, "sqlite", s.DB().DriverName())
}

func TestOpen_BadPostgresDSN(t *testing.T) {
	_, err := Open(context.Background(), Postgres, "://not-a-dsn", nil)
	require.Error(t, err)
}
