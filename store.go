package sqlrecord

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/sqlrecord/logging"
)

// Store holds the database handle the record operations run on. A Store
// from New or Open executes on the connection pool; the derived Store a
// WithTx callback receives executes on that transaction. The zero value is
// not usable.
type Store struct {
	db      *sqlx.DB
	ext     sqlx.ExtContext
	dialect Dialect
	log     logging.Logger
	inTx    bool
}

// New wraps an existing database handle. Pool settings stay the caller's
// business. A nil logger silences the store.
func New(db *sql.DB, d Dialect, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	x := sqlx.NewDb(db, d.DriverName())
	return &Store{db: x, ext: x, dialect: d, log: log}
}

// Open opens a database handle for the dialect and verifies it with a ping.
// The matching driver must be linked into the binary:
//
//	_ "github.com/jackc/pgx/v5/stdlib" // Postgres
//	_ "modernc.org/sqlite"             // SQLite
func Open(ctx context.Context, d Dialect, dsn string, log logging.Logger) (*Store, error) {
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return New(db, d, log), nil
}

// Dialect returns the engine the store was opened for.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// DB exposes the underlying handle for queries outside this package's
// surface.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx runs fn inside a single transaction. fn receives a derived Store
// bound to that transaction; the transaction is committed when fn returns
// nil and rolled back when it returns an error or panics (the panic is
// rethrown). When s is already transactional, fn simply joins the open
// transaction.
func (s *Store) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(s *Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	txs := &Store{db: s.db, ext: tx, dialect: s.dialect, log: s.log, inTx: true}
	err = fn(txs)
	return err
}
