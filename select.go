package sqlrecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DefaultBatchSize is the chunk size SelectInBatches falls back to when the
// caller passes size <= 0.
const DefaultBatchSize = 100

// SelectOne returns the first row matching the where fragment, or (nil, nil)
// when nothing matches.
func SelectOne[T Model](ctx context.Context, s *Store, where string) (*T, error) {
	t, err := tableFor[T]()
	if err != nil {
		return nil, err
	}
	q, err := t.SelectSQL(where)
	if err != nil {
		return nil, err
	}
	var rec T
	err = sqlx.GetContext(ctx, s.ext, &rec, q)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.Name, err)
	}
	return &rec, nil
}

// SelectAll returns every row matching the where fragment. An empty where
// fragment selects the whole table.
func SelectAll[T Model](ctx context.Context, s *Store, where string) ([]T, error) {
	t, err := tableFor[T]()
	if err != nil {
		return nil, err
	}
	q, err := t.SelectSQL(where)
	if err != nil {
		return nil, err
	}
	var recs []T
	if err := sqlx.SelectContext(ctx, s.ext, &recs, q); err != nil {
		return nil, fmt.Errorf("select %s: %w", t.Name, err)
	}
	return recs, nil
}

// SelectInBatches streams the matching rows through fn in chunks of size,
// reading the whole result set on one cursor. Every chunk is freshly
// allocated, so fn may keep it. A non-nil error from fn stops the iteration
// and is returned as is; the final partial chunk is delivered last.
func SelectInBatches[T Model](ctx context.Context, s *Store, where string, size int, fn func(batch []T) error) error {
	if fn == nil {
		return errors.New("nil batch callback")
	}
	if size <= 0 {
		size = DefaultBatchSize
	}
	t, err := tableFor[T]()
	if err != nil {
		return err
	}
	q, err := t.SelectSQL(where)
	if err != nil {
		return err
	}

	rows, err := s.ext.QueryxContext(ctx, q)
	if err != nil {
		return fmt.Errorf("select %s: %w", t.Name, err)
	}
	defer rows.Close()

	batch := make([]T, 0, size)
	for rows.Next() {
		var rec T
		if err := rows.StructScan(&rec); err != nil {
			return fmt.Errorf("select %s: %w", t.Name, err)
		}
		batch = append(batch, rec)
		if len(batch) == size {
			if err := fn(batch); err != nil {
				return err
			}
			batch = make([]T, 0, size)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("select %s: %w", t.Name, err)
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}
