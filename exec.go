package sqlrecord

import (
	"context"
	"fmt"
)

// Insert writes one record as a new row.
func Insert[T Model](ctx context.Context, s *Store, rec T) error {
	t, err := TableOf(rec)
	if err != nil {
		return err
	}
	return s.execNamed(ctx, "insert", t.Name, t.InsertSQL(), rec)
}

// Upsert inserts the record or, when a row with the same key column values
// already exists, rewrites that row's remaining columns. The key columns
// must be covered by a unique index or primary key.
func Upsert[T Model](ctx context.Context, s *Store, rec T, keys ...string) error {
	t, err := TableOf(rec)
	if err != nil {
		return err
	}
	q, err := t.UpsertSQL(keys...)
	if err != nil {
		return err
	}
	return s.execNamed(ctx, "upsert", t.Name, q, rec)
}

// Update rewrites the non-key columns of the row matching the record's key
// column values. Matching no rows is not an error.
func Update[T Model](ctx context.Context, s *Store, rec T, keys ...string) error {
	t, err := TableOf(rec)
	if err != nil {
		return err
	}
	q, err := t.UpdateSQL(keys...)
	if err != nil {
		return err
	}
	return s.execNamed(ctx, "update", t.Name, q, rec)
}

// Delete removes the row matching the record's key column values. Matching
// no rows is not an error.
func Delete[T Model](ctx context.Context, s *Store, rec T, keys ...string) error {
	t, err := TableOf(rec)
	if err != nil {
		return err
	}
	q, err := t.DeleteSQL(keys...)
	if err != nil {
		return err
	}
	return s.execNamed(ctx, "delete", t.Name, q, rec)
}

// InsertAll writes every record in one transaction.
func InsertAll[T Model](ctx context.Context, s *Store, recs []T) error {
	return execAll(ctx, s, "insert", recs, func(t *Table) (string, error) {
		return t.InsertSQL(), nil
	})
}

// UpsertAll upserts every record in one transaction, keyed on the same
// columns.
func UpsertAll[T Model](ctx context.Context, s *Store, recs []T, keys ...string) error {
	return execAll(ctx, s, "upsert", recs, func(t *Table) (string, error) {
		return t.UpsertSQL(keys...)
	})
}

// UpdateAll updates every record in one transaction, keyed on the same
// columns.
func UpdateAll[T Model](ctx context.Context, s *Store, recs []T, keys ...string) error {
	return execAll(ctx, s, "update", recs, func(t *Table) (string, error) {
		return t.UpdateSQL(keys...)
	})
}

// DeleteAll deletes every record in one transaction, keyed on the same
// columns.
func DeleteAll[T Model](ctx context.Context, s *Store, recs []T, keys ...string) error {
	return execAll(ctx, s, "delete", recs, func(t *Table) (string, error) {
		return t.DeleteSQL(keys...)
	})
}

// execAll runs one generated statement per record inside a single
// transaction, so a batch lands all-or-nothing. An empty batch logs a
// warning and is not an error.
func execAll[T Model](ctx context.Context, s *Store, op string, recs []T, gen func(*Table) (string, error)) error {
	t, err := tableFor[T]()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		s.log.Warn(ctx, "empty batch", "op", op, "table", t.Name)
		return nil
	}
	q, err := gen(t)
	if err != nil {
		return err
	}
	return s.WithTx(ctx, nil, func(txs *Store) error {
		for _, rec := range recs {
			if err := txs.execNamed(ctx, op, t.Name, q, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// execNamed binds the record's fields into the named statement and runs it.
// Driver errors pass through wrapped with the operation and table.
func (s *Store) execNamed(ctx context.Context, op, table, query string, rec any) error {
	q, args, err := s.ext.BindNamed(query, rec)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	if _, err := s.ext.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("%s %s: %w", op, table, err)
	}
	return nil
}

// tableFor introspects the record type without needing an instance.
func tableFor[T Model]() (*Table, error) {
	var zero T
	return TableOf(zero)
}
