package sqlrecord

import (
	"fmt"
	"strings"
)

// Statement generation. Every statement binds values through sqlx named
// parameters (:col); the store rebinds them to the driver's placeholder
// format at execution time, so the text below is engine-independent.

// InsertSQL returns the INSERT statement for one record:
//
//	INSERT INTO products (id, sku, price) VALUES (:id, :sku, :price)
func (t *Table) InsertSQL() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(t.Columns, ", "), strings.Join(namedParams(t.Columns), ", "))
}

// UpsertSQL returns an insert-or-update statement keyed on the given
// columns:
//
//	INSERT INTO products (id, sku, price) VALUES (:id, :sku, :price)
//	ON CONFLICT (sku) DO UPDATE SET id = excluded.id, price = excluded.price
//
// The key columns must be covered by a unique index or primary key; both
// supported engines require that for ON CONFLICT. When every column is a
// key there is nothing left to update and the statement degrades to
// ON CONFLICT ... DO NOTHING.
func (t *Table) UpsertSQL(keys ...string) (string, error) {
	key, rest, err := t.splitKeys(keys)
	if err != nil {
		return "", err
	}
	if len(rest) == 0 {
		return fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING",
			t.InsertSQL(), strings.Join(key, ", ")), nil
	}
	set := make([]string, len(rest))
	for i, c := range rest {
		set[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s",
		t.InsertSQL(), strings.Join(key, ", "), strings.Join(set, ", ")), nil
}

// UpdateSQL returns the UPDATE statement that rewrites every non-key column
// of the row matching the key columns:
//
//	UPDATE products SET sku = :sku, price = :price WHERE id = :id
func (t *Table) UpdateSQL(keys ...string) (string, error) {
	key, rest, err := t.splitKeys(keys)
	if err != nil {
		return "", err
	}
	if len(rest) == 0 {
		return "", fmt.Errorf("%w: every column of %s is a key", ErrNoUpdatableColumns, t.Name)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		t.Name, strings.Join(assignParams(rest), ", "), strings.Join(assignParams(key), " AND ")), nil
}

// DeleteSQL returns the DELETE statement matching the key columns:
//
//	DELETE FROM products WHERE id = :id
func (t *Table) DeleteSQL(keys ...string) (string, error) {
	key, _, err := t.splitKeys(keys)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s",
		t.Name, strings.Join(assignParams(key), " AND ")), nil
}

// SelectSQL returns the SELECT statement with an explicit column list and
// an optional, validated where fragment:
//
//	SELECT id, sku, price FROM products WHERE price > 100
func (t *Table) SelectSQL(where string) (string, error) {
	if err := ValidateWhere(where); err != nil {
		return "", err
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.Columns, ", "), t.Name)
	if w := strings.TrimSpace(where); w != "" {
		q += " WHERE " + w
	}
	return q, nil
}

// namedParams renders columns as bind parameters: id -> :id.
func namedParams(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = ":" + c
	}
	return out
}

// assignParams renders columns as assignments or equality conditions:
// id -> "id = :id".
func assignParams(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c + " = :" + c
	}
	return out
}
