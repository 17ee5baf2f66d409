package sqlrecord

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx/reflectx"
)

// mapper resolves struct fields to column names exactly the way sqlx does
// (db tag, falling back to the lowercased field name), so generated
// statements and StructScan can never disagree about a column.
var mapper = reflectx.NewMapperFunc("db", strings.ToLower)

// tableCache holds one *Table per record type.
var tableCache sync.Map // reflect.Type -> *Table

// Table is the introspected shape of a record type: the table it maps to
// and its columns in declaration order (fields of an embedded struct follow
// the outer struct's own fields).
type Table struct {
	Name    string
	Columns []string

	colSet map[string]struct{}
}

// TableOf introspects the record's type. The result is cached per concrete
// type, so repeated calls are cheap. The record value itself is not touched;
// a nil *T is fine.
func TableOf(m Model) (*Table, error) {
	t := reflect.TypeOf(m)
	if t == nil {
		return nil, ErrInvalidRecord
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, t)
	}

	if cached, ok := tableCache.Load(t); ok {
		return cached.(*Table), nil
	}

	// A fresh instance avoids calling TableName on a nil pointer.
	name := reflect.New(t).Interface().(Model).TableName()
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTableName, t)
	}

	tm := mapper.TypeMap(t)
	cols := make([]string, 0, len(tm.Index))
	for _, fi := range tm.Index {
		if fi.Embedded || fi.Name == "" || strings.Contains(fi.Path, ".") {
			continue
		}
		// skip shadowed duplicates, e.g. an embedded column hidden by an
		// outer field with the same name
		if tm.Names[fi.Path] != fi {
			continue
		}
		if !isColumnField(fi.Field.Type) {
			continue
		}
		cols = append(cols, fi.Path)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, t)
	}

	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c] = struct{}{}
	}

	tbl := &Table{Name: name, Columns: cols, colSet: set}
	tableCache.Store(t, tbl)
	return tbl, nil
}

// HasColumn reports whether the record maps the given column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colSet[name]
	return ok
}

// splitKeys partitions the table's columns into key and non-key ones. Keys
// come back in column declaration order regardless of the caller's order,
// which keeps the generated statements deterministic.
func (t *Table) splitKeys(keys []string) (key []string, rest []string, err error) {
	if len(keys) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoKeyColumns, t.Name)
	}
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if !t.HasColumn(k) {
			return nil, nil, fmt.Errorf("%w: %q is not a column of %s", ErrUnknownColumn, k, t.Name)
		}
		want[k] = struct{}{}
	}
	for _, c := range t.Columns {
		if _, ok := want[c]; ok {
			key = append(key, c)
		} else {
			rest = append(rest, c)
		}
	}
	return key, rest, nil
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	valuerType  = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
)

// isColumnField decides whether a field holds a column value or is a plain
// nested struct. Struct fields count as columns only when the driver stack
// can pass them through whole: time.Time, or types with Valuer/Scanner
// implementations (decimal.Decimal, sql.Null*).
func isColumnField(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return true
	}
	if t == timeType {
		return true
	}
	return t.Implements(valuerType) || reflect.PointerTo(t).Implements(scannerType)
}
