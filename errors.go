package sqlrecord

import "errors"

var (

	// record introspection errors
	ErrInvalidRecord  = errors.New("record type is not a struct")
	ErrEmptyTableName = errors.New("empty table name")
	ErrNoColumns      = errors.New("record has no columns")

	// statement generation errors
	ErrNoKeyColumns       = errors.New("no key columns")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrNoUpdatableColumns = errors.New("no columns to update besides the key columns")

	// where fragment errors
	ErrUnsafeWhere = errors.New("unsafe where fragment")
)
