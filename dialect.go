package sqlrecord

import "fmt"

// Dialect selects the database engine a Store talks to.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// DriverName returns the database/sql driver name the dialect runs on:
// pgx for Postgres and sqlite for SQLite. The driver package itself must be
// linked into the binary with a blank import (see Open).
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	}
	return ""
}

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// ParseDialect maps a configuration value to a Dialect. It accepts the
// dialect names and the matching driver names.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return 0, fmt.Errorf("unknown dialect %q", s)
}
