package sqlrecord

// Model is implemented by record types that map to a database table. The
// rest of the record's shape is read from its struct fields: a `db` tag
// names the column, an untagged exported field maps to its lowercased name,
// and `db:"-"` excludes a field.
type Model interface {
	// TableName returns the table the record maps to.
	TableName() string
}
