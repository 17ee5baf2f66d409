// Package sqlrecord maps plain Go structs to table rows and generates the
// CRUD statements around them.
//
// # Overview
//
// A record is any struct with a TableName method. Columns come from db tags
// (or lowercased field names); statements are generated with named
// parameters and executed through sqlx, so the same code runs unchanged on
// PostgreSQL (pgx) and SQLite (modernc.org/sqlite). Insert, upsert, update
// and delete work on single records or on slices (the batched variants run
// in one transaction); reads return one record, all records, or stream the
// result set in chunks.
//
// # Concurrency
//
// A Store is safe for concurrent use when backed by *sql.DB. The derived
// Store a WithTx callback receives is bound to one transaction and follows
// normal transaction scoping rules.
//
// Key Types
//
//   - Records:       Model (the TableName contract)
//   - Introspection: Table, TableOf
//   - Execution:     Store, Dialect
//
// Typical Usage
//
//	type Product struct {
//		ID    string          `db:"id"`
//		SKU   string          `db:"sku"`
//		Price decimal.Decimal `db:"price"`
//	}
//
//	func (Product) TableName() string { return "products" }
//
//	s, err := sqlrecord.Open(ctx, sqlrecord.SQLite, "file:app.db", nil)
//	_ = sqlrecord.Insert(ctx, s, p)
//	_ = sqlrecord.Upsert(ctx, s, p, "sku")
//	one, _ := sqlrecord.SelectOne[Product](ctx, s, "sku = 'A-1'")
//	_ = sqlrecord.SelectInBatches(ctx, s, "", 100, func(chunk []Product) error {
//		return nil
//	})
package sqlrecord
