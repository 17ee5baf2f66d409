// Package models defines the records the demo binary persists.
package models

import "github.com/shopspring/decimal"

// Product is one stock item in the demo inventory table.
type Product struct {
	// ID is a globally unique identifier for the product.
	ID string `db:"id"`

	// SKU is the human-facing stock keeping unit, unique per product.
	SKU string `db:"sku"`

	// Name is the display name.
	Name string `db:"name"`

	// Price is the unit price.
	Price decimal.Decimal `db:"price"`

	// Qty is the number of units on hand.
	Qty int64 `db:"qty"`

	// Active marks products that are currently on sale.
	Active bool `db:"active"`
}

// TableName maps Product records to the products table.
func (Product) TableName() string { return "products" }
