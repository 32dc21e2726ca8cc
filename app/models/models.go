// Package models holds the gorm models for the clients, products and orders
// tables.
package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go out as JSON numbers (13.5), not strings ("13.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// All lists every model in dependency order, for AutoMigrate and drops.
func All() []interface{} {
	return []interface{}{&Client{}, &Product{}, &Order{}}
}
