package models

import "time"

// Sale represents one recorded unit-sale event in the ledger.
type Sale struct {
	ID        int64     `db:"id" json:"id"`
	DateAdded time.Time `db:"date_added" json:"date"`
	Model     string    `db:"model" json:"model"`
	Variant   string    `db:"variant" json:"variant"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Seller    string    `db:"seller" json:"seller"`
	Notes     string    `db:"notes" json:"notes"`
}

// VariantCount is one row of the per-(model, variant) sales breakdown.
type VariantCount struct {
	Model   string `db:"model" json:"model"`
	Variant string `db:"variant" json:"variant"`
	Count   int    `db:"count" json:"count"`
}
