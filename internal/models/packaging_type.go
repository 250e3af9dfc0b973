package models

import "github.com/shopspring/decimal"

// PackagingSize is one element of the jsonb sizes column.
type PackagingSize struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// PackagingType is the packaging_types table row. Sizes is stored as jsonb.
type PackagingType struct {
	PackagingTypeID string          `db:"packaging_type_id"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	Sizes           []PackagingSize `db:"sizes"`
	AuditFields
}
