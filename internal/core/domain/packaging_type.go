package domain

import "github.com/shopspring/decimal"

// PackagingSize is one size/price variant of a packaging type.
type PackagingSize struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// PackagingType is a catalog entry resolving {type, size} to a unit price
// at order-creation time. Orders snapshot the resolved price and never
// re-query the catalog afterwards.
type PackagingType struct {
	PackagingTypeID string          `json:"packagingTypeID"` // Primary Key (UUID)
	Name            string          `json:"name"`            // Unique
	Description     string          `json:"description"`
	Sizes           []PackagingSize `json:"sizes"`
	AuditFields
}

// PriceFor returns the unit price for the given size variant.
func (p *PackagingType) PriceFor(size string) (decimal.Decimal, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Price, true
		}
	}
	return decimal.Zero, false
}
