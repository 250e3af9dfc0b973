package models

// Product is the products table row. Soft-deleted via is_deleted.
type Product struct {
	ProductID     string `db:"product_id"`
	CustomerID    string `db:"customer_id"`
	ProductName   string `db:"product_name"`
	ProductLabel  string `db:"product_label"`
	NIB           string `db:"nib"`
	NoPIRT        string `db:"no_pirt"`
	NoHalal       string `db:"no_halal"`
	PackagingType string `db:"packaging_type"`
	PackagingSize string `db:"packaging_size"`
	IsDeleted     bool   `db:"is_deleted"`
	AuditFields
}
