package models

// Customer is the customers table row.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Address    string `db:"address"`
	Phone      string `db:"phone"`
	AuditFields
}
