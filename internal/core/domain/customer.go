package domain

// Customer is a registered buyer. The core treats it as master data
// referenced by orders through an opaque ID.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"` // Unique
	AuditFields
}
