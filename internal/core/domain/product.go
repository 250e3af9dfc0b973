package domain

// Product is a customer-owned product registration: the thing the shop
// packages, together with its legal registration numbers.
type Product struct {
	ProductID     string `json:"productID"` // Primary Key (UUID)
	CustomerID    string `json:"customerID"`
	ProductName   string `json:"productName"`
	ProductLabel  string `json:"productLabel"`
	NIB           string `json:"nib"`    // Business registration number, "N/A" when absent
	NoPIRT        string `json:"noPirt"` // Home-industry food permit
	NoHalal       string `json:"noHalal"`
	PackagingType string `json:"packagingType"`
	PackagingSize string `json:"packagingSize"`
	IsDeleted     bool   `json:"isDeleted"`
	AuditFields
}
