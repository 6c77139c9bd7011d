package domain

// Customer is a person or company the workshop does business with.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Document   string `json:"document"` // Tax/ID document number, optional
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
