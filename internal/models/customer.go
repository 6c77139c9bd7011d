package models

// Customer represents a row in the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Document   string `db:"document"`
	Phone      string `db:"phone"`
	Email      string `db:"email"`
	Address    string `db:"address"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Vehicle represents a row in the vehicles table.
type Vehicle struct {
	VehicleID  string `db:"vehicle_id"`
	CustomerID string `db:"customer_id"`
	Plate      string `db:"plate"`
	Make       string `db:"make"`
	Model      string `db:"model"`
	Year       int    `db:"year"`
	Notes      string `db:"notes"`
	AuditFields
}
