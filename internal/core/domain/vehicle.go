package domain

// Vehicle is a customer vehicle that service orders are opened against.
type Vehicle struct {
	VehicleID  string `json:"vehicleID"` // Primary Key (UUID)
	CustomerID string `json:"customerID"`
	Plate      string `json:"plate"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Year       int    `json:"year"`
	Notes      string `json:"notes"`
	AuditFields
}
