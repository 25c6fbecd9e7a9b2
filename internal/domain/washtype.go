package domain

// WashType is an entry of the wash catalog. Price is the suggested default
// for a new service, not an enforced amount: operators may override it per
// service.
type WashType struct {
	ID    int     `json:"id"`
	Name  string  `json:"nombre"`
	Price float64 `json:"precio"`
}
