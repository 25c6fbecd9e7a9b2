package domain

// Employee is a wash-station worker. Only active employees may be offered
// as participants of a new service.
type Employee struct {
	ID     int    `json:"id"`
	Name   string `json:"nombre"`
	Active bool   `json:"activo"`
}
