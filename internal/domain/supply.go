package domain

// Supply is a catalog item consumed during a wash (soap, wax, degreaser...).
type Supply struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// SupplyUsage is one line of the supply list attached to a service:
// which supply was consumed and how much of it.
type SupplyUsage struct {
	SupplyID     int `json:"id_insumo"`
	QuantityUsed int `json:"cantidad_usada"`
}
