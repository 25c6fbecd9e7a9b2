package domain

// ServiceRecord is a wash service as returned by the records API.
//
// The lifecycle stage is never stored: it is derived from which of the
// optional fields are present (see usecase/status). Times of day travel as
// "HH:MM:SS" strings with no date component, matching the backend schema.
type ServiceRecord struct {
	ID                int           `json:"id"`
	Date              string        `json:"fecha"`
	Plate             string        `json:"placa"`
	ReceivingEmployee int           `json:"id_empleado_recibe"`
	WashingEmployee   *int          `json:"id_empleado_lava,omitempty"`
	WashTypeID        int           `json:"id_tipo_lavado"`
	ReceiveTime       string        `json:"hora_recibe"`
	WashStartTime     *string       `json:"hora_inicio_lavado,omitempty"`
	DeliveryTime      *string       `json:"hora_entrega,omitempty"`
	Price             float64       `json:"precio"`
	Observations      string        `json:"observaciones,omitempty"`
	Supplies          []SupplyUsage `json:"insumos,omitempty"`
}

// CreateVehicleRequest is the payload for registering a vehicle first seen
// during service intake.
type CreateVehicleRequest struct {
	Plate         string `json:"placa"`
	VehicleTypeID int    `json:"id_tipo_vehiculo"`
}

// CreateServiceRequest is the payload for recording a new service.
type CreateServiceRequest struct {
	Date              string        `json:"fecha"`
	Plate             string        `json:"placa"`
	ReceivingEmployee int           `json:"id_empleado_recibe"`
	WashingEmployee   int           `json:"id_empleado_lava"`
	WashTypeID        int           `json:"id_tipo_lavado"`
	ReceiveTime       string        `json:"hora_recibe"`
	Price             float64       `json:"precio"`
	Supplies          []SupplyUsage `json:"insumos"`
}

// UpdateServiceRequest patches an existing service. Nil fields are left
// untouched by the backend.
type UpdateServiceRequest struct {
	WashingEmployee *int     `json:"id_empleado_lava,omitempty"`
	WashStartTime   *string  `json:"hora_inicio_lavado,omitempty"`
	DeliveryTime    *string  `json:"hora_entrega,omitempty"`
	Observations    *string  `json:"observaciones,omitempty"`
	Price           *float64 `json:"precio,omitempty"`
}
