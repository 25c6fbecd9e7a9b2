package wizard

import "github.com/lavamax/console/internal/domain"

// ServiceDraft is the working state of one wizard session: the service
// being assembled, not yet submitted. There is exactly one draft per
// session and it is owned by the Controller.
type ServiceDraft struct {
	Plate             string  `json:"placa"`
	VehicleTypeID     int     `json:"id_tipo_vehiculo,omitempty"`
	IsNewVehicle      bool    `json:"is_new_vehicle"`
	ReceivingEmployee int     `json:"id_empleado_recibe,omitempty"`
	WashingEmployee   int     `json:"id_empleado_lava,omitempty"`
	WashTypeID        int     `json:"id_tipo_lavado,omitempty"`
	Price             float64 `json:"precio"`

	Supplies *SupplyAggregator `json:"-"`
}

// SupplyList is the draft's current supply selection snapshot.
func (d *ServiceDraft) SupplyList() []domain.SupplyUsage {
	return d.Supplies.List()
}
