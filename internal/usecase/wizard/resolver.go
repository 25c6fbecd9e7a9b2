package wizard

import (
	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/usecase/refdata"
)

// Resolution is the outcome of a plate lookup.
type Resolution struct {
	Found         bool `json:"found"`
	VehicleTypeID int  `json:"id_tipo_vehiculo,omitempty"`
}

// ResolveVehicle determines whether a typed plate is already known. The
// lookup is exact and case-sensitive against the loaded vehicle set; it is
// purely local, so it can run on every change of the plate field.
func ResolveVehicle(plate string, bundle *refdata.Bundle) Resolution {
	vehicle, ok := bundle.VehicleByPlate(domain.NormalizePlate(plate))
	if !ok {
		return Resolution{Found: false}
	}
	return Resolution{Found: true, VehicleTypeID: vehicle.VehicleTypeID}
}

// PriceFor returns the catalog price suggested for a wash type. The second
// result is false when the wash type is not in the catalog (for instance
// when the wash-type lookup failed to load).
func PriceFor(washTypeID int, bundle *refdata.Bundle) (float64, bool) {
	washType, ok := bundle.WashTypeByID(washTypeID)
	if !ok {
		return 0, false
	}
	return washType.Price, true
}
