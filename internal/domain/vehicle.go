package domain

import "strings"

// Vehicle is identified by its license plate. Plates are unique and
// case-sensitive: the backend treats "abc123" and "ABC123" as two
// different vehicles, so no case folding happens here.
type Vehicle struct {
	Plate         string `json:"placa"`
	VehicleTypeID int    `json:"id_tipo_vehiculo"`
}

// VehicleType is immutable reference data (car, pickup, motorcycle, ...).
type VehicleType struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// NormalizePlate strips surrounding whitespace from a typed plate value.
// Case is preserved on purpose.
func NormalizePlate(plate string) string {
	return strings.TrimSpace(plate)
}

// Validate checks the minimum the backend requires for vehicle creation.
func (v *Vehicle) Validate() error {
	v.Plate = NormalizePlate(v.Plate)
	if v.Plate == "" {
		return ErrInvalidPlate
	}
	if v.VehicleTypeID <= 0 {
		return ErrInvalidVehicleData
	}
	return nil
}
