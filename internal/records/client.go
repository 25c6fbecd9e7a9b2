package records

import (
	"context"

	"github.com/lavamax/console/internal/domain"
)

// Client is the semantic contract of the remote records API.
//
// The list/get operations are safe to retry; the create operations are not
// (a blind retry can duplicate a vehicle or a service), so implementations
// must never retry them automatically.
type Client interface {
	// ListEmployees returns employees, optionally only the active ones.
	ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error)

	// ListVehicles returns every known vehicle.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)

	// CreateVehicle registers a vehicle first seen during intake.
	CreateVehicle(ctx context.Context, req *domain.CreateVehicleRequest) (*domain.Vehicle, error)

	// ListVehicleTypes returns the vehicle-type catalog.
	ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error)

	// ListWashTypes returns the wash catalog with suggested prices.
	ListWashTypes(ctx context.Context) ([]domain.WashType, error)

	// ListSupplies returns the supply catalog.
	ListSupplies(ctx context.Context) ([]domain.Supply, error)

	// ListServices returns all recorded services.
	ListServices(ctx context.Context) ([]domain.ServiceRecord, error)

	// GetService returns one service by id.
	GetService(ctx context.Context, id int) (*domain.ServiceRecord, error)

	// CreateService records a new service.
	CreateService(ctx context.Context, req *domain.CreateServiceRequest) (*domain.ServiceRecord, error)

	// UpdateService patches an existing service.
	UpdateService(ctx context.Context, id int, patch *domain.UpdateServiceRequest) (*domain.ServiceRecord, error)

	// Health checks that the records API is reachable.
	Health(ctx context.Context) error
}
