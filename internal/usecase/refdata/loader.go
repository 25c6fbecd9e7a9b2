package refdata

import (
	"context"
	"sync"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/records"
)

// Bundle carries the lookup sets the wizard needs. Each field is either the
// fetched collection or an empty collection when its lookup failed; Failed
// names the lookups that did not load.
type Bundle struct {
	Employees    []domain.Employee    `json:"employees"`
	Vehicles     []domain.Vehicle     `json:"vehicles"`
	VehicleTypes []domain.VehicleType `json:"vehicle_types"`
	WashTypes    []domain.WashType    `json:"wash_types"`
	Supplies     []domain.Supply      `json:"supplies"`
	Failed       []string             `json:"failed,omitempty"`

	vehicleByPlate map[string]domain.Vehicle
	washTypeByID   map[int]domain.WashType
	supplyByID     map[int]domain.Supply
	employeeByID   map[int]domain.Employee
}

// Partial reports whether any lookup failed.
func (b *Bundle) Partial() bool {
	return len(b.Failed) > 0
}

// VehicleByPlate performs an exact, case-sensitive plate lookup.
func (b *Bundle) VehicleByPlate(plate string) (domain.Vehicle, bool) {
	v, ok := b.vehicleByPlate[plate]
	return v, ok
}

// WashTypeByID looks up a wash-type catalog entry.
func (b *Bundle) WashTypeByID(id int) (domain.WashType, bool) {
	w, ok := b.washTypeByID[id]
	return w, ok
}

// SupplyByID looks up a supply catalog entry.
func (b *Bundle) SupplyByID(id int) (domain.Supply, bool) {
	s, ok := b.supplyByID[id]
	return s, ok
}

// EmployeeByID looks up an active employee.
func (b *Bundle) EmployeeByID(id int) (domain.Employee, bool) {
	e, ok := b.employeeByID[id]
	return e, ok
}

// NewBundle assembles a bundle from settled collections and builds its
// lookup maps. Nil collections become empty ones.
func NewBundle(
	employees []domain.Employee,
	vehicles []domain.Vehicle,
	vehicleTypes []domain.VehicleType,
	washTypes []domain.WashType,
	supplies []domain.Supply,
) *Bundle {
	b := &Bundle{
		Employees:    employees,
		Vehicles:     vehicles,
		VehicleTypes: vehicleTypes,
		WashTypes:    washTypes,
		Supplies:     supplies,
	}
	if b.Employees == nil {
		b.Employees = []domain.Employee{}
	}
	if b.Vehicles == nil {
		b.Vehicles = []domain.Vehicle{}
	}
	if b.VehicleTypes == nil {
		b.VehicleTypes = []domain.VehicleType{}
	}
	if b.WashTypes == nil {
		b.WashTypes = []domain.WashType{}
	}
	if b.Supplies == nil {
		b.Supplies = []domain.Supply{}
	}

	b.vehicleByPlate = make(map[string]domain.Vehicle, len(b.Vehicles))
	for _, v := range b.Vehicles {
		b.vehicleByPlate[v.Plate] = v
	}
	b.washTypeByID = make(map[int]domain.WashType, len(b.WashTypes))
	for _, w := range b.WashTypes {
		b.washTypeByID[w.ID] = w
	}
	b.supplyByID = make(map[int]domain.Supply, len(b.Supplies))
	for _, s := range b.Supplies {
		b.supplyByID[s.ID] = s
	}
	b.employeeByID = make(map[int]domain.Employee, len(b.Employees))
	for _, e := range b.Employees {
		b.employeeByID[e.ID] = e
	}
	return b
}

// Loader fetches the wizard's reference data.
type Loader struct {
	client records.Client
	logger logger.Logger
}

// NewLoader creates a reference data loader.
func NewLoader(client records.Client, logger logger.Logger) *Loader {
	return &Loader{
		client: client,
		logger: logger,
	}
}

// Load issues the five lookups concurrently and joins them all-settled:
// no lookup's failure aborts the others and the join itself never fails.
// A partial result is logged as a warning and flagged on the bundle; the
// wizard stays usable with whatever loaded.
func (l *Loader) Load(ctx context.Context) *Bundle {
	var (
		employees    []domain.Employee
		vehicles     []domain.Vehicle
		vehicleTypes []domain.VehicleType
		washTypes    []domain.WashType
		supplies     []domain.Supply

		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
	)

	fail := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, name)
		l.logger.Warn("Reference lookup failed", map[string]interface{}{
			"lookup": name,
			"error":  err.Error(),
		})
	}

	wg.Add(5)

	go func() {
		defer wg.Done()
		var err error
		if employees, err = l.client.ListEmployees(ctx, true); err != nil {
			fail("employees", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if vehicles, err = l.client.ListVehicles(ctx); err != nil {
			fail("vehicles", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if vehicleTypes, err = l.client.ListVehicleTypes(ctx); err != nil {
			fail("vehicle_types", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if washTypes, err = l.client.ListWashTypes(ctx); err != nil {
			fail("wash_types", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if supplies, err = l.client.ListSupplies(ctx); err != nil {
			fail("supplies", err)
		}
	}()

	wg.Wait()

	bundle := NewBundle(employees, vehicles, vehicleTypes, washTypes, supplies)
	bundle.Failed = failed

	if bundle.Partial() {
		l.logger.Warn("Reference data loaded partially", map[string]interface{}{
			"failed": bundle.Failed,
		})
	}

	return bundle
}
