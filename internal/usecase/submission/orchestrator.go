package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/records"
	"github.com/lavamax/console/internal/usecase/wizard"
)

// Step identifies which part of the two-step creation failed.
type Step string

const (
	// StepVehicle is the conditional vehicle creation.
	StepVehicle Step = "vehicle"
	// StepService is the service creation.
	StepService Step = "service"
)

// StepError reports a submission failure with the triggering step, so the
// caller can tell a vehicle-creation failure (nothing was persisted) from a
// service-creation failure (a vehicle may already exist).
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("submission step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Orchestrator executes the two-step, non-transactional service creation
// against the records API.
//
// The steps are strictly ordered and never retried automatically. When the
// vehicle is created but the service creation fails, the vehicle stays: the
// record is independently useful and a resubmission resolves the plate as
// pre-existing, skipping step one. No compensation is attempted.
type Orchestrator struct {
	client records.Client
	logger logger.Logger
	now    func() time.Time
}

// NewOrchestrator creates a submission orchestrator.
func NewOrchestrator(client records.Client, logger logger.Logger) *Orchestrator {
	return &Orchestrator{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock, for tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Submit persists a fully validated draft. It returns the created service
// record, or a *StepError identifying the failed step.
func (o *Orchestrator) Submit(ctx context.Context, draft *wizard.ServiceDraft) (*domain.ServiceRecord, error) {
	// Step 1: register the vehicle when the plate is not yet known.
	// Skipped entirely for a pre-existing vehicle.
	vehicleCreated := false
	if draft.IsNewVehicle {
		o.logger.Info("Registering new vehicle", map[string]interface{}{
			"plate":           draft.Plate,
			"vehicle_type_id": draft.VehicleTypeID,
		})

		_, err := o.client.CreateVehicle(ctx, &domain.CreateVehicleRequest{
			Plate:         draft.Plate,
			VehicleTypeID: draft.VehicleTypeID,
		})
		if err != nil {
			return nil, &StepError{Step: StepVehicle, Err: err}
		}

		// The plate now exists upstream. Mark the draft accordingly so a
		// retry after a step-two failure never creates it a second time.
		vehicleCreated = true
		draft.IsNewVehicle = false
	}

	// Step 2: record the service referencing the plate.
	now := o.now()
	record, err := o.client.CreateService(ctx, &domain.CreateServiceRequest{
		Date:              now.Format("2006-01-02"),
		Plate:             draft.Plate,
		ReceivingEmployee: draft.ReceivingEmployee,
		WashingEmployee:   draft.WashingEmployee,
		WashTypeID:        draft.WashTypeID,
		ReceiveTime:       now.Format("15:04:05"),
		Price:             draft.Price,
		Supplies:          draft.SupplyList(),
	})
	if err != nil {
		if vehicleCreated {
			// Known, accepted inconsistency: the vehicle now exists with
			// no service. Resubmission resolves it as pre-existing.
			o.logger.Warn("Service creation failed after vehicle creation", map[string]interface{}{
				"plate": draft.Plate,
			})
		}
		return nil, &StepError{Step: StepService, Err: err}
	}

	o.logger.Info("Service created", map[string]interface{}{
		"service_id": record.ID,
		"plate":      record.Plate,
		"price":      record.Price,
	})
	return record, nil
}
