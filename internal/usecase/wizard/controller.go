package wizard

import (
	"context"
	"fmt"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/usecase/refdata"
)

// Stage is one of the four linear wizard steps.
type Stage string

const (
	StageVehicle  Stage = "vehicle"
	StageService  Stage = "service"
	StageSupplies Stage = "supplies"
	StageConfirm  Stage = "confirm"
)

// stageOrder defines the linear progression. No skipping: Next moves one
// step forward, Back one step backward.
var stageOrder = []Stage{StageVehicle, StageService, StageSupplies, StageConfirm}

func stageIndex(s Stage) int {
	for i, stage := range stageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// ValidationError reports an unsatisfied forward-transition guard. It is
// resolved by correcting the input at the current stage and never reaches
// the submission layer.
type ValidationError struct {
	Stage  Stage
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("stage %s: %s", e.Stage, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrStageValidation
}

// Submitter performs the final creation once the draft is confirmed.
type Submitter interface {
	Submit(ctx context.Context, draft *ServiceDraft) (*domain.ServiceRecord, error)
}

// Controller drives one wizard session. It owns the single ServiceDraft
// that every sub-step reads and mutates; it is not safe for concurrent use
// (a session has a single writer).
type Controller struct {
	bundle *refdata.Bundle
	draft  *ServiceDraft
	stage  Stage
	logger logger.Logger
}

// NewController starts a wizard session at the vehicle stage with an empty
// draft bound to the given reference bundle.
func NewController(bundle *refdata.Bundle, logger logger.Logger) *Controller {
	return &Controller{
		bundle: bundle,
		stage:  StageVehicle,
		draft: &ServiceDraft{
			Supplies: NewSupplyAggregator(bundle),
		},
		logger: logger,
	}
}

// Stage returns the current stage.
func (c *Controller) Stage() Stage {
	return c.stage
}

// Draft exposes the working draft to the surrounding UI.
func (c *Controller) Draft() *ServiceDraft {
	return c.draft
}

// Bundle exposes the reference data the session was started with.
func (c *Controller) Bundle() *refdata.Bundle {
	return c.bundle
}

// SetPlate updates the plate and re-resolves the vehicle. A known plate
// auto-fills and locks the vehicle type; an unknown plate clears it and
// marks the draft as creating a new vehicle.
func (c *Controller) SetPlate(plate string) Resolution {
	c.draft.Plate = domain.NormalizePlate(plate)

	resolution := ResolveVehicle(c.draft.Plate, c.bundle)
	if resolution.Found {
		c.draft.IsNewVehicle = false
		c.draft.VehicleTypeID = resolution.VehicleTypeID
	} else {
		c.draft.IsNewVehicle = true
		c.draft.VehicleTypeID = 0
	}
	return resolution
}

// SetVehicleType selects the type for a new vehicle. The field is locked
// when the plate resolved to a known vehicle.
func (c *Controller) SetVehicleType(vehicleTypeID int) error {
	if !c.draft.IsNewVehicle {
		return &ValidationError{
			Stage:  StageVehicle,
			Reason: "vehicle type is fixed for a known vehicle",
		}
	}
	c.draft.VehicleTypeID = vehicleTypeID
	return nil
}

// SetEmployees selects the receiving and washing employees. The same
// person may take both roles.
func (c *Controller) SetEmployees(receivingID, washingID int) {
	c.draft.ReceivingEmployee = receivingID
	c.draft.WashingEmployee = washingID
}

// SetWashType selects the wash type and overwrites the draft price with the
// catalog price. A manual price edit afterwards wins until the wash type
// changes again.
func (c *Controller) SetWashType(washTypeID int) {
	c.draft.WashTypeID = washTypeID
	if price, ok := PriceFor(washTypeID, c.bundle); ok {
		c.draft.Price = price
	}
}

// SetPrice overrides the suggested price.
func (c *Controller) SetPrice(price float64) {
	c.draft.Price = price
}

// AddSupply records a supply consumption on the draft.
func (c *Controller) AddSupply(supplyID, quantity int) error {
	return c.draft.Supplies.Add(supplyID, quantity)
}

// RemoveSupply drops a supply from the draft.
func (c *Controller) RemoveSupply(supplyID int) {
	c.draft.Supplies.Remove(supplyID)
}

// Next advances to the following stage if the current stage's guard is
// satisfied.
func (c *Controller) Next() error {
	idx := stageIndex(c.stage)
	if idx >= len(stageOrder)-1 {
		return domain.ErrNoForwardStage
	}

	if err := c.validateStage(c.stage); err != nil {
		return err
	}

	c.stage = stageOrder[idx+1]
	return nil
}

// Back returns to the previous stage. Entered values are kept.
func (c *Controller) Back() error {
	idx := stageIndex(c.stage)
	if idx <= 0 {
		return domain.ErrNoBackwardStage
	}
	c.stage = stageOrder[idx-1]
	return nil
}

// Submit hands the assembled draft to the submitter. Only allowed from the
// confirm stage. On failure the session stays at confirm with the draft
// intact so the user can retry without re-entering prior steps.
func (c *Controller) Submit(ctx context.Context, submitter Submitter) (*domain.ServiceRecord, error) {
	if c.stage != StageConfirm {
		return nil, domain.ErrSubmitNotAllowed
	}

	record, err := submitter.Submit(ctx, c.draft)
	if err != nil {
		c.logger.Error("Service submission failed", map[string]interface{}{
			"plate": c.draft.Plate,
			"error": err.Error(),
		})
		return nil, err
	}

	c.logger.Info("Service submitted", map[string]interface{}{
		"service_id": record.ID,
		"plate":      record.Plate,
	})
	return record, nil
}

// validateStage checks the forward-transition guard of a stage.
func (c *Controller) validateStage(stage Stage) error {
	switch stage {
	case StageVehicle:
		if c.draft.Plate == "" {
			return &ValidationError{Stage: stage, Reason: "plate is required"}
		}
		if c.draft.IsNewVehicle && c.draft.VehicleTypeID <= 0 {
			return &ValidationError{Stage: stage, Reason: "vehicle type is required for a new vehicle"}
		}
	case StageService:
		if c.draft.ReceivingEmployee <= 0 {
			return &ValidationError{Stage: stage, Reason: "receiving employee is required"}
		}
		if c.draft.WashingEmployee <= 0 {
			return &ValidationError{Stage: stage, Reason: "washing employee is required"}
		}
		if c.draft.WashTypeID <= 0 {
			return &ValidationError{Stage: stage, Reason: "wash type is required"}
		}
		if c.draft.Price <= 0 {
			return &ValidationError{Stage: stage, Reason: "price must be positive"}
		}
	case StageSupplies:
		// An empty supply list is valid: nothing to check.
	}
	return nil
}
