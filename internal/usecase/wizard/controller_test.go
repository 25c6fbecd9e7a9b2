package wizard

import (
	"context"
	"testing"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSubmitter mocks the final creation step.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, draft *ServiceDraft) (*domain.ServiceRecord, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRecord), args.Error(1)
}

func newTestController() *Controller {
	return NewController(testBundle(), logger.NewNoop())
}

// fillValidDraft walks a controller to the confirm stage with a valid
// draft for an unknown plate.
func fillValidDraft(t *testing.T, c *Controller) {
	t.Helper()

	c.SetPlate("ABC123")
	require.NoError(t, c.SetVehicleType(2))
	require.NoError(t, c.Next())

	c.SetEmployees(7, 9)
	c.SetWashType(1)
	require.NoError(t, c.Next())

	require.NoError(t, c.Next())
	require.Equal(t, StageConfirm, c.Stage())
}

// TestController_SetPlate checks resolution side effects on the draft.
func TestController_SetPlate(t *testing.T) {
	c := newTestController()

	res := c.SetPlate("XYZ789")
	assert.True(t, res.Found)
	assert.False(t, c.Draft().IsNewVehicle)
	assert.Equal(t, 1, c.Draft().VehicleTypeID)

	// The vehicle type is locked for a known vehicle.
	err := c.SetVehicleType(2)
	assert.ErrorIs(t, err, domain.ErrStageValidation)
	assert.Equal(t, 1, c.Draft().VehicleTypeID)

	// Changing to an unknown plate clears the type and unlocks it.
	res = c.SetPlate("ABC123")
	assert.False(t, res.Found)
	assert.True(t, c.Draft().IsNewVehicle)
	assert.Equal(t, 0, c.Draft().VehicleTypeID)
	assert.NoError(t, c.SetVehicleType(2))
}

// TestController_PricingOverwrite checks that selecting a wash type
// proposes its catalog price and overwrites manual edits, while a manual
// edit after selection wins until the next change.
func TestController_PricingOverwrite(t *testing.T) {
	c := newTestController()

	c.SetWashType(1)
	assert.Equal(t, 15.00, c.Draft().Price)

	c.SetPrice(20.00)
	assert.Equal(t, 20.00, c.Draft().Price)

	// Re-selecting overwrites the manual edit.
	c.SetWashType(4)
	assert.Equal(t, 35.50, c.Draft().Price)

	// An unknown wash type leaves the price untouched.
	c.SetWashType(999)
	assert.Equal(t, 35.50, c.Draft().Price)
}

// TestController_VehicleStageGuard checks the first forward gate.
func TestController_VehicleStageGuard(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*Controller)
		wantErr bool
	}{
		{
			name:    "empty plate",
			prepare: func(c *Controller) {},
			wantErr: true,
		},
		{
			name: "new vehicle without type",
			prepare: func(c *Controller) {
				c.SetPlate("ABC123")
			},
			wantErr: true,
		},
		{
			name: "new vehicle with type",
			prepare: func(c *Controller) {
				c.SetPlate("ABC123")
				_ = c.SetVehicleType(2)
			},
			wantErr: false,
		},
		{
			name: "known vehicle",
			prepare: func(c *Controller) {
				c.SetPlate("XYZ789")
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			tt.prepare(c)

			err := c.Next()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrStageValidation)
				assert.Equal(t, StageVehicle, c.Stage())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, StageService, c.Stage())
			}
		})
	}
}

// TestController_ServiceStageGuard checks the second forward gate.
func TestController_ServiceStageGuard(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*Controller)
		wantErr bool
	}{
		{
			name:    "nothing selected",
			prepare: func(c *Controller) {},
			wantErr: true,
		},
		{
			name: "missing washing employee",
			prepare: func(c *Controller) {
				c.SetEmployees(7, 0)
				c.SetWashType(1)
			},
			wantErr: true,
		},
		{
			name: "non-positive price",
			prepare: func(c *Controller) {
				c.SetEmployees(7, 9)
				c.SetWashType(1)
				c.SetPrice(0)
			},
			wantErr: true,
		},
		{
			name: "same employee in both roles is allowed",
			prepare: func(c *Controller) {
				c.SetEmployees(7, 7)
				c.SetWashType(1)
			},
			wantErr: false,
		},
		{
			name: "all selected",
			prepare: func(c *Controller) {
				c.SetEmployees(7, 9)
				c.SetWashType(1)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			c.SetPlate("XYZ789")
			require.NoError(t, c.Next())

			tt.prepare(c)

			err := c.Next()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrStageValidation)
				assert.Equal(t, StageService, c.Stage())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, StageSupplies, c.Stage())
			}
		})
	}
}

// TestController_EmptySupplyListIsValid checks the third gate has no
// additional condition.
func TestController_EmptySupplyListIsValid(t *testing.T) {
	c := newTestController()
	fillValidDraft(t, c)
	assert.Empty(t, c.Draft().SupplyList())
}

// TestController_BackKeepsDraft checks backward transitions and draft
// preservation.
func TestController_BackKeepsDraft(t *testing.T) {
	c := newTestController()

	assert.ErrorIs(t, c.Back(), domain.ErrNoBackwardStage)

	fillValidDraft(t, c)

	require.NoError(t, c.Back())
	assert.Equal(t, StageSupplies, c.Stage())
	require.NoError(t, c.Back())
	assert.Equal(t, StageService, c.Stage())

	// Entered values survive going back.
	assert.Equal(t, "ABC123", c.Draft().Plate)
	assert.Equal(t, 1, c.Draft().WashTypeID)
}

// TestController_SubmitOnlyFromConfirm checks the terminal action gate.
func TestController_SubmitOnlyFromConfirm(t *testing.T) {
	c := newTestController()
	submitter := new(MockSubmitter)

	_, err := c.Submit(context.Background(), submitter)
	assert.ErrorIs(t, err, domain.ErrSubmitNotAllowed)
	submitter.AssertNotCalled(t, "Submit")
}

// TestController_SubmitFailureKeepsSession checks that a failed submission
// leaves the wizard at confirm with the draft intact.
func TestController_SubmitFailureKeepsSession(t *testing.T) {
	c := newTestController()
	fillValidDraft(t, c)

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.Anything, c.Draft()).Return(nil, assert.AnError)

	_, err := c.Submit(context.Background(), submitter)
	require.Error(t, err)

	assert.Equal(t, StageConfirm, c.Stage())
	assert.Equal(t, "ABC123", c.Draft().Plate)
	submitter.AssertExpectations(t)
}

// TestController_SubmitSuccess checks the happy path hands the draft to
// the submitter exactly once.
func TestController_SubmitSuccess(t *testing.T) {
	c := newTestController()
	fillValidDraft(t, c)

	submitter := new(MockSubmitter)
	submitter.On("Submit", mock.Anything, c.Draft()).
		Return(&domain.ServiceRecord{ID: 42, Plate: "ABC123"}, nil).
		Once()

	record, err := c.Submit(context.Background(), submitter)
	require.NoError(t, err)
	assert.Equal(t, 42, record.ID)
	submitter.AssertExpectations(t)
}

// TestController_NoSkipping checks that Next never jumps past the
// immediate successor.
func TestController_NoSkipping(t *testing.T) {
	c := newTestController()
	c.SetPlate("XYZ789")

	require.NoError(t, c.Next())
	assert.Equal(t, StageService, c.Stage())

	// The service gate blocks; the stage does not move to supplies.
	assert.Error(t, c.Next())
	assert.Equal(t, StageService, c.Stage())
}
