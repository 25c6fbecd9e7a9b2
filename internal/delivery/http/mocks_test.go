package http

import (
	"context"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/usecase/refdata"
	"github.com/lavamax/console/internal/usecase/wizard"
	"github.com/stretchr/testify/mock"
)

// stubLoader serves a prepared bundle to StartSession.
type stubLoader struct {
	bundle *refdata.Bundle
}

func (s *stubLoader) Load(ctx context.Context) *refdata.Bundle {
	return s.bundle
}

// MockSubmitter mocks the submission orchestrator.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, draft *wizard.ServiceDraft) (*domain.ServiceRecord, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRecord), args.Error(1)
}

// MockServiceReader mocks the service-view slice of the records API.
type MockServiceReader struct {
	mock.Mock
}

func (m *MockServiceReader) ListServices(ctx context.Context) ([]domain.ServiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceRecord), args.Error(1)
}

func (m *MockServiceReader) GetService(ctx context.Context, id int) (*domain.ServiceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRecord), args.Error(1)
}

func (m *MockServiceReader) UpdateService(ctx context.Context, id int, patch *domain.UpdateServiceRequest) (*domain.ServiceRecord, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRecord), args.Error(1)
}

// testReference builds the bundle used by the handler tests.
func testReference() *refdata.Bundle {
	return refdata.NewBundle(
		[]domain.Employee{
			{ID: 7, Name: "Carlos", Active: true},
			{ID: 9, Name: "Lucía", Active: true},
		},
		[]domain.Vehicle{
			{Plate: "XYZ789", VehicleTypeID: 1},
		},
		[]domain.VehicleType{
			{ID: 1, Name: "Automóvil"},
			{ID: 2, Name: "Camioneta"},
		},
		[]domain.WashType{
			{ID: 1, Name: "Lavado básico", Price: 15.00},
		},
		[]domain.Supply{
			{ID: 3, Name: "Shampoo"},
		},
	)
}
