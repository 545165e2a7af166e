package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentwheels/internal/domain"
)

type VehicleRepository struct {
	mock.Mock
}

func (m *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *VehicleRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *VehicleRepository) Search(ctx context.Context, filter domain.VehicleSearchFilter, params domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *VehicleRepository) CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *VehicleRepository) UpdateMetadata(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *VehicleRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.VehicleStatus, to domain.VehicleStatus, rejectionReason, unavailableReason *string) (bool, error) {
	args := m.Called(ctx, id, from, to, rejectionReason, unavailableReason)
	return args.Bool(0), args.Error(1)
}

func (m *VehicleRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, rejectionReason, unavailableReason *string) (bool, error) {
	args := m.Called(ctx, id, status, rejectionReason, unavailableReason)
	return args.Bool(0), args.Error(1)
}
