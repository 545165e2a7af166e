package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentwheels/internal/domain"
)

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepository) ConfirmAndRentVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID, vehicleID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) CompleteAndReleaseVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, bookingID, vehicleID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) CancelAndReleaseVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID, vehicleWasRented bool) (bool, error) {
	args := m.Called(ctx, bookingID, vehicleID, vehicleWasRented)
	return args.Bool(0), args.Error(1)
}
