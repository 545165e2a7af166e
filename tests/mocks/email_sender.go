package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) SendVehiclePendingToOwner(ctx context.Context, toEmail, ownerName, vehicleName string) error {
	args := m.Called(ctx, toEmail, ownerName, vehicleName)
	return args.Error(0)
}

func (m *EmailSender) SendVehicleSubmittedToAdmin(ctx context.Context, toEmail, ownerName, ownerEmail, vehicleName string) error {
	args := m.Called(ctx, toEmail, ownerName, ownerEmail, vehicleName)
	return args.Error(0)
}

func (m *EmailSender) SendVehicleApproved(ctx context.Context, toEmail, ownerName, vehicleName string) error {
	args := m.Called(ctx, toEmail, ownerName, vehicleName)
	return args.Error(0)
}

func (m *EmailSender) SendVehicleRejected(ctx context.Context, toEmail, ownerName, vehicleName, reason string) error {
	args := m.Called(ctx, toEmail, ownerName, vehicleName, reason)
	return args.Error(0)
}

func (m *EmailSender) SendVehicleUnavailable(ctx context.Context, toEmail, ownerName, vehicleName, reason string) error {
	args := m.Called(ctx, toEmail, ownerName, vehicleName, reason)
	return args.Error(0)
}

func (m *EmailSender) SendVehicleAvailable(ctx context.Context, toEmail, ownerName, vehicleName string) error {
	args := m.Called(ctx, toEmail, ownerName, vehicleName)
	return args.Error(0)
}
