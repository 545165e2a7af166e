package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"rentwheels/internal/domain"
	"rentwheels/internal/service/booking"
	"rentwheels/internal/service/notification"
	"rentwheels/tests/mocks"
)

type bookingServiceFixture struct {
	bookingRepo *mocks.BookingRepository
	vehicleRepo *mocks.VehicleRepository
	userRepo    *mocks.UserRepository
	notifSvc    *mocks.NotificationService
	svc         booking.Service
}

func newBookingServiceFixture() *bookingServiceFixture {
	f := &bookingServiceFixture{
		bookingRepo: new(mocks.BookingRepository),
		vehicleRepo: new(mocks.VehicleRepository),
		userRepo:    new(mocks.UserRepository),
		notifSvc:    new(mocks.NotificationService),
	}
	f.svc = booking.NewService(f.bookingRepo, f.vehicleRepo, f.userRepo, f.notifSvc, zap.NewNop())
	return f
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()
	vehicleID := uuid.New()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	availableVehicle := &domain.Vehicle{
		ID:         vehicleID,
		OwnerID:    ownerID,
		Name:       "Toyota Avanza 2022",
		DailyPrice: 40,
		Status:     domain.VehicleAvailable,
	}

	t.Run("Charges The Daily Price Per Billed Day", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.vehicleRepo.On("GetByID", ctx, vehicleID).Return(availableVehicle, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.RenterID == renterID && b.OwnerID == ownerID &&
				b.Status == domain.BookingPending && b.TotalAmount == 120
		})).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, FullName: "Budi Santoso"}, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.MatchedBy(func(in notification.DispatchInput) bool {
			recipientID, ok := in.Recipient.UserID()
			return ok && recipientID == ownerID && in.Type == domain.NotifNewBooking &&
				in.URL == "/owner/vehicles/bookings"
		})).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Create(ctx, renterID, domain.CreateBookingInput{
			VehicleID: vehicleID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 3),
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(120), b.TotalAmount)
		assert.Equal(t, domain.BookingPending, b.Status)
		f.bookingRepo.AssertExpectations(t)
		f.notifSvc.AssertNumberOfCalls(t, "Dispatch", 1)
	})

	t.Run("A Same-Day Rental Still Bills One Day", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.vehicleRepo.On("GetByID", ctx, vehicleID).Return(availableVehicle, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.TotalAmount == 40
		})).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, renterID).Return(&domain.User{ID: renterID, FullName: "Budi Santoso"}, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.Anything).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Create(ctx, renterID, domain.CreateBookingInput{
			VehicleID: vehicleID,
			StartDate: start,
			EndDate:   start.Add(6 * time.Hour),
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(40), b.TotalAmount)
	})

	t.Run("Rejects An Inverted Date Range", func(t *testing.T) {
		f := newBookingServiceFixture()

		_, err := f.svc.Create(ctx, renterID, domain.CreateBookingInput{
			VehicleID: vehicleID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, -1),
		})

		assert.True(t, domain.IsValidation(err))
		f.vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Refuses A Vehicle That Is Not Available", func(t *testing.T) {
		f := newBookingServiceFixture()

		rented := *availableVehicle
		rented.Status = domain.VehicleRented
		f.vehicleRepo.On("GetByID", ctx, vehicleID).Return(&rented, nil).Once()

		_, err := f.svc.Create(ctx, renterID, domain.CreateBookingInput{
			VehicleID: vehicleID,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 2),
		})

		assert.True(t, domain.IsInvalidTransition(err))
		f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBookingService_Confirm(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()
	vehicleID := uuid.New()
	bookingID := uuid.New()

	pendingBooking := func() *domain.Booking {
		return &domain.Booking{
			ID:        bookingID,
			RenterID:  renterID,
			OwnerID:   ownerID,
			VehicleID: vehicleID,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			Status:    domain.BookingPending,
		}
	}

	t.Run("Confirms And Rents The Vehicle In One Step", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(pendingBooking(), nil).Once()
		f.bookingRepo.On("ConfirmAndRentVehicle", ctx, bookingID, vehicleID).Return(true, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.MatchedBy(func(in notification.DispatchInput) bool {
			recipientID, ok := in.Recipient.UserID()
			return ok && recipientID == renterID && in.Type == domain.NotifBookingConfirmed
		})).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Confirm(ctx, bookingID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, b.Status)
		f.bookingRepo.AssertExpectations(t)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Only The Owner May Confirm", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(pendingBooking(), nil).Once()

		_, err := f.svc.Confirm(ctx, bookingID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.bookingRepo.AssertNotCalled(t, "ConfirmAndRentVehicle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Two Racing Confirms Produce Exactly One Winner", func(t *testing.T) {
		f := newBookingServiceFixture()

		// Both callers read PENDING; the conditional write lets only the
		// first one through.
		f.bookingRepo.On("GetByID", ctx, bookingID).Return(pendingBooking(), nil).Twice()
		f.bookingRepo.On("ConfirmAndRentVehicle", ctx, bookingID, vehicleID).Return(true, nil).Once()
		f.bookingRepo.On("ConfirmAndRentVehicle", ctx, bookingID, vehicleID).Return(false, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.Anything).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		first, err := f.svc.Confirm(ctx, bookingID, ownerID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, first.Status)

		second, err := f.svc.Confirm(ctx, bookingID, ownerID)
		assert.Nil(t, second)
		assert.True(t, domain.IsInvalidTransition(err))

		f.notifSvc.AssertNumberOfCalls(t, "Dispatch", 1)
	})

	t.Run("A Confirmed Booking Cannot Be Confirmed Again", func(t *testing.T) {
		f := newBookingServiceFixture()

		confirmed := pendingBooking()
		confirmed.Status = domain.BookingConfirmed
		f.bookingRepo.On("GetByID", ctx, bookingID).Return(confirmed, nil).Once()

		_, err := f.svc.Confirm(ctx, bookingID, ownerID)
		assert.True(t, domain.IsInvalidTransition(err))
	})
}

func TestBookingService_Complete(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()
	vehicleID := uuid.New()
	bookingID := uuid.New()

	confirmedBooking := func() *domain.Booking {
		return &domain.Booking{
			ID:        bookingID,
			RenterID:  renterID,
			OwnerID:   ownerID,
			VehicleID: vehicleID,
			Status:    domain.BookingConfirmed,
		}
	}

	t.Run("Completes And Releases The Vehicle", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(confirmedBooking(), nil).Once()
		f.bookingRepo.On("CompleteAndReleaseVehicle", ctx, bookingID, vehicleID).Return(true, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.MatchedBy(func(in notification.DispatchInput) bool {
			recipientID, ok := in.Recipient.UserID()
			return ok && recipientID == renterID && in.Type == domain.NotifBookingCompleted
		})).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Complete(ctx, bookingID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCompleted, b.Status)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("A Pending Booking Cannot Be Completed", func(t *testing.T) {
		f := newBookingServiceFixture()

		pending := confirmedBooking()
		pending.Status = domain.BookingPending
		f.bookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil).Once()

		_, err := f.svc.Complete(ctx, bookingID, ownerID)
		assert.True(t, domain.IsInvalidTransition(err))
		f.bookingRepo.AssertNotCalled(t, "CompleteAndReleaseVehicle", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()
	vehicleID := uuid.New()
	bookingID := uuid.New()

	makeBooking := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{
			ID:        bookingID,
			RenterID:  renterID,
			OwnerID:   ownerID,
			VehicleID: vehicleID,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			Status:    status,
		}
	}

	t.Run("The Renter Cancels And The Owner Hears About It", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(makeBooking(domain.BookingPending), nil).Once()
		f.bookingRepo.On("CancelAndReleaseVehicle", ctx, bookingID, vehicleID, false).Return(true, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.MatchedBy(func(in notification.DispatchInput) bool {
			recipientID, ok := in.Recipient.UserID()
			return ok && recipientID == ownerID && in.Type == domain.NotifBookingCancelled
		})).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Cancel(ctx, bookingID, renterID)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, b.Status)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("The Owner Cancels And The Renter Hears About It", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(makeBooking(domain.BookingConfirmed), nil).Once()
		f.bookingRepo.On("CancelAndReleaseVehicle", ctx, bookingID, vehicleID, true).Return(true, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.MatchedBy(func(in notification.DispatchInput) bool {
			recipientID, ok := in.Recipient.UserID()
			return ok && recipientID == renterID
		})).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Cancel(ctx, bookingID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, b.Status)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("Cancelling A Pending Booking Never Releases The Vehicle", func(t *testing.T) {
		// The vehicle may be RENTED under a different, confirmed booking. A
		// pending booking never held it, so its cancellation must not free it.
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(makeBooking(domain.BookingPending), nil).Once()
		f.bookingRepo.On("CancelAndReleaseVehicle", ctx, bookingID, vehicleID, false).Return(true, nil).Once()
		f.notifSvc.On("Dispatch", ctx, mock.Anything).Return(&domain.Notification{ID: uuid.New()}, nil).Once()

		b, err := f.svc.Cancel(ctx, bookingID, renterID)

		assert.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, b.Status)
		f.bookingRepo.AssertExpectations(t)
		f.bookingRepo.AssertNotCalled(t, "CancelAndReleaseVehicle", ctx, bookingID, vehicleID, true)
	})

	t.Run("A Third Party May Not Cancel", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(makeBooking(domain.BookingPending), nil).Once()

		_, err := f.svc.Cancel(ctx, bookingID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Terminal Bookings Stay Terminal", func(t *testing.T) {
		f := newBookingServiceFixture()

		f.bookingRepo.On("GetByID", ctx, bookingID).Return(makeBooking(domain.BookingCompleted), nil).Once()

		_, err := f.svc.Cancel(ctx, bookingID, renterID)
		assert.True(t, domain.IsInvalidTransition(err))
		f.bookingRepo.AssertNotCalled(t, "CancelAndReleaseVehicle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBookingService_Reads(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()
	bookingID := uuid.New()

	stored := &domain.Booking{ID: bookingID, RenterID: renterID, OwnerID: ownerID}

	t.Run("Either Party May Read The Booking", func(t *testing.T) {
		f := newBookingServiceFixture()
		f.bookingRepo.On("GetByID", ctx, bookingID).Return(stored, nil).Twice()

		b, err := f.svc.GetByID(ctx, bookingID, renterID)
		assert.NoError(t, err)
		assert.Equal(t, bookingID, b.ID)

		b, err = f.svc.GetByID(ctx, bookingID, ownerID)
		assert.NoError(t, err)
		assert.Equal(t, bookingID, b.ID)
	})

	t.Run("A Stranger May Not", func(t *testing.T) {
		f := newBookingServiceFixture()
		f.bookingRepo.On("GetByID", ctx, bookingID).Return(stored, nil).Once()

		_, err := f.svc.GetByID(ctx, bookingID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
