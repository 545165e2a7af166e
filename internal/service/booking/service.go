package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentwheels/internal/domain"
	"rentwheels/internal/repository"
	"rentwheels/internal/service/notification"
)

// Service owns the booking state machine and the vehicle-status side effects
// coupled to it. Confirm, complete and cancel each pair the booking write with
// the vehicle write in one repository transaction so the two records cannot
// drift apart.
type Service interface {
	Create(ctx context.Context, renterID uuid.UUID, input domain.CreateBookingInput) (*domain.Booking, error)
	Confirm(ctx context.Context, bookingID, ownerID uuid.UUID) (*domain.Booking, error)
	Complete(ctx context.Context, bookingID, ownerID uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterID uuid.UUID) (*domain.Booking, error)

	GetByID(ctx context.Context, id, requesterID uuid.UUID) (*domain.Booking, error)
	ListForRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
}

type service struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	notifSvc    notification.Service
	log         *zap.Logger
}

func NewService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
	log *zap.Logger,
) Service {
	return &service{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		notifSvc:    notifSvc,
		log:         log,
	}
}

// Create books an AVAILABLE vehicle. Vehicles that are pending, rejected,
// unavailable or already rented are refused up front rather than accepted
// into a booking the owner could never confirm.
func (s *service) Create(ctx context.Context, renterID uuid.UUID, input domain.CreateBookingInput) (*domain.Booking, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, domain.NewValidationError("end_date", "end date must be after start date")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleAvailable {
		return nil, domain.NewInvalidTransition("vehicle", vehicle.Status, domain.VehicleRented)
	}

	days := domain.BilledDays(input.StartDate, input.EndDate)
	booking := &domain.Booking{
		ID:              uuid.New(),
		RenterID:        renterID,
		OwnerID:         vehicle.OwnerID,
		VehicleID:       vehicle.ID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		Note:            input.Note,
		TotalAmount:     vehicle.DailyPrice * float64(days),
		Status:          domain.BookingPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	renterName := s.displayName(ctx, renterID)
	content := fmt.Sprintf("User %s has booked your vehicle %q from %s to %s.",
		renterName, vehicle.Name,
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"))
	s.notify(ctx, booking, domain.UserRecipient(vehicle.OwnerID), &renterID,
		domain.NotifNewBooking, content, "/owner/vehicles/bookings")

	return booking, nil
}

func (s *service) Confirm(ctx context.Context, bookingID, ownerID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.ownedBooking(ctx, bookingID, ownerID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingPending {
		return nil, domain.NewInvalidTransition("booking", booking.Status, domain.BookingConfirmed)
	}

	ok, err := s.bookingRepo.ConfirmAndRentVehicle(ctx, booking.ID, booking.VehicleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: the booking or the vehicle moved between read and write.
		return nil, domain.NewInvalidTransition("booking", booking.Status, domain.BookingConfirmed)
	}
	booking.Status = domain.BookingConfirmed

	content := fmt.Sprintf("Your booking from %s to %s has been confirmed by the owner.",
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"))
	s.notify(ctx, booking, domain.UserRecipient(booking.RenterID), &ownerID,
		domain.NotifBookingConfirmed, content, "/my-bookings")

	return booking, nil
}

func (s *service) Complete(ctx context.Context, bookingID, ownerID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.ownedBooking(ctx, bookingID, ownerID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, domain.NewInvalidTransition("booking", booking.Status, domain.BookingCompleted)
	}

	ok, err := s.bookingRepo.CompleteAndReleaseVehicle(ctx, booking.ID, booking.VehicleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewInvalidTransition("booking", booking.Status, domain.BookingCompleted)
	}
	booking.Status = domain.BookingCompleted

	content := "Your rental has been completed. Thanks for riding with us!"
	s.notify(ctx, booking, domain.UserRecipient(booking.RenterID), &ownerID,
		domain.NotifBookingCompleted, content, "/my-bookings")

	return booking, nil
}

// Cancel is open to either party while the booking is PENDING or CONFIRMED.
// A confirmed booking had set its vehicle to RENTED; the same transaction
// puts the vehicle back to AVAILABLE.
func (s *service) Cancel(ctx context.Context, bookingID, requesterID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if requesterID != booking.RenterID && requesterID != booking.OwnerID {
		return nil, domain.ErrForbidden
	}
	if booking.Status.Terminal() {
		return nil, domain.NewInvalidTransition("booking", booking.Status, domain.BookingCancelled)
	}

	// Only a confirmed booking holds the vehicle. Cancelling a pending one
	// must leave the vehicle alone: it may be out under another booking.
	wasRented := booking.Status == domain.BookingConfirmed
	ok, err := s.bookingRepo.CancelAndReleaseVehicle(ctx, booking.ID, booking.VehicleID, wasRented)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewInvalidTransition("booking", booking.Status, domain.BookingCancelled)
	}
	booking.Status = domain.BookingCancelled

	// Tell the side that didn't ask for the cancellation.
	counterparty := booking.OwnerID
	if requesterID == booking.OwnerID {
		counterparty = booking.RenterID
	}
	content := fmt.Sprintf("The booking from %s to %s has been cancelled.",
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"))
	s.notify(ctx, booking, domain.UserRecipient(counterparty), &requesterID,
		domain.NotifBookingCancelled, content, "/my-bookings")

	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id, requesterID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterID != booking.RenterID && requesterID != booking.OwnerID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *service) ListForRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID)
}

func (s *service) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID)
}

func (s *service) ownedBooking(ctx context.Context, bookingID, ownerID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *service) notify(ctx context.Context, booking *domain.Booking, recipient domain.Recipient, senderID *uuid.UUID, notifType domain.NotificationType, content, url string) {
	_, err := s.notifSvc.Dispatch(ctx, notification.DispatchInput{
		Recipient: recipient,
		SenderID:  senderID,
		Type:      notifType,
		Content:   content,
		URL:       url,
	})
	if err != nil {
		s.log.Warn("booking notification failed",
			zap.String("booking_id", booking.ID.String()),
			zap.String("type", string(notifType)),
			zap.Error(err))
	}
}

func (s *service) displayName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "A renter"
	}
	return user.FullName
}
