package vehicle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentwheels/internal/config"
	"rentwheels/internal/domain"
	"rentwheels/internal/repository"
	"rentwheels/internal/service/email"
	"rentwheels/internal/service/notification"
)

// Service owns the listing state machine. Every transition persists first;
// notification and email fan-out happens after the write and is never allowed
// to fail the operation.
type Service interface {
	Submit(ctx context.Context, ownerID uuid.UUID, input domain.SubmitVehicleInput) (*domain.Vehicle, error)
	Approve(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Vehicle, error)
	Resubmit(ctx context.Context, id, ownerID uuid.UUID, input domain.SubmitVehicleInput) (*domain.Vehicle, error)
	MakeUnavailable(ctx context.Context, id uuid.UUID, reason string) (*domain.Vehicle, error)
	MakeAvailable(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	// SetStatus is the operator escape hatch: it assigns any status directly,
	// reconciling the reason fields so they never contradict the status.
	SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, reason *string) error

	Get(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error)
	Search(ctx context.Context, filter domain.VehicleSearchFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vehicle], error)
	StatusCounts(ctx context.Context) (map[domain.VehicleStatus]int64, error)
}

type service struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	notifSvc    notification.Service
	emailSender email.Sender
	cfg         *config.Config
	log         *zap.Logger
}

func NewService(
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	notifSvc notification.Service,
	emailSender email.Sender,
	cfg *config.Config,
	log *zap.Logger,
) Service {
	return &service{
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		notifSvc:    notifSvc,
		emailSender: emailSender,
		cfg:         cfg,
		log:         log,
	}
}

func (s *service) Submit(ctx context.Context, ownerID uuid.UUID, input domain.SubmitVehicleInput) (*domain.Vehicle, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         input.Name,
		Brand:        input.Brand,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Seats:        input.Seats,
		Transmission: input.Transmission,
		FuelType:     input.FuelType,
		DailyPrice:   input.DailyPrice,
		Description:  input.Description,
		Images:       input.Images,
		Address:      input.Address,
		Status:       domain.VehiclePending,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.fanOutSubmission(ctx, vehicle)

	return vehicle, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	vehicle, err := s.transition(ctx, id, []domain.VehicleStatus{domain.VehiclePending}, domain.VehicleAvailable, nil)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Your vehicle %q has been approved and is now available.", vehicle.Name)
	s.notifyOwner(ctx, vehicle, domain.NotifVehicleApproved, content, "/cars/"+vehicle.ID.String())
	s.sendOwnerMail(ctx, vehicle, func(to, name string) error {
		return s.emailSender.SendVehicleApproved(context.Background(), to, name, vehicle.Name)
	})

	return vehicle, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Vehicle, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason", "a rejection reason is required")
	}

	vehicle, err := s.transition(ctx, id, []domain.VehicleStatus{domain.VehiclePending}, domain.VehicleRejected, &reason)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Your vehicle %q was rejected: %s. Please edit and resubmit.", vehicle.Name, reason)
	s.notifyOwner(ctx, vehicle, domain.NotifVehicleRejected, content, "/owner/vehicles/"+vehicle.ID.String())
	s.sendOwnerMail(ctx, vehicle, func(to, name string) error {
		return s.emailSender.SendVehicleRejected(context.Background(), to, name, vehicle.Name, reason)
	})

	return vehicle, nil
}

func (s *service) Resubmit(ctx context.Context, id, ownerID uuid.UUID, input domain.SubmitVehicleInput) (*domain.Vehicle, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if vehicle.Status != domain.VehicleRejected {
		return nil, domain.NewInvalidTransition("vehicle", vehicle.Status, domain.VehiclePending)
	}

	vehicle.Name = input.Name
	vehicle.Brand = input.Brand
	vehicle.Model = input.Model
	vehicle.Year = input.Year
	vehicle.LicensePlate = input.LicensePlate
	vehicle.Seats = input.Seats
	vehicle.Transmission = input.Transmission
	vehicle.FuelType = input.FuelType
	vehicle.DailyPrice = input.DailyPrice
	vehicle.Description = input.Description
	vehicle.Images = input.Images
	vehicle.Address = input.Address

	if err := s.vehicleRepo.UpdateMetadata(ctx, vehicle); err != nil {
		return nil, err
	}

	ok, err := s.vehicleRepo.UpdateStatusFrom(ctx, id,
		[]domain.VehicleStatus{domain.VehicleRejected}, domain.VehiclePending, nil, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewInvalidTransition("vehicle", vehicle.Status, domain.VehiclePending)
	}

	vehicle.Status = domain.VehiclePending
	vehicle.RejectionReason = nil
	vehicle.UnavailableReason = nil

	// A resubmission is a fresh submission as far as admins are concerned.
	s.fanOutSubmission(ctx, vehicle)

	return vehicle, nil
}

func (s *service) MakeUnavailable(ctx context.Context, id uuid.UUID, reason string) (*domain.Vehicle, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.NewValidationError("reason", "an unavailability reason is required")
	}

	vehicle, err := s.transition(ctx, id, []domain.VehicleStatus{domain.VehicleAvailable}, domain.VehicleUnavailable, &reason)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Your vehicle %q was marked unavailable: %s", vehicle.Name, reason)
	s.notifyOwner(ctx, vehicle, domain.NotifVehicleUnavailable, content, "/owner/vehicles/"+vehicle.ID.String())
	s.sendOwnerMail(ctx, vehicle, func(to, name string) error {
		return s.emailSender.SendVehicleUnavailable(context.Background(), to, name, vehicle.Name, reason)
	})

	return vehicle, nil
}

func (s *service) MakeAvailable(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	vehicle, err := s.transition(ctx, id,
		[]domain.VehicleStatus{domain.VehicleUnavailable, domain.VehicleRejected}, domain.VehicleAvailable, nil)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("Your vehicle %q is now available.", vehicle.Name)
	s.notifyOwner(ctx, vehicle, domain.NotifVehicleAvailable, content, "/cars/"+vehicle.ID.String())
	s.sendOwnerMail(ctx, vehicle, func(to, name string) error {
		return s.emailSender.SendVehicleAvailable(context.Background(), to, name, vehicle.Name)
	})

	return vehicle, nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, reason *string) error {
	if !status.Valid() {
		return domain.NewValidationError("status", fmt.Sprintf("unknown vehicle status %q", status))
	}
	needsReason := status == domain.VehicleRejected || status == domain.VehicleUnavailable
	if needsReason && (reason == nil || strings.TrimSpace(*reason) == "") {
		return domain.NewValidationError("reason", fmt.Sprintf("a reason is required for status %s", status))
	}

	rejection, unavailable := domain.ReasonsForStatus(status, reason)
	ok, err := s.vehicleRepo.SetStatus(ctx, id, status, rejection, unavailable)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByOwner(ctx, ownerID)
}

func (s *service) Search(ctx context.Context, filter domain.VehicleSearchFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.Search(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Vehicle]{}, err
	}
	return domain.NewPaginatedResponse(vehicles, params.Page, params.PageSize, total), nil
}

func (s *service) StatusCounts(ctx context.Context) (map[domain.VehicleStatus]int64, error) {
	counts := make(map[domain.VehicleStatus]int64)
	for _, status := range []domain.VehicleStatus{
		domain.VehiclePending, domain.VehicleAvailable, domain.VehicleUnavailable,
		domain.VehicleRejected, domain.VehicleRented,
	} {
		count, err := s.vehicleRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, nil
}

// transition loads the vehicle, applies a conditional status update and keeps
// the in-memory copy in sync. A missed conditional update means the listing
// moved on between the read and the write.
func (s *service) transition(ctx context.Context, id uuid.UUID, from []domain.VehicleStatus, to domain.VehicleStatus, reason *string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rejection, unavailable := domain.ReasonsForStatus(to, reason)
	ok, err := s.vehicleRepo.UpdateStatusFrom(ctx, id, from, to, rejection, unavailable)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewInvalidTransition("vehicle", vehicle.Status, to)
	}

	vehicle.Status = to
	vehicle.RejectionReason = rejection
	vehicle.UnavailableReason = unavailable
	return vehicle, nil
}

func validateSubmission(input domain.SubmitVehicleInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domain.NewValidationError("name", "vehicle name is required")
	}
	if strings.TrimSpace(input.LicensePlate) == "" {
		return domain.NewValidationError("license_plate", "license plate is required")
	}
	if input.DailyPrice <= 0 {
		return domain.NewValidationError("daily_price", "daily price must be positive")
	}
	return nil
}

// fanOutSubmission notifies admins and emails both sides about a new or
// resubmitted listing. The listing is already committed when this runs, so
// every failure here is logged and dropped, never surfaced to the owner.
func (s *service) fanOutSubmission(ctx context.Context, vehicle *domain.Vehicle) {
	owner, err := s.userRepo.GetByID(ctx, vehicle.OwnerID)
	if err != nil {
		s.log.Warn("submission fan-out: owner lookup failed",
			zap.String("owner_id", vehicle.OwnerID.String()), zap.Error(err))
		return
	}

	content := fmt.Sprintf("Owner %s has submitted the vehicle %q and it is pending review.", owner.FullName, vehicle.Name)
	_, err = s.notifSvc.Dispatch(ctx, notification.DispatchInput{
		Recipient: domain.AdminRecipient(),
		SenderID:  &owner.ID,
		Type:      domain.NotifVehicleSubmission,
		Content:   content,
		URL:       "/admin/vehicles/" + vehicle.ID.String(),
	})
	if err != nil {
		s.log.Warn("submission fan-out: admin notification failed",
			zap.String("vehicle_id", vehicle.ID.String()), zap.Error(err))
	}

	vehicleName := vehicle.Name
	ownerName, ownerEmail := owner.FullName, owner.Email
	adminTo := s.adminInboxes(ctx)
	go func() {
		ctx := context.Background()
		if ownerEmail != "" {
			if err := s.emailSender.SendVehiclePendingToOwner(ctx, ownerEmail, ownerName, vehicleName); err != nil {
				s.log.Warn("submission fan-out: owner mail failed", zap.Error(err))
			}
		}
		for _, to := range adminTo {
			if err := s.emailSender.SendVehicleSubmittedToAdmin(ctx, to, ownerName, ownerEmail, vehicleName); err != nil {
				s.log.Warn("submission fan-out: admin mail failed", zap.String("to", to), zap.Error(err))
			}
		}
	}()
}

// adminInboxes collects the review addresses: every admin account in the
// directory, or the configured review inbox when the directory lists none.
func (s *service) adminInboxes(ctx context.Context) []string {
	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		s.log.Warn("submission fan-out: admin list failed", zap.Error(err))
	}

	var inboxes []string
	for _, admin := range admins {
		if admin.Email != "" {
			inboxes = append(inboxes, admin.Email)
		}
	}
	if len(inboxes) == 0 && s.cfg.AdminEmail != "" {
		inboxes = append(inboxes, s.cfg.AdminEmail)
	}
	return inboxes
}

// notifyOwner records a single notification for the listing's owner. The
// record write is synchronous so the fan-out is exactly-once per transition;
// realtime delivery behind it is already detached.
func (s *service) notifyOwner(ctx context.Context, vehicle *domain.Vehicle, notifType domain.NotificationType, content, url string) {
	_, err := s.notifSvc.Dispatch(ctx, notification.DispatchInput{
		Recipient: domain.UserRecipient(vehicle.OwnerID),
		Type:      notifType,
		Content:   content,
		URL:       url,
	})
	if err != nil {
		s.log.Warn("owner notification failed",
			zap.String("vehicle_id", vehicle.ID.String()),
			zap.String("type", string(notifType)),
			zap.Error(err))
	}
}

func (s *service) sendOwnerMail(ctx context.Context, vehicle *domain.Vehicle, send func(to, name string) error) {
	owner, err := s.userRepo.GetByID(ctx, vehicle.OwnerID)
	if err != nil {
		s.log.Warn("owner mail: lookup failed",
			zap.String("owner_id", vehicle.OwnerID.String()), zap.Error(err))
		return
	}
	if owner.Email == "" {
		return
	}
	to, name := owner.Email, owner.FullName
	go func() {
		if err := send(to, name); err != nil {
			s.log.Warn("owner mail failed",
				zap.String("vehicle_id", vehicle.ID.String()), zap.Error(err))
		}
	}()
}
