package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentwheels/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)

	// The three lifecycle writes below update the booking and its vehicle in
	// one transaction with conditional statements, so a booking and its
	// vehicle can never disagree, even when two callers race: the loser's
	// conditional update hits zero rows and the transaction rolls back.
	ConfirmAndRentVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (bool, error)
	CompleteAndReleaseVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (bool, error)
	// vehicleWasRented says whether this booking holds the vehicle (it was
	// confirmed). Only then is the vehicle released; a pending booking never
	// rented it, and the vehicle may be RENTED under someone else's booking.
	CancelAndReleaseVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID, vehicleWasRented bool) (bool, error)
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, renter_id, owner_id, vehicle_id, start_date, end_date,
			pickup_location, dropoff_location, note, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		booking.ID, booking.RenterID, booking.OwnerID, booking.VehicleID,
		booking.StartDate, booking.EndDate, booking.PickupLocation, booking.DropoffLocation,
		booking.Note, booking.TotalAmount, booking.Status,
	).Scan(&booking.CreatedAt)
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	query := `SELECT * FROM bookings WHERE id = $1`

	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID uuid.UUID) ([]domain.Booking, error) {
	var bookings []domain.Booking
	query := `SELECT * FROM bookings WHERE renter_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &bookings, query, renterID)
	return bookings, err
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error) {
	var bookings []domain.Booking
	query := `SELECT * FROM bookings WHERE owner_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &bookings, query, ownerID)
	return bookings, err
}

func (r *bookingRepository) ConfirmAndRentVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (bool, error) {
	return r.inTx(ctx, func(tx *sqlx.Tx) (bool, error) {
		ok, err := execHitsOne(ctx, tx,
			`UPDATE bookings SET status = $2 WHERE id = $1 AND status = $3`,
			bookingID, domain.BookingConfirmed, domain.BookingPending)
		if err != nil || !ok {
			return false, err
		}
		return execHitsOne(ctx, tx,
			`UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
			vehicleID, domain.VehicleRented, domain.VehicleAvailable)
	})
}

func (r *bookingRepository) CompleteAndReleaseVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (bool, error) {
	return r.inTx(ctx, func(tx *sqlx.Tx) (bool, error) {
		ok, err := execHitsOne(ctx, tx,
			`UPDATE bookings SET status = $2 WHERE id = $1 AND status = $3`,
			bookingID, domain.BookingCompleted, domain.BookingConfirmed)
		if err != nil || !ok {
			return false, err
		}
		return execHitsOne(ctx, tx,
			`UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
			vehicleID, domain.VehicleAvailable, domain.VehicleRented)
	})
}

func (r *bookingRepository) CancelAndReleaseVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID, vehicleWasRented bool) (bool, error) {
	return r.inTx(ctx, func(tx *sqlx.Tx) (bool, error) {
		ok, err := execHitsOne(ctx, tx,
			`UPDATE bookings SET status = $2 WHERE id = $1 AND status IN ($3, $4)`,
			bookingID, domain.BookingCancelled, domain.BookingPending, domain.BookingConfirmed)
		if err != nil || !ok {
			return false, err
		}
		if !vehicleWasRented {
			return true, nil
		}
		return execHitsOne(ctx, tx,
			`UPDATE vehicles SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
			vehicleID, domain.VehicleAvailable, domain.VehicleRented)
	})
}

func (r *bookingRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) (bool, error)) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}

	ok, err := fn(tx)
	if err != nil || !ok {
		_ = tx.Rollback()
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

func execHitsOne(ctx context.Context, tx *sqlx.Tx, query string, args ...interface{}) (bool, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected == 1, err
}
