package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"rentwheels/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error)
	Search(ctx context.Context, filter domain.VehicleSearchFilter, params domain.PaginationParams) ([]domain.Vehicle, int64, error)
	CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error)
	UpdateMetadata(ctx context.Context, vehicle *domain.Vehicle) error
	// UpdateStatusFrom flips the status only when the current status is one of
	// from, writing both reason columns in the same statement. Reports whether
	// a row was updated; false means the precondition no longer held.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.VehicleStatus, to domain.VehicleStatus, rejectionReason, unavailableReason *string) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, rejectionReason, unavailableReason *string) (bool, error)
}

type vehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_id, name, brand, model, year, license_plate, seats,
			transmission, fuel_type, daily_price, description, images, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		vehicle.ID, vehicle.OwnerID, vehicle.Name, vehicle.Brand, vehicle.Model, vehicle.Year,
		vehicle.LicensePlate, vehicle.Seats, vehicle.Transmission, vehicle.FuelType,
		vehicle.DailyPrice, vehicle.Description, vehicle.Images, vehicle.Address, vehicle.Status,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	query := `SELECT * FROM vehicles WHERE id = $1`

	err := r.db.GetContext(ctx, &vehicle, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	query := `SELECT * FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &vehicles, query, ownerID)
	return vehicles, err
}

func (r *vehicleRepository) Search(ctx context.Context, filter domain.VehicleSearchFilter, params domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	params.Validate()

	where := `(name ILIKE $1 OR license_plate ILIKE $1 OR brand ILIKE $1)`
	args := []interface{}{"%" + filter.Query + "%"}

	if filter.Status != nil {
		where += ` AND status = $2`
		args = append(args, *filter.Status)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM vehicles WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM vehicles WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var vehicles []domain.Vehicle
	err := r.db.SelectContext(ctx, &vehicles, query, args...)
	return vehicles, total, err
}

func (r *vehicleRepository) CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM vehicles WHERE status = $1`, status)
	return count, err
}

func (r *vehicleRepository) UpdateMetadata(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, brand = $3, model = $4, year = $5, license_plate = $6, seats = $7,
			transmission = $8, fuel_type = $9, daily_price = $10, description = $11,
			images = $12, address = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		vehicle.ID, vehicle.Name, vehicle.Brand, vehicle.Model, vehicle.Year, vehicle.LicensePlate,
		vehicle.Seats, vehicle.Transmission, vehicle.FuelType, vehicle.DailyPrice,
		vehicle.Description, vehicle.Images, vehicle.Address,
	).Scan(&vehicle.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *vehicleRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from []domain.VehicleStatus, to domain.VehicleStatus, rejectionReason, unavailableReason *string) (bool, error) {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	query := `
		UPDATE vehicles
		SET status = $2, rejection_reason = $3, unavailable_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = ANY($5)`

	res, err := r.db.ExecContext(ctx, query, id, to, rejectionReason, unavailableReason, pq.Array(fromStrs))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *vehicleRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.VehicleStatus, rejectionReason, unavailableReason *string) (bool, error) {
	query := `
		UPDATE vehicles
		SET status = $2, rejection_reason = $3, unavailable_reason = $4, updated_at = NOW()
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, status, rejectionReason, unavailableReason)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}
