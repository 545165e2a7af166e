package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentwheels/internal/domain"
)

// UserRepository is the engine's window into the account directory. Account
// creation and credential handling belong to the auth service that shares
// this database; the lifecycle engine only reads.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, full_name, email, role, created_at FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT id, full_name, email, role, created_at FROM users WHERE role = $1`
	err := r.db.SelectContext(ctx, &users, query, domain.RoleAdmin)
	return users, err
}
