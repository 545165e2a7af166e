package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentwheels/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListLatest(ctx context.Context, recipient domain.Recipient, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, recipient domain.Recipient) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient domain.Recipient) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, content, url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.Type, notif.Content, notif.URL,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListLatest(ctx context.Context, recipient domain.Recipient, limit int) ([]domain.Notification, error) {
	if limit < 1 {
		limit = 1
	}

	var notifications []domain.Notification
	if recipient.IsAdminBroadcast() {
		query := `SELECT * FROM notifications WHERE recipient_id IS NULL ORDER BY created_at DESC LIMIT $1`
		err := r.db.SelectContext(ctx, &notifications, query, limit)
		return notifications, err
	}

	userID, _ := recipient.UserID()
	query := `SELECT * FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2`
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipient domain.Recipient) (int64, error) {
	var count int64
	if recipient.IsAdminBroadcast() {
		err := r.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM notifications WHERE recipient_id IS NULL AND is_read = false`)
		return count, err
	}

	userID, _ := recipient.UserID()
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`, userID)
	return count, err
}

// MarkRead is idempotent: re-marking a read notification succeeds without effect.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipient domain.Recipient) (int64, error) {
	var res sql.Result
	var err error
	if recipient.IsAdminBroadcast() {
		res, err = r.db.ExecContext(ctx,
			`UPDATE notifications SET is_read = true WHERE recipient_id IS NULL AND is_read = false`)
	} else {
		userID, _ := recipient.UserID()
		res, err = r.db.ExecContext(ctx,
			`UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`, userID)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
