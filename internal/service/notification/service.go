package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentwheels/internal/domain"
	"rentwheels/internal/repository"
	"rentwheels/internal/service/realtime"
)

// Service persists notification records and fans them out to realtime
// subscribers. The record is written first and is the source of truth; a
// client that misses the realtime push can always poll Latest/UnreadCount.
type Service interface {
	// Dispatch stores the notification and then attempts realtime delivery.
	// Only the store write can fail; delivery errors are logged and swallowed.
	Dispatch(ctx context.Context, input DispatchInput) (*domain.Notification, error)

	Latest(ctx context.Context, recipient domain.Recipient, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, recipient domain.Recipient) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient domain.Recipient) (int64, error)
}

type DispatchInput struct {
	Recipient domain.Recipient
	SenderID  *uuid.UUID
	Type      domain.NotificationType
	Content   string
	URL       string
}

type service struct {
	notifRepo repository.NotificationRepository
	publisher realtime.Publisher
	log       *zap.Logger
}

func NewService(notifRepo repository.NotificationRepository, publisher realtime.Publisher, log *zap.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *service) Dispatch(ctx context.Context, input DispatchInput) (*domain.Notification, error) {
	if !input.Recipient.Valid() {
		return nil, domain.NewValidationError("recipient", "notification recipient is required")
	}
	if input.Content == "" {
		return nil, domain.NewValidationError("content", "notification content is required")
	}

	notif := &domain.Notification{
		ID:          uuid.New(),
		RecipientID: input.Recipient.ColumnValue(),
		SenderID:    input.SenderID,
		Type:        input.Type,
		Content:     input.Content,
		URL:         input.URL,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	// Realtime delivery runs detached from the request: the record is already
	// durable and a slow or dead transport must not hold the caller up.
	topics := topicsFor(input.Recipient, input.Type)
	go func() {
		ctx := context.Background()
		for _, topic := range topics {
			if err := s.publisher.Publish(ctx, topic, notif); err != nil {
				s.log.Warn("realtime notification delivery failed",
					zap.String("topic", topic),
					zap.String("notification_id", notif.ID.String()),
					zap.Error(err))
			}
		}
	}()

	return notif, nil
}

// topicsFor picks the channels a notification goes out on. Admin broadcasts
// also land on the event-specific channels the admin panel subscribes to.
func topicsFor(recipient domain.Recipient, notifType domain.NotificationType) []string {
	if userID, ok := recipient.UserID(); ok {
		return []string{realtime.UserTopic(userID)}
	}

	topics := []string{realtime.TopicAdmin}
	switch notifType {
	case domain.NotifOwnerRequest:
		topics = append(topics, realtime.TopicOwnerRequests)
	case domain.NotifVehicleSubmission:
		topics = append(topics, realtime.TopicOwnerRequests, realtime.TopicVehicleSubmitted)
	}
	return topics
}

func (s *service) Latest(ctx context.Context, recipient domain.Recipient, limit int) ([]domain.Notification, error) {
	if !recipient.Valid() {
		return nil, domain.NewValidationError("recipient", "notification recipient is required")
	}
	return s.notifRepo.ListLatest(ctx, recipient, limit)
}

func (s *service) UnreadCount(ctx context.Context, recipient domain.Recipient) (int64, error) {
	if !recipient.Valid() {
		return 0, domain.NewValidationError("recipient", "notification recipient is required")
	}
	return s.notifRepo.CountUnread(ctx, recipient)
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, recipient domain.Recipient) (int64, error) {
	if !recipient.Valid() {
		return 0, domain.NewValidationError("recipient", "notification recipient is required")
	}
	return s.notifRepo.MarkAllRead(ctx, recipient)
}
