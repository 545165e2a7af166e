package unit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"rentwheels/internal/domain"
	"rentwheels/internal/service/notification"
	"rentwheels/tests/mocks"
)

func TestNotificationService_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores The Record Before Returning", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockPublisher := new(mocks.Publisher)
		svc := notification.NewService(mockRepo, mockPublisher, zap.NewNop())

		userID := uuid.New()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID != nil && *n.RecipientID == userID &&
				n.Type == domain.NotifBookingConfirmed && !n.IsRead
		})).Return(nil).Once()
		// Realtime delivery runs on a detached goroutine.
		mockPublisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		notif, err := svc.Dispatch(ctx, notification.DispatchInput{
			Recipient: domain.UserRecipient(userID),
			Type:      domain.NotifBookingConfirmed,
			Content:   "Your booking has been confirmed by the owner.",
			URL:       "/my-bookings",
		})

		assert.NoError(t, err)
		assert.NotNil(t, notif)
		assert.Equal(t, userID, *notif.RecipientID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Admin Broadcast Has No Recipient Column", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockPublisher := new(mocks.Publisher)
		svc := notification.NewService(mockRepo, mockPublisher, zap.NewNop())

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == nil
		})).Return(nil).Once()
		mockPublisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		notif, err := svc.Dispatch(ctx, notification.DispatchInput{
			Recipient: domain.AdminRecipient(),
			Type:      domain.NotifVehicleSubmission,
			Content:   "A vehicle is pending review.",
			URL:       "/admin/vehicles",
		})

		assert.NoError(t, err)
		assert.Nil(t, notif.RecipientID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejects Missing Recipient", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.Publisher), zap.NewNop())

		notif, err := svc.Dispatch(ctx, notification.DispatchInput{
			Content: "orphaned",
		})

		assert.Nil(t, notif)
		assert.True(t, domain.IsValidation(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rejects Empty Content", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.Publisher), zap.NewNop())

		notif, err := svc.Dispatch(ctx, notification.DispatchInput{
			Recipient: domain.UserRecipient(uuid.New()),
		})

		assert.Nil(t, notif)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Store Failure Surfaces To The Caller", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		mockPublisher := new(mocks.Publisher)
		svc := notification.NewService(mockRepo, mockPublisher, zap.NewNop())

		mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

		notif, err := svc.Dispatch(ctx, notification.DispatchInput{
			Recipient: domain.UserRecipient(uuid.New()),
			Type:      domain.NotifNewBooking,
			Content:   "some content",
		})

		assert.Nil(t, notif)
		assert.Error(t, err)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationService_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("Latest Requires A Recipient", func(t *testing.T) {
		svc := notification.NewService(new(mocks.NotificationRepository), new(mocks.Publisher), zap.NewNop())

		_, err := svc.Latest(ctx, domain.Recipient{}, 20)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("UnreadCount Delegates", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.Publisher), zap.NewNop())

		recipient := domain.UserRecipient(uuid.New())
		mockRepo.On("CountUnread", ctx, recipient).Return(int64(3), nil).Once()

		count, err := svc.UnreadCount(ctx, recipient)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MarkAllRead Returns How Many Changed", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.Publisher), zap.NewNop())

		recipient := domain.AdminRecipient()
		mockRepo.On("MarkAllRead", ctx, recipient).Return(int64(5), nil).Once()

		updated, err := svc.MarkAllRead(ctx, recipient)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), updated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MarkRead Propagates NotFound", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := notification.NewService(mockRepo, new(mocks.Publisher), zap.NewNop())

		id := uuid.New()
		mockRepo.On("MarkRead", ctx, id).Return(domain.ErrNotFound).Once()

		err := svc.MarkRead(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
