package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentwheels/internal/domain"
	"rentwheels/internal/middleware"
	"rentwheels/internal/service/notification"
)

const defaultNotificationLimit = 20

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// callerRecipient resolves which feed the caller reads: admins see the
// broadcast feed, everyone else their own.
func callerRecipient(c *fiber.Ctx) (domain.Recipient, error) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return domain.Recipient{}, middleware.Unauthorized("User not authenticated")
	}
	if user.Role == domain.RoleAdmin {
		return domain.AdminRecipient(), nil
	}
	return domain.UserRecipient(user.ID), nil
}

func (h *NotificationHandler) Latest(c *fiber.Ctx) error {
	recipient, err := callerRecipient(c)
	if err != nil {
		return err
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return middleware.BadRequest("Invalid limit")
		}
		limit = parsed
	}

	notifications, err := h.notificationService.Latest(c.Context(), recipient, limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	recipient, err := callerRecipient(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.UnreadCount(c.Context(), recipient)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID, err := uuid.Parse(c.Params("notificationId"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), notificationID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	recipient, err := callerRecipient(c)
	if err != nil {
		return err
	}

	updated, err := h.notificationService.MarkAllRead(c.Context(), recipient)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"marked_read": updated})
}
