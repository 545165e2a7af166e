package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentwheels/internal/domain"
	"rentwheels/internal/middleware"
	"rentwheels/internal/service/booking"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewBookingHandler(bookingService booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	renterID := middleware.GetCurrentUserID(c)
	if renterID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	b, err := h.bookingService.Create(c.Context(), renterID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(b)
}

func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	return h.ownerTransition(c, h.bookingService.Confirm)
}

func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	return h.ownerTransition(c, h.bookingService.Complete)
}

func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	requesterID := middleware.GetCurrentUserID(c)
	if requesterID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	bookingID, err := parseBookingID(c)
	if err != nil {
		return err
	}

	b, err := h.bookingService.Cancel(c.Context(), bookingID, requesterID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(b)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	requesterID := middleware.GetCurrentUserID(c)
	if requesterID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	bookingID, err := parseBookingID(c)
	if err != nil {
		return err
	}

	b, err := h.bookingService.GetByID(c.Context(), bookingID, requesterID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(b)
}

func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	renterID := middleware.GetCurrentUserID(c)
	if renterID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	bookings, err := h.bookingService.ListForRenter(c.Context(), renterID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(bookings)
}

func (h *BookingHandler) ListForMyVehicles(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	bookings, err := h.bookingService.ListForOwner(c.Context(), ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(bookings)
}

type bookingTransitionFn func(ctx context.Context, bookingID, ownerID uuid.UUID) (*domain.Booking, error)

func (h *BookingHandler) ownerTransition(c *fiber.Ctx, fn bookingTransitionFn) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	bookingID, err := parseBookingID(c)
	if err != nil {
		return err
	}

	b, err := fn(c.Context(), bookingID, ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(b)
}

func parseBookingID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid booking ID")
	}
	return id, nil
}
