package handler

import (
	"github.com/gofiber/fiber/v2"

	"rentwheels/internal/domain"
	"rentwheels/internal/service"
)

type Handlers struct {
	Vehicle      *VehicleHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Image        *ImageHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Vehicle:      NewVehicleHandler(services.Vehicle),
		Booking:      NewBookingHandler(services.Booking),
		Notification: NewNotificationHandler(services.Notification),
		Image:        NewImageHandler(services.ImageStore),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return domain.DefaultPagination()
	}
	params.Validate()
	return params
}
