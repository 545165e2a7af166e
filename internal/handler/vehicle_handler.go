package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rentwheels/internal/domain"
	"rentwheels/internal/middleware"
	"rentwheels/internal/service/vehicle"
)

type VehicleHandler struct {
	vehicleService vehicle.Service
}

func NewVehicleHandler(vehicleService vehicle.Service) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// reviewInput carries the operator's reason for reject / make-unavailable /
// set-status calls.
type reviewInput struct {
	Reason string `json:"reason"`
}

type setStatusInput struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

func (h *VehicleHandler) Submit(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.SubmitVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	v, err := h.vehicleService.Submit(c.Context(), ownerID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *VehicleHandler) Resubmit(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	var input domain.SubmitVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	v, err := h.vehicleService.Resubmit(c.Context(), vehicleID, ownerID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) Approve(c *fiber.Ctx) error {
	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	v, err := h.vehicleService.Approve(c.Context(), vehicleID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) Reject(c *fiber.Ctx) error {
	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	var input reviewInput
	_ = c.BodyParser(&input)

	v, err := h.vehicleService.Reject(c.Context(), vehicleID, input.Reason)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) MakeUnavailable(c *fiber.Ctx) error {
	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	var input reviewInput
	_ = c.BodyParser(&input)

	v, err := h.vehicleService.MakeUnavailable(c.Context(), vehicleID, input.Reason)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) MakeAvailable(c *fiber.Ctx) error {
	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	v, err := h.vehicleService.MakeAvailable(c.Context(), vehicleID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) SetStatus(c *fiber.Ctx) error {
	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	var input setStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.vehicleService.SetStatus(c.Context(), vehicleID, domain.VehicleStatus(input.Status), input.Reason); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Vehicle status updated"})
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	vehicleID, err := parseVehicleID(c)
	if err != nil {
		return err
	}

	v, err := h.vehicleService.Get(c.Context(), vehicleID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) ListMine(c *fiber.Ctx) error {
	ownerID := middleware.GetCurrentUserID(c)
	if ownerID == uuid.Nil {
		return middleware.Unauthorized("User not authenticated")
	}

	vehicles, err := h.vehicleService.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(vehicles)
}

func (h *VehicleHandler) Search(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	filter := domain.VehicleSearchFilter{Query: c.Query("q")}
	if s := c.Query("status"); s != "" {
		status := domain.VehicleStatus(s)
		if !status.Valid() {
			return middleware.BadRequest("Unknown vehicle status")
		}
		filter.Status = &status
	}

	result, err := h.vehicleService.Search(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *VehicleHandler) StatusCounts(c *fiber.Ctx) error {
	counts, err := h.vehicleService.StatusCounts(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(counts)
}

func parseVehicleID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("vehicleId"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid vehicle ID")
	}
	return id, nil
}
