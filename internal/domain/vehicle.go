package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Vehicle struct {
	ID                uuid.UUID      `json:"id" db:"id"`
	OwnerID           uuid.UUID      `json:"owner_id" db:"owner_id"`
	Name              string         `json:"name" db:"name"`
	Brand             string         `json:"brand" db:"brand"`
	Model             string         `json:"model" db:"model"`
	Year              int            `json:"year" db:"year"`
	LicensePlate      string         `json:"license_plate" db:"license_plate"`
	Seats             int            `json:"seats" db:"seats"`
	Transmission      string         `json:"transmission" db:"transmission"`
	FuelType          string         `json:"fuel_type" db:"fuel_type"`
	DailyPrice        float64        `json:"daily_price" db:"daily_price"`
	Description       *string        `json:"description,omitempty" db:"description"`
	Images            pq.StringArray `json:"images" db:"images"`
	Address           *string        `json:"address,omitempty" db:"address"`
	Status            VehicleStatus  `json:"status" db:"status"`
	RejectionReason   *string        `json:"rejection_reason,omitempty" db:"rejection_reason"`
	UnavailableReason *string        `json:"unavailable_reason,omitempty" db:"unavailable_reason"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

type VehicleStatus string

const (
	VehiclePending     VehicleStatus = "PENDING"
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleUnavailable VehicleStatus = "UNAVAILABLE"
	VehicleRejected    VehicleStatus = "REJECTED"
	VehicleRented      VehicleStatus = "RENTED"
)

// vehicleTransitions is the listing state machine. RENTED is entered and left
// only through the booking lifecycle, never by a direct listing operation.
var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehiclePending:     {VehicleAvailable, VehicleRejected},
	VehicleAvailable:   {VehicleUnavailable, VehicleRented},
	VehicleUnavailable: {VehicleAvailable},
	VehicleRejected:    {VehicleAvailable, VehiclePending},
	VehicleRented:      {VehicleAvailable},
}

func (s VehicleStatus) CanTransitionTo(to VehicleStatus) bool {
	for _, allowed := range vehicleTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s VehicleStatus) Valid() bool {
	_, ok := vehicleTransitions[s]
	return ok
}

// ReasonsForStatus reconciles the two reason fields so that at most one is set:
// a rejection reason only on REJECTED, an unavailable reason only on UNAVAILABLE.
func ReasonsForStatus(status VehicleStatus, reason *string) (rejection, unavailable *string) {
	switch status {
	case VehicleRejected:
		return reason, nil
	case VehicleUnavailable:
		return nil, reason
	default:
		return nil, nil
	}
}

type SubmitVehicleInput struct {
	Name         string   `json:"name" validate:"required"`
	Brand        string   `json:"brand" validate:"required"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	LicensePlate string   `json:"license_plate" validate:"required"`
	Seats        int      `json:"seats"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuel_type"`
	DailyPrice   float64  `json:"daily_price" validate:"required,gt=0"`
	Description  *string  `json:"description,omitempty"`
	Images       []string `json:"images,omitempty"`
	Address      *string  `json:"address,omitempty"`
}

type VehicleSearchFilter struct {
	Query  string
	Status *VehicleStatus
}
