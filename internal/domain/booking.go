package domain

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	RenterID        uuid.UUID     `json:"renter_id" db:"renter_id"`
	OwnerID         uuid.UUID     `json:"owner_id" db:"owner_id"`
	VehicleID       uuid.UUID     `json:"vehicle_id" db:"vehicle_id"`
	StartDate       time.Time     `json:"start_date" db:"start_date"`
	EndDate         time.Time     `json:"end_date" db:"end_date"`
	PickupLocation  *string       `json:"pickup_location,omitempty" db:"pickup_location"`
	DropoffLocation *string       `json:"dropoff_location,omitempty" db:"dropoff_location"`
	Note            *string       `json:"note,omitempty" db:"note"`
	TotalAmount     float64       `json:"total_amount" db:"total_amount"`
	Status          BookingStatus `json:"status" db:"status"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// COMPLETED and CANCELLED are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
	BookingCompleted: {},
	BookingCancelled: {},
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

// BilledDays counts whole elapsed days between start and end, billing at
// least one. Hours beyond the last full day are not charged.
func BilledDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

type CreateBookingInput struct {
	VehicleID       uuid.UUID `json:"vehicle_id" validate:"required"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	PickupLocation  *string   `json:"pickup_location,omitempty"`
	DropoffLocation *string   `json:"dropoff_location,omitempty"`
	Note            *string   `json:"note,omitempty"`
}
