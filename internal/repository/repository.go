package repository

import (
	"strconv"

	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Vehicle      VehicleRepository
	Booking      BookingRepository
	Notification NotificationRepository
	User         UserRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Vehicle:      NewVehicleRepository(db),
		Booking:      NewBookingRepository(db),
		Notification: NewNotificationRepository(db),
		User:         NewUserRepository(db),
	}
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
