package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	RecipientID *uuid.UUID       `json:"recipient_id,omitempty" db:"recipient_id"`
	SenderID    *uuid.UUID       `json:"sender_id,omitempty" db:"sender_id"`
	Type        NotificationType `json:"type" db:"type"`
	Content     string           `json:"content" db:"content"`
	URL         string           `json:"url" db:"url"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifNewBooking         NotificationType = "NEW_BOOKING"
	NotifBookingConfirmed   NotificationType = "BOOKING_CONFIRMED"
	NotifBookingCompleted   NotificationType = "BOOKING_COMPLETED"
	NotifBookingCancelled   NotificationType = "BOOKING_CANCELLED"
	NotifVehicleApproved    NotificationType = "VEHICLE_APPROVED"
	NotifVehicleRejected    NotificationType = "VEHICLE_REJECTED"
	NotifVehicleUnavailable NotificationType = "VEHICLE_UNAVAILABLE"
	NotifVehicleAvailable   NotificationType = "VEHICLE_AVAILABLE"
	NotifVehicleSubmission  NotificationType = "VEHICLE_SUBMISSION"
	NotifOwnerRequest       NotificationType = "OWNER_REQUEST"
)

// Recipient addresses a notification either to one user or to every admin.
// The admin broadcast is stored as a NULL recipient_id; keeping the variant
// explicit here means a zero-value Recipient is invalid rather than silently
// becoming a broadcast.
type Recipient struct {
	userID uuid.UUID
	admins bool
}

func UserRecipient(id uuid.UUID) Recipient {
	return Recipient{userID: id}
}

func AdminRecipient() Recipient {
	return Recipient{admins: true}
}

func (r Recipient) IsAdminBroadcast() bool {
	return r.admins
}

func (r Recipient) UserID() (uuid.UUID, bool) {
	if r.admins || r.userID == uuid.Nil {
		return uuid.Nil, false
	}
	return r.userID, true
}

func (r Recipient) Valid() bool {
	return r.admins || r.userID != uuid.Nil
}

// ColumnValue is what goes into the nullable recipient_id column.
func (r Recipient) ColumnValue() *uuid.UUID {
	if r.admins {
		return nil
	}
	id := r.userID
	return &id
}
