package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the read-only slice of the account directory the lifecycle engine
// needs: identity, role, and where to send mail. Registration, credentials and
// profile editing live in a separate service.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const (
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
	RoleRenter = "renter"
)

func (u *User) HasRole(role string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == role
}
