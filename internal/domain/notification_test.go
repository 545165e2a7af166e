package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestRecipient(t *testing.T) {
	id := uuid.New()

	user := UserRecipient(id)
	if user.IsAdminBroadcast() {
		t.Fatalf("user recipient must not be a broadcast")
	}
	if got, ok := user.UserID(); !ok || got != id {
		t.Fatalf("user recipient lost its id")
	}
	if user.ColumnValue() == nil || *user.ColumnValue() != id {
		t.Fatalf("user recipient must persist its id")
	}

	admins := AdminRecipient()
	if !admins.IsAdminBroadcast() || admins.ColumnValue() != nil {
		t.Fatalf("admin broadcast must persist a NULL recipient")
	}

	var zero Recipient
	if zero.Valid() {
		t.Fatalf("zero-value recipient must be invalid")
	}
}
