package domain

import (
	"testing"
	"time"
)

func TestBookingTransitions(t *testing.T) {
	if !BookingPending.CanTransitionTo(BookingConfirmed) {
		t.Fatalf("expected PENDING -> CONFIRMED allowed")
	}
	if !BookingConfirmed.CanTransitionTo(BookingCompleted) {
		t.Fatalf("expected CONFIRMED -> COMPLETED allowed")
	}
	if BookingPending.CanTransitionTo(BookingCompleted) {
		t.Fatalf("completing an unconfirmed booking must not be allowed")
	}
	for _, terminal := range []BookingStatus{BookingCompleted, BookingCancelled} {
		if !terminal.Terminal() {
			t.Errorf("expected %s terminal", terminal)
		}
		for _, to := range []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled} {
			if terminal.CanTransitionTo(to) {
				t.Errorf("expected no transition out of %s (tried %s)", terminal, to)
			}
		}
	}
}

func TestBilledDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"three days", day(1), day(4), 3},
		{"single day", day(1), day(2), 1},
		{"same day billed as one", day(1), day(1), 1},
		{"partial day rounds down but floors at one", day(1), day(1).Add(6 * time.Hour), 1},
		{"started fourth day is not charged", day(1), day(4).Add(6 * time.Hour), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BilledDays(tt.start, tt.end); got != tt.want {
				t.Errorf("BilledDays = %d, want %d", got, tt.want)
			}
		})
	}
}
