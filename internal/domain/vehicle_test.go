package domain

import "testing"

func TestVehicleTransitions(t *testing.T) {
	allowed := []struct{ from, to VehicleStatus }{
		{VehiclePending, VehicleAvailable},
		{VehiclePending, VehicleRejected},
		{VehicleAvailable, VehicleUnavailable},
		{VehicleAvailable, VehicleRented},
		{VehicleUnavailable, VehicleAvailable},
		{VehicleRejected, VehicleAvailable},
		{VehicleRejected, VehiclePending},
		{VehicleRented, VehicleAvailable},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransitionTo(tr.to) {
			t.Errorf("expected %s -> %s allowed", tr.from, tr.to)
		}
	}

	forbidden := []struct{ from, to VehicleStatus }{
		{VehiclePending, VehicleRented},
		{VehiclePending, VehicleUnavailable},
		{VehicleAvailable, VehiclePending},
		{VehicleAvailable, VehicleRejected},
		{VehicleUnavailable, VehicleRented},
		{VehicleRented, VehicleUnavailable},
		{VehicleRejected, VehicleRented},
	}
	for _, tr := range forbidden {
		if tr.from.CanTransitionTo(tr.to) {
			t.Errorf("expected %s -> %s not allowed", tr.from, tr.to)
		}
	}
}

func TestReasonsForStatus(t *testing.T) {
	reason := "plate mismatch"

	rej, unav := ReasonsForStatus(VehicleRejected, &reason)
	if rej == nil || unav != nil {
		t.Fatalf("REJECTED must carry only the rejection reason")
	}

	rej, unav = ReasonsForStatus(VehicleUnavailable, &reason)
	if rej != nil || unav == nil {
		t.Fatalf("UNAVAILABLE must carry only the unavailable reason")
	}

	for _, s := range []VehicleStatus{VehiclePending, VehicleAvailable, VehicleRented} {
		rej, unav = ReasonsForStatus(s, &reason)
		if rej != nil || unav != nil {
			t.Errorf("%s must clear both reasons", s)
		}
	}
}
