package clinic

import (
	"testing"
	"time"
)

func TestDoctorAvailable(t *testing.T) {
	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	schedule := []Slot{
		{AppointmentID: 1, StartsAt: at},
		{AppointmentID: 2, StartsAt: at.Add(time.Hour)},
	}

	tests := []struct {
		name      string
		candidate time.Time
		excludeID int64
		want      bool
	}{
		{"exact instant taken", at, 0, false},
		{"one second later is free", at.Add(time.Second), 0, true},
		{"one second earlier is free", at.Add(-time.Second), 0, true},
		{"own slot excluded", at, 1, true},
		{"exclusion does not free other slots", at.Add(time.Hour), 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doctorAvailable(schedule, tt.candidate, tt.excludeID); got != tt.want {
				t.Errorf("doctorAvailable() = %v, want %v", got, tt.want)
			}
		})
	}

	if !doctorAvailable(nil, at, 0) {
		t.Error("empty schedule should always be available")
	}
}

func TestMutable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if !mutable(now.Add(time.Nanosecond), now) {
		t.Error("a strictly future instant is mutable")
	}
	if mutable(now, now) {
		t.Error("an instant equal to now is already elapsed")
	}
	if mutable(now.Add(-time.Nanosecond), now) {
		t.Error("a past instant is frozen")
	}
}
