package clinic

import (
	"errors"
	"testing"
	"time"
)

func TestCreateDoctorCommandValidate(t *testing.T) {
	valid := CreateDoctorCommand{
		FirstName:       "Gregory",
		LastName:        "House",
		Specializations: []Specialization{Pulmonology},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *CreateDoctorCommand)
	}{
		{"lowercase first name", func(c *CreateDoctorCommand) { c.FirstName = "gregory" }},
		{"single letter first name", func(c *CreateDoctorCommand) { c.FirstName = "G" }},
		{"first name over 20 chars", func(c *CreateDoctorCommand) { c.FirstName = "Gregoryyyyyyyyyyyyyyy" }},
		{"digits in last name", func(c *CreateDoctorCommand) { c.LastName = "H0use" }},
		{"internal uppercase", func(c *CreateDoctorCommand) { c.LastName = "McCoy" }},
		{"empty specializations", func(c *CreateDoctorCommand) { c.Specializations = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)
			if err := cmd.Validate(); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestUpdateDoctorCommandValidate(t *testing.T) {
	empty := UpdateDoctorCommand{}
	if err := empty.Validate(); err != nil {
		t.Errorf("all-nil command is valid: %v", err)
	}

	bad := UpdateDoctorCommand{FirstName: strPtr("x")}
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	// nil means "not supplied"; an explicit empty set is rejected.
	emptySet := UpdateDoctorCommand{Specializations: []Specialization{}}
	if err := emptySet.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for explicit empty set, got %v", err)
	}
}

func TestUpdatePatientCommandValidate(t *testing.T) {
	if err := (&UpdatePatientCommand{}).Validate(); err != nil {
		t.Errorf("all-nil command is valid: %v", err)
	}

	bad := UpdatePatientCommand{DoctorID: int64Ptr(0)}
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for non-positive doctor_id, got %v", err)
	}
}

func TestCreateAppointmentCommandValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	valid := CreateAppointmentCommand{DoctorID: 1, PatientID: 1, StartsAt: now.Add(time.Hour)}
	if err := valid.Validate(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *CreateAppointmentCommand)
	}{
		{"zero doctor id", func(c *CreateAppointmentCommand) { c.DoctorID = 0 }},
		{"negative patient id", func(c *CreateAppointmentCommand) { c.PatientID = -1 }},
		{"zero instant", func(c *CreateAppointmentCommand) { c.StartsAt = time.Time{} }},
		{"instant equal to now", func(c *CreateAppointmentCommand) { c.StartsAt = now }},
		{"past instant", func(c *CreateAppointmentCommand) { c.StartsAt = now.Add(-time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)
			if err := cmd.Validate(now); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestUpdateAppointmentCommandValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := (&UpdateAppointmentCommand{}).Validate(now); err != nil {
		t.Errorf("all-nil command is valid: %v", err)
	}

	past := UpdateAppointmentCommand{StartsAt: timePtr(now.Add(-time.Hour))}
	if err := past.Validate(now); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for past instant, got %v", err)
	}
}

func TestUpdateAppointmentDateCommandValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ok := UpdateAppointmentDateCommand{StartsAt: now.Add(time.Minute)}
	if err := ok.Validate(now); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, at := range []time.Time{{}, now, now.Add(-time.Minute)} {
		cmd := UpdateAppointmentDateCommand{StartsAt: at}
		if err := cmd.Validate(now); !errors.Is(err, ErrValidation) {
			t.Errorf("starts_at=%s: expected ErrValidation, got %v", at, err)
		}
	}
}
