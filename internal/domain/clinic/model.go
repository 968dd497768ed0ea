package clinic

import (
	"encoding/json"
	"fmt"
	"time"
)

// Specialization is a doctor's medical practice area.
type Specialization string

const (
	FamilyMedicine Specialization = "FAMILY_MEDICINE"
	Pulmonology    Specialization = "PULMONOLOGY"
	Pediatrics     Specialization = "PEDIATRICS"
)

// Specializations returns every known specialization.
func Specializations() []Specialization {
	return []Specialization{FamilyMedicine, Pulmonology, Pediatrics}
}

// ParseSpecialization validates a raw string against the known set.
func ParseSpecialization(s string) (Specialization, error) {
	for _, sp := range Specializations() {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("unknown specialization %q: %w", s, ErrValidation)
}

func (s *Specialization) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSpecialization(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Disease is a patient's diagnosed condition.
type Disease string

const (
	Flu          Disease = "FLU"
	Covid19      Disease = "COVID_19"
	Tonsillitis  Disease = "TONSILLITIS"
	Bronchitis   Disease = "BRONCHITIS"
	Pneumonia    Disease = "PNEUMONIA"
	Chickenpox   Disease = "CHICKENPOX"
	Rubella      Disease = "RUBELLA"
	Mumps        Disease = "MUMPS"
	Measles      Disease = "MEASLES"
	ScarletFever Disease = "SCARLET_FEVER"
)

// Diseases returns every known disease.
func Diseases() []Disease {
	return []Disease{
		Flu, Covid19, Tonsillitis,
		Bronchitis, Pneumonia,
		Chickenpox, Rubella, Mumps, Measles, ScarletFever,
	}
}

// ParseDisease validates a raw string against the known set.
func ParseDisease(s string) (Disease, error) {
	for _, d := range Diseases() {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown disease %q: %w", s, ErrValidation)
}

func (d *Disease) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDisease(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Doctor maps to the doctor table. Specializations come from the
// doctor_specialization table; Schedule is the doctor's current
// appointment slots, loaded for availability checks and never written
// through this entity.
type Doctor struct {
	ID              int64            `db:"id" json:"id"`
	FirstName       string           `db:"first_name" json:"first_name"`
	LastName        string           `db:"last_name" json:"last_name"`
	Specializations []Specialization `json:"specializations"`
	Schedule        []Slot           `json:"-"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// HasSpecialization reports whether the doctor carries s.
func (d *Doctor) HasSpecialization(s Specialization) bool {
	for _, have := range d.Specializations {
		if have == s {
			return true
		}
	}
	return false
}

// Slot is the minimal appointment projection a doctor exposes for
// availability evaluation.
type Slot struct {
	AppointmentID int64     `db:"id" json:"appointment_id"`
	StartsAt      time.Time `db:"starts_at" json:"starts_at"`
}

// Patient maps to the patient table. Every patient is assigned exactly
// one treating doctor.
type Patient struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Disease   Disease   `db:"disease" json:"disease"`
	DoctorID  int64     `db:"doctor_id" json:"doctor_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Appointment maps to the appointment table. It references doctor and
// patient by id; neither side owns the record.
type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	DoctorID  int64     `db:"doctor_id" json:"doctor_id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
