package clinic

import (
	"fmt"
	"regexp"
	"time"
)

// Commands are the structured inputs to the rule engine. Create commands
// carry required fields; update commands use pointers (nil = field not
// supplied) so that an absent field and a supplied zero value stay
// distinguishable. Validate covers the syntactic constraints; the domain
// rules live in the Service.

var (
	firstNamePattern = regexp.MustCompile(`^[A-Z][a-z]{1,19}$`)
	lastNamePattern  = regexp.MustCompile(`^[A-Z][a-z]{1,29}$`)
)

type CreateDoctorCommand struct {
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	Specializations []Specialization `json:"specializations"`
}

func (c *CreateDoctorCommand) Validate() error {
	if !firstNamePattern.MatchString(c.FirstName) {
		return fmt.Errorf("first_name must match %s: %w", firstNamePattern, ErrValidation)
	}
	if !lastNamePattern.MatchString(c.LastName) {
		return fmt.Errorf("last_name must match %s: %w", lastNamePattern, ErrValidation)
	}
	if len(c.Specializations) == 0 {
		return fmt.Errorf("specializations must not be empty: %w", ErrValidation)
	}
	return nil
}

type UpdateDoctorCommand struct {
	FirstName       *string          `json:"first_name"`
	LastName        *string          `json:"last_name"`
	Specializations []Specialization `json:"specializations"`
}

func (c *UpdateDoctorCommand) Validate() error {
	if c.FirstName != nil && !firstNamePattern.MatchString(*c.FirstName) {
		return fmt.Errorf("first_name must match %s: %w", firstNamePattern, ErrValidation)
	}
	if c.LastName != nil && !lastNamePattern.MatchString(*c.LastName) {
		return fmt.Errorf("last_name must match %s: %w", lastNamePattern, ErrValidation)
	}
	if c.Specializations != nil && len(c.Specializations) == 0 {
		return fmt.Errorf("specializations must not be empty when supplied: %w", ErrValidation)
	}
	return nil
}

type UpdateDoctorSpecializationsCommand struct {
	Specializations []Specialization `json:"specializations"`
}

func (c *UpdateDoctorSpecializationsCommand) Validate() error {
	if len(c.Specializations) == 0 {
		return fmt.Errorf("specializations must not be empty: %w", ErrValidation)
	}
	return nil
}

type CreatePatientCommand struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Disease   Disease `json:"disease"`
	DoctorID  int64   `json:"doctor_id"`
}

func (c *CreatePatientCommand) Validate() error {
	if !firstNamePattern.MatchString(c.FirstName) {
		return fmt.Errorf("first_name must match %s: %w", firstNamePattern, ErrValidation)
	}
	if !lastNamePattern.MatchString(c.LastName) {
		return fmt.Errorf("last_name must match %s: %w", lastNamePattern, ErrValidation)
	}
	if c.Disease == "" {
		return fmt.Errorf("disease is required: %w", ErrValidation)
	}
	if c.DoctorID <= 0 {
		return fmt.Errorf("doctor_id must be positive: %w", ErrValidation)
	}
	return nil
}

type UpdatePatientCommand struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	Disease   *Disease `json:"disease"`
	DoctorID  *int64   `json:"doctor_id"`
}

func (c *UpdatePatientCommand) Validate() error {
	if c.FirstName != nil && !firstNamePattern.MatchString(*c.FirstName) {
		return fmt.Errorf("first_name must match %s: %w", firstNamePattern, ErrValidation)
	}
	if c.LastName != nil && !lastNamePattern.MatchString(*c.LastName) {
		return fmt.Errorf("last_name must match %s: %w", lastNamePattern, ErrValidation)
	}
	if c.DoctorID != nil && *c.DoctorID <= 0 {
		return fmt.Errorf("doctor_id must be positive: %w", ErrValidation)
	}
	return nil
}

type UpdatePatientDiseaseCommand struct {
	Disease Disease `json:"disease"`
}

func (c *UpdatePatientDiseaseCommand) Validate() error {
	if c.Disease == "" {
		return fmt.Errorf("disease is required: %w", ErrValidation)
	}
	return nil
}

type CreateAppointmentCommand struct {
	DoctorID  int64     `json:"doctor_id"`
	PatientID int64     `json:"patient_id"`
	StartsAt  time.Time `json:"starts_at"`
}

// Validate enforces the future-instant rule on creation. The rule engine
// itself does not repeat this check.
func (c *CreateAppointmentCommand) Validate(now time.Time) error {
	if c.DoctorID <= 0 {
		return fmt.Errorf("doctor_id must be positive: %w", ErrValidation)
	}
	if c.PatientID <= 0 {
		return fmt.Errorf("patient_id must be positive: %w", ErrValidation)
	}
	if c.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required: %w", ErrValidation)
	}
	if !c.StartsAt.After(now) {
		return fmt.Errorf("starts_at must be in the future: %w", ErrValidation)
	}
	return nil
}

type UpdateAppointmentCommand struct {
	StartsAt  *time.Time `json:"starts_at"`
	DoctorID  *int64     `json:"doctor_id"`
	PatientID *int64     `json:"patient_id"`
}

func (c *UpdateAppointmentCommand) Validate(now time.Time) error {
	if c.StartsAt != nil && !c.StartsAt.After(now) {
		return fmt.Errorf("starts_at must be in the future: %w", ErrValidation)
	}
	if c.DoctorID != nil && *c.DoctorID <= 0 {
		return fmt.Errorf("doctor_id must be positive: %w", ErrValidation)
	}
	if c.PatientID != nil && *c.PatientID <= 0 {
		return fmt.Errorf("patient_id must be positive: %w", ErrValidation)
	}
	return nil
}

type UpdateAppointmentDateCommand struct {
	StartsAt time.Time `json:"starts_at"`
}

func (c *UpdateAppointmentDateCommand) Validate(now time.Time) error {
	if c.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required: %w", ErrValidation)
	}
	if !c.StartsAt.After(now) {
		return fmt.Errorf("starts_at must be in the future: %w", ErrValidation)
	}
	return nil
}
