package clinic

import (
	"context"
	"fmt"
	"time"
)

// TxRunner executes fn within a single atomic unit of work. Repository
// calls made through the ctx it passes to fn share one transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service is the clinic rule engine. It validates commands against the
// specialization catalog, the doctor-availability rule, and the temporal
// guard, merges partial updates, and drives the repositories. It holds no
// state of its own besides its collaborators; "now" is injected so the
// temporal guard is deterministic under test.
type Service struct {
	doctors      DoctorRepository
	patients     PatientRepository
	appointments AppointmentRepository
	catalog      *SpecializationCatalog
	inTx         TxRunner
	now          func() time.Time
}

func NewService(doctors DoctorRepository, patients PatientRepository, appointments AppointmentRepository, catalog *SpecializationCatalog) *Service {
	return &Service{
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		catalog:      catalog,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		now: time.Now,
	}
}

// SetTxRunner attaches the transaction boundary used for appointment
// mutations. The default runs operations without one.
func (s *Service) SetTxRunner(run TxRunner) { s.inTx = run }

// SetClock overrides the service's time source.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, cmd CreateDoctorCommand) (*Doctor, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	doctor := &Doctor{
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		Specializations: cmd.Specializations,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// UpdateDoctor merges the supplied fields onto the stored doctor. A
// supplied specialization set replaces the stored one wholesale; no
// re-validation of already-assigned patients is performed.
func (s *Service) UpdateDoctor(ctx context.Context, id int64, cmd UpdateDoctorCommand) (*Doctor, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmd.FirstName != nil {
		doctor.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		doctor.LastName = *cmd.LastName
	}
	if cmd.Specializations != nil {
		doctor.Specializations = cmd.Specializations
	}
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) UpdateDoctorSpecializations(ctx context.Context, id int64, cmd UpdateDoctorSpecializationsCommand) (*Doctor, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doctor.Specializations = cmd.Specializations
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	return s.doctors.Delete(ctx, id)
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, cmd CreatePatientCommand) (*Patient, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, cmd.DoctorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSpecialization(doctor, cmd.Disease); err != nil {
		return nil, err
	}
	patient := &Patient{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Disease:   cmd.Disease,
		DoctorID:  doctor.ID,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// UpdatePatient merges the supplied fields onto the stored patient. When
// the command changes the disease and/or the doctor, the effective pair
// (supplied value where present, stored value otherwise) is checked
// against the catalog before any field is applied.
func (s *Service) UpdatePatient(ctx context.Context, id int64, cmd UpdatePatientCommand) (*Patient, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	effectiveDisease := patient.Disease
	if cmd.Disease != nil {
		effectiveDisease = *cmd.Disease
	}

	doctor := (*Doctor)(nil)
	if cmd.DoctorID != nil {
		doctor, err = s.doctors.GetByID(ctx, *cmd.DoctorID)
		if err != nil {
			return nil, err
		}
		if err := s.checkSpecialization(doctor, effectiveDisease); err != nil {
			return nil, err
		}
	} else if cmd.Disease != nil {
		doctor, err = s.doctors.GetByID(ctx, patient.DoctorID)
		if err != nil {
			return nil, err
		}
		if err := s.checkSpecialization(doctor, effectiveDisease); err != nil {
			return nil, err
		}
	}

	if cmd.FirstName != nil {
		patient.FirstName = *cmd.FirstName
	}
	if cmd.LastName != nil {
		patient.LastName = *cmd.LastName
	}
	if cmd.Disease != nil {
		patient.Disease = *cmd.Disease
	}
	if cmd.DoctorID != nil {
		patient.DoctorID = doctor.ID
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// UpdatePatientDisease changes only the disease, validated against the
// patient's current doctor.
func (s *Service) UpdatePatientDisease(ctx context.Context, id int64, cmd UpdatePatientDiseaseCommand) (*Patient, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doctor, err := s.doctors.GetByID(ctx, patient.DoctorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSpecialization(doctor, cmd.Disease); err != nil {
		return nil, err
	}
	patient.Disease = cmd.Disease
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

// -- Appointment --

// CreateAppointment books a slot. The future-instant requirement is a
// command constraint; the engine adds the availability rule on top. The
// whole load-check-write sequence runs in one transaction with the
// doctor's schedule locked, so two concurrent bookings for the same
// doctor and instant cannot both pass the check.
func (s *Service) CreateAppointment(ctx context.Context, cmd CreateAppointmentCommand) (*Appointment, error) {
	if err := cmd.Validate(s.now()); err != nil {
		return nil, err
	}
	var appointment *Appointment
	err := s.inTx(ctx, func(ctx context.Context) error {
		doctor, err := s.doctors.GetForScheduling(ctx, cmd.DoctorID)
		if err != nil {
			return err
		}
		if !doctorAvailable(doctor.Schedule, cmd.StartsAt, 0) {
			return fmt.Errorf("doctor %d at %s: %w", doctor.ID, cmd.StartsAt.Format(time.RFC3339), ErrDoctorOccupied)
		}
		patient, err := s.patients.GetByID(ctx, cmd.PatientID)
		if err != nil {
			return err
		}
		appointment = &Appointment{
			DoctorID:  doctor.ID,
			PatientID: patient.ID,
			StartsAt:  cmd.StartsAt,
		}
		return s.appointments.Create(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

// UpdateAppointment merges the supplied fields onto the stored
// appointment. The temporal guard runs first, against the stored instant,
// even when the command changes nothing: once the original slot has
// elapsed the appointment is frozen. Availability is re-checked against
// the effective doctor and instant whenever either changes; the
// appointment's own slot is excluded from that check. Reassigning the
// patient does not re-validate disease compatibility.
func (s *Service) UpdateAppointment(ctx context.Context, id int64, cmd UpdateAppointmentCommand) (*Appointment, error) {
	if err := cmd.Validate(s.now()); err != nil {
		return nil, err
	}
	var appointment *Appointment
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		appointment, err = s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !mutable(appointment.StartsAt, s.now()) {
			return fmt.Errorf("appointment %d at %s: %w", appointment.ID, appointment.StartsAt.Format(time.RFC3339), ErrDateInPast)
		}

		effectiveAt := appointment.StartsAt
		if cmd.StartsAt != nil {
			effectiveAt = *cmd.StartsAt
		}

		if cmd.DoctorID != nil {
			doctor, err := s.doctors.GetForScheduling(ctx, *cmd.DoctorID)
			if err != nil {
				return err
			}
			if !doctorAvailable(doctor.Schedule, effectiveAt, appointment.ID) {
				return fmt.Errorf("doctor %d at %s: %w", doctor.ID, effectiveAt.Format(time.RFC3339), ErrDoctorOccupied)
			}
			appointment.DoctorID = doctor.ID
		} else if cmd.StartsAt != nil {
			doctor, err := s.doctors.GetForScheduling(ctx, appointment.DoctorID)
			if err != nil {
				return err
			}
			if !doctorAvailable(doctor.Schedule, effectiveAt, appointment.ID) {
				return fmt.Errorf("doctor %d at %s: %w", doctor.ID, effectiveAt.Format(time.RFC3339), ErrDoctorOccupied)
			}
		}

		if cmd.StartsAt != nil {
			appointment.StartsAt = *cmd.StartsAt
		}
		if cmd.PatientID != nil {
			patient, err := s.patients.GetByID(ctx, *cmd.PatientID)
			if err != nil {
				return err
			}
			appointment.PatientID = patient.ID
		}

		return s.appointments.Update(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateAppointmentDate reschedules an appointment with its current
// doctor: availability at the new instant, then the temporal guard
// against the stored instant, then the overwrite.
func (s *Service) UpdateAppointmentDate(ctx context.Context, id int64, cmd UpdateAppointmentDateCommand) (*Appointment, error) {
	if err := cmd.Validate(s.now()); err != nil {
		return nil, err
	}
	var appointment *Appointment
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		appointment, err = s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		doctor, err := s.doctors.GetForScheduling(ctx, appointment.DoctorID)
		if err != nil {
			return err
		}
		if !doctorAvailable(doctor.Schedule, cmd.StartsAt, appointment.ID) {
			return fmt.Errorf("doctor %d at %s: %w", doctor.ID, cmd.StartsAt.Format(time.RFC3339), ErrDoctorOccupied)
		}
		if !mutable(appointment.StartsAt, s.now()) {
			return fmt.Errorf("appointment %d at %s: %w", appointment.ID, appointment.StartsAt.Format(time.RFC3339), ErrDateInPast)
		}
		appointment.StartsAt = cmd.StartsAt
		return s.appointments.Update(ctx, appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// DeleteAppointment removes an appointment unless its slot has elapsed.
func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		appointment, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !mutable(appointment.StartsAt, s.now()) {
			return fmt.Errorf("appointment %d at %s: %w", appointment.ID, appointment.StartsAt.Format(time.RFC3339), ErrDateInPast)
		}
		return s.appointments.Delete(ctx, appointment.ID)
	})
}

func (s *Service) checkSpecialization(doctor *Doctor, disease Disease) error {
	required, err := s.catalog.RequiredSpecialization(disease)
	if err != nil {
		return err
	}
	if !doctor.HasSpecialization(required) {
		return fmt.Errorf("doctor %d lacks %s for disease %s: %w", doctor.ID, required, disease, ErrInvalidSpecialization)
	}
	return nil
}
