package clinic

import "context"

// DoctorRepository defines the persistence interface for doctors.
// GetByID and GetForScheduling both return the doctor with its
// specialization set and schedule loaded; GetForScheduling additionally
// locks the doctor row for the remainder of the surrounding transaction
// so availability check-then-write sequences are serialized.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	GetForScheduling(ctx context.Context, id int64) (*Doctor, error)
	Update(ctx context.Context, doctor *Doctor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
}

// PatientRepository defines the persistence interface for patients.
type PatientRepository interface {
	Create(ctx context.Context, patient *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Update(ctx context.Context, patient *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

// AppointmentRepository defines the persistence interface for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Update(ctx context.Context, appointment *Appointment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
}
