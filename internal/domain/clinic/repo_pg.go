package clinic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinichq/clinic-api/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// -- Doctor Repository --

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoctorRepo(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorColumns = `id, first_name, last_name, created_at, updated_at`

func (r *doctorRepoPG) Create(ctx context.Context, doctor *Doctor) error {
	q := r.conn(ctx)
	err := q.QueryRow(ctx, `
		INSERT INTO doctor (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		doctor.FirstName, doctor.LastName,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
	if err != nil {
		return err
	}
	return r.replaceSpecializations(ctx, q, doctor.ID, doctor.Specializations)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return r.get(ctx, id, false)
}

func (r *doctorRepoPG) GetForScheduling(ctx context.Context, id int64) (*Doctor, error) {
	return r.get(ctx, id, true)
}

func (r *doctorRepoPG) get(ctx context.Context, id int64, lock bool) (*Doctor, error) {
	q := r.conn(ctx)
	query := `SELECT ` + doctorColumns + ` FROM doctor WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	doctor := &Doctor{}
	err := q.QueryRow(ctx, query, id).Scan(
		&doctor.ID, &doctor.FirstName, &doctor.LastName, &doctor.CreatedAt, &doctor.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("doctor %d: %w", id, ErrDoctorNotFound)
	}
	if err != nil {
		return nil, err
	}

	if doctor.Specializations, err = r.loadSpecializations(ctx, q, id); err != nil {
		return nil, err
	}
	if doctor.Schedule, err = r.loadSchedule(ctx, q, id); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (r *doctorRepoPG) Update(ctx context.Context, doctor *Doctor) error {
	q := r.conn(ctx)
	tag, err := q.Exec(ctx, `
		UPDATE doctor SET first_name = $2, last_name = $3, updated_at = NOW()
		WHERE id = $1`,
		doctor.ID, doctor.FirstName, doctor.LastName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %d: %w", doctor.ID, ErrDoctorNotFound)
	}
	return r.replaceSpecializations(ctx, q, doctor.ID, doctor.Specializations)
}

func (r *doctorRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %d: %w", id, ErrDoctorNotFound)
	}
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	q := r.conn(ctx)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+doctorColumns+` FROM doctor ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		doctor := &Doctor{}
		if err := rows.Scan(&doctor.ID, &doctor.FirstName, &doctor.LastName, &doctor.CreatedAt, &doctor.UpdatedAt); err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, doctor := range doctors {
		if doctor.Specializations, err = r.loadSpecializations(ctx, q, doctor.ID); err != nil {
			return nil, 0, err
		}
	}
	return doctors, total, nil
}

func (r *doctorRepoPG) loadSpecializations(ctx context.Context, q queryable, doctorID int64) ([]Specialization, error) {
	rows, err := q.Query(ctx, `
		SELECT specialization FROM doctor_specialization
		WHERE doctor_id = $1 ORDER BY specialization`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specializations []Specialization
	for rows.Next() {
		var s Specialization
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		specializations = append(specializations, s)
	}
	return specializations, rows.Err()
}

func (r *doctorRepoPG) loadSchedule(ctx context.Context, q queryable, doctorID int64) ([]Slot, error) {
	rows, err := q.Query(ctx, `
		SELECT id, starts_at FROM appointment
		WHERE doctor_id = $1 ORDER BY starts_at`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedule []Slot
	for rows.Next() {
		var slot Slot
		if err := rows.Scan(&slot.AppointmentID, &slot.StartsAt); err != nil {
			return nil, err
		}
		schedule = append(schedule, slot)
	}
	return schedule, rows.Err()
}

func (r *doctorRepoPG) replaceSpecializations(ctx context.Context, q queryable, doctorID int64, specializations []Specialization) error {
	if _, err := q.Exec(ctx, `DELETE FROM doctor_specialization WHERE doctor_id = $1`, doctorID); err != nil {
		return err
	}
	for _, s := range specializations {
		if _, err := q.Exec(ctx, `
			INSERT INTO doctor_specialization (doctor_id, specialization)
			VALUES ($1, $2)`, doctorID, s); err != nil {
			return err
		}
	}
	return nil
}

// -- Patient Repository --

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientColumns = `id, first_name, last_name, disease, doctor_id, created_at, updated_at`

func (r *patientRepoPG) Create(ctx context.Context, patient *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (first_name, last_name, disease, doctor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		patient.FirstName, patient.LastName, patient.Disease, patient.DoctorID,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	patient := &Patient{}
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT `+patientColumns+` FROM patient WHERE id = $1`, id).Scan(
		&patient.ID, &patient.FirstName, &patient.LastName, &patient.Disease,
		&patient.DoctorID, &patient.CreatedAt, &patient.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("patient %d: %w", id, ErrPatientNotFound)
	}
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (r *patientRepoPG) Update(ctx context.Context, patient *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET first_name = $2, last_name = $3, disease = $4,
			doctor_id = $5, updated_at = NOW()
		WHERE id = $1`,
		patient.ID, patient.FirstName, patient.LastName, patient.Disease, patient.DoctorID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient %d: %w", patient.ID, ErrPatientNotFound)
	}
	return nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient %d: %w", id, ErrPatientNotFound)
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	q := r.conn(ctx)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+patientColumns+` FROM patient ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		patient := &Patient{}
		if err := rows.Scan(&patient.ID, &patient.FirstName, &patient.LastName,
			&patient.Disease, &patient.DoctorID, &patient.CreatedAt, &patient.UpdatedAt); err != nil {
			return nil, 0, err
		}
		patients = append(patients, patient)
	}
	return patients, total, rows.Err()
}

// -- Appointment Repository --

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepo(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const appointmentColumns = `id, doctor_id, patient_id, starts_at, created_at, updated_at`

func (r *appointmentRepoPG) Create(ctx context.Context, appointment *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (doctor_id, patient_id, starts_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		appointment.DoctorID, appointment.PatientID, appointment.StartsAt,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	appointment := &Appointment{}
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT `+appointmentColumns+` FROM appointment WHERE id = $1`, id).Scan(
		&appointment.ID, &appointment.DoctorID, &appointment.PatientID,
		&appointment.StartsAt, &appointment.CreatedAt, &appointment.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointment %d: %w", id, ErrAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepoPG) Update(ctx context.Context, appointment *Appointment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET doctor_id = $2, patient_id = $3, starts_at = $4,
			updated_at = NOW()
		WHERE id = $1`,
		appointment.ID, appointment.DoctorID, appointment.PatientID, appointment.StartsAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", appointment.ID, ErrAppointmentNotFound)
	}
	return nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", id, ErrAppointmentNotFound)
	}
	return nil
}

func (r *appointmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	q := r.conn(ctx)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.Query(ctx, `
		SELECT `+appointmentColumns+` FROM appointment ORDER BY starts_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		appointment := &Appointment{}
		if err := rows.Scan(&appointment.ID, &appointment.DoctorID, &appointment.PatientID,
			&appointment.StartsAt, &appointment.CreatedAt, &appointment.UpdatedAt); err != nil {
			return nil, 0, err
		}
		appointments = append(appointments, appointment)
	}
	return appointments, total, rows.Err()
}
