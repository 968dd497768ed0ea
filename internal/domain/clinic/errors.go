package clinic

import "errors"

// Sentinel error kinds surfaced by the clinic rule engine. Handlers map
// each kind to a distinct HTTP status; callers test with errors.Is so
// wrapped variants carrying ids and instants still match.
var (
	ErrValidation            = errors.New("validation failed")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrDoctorOccupied        = errors.New("doctor already has an appointment at this time")
	ErrDateInPast            = errors.New("appointment date is in the past")
	ErrInvalidSpecialization = errors.New("doctor does not have the required specialization")
	ErrUnmappedDisease       = errors.New("no specialization mapped for disease")
)
