package clinic

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinic-api/internal/platform/auth"
	"github.com/clinichq/clinic-api/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – any clinic staff
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "receptionist"))
	readGroup.GET("/doctors", h.ListDoctors)
	readGroup.GET("/doctors/:id", h.GetDoctor)
	readGroup.GET("/patients", h.ListPatients)
	readGroup.GET("/patients/:id", h.GetPatient)
	readGroup.GET("/appointments", h.ListAppointments)
	readGroup.GET("/appointments/:id", h.GetAppointment)

	// Write endpoints – admin and front desk
	writeGroup := api.Group("", auth.RequireRole("admin", "receptionist"))
	writeGroup.POST("/doctors", h.CreateDoctor)
	writeGroup.PUT("/doctors/:id", h.UpdateDoctor)
	writeGroup.PUT("/doctors/:id/specializations", h.UpdateDoctorSpecializations)
	writeGroup.DELETE("/doctors/:id", h.DeleteDoctor)
	writeGroup.POST("/patients", h.CreatePatient)
	writeGroup.PUT("/patients/:id", h.UpdatePatient)
	writeGroup.PUT("/patients/:id/disease", h.UpdatePatientDisease)
	writeGroup.DELETE("/patients/:id", h.DeletePatient)
	writeGroup.POST("/appointments", h.CreateAppointment)
	writeGroup.PUT("/appointments/:id", h.UpdateAppointment)
	writeGroup.PUT("/appointments/:id/date", h.UpdateAppointmentDate)
	writeGroup.DELETE("/appointments/:id", h.DeleteAppointment)
}

// httpError maps each rule-engine error kind to its client-facing status.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDoctorNotFound),
		errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrAppointmentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDoctorOccupied):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrDateInPast),
		errors.Is(err, ErrInvalidSpecialization):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		// ErrUnmappedDisease lands here: a catalog gap is a programming
		// defect, not a client error.
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Doctor Handlers --

func (h *Handler) CreateDoctor(c echo.Context) error {
	var cmd CreateDoctorCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doctor, err := h.svc.CreateDoctor(c.Request().Context(), cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, doctor)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doctor, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	p := pagination.FromContext(c)
	doctors, total, err := h.svc.ListDoctors(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(doctors, total, p.Limit, p.Offset))
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cmd UpdateDoctorCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doctor, err := h.svc.UpdateDoctor(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (h *Handler) UpdateDoctorSpecializations(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cmd UpdateDoctorSpecializationsCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doctor, err := h.svc.UpdateDoctorSpecializations(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Patient Handlers --

func (h *Handler) CreatePatient(c echo.Context) error {
	var cmd CreatePatientCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patient, err := h.svc.CreatePatient(c.Request().Context(), cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, patient)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	patient, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

func (h *Handler) ListPatients(c echo.Context) error {
	p := pagination.FromContext(c)
	patients, total, err := h.svc.ListPatients(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, p.Limit, p.Offset))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cmd UpdatePatientCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patient, err := h.svc.UpdatePatient(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

func (h *Handler) UpdatePatientDisease(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cmd UpdatePatientDiseaseCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	patient, err := h.svc.UpdatePatientDisease(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, patient)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Appointment Handlers --

func (h *Handler) CreateAppointment(c echo.Context) error {
	var cmd CreateAppointmentCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appointment, err := h.svc.CreateAppointment(c.Request().Context(), cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, appointment)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	appointment, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appointment)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	p := pagination.FromContext(c)
	appointments, total, err := h.svc.ListAppointments(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(appointments, total, p.Limit, p.Offset))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cmd UpdateAppointmentCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appointment, err := h.svc.UpdateAppointment(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appointment)
}

func (h *Handler) UpdateAppointmentDate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var cmd UpdateAppointmentDateCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appointment, err := h.svc.UpdateAppointmentDate(c.Request().Context(), id, cmd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appointment)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
