package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/response"
	"hospital-management-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// actorFromContext resolves the acting user and role name from the request context
func actorFromContext(r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, entity.RoleNameForID(roleID), true
}

// ListAvailableSlots returns bookable slots for a doctor on a date
// @Summary List available slots
// @Description List the bookable 30-minute slots for a doctor on a calendar date
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/slots [get]
func (h *AppointmentHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter date is required", nil)
		return
	}

	slots, err := h.appointmentUsecase.ListAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorNotApproved:
			response.Error(w, http.StatusForbidden, "Doctor is not approved for booking", nil)
		default:
			response.InternalServerError(w, "Failed to list available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

// Book creates a new appointment
// @Summary Book an appointment
// @Description Book a 30-minute slot with a doctor (patient only)
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidAppointmentType:
			response.Error(w, http.StatusBadRequest, "Invalid appointment type", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorNotApproved:
			response.Error(w, http.StatusForbidden, "Doctor is not approved for booking", nil)
		case usecase.ErrPastDate:
			response.Error(w, http.StatusBadRequest, "Cannot book an appointment in the past", nil)
		case usecase.ErrSlotNotAvailable:
			response.Error(w, http.StatusBadRequest, "Time slot is not within the doctor's availability", nil)
		case usecase.ErrSlotTaken:
			response.Conflict(w, "Time slot is already booked")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// GetByID returns one appointment
// @Summary Get an appointment
// @Description Get an appointment by ID; doctors and patients see only their own
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), actorID, actorRole, id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentForbidden:
			response.Forbidden(w, "Appointment does not belong to this user")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListMine returns the authenticated patient's appointments
// @Summary List own appointments
// @Description List the authenticated patient's appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/me [get]
func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ListSchedule returns the authenticated doctor's appointments
// @Summary List doctor schedule
// @Description List the authenticated doctor's appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/schedule [get]
func (h *AppointmentHandler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ListAll returns appointments across all doctors
// @Summary List all appointments
// @Description List appointments with optional filters (admin only)
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param start_at query string false "Start date (YYYY-MM-DD)"
// @Param end_at query string false "End date (YYYY-MM-DD)"
// @Param status query string false "Appointment status"
// @Param doctor_name query string false "Doctor name filter"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.AppointmentFilter{
		StartAt:    query.Get("start_at"),
		EndAt:      query.Get("end_at"),
		Status:     query.Get("status"),
		DoctorName: query.Get("doctor_name"),
	}

	appointments, err := h.appointmentUsecase.ListAll(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// Confirm confirms a pending appointment
// @Summary Confirm an appointment
// @Description Confirm a pending appointment (doctor or admin)
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Confirm(r.Context(), actorID, actorRole, id)
	if err != nil {
		writeTransitionError(w, err, "Failed to confirm appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment confirmed successfully", appointment)
}

// Cancel cancels an appointment
// @Summary Cancel an appointment
// @Description Cancel an appointment with a reason; cancelling frees the slot
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CancelAppointmentRequest true "Cancel Appointment Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), actorID, actorRole, id, &req)
	if err != nil {
		writeTransitionError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// Complete completes a confirmed appointment
// @Summary Complete an appointment
// @Description Complete an appointment, optionally recording a prescription (doctor or admin)
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CompleteAppointmentRequest false "Complete Appointment Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	// The body is optional: an empty body completes without a prescription,
	// but a body that is present must parse.
	var req dto.CompleteAppointmentRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}

	if req.Prescription != nil {
		if err := h.validator.Validate(req.Prescription); err != nil {
			response.ValidationError(w, h.validator.FormatValidationErrors(err))
			return
		}
	}

	appointment, err := h.appointmentUsecase.Complete(r.Context(), actorID, actorRole, id, &req)
	if err != nil {
		writeTransitionError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

// UpdateStatus is the admin entry point for status changes
// @Summary Update appointment status
// @Description Transition an appointment to any reachable status (admin only)
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Update Status Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), actorID, actorRole, id, &req)
	if err != nil {
		writeTransitionError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// writeTransitionError maps status transition failures to HTTP responses
func writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrInvalidStatus:
		response.Error(w, http.StatusBadRequest, "Invalid appointment status", nil)
	case entity.ErrStaleTransition:
		response.Conflict(w, "Transition not allowed from the current status")
	case usecase.ErrSlotTaken:
		response.Conflict(w, "This slot has been rebooked")
	case entity.ErrForbiddenTransition:
		response.Forbidden(w, "You are not allowed to perform this transition")
	case entity.ErrCancellationReasonRequired:
		response.Error(w, http.StatusBadRequest, "Cancellation reason is required", nil)
	case entity.ErrRevertPastAppointment:
		response.Error(w, http.StatusUnprocessableEntity, "Cannot revert a cancelled appointment dated in the past", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
