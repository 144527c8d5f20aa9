package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/response"
	"hospital-management-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetByDoctor returns a doctor's weekly availability template
// @Summary Get doctor availability
// @Description Get the weekly availability template for a doctor
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *AvailabilityHandler) GetByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// GetMine returns the authenticated doctor's weekly template
// @Summary Get own availability
// @Description Get the authenticated doctor's weekly availability template
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/me/availability [get]
func (h *AvailabilityHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// Replace replaces the authenticated doctor's weekly template
// @Summary Replace availability
// @Description Replace the authenticated doctor's weekly availability template with exactly 7 windows
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ReplaceAvailabilityRequest true "Replace Availability Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/me/availability [put]
func (h *AvailabilityHandler) Replace(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ReplaceAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.ReplaceAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrInvalidTimeFormat),
			errors.Is(err, usecase.ErrWindowStartAfterEnd),
			errors.Is(err, usecase.ErrDuplicateDayOfWeek),
			errors.Is(err, usecase.ErrWindowNotSlotAligned):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to replace availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability replaced successfully", availability)
}
