package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/response"
	"hospital-management-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// fakeAppointmentUsecase returns canned results per method
type fakeAppointmentUsecase struct {
	slots          *dto.AvailableSlotsResponse
	slotsErr       error
	booked         *dto.AppointmentResponse
	bookErr        error
	transitionResp *dto.AppointmentResponse
	transitionErr  error
}

func (f *fakeAppointmentUsecase) ListAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	return f.slots, f.slotsErr
}

func (f *fakeAppointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.booked, f.bookErr
}

func (f *fakeAppointmentUsecase) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return f.transitionResp, f.transitionErr
}

func (f *fakeAppointmentUsecase) ListForPatient(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) ListAll(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (f *fakeAppointmentUsecase) Confirm(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return f.transitionResp, f.transitionErr
}

func (f *fakeAppointmentUsecase) Cancel(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.transitionResp, f.transitionErr
}

func (f *fakeAppointmentUsecase) Complete(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.transitionResp, f.transitionErr
}

func (f *fakeAppointmentUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	return f.transitionResp, f.transitionErr
}

func authedRequest(method, target string, body []byte, roleID int) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestAppointmentHandlerBook(t *testing.T) {
	doctorID := uuid.New()
	body, _ := json.Marshal(dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     "2025-04-01",
		TimeSlot: "09:00",
		Type:     "General Checkup",
	})

	tests := []struct {
		name       string
		bookErr    error
		booked     *dto.AppointmentResponse
		body       []byte
		wantStatus int
	}{
		{
			name:       "created",
			booked:     &dto.AppointmentResponse{ID: uuid.New(), Status: "pending"},
			body:       body,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "slot conflict",
			bookErr:    usecase.ErrSlotTaken,
			body:       body,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "slot outside availability",
			bookErr:    usecase.ErrSlotNotAvailable,
			body:       body,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "past date",
			bookErr:    usecase.ErrPastDate,
			body:       body,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "doctor not approved",
			bookErr:    usecase.ErrDoctorNotApproved,
			body:       body,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "doctor missing",
			bookErr:    usecase.ErrDoctorNotFound,
			body:       body,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			body:       []byte("{"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation failure",
			body:       []byte(`{"date":"2025-04-01"}`),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&fakeAppointmentUsecase{booked: tt.booked, bookErr: tt.bookErr}, validator.NewValidator())
			rec := httptest.NewRecorder()
			req := authedRequest(http.MethodPost, "/api/v1/appointments", tt.body, entity.RoleIDPatient)

			h.Book(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeResponse(t, rec)
			if tt.wantStatus == http.StatusCreated && !resp.Success {
				t.Error("expected success envelope")
			}
			if tt.wantStatus != http.StatusCreated && resp.Success {
				t.Error("expected error envelope")
			}
		})
	}
}

func TestAppointmentHandlerListAvailableSlots(t *testing.T) {
	doctorID := uuid.New()

	h := NewAppointmentHandler(&fakeAppointmentUsecase{
		slots: &dto.AvailableSlotsResponse{
			DoctorID: doctorID,
			Date:     "2025-04-01",
			Slots:    []string{"09:00", "09:30"},
		},
	}, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/doctors/{id}/slots", h.ListAvailableSlots)

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/slots?date=2025-04-01", nil, entity.RoleIDPatient)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	t.Run("missing date parameter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/slots", nil, entity.RoleIDPatient)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad doctor id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodGet, "/doctors/not-a-uuid/slots?date=2025-04-01", nil, entity.RoleIDPatient)
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAppointmentHandlerTransitionErrors(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"stale transition", entity.ErrStaleTransition, http.StatusConflict},
		{"slot rebooked before revert", usecase.ErrSlotTaken, http.StatusConflict},
		{"forbidden", entity.ErrForbiddenTransition, http.StatusForbidden},
		{"reason required", entity.ErrCancellationReasonRequired, http.StatusBadRequest},
		{"revert past", entity.ErrRevertPastAppointment, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAppointmentHandler(&fakeAppointmentUsecase{transitionErr: tt.err}, validator.NewValidator())

			router := mux.NewRouter()
			router.HandleFunc("/appointments/{id}/confirm", h.Confirm)

			rec := httptest.NewRecorder()
			req := authedRequest(http.MethodPost, "/appointments/"+id.String()+"/confirm", nil, entity.RoleIDDoctor)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	t.Run("complete tolerates an empty body", func(t *testing.T) {
		h := NewAppointmentHandler(&fakeAppointmentUsecase{
			transitionResp: &dto.AppointmentResponse{ID: id, Status: "completed"},
		}, validator.NewValidator())

		router := mux.NewRouter()
		router.HandleFunc("/appointments/{id}/complete", h.Complete)

		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/appointments/"+id.String()+"/complete", nil, entity.RoleIDDoctor)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("complete rejects a malformed body", func(t *testing.T) {
		h := NewAppointmentHandler(&fakeAppointmentUsecase{
			transitionResp: &dto.AppointmentResponse{ID: id, Status: "completed"},
		}, validator.NewValidator())

		router := mux.NewRouter()
		router.HandleFunc("/appointments/{id}/complete", h.Complete)

		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/appointments/"+id.String()+"/complete", []byte(`{"prescription":`), entity.RoleIDDoctor)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("cancel requires reason in body", func(t *testing.T) {
		h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

		router := mux.NewRouter()
		router.HandleFunc("/appointments/{id}/cancel", h.Cancel)

		rec := httptest.NewRecorder()
		req := authedRequest(http.MethodPost, "/appointments/"+id.String()+"/cancel", []byte(`{}`), entity.RoleIDPatient)
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
