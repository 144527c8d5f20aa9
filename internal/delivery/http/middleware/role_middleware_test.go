package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-backend/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		handler    http.Handler
		req        *http.Request
		wantStatus int
	}{
		{"admin allowed on admin route", RequireAdmin(next), requestWithRole(entity.RoleIDAdmin), http.StatusOK},
		{"patient rejected on admin route", RequireAdmin(next), requestWithRole(entity.RoleIDPatient), http.StatusForbidden},
		{"doctor allowed on doctor route", RequireDoctor(next), requestWithRole(entity.RoleIDDoctor), http.StatusOK},
		{"admin rejected on patient route", RequirePatient(next), requestWithRole(entity.RoleIDAdmin), http.StatusForbidden},
		{"doctor rejected on booking route", RequirePatient(next), requestWithRole(entity.RoleIDDoctor), http.StatusForbidden},
		{"doctor allowed on shared route", RequireAdminOrDoctor(next), requestWithRole(entity.RoleIDDoctor), http.StatusOK},
		{"patient rejected on shared route", RequireAdminOrDoctor(next), requestWithRole(entity.RoleIDPatient), http.StatusForbidden},
		{"missing role is unauthorized", RequireAdmin(next), httptest.NewRequest(http.MethodGet, "/", nil), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, tt.req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
