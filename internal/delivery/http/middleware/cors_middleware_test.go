package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})
	wrapped := NewCORSMiddleware().Handle(next)

	t.Run("preflight short-circuits", func(t *testing.T) {
		handlerCalled = false
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/appointments", nil))

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if handlerCalled {
			t.Error("next handler should not run on preflight")
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Error("missing Access-Control-Allow-Methods header")
		}
	})

	t.Run("normal request passes through with headers", func(t *testing.T) {
		handlerCalled = false
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil))

		if !handlerCalled {
			t.Error("next handler should run")
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})
}
