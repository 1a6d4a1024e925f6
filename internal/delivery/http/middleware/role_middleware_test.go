package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/users/patients", nil)
	ctx := context.WithValue(req.Context(), ActorKey, entity.Actor{ID: uuid.New(), Role: role})
	return req.WithContext(ctx)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdminOrDoctor(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus int
	}{
		{entity.RoleAdmin, http.StatusOK},
		{entity.RoleDoctor, http.StatusOK},
		{entity.RolePatient, http.StatusForbidden},
		{"GUEST", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdminOrDoctor(okHandler()).ServeHTTP(rec, requestWithRole(tt.role))
			if rec.Code != tt.wantStatus {
				t.Errorf("role %s: status = %d, want %d", tt.role, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAdmin(okHandler()).ServeHTTP(rec, requestWithRole(entity.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	RequireAdmin(okHandler()).ServeHTTP(rec, requestWithRole(entity.RoleDoctor))
	if rec.Code != http.StatusForbidden {
		t.Errorf("doctor: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireRoleWithoutActor(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/patients", nil)
	RequireAdmin(okHandler()).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
