package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reportgate/backend/internal/middleware"
	"github.com/reportgate/backend/internal/models"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name string
		req  models.RegisterRequest
		want string
	}{
		{"ok", models.RegisterRequest{Email: "r@example.com", Name: "Rae", Password: "longenough"}, ""},
		{"missing name", models.RegisterRequest{Email: "r@example.com", Password: "longenough"}, "Email, name, and password are required"},
		{"bad email", models.RegisterRequest{Email: "nope", Name: "Rae", Password: "longenough"}, "Email address is invalid"},
		{"short password", models.RegisterRequest{Email: "r@example.com", Name: "Rae", Password: "short"}, "Password must be at least 8 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateRegistration(tt.req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGenerateToken_AcceptedByMiddleware(t *testing.T) {
	secret := []byte("round-trip")
	token, err := GenerateToken(secret, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var got int64
	h := middleware.Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.UserID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || got != 7 {
		t.Errorf("expected reviewer 7 to pass, got status %d id %d", rec.Code, got)
	}
}

func TestRegister_BadBody(t *testing.T) {
	h := NewHandler(nil, []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetCurrentReviewer_NoContext(t *testing.T) {
	h := NewHandler(nil, []byte("x"))
	rec := httptest.NewRecorder()
	h.GetCurrentReviewer(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
