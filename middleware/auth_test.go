package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitpulse/athlete-tracker/models"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func coachClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": 7,
		"role":    "coach",
		"name":    "Coach",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	auth := NewAuthenticator(testSecret)

	var gotID int
	var gotRole models.UserRole
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotID, err = GetUserIDFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserIDFromContext: %v", err)
		}
		gotRole, err = GetUserRoleFromContext(r.Context())
		if err != nil {
			t.Errorf("GetUserRoleFromContext: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/athletes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, coachClaims()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != 7 || gotRole != models.RoleCoach {
		t.Fatalf("unexpected claims: id=%d role=%q", gotID, gotRole)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	handler := auth.Authenticate(okHandler())

	expired := coachClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", coachClaims())},
		{"expired", "Bearer " + signToken(t, testSecret, expired)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/athletes", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	handler := auth.Authenticate(RequireRole(models.RoleCoach)(okHandler()))

	viewer := coachClaims()
	viewer["role"] = "viewer"

	req := httptest.NewRequest(http.MethodPost, "/athletes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, viewer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer hitting a coach route: expected 403, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/athletes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, coachClaims()))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("coach hitting a coach route: expected 200, got %d", rec.Code)
	}
}
