package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prospectiq/dataops-backend/validate"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func authedRequest(t *testing.T, claims jwt.MapClaims) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/client", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	return r
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	m := newAuthMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a token")
	})

	w := httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/client", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateRejectsBadSignature(t *testing.T) {
	m := newAuthMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with a forged token")
	})

	r := httptest.NewRequest(http.MethodGet, "/client", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"sub": "user-1"}, "other-secret"))

	w := httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	m := newAuthMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an expired token")
	})

	w := httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, authedRequest(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateRejectsMissingSubject(t *testing.T) {
	m := newAuthMiddleware(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a subject")
	})

	w := httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, authedRequest(t, jwt.MapClaims{"roles": []string{"manager"}}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateInjectsUserAndRoles(t *testing.T) {
	m := newAuthMiddleware(testSecret)

	var gotUser string
	var gotManager bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = ctxGetUserID(r.Context())
		gotManager = hasRole(r.Context(), RoleManager)
	})

	w := httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, authedRequest(t, jwt.MapClaims{
		"sub":   "user-1",
		"roles": []any{"manager", "analyst"},
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUser != "user-1" {
		t.Errorf("user = %q, want user-1", gotUser)
	}
	if !gotManager {
		t.Error("manager role not propagated")
	}
}

func TestAuthenticateInjectsPermissionGrants(t *testing.T) {
	m := newAuthMiddleware(testSecret)

	var canDelete bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		canDelete = validate.CheckPermissions(ctxGetPermissions(r.Context()), "projectDelete")
	})

	w := httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, authedRequest(t, jwt.MapClaims{
		"sub":         "user-1",
		"permissions": []any{"project.read", "project.delete"},
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !canDelete {
		t.Error("projectDelete permission set not satisfied from token grants")
	}

	w = httptest.NewRecorder()
	m.authenticate(next).ServeHTTP(w, authedRequest(t, jwt.MapClaims{
		"sub":         "user-1",
		"permissions": []any{"project.read"},
	}))
	if canDelete {
		t.Error("partial grants satisfied the projectDelete permission set")
	}
}

func TestRequireRoleForbidsWithoutRole(t *testing.T) {
	m := newAuthMiddleware(testSecret)

	handler := m.authenticate(m.requireRole(RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(t, jwt.MapClaims{
		"sub":   "user-1",
		"roles": []any{"analyst"},
	}))
	if w.Code != http.StatusForbidden {
		t.Errorf("status without role = %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, authedRequest(t, jwt.MapClaims{
		"sub":   "user-1",
		"roles": []any{"manager"},
	}))
	if w.Code != http.StatusNoContent {
		t.Errorf("status with role = %d, want 204", w.Code)
	}
}
