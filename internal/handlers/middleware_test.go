package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codelab-2026.net/internal/adapter/crypto"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/handlers/response"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newProvider() (*MiddlewareProvider, *crypto.JWTServiceImpl) {
	jwtSvc := &crypto.JWTServiceImpl{HMACSecretKey: "test-secret", TokenTTL: time.Minute}
	return NewMiddlewareProvider(jwtSvc, nopLogger{}), jwtSvc
}

func identityEcho(t *testing.T, got *domain.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r)
		if !ok {
			t.Error("identity missing from context")
		}
		*got = ident
	})
}

func TestIdentityMiddlewareRequiresSubjectHeader(t *testing.T) {
	provider, _ := newProvider()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)

	called := false
	provider.IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	if called {
		t.Error("handler ran without a subject header")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var failure response.Failure
	if err := json.Unmarshal(rec.Body.Bytes(), &failure); err != nil {
		t.Fatalf("decode failure: %v", err)
	}
	if failure.Success || failure.ErrorKind != "invalid_request" {
		t.Errorf("failure = %+v", failure)
	}
}

func TestIdentityMiddlewareAnonymousSubject(t *testing.T) {
	provider, _ := newProvider()

	var got domain.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set(SubjectHeader, "student-1")

	provider.IdentityMiddleware(identityEcho(t, &got)).ServeHTTP(rec, req)

	if got.SubjectID != "student-1" {
		t.Errorf("subject id = %q", got.SubjectID)
	}
	if got.Staff {
		t.Error("anonymous subject marked as staff")
	}
}

func TestIdentityMiddlewareStaffToken(t *testing.T) {
	provider, jwtSvc := newProvider()

	token, err := jwtSvc.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Name, map[string]interface{}{
		"username":   "teacher",
		"permission": []string{domain.PermissionResetState},
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got domain.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/state/reset", nil)
	req.Header.Set(SubjectHeader, "staff-1")
	req.Header.Set("Authorization", "Bearer "+token)

	provider.IdentityMiddleware(identityEcho(t, &got)).ServeHTTP(rec, req)

	if !got.Staff {
		t.Error("verified staff token did not grant staff")
	}
	if got.Username != "teacher" {
		t.Errorf("username = %q", got.Username)
	}
}

func TestIdentityMiddlewareForgedToken(t *testing.T) {
	provider, _ := newProvider()

	forged := &crypto.JWTServiceImpl{HMACSecretKey: "wrong-secret", TokenTTL: time.Minute}
	token, err := forged.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Name, map[string]interface{}{
		"username":   "attacker",
		"permission": []string{domain.PermissionResetState},
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got domain.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/state/reset", nil)
	req.Header.Set(SubjectHeader, "student-1")
	req.Header.Set("Authorization", "Bearer "+token)

	provider.IdentityMiddleware(identityEcho(t, &got)).ServeHTTP(rec, req)

	if got.Staff {
		t.Error("forged token granted staff")
	}
}

func TestIdentityMiddlewareTokenWithoutResetPermission(t *testing.T) {
	provider, jwtSvc := newProvider()

	token, err := jwtSvc.GenerateTokenHMAC(context.Background(), jwt.SigningMethodHS256.Name, map[string]interface{}{
		"username":   "assistant",
		"permission": []string{"codelab.view"},
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var got domain.Identity
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set(SubjectHeader, "assistant-1")
	req.Header.Set("Authorization", "Bearer "+token)

	provider.IdentityMiddleware(identityEcho(t, &got)).ServeHTTP(rec, req)

	if got.Staff {
		t.Error("token without reset permission granted staff")
	}
	if got.Username != "assistant" {
		t.Errorf("username = %q", got.Username)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	provider, _ := newProvider()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)

	provider.RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	var failure response.Failure
	if err := json.Unmarshal(rec.Body.Bytes(), &failure); err != nil {
		t.Fatalf("decode failure: %v", err)
	}
	if failure.ErrorKind != "internal_error" {
		t.Errorf("error kind = %q", failure.ErrorKind)
	}
}
