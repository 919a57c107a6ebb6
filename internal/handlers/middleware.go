package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/handlers/response"
)

type contextKey string

const identityKey contextKey = "identity"

// SubjectHeader carries the subject identity assigned by the host.
const SubjectHeader = "X-Subject-ID"

// MiddlewareProvider resolves the caller identity and guards handlers
// against panics.
type MiddlewareProvider struct {
	jwtProvider primary.JWTService
	logger      primary.Logger
}

func NewMiddlewareProvider(jwtProvider primary.JWTService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtProvider: jwtProvider,
		logger:      logger,
	}
}

// IdentityMiddleware requires a subject header and, when a bearer token
// is present and verifies, marks the identity as staff.
func (m *MiddlewareProvider) IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subjectID := r.Header.Get(SubjectHeader)
		if subjectID == "" {
			response.WriteFailure(w, "invalid_request", "subject header missing")
			return
		}

		ident := domain.Identity{SubjectID: subjectID}

		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			valid, err := m.jwtProvider.VerifyTokenHMAC(r.Context(), tokenString, jwt.SigningMethodHS256.Name)
			if err == nil && valid {
				payload, err := m.jwtProvider.DecodeTokenPayload(r.Context(), tokenString)
				if err == nil {
					ident.Username = payload.Username
					ident.Staff = payload.HasPermission(domain.PermissionResetState)
				}
			}
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecoverMiddleware converts a handler panic into a structured failure
// so internal errors never crash the facade.
func (m *MiddlewareProvider) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("Handler panic", "path", r.URL.Path, "panic", rec)
				response.WriteFailure(w, "internal_error", "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom extracts the resolved identity from the request context.
func IdentityFrom(r *http.Request) (domain.Identity, bool) {
	ident, ok := r.Context().Value(identityKey).(domain.Identity)
	return ident, ok
}
