package auth

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	auth2 "gitlab.com/codelab-2026.net/internal/core/services/auth"
	"gitlab.com/codelab-2026.net/internal/handlers/response"
)

// AuthHandler issues staff tokens
type AuthHandler struct {
	authService auth2.IAuthService
}

// NewHandler creates a new auth handler
func NewHandler(authService auth2.IAuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the API routes for AuthHandler
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
}

// LoginRequest represents a staff login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies staff credentials and returns a privileged token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteFailure(w, "invalid_request", "invalid request body")
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]interface{}{"token": token})
}
