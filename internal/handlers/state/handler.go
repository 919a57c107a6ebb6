package state

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/services/facade"
	"gitlab.com/codelab-2026.net/internal/handlers"
	"gitlab.com/codelab-2026.net/internal/handlers/response"
)

// StateHandler handles per-subject state requests
type StateHandler struct {
	facadeSvc facade.IFacadeService
	logger    primary.Logger
}

// NewStateHandler creates a new state handler
func NewStateHandler(facadeSvc facade.IFacadeService, logger primary.Logger) *StateHandler {
	return &StateHandler{
		facadeSvc: facadeSvc,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for StateHandler
func (h *StateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/state", h.GetStudentData).Methods("GET")
	router.HandleFunc("/api/state/reset", h.ResetStudentData).Methods("POST")
}

// GetStudentData returns the subject's files, scores and history.
func (h *StateHandler) GetStudentData(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	data, err := h.facadeSvc.GetStudentData(r.Context(), ident)
	if err != nil {
		h.logger.Warn("Get student data failed", "subjectId", ident.SubjectID, "error", err)
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]interface{}{
		"files":            data.Files,
		"active_file":      data.ActiveFile,
		"language":         data.Language,
		"current_score":    data.GradeState.CurrentScore,
		"best_score":       data.GradeState.BestScore,
		"submission_count": data.GradeState.SubmissionCount,
		"last_submission":  data.GradeState.LastSubmissionAt,
		"max_score":        data.MaxScore,
		"submissions":      data.Submissions,
		"languages":        data.Languages,
	})
}

// ResetStudentDataRequest names the subject whose state gets wiped.
type ResetStudentDataRequest struct {
	SubjectID string `json:"subject_id"`
}

// ResetStudentData wipes a subject's state. Staff only; a non-staff
// identity gets permission_denied and nothing changes.
func (h *StateHandler) ResetStudentData(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	var req ResetStudentDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteFailure(w, "invalid_request", "invalid request body")
		return
	}

	if err := h.facadeSvc.ResetStudentData(r.Context(), ident, req.SubjectID); err != nil {
		h.logger.Warn("Reset student data failed", "subjectId", ident.SubjectID, "error", err)
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, nil)
}
