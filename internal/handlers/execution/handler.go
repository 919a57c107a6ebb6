package execution

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/services/facade"
	"gitlab.com/codelab-2026.net/internal/handlers"
	"gitlab.com/codelab-2026.net/internal/handlers/response"
)

// ExecutionHandler handles run and grading requests
type ExecutionHandler struct {
	facadeSvc facade.IFacadeService
	logger    primary.Logger
}

// NewExecutionHandler creates a new execution handler
func NewExecutionHandler(facadeSvc facade.IFacadeService, logger primary.Logger) *ExecutionHandler {
	return &ExecutionHandler{
		facadeSvc: facadeSvc,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for ExecutionHandler
func (h *ExecutionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/run", h.RunCode).Methods("POST")
	router.HandleFunc("/api/submissions", h.SubmitSolution).Methods("POST")
}

// RunCodeRequest represents a request to run the active file
type RunCodeRequest struct {
	Input string `json:"input"`
}

// RunCode executes the active file once with the provided stdin. The
// call blocks until the remote execution reaches a terminal status.
func (h *ExecutionHandler) RunCode(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	// An empty body is a run with no stdin, not a malformed request.
	var req RunCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteFailure(w, "invalid_request", "invalid request body")
		return
	}

	result, err := h.facadeSvc.RunCode(r.Context(), ident, req.Input)
	if err != nil {
		h.logger.Warn("Run code failed", "subjectId", ident.SubjectID, "error", err)
		response.WriteError(w, err)
		return
	}

	outcome := result.Outcome
	response.WriteSuccess(w, map[string]interface{}{
		"output":         outcome.Stdout,
		"error":          outcome.Stderr,
		"compile_output": outcome.CompileOutput,
		"status":         outcome.StatusDescription,
		"execution_time": outcome.TimeSec,
		"memory_used":    outcome.MemoryKB,
	})
}

// SubmitSolutionRequest represents a request to grade the project
type SubmitSolutionRequest struct {
	MainFile string `json:"main_file"`
}

// SubmitSolution grades the project against all configured test cases.
func (h *ExecutionHandler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	// main_file is optional; an empty body means grade the active file.
	var req SubmitSolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteFailure(w, "invalid_request", "invalid request body")
		return
	}

	result, err := h.facadeSvc.SubmitSolution(r.Context(), ident, req.MainFile)
	if err != nil {
		h.logger.Warn("Submit solution failed", "subjectId", ident.SubjectID, "error", err)
		response.WriteError(w, err)
		return
	}

	sub := result.Submission
	response.WriteSuccess(w, map[string]interface{}{
		"submission_id": sub.ID,
		"score":         sub.Score,
		"max_score":     result.MaxScore,
		"passed_count":  sub.PassedCount,
		"total_count":   sub.TotalCount,
		"test_results":  sub.TestResults,
		"best_score":    result.GradeState.BestScore,
		"lint_warnings": result.LintWarnings,
	})
}
