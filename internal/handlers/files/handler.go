package files

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/services/facade"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/handlers"
	"gitlab.com/codelab-2026.net/internal/handlers/response"
)

// FileHandler handles project file requests
type FileHandler struct {
	facadeSvc facade.IFacadeService
	logger    primary.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(facadeSvc facade.IFacadeService, logger primary.Logger) *FileHandler {
	return &FileHandler{
		facadeSvc: facadeSvc,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for FileHandler
func (h *FileHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/projects/files", h.SaveFile).Methods("POST")
	router.HandleFunc("/api/projects/files/{filename}", h.DeleteFile).Methods("DELETE")
	router.HandleFunc("/api/projects/files/{filename}/rename", h.RenameFile).Methods("POST")
}

// SaveFileRequest represents a request to save a file
type SaveFileRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// SaveFile handles file save requests
func (h *FileHandler) SaveFile(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	var req SaveFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteFailure(w, "invalid_request", "invalid request body")
		return
	}

	record, err := h.facadeSvc.SaveFile(r.Context(), ident, req.Filename, req.Content, domain.LanguageID(req.Language))
	if err != nil {
		h.logger.Warn("Save file failed", "subjectId", ident.SubjectID, "filename", req.Filename, "error", err)
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]interface{}{
		"filename":    record.Name,
		"language":    record.Language,
		"modified_at": record.ModifiedAt,
	})
}

// DeleteFile handles file delete requests
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	filename := mux.Vars(r)["filename"]
	if err := h.facadeSvc.DeleteFile(r.Context(), ident, filename); err != nil {
		h.logger.Warn("Delete file failed", "subjectId", ident.SubjectID, "filename", filename, "error", err)
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]interface{}{"filename": filename})
}

// RenameFileRequest represents a request to rename a file
type RenameFileRequest struct {
	NewFilename string `json:"new_filename"`
}

// RenameFile handles file rename requests
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	ident, ok := handlers.IdentityFrom(r)
	if !ok {
		response.WriteFailure(w, "invalid_request", "missing identity")
		return
	}

	oldName := mux.Vars(r)["filename"]

	var req RenameFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteFailure(w, "invalid_request", "invalid request body")
		return
	}

	if err := h.facadeSvc.RenameFile(r.Context(), ident, oldName, req.NewFilename); err != nil {
		h.logger.Warn("Rename file failed", "subjectId", ident.SubjectID, "from", oldName, "to", req.NewFilename, "error", err)
		response.WriteError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]interface{}{
		"old_filename": oldName,
		"new_filename": req.NewFilename,
	})
}
