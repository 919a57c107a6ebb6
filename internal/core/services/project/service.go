package project

import (
	"gitlab.com/codelab-2026.net/internal/domain"
)

// IProjectService owns the filename→file mapping of a subject's project
// and enforces the naming, content and quota invariants. Operations
// mutate the passed-in aggregate only after all validation passes.
type IProjectService interface {
	// Save creates or updates a file. On success the active-file pointer
	// moves to the saved file.
	Save(project *domain.Project, filename, content string, lang domain.LanguageID) (*domain.FileRecord, error)

	// Delete removes a file. The project invariant (at least one file)
	// is enforced; deleting the active file re-points to the first
	// remaining file in sorted order.
	Delete(project *domain.Project, filename string) error

	// Rename moves a file to a new, validated name, preserving content.
	Rename(project *domain.Project, oldName, newName string) error
}
