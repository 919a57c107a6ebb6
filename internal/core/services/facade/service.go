package facade

import (
	"context"

	"gitlab.com/codelab-2026.net/internal/core/services/grading"
	"gitlab.com/codelab-2026.net/internal/domain"
)

// StudentData is the full per-subject view handed to the UI
// collaborator.
type StudentData struct {
	Files       map[string]*domain.FileRecord               `json:"files"`
	ActiveFile  string                                      `json:"active_file"`
	Language    domain.LanguageID                           `json:"language"`
	GradeState  domain.GradeState                           `json:"grade_state"`
	MaxScore    float64                                     `json:"max_score"`
	Submissions []*domain.Submission                        `json:"submissions"`
	Languages   map[domain.LanguageID]domain.LanguageConfig `json:"languages"`
}

// IFacadeService is the boundary consumed by the UI collaborator. Every
// operation loads the subject's state, applies one change, and persists
// only on success, so a failed operation leaves state untouched.
type IFacadeService interface {
	SaveFile(ctx context.Context, ident domain.Identity, filename, content string, lang domain.LanguageID) (*domain.FileRecord, error)
	DeleteFile(ctx context.Context, ident domain.Identity, filename string) error
	RenameFile(ctx context.Context, ident domain.Identity, oldName, newName string) error
	RunCode(ctx context.Context, ident domain.Identity, stdin string) (*grading.RunResult, error)
	SubmitSolution(ctx context.Context, ident domain.Identity, mainFile string) (*grading.GradeResult, error)
	GetStudentData(ctx context.Context, ident domain.Identity) (*StudentData, error)
	ResetStudentData(ctx context.Context, ident domain.Identity, targetSubjectID string) error
}
