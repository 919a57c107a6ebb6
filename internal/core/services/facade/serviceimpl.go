package facade

import (
	"context"
	"fmt"

	"gitlab.com/codelab-2026.net/internal/config"
	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/core/services/grading"
	"gitlab.com/codelab-2026.net/internal/core/services/project"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

var _ IFacadeService = (*FacadeService)(nil)

// FacadeService implements the IFacadeService interface
type FacadeService struct {
	stateStore     secondary.StateStore
	submissionRepo secondary.SubmissionRepository
	projectSvc     project.IProjectService
	gradingSvc     grading.IGradingService
	gradingCfg     *config.GradingConfig
	logger         primary.Logger
}

// NewFacadeService creates a new facade service
func NewFacadeService(
	stateStore secondary.StateStore,
	submissionRepo secondary.SubmissionRepository,
	projectSvc project.IProjectService,
	gradingSvc grading.IGradingService,
	gradingCfg *config.GradingConfig,
	logger primary.Logger,
) *FacadeService {
	return &FacadeService{
		stateStore:     stateStore,
		submissionRepo: submissionRepo,
		projectSvc:     projectSvc,
		gradingSvc:     gradingSvc,
		gradingCfg:     gradingCfg,
		logger:         logger,
	}
}

// loadState returns the subject's state, seeding a fresh project on
// first contact. A seeded subject with surviving submission history
// gets its grade state rebuilt from that history, so losing the state
// store never loses scores.
func (s *FacadeService) loadState(ctx context.Context, subjectID string) (*secondary.SubjectState, error) {
	state, err := s.stateStore.Load(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject state: %w", err)
	}
	if state == nil {
		state = &secondary.SubjectState{
			Project: domain.NewProject(subjectID, domain.DefaultLanguage),
		}
		if err := s.rebuildGradeState(ctx, subjectID, state); err != nil {
			return nil, err
		}
		if err := s.stateStore.Save(ctx, subjectID, state); err != nil {
			return nil, fmt.Errorf("failed to seed subject state: %w", err)
		}
		s.logger.Info("Seeded new project", "subjectId", subjectID)
	}
	return state, nil
}

// rebuildGradeState replays the submission history into a fresh grade
// state. The count check keeps the common first-contact path to a
// single cheap query.
func (s *FacadeService) rebuildGradeState(ctx context.Context, subjectID string, state *secondary.SubjectState) error {
	count, err := s.submissionRepo.CountBySubject(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to count submission history: %w", err)
	}
	if count == 0 {
		return nil
	}

	submissions, err := s.submissionRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to load submission history: %w", err)
	}
	// Oldest first, so replaying Apply reproduces the state exactly.
	for _, sub := range submissions {
		state.GradeState.Apply(sub.Score, sub.Timestamp)
	}

	s.logger.Warn("Rebuilt grade state from submission history",
		"subjectId", subjectID,
		"submissions", count,
		"bestScore", state.GradeState.BestScore)
	return nil
}

// SaveFile creates or updates a file in the subject's project
func (s *FacadeService) SaveFile(ctx context.Context, ident domain.Identity, filename, content string, lang domain.LanguageID) (*domain.FileRecord, error) {
	state, err := s.loadState(ctx, ident.SubjectID)
	if err != nil {
		return nil, err
	}
	if lang == "" {
		lang = state.Project.Language
	}

	record, err := s.projectSvc.Save(state.Project, filename, content, lang)
	if err != nil {
		return nil, err
	}

	if err := s.stateStore.Save(ctx, ident.SubjectID, state); err != nil {
		return nil, fmt.Errorf("failed to persist project: %w", err)
	}
	return record, nil
}

// DeleteFile removes a file from the subject's project
func (s *FacadeService) DeleteFile(ctx context.Context, ident domain.Identity, filename string) error {
	state, err := s.loadState(ctx, ident.SubjectID)
	if err != nil {
		return err
	}

	if err := s.projectSvc.Delete(state.Project, filename); err != nil {
		return err
	}

	if err := s.stateStore.Save(ctx, ident.SubjectID, state); err != nil {
		return fmt.Errorf("failed to persist project: %w", err)
	}
	return nil
}

// RenameFile moves a file to a new name
func (s *FacadeService) RenameFile(ctx context.Context, ident domain.Identity, oldName, newName string) error {
	state, err := s.loadState(ctx, ident.SubjectID)
	if err != nil {
		return err
	}

	if err := s.projectSvc.Rename(state.Project, oldName, newName); err != nil {
		return err
	}

	if err := s.stateStore.Save(ctx, ident.SubjectID, state); err != nil {
		return fmt.Errorf("failed to persist project: %w", err)
	}
	return nil
}

// RunCode executes the subject's active file once, ungraded
func (s *FacadeService) RunCode(ctx context.Context, ident domain.Identity, stdin string) (*grading.RunResult, error) {
	state, err := s.loadState(ctx, ident.SubjectID)
	if err != nil {
		return nil, err
	}
	return s.gradingSvc.RunSingle(ctx, state.Project, stdin)
}

// SubmitSolution grades the subject's project against all test cases
func (s *FacadeService) SubmitSolution(ctx context.Context, ident domain.Identity, mainFile string) (*grading.GradeResult, error) {
	state, err := s.loadState(ctx, ident.SubjectID)
	if err != nil {
		return nil, err
	}

	result, err := s.gradingSvc.SubmitForGrading(ctx, state.Project, &state.GradeState, mainFile)
	if err != nil {
		return nil, err
	}

	// The submission is already committed to history; the updated grade
	// state must land with it.
	if err := s.stateStore.Save(ctx, ident.SubjectID, state); err != nil {
		s.logger.Error("Failed to persist grade state after submission",
			"subjectId", ident.SubjectID,
			"submissionId", result.Submission.ID,
			"error", err)
		return nil, fmt.Errorf("failed to persist grade state: %w", err)
	}

	return result, nil
}

// GetStudentData returns the full per-subject view
func (s *FacadeService) GetStudentData(ctx context.Context, ident domain.Identity) (*StudentData, error) {
	state, err := s.loadState(ctx, ident.SubjectID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.ListBySubject(ctx, ident.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission history: %w", err)
	}

	return &StudentData{
		Files:       state.Project.Files,
		ActiveFile:  state.Project.ActiveFile,
		Language:    state.Project.Language,
		GradeState:  state.GradeState,
		MaxScore:    s.gradingCfg.MaxScore,
		Submissions: submissions,
		Languages:   domain.SupportedLanguages(),
	}, nil
}

// ResetStudentData wipes a subject's project, history and scores.
// Staff only.
func (s *FacadeService) ResetStudentData(ctx context.Context, ident domain.Identity, targetSubjectID string) error {
	if !ident.Staff {
		return errs.PermissionDenied
	}
	if targetSubjectID == "" {
		targetSubjectID = ident.SubjectID
	}

	if err := s.submissionRepo.DeleteBySubject(ctx, targetSubjectID); err != nil {
		return fmt.Errorf("failed to reset submission history: %w", err)
	}
	if err := s.stateStore.Delete(ctx, targetSubjectID); err != nil {
		return fmt.Errorf("failed to reset subject state: %w", err)
	}

	s.logger.Info("Reset student data", "subjectId", targetSubjectID, "by", ident.Username)
	return nil
}
