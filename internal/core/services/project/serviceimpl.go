package project

import (
	"fmt"
	"html"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"gitlab.com/codelab-2026.net/internal/config"
	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

var _ IProjectService = (*ProjectService)(nil)

// ProjectService implements the IProjectService interface
type ProjectService struct {
	cfg       *config.ProjectConfig
	sanitizer *bluemonday.Policy
	logger    primary.Logger
}

// NewProjectService creates a new project service
func NewProjectService(cfg *config.ProjectConfig, logger primary.Logger) *ProjectService {
	return &ProjectService{
		cfg: cfg,
		// Markup is stripped before storage; file content is code, never
		// rich text, and may be rendered back to the subject later.
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Save creates or updates a file in the project
func (s *ProjectService) Save(project *domain.Project, filename, content string, lang domain.LanguageID) (*domain.FileRecord, error) {
	if err := s.validateFileName(filename); err != nil {
		return nil, err
	}
	if err := s.validateContent(content); err != nil {
		return nil, err
	}
	if _, ok := domain.GetLanguageConfig(lang); !ok {
		return nil, fmt.Errorf("%w: %s", errs.UnsupportedLanguage, lang)
	}

	existing, exists := project.Files[filename]
	if !exists && len(project.Files) >= s.cfg.MaxFiles {
		return nil, fmt.Errorf("%w (%d)", errs.QuotaExceeded, s.cfg.MaxFiles)
	}

	// Sanitize strips markup but entity-escapes the text it keeps;
	// unescape so code punctuation (<, >, &, quotes) round-trips
	// byte-identical. Stored content is executed, never rendered raw.
	content = html.UnescapeString(s.sanitizer.Sanitize(content))
	now := time.Now().UTC()

	var record *domain.FileRecord
	if exists {
		existing.Content = content
		existing.Language = lang
		existing.ModifiedAt = now
		record = existing
	} else {
		record = &domain.FileRecord{
			Name:       filename,
			Content:    content,
			Language:   lang,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		project.Files[filename] = record
	}

	project.ActiveFile = filename
	project.Language = lang

	s.logger.Debug("Saved file", "subjectId", project.SubjectID, "filename", filename, "bytes", len(content))
	return record, nil
}

// Delete removes a file from the project
func (s *ProjectService) Delete(project *domain.Project, filename string) error {
	if _, ok := project.Files[filename]; !ok {
		return fmt.Errorf("%w: %s", errs.NotFound, filename)
	}
	if len(project.Files) <= 1 {
		return errs.LastFileProtected
	}

	delete(project.Files, filename)

	if project.ActiveFile == filename {
		// Re-point to the first remaining file in sorted order so the
		// choice is stable across calls.
		next := project.FileNames()[0]
		project.ActiveFile = next
		project.Language = project.Files[next].Language
	}

	s.logger.Debug("Deleted file", "subjectId", project.SubjectID, "filename", filename)
	return nil
}

// Rename moves a file to a new name
func (s *ProjectService) Rename(project *domain.Project, oldName, newName string) error {
	record, ok := project.Files[oldName]
	if !ok {
		return fmt.Errorf("%w: %s", errs.NotFound, oldName)
	}
	if _, ok := project.Files[newName]; ok {
		return fmt.Errorf("%w: %s", errs.Conflict, newName)
	}
	if err := s.validateFileName(newName); err != nil {
		return err
	}

	delete(project.Files, oldName)
	record.Name = newName
	record.ModifiedAt = time.Now().UTC()
	project.Files[newName] = record

	if project.ActiveFile == oldName {
		project.ActiveFile = newName
	}

	s.logger.Debug("Renamed file", "subjectId", project.SubjectID, "from", oldName, "to", newName)
	return nil
}
