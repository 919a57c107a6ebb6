package secondary

import (
	"context"

	"gitlab.com/codelab-2026.net/internal/domain"
)

// SubmissionRepository is the append-only submission history. Records
// are never mutated or deleted; DeleteBySubject exists solely for the
// privileged reset operation.
type SubmissionRepository interface {
	Append(ctx context.Context, sub *domain.Submission) error
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Submission, error)
	CountBySubject(ctx context.Context, subjectID string) (int, error)
	DeleteBySubject(ctx context.Context, subjectID string) error
}
