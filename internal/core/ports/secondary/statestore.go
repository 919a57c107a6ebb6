package secondary

import (
	"context"

	"gitlab.com/codelab-2026.net/internal/domain"
)

// SubjectState is the per-subject blob held by the host field store:
// the project files plus the derived grade state.
type SubjectState struct {
	Project    *domain.Project   `json:"project"`
	GradeState domain.GradeState `json:"grade_state"`
}

// StateStore persists per-subject state. Load returns (nil, nil) when
// the subject has no state yet.
type StateStore interface {
	Load(ctx context.Context, subjectID string) (*SubjectState, error)
	Save(ctx context.Context, subjectID string, state *SubjectState) error
	Delete(ctx context.Context, subjectID string) error
}
