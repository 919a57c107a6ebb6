package grading

import (
	"context"

	"gitlab.com/codelab-2026.net/internal/domain"
)

// RunResult is the outcome of a single ungraded run of the active file.
type RunResult struct {
	Outcome *domain.ExecutionOutcome
}

// GradeResult is the outcome of a full grading pass: the appended
// submission, the recomputed grade state and any advisory lint warnings.
type GradeResult struct {
	Submission   *domain.Submission
	GradeState   domain.GradeState
	MaxScore     float64
	LintWarnings []string
}

// IGradingService drives the execution client across the configured test
// cases and converts raw outcomes into a graded, persisted submission.
type IGradingService interface {
	// RunSingle executes the project's active file once with the given
	// stdin. No grading, no persistence.
	RunSingle(ctx context.Context, project *domain.Project, stdin string) (*RunResult, error)

	// SubmitForGrading snapshots the main file, runs every test case,
	// aggregates the score, appends the submission to history, updates
	// the grade state and publishes the grade exactly once. mainFile may
	// be empty, in which case the main file is selected automatically.
	SubmitForGrading(ctx context.Context, project *domain.Project, grade *domain.GradeState, mainFile string) (*GradeResult, error)
}
