package secondary

import "context"

// GradeSink records a computed score against the host gradebook. It is
// invoked exactly once per successful submission.
type GradeSink interface {
	Publish(ctx context.Context, subjectID string, score, maxScore float64) error
}
