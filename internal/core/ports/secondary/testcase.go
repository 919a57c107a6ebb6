package secondary

import (
	"context"

	"gitlab.com/codelab-2026.net/internal/domain"
)

// TestCaseRepository provides the author-scoped test cases for a
// problem. Read-only during grading.
type TestCaseRepository interface {
	GetTestCases(ctx context.Context, problemID string) ([]domain.TestCase, error)
}
