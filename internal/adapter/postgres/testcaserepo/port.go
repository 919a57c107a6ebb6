// package testcaserepo contains the PostgreSQL test case source.
package testcaserepo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/domain"
	querybuilder "gitlab.com/codelab-2026.net/internal/utils"
)

var _ secondary.TestCaseRepository = (*TestCaseRepository)(nil)

// TestCaseRepository loads author-scoped test cases from PostgreSQL.
// A problem with no configured rows falls back to the authoring default
// so a fresh deployment is still gradeable.
type TestCaseRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewTestCaseRepository creates a new PostgreSQL test case repository
func NewTestCaseRepository(db *sqlx.DB, logger primary.Logger, schema string) *TestCaseRepository {
	if schema == "" {
		schema = "public"
	}
	return &TestCaseRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// GetTestCases returns the test cases for a problem in authoring order.
func (r *TestCaseRepository) GetTestCases(ctx context.Context, problemID string) ([]domain.TestCase, error) {
	tbl := domain.GetTestCaseTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.Name, tbl.Input, tbl.ExpectedOutput,
			tbl.IsPublic, tbl.Points, tbl.TimeoutSec,
		).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ProblemID), problemID).
		OrderBy(tbl.Position, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var testCases []domain.TestCase
	if err := r.db.SelectContext(ctx, &testCases, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}

	if len(testCases) == 0 {
		r.logger.Warn("No test cases configured, using authoring default", "problemId", problemID)
		return domain.DefaultTestCases(), nil
	}

	return testCases, nil
}
