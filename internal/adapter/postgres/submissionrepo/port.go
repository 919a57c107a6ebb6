// package submissionrepo contains the PostgreSQL submission history.
package submissionrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/domain"
	querybuilder "gitlab.com/codelab-2026.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface
// with PostgreSQL. The table is append-only; rows are removed only by
// the privileged reset flow.
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	if schema == "" {
		schema = "public"
	}
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Append inserts a submission record. Records are immutable; there is no
// conflict clause on purpose.
func (r *SubmissionRepository) Append(ctx context.Context, sub *domain.Submission) error {
	resultsJSON, err := json.Marshal(sub.TestResults)
	if err != nil {
		r.logger.Error("Failed to marshal test results", "error", err)
		return fmt.Errorf("failed to marshal test results: %w", err)
	}

	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			tbl.ID, tbl.SubjectID, tbl.Timestamp, tbl.MainFile,
			tbl.Language, tbl.TestResults, tbl.Score,
			tbl.PassedCount, tbl.TotalCount,
		).
		Into(tbl.TableName()).
		Values(
			sub.ID, sub.SubjectID, sub.Timestamp, sub.MainFile,
			string(sub.Language), resultsJSON, sub.Score,
			sub.PassedCount, sub.TotalCount,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to append submission", "submissionId", sub.ID, "error", err)
		return fmt.Errorf("failed to append submission: %w", err)
	}

	return nil
}

// ListBySubject returns a subject's submissions, oldest first.
func (r *SubmissionRepository) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.SubjectID, tbl.Timestamp, tbl.MainFile,
			tbl.Language, tbl.TestResults, tbl.Score,
			tbl.PassedCount, tbl.TotalCount,
		).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.SubjectID), subjectID).
		OrderBy(tbl.Timestamp, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Submission
	for rows.Next() {
		var (
			sub         domain.Submission
			lang        string
			resultsJSON []byte
		)
		if err := rows.Scan(
			&sub.ID, &sub.SubjectID, &sub.Timestamp, &sub.MainFile,
			&lang, &resultsJSON, &sub.Score,
			&sub.PassedCount, &sub.TotalCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sub.Language = domain.LanguageID(lang)
		if err := json.Unmarshal(resultsJSON, &sub.TestResults); err != nil {
			return nil, fmt.Errorf("failed to unmarshal test results: %w", err)
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

// CountBySubject returns the number of submissions a subject has made.
func (r *SubmissionRepository) CountBySubject(ctx context.Context, subjectID string) (int, error) {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select("COUNT(*)").
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.SubjectID), subjectID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

// DeleteBySubject removes a subject's history. Privileged reset only.
func (r *SubmissionRepository) DeleteBySubject(ctx context.Context, subjectID string) error {
	tbl := domain.GetSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.SubjectID), subjectID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to delete submissions", "subjectId", subjectID, "error", err)
		return fmt.Errorf("failed to delete submissions: %w", err)
	}
	return nil
}
