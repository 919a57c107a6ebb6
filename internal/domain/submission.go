package domain

import (
	"time"

	"github.com/google/uuid"
)

// HiddenOutputPlaceholder replaces the expected output of hidden test
// cases before a result is exposed to the subject.
const HiddenOutputPlaceholder = "[hidden]"

// TestResult is the graded outcome of one test case, embedded in a
// Submission.
type TestResult struct {
	TestID         string  `json:"test_id"`
	Name           string  `json:"name"`
	Passed         bool    `json:"passed"`
	Expected       string  `json:"expected"`
	Actual         string  `json:"actual"`
	PointsPossible float64 `json:"points_possible"`
	PointsEarned   float64 `json:"points_earned"`
	ExecutionTime  float64 `json:"execution_time"`
	MemoryKB       int     `json:"memory_kb"`
	Error          string  `json:"error,omitempty"`
}

// Redact hides the expected output of hidden test cases. Passed and
// points stay visible.
func (r *TestResult) Redact(isPublic bool) {
	if !isPublic {
		r.Expected = HiddenOutputPlaceholder
	}
}

// Submission is one graded attempt. Immutable once created; appended to
// the submission history and never mutated or deleted.
type Submission struct {
	ID          uuid.UUID    `json:"id"`
	SubjectID   string       `json:"subject_id"`
	Timestamp   time.Time    `json:"timestamp"`
	MainFile    string       `json:"main_file"`
	Language    LanguageID   `json:"language"`
	TestResults []TestResult `json:"test_results"`
	Score       float64      `json:"score"`
	PassedCount int          `json:"passed_count"`
	TotalCount  int          `json:"total_count"`
}

// NewSubmission creates a submission record for a graded attempt.
func NewSubmission(subjectID, mainFile string, lang LanguageID, results []TestResult, score float64) *Submission {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return &Submission{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Timestamp:   time.Now().UTC(),
		MainFile:    mainFile,
		Language:    lang,
		TestResults: results,
		Score:       score,
		PassedCount: passed,
		TotalCount:  len(results),
	}
}

// GradeState is derived from the submission history. BestScore is
// monotonically non-decreasing; CurrentScore tracks the latest attempt.
type GradeState struct {
	CurrentScore     float64   `json:"current_score"`
	BestScore        float64   `json:"best_score"`
	SubmissionCount  int       `json:"submission_count"`
	LastSubmissionAt time.Time `json:"last_submission_at"`
}

// Apply folds a new submission score into the grade state.
func (g *GradeState) Apply(score float64, at time.Time) {
	g.CurrentScore = score
	if score > g.BestScore {
		g.BestScore = score
	}
	g.SubmissionCount++
	g.LastSubmissionAt = at
}

// SubmissionTable holds the column names used by the Postgres repository.
type SubmissionTable struct {
	ID          string
	SubjectID   string
	Timestamp   string
	MainFile    string
	Language    string
	TestResults string
	Score       string
	PassedCount string
	TotalCount  string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:          "id",
		SubjectID:   "subject_id",
		Timestamp:   "submitted_at",
		MainFile:    "main_file",
		Language:    "language",
		TestResults: "test_results",
		Score:       "score",
		PassedCount: "passed_count",
		TotalCount:  "total_count",
	}
}

func (t SubmissionTable) TableName() string {
	return "submissions"
}
