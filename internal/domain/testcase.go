package domain

// TestCase is one author-scoped test for a problem. Read-only during
// execution.
type TestCase struct {
	ID             string  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Input          string  `json:"input" db:"input"`
	ExpectedOutput string  `json:"expected_output" db:"expected_output"`
	IsPublic       bool    `json:"is_public" db:"is_public"`
	Points         float64 `json:"points" db:"points"`
	TimeoutSec     float64 `json:"timeout" db:"timeout_sec"`
}

// DefaultTestCases mirrors the authoring default used when a problem has
// no test cases configured yet.
func DefaultTestCases() []TestCase {
	return []TestCase{
		{
			ID:             "test_1",
			Name:           "Sample Test Case",
			Input:          "5 3",
			ExpectedOutput: "8",
			IsPublic:       true,
			Points:         10,
			TimeoutSec:     2.0,
		},
	}
}

// TestCaseTable holds the column names used by the Postgres repository.
type TestCaseTable struct {
	ID             string
	ProblemID      string
	Name           string
	Input          string
	ExpectedOutput string
	IsPublic       string
	Points         string
	TimeoutSec     string
	Position       string
}

func GetTestCaseTable() TestCaseTable {
	return TestCaseTable{
		ID:             "id",
		ProblemID:      "problem_id",
		Name:           "name",
		Input:          "input",
		ExpectedOutput: "expected_output",
		IsPublic:       "is_public",
		Points:         "points",
		TimeoutSec:     "timeout_sec",
		Position:       "position",
	}
}

func (t TestCaseTable) TableName() string {
	return "test_cases"
}
