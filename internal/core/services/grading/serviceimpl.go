package grading

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitlab.com/codelab-2026.net/internal/config"
	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

var _ IGradingService = (*GradingService)(nil)

// GradingService implements the IGradingService interface
type GradingService struct {
	executor       secondary.CodeExecutor
	testCaseRepo   secondary.TestCaseRepository
	submissionRepo secondary.SubmissionRepository
	gradeSink      secondary.GradeSink
	cfg            *config.GradingConfig
	logger         primary.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(
	executor secondary.CodeExecutor,
	testCaseRepo secondary.TestCaseRepository,
	submissionRepo secondary.SubmissionRepository,
	gradeSink secondary.GradeSink,
	cfg *config.GradingConfig,
	logger primary.Logger,
) *GradingService {
	return &GradingService{
		executor:       executor,
		testCaseRepo:   testCaseRepo,
		submissionRepo: submissionRepo,
		gradeSink:      gradeSink,
		cfg:            cfg,
		logger:         logger,
	}
}

// RunSingle executes the active file once with the given stdin
func (s *GradingService) RunSingle(ctx context.Context, project *domain.Project, stdin string) (*RunResult, error) {
	file := project.Active()
	if file == nil {
		return nil, fmt.Errorf("%w: no active file", errs.NotFound)
	}

	langCfg, ok := domain.GetLanguageConfig(file.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.UnsupportedLanguage, file.Language)
	}

	outcome, err := s.executor.Execute(ctx, domain.ExecutionRequest{
		SourceCode:    file.Content,
		LanguageID:    langCfg.ExecutorID,
		Stdin:         stdin,
		CPUTimeLimit:  s.cfg.DefaultTimeLimit,
		MemoryLimitKB: s.cfg.MemoryLimitKB,
	})
	if err != nil {
		return nil, err
	}

	return &RunResult{Outcome: outcome}, nil
}

// SubmitForGrading runs every test case and produces a graded submission
func (s *GradingService) SubmitForGrading(ctx context.Context, project *domain.Project, grade *domain.GradeState, mainFile string) (*GradeResult, error) {
	file, err := s.selectMainFile(project, mainFile)
	if err != nil {
		return nil, err
	}

	langCfg, ok := domain.GetLanguageConfig(file.Language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.UnsupportedLanguage, file.Language)
	}

	testCases, err := s.testCaseRepo.GetTestCases(ctx, s.cfg.ProblemID)
	if err != nil {
		s.logger.Error("Failed to load test cases", "subjectId", project.SubjectID, "error", err)
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}

	// Snapshot the source before any network round trip; the project may
	// be edited while polling is in flight.
	source := file.Content
	warnings := LintSource(source)

	s.logger.Info("Grading submission",
		"subjectId", project.SubjectID,
		"mainFile", file.Name,
		"testCases", len(testCases))

	results := s.runTestCases(ctx, source, langCfg.ExecutorID, testCases)
	score := s.aggregateScore(testCases, results)

	submission := domain.NewSubmission(project.SubjectID, file.Name, file.Language, results, score)

	// The history append is the commit point. Grade state and the grade
	// publish happen only after a successful append so score and history
	// never diverge.
	if err := s.submissionRepo.Append(ctx, submission); err != nil {
		s.logger.Error("Failed to append submission", "subjectId", project.SubjectID, "error", err)
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	grade.Apply(score, submission.Timestamp)

	if err := s.gradeSink.Publish(ctx, project.SubjectID, score, s.cfg.MaxScore); err != nil {
		// The submission is already committed; a sink failure must not
		// fail the grading pass.
		s.logger.Error("Failed to publish grade", "subjectId", project.SubjectID, "error", err)
	}

	s.logger.Info("Submission graded",
		"subjectId", project.SubjectID,
		"submissionId", submission.ID,
		"score", score,
		"passed", submission.PassedCount,
		"total", submission.TotalCount)

	return &GradeResult{
		Submission:   submission,
		GradeState:   *grade,
		MaxScore:     s.cfg.MaxScore,
		LintWarnings: warnings,
	}, nil
}

// selectMainFile resolves which file gets graded: the explicit choice,
// else the first file whose name contains "main", else the first file in
// sorted order.
func (s *GradingService) selectMainFile(project *domain.Project, mainFile string) (*domain.FileRecord, error) {
	var file *domain.FileRecord

	if mainFile != "" {
		f, ok := project.Files[mainFile]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errs.NotFound, mainFile)
		}
		file = f
	} else {
		names := project.FileNames()
		for _, name := range names {
			if strings.Contains(strings.ToLower(name), "main") {
				file = project.Files[name]
				break
			}
		}
		if file == nil && len(names) > 0 {
			file = project.Files[names[0]]
		}
	}

	if file == nil || strings.TrimSpace(file.Content) == "" {
		return nil, errs.NoCodeToSubmit
	}
	return file, nil
}

// runTestCases drives the executor once per test case through a bounded
// worker pool. Results are slotted by index so association is by test
// identity, never by completion order. A failed execution becomes a
// failed result; it never aborts the siblings.
func (s *GradingService) runTestCases(ctx context.Context, source string, executorID int, testCases []domain.TestCase) []domain.TestResult {
	results := make([]domain.TestResult, len(testCases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrentRuns)

	for i, tc := range testCases {
		i, tc := i, tc
		g.Go(func() error {
			results[i] = s.runOne(gctx, source, executorID, tc)
			return nil
		})
	}
	// Workers only record results; no worker returns an error.
	_ = g.Wait()

	return results
}

func (s *GradingService) runOne(ctx context.Context, source string, executorID int, tc domain.TestCase) domain.TestResult {
	result := domain.TestResult{
		TestID:         tc.ID,
		Name:           tc.Name,
		Expected:       tc.ExpectedOutput,
		PointsPossible: tc.Points,
	}

	timeout := tc.TimeoutSec
	if timeout <= 0 {
		timeout = s.cfg.DefaultTimeLimit
	}

	outcome, err := s.executor.Execute(ctx, domain.ExecutionRequest{
		SourceCode:    source,
		LanguageID:    executorID,
		Stdin:         tc.Input,
		CPUTimeLimit:  timeout,
		MemoryLimitKB: s.cfg.MemoryLimitKB,
	})
	if err != nil {
		s.logger.Warn("Test case execution failed", "testId", tc.ID, "error", err)
		result.Error = err.Error()
		result.Redact(tc.IsPublic)
		return result
	}

	result.Actual = strings.TrimSpace(outcome.Stdout)
	result.Passed = result.Actual == strings.TrimSpace(tc.ExpectedOutput)
	result.ExecutionTime = outcome.TimeSec
	result.MemoryKB = outcome.MemoryKB
	if result.Passed {
		result.PointsEarned = tc.Points
	} else if outcome.Stderr != "" {
		result.Error = outcome.Stderr
	} else if outcome.CompileOutput != "" {
		result.Error = outcome.CompileOutput
	}

	result.Redact(tc.IsPublic)
	return result
}

// aggregateScore applies the fixed scoring policy: earned points over
// possible points, scaled into [0, MaxScore] and clamped.
func (s *GradingService) aggregateScore(testCases []domain.TestCase, results []domain.TestResult) float64 {
	var maxPossible, earned float64
	for _, tc := range testCases {
		maxPossible += tc.Points
	}
	for _, r := range results {
		earned += r.PointsEarned
	}

	if maxPossible <= 0 {
		return 0
	}

	percentage := earned / maxPossible * 100
	final := percentage * (s.cfg.MaxScore / 100)
	if final > s.cfg.MaxScore {
		final = s.cfg.MaxScore
	}
	if final < 0 {
		final = 0
	}
	return final
}
