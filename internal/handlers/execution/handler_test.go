package execution

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/codelab-2026.net/internal/adapter/crypto"
	"gitlab.com/codelab-2026.net/internal/core/services/facade"
	"gitlab.com/codelab-2026.net/internal/core/services/grading"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/handlers"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// fakeFacade records the arguments handed to run and submit.
type fakeFacade struct {
	runStdins []string
	mainFiles []string
}

func (f *fakeFacade) SaveFile(ctx context.Context, ident domain.Identity, filename, content string, lang domain.LanguageID) (*domain.FileRecord, error) {
	return nil, nil
}

func (f *fakeFacade) DeleteFile(ctx context.Context, ident domain.Identity, filename string) error {
	return nil
}

func (f *fakeFacade) RenameFile(ctx context.Context, ident domain.Identity, oldName, newName string) error {
	return nil
}

func (f *fakeFacade) RunCode(ctx context.Context, ident domain.Identity, stdin string) (*grading.RunResult, error) {
	f.runStdins = append(f.runStdins, stdin)
	return &grading.RunResult{
		Outcome: &domain.ExecutionOutcome{
			StatusID:          domain.StatusAccepted,
			StatusDescription: "Accepted",
			Stdout:            "ran",
		},
	}, nil
}

func (f *fakeFacade) SubmitSolution(ctx context.Context, ident domain.Identity, mainFile string) (*grading.GradeResult, error) {
	f.mainFiles = append(f.mainFiles, mainFile)
	return &grading.GradeResult{
		Submission: domain.NewSubmission(ident.SubjectID, "main.py", domain.LanguagePython, nil, 100),
		GradeState: domain.GradeState{CurrentScore: 100, BestScore: 100, SubmissionCount: 1},
		MaxScore:   100,
	}, nil
}

func (f *fakeFacade) GetStudentData(ctx context.Context, ident domain.Identity) (*facade.StudentData, error) {
	return nil, nil
}

func (f *fakeFacade) ResetStudentData(ctx context.Context, ident domain.Identity, targetSubjectID string) error {
	return nil
}

func newTestRouter(f *fakeFacade) *mux.Router {
	jwtSvc := &crypto.JWTServiceImpl{HMACSecretKey: "test-secret", TokenTTL: time.Minute}
	provider := handlers.NewMiddlewareProvider(jwtSvc, nopLogger{})

	router := mux.NewRouter()
	router.Use(provider.IdentityMiddleware)
	NewExecutionHandler(f, nopLogger{}).RegisterRoutes(router)
	return router
}

func TestRunCodeEmptyBodyDefaultsStdin(t *testing.T) {
	f := &fakeFacade{}
	router := newTestRouter(f)

	// A bare POST means run with no stdin; it must not be rejected.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/run", nil)
	req.Header.Set(handlers.SubjectHeader, "student-1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(f.runStdins) != 1 || f.runStdins[0] != "" {
		t.Errorf("stdins = %q, want one empty run", f.runStdins)
	}
}

func TestRunCodePassesInputThrough(t *testing.T) {
	f := &fakeFacade{}
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/run", strings.NewReader(`{"input":"5 3"}`))
	req.Header.Set(handlers.SubjectHeader, "student-1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(f.runStdins) != 1 || f.runStdins[0] != "5 3" {
		t.Errorf("stdins = %q, want [\"5 3\"]", f.runStdins)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["output"] != "ran" {
		t.Errorf("output = %v", body["output"])
	}
}

func TestRunCodeRejectsMalformedBody(t *testing.T) {
	f := &fakeFacade{}
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/run", strings.NewReader("{not json"))
	req.Header.Set(handlers.SubjectHeader, "student-1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(f.runStdins) != 0 {
		t.Error("run executed with malformed body")
	}
}

func TestSubmitSolutionEmptyBodyDefaultsMainFile(t *testing.T) {
	f := &fakeFacade{}
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", nil)
	req.Header.Set(handlers.SubjectHeader, "student-1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(f.mainFiles) != 1 || f.mainFiles[0] != "" {
		t.Errorf("mainFiles = %q, want one empty entry", f.mainFiles)
	}
}
