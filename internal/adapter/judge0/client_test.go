package judge0

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gitlab.com/codelab-2026.net/internal/config"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func testClient(baseURL string) *Client {
	return NewClient(&config.Judge0Config{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		APIHost:      "test-host",
		PollInterval: time.Millisecond,
		MaxPolls:     5,
	}, nopLogger{})
}

func testRequest() domain.ExecutionRequest {
	return domain.ExecutionRequest{
		SourceCode:    "print(8)",
		LanguageID:    71,
		Stdin:         "5 3",
		CPUTimeLimit:  2.0,
		MemoryLimitKB: 128000,
	}
}

// resultBody mirrors the service's GET response shape.
func resultBody(statusID int, description, stdout string) map[string]interface{} {
	return map[string]interface{}{
		"status": map[string]interface{}{"id": statusID, "description": description},
		"stdout": stdout,
		"time":   "0.023",
		"memory": 3456,
	}
}

func TestExecuteHappyPath(t *testing.T) {
	var submitted submissionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/submissions":
			if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
				t.Errorf("X-RapidAPI-Key = %q", got)
			}
			if got := r.Header.Get("X-RapidAPI-Host"); got != "test-host" {
				t.Errorf("X-RapidAPI-Host = %q", got)
			}
			if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
				t.Errorf("decode submission: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
		case r.Method == http.MethodGet && r.URL.Path == "/submissions/tok-1":
			json.NewEncoder(w).Encode(resultBody(domain.StatusAccepted, "Accepted", "8\n"))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	outcome, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if outcome.StatusID != domain.StatusAccepted {
		t.Errorf("status id = %d", outcome.StatusID)
	}
	if outcome.Stdout != "8\n" {
		t.Errorf("stdout = %q", outcome.Stdout)
	}
	if outcome.TimeSec != 0.023 {
		t.Errorf("time = %v", outcome.TimeSec)
	}
	if outcome.MemoryKB != 3456 {
		t.Errorf("memory = %d", outcome.MemoryKB)
	}
	if submitted.WallTimeLimit != 3.0 {
		t.Errorf("wall_time_limit = %v, want cpu + 1", submitted.WallTimeLimit)
	}
	if submitted.LanguageID != 71 {
		t.Errorf("language_id = %d", submitted.LanguageID)
	}
}

func TestExecutePollsThroughQueuedAndProcessing(t *testing.T) {
	var polls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-2"})
			return
		}
		switch atomic.AddInt32(&polls, 1) {
		case 1:
			json.NewEncoder(w).Encode(resultBody(domain.StatusInQueue, "In Queue", ""))
		case 2:
			json.NewEncoder(w).Encode(resultBody(domain.StatusProcessing, "Processing", ""))
		default:
			json.NewEncoder(w).Encode(resultBody(domain.StatusAccepted, "Accepted", "8"))
		}
	}))
	defer srv.Close()

	outcome, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.StatusID != domain.StatusAccepted {
		t.Errorf("status id = %d", outcome.StatusID)
	}
	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Errorf("polls = %d, want 3", got)
	}
}

func TestExecutePollExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-3"})
			return
		}
		json.NewEncoder(w).Encode(resultBody(domain.StatusInQueue, "In Queue", ""))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if !errors.Is(err, errs.ExecutionTimeout) {
		t.Fatalf("expected ExecutionTimeout, got %v", err)
	}
}

func TestExecuteSubmissionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if !errors.Is(err, errs.SubmissionRejected) {
		t.Fatalf("expected SubmissionRejected, got %v", err)
	}
}

func TestExecuteMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if !errors.Is(err, errs.MissingToken) {
		t.Fatalf("expected MissingToken, got %v", err)
	}
}

func TestExecuteMissingCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("network reached without credentials")
	}))
	defer srv.Close()

	client := NewClient(&config.Judge0Config{
		BaseURL:      srv.URL,
		PollInterval: time.Millisecond,
		MaxPolls:     5,
	}, nopLogger{})

	_, err := client.Execute(context.Background(), testRequest())
	if !errors.Is(err, errs.MissingCredentials) {
		t.Fatalf("expected MissingCredentials, got %v", err)
	}
}

func TestExecuteUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if !errors.Is(err, errs.ServiceUnavailable) {
		t.Fatalf("expected ServiceUnavailable, got %v", err)
	}
}

func TestExecuteCancelledDuringPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-4"})
			return
		}
		json.NewEncoder(w).Encode(resultBody(domain.StatusInQueue, "In Queue", ""))
	}))
	defer srv.Close()

	client := NewClient(&config.Judge0Config{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		APIHost:      "test-host",
		PollInterval: time.Second,
		MaxPolls:     30,
	}, nopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Execute(ctx, testRequest())
	if !errors.Is(err, errs.Cancelled) {
		t.Fatalf("expected Cancelled, got %v", err)
	}
}

func TestExecutePollNon200IsRetried(t *testing.T) {
	var polls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-5"})
			return
		}
		if atomic.AddInt32(&polls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(resultBody(domain.StatusAccepted, "Accepted", "ok"))
	}))
	defer srv.Close()

	outcome, err := testClient(srv.URL).Execute(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.Stdout != "ok" {
		t.Errorf("stdout = %q", outcome.Stdout)
	}
}
