// package host contains adapters for the hosting learning platform.
package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
)

var _ secondary.GradeSink = (*WebhookGradeSink)(nil)

// WebhookGradeSink publishes grades to the host gradebook over HTTP.
// With no URL configured it degrades to a logging no-op, so the grading
// flow works without a host attached.
type WebhookGradeSink struct {
	url        string
	httpClient *http.Client
	logger     primary.Logger
}

// NewWebhookGradeSink creates a new webhook grade sink
func NewWebhookGradeSink(url string, logger primary.Logger) *WebhookGradeSink {
	return &WebhookGradeSink{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type gradeEvent struct {
	SubjectID string  `json:"subject_id"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
}

// Publish records a score against the host gradebook.
func (s *WebhookGradeSink) Publish(ctx context.Context, subjectID string, score, maxScore float64) error {
	if s.url == "" {
		s.logger.Info("Grade computed (no sink configured)", "subjectId", subjectID, "score", score, "maxScore", maxScore)
		return nil
	}

	payload, err := json.Marshal(gradeEvent{
		SubjectID: subjectID,
		Score:     score,
		MaxScore:  maxScore,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal grade event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build grade request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish grade: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("grade sink responded with status %d", resp.StatusCode)
	}

	s.logger.Info("Grade published", "subjectId", subjectID, "score", score)
	return nil
}
