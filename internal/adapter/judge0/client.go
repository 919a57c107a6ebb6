package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gitlab.com/codelab-2026.net/internal/config"
	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2026.net/internal/domain"
	"gitlab.com/codelab-2026.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Client)(nil)

// Client submits code to the Judge0 service and polls for the terminal
// result. It holds no state across calls and is safe for concurrent use.
type Client struct {
	cfg        *config.Judge0Config
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new Judge0 client
func NewClient(cfg *config.Judge0Config, logger primary.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Execute runs one submit-then-poll cycle. The wall-clock limit sent to
// the service is the CPU limit plus one second of headroom. Polling runs
// at the configured interval up to the configured attempt cap; statuses
// 1 (queued) and 2 (processing) mean "not yet".
func (c *Client) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
	if c.cfg.APIKey == "" || c.cfg.APIHost == "" {
		return nil, errs.MissingCredentials
	}

	token, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}

	return c.poll(ctx, token)
}

func (c *Client) submit(ctx context.Context, req domain.ExecutionRequest) (string, error) {
	body := submissionRequest{
		SourceCode:    req.SourceCode,
		LanguageID:    req.LanguageID,
		Stdin:         req.Stdin,
		CPUTimeLimit:  req.CPUTimeLimit,
		MemoryLimit:   req.MemoryLimitKB,
		WallTimeLimit: req.CPUTimeLimit + 1,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/submissions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build submission request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Judge0 submission transport failure", "error", err)
		return "", fmt.Errorf("%w: %v", errs.ServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		c.logger.Error("Judge0 rejected submission", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", errs.SubmissionRejected, resp.StatusCode)
	}

	var sub submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return "", fmt.Errorf("%w: %v", errs.MissingToken, err)
	}
	if sub.Token == "" {
		return "", errs.MissingToken
	}

	return sub.Token, nil
}

func (c *Client) poll(ctx context.Context, token string) (*domain.ExecutionOutcome, error) {
	timer := time.NewTimer(c.cfg.PollInterval)
	defer timer.Stop()

	for attempt := 0; attempt < c.cfg.MaxPolls; attempt++ {
		result, terminal, err := c.fetchResult(ctx, token)
		if err != nil {
			return nil, err
		}
		if terminal {
			return result, nil
		}

		timer.Reset(c.cfg.PollInterval)
		select {
		case <-ctx.Done():
			return nil, errs.Cancelled
		case <-timer.C:
		}
	}

	c.logger.Warn("Judge0 polling exhausted", "token", token, "attempts", c.cfg.MaxPolls)
	return nil, errs.ExecutionTimeout
}

// fetchResult performs one poll. A 200 with a non-terminal status id
// reports terminal=false; any other HTTP status is also treated as "not
// yet" and retried on the normal cadence.
func (c *Client) fetchResult(ctx context.Context, token string) (*domain.ExecutionOutcome, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/submissions/"+token, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build poll request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", errs.ServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, nil
	}

	var result resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, nil
	}

	if !domain.Terminal(result.Status.ID) {
		return nil, false, nil
	}

	timeSec, _ := strconv.ParseFloat(deref(result.Time), 64)
	memory := 0
	if result.Memory != nil {
		memory = *result.Memory
	}

	return &domain.ExecutionOutcome{
		StatusID:          result.Status.ID,
		StatusDescription: result.Status.Description,
		Stdout:            deref(result.Stdout),
		Stderr:            deref(result.Stderr),
		CompileOutput:     deref(result.CompileOutput),
		TimeSec:           timeSec,
		MemoryKB:          memory,
	}, true, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.APIHost)
}
