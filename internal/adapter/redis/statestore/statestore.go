package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codelab-2026.net/internal/core/ports/primary"
	"gitlab.com/codelab-2026.net/internal/core/ports/secondary"
)

const subjectKeyPrefix = "codelab:subject:"

var _ secondary.StateStore = (*StateStore)(nil)

// StateStore implements the StateStore interface with Redis. Each
// subject's project and grade state is one JSON document.
type StateStore struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewStateStore creates a new Redis state store
func NewStateStore(redisClient *redis.Client, logger primary.Logger) *StateStore {
	return &StateStore{
		redisClient: redisClient,
		logger:      logger,
	}
}

func subjectKey(subjectID string) string {
	return subjectKeyPrefix + subjectID
}

// Load retrieves a subject's state. A subject with no state yet yields
// (nil, nil).
func (s *StateStore) Load(ctx context.Context, subjectID string) (*secondary.SubjectState, error) {
	data, err := s.redisClient.Get(ctx, subjectKey(subjectID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load subject state: %w", err)
	}

	var state secondary.SubjectState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subject state: %w", err)
	}

	return &state, nil
}

// Save persists a subject's state.
func (s *StateStore) Save(ctx context.Context, subjectID string, state *secondary.SubjectState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("Failed to marshal subject state", "error", err)
		return fmt.Errorf("failed to marshal subject state: %w", err)
	}

	if err := s.redisClient.Set(ctx, subjectKey(subjectID), stateJSON, 0).Err(); err != nil {
		s.logger.Error("Failed to save subject state", "subjectId", subjectID, "error", err)
		return fmt.Errorf("failed to save subject state: %w", err)
	}

	return nil
}

// Delete removes a subject's state. Privileged reset only.
func (s *StateStore) Delete(ctx context.Context, subjectID string) error {
	if err := s.redisClient.Del(ctx, subjectKey(subjectID)).Err(); err != nil {
		s.logger.Error("Failed to delete subject state", "subjectId", subjectID, "error", err)
		return fmt.Errorf("failed to delete subject state: %w", err)
	}
	return nil
}
