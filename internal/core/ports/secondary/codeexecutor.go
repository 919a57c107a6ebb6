package secondary

import (
	"context"

	"gitlab.com/codelab-2026.net/internal/domain"
)

// CodeExecutor submits one execution request to the remote sandboxed
// execution service and resolves to a terminal outcome. Implementations
// hold no state across calls and are safe for concurrent use.
type CodeExecutor interface {
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error)
}
