package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindResolvesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("saving file: %w (10)", QuotaExceeded)
	if got := Kind(err); got != "quota_exceeded" {
		t.Errorf("Kind = %q, want quota_exceeded", got)
	}
}

func TestKindUnknownErrorIsInternal(t *testing.T) {
	if got := Kind(errors.New("boom")); got != "internal_error" {
		t.Errorf("Kind = %q, want internal_error", got)
	}
}

func TestKindDoubleWrap(t *testing.T) {
	inner := fmt.Errorf("%w: status 422", SubmissionRejected)
	outer := fmt.Errorf("grading failed: %w", inner)
	if got := Kind(outer); got != "submission_rejected" {
		t.Errorf("Kind = %q, want submission_rejected", got)
	}
}
