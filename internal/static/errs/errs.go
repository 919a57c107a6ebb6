package errs

import "errors"

// Validation and project-store errors. These are rejected before any
// state mutation.
var (
	NotFound          = errors.New("file not found")
	Conflict          = errors.New("a file with that name already exists")
	QuotaExceeded     = errors.New("maximum file limit reached")
	LastFileProtected = errors.New("cannot delete the last file")
	ContentTooLarge   = errors.New("file content exceeds maximum size")
	InvalidFilename   = errors.New("invalid filename")
	NoCodeToSubmit    = errors.New("no code to submit")
)

// Configuration and authorization errors.
var (
	MissingCredentials  = errors.New("execution service credentials not configured")
	UnsupportedLanguage = errors.New("unsupported language")
	PermissionDenied    = errors.New("permission denied")
	InvalidCredentials  = errors.New("invalid credentials")
	GeneratingToken     = errors.New("error generating token")
)

// Remote execution service errors. Each applies to a single execution;
// sibling test cases are unaffected.
var (
	SubmissionRejected = errors.New("execution service rejected the submission")
	MissingToken       = errors.New("execution service response did not contain a token")
	ExecutionTimeout   = errors.New("execution did not reach a terminal status in time")
	ServiceUnavailable = errors.New("execution service unavailable")
	Cancelled          = errors.New("execution cancelled")
)

var InternalError = errors.New("internal error")

var kinds = map[error]string{
	NotFound:            "not_found",
	Conflict:            "conflict",
	QuotaExceeded:       "quota_exceeded",
	LastFileProtected:   "last_file_protected",
	ContentTooLarge:     "content_too_large",
	InvalidFilename:     "invalid_filename",
	NoCodeToSubmit:      "no_code_to_submit",
	MissingCredentials:  "missing_credentials",
	UnsupportedLanguage: "unsupported_language",
	PermissionDenied:    "permission_denied",
	InvalidCredentials:  "invalid_credentials",
	GeneratingToken:     "generating_token",
	SubmissionRejected:  "submission_rejected",
	MissingToken:        "missing_token",
	ExecutionTimeout:    "execution_timeout",
	ServiceUnavailable:  "service_unavailable",
	Cancelled:           "cancelled",
	InternalError:       "internal_error",
}

// Kind maps an error to its wire-level error_kind string. Wrapped errors
// resolve through errors.Is; anything unrecognized is an internal error.
func Kind(err error) string {
	for sentinel, kind := range kinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return "internal_error"
}
