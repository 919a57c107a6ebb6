package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/codelab-2026.net/internal/static/errs"
)

// Failure is the uniform error envelope: a machine-checkable kind plus a
// human-readable message.
type Failure struct {
	Success   bool   `json:"success"`
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

var statusByKind = map[string]int{
	"not_found":            http.StatusNotFound,
	"conflict":             http.StatusConflict,
	"quota_exceeded":       http.StatusBadRequest,
	"last_file_protected":  http.StatusBadRequest,
	"content_too_large":    http.StatusBadRequest,
	"invalid_filename":     http.StatusBadRequest,
	"no_code_to_submit":    http.StatusBadRequest,
	"unsupported_language": http.StatusBadRequest,
	"invalid_request":      http.StatusBadRequest,
	"permission_denied":    http.StatusForbidden,
	"invalid_credentials":  http.StatusUnauthorized,
	"missing_credentials":  http.StatusServiceUnavailable,
	"service_unavailable":  http.StatusServiceUnavailable,
	"execution_timeout":    http.StatusGatewayTimeout,
}

// WriteSuccess writes a success envelope. The payload map is extended
// with the success flag so responses stay flat.
func WriteSuccess(w http.ResponseWriter, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["success"] = true

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError converts an error into the failure envelope. Unrecognized
// errors map to a generic internal failure.
func WriteError(w http.ResponseWriter, err error) {
	kind := errs.Kind(err)
	WriteFailure(w, kind, err.Error())
}

// WriteFailure writes a failure envelope with an explicit kind.
func WriteFailure(w http.ResponseWriter, kind, message string) {
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Failure{
		Success:   false,
		ErrorKind: kind,
		Message:   message,
	})
}
