package judge0

// submissionRequest is the wire body for POST {base}/submissions.
type submissionRequest struct {
	SourceCode    string  `json:"source_code"`
	LanguageID    int     `json:"language_id"`
	Stdin         string  `json:"stdin"`
	CPUTimeLimit  float64 `json:"cpu_time_limit"`
	MemoryLimit   int     `json:"memory_limit"`
	WallTimeLimit float64 `json:"wall_time_limit"`
}

// submissionResponse carries the opaque token used to poll for results.
type submissionResponse struct {
	Token string `json:"token"`
}

type statusBody struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// resultResponse is the wire body for GET {base}/submissions/{token}.
// Judge0 reports time as a decimal string and memory in kilobytes.
type resultResponse struct {
	Status        statusBody `json:"status"`
	Stdout        *string    `json:"stdout"`
	Stderr        *string    `json:"stderr"`
	CompileOutput *string    `json:"compile_output"`
	Time          *string    `json:"time"`
	Memory        *int       `json:"memory"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
