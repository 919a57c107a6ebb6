package domain

// Remote execution service status ids. Ids 1 and 2 are the only
// non-terminal statuses; anything else means the run finished.
const (
	StatusInQueue    = 1
	StatusProcessing = 2
	StatusAccepted   = 3
)

// ExecutionRequest is the ephemeral tuple sent to the remote execution
// service for a single run. Constructed per call, never persisted.
type ExecutionRequest struct {
	SourceCode    string
	LanguageID    int
	Stdin         string
	CPUTimeLimit  float64
	MemoryLimitKB int
}

// ExecutionOutcome is the terminal result of one remote execution.
type ExecutionOutcome struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	TimeSec           float64
	MemoryKB          int
}

// Terminal reports whether the status id represents a finished run.
func Terminal(statusID int) bool {
	return statusID != StatusInQueue && statusID != StatusProcessing
}
