package verification

import "time"

// Status of a single verification attempt.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Result captures the outcome of one verification attempt. Results are
// immutable once produced; the engine keeps one per attempt in submission
// order. A fail status is ordinary, expected output that drives the edit
// loop – it is never an engine error.
type Result struct {
	Status    Status        `json:"status"`
	Output    string        `json:"output,omitempty"`
	Stderr    string        `json:"stderr,omitempty"`
	ExitCode  int           `json:"exitCode"`
	Revision  int           `json:"revision,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
}

// Passed reports whether the attempt succeeded.
func (r *Result) Passed() bool {
	return r != nil && r.Status == StatusPass
}

// StatusOf maps a process exit code onto a verification status: zero exit is
// a pass, anything else a fail.
func StatusOf(exitCode int) Status {
	if exitCode == 0 {
		return StatusPass
	}
	return StatusFail
}
