// Package runner dispatches hook events to their handlers and normalizes
// every outcome, including panics, into a uniform Result.
package runner

// Result is the uniform outcome of every handler and of the router.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Blocked  bool   `json:"blocked"`
	ExitCode int    `json:"exit_code"`
}

// NewResult derives the exit code deterministically: 2 if blocked, else 0
// on success, else 1.
func NewResult(success bool, message string, blocked bool) Result {
	code := 0
	switch {
	case blocked:
		code = 2
	case !success:
		code = 1
	}
	return Result{
		Success:  success,
		Message:  message,
		Blocked:  blocked,
		ExitCode: code,
	}
}
