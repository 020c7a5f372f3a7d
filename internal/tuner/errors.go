package tuner

import "fmt"

// Error codes.
const (
	ErrCodeInvalidArgs = "INVALID_ARGS"
	ErrCodeOpenFailed  = "OPEN_FAILED"
	ErrCodeIoctlFailed = "IOCTL_FAILED"
)

// Phases a failure can belong to.
const (
	PhaseArgs     = "args"
	PhaseFrontend = "frontend"
	PhaseDemux    = "demux"
)

// Error is a tuning failure with the operation that produced it.
type Error struct {
	Code    string
	Phase   string
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code, phase, message, path string, cause error) *Error {
	return &Error{
		Code:    code,
		Phase:   phase,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
