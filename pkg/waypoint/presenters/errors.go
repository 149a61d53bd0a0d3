package presenters

import (
	"errors"
	"fmt"
)

// Sentinel errors for host mismatches.
var (
	// ErrNoWindow means the root presenter was used on a router without a
	// window.
	ErrNoWindow = errors.New("router has no window")

	// ErrNoParent means a presenter that attaches to a parent got the first
	// item of a sequence.
	ErrNoParent = errors.New("no parent to present on")

	// ErrWrongHost means the parent doesn't implement the host interface the
	// presenter drives.
	ErrWrongHost = errors.New("parent does not support this presentation")
)

// HostError is a failure reported by a presenter while driving its host.
type HostError struct {
	Presenter string // Presenter name, e.g. "push"
	Op        string // Operation that failed ("present", "dismiss", "select")
	Err       error  // Underlying error
}

func (e *HostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Presenter, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Presenter, e.Op)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

func hostError(presenter, op string, err error) error {
	if err == nil {
		return nil
	}
	return &HostError{Presenter: presenter, Op: op, Err: err}
}

func wrongHost(presenter, op string, host any, want string) error {
	return hostError(presenter, op, fmt.Errorf("%T is not a %s: %w", host, want, ErrWrongHost))
}

// IsHostError checks if an error came from a presenter driving its host.
func IsHostError(err error) bool {
	var hostErr *HostError
	return errors.As(err, &hostErr)
}
