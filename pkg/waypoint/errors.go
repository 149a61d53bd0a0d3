package waypoint

import (
	"errors"
	"fmt"
)

// SetupError is a failure while assembling a router: a route file that can't
// be loaded or applied. It is returned by New and is not a navigation
// failure.
type SetupError struct {
	Op  string // Step that failed (e.g. "load_config", "apply_config")
	Err error  // Underlying error
}

func (e *SetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("waypoint: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("waypoint: %s", e.Op)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSetupError creates a new setup error.
func NewSetupError(op string, err error) *SetupError {
	return &SetupError{Op: op, Err: err}
}

// IsSetupError checks if an error happened while assembling a router.
func IsSetupError(err error) bool {
	var setupErr *SetupError
	return errors.As(err, &setupErr)
}
