package interview

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for unknown sessions and for sessions owned by someone else.
var ErrNotFound = errors.New("interview not found")

// ValidationError reports a structurally invalid request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// MalformedResponseError reports model output that is not the expected JSON.
type MalformedResponseError struct {
	Preview string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed model response: %q", e.Preview)
	}
	return fmt.Sprintf("malformed model response %q: %v", e.Preview, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
