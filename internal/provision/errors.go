package provision

import (
	"errors"
	"fmt"
)

// PreconditionError reports a required external condition that is absent
// before any mutation happens, such as a missing source descriptor after
// a fetch. It aborts the step immediately and carries a remediation hint.
type PreconditionError struct {
	Reason string
	Hint   string
}

func (e *PreconditionError) Error() string {
	if e.Hint == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s (%s)", e.Reason, e.Hint)
}

// Preconditionf builds a PreconditionError without a hint.
func Preconditionf(format string, args ...any) error {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// IsPrecondition checks whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// WarningError marks a non-fatal condition: the step is considered
// applied, but the operator should know. A delayed onion address is the
// canonical case.
type WarningError struct {
	Reason string
}

func (e *WarningError) Error() string {
	return e.Reason
}

// Warningf builds a WarningError.
func Warningf(format string, args ...any) error {
	return &WarningError{Reason: fmt.Sprintf(format, args...)}
}

// AsWarning extracts a WarningError if err carries one.
func AsWarning(err error) (*WarningError, bool) {
	var we *WarningError
	if errors.As(err, &we) {
		return we, true
	}
	return nil, false
}
