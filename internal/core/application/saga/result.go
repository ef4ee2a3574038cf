package saga

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// CompensationRecord reports the outcome of one compensation attempt during
// plan unwinding.
type CompensationRecord struct {
	StepLabel string
	Succeeded bool
	Err       error
}

// ExecutionError is returned when a plan fails. It carries the original
// triggering error and the outcome of every compensation attempted, so a
// caller can surface both. If any compensation itself failed, the error also
// matches errs.ErrCompensationIncomplete, signalling orphaned resources that
// a dead letter now tracks.
type ExecutionError struct {
	PlanLabel     string
	FailedStep    string
	Cause         error
	Compensations []CompensationRecord
}

// Incomplete reports whether at least one compensation failed.
func (e *ExecutionError) Incomplete() bool {
	for _, rec := range e.Compensations {
		if !rec.Succeeded {
			return true
		}
	}
	return false
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan %q failed at step %q: %v", e.PlanLabel, e.FailedStep, e.Cause)
	if e.Incomplete() {
		b.WriteString(" (compensation incomplete)")
	}
	return b.String()
}

// Unwrap exposes the triggering cause and, when unwinding left orphaned
// resources, errs.ErrCompensationIncomplete, so callers can dispatch with
// errors.Is on either.
func (e *ExecutionError) Unwrap() []error {
	if e.Incomplete() {
		return []error{e.Cause, errs.ErrCompensationIncomplete}
	}
	return []error{e.Cause}
}
