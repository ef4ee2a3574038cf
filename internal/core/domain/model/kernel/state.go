package kernel

import "marketplace/internal/pkg/errs"

// OperationalState is the canonical operational status of an entity.
// It forms a one-directional lifecycle for the purposes of the workflow
// engine: entities move toward the terminal Blocked state, and that transition
// cascades to owned children. Reactivation is a separate explicit admin action
// and is never performed automatically by the engine.
//
// Together with ApprovalState this pair replaces the single ambiguous status
// field some legacy code paths keyed off; every "is deleted" check in this
// codebase reads OperationalState and nothing else.
type OperationalState string

const (
	OperationalStateActive    OperationalState = "Active"
	OperationalStateSuspended OperationalState = "Suspended"
	OperationalStateBlocked   OperationalState = "Blocked"
)

// OperationalStateFromString parses an operational state from its string
// representation. Returns an error for unknown values.
func OperationalStateFromString(s string) (OperationalState, error) {
	switch OperationalState(s) {
	case OperationalStateActive, OperationalStateSuspended, OperationalStateBlocked:
		return OperationalState(s), nil
	default:
		return "", errs.NewValueIsInvalidError("operationalState")
	}
}

// String returns the string representation of the state.
func (s OperationalState) String() string {
	return string(s)
}

// IsTerminal reports whether the state is the terminal Blocked state.
// Blocked entities are treated as soft-deleted.
func (s OperationalState) IsTerminal() bool {
	return s == OperationalStateBlocked
}

// Validate checks that the state is one of the known values.
func (s OperationalState) Validate() error {
	_, err := OperationalStateFromString(string(s))
	return err
}

// ApprovalState is the review status of an entity that requires admin
// approval before going live (sellers, riders, stores).
type ApprovalState string

const (
	ApprovalStatePending  ApprovalState = "Pending"
	ApprovalStateApproved ApprovalState = "Approved"
	ApprovalStateRejected ApprovalState = "Rejected"
)

// ApprovalStateFromString parses an approval state from its string
// representation. Returns an error for unknown values.
func ApprovalStateFromString(s string) (ApprovalState, error) {
	switch ApprovalState(s) {
	case ApprovalStatePending, ApprovalStateApproved, ApprovalStateRejected:
		return ApprovalState(s), nil
	default:
		return "", errs.NewValueIsInvalidError("approvalState")
	}
}

// String returns the string representation of the state.
func (s ApprovalState) String() string {
	return string(s)
}

// Validate checks that the state is one of the known values.
func (s ApprovalState) Validate() error {
	_, err := ApprovalStateFromString(string(s))
	return err
}
