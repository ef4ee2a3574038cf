package user

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrUserIsNotConstructed is returned when a User instance was not created
	// through NewUser or RestoreUser. This ensures all users are validated.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")
)

// User is the aggregate root for an account of any role. Buyer, Seller and
// Rider profiles are separate rows owned by the user and are resolved through
// the repositories; the aggregate itself carries the canonical
// {ApprovalState, OperationalState} lifecycle pair.
//
// Invariants:
//   - Must have a valid unique identifier, name, email and role
//   - OperationalState transitions are one-directional toward Blocked;
//     a Blocked user cannot transition again (reactivation is an explicit
//     admin path outside this aggregate)
type User struct {
	id               kernel.UUID
	name             string
	email            string
	role             kernel.Role
	approvalState    kernel.ApprovalState
	operationalState kernel.OperationalState

	isConstructed bool
}

// NewUser creates a new User with Pending approval and Active operational
// state. Returns an error if any parameter fails validation.
func NewUser(id kernel.UUID, name, email string, role kernel.Role) (*User, error) {
	u := &User{
		approvalState:    kernel.ApprovalStatePending,
		operationalState: kernel.OperationalStateActive,
		isConstructed:    true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence with its stored lifecycle
// states. Used by repositories only.
func RestoreUser(
	id kernel.UUID,
	name, email string,
	role kernel.Role,
	approval kernel.ApprovalState,
	operational kernel.OperationalState,
) (*User, error) {
	u, err := NewUser(id, name, email, role)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(approval.Validate(), operational.Validate()); err != nil {
		return nil, err
	}

	u.approvalState = approval
	u.operationalState = operational
	return u, nil
}

// Validate ensures the User was constructed through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Email returns the user's email address.
func (u *User) Email() string {
	return u.email
}

// Role returns the user's role.
func (u *User) Role() kernel.Role {
	return u.role
}

// ApprovalState returns the user's review status.
func (u *User) ApprovalState() kernel.ApprovalState {
	return u.approvalState
}

// OperationalState returns the user's operational status.
func (u *User) OperationalState() kernel.OperationalState {
	return u.operationalState
}

// IsDeleted reports whether the user has reached the terminal Blocked state.
func (u *User) IsDeleted() bool {
	return u.operationalState.IsTerminal()
}

// Block transitions the user to the terminal Blocked state.
// Returns InvalidState if the user is already Blocked.
func (u *User) Block() error {
	if u.operationalState.IsTerminal() {
		return errs.NewInvalidStateError("user", "already blocked")
	}

	u.operationalState = kernel.OperationalStateBlocked
	return nil
}

// ChangeOperationalState applies an admin-driven status update.
// A Blocked user cannot be updated; reactivation goes through a dedicated
// admin path that does not use this aggregate method.
func (u *User) ChangeOperationalState(state kernel.OperationalState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if u.operationalState.IsTerminal() {
		return errs.NewInvalidStateError("user", "cannot update status of a deleted user")
	}

	u.operationalState = state
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	u.email = email
	return nil
}

func (u *User) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
