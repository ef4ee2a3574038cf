package auth

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// Verifier resolves an ActorContext against the record store.
//
// Lookup policy is role-dispatched: administrators are looked up directly on
// the user table by id+role; buyer, seller and rider roles are looked up on
// their respective profile tables by profile id.
//
// Verify must be called, and must pass, before any mutating step of a
// workflow executes. A failed lookup is a hard stop (NotFound), never a
// warning. Handlers return it before touching the blob store or writing a
// row.
type Verifier struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
}

// NewVerifier creates a verifier over the given repositories. The composition
// root wires one over main-connection repositories; the existence check reads
// committed state and never needs to observe an open transaction.
func NewVerifier(users ports.UserRepository, profiles ports.ProfileRepository) Verifier {
	return Verifier{users: users, profiles: profiles}
}

// Verify confirms the actor denotes a currently existing row of the claimed
// role. Returns NotFound if no matching row exists, or the underlying store
// error on lookup failure.
func (v Verifier) Verify(ctx context.Context, actor ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	switch role := actor.Role(); {
	case role.IsAdministrative():
		u, err := v.users.GetByIDAndRole(ctx, actor.ActorID(), role)
		if err != nil {
			return err
		}
		if u.IsDeleted() {
			return errs.NewObjectNotFoundError("actorId", actor.ActorID().String())
		}
		return nil
	case role == kernel.RoleBuyer:
		_, err := v.profiles.GetBuyer(ctx, actor.ActorID())
		return err
	case role == kernel.RoleSeller:
		_, err := v.profiles.GetSeller(ctx, actor.ActorID())
		return err
	case role == kernel.RoleRider:
		_, err := v.profiles.GetRider(ctx, actor.ActorID())
		return err
	default:
		return errs.NewValueIsInvalidError("role")
	}
}
