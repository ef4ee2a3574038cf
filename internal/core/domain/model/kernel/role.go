package kernel

import "marketplace/internal/pkg/errs"

// Role identifies the kind of actor behind an authenticated request.
// Admin and SuperAdmin are resolved directly on the user table; Buyer, Seller
// and Rider are resolved on their respective profile tables.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
	RoleBuyer      Role = "Buyer"
	RoleSeller     Role = "Seller"
	RoleRider      Role = "Rider"
)

// RoleFromString parses a role from its string representation, typically a
// JWT claim. Returns an error for unknown roles.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSuperAdmin, RoleBuyer, RoleSeller, RoleRider:
		return Role(s), nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsAdministrative reports whether the role is looked up directly on the user
// table rather than on a profile table.
func (r Role) IsAdministrative() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	_, err := RoleFromString(string(r))
	return err
}
