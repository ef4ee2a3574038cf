package user_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should create user with pending approval and active state", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, "Ada", "ada@example.com", kernel.RoleSeller)

		require.NoError(t, err)
		assert.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "Ada", u.Name())
		assert.Equal(t, "ada@example.com", u.Email())
		assert.Equal(t, kernel.RoleSeller, u.Role())
		assert.Equal(t, kernel.ApprovalStatePending, u.ApprovalState())
		assert.Equal(t, kernel.OperationalStateActive, u.OperationalState())
		assert.False(t, u.IsDeleted())
	})

	t.Run("should return error for missing fields", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "", "ada@example.com", kernel.RoleBuyer)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = user.NewUser(kernel.NewUUID(), "Ada", "", kernel.RoleBuyer)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should return error for invalid id", func(t *testing.T) {
		var zeroID kernel.UUID
		_, err := user.NewUser(zeroID, "Ada", "ada@example.com", kernel.RoleBuyer)
		assert.Error(t, err)
	})

	t.Run("should return error for unknown role", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Ada", "ada@example.com", kernel.Role("Janitor"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("should restore stored lifecycle states", func(t *testing.T) {
		u, err := user.RestoreUser(kernel.NewUUID(), "Ada", "ada@example.com",
			kernel.RoleSeller, kernel.ApprovalStateApproved, kernel.OperationalStateBlocked)

		require.NoError(t, err)
		assert.Equal(t, kernel.ApprovalStateApproved, u.ApprovalState())
		assert.Equal(t, kernel.OperationalStateBlocked, u.OperationalState())
		assert.True(t, u.IsDeleted())
	})

	t.Run("should return error for invalid stored state", func(t *testing.T) {
		_, err := user.RestoreUser(kernel.NewUUID(), "Ada", "ada@example.com",
			kernel.RoleSeller, kernel.ApprovalState("Maybe"), kernel.OperationalStateActive)
		assert.Error(t, err)
	})
}

func TestUser_Block(t *testing.T) {
	t.Run("should move user to terminal state", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Ada", "ada@example.com", kernel.RoleBuyer)
		require.NoError(t, err)

		require.NoError(t, u.Block())

		assert.Equal(t, kernel.OperationalStateBlocked, u.OperationalState())
		assert.True(t, u.IsDeleted())
	})

	t.Run("blocking twice is invalid", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Ada", "ada@example.com", kernel.RoleBuyer)
		require.NoError(t, err)
		require.NoError(t, u.Block())

		assert.ErrorIs(t, u.Block(), errs.ErrInvalidState)
	})
}

func TestUser_ChangeOperationalState(t *testing.T) {
	t.Run("should apply suspension", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Ada", "ada@example.com", kernel.RoleSeller)
		require.NoError(t, err)

		require.NoError(t, u.ChangeOperationalState(kernel.OperationalStateSuspended))
		assert.Equal(t, kernel.OperationalStateSuspended, u.OperationalState())
		assert.False(t, u.IsDeleted())
	})

	t.Run("blocked user cannot change state again", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Ada", "ada@example.com", kernel.RoleSeller)
		require.NoError(t, err)
		require.NoError(t, u.Block())

		err = u.ChangeOperationalState(kernel.OperationalStateActive)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject unknown state", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Ada", "ada@example.com", kernel.RoleSeller)
		require.NoError(t, err)

		assert.ErrorIs(t, u.ChangeOperationalState(kernel.OperationalState("Frozen")), errs.ErrValueIsInvalid)
	})
}

func TestUser_Validate(t *testing.T) {
	t.Run("should return error for zero value", func(t *testing.T) {
		var u user.User
		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})

	t.Run("should return error for nil", func(t *testing.T) {
		var u *user.User
		assert.Equal(t, user.ErrUserIsNotConstructed, u.Validate())
	})
}
