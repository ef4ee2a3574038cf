package address_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAddress(t *testing.T) *address.Address {
	t.Helper()
	a, err := address.NewAddress(kernel.NewUUID(), kernel.NewUUID(),
		"12 Harbor Lane", "Porto", "Norte", "4000-123", "+351000000000", false)
	require.NoError(t, err)
	return a
}

func TestNewAddress(t *testing.T) {
	t.Run("should create address stamped with creation time", func(t *testing.T) {
		before := time.Now().UTC()
		a := newAddress(t)

		assert.NoError(t, a.Validate())
		assert.Equal(t, "12 Harbor Lane", a.Line())
		assert.Equal(t, "Porto", a.City())
		assert.False(t, a.IsPrimary())
		assert.False(t, a.CreatedAt().Before(before))
	})

	t.Run("should require line and city", func(t *testing.T) {
		_, err := address.NewAddress(kernel.NewUUID(), kernel.NewUUID(), "", "Porto", "", "", "", false)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = address.NewAddress(kernel.NewUUID(), kernel.NewUUID(), "12 Harbor Lane", "", "", "", "", false)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require an owner", func(t *testing.T) {
		var zeroID kernel.UUID
		_, err := address.NewAddress(kernel.NewUUID(), zeroID, "12 Harbor Lane", "Porto", "", "", "", false)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreAddress(t *testing.T) {
	t.Run("should keep the stored timestamp", func(t *testing.T) {
		createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

		a, err := address.RestoreAddress(kernel.NewUUID(), kernel.NewUUID(),
			"12 Harbor Lane", "Porto", "", "", "", true, createdAt)

		require.NoError(t, err)
		assert.True(t, a.IsPrimary())
		assert.Equal(t, createdAt, a.CreatedAt())
	})
}

func TestAddress_MakePrimary(t *testing.T) {
	a := newAddress(t)

	a.MakePrimary()

	assert.True(t, a.IsPrimary())
}

func TestAddress_Edit(t *testing.T) {
	t.Run("should replace editable fields", func(t *testing.T) {
		a := newAddress(t)

		require.NoError(t, a.Edit("7 Cliff Road", "Braga", "Norte", "4700-001", "+351111111111"))

		assert.Equal(t, "7 Cliff Road", a.Line())
		assert.Equal(t, "Braga", a.City())
		assert.Equal(t, "4700-001", a.PostalCode())
	})

	t.Run("should reject empty line", func(t *testing.T) {
		a := newAddress(t)

		err := a.Edit("", "Braga", "", "", "")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, "12 Harbor Lane", a.Line())
	})
}
