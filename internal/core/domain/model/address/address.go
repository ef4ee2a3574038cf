// Package address contains the Address entity and its structural rules:
// a user always keeps at least one address, and exactly one address is
// primary at a time.
package address

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrAddressIsNotConstructed is returned when an Address instance was not
	// created through NewAddress or RestoreAddress.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress or RestoreAddress")
)

// Address is a delivery address owned by a user. CreatedAt ordering decides
// which address is promoted to primary when the current primary is deleted.
type Address struct {
	id         kernel.UUID
	userID     kernel.UUID
	line       string
	city       string
	province   string
	postalCode string
	phone      string
	isPrimary  bool
	createdAt  time.Time

	isConstructed bool
}

// NewAddress creates a new Address stamped with the current time.
func NewAddress(id, userID kernel.UUID, line, city, province, postalCode, phone string, isPrimary bool) (*Address, error) {
	return RestoreAddress(id, userID, line, city, province, postalCode, phone, isPrimary, time.Now().UTC())
}

// RestoreAddress reconstructs an Address from persistence. Used by repositories only.
func RestoreAddress(
	id, userID kernel.UUID,
	line, city, province, postalCode, phone string,
	isPrimary bool,
	createdAt time.Time,
) (*Address, error) {
	a := &Address{isConstructed: true}

	if err := errors.Join(
		a.setID(id),
		a.setUserID(userID),
		a.setLine(line),
		a.setCity(city),
	); err != nil {
		return nil, err
	}

	a.province = province
	a.postalCode = postalCode
	a.phone = phone
	a.isPrimary = isPrimary
	a.createdAt = createdAt
	return a, nil
}

// Validate ensures the Address was constructed through NewAddress or RestoreAddress.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// ID returns the address identifier.
func (a *Address) ID() kernel.UUID {
	return a.id
}

// UserID returns the owning user's identifier.
func (a *Address) UserID() kernel.UUID {
	return a.userID
}

// Line returns the street line of the address.
func (a *Address) Line() string {
	return a.line
}

// City returns the city.
func (a *Address) City() string {
	return a.city
}

// Province returns the province.
func (a *Address) Province() string {
	return a.province
}

// PostalCode returns the postal code.
func (a *Address) PostalCode() string {
	return a.postalCode
}

// Phone returns the contact phone for this address.
func (a *Address) Phone() string {
	return a.phone
}

// IsPrimary reports whether this is the user's primary address.
func (a *Address) IsPrimary() bool {
	return a.isPrimary
}

// CreatedAt returns the creation timestamp.
func (a *Address) CreatedAt() time.Time {
	return a.createdAt
}

// MakePrimary marks the address as primary. The caller must demote the
// previous primary within the same transaction.
func (a *Address) MakePrimary() {
	a.isPrimary = true
}

// Edit replaces the address fields. Ownership and the primary flag are not
// editable here; the primary flag moves only through MakePrimary and the
// repository-level demotion.
func (a *Address) Edit(line, city, province, postalCode, phone string) error {
	if err := errors.Join(a.setLine(line), a.setCity(city)); err != nil {
		return err
	}

	a.province = province
	a.postalCode = postalCode
	a.phone = phone
	return nil
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}
	a.userID = id
	return nil
}

func (a *Address) setLine(line string) error {
	if line == "" {
		return errs.NewValueIsRequiredError("address")
	}
	a.line = line
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
