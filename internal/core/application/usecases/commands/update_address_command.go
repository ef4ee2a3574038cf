package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAddressCommandIsNotConstructed = errors.New(
	"UpdateAddressCommand must be created via NewUpdateAddressCommand constructor",
)

// UpdateAddressCommand represents a buyer's request to edit one of their
// delivery addresses.
type UpdateAddressCommand struct { //nolint:recvcheck //using for validation
	actor      auth.ActorContext
	addressID  kernel.UUID
	line       string
	city       string
	province   string
	postalCode string
	phone      string
	isPrimary  bool

	guard guard.ConstructorGuard
}

// NewUpdateAddressCommand creates a validated address update command.
func NewUpdateAddressCommand(
	actor auth.ActorContext,
	addressID kernel.UUID,
	line, city, province, postalCode, phone string,
	isPrimary bool,
) (UpdateAddressCommand, error) {
	cmd := UpdateAddressCommand{
		province:   province,
		postalCode: postalCode,
		phone:      phone,
		isPrimary:  isPrimary,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		addressID.Validate(),
		validateRequired("address", line),
		validateRequired("city", city),
	); err != nil {
		return UpdateAddressCommand{}, err
	}

	cmd.actor = actor
	cmd.addressID = addressID
	cmd.line = line
	cmd.city = city
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAddressCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c UpdateAddressCommand) Actor() auth.ActorContext { return c.actor }

// AddressID returns the address to edit.
func (c UpdateAddressCommand) AddressID() kernel.UUID { return c.addressID }

// Line returns the street line.
func (c UpdateAddressCommand) Line() string { return c.line }

// City returns the city.
func (c UpdateAddressCommand) City() string { return c.city }

// Province returns the province.
func (c UpdateAddressCommand) Province() string { return c.province }

// PostalCode returns the postal code.
func (c UpdateAddressCommand) PostalCode() string { return c.postalCode }

// Phone returns the contact phone.
func (c UpdateAddressCommand) Phone() string { return c.phone }

// IsPrimary reports whether the address should become the primary one.
func (c UpdateAddressCommand) IsPrimary() bool { return c.isPrimary }

func validateRequired(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
