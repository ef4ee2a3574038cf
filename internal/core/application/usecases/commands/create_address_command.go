package commands

import (
	"errors"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateAddressCommandIsNotConstructed = errors.New(
	"CreateAddressCommand must be created via NewCreateAddressCommand constructor",
)

// CreateAddressCommand represents a buyer's request to add a delivery address.
type CreateAddressCommand struct { //nolint:recvcheck //using for validation
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

// NewCreateAddressCommand creates a validated address creation command.
func NewCreateAddressCommand(
	actor auth.ActorContext,
	addressID kernel.UUID,
	line, city, province, postalCode, phone string,
	isPrimary bool,
) (CreateAddressCommand, error) {
	cmd := CreateAddressCommand{
		province:   province,
		postalCode: postalCode,
		phone:      phone,
		isPrimary:  isPrimary,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setAddressID(addressID),
		cmd.setLine(line),
		cmd.setCity(city),
	); err != nil {
		return CreateAddressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAddressCommand) Validate() error {
	return c.guard.Validate(ErrCreateAddressCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c CreateAddressCommand) Actor() auth.ActorContext { return c.actor }

// AddressID returns the identifier the new address will be created under.
func (c CreateAddressCommand) AddressID() kernel.UUID { return c.addressID }

// Line returns the street line.
func (c CreateAddressCommand) Line() string { return c.line }

// City returns the city.
func (c CreateAddressCommand) City() string { return c.city }

// Province returns the province.
func (c CreateAddressCommand) Province() string { return c.province }

// PostalCode returns the postal code.
func (c CreateAddressCommand) PostalCode() string { return c.postalCode }

// Phone returns the contact phone.
func (c CreateAddressCommand) Phone() string { return c.phone }

// IsPrimary reports whether the new address should become the primary one.
func (c CreateAddressCommand) IsPrimary() bool { return c.isPrimary }

func (c *CreateAddressCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateAddressCommand) setAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.addressID = id
	return nil
}

func (c *CreateAddressCommand) setLine(line string) error {
	if line == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.line = line
	return nil
}

func (c *CreateAddressCommand) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}

	c.city = city
	return nil
}
