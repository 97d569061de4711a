package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var ErrUpdateProfileCommandIsNotConstructed = errors.New(
	"UpdateProfileCommand must be created via NewUpdateProfileCommand constructor",
)

// UpdateProfileCommand changes the caller's own name, address or contact number.
// A nil field is left untouched.
type UpdateProfileCommand struct { //nolint:recvcheck //using for validation
	caller        Caller
	name          *string
	address       *string
	contactNumber *string

	guard guard.ConstructorGuard
}

func NewUpdateProfileCommand(caller Caller, name, address, contactNumber *string) (UpdateProfileCommand, error) {
	if err := caller.Validate(); err != nil {
		return UpdateProfileCommand{}, err
	}
	return UpdateProfileCommand{
		caller:        caller,
		name:          name,
		address:       address,
		contactNumber: contactNumber,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProfileCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProfileCommandIsNotConstructed)
}

func (c UpdateProfileCommand) Caller() Caller         { return c.caller }
func (c UpdateProfileCommand) Name() *string          { return c.name }
func (c UpdateProfileCommand) Address() *string       { return c.address }
func (c UpdateProfileCommand) ContactNumber() *string { return c.contactNumber }
