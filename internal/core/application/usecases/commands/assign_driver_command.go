package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand is an admin attaching a driver to a delivery.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	caller     Caller
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(caller Caller, deliveryID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(caller.Validate(), deliveryID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	return AssignDriverCommand{
		caller:     caller,
		deliveryID: deliveryID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) Caller() Caller          { return c.caller }
func (c AssignDriverCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AssignDriverCommand) DriverID() kernel.UUID   { return c.driverID }
