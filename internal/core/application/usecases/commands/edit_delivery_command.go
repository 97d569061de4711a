package commands

import (
	"errors"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrEditDeliveryCommandIsNotConstructed = errors.New(
	"EditDeliveryCommand must be created via NewEditDeliveryCommand constructor",
)

// EditDeliveryCommand is a customer changing a delivery before pickup.
type EditDeliveryCommand struct { //nolint:recvcheck //using for validation
	caller     Caller
	deliveryID kernel.UUID
	patch      delivery.Patch

	guard guard.ConstructorGuard
}

func NewEditDeliveryCommand(caller Caller, deliveryID kernel.UUID, patch delivery.Patch) (EditDeliveryCommand, error) {
	if err := errors.Join(caller.Validate(), deliveryID.Validate()); err != nil {
		return EditDeliveryCommand{}, err
	}
	return EditDeliveryCommand{caller: caller, deliveryID: deliveryID, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c EditDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEditDeliveryCommandIsNotConstructed)
}

func (c EditDeliveryCommand) Caller() Caller          { return c.caller }
func (c EditDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c EditDeliveryCommand) Patch() delivery.Patch   { return c.patch }
