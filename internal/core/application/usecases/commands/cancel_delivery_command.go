package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand is a customer cancelling before pickup.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	caller     Caller
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(caller Caller, deliveryID kernel.UUID) (CancelDeliveryCommand, error) {
	if err := errors.Join(caller.Validate(), deliveryID.Validate()); err != nil {
		return CancelDeliveryCommand{}, err
	}
	return CancelDeliveryCommand{caller: caller, deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) Caller() Caller          { return c.caller }
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
