package commands

import (
	"errors"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
	"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
)

// ChangeDeliveryStatusCommand is an admin or the assigned driver moving a delivery.
type ChangeDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	caller     Caller
	deliveryID kernel.UUID
	status     delivery.Status

	guard guard.ConstructorGuard
}

func NewChangeDeliveryStatusCommand(
	caller Caller,
	deliveryID kernel.UUID,
	status delivery.Status,
) (ChangeDeliveryStatusCommand, error) {
	if err := errors.Join(caller.Validate(), deliveryID.Validate(), status.Validate()); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}
	return ChangeDeliveryStatusCommand{
		caller:     caller,
		deliveryID: deliveryID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryStatusCommandIsNotConstructed)
}

func (c ChangeDeliveryStatusCommand) Caller() Caller          { return c.caller }
func (c ChangeDeliveryStatusCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c ChangeDeliveryStatusCommand) Status() delivery.Status { return c.status }
