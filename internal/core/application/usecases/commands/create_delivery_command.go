package commands

import (
	"errors"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand is a customer booking a delivery. The details are validated by
// the delivery aggregate when the handler builds it.
//
// Example:
//
//	pickup, _ := kernel.NewPlace("110001", "New Delhi", "Delhi")
//	drop, _ := kernel.NewPlace("400001", "Mumbai", "Maharashtra")
//	cmd, err := NewCreateDeliveryCommand(caller, kernel.NewUUID(), delivery.Details{
//	    PickupAddress:   "12 Janpath",
//	    DeliveryAddress: "4 Marine Drive",
//	    PickupPlace:     pickup,
//	    DeliveryPlace:   drop,
//	    WeightKg:        5,
//	    PackageType:     delivery.Medium,
//	    PickupDate:      time.Now().Add(24 * time.Hour),
//	})
//	d, err := handler.Handle(ctx, cmd)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	caller     Caller
	deliveryID kernel.UUID
	details    delivery.Details

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(caller Caller, deliveryID kernel.UUID, details delivery.Details) (CreateDeliveryCommand, error) {
	if err := errors.Join(caller.Validate(), deliveryID.Validate()); err != nil {
		return CreateDeliveryCommand{}, err
	}
	return CreateDeliveryCommand{
		caller:     caller,
		deliveryID: deliveryID,
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) Caller() Caller            { return c.caller }
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c CreateDeliveryCommand) Details() delivery.Details { return c.details }
