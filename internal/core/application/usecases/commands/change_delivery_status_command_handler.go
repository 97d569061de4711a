package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
)

// ChangeDeliveryStatusCommandHandler serves both the admin and the driver status
// endpoints. The caller's role decides which actor the transition table is consulted
// for: drivers are limited to their own deliveries and to Out for Delivery, Delivered
// and Cancelled.
//
// Re-asserting the current status writes nothing and notifies nobody.
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewChangeDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeDeliveryStatusCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor, action := delivery.ActorAdmin, services.ActionSetDeliveryStatus
	if cmd.Caller().Role == user.Driver {
		actor, action = delivery.ActorDriver, services.ActionDriveDelivery
	}
	if err := h.policy.Authorize(cmd.Caller().Role, action); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	changed, err := d.ChangeStatus(actor, cmd.Caller().ID, cmd.Status(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return d, nil
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, drain(d)...)
	return d, nil
}
