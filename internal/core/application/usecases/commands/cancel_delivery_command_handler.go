package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
)

type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewCancelDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionCancelDelivery); err != nil {
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

	if err = d.Cancel(cmd.Caller().ID, time.Now().UTC()); err != nil {
		return nil, err
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
