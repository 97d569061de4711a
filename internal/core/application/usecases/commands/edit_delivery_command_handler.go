package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
)

// EditDeliveryCommandHandler applies customer edits and re-prices when an address,
// place, weight or package type changed. The stored distance is kept unless new places
// were supplied and they can be located.
type EditDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.Policy
	quoter     *services.Quoter
}

func NewEditDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy *services.Policy,
	quoter *services.Quoter,
) EditDeliveryCommandHandler {
	return EditDeliveryCommandHandler{uowFactory: uowFactory, policy: policy, quoter: quoter}
}

func (h EditDeliveryCommandHandler) Handle(ctx context.Context, cmd EditDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionEditDelivery); err != nil {
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

	now := time.Now().UTC()
	result, err := d.Edit(cmd.Caller().ID, cmd.Patch(), now)
	if err != nil {
		return nil, err
	}
	if err = h.quoter.Requote(d, result, now); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
