package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
)

// AssignDriverCommandHandler attaches drivers. A Pending delivery becomes Scheduled;
// the driver and the customer are notified and the customer is emailed.
type AssignDriverCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewAssignDriverCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionAssignDriver); err != nil {
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

	driver, err := uow.UserRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	if err = d.AssignDriver(driver, time.Now().UTC()); err != nil {
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
