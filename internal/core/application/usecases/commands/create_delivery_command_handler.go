package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// MaxTrackingNumberAttempts bounds the regenerate-on-collision loop of a booking.
const MaxTrackingNumberAttempts = 5

var ErrTrackingNumberIsExhausted = errors.New("could not generate a unique tracking number")

// CreateDeliveryCommandHandler books deliveries.
//
// The route is priced from the pickup and delivery places; when either place cannot be
// located the delivery is priced at zero distance rather than rejected. A fresh tracking
// number is drawn until it is unused; the unique index on the column catches the race
// between two bookings drawing the same number.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.Policy
	quoter     *services.Quoter
	events     EventDispatcher
}

func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy *services.Policy,
	quoter *services.Quoter,
	events EventDispatcher,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{uowFactory: uowFactory, policy: policy, quoter: quoter, events: events}
}

func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionBookDelivery); err != nil {
		return nil, err
	}

	quote, _ := h.quoter.QuoteBooking(cmd.Details())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	tn, err := h.uniqueTrackingNumber(ctx, deliveryRepo)
	if err != nil {
		return nil, err
	}

	d, err := delivery.NewDelivery(cmd.DeliveryID(), cmd.Caller().ID, tn, cmd.Details(), quote, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, drain(d)...)
	return d, nil
}

func (h CreateDeliveryCommandHandler) uniqueTrackingNumber(
	ctx context.Context,
	repo ports.DeliveryRepository,
) (delivery.TrackingNumber, error) {
	for range MaxTrackingNumberAttempts {
		tn := delivery.NewTrackingNumber()
		exists, err := repo.ExistsByTrackingNumber(ctx, tn)
		if err != nil {
			return delivery.TrackingNumber{}, err
		}
		if !exists {
			return tn, nil
		}
	}
	return delivery.TrackingNumber{}, ErrTrackingNumberIsExhausted
}
