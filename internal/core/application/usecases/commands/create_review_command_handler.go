package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/review"
	"logistics/internal/core/domain/services"
)

// CreateReviewCommandHandler stores reviews. Only the owner of the delivery may review
// it, once; a second review is reported by the repository as errs.ErrAlreadyExists.
type CreateReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	policy     *services.Policy
}

func NewCreateReviewCommandHandler(uowFactory ReviewUoWFactory, policy *services.Policy) CreateReviewCommandHandler {
	return CreateReviewCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h CreateReviewCommandHandler) Handle(ctx context.Context, cmd CreateReviewCommand) (*review.Review, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionReviewDelivery); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	r, err := review.NewReview(cmd.ReviewID(), d, cmd.Caller().ID, cmd.Rating(), cmd.Comment(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.ReviewRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return r, nil
}
