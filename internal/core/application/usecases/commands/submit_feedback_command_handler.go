package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/services"
)

// SubmitFeedbackCommandHandler records the one feedback a resolved ticket may receive
// and notifies the agent who handled it.
type SubmitFeedbackCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewSubmitFeedbackCommandHandler(
	uowFactory TicketUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) (*ticket.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionSubmitFeedback); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ticketRepo := uow.TicketRepository()
	t, err := ticketRepo.Get(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	if err = t.SubmitFeedback(cmd.Caller().ID, cmd.Rating(), cmd.Comment(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = ticketRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, drain(t)...)
	return t, nil
}
