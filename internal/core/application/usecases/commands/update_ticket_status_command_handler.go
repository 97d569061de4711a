package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/services"
)

// UpdateTicketStatusCommandHandler is used by the assigned agent and by admins. An update
// that changes neither status nor priority writes nothing.
type UpdateTicketStatusCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewUpdateTicketStatusCommandHandler(
	uowFactory TicketUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) UpdateTicketStatusCommandHandler {
	return UpdateTicketStatusCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h UpdateTicketStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTicketStatusCommand) (*ticket.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionUpdateTicketStatus); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.Caller().ID)
	if err != nil {
		return nil, err
	}

	ticketRepo := uow.TicketRepository()
	t, err := ticketRepo.Get(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	changed, err := t.UpdateStatus(actor, cmd.Status(), cmd.Priority(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return t, nil
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
