package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
)

// CreateTicketCommandHandler opens tickets. A referenced delivery must exist and belong
// to the customer. Every approved agent and every admin is notified.
type CreateTicketCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewCreateTicketCommandHandler(
	uowFactory TicketUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) CreateTicketCommandHandler {
	return CreateTicketCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h CreateTicketCommandHandler) Handle(ctx context.Context, cmd CreateTicketCommand) (*ticket.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionOpenTicket); err != nil {
		return nil, err
	}

	t, err := ticket.NewTicket(
		cmd.TicketID(), cmd.Caller().ID, cmd.DeliveryID(),
		cmd.Subject(), cmd.Description(),
		cmd.Category(), cmd.Priority(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if !cmd.DeliveryID().IsZero() {
		d, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
		if err != nil {
			return nil, err
		}
		if !d.IsOwnedBy(cmd.Caller().ID) {
			return nil, errs.NewAccessDeniedError("customer", "open a ticket about another customer's delivery")
		}
	}

	if err = uow.TicketRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, drain(t)...)
	return t, nil
}
