package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/services"
)

// SelfAssignTicketCommandHandler lets an approved agent take an unassigned ticket; the
// ticket moves to In Progress and the customer is notified.
type SelfAssignTicketCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewSelfAssignTicketCommandHandler(
	uowFactory TicketUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) SelfAssignTicketCommandHandler {
	return SelfAssignTicketCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h SelfAssignTicketCommandHandler) Handle(ctx context.Context, cmd SelfAssignTicketCommand) (*ticket.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionTakeTicket); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agent, err := uow.UserRepository().Get(ctx, cmd.Caller().ID)
	if err != nil {
		return nil, err
	}

	ticketRepo := uow.TicketRepository()
	t, err := ticketRepo.Get(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	if err = t.SelfAssign(agent, time.Now().UTC()); err != nil {
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

// ReassignTicketCommandHandler changes the agent of a ticket without touching its status.
type ReassignTicketCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewReassignTicketCommandHandler(
	uowFactory TicketUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) ReassignTicketCommandHandler {
	return ReassignTicketCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h ReassignTicketCommandHandler) Handle(ctx context.Context, cmd ReassignTicketCommand) (*ticket.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionReassignTicket); err != nil {
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

	agent, err := uow.UserRepository().Get(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}

	if err = t.Reassign(agent, time.Now().UTC()); err != nil {
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
