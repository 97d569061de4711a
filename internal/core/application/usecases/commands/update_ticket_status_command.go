package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/pkg/guard"
)

var ErrUpdateTicketStatusCommandIsNotConstructed = errors.New(
	"UpdateTicketStatusCommand must be created via NewUpdateTicketStatusCommand constructor",
)

// UpdateTicketStatusCommand moves a ticket and optionally changes its priority.
type UpdateTicketStatusCommand struct { //nolint:recvcheck //using for validation
	caller   Caller
	ticketID kernel.UUID
	status   ticket.Status
	priority *ticket.Priority

	guard guard.ConstructorGuard
}

func NewUpdateTicketStatusCommand(
	caller Caller,
	ticketID kernel.UUID,
	status ticket.Status,
	priority *ticket.Priority,
) (UpdateTicketStatusCommand, error) {
	var priorityErr error
	if priority != nil {
		priorityErr = priority.Validate()
	}
	if err := errors.Join(caller.Validate(), ticketID.Validate(), status.Validate(), priorityErr); err != nil {
		return UpdateTicketStatusCommand{}, err
	}
	return UpdateTicketStatusCommand{
		caller:   caller,
		ticketID: ticketID,
		status:   status,
		priority: priority,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTicketStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTicketStatusCommandIsNotConstructed)
}

func (c UpdateTicketStatusCommand) Caller() Caller             { return c.caller }
func (c UpdateTicketStatusCommand) TicketID() kernel.UUID      { return c.ticketID }
func (c UpdateTicketStatusCommand) Status() ticket.Status      { return c.status }
func (c UpdateTicketStatusCommand) Priority() *ticket.Priority { return c.priority }
