package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrSelfAssignTicketCommandIsNotConstructed = errors.New(
		"SelfAssignTicketCommand must be created via NewSelfAssignTicketCommand constructor",
	)
	ErrReassignTicketCommandIsNotConstructed = errors.New(
		"ReassignTicketCommand must be created via NewReassignTicketCommand constructor",
	)
)

// SelfAssignTicketCommand is an approved agent taking an unassigned ticket.
type SelfAssignTicketCommand struct { //nolint:recvcheck //using for validation
	caller   Caller
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSelfAssignTicketCommand(caller Caller, ticketID kernel.UUID) (SelfAssignTicketCommand, error) {
	if err := errors.Join(caller.Validate(), ticketID.Validate()); err != nil {
		return SelfAssignTicketCommand{}, err
	}
	return SelfAssignTicketCommand{caller: caller, ticketID: ticketID, guard: guard.NewConstructorGuard()}, nil
}

func (c SelfAssignTicketCommand) Validate() error {
	return c.guard.Validate(ErrSelfAssignTicketCommandIsNotConstructed)
}

func (c SelfAssignTicketCommand) Caller() Caller        { return c.caller }
func (c SelfAssignTicketCommand) TicketID() kernel.UUID { return c.ticketID }

// ReassignTicketCommand is an admin handing a ticket to another approved agent.
type ReassignTicketCommand struct { //nolint:recvcheck //using for validation
	caller   Caller
	ticketID kernel.UUID
	agentID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewReassignTicketCommand(caller Caller, ticketID, agentID kernel.UUID) (ReassignTicketCommand, error) {
	if err := errors.Join(caller.Validate(), ticketID.Validate(), agentID.Validate()); err != nil {
		return ReassignTicketCommand{}, err
	}
	return ReassignTicketCommand{caller: caller, ticketID: ticketID, agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReassignTicketCommand) Validate() error {
	return c.guard.Validate(ErrReassignTicketCommandIsNotConstructed)
}

func (c ReassignTicketCommand) Caller() Caller        { return c.caller }
func (c ReassignTicketCommand) TicketID() kernel.UUID { return c.ticketID }
func (c ReassignTicketCommand) AgentID() kernel.UUID  { return c.agentID }
