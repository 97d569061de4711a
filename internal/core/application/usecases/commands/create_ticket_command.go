package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/pkg/guard"
)

var ErrCreateTicketCommandIsNotConstructed = errors.New(
	"CreateTicketCommand must be created via NewCreateTicketCommand constructor",
)

// CreateTicketCommand is a customer opening a support ticket. A zero deliveryID means
// the ticket is not about a particular delivery.
type CreateTicketCommand struct { //nolint:recvcheck //using for validation
	caller      Caller
	ticketID    kernel.UUID
	deliveryID  kernel.UUID
	subject     string
	description string
	category    ticket.Category
	priority    ticket.Priority

	guard guard.ConstructorGuard
}

func NewCreateTicketCommand(
	caller Caller,
	ticketID, deliveryID kernel.UUID,
	subject, description string,
	category ticket.Category,
	priority ticket.Priority,
) (CreateTicketCommand, error) {
	if err := errors.Join(caller.Validate(), ticketID.Validate()); err != nil {
		return CreateTicketCommand{}, err
	}
	return CreateTicketCommand{
		caller:      caller,
		ticketID:    ticketID,
		deliveryID:  deliveryID,
		subject:     strings.TrimSpace(subject),
		description: strings.TrimSpace(description),
		category:    category,
		priority:    priority,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTicketCommand) Validate() error {
	return c.guard.Validate(ErrCreateTicketCommandIsNotConstructed)
}

func (c CreateTicketCommand) Caller() Caller            { return c.caller }
func (c CreateTicketCommand) TicketID() kernel.UUID     { return c.ticketID }
func (c CreateTicketCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c CreateTicketCommand) Subject() string           { return c.subject }
func (c CreateTicketCommand) Description() string       { return c.description }
func (c CreateTicketCommand) Category() ticket.Category { return c.category }
func (c CreateTicketCommand) Priority() ticket.Priority { return c.priority }
