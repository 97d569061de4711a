package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
	"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
)

// SubmitFeedbackCommand is the customer rating a resolved ticket.
type SubmitFeedbackCommand struct { //nolint:recvcheck //using for validation
	caller   Caller
	ticketID kernel.UUID
	rating   int
	comment  string

	guard guard.ConstructorGuard
}

func NewSubmitFeedbackCommand(caller Caller, ticketID kernel.UUID, rating int, comment string) (SubmitFeedbackCommand, error) {
	if err := errors.Join(caller.Validate(), ticketID.Validate()); err != nil {
		return SubmitFeedbackCommand{}, err
	}
	return SubmitFeedbackCommand{
		caller:   caller,
		ticketID: ticketID,
		rating:   rating,
		comment:  strings.TrimSpace(comment),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

func (c SubmitFeedbackCommand) Caller() Caller        { return c.caller }
func (c SubmitFeedbackCommand) TicketID() kernel.UUID { return c.ticketID }
func (c SubmitFeedbackCommand) Rating() int           { return c.rating }
func (c SubmitFeedbackCommand) Comment() string       { return c.comment }
