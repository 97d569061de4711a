package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrAddInternalNoteCommandIsNotConstructed = errors.New(
	"AddInternalNoteCommand must be created via NewAddInternalNoteCommand constructor",
)

// AddInternalNoteCommand appends a staff-only note to a ticket.
type AddInternalNoteCommand struct { //nolint:recvcheck //using for validation
	caller   Caller
	ticketID kernel.UUID
	noteID   kernel.UUID
	text     string

	guard guard.ConstructorGuard
}

func NewAddInternalNoteCommand(caller Caller, ticketID, noteID kernel.UUID, text string) (AddInternalNoteCommand, error) {
	if err := errors.Join(caller.Validate(), ticketID.Validate(), noteID.Validate()); err != nil {
		return AddInternalNoteCommand{}, err
	}
	return AddInternalNoteCommand{
		caller:   caller,
		ticketID: ticketID,
		noteID:   noteID,
		text:     text,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddInternalNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddInternalNoteCommandIsNotConstructed)
}

func (c AddInternalNoteCommand) Caller() Caller        { return c.caller }
func (c AddInternalNoteCommand) TicketID() kernel.UUID { return c.ticketID }
func (c AddInternalNoteCommand) NoteID() kernel.UUID   { return c.noteID }
func (c AddInternalNoteCommand) Text() string          { return c.text }
