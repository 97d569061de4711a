package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/services"
)

type AddInternalNoteCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     *services.Policy
}

func NewAddInternalNoteCommandHandler(uowFactory TicketUoWFactory, policy *services.Policy) AddInternalNoteCommandHandler {
	return AddInternalNoteCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h AddInternalNoteCommandHandler) Handle(ctx context.Context, cmd AddInternalNoteCommand) (*ticket.InternalNote, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionWriteInternalNote); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	author, err := uow.UserRepository().Get(ctx, cmd.Caller().ID)
	if err != nil {
		return nil, err
	}

	ticketRepo := uow.TicketRepository()
	t, err := ticketRepo.Get(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	note, err := t.AddNote(author, cmd.NoteID(), cmd.Text(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = ticketRepo.AddNote(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return note, nil
}
