package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"
)

// TicketRepository persists support tickets and their internal notes.
type TicketRepository interface {
	Add(ctx context.Context, t *ticket.Ticket) error
	Update(ctx context.Context, t *ticket.Ticket) error
	// Get returns the ticket or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error)
	AddNote(ctx context.Context, note *ticket.InternalNote) error
}
