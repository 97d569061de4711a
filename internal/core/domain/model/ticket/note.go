package ticket

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrNoteIsRequired is returned for a blank internal note.
var ErrNoteIsRequired = errs.NewValueIsRequiredError("note")

// InternalNote is an agent-only remark on a ticket. Customers never see notes.
type InternalNote struct {
	id        kernel.UUID
	ticketID  kernel.UUID
	authorID  kernel.UUID
	text      string
	createdAt time.Time
}

// RestoreInternalNote rebuilds a note loaded from storage.
func RestoreInternalNote(id, ticketID, authorID kernel.UUID, text string, createdAt time.Time) (*InternalNote, error) {
	n := &InternalNote{id: id, ticketID: ticketID, authorID: authorID, createdAt: createdAt}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoteIsRequired
	}
	n.text = text
	if err := errors.Join(id.Validate(), ticketID.Validate(), authorID.Validate()); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *InternalNote) ID() kernel.UUID       { return n.id }
func (n *InternalNote) TicketID() kernel.UUID { return n.ticketID }
func (n *InternalNote) AuthorID() kernel.UUID { return n.authorID }
func (n *InternalNote) Text() string          { return n.text }
func (n *InternalNote) CreatedAt() time.Time  { return n.createdAt }
