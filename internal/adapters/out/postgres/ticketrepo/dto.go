// Package ticketrepo persists support tickets and their internal notes.
package ticketrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO is the support_tickets table. Feedback columns are all null until the
// customer rates the ticket.
type TicketDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryID      *uuid.UUID `gorm:"type:uuid;index"`
	AgentID         *uuid.UUID `gorm:"type:uuid;index"`
	Subject         string     `gorm:"size:200;not null"`
	Description     string     `gorm:"type:text;not null"`
	Category        int        `gorm:"not null"`
	Status          int        `gorm:"not null;index"`
	Priority        int        `gorm:"not null"`
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
	FeedbackRating  *int
	FeedbackComment *string
	FeedbackAt      *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (TicketDTO) TableName() string {
	return "support_tickets"
}

// NoteDTO is the ticket_internal_notes table.
type NoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentID   uuid.UUID `gorm:"type:uuid;not null"`
	Note      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (NoteDTO) TableName() string {
	return "ticket_internal_notes"
}

func optionalID(id kernel.UUID) *uuid.UUID {
	if id.IsZero() {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func fromOptionalID(raw *uuid.UUID) (kernel.UUID, error) {
	if raw == nil {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromBytes(raw[:])
}

func fromDomain(t *ticket.Ticket) TicketDTO {
	dto := TicketDTO{
		ID:          t.ID().Bytes(),
		CustomerID:  t.CustomerID().Bytes(),
		DeliveryID:  optionalID(t.DeliveryID()),
		AgentID:     optionalID(t.AgentID()),
		Subject:     t.Subject(),
		Description: t.Description(),
		Category:    int(t.Category()),
		Status:      int(t.Status()),
		Priority:    int(t.Priority()),
		ResolvedAt:  t.ResolvedAt(),
		ClosedAt:    t.ClosedAt(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if fb := t.Feedback(); fb != nil {
		rating, comment, at := fb.Rating(), fb.Comment(), fb.SubmittedAt()
		dto.FeedbackRating = &rating
		dto.FeedbackComment = &comment
		dto.FeedbackAt = &at
	}
	return dto
}

func toDomain(dto TicketDTO) (*ticket.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := fromOptionalID(dto.DeliveryID)
	if err != nil {
		return nil, err
	}
	agentID, err := fromOptionalID(dto.AgentID)
	if err != nil {
		return nil, err
	}

	var feedback *ticket.Feedback
	if dto.FeedbackRating != nil {
		var comment string
		var at time.Time
		if dto.FeedbackComment != nil {
			comment = *dto.FeedbackComment
		}
		if dto.FeedbackAt != nil {
			at = *dto.FeedbackAt
		}
		fb, fbErr := ticket.NewFeedback(*dto.FeedbackRating, comment, at)
		if fbErr != nil {
			return nil, fbErr
		}
		feedback = &fb
	}

	return ticket.RestoreTicket(ticket.Snapshot{
		ID:          id,
		CustomerID:  customerID,
		DeliveryID:  deliveryID,
		AgentID:     agentID,
		Subject:     dto.Subject,
		Description: dto.Description,
		Category:    ticket.Category(dto.Category),
		Status:      ticket.Status(dto.Status),
		Priority:    ticket.Priority(dto.Priority),
		ResolvedAt:  dto.ResolvedAt,
		ClosedAt:    dto.ClosedAt,
		Feedback:    feedback,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}

func noteFromDomain(n *ticket.InternalNote) NoteDTO {
	return NoteDTO{
		ID:        n.ID().Bytes(),
		TicketID:  n.TicketID().Bytes(),
		AgentID:   n.AuthorID().Bytes(),
		Note:      n.Text(),
		CreatedAt: n.CreatedAt(),
	}
}
