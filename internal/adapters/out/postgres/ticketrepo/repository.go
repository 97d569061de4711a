package ticketrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTicketRepository implements ports.TicketRepository using GORM.
type GormTicketRepository struct {
	db *gorm.DB
}

func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	result := r.db.WithContext(ctx).Model(&TicketDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticketID", t.ID())
	}
	return nil
}

func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticketID", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// AddNote appends an internal note and bumps the ticket's updated_at.
func (r *GormTicketRepository) AddNote(ctx context.Context, note *ticket.InternalNote) error {
	dto := noteFromDomain(note)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", dto.TicketID).
		Update("updated_at", dto.CreatedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticketID", note.TicketID())
	}
	return nil
}
