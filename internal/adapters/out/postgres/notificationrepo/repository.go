package notificationrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// AddMany inserts in one statement. Rows whose (recipient_id, event_id) pair already
// exists are skipped by ON CONFLICT DO NOTHING, so replaying an event inserts nothing.
func (r *GormNotificationRepository) AddMany(ctx context.Context, ns []*notification.Notification) (int, error) {
	if len(ns) == 0 {
		return 0, nil
	}

	dtos := make([]NotificationDTO, 0, len(ns))
	for _, n := range ns {
		if err := n.Validate(); err != nil {
			return 0, err
		}
		dtos = append(dtos, fromDomain(n))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipient_id"}, {Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&dtos)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notificationID", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Update writes the read flag only; everything else is immutable.
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Updates(map[string]any{"is_read": n.IsRead(), "updated_at": n.UpdatedAt()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notificationID", n.ID())
	}
	return nil
}

func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UUID, now time.Time) (int64, error) {
	if err := recipientID.Validate(); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("recipient_id = ? AND is_read = ?", recipientID.Bytes(), false).
		Updates(map[string]any{"is_read": true, "updated_at": now})
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&NotificationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notificationID", id)
	}
	return nil
}
