// Package notificationrepo persists per-recipient notifications.
package notificationrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// NotificationDTO is the notifications table. idx_notifications_recipient_event keeps
// one record per (recipient, event).
type NotificationDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_recipient_event,priority:1;index:idx_notifications_recipient_created,priority:1"`
	EventID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_recipient_event,priority:2"`
	RecipientRole     int        `gorm:"not null"`
	Title             string     `gorm:"size:200;not null"`
	Message           string     `gorm:"type:text;not null"`
	Type              int        `gorm:"not null"`
	RelatedDeliveryID *uuid.UUID `gorm:"type:uuid"`
	RelatedUserID     *uuid.UUID `gorm:"type:uuid"`
	IsRead            bool       `gorm:"not null;default:false;index"`
	ActionURL         string
	CreatedAt         time.Time `gorm:"autoCreateTime:false;index:idx_notifications_recipient_created,priority:2,sort:desc"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
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

func fromDomain(n *notification.Notification) NotificationDTO {
	content := n.Content()
	return NotificationDTO{
		ID:                n.ID().Bytes(),
		RecipientID:       n.Recipient().ID.Bytes(),
		EventID:           n.EventID().Bytes(),
		RecipientRole:     int(n.Recipient().Role),
		Title:             content.Title,
		Message:           content.Message,
		Type:              int(content.Type),
		RelatedDeliveryID: optionalID(content.RelatedDeliveryID),
		RelatedUserID:     optionalID(content.RelatedUserID),
		IsRead:            n.IsRead(),
		ActionURL:         content.ActionURL,
		CreatedAt:         n.CreatedAt(),
		UpdatedAt:         n.UpdatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	eventID, err := kernel.UUIDFromBytes(dto.EventID[:])
	if err != nil {
		return nil, err
	}
	relatedDelivery, err := fromOptionalID(dto.RelatedDeliveryID)
	if err != nil {
		return nil, err
	}
	relatedUser, err := fromOptionalID(dto.RelatedUserID)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		notification.Recipient{ID: recipientID, Role: user.Role(dto.RecipientRole)},
		notification.Content{
			Title:             dto.Title,
			Message:           dto.Message,
			Type:              notification.Type(dto.Type),
			RelatedDeliveryID: relatedDelivery,
			RelatedUserID:     relatedUser,
			ActionURL:         dto.ActionURL,
		},
		eventID,
		dto.IsRead,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
