package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
)

// NotificationRepository persists per-recipient notifications.
type NotificationRepository interface {
	// AddMany inserts the records and silently skips any whose (recipient, event) pair
	// already exists. It returns how many rows were actually inserted.
	AddMany(ctx context.Context, ns []*notification.Notification) (int, error)

	// Get returns the notification or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// Update persists the read flag.
	Update(ctx context.Context, n *notification.Notification) error

	// MarkAllRead flips every unread notification of recipientID and returns how many
	// changed.
	MarkAllRead(ctx context.Context, recipientID kernel.UUID, now time.Time) (int64, error)

	// Delete removes the record permanently.
	Delete(ctx context.Context, id kernel.UUID) error
}
