package dispatch

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"

	"github.com/prometheus/client_golang/prometheus"
)

// NotificationStore is the write side the hook needs.
type NotificationStore interface {
	AddMany(ctx context.Context, ns []*notification.Notification) (int, error)
}

// NotificationHook persists one notification per recipient per event. The recipient
// set is de-duplicated here and storage ignores a repeated (recipient, event) pair, so
// handling the same event twice never produces a second record.
type NotificationHook struct {
	directory Directory
	store     NotificationStore
	created   prometheus.Counter
}

// NewNotificationHook creates the hook. created may be nil.
func NewNotificationHook(directory Directory, store NotificationStore, created prometheus.Counter) *NotificationHook {
	return &NotificationHook{directory: directory, store: store, created: created}
}

func (h *NotificationHook) Name() string { return "notifications" }

func (h *NotificationHook) Handle(ctx context.Context, event kernel.DomainEvent) error {
	messages := plan(event)
	if len(messages) == 0 {
		return nil
	}

	seen := make(map[kernel.UUID]struct{})
	var records []*notification.Notification
	for _, m := range messages {
		recipients, err := resolve(ctx, h.directory, m.to)
		if err != nil {
			return err
		}
		for _, u := range recipients {
			if _, dup := seen[u.ID()]; dup {
				continue
			}
			seen[u.ID()] = struct{}{}

			n, err := notification.NewNotification(
				kernel.NewUUID(),
				notification.Recipient{ID: u.ID(), Role: u.Role()},
				m.content,
				event.EventID(),
				event.OccurredAt(),
			)
			if err != nil {
				return fmt.Errorf("build notification for %s: %w", u.ID(), err)
			}
			records = append(records, n)
		}
	}
	if len(records) == 0 {
		return nil
	}

	inserted, err := h.store.AddMany(ctx, records)
	if err != nil {
		return fmt.Errorf("store notifications: %w", err)
	}
	if h.created != nil {
		h.created.Add(float64(inserted))
	}
	return nil
}
