package queries

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultNotificationLimit applies when the caller does not pass a limit.
	DefaultNotificationLimit = 20
	// MaxNotificationLimit caps larger limits.
	MaxNotificationLimit = 100
)

var (
	ErrListNotificationsQueryIsNotConstructed = errors.New(
		"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
	)
	ErrUnreadCountQueryIsNotConstructed = errors.New(
		"UnreadCountQuery must be created via NewUnreadCountQuery constructor",
	)
)

// NotificationView is one inbox entry.
type NotificationView struct {
	ID                kernel.UUID  `json:"id"`
	Title             string       `json:"title"`
	Message           string       `json:"message"`
	Type              string       `json:"notification_type"`
	RelatedDeliveryID *kernel.UUID `json:"related_delivery_id,omitempty"`
	RelatedUserID     *kernel.UUID `json:"related_user_id,omitempty"`
	ActionURL         string       `json:"action_url,omitempty"`
	IsRead            bool         `json:"is_read"`
	CreatedAt         time.Time    `json:"created_at"`
}

// ListNotificationsQuery reads the viewer's inbox, newest first.
type ListNotificationsQuery struct { //nolint:recvcheck //using for validation
	viewer     Viewer
	limit      int
	unreadOnly bool

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery builds an inbox read. A zero limit means
// DefaultNotificationLimit and limits above MaxNotificationLimit are capped.
func NewListNotificationsQuery(viewer Viewer, limit int, unreadOnly bool) (ListNotificationsQuery, error) {
	var limitErr error
	if limit < 0 {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxNotificationLimit)
	}
	if err := errors.Join(viewer.Validate(), limitErr); err != nil {
		return ListNotificationsQuery{}, err
	}

	switch {
	case limit == 0:
		limit = DefaultNotificationLimit
	case limit > MaxNotificationLimit:
		limit = MaxNotificationLimit
	}
	return ListNotificationsQuery{
		viewer:     viewer,
		limit:      limit,
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) Viewer() Viewer   { return q.viewer }
func (q ListNotificationsQuery) Limit() int       { return q.limit }
func (q ListNotificationsQuery) UnreadOnly() bool { return q.unreadOnly }

// UnreadCountQuery counts the viewer's unread notifications.
type UnreadCountQuery struct { //nolint:recvcheck //using for validation
	viewer Viewer

	guard guard.ConstructorGuard
}

func NewUnreadCountQuery(viewer Viewer) (UnreadCountQuery, error) {
	if err := viewer.Validate(); err != nil {
		return UnreadCountQuery{}, err
	}
	return UnreadCountQuery{viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q UnreadCountQuery) Validate() error {
	return q.guard.Validate(ErrUnreadCountQueryIsNotConstructed)
}

func (q UnreadCountQuery) Viewer() Viewer { return q.viewer }

// NotificationQueryHandler reads inboxes. Only the recipient's own rows are ever
// selected, so there is no ownership failure on the read side.
type NotificationQueryHandler struct {
	db     *gorm.DB
	policy *services.Policy
}

func NewNotificationQueryHandler(db *gorm.DB, policy *services.Policy) NotificationQueryHandler {
	return NotificationQueryHandler{db: db, policy: policy}
}

func (h NotificationQueryHandler) HandleList(ctx context.Context, query ListNotificationsQuery) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Viewer().Role, services.ActionManageNotifications); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			message,
			type,
			related_delivery_id,
			related_user_id,
			action_url,
			is_read,
			created_at
		FROM notifications
		WHERE recipient_id = ? AND (NOT ? OR is_read = FALSE)
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.Viewer().ID.Bytes(), query.UnreadOnly(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]NotificationView, 0, query.Limit())
	for rows.Next() {
		var (
			view                         NotificationView
			id                           uuid.UUID
			relatedDelivery, relatedUser uuid.NullUUID
			kind                         int
		)
		err = rows.Scan(
			&id,
			&view.Title,
			&view.Message,
			&kind,
			&relatedDelivery,
			&relatedUser,
			&view.ActionURL,
			&view.IsRead,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if view.ID, err = toID(id); err != nil {
			return nil, err
		}
		if view.RelatedDeliveryID, err = toOptionalID(relatedDelivery); err != nil {
			return nil, err
		}
		if view.RelatedUserID, err = toOptionalID(relatedUser); err != nil {
			return nil, err
		}
		view.Type = notification.Type(kind).String()
		view.CreatedAt = view.CreatedAt.UTC()
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

func (h NotificationQueryHandler) HandleUnreadCount(ctx context.Context, query UnreadCountQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	if err := h.policy.Authorize(query.Viewer().Role, services.ActionManageNotifications); err != nil {
		return 0, err
	}

	var count int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM notifications
		WHERE recipient_id = ? AND is_read = FALSE
	`, query.Viewer().ID.Bytes()).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
