package notification

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrNotificationIsNotConstructed is returned when a Notification was not built by a constructor.
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")
	// ErrTitleIsRequired is returned for an empty title.
	ErrTitleIsRequired = errs.NewValueIsRequiredError("title")
	// ErrMessageIsRequired is returned for an empty message.
	ErrMessageIsRequired = errs.NewValueIsRequiredError("message")
)

// Recipient identifies who a notification is for. The role is copied at creation
// because the user's role may change later.
type Recipient struct {
	ID   kernel.UUID
	Role user.Role
}

// Content is what the recipient reads.
type Content struct {
	Title             string
	Message           string
	Type              Type
	RelatedDeliveryID kernel.UUID
	RelatedUserID     kernel.UUID
	ActionURL         string
}

// Notification is a persisted per-recipient record of something that happened.
//
// Apart from the read flag it is immutable, and only its recipient may read, mark or
// delete it. EventID ties the record to the domain event that produced it; storage
// keeps at most one record per (recipient, event).
type Notification struct {
	id        kernel.UUID
	recipient Recipient
	content   Content
	eventID   kernel.UUID
	isRead    bool
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification.
func NewNotification(id kernel.UUID, recipient Recipient, content Content, eventID kernel.UUID, now time.Time) (*Notification, error) {
	return build(id, recipient, content, eventID, false, now, now)
}

// RestoreNotification rebuilds a notification from storage.
func RestoreNotification(
	id kernel.UUID,
	recipient Recipient,
	content Content,
	eventID kernel.UUID,
	isRead bool,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	return build(id, recipient, content, eventID, isRead, createdAt, updatedAt)
}

func build(
	id kernel.UUID,
	recipient Recipient,
	content Content,
	eventID kernel.UUID,
	isRead bool,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	content.Title = strings.TrimSpace(content.Title)
	content.Message = strings.TrimSpace(content.Message)

	var titleErr, messageErr, recipientErr, eventErr error
	if content.Title == "" {
		titleErr = ErrTitleIsRequired
	}
	if content.Message == "" {
		messageErr = ErrMessageIsRequired
	}
	if err := recipient.ID.Validate(); err != nil {
		recipientErr = errs.NewValueIsRequiredErrorWithCause("recipientId", err)
	}
	if err := eventID.Validate(); err != nil {
		eventErr = errs.NewValueIsRequiredErrorWithCause("eventId", err)
	}

	if err := errors.Join(
		id.Validate(),
		recipientErr,
		recipient.Role.Validate(),
		titleErr,
		messageErr,
		content.Type.Validate(),
		eventErr,
	); err != nil {
		return nil, err
	}

	return &Notification{
		id:        id,
		recipient: recipient,
		content:   content,
		eventID:   eventID,
		isRead:    isRead,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the notification was built through a constructor.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) Recipient() Recipient { return n.recipient }
func (n *Notification) Content() Content     { return n.content }
func (n *Notification) EventID() kernel.UUID { return n.eventID }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) UpdatedAt() time.Time { return n.updatedAt }

// CheckRecipient returns AccessDeniedError unless userID is the recipient.
func (n *Notification) CheckRecipient(userID kernel.UUID) error {
	if !n.recipient.ID.IsEqual(userID) {
		return errs.NewAccessDeniedError("user", "access another user's notification")
	}
	return nil
}

// MarkRead sets the read flag on behalf of userID. It reports whether the flag changed;
// marking an already read notification is a no-op.
func (n *Notification) MarkRead(userID kernel.UUID, now time.Time) (bool, error) {
	if err := n.CheckRecipient(userID); err != nil {
		return false, err
	}
	if n.isRead {
		return false, nil
	}
	n.isRead = true
	n.updatedAt = now
	return true, nil
}
