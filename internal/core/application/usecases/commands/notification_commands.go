package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
		"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
	)
	ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
		"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
	)
	ErrDeleteNotificationCommandIsNotConstructed = errors.New(
		"DeleteNotificationCommand must be created via NewDeleteNotificationCommand constructor",
	)
)

// MarkNotificationReadCommand flips the read flag of one of the caller's notifications.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	caller         Caller
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(caller Caller, notificationID kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := errors.Join(caller.Validate(), notificationID.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{caller: caller, notificationID: notificationID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) Caller() Caller              { return c.caller }
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }

// MarkAllNotificationsReadCommand marks every unread notification of the caller.
type MarkAllNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	caller Caller

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand(caller Caller) (MarkAllNotificationsReadCommand, error) {
	if err := caller.Validate(); err != nil {
		return MarkAllNotificationsReadCommand{}, err
	}
	return MarkAllNotificationsReadCommand{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

func (c MarkAllNotificationsReadCommand) Caller() Caller { return c.caller }

// DeleteNotificationCommand removes one of the caller's notifications for good.
type DeleteNotificationCommand struct { //nolint:recvcheck //using for validation
	caller         Caller
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteNotificationCommand(caller Caller, notificationID kernel.UUID) (DeleteNotificationCommand, error) {
	if err := errors.Join(caller.Validate(), notificationID.Validate()); err != nil {
		return DeleteNotificationCommand{}, err
	}
	return DeleteNotificationCommand{caller: caller, notificationID: notificationID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteNotificationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteNotificationCommandIsNotConstructed)
}

func (c DeleteNotificationCommand) Caller() Caller              { return c.caller }
func (c DeleteNotificationCommand) NotificationID() kernel.UUID { return c.notificationID }
