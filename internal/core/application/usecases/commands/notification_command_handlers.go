package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/services"
)

// MarkNotificationReadCommandHandler marks a notification read. Only its recipient may;
// anyone else gets errs.ErrAccessDenied.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	policy     *services.Policy
}

func NewMarkNotificationReadCommandHandler(
	uowFactory NotificationUoWFactory,
	policy *services.Policy,
) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionManageNotifications); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	changed, err := n.MarkRead(cmd.Caller().ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return n, nil
	}

	if err = repo.Update(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllNotificationsReadCommandHandler returns how many notifications changed, which
// is the number of unread ones the caller had.
type MarkAllNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
	policy     *services.Policy
}

func NewMarkAllNotificationsReadCommandHandler(
	uowFactory NotificationUoWFactory,
	policy *services.Policy,
) MarkAllNotificationsReadCommandHandler {
	return MarkAllNotificationsReadCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h MarkAllNotificationsReadCommandHandler) Handle(ctx context.Context, cmd MarkAllNotificationsReadCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionManageNotifications); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	changed, err := uow.NotificationRepository().MarkAllRead(ctx, cmd.Caller().ID, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return changed, nil
}

type DeleteNotificationCommandHandler struct {
	uowFactory NotificationUoWFactory
	policy     *services.Policy
}

func NewDeleteNotificationCommandHandler(
	uowFactory NotificationUoWFactory,
	policy *services.Policy,
) DeleteNotificationCommandHandler {
	return DeleteNotificationCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h DeleteNotificationCommandHandler) Handle(ctx context.Context, cmd DeleteNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionManageNotifications); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return err
	}
	if err = n.CheckRecipient(cmd.Caller().ID); err != nil {
		return err
	}

	if err = repo.Delete(ctx, n.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
