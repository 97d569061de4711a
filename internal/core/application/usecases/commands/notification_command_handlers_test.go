package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func notificationFor(t *testing.T, recipient *user.User, read bool) *notification.Notification {
	t.Helper()
	n, err := notification.RestoreNotification(
		kernel.NewUUID(),
		notification.Recipient{ID: recipient.ID(), Role: recipient.Role()},
		notification.Content{Title: "Driver assigned", Message: "A driver is on the way.", Type: notification.Info},
		kernel.NewUUID(),
		read,
		testNow, testNow,
	)
	require.NoError(t, err)
	return n
}

func TestMarkNotificationReadCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	customer := newAccount(t, user.Customer)

	t.Run("recipient_marks_unread_notification", func(t *testing.T) {
		// Given
		ctx := t.Context()
		n := notificationFor(t, customer, false)
		repo := new(MockNotificationRepository)
		repo.On("Get", mock.Anything, n.ID()).Return(n, nil).Once()
		repo.On("Update", mock.Anything, n).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("NotificationRepository").Return(repo)
		transactional(uow)
		cmd, err := commands.NewMarkNotificationReadCommand(callerOf(customer), n.ID())
		require.NoError(t, err)

		// When
		read, err := commands.NewMarkNotificationReadCommandHandler(notificationFactory{uow}, policy).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.True(t, read.IsRead())
		repo.AssertExpectations(t)
	})

	t.Run("already_read_is_not_written_again", func(t *testing.T) {
		ctx := t.Context()
		n := notificationFor(t, customer, true)
		repo := new(MockNotificationRepository)
		repo.On("Get", mock.Anything, n.ID()).Return(n, nil).Once()
		uow := new(MockUoW)
		uow.On("NotificationRepository").Return(repo)
		aborted(uow)
		cmd, _ := commands.NewMarkNotificationReadCommand(callerOf(customer), n.ID())

		_, err := commands.NewMarkNotificationReadCommandHandler(notificationFactory{uow}, policy).Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("someone_elses_notification_is_denied", func(t *testing.T) {
		ctx := t.Context()
		n := notificationFor(t, newAccount(t, user.Driver), false)
		repo := new(MockNotificationRepository)
		repo.On("Get", mock.Anything, n.ID()).Return(n, nil).Once()
		uow := new(MockUoW)
		uow.On("NotificationRepository").Return(repo)
		aborted(uow)
		cmd, _ := commands.NewMarkNotificationReadCommand(callerOf(customer), n.ID())

		_, err := commands.NewMarkNotificationReadCommandHandler(notificationFactory{uow}, policy).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.False(t, n.IsRead())
	})
}

func TestMarkAllNotificationsReadCommandHandler_Handle(t *testing.T) {
	// Given
	ctx := t.Context()
	customer := newAccount(t, user.Customer)
	repo := new(MockNotificationRepository)
	repo.On("MarkAllRead", mock.Anything, customer.ID(), mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(repo)
	transactional(uow)
	cmd, err := commands.NewMarkAllNotificationsReadCommand(callerOf(customer))
	require.NoError(t, err)

	// When
	changed, err := commands.NewMarkAllNotificationsReadCommandHandler(notificationFactory{uow}, services.DefaultPolicy()).
		Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(3), changed)
	uow.AssertExpectations(t)
}

func TestDeleteNotificationCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	agent := newAccount(t, user.SupportAgent)

	t.Run("recipient_deletes", func(t *testing.T) {
		ctx := t.Context()
		n := notificationFor(t, agent, true)
		repo := new(MockNotificationRepository)
		repo.On("Get", mock.Anything, n.ID()).Return(n, nil).Once()
		repo.On("Delete", mock.Anything, n.ID()).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("NotificationRepository").Return(repo)
		transactional(uow)
		cmd, err := commands.NewDeleteNotificationCommand(callerOf(agent), n.ID())
		require.NoError(t, err)

		err = commands.NewDeleteNotificationCommandHandler(notificationFactory{uow}, policy).Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("other_user_cannot_delete", func(t *testing.T) {
		ctx := t.Context()
		n := notificationFor(t, newAccount(t, user.Admin), false)
		repo := new(MockNotificationRepository)
		repo.On("Get", mock.Anything, n.ID()).Return(n, nil).Once()
		uow := new(MockUoW)
		uow.On("NotificationRepository").Return(repo)
		aborted(uow)
		cmd, _ := commands.NewDeleteNotificationCommand(callerOf(agent), n.ID())

		err := commands.NewDeleteNotificationCommandHandler(notificationFactory{uow}, policy).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
