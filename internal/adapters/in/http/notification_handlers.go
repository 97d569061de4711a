package http

import (
	"net/http"
	"strconv"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications?limit=&unread_only=.
func (s *Server) ListNotifications(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
	}
	unreadOnly := false
	if raw := c.QueryParam("unread_only"); raw != "" {
		if unreadOnly, err = strconv.ParseBool(raw); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("unread_only", err)
		}
	}

	query, err := queries.NewListNotificationsQuery(viewer, limit, unreadOnly)
	if err != nil {
		return err
	}
	views, err := s.queries.Notifications.HandleList(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// UnreadCount handles GET /api/v1/notifications/unread-count.
func (s *Server) UnreadCount(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewUnreadCountQuery(viewer)
	if err != nil {
		return err
	}
	count, err := s.queries.Notifications.HandleUnreadCount(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkNotificationReadCommand(caller, notificationID)
	if err != nil {
		return err
	}
	n, err := s.commands.MarkNotificationRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newNotificationResponse(n))
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all and returns how
// many notifications changed.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkAllNotificationsReadCommand(caller)
	if err != nil {
		return err
	}
	updated, err := s.commands.MarkAllRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: updated})
}

// DeleteNotification handles DELETE /api/v1/notifications/:id.
func (s *Server) DeleteNotification(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	notificationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteNotificationCommand(caller, notificationID)
	if err != nil {
		return err
	}
	if err = s.commands.DeleteNotification.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
