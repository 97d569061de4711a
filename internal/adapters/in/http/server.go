package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CommandHandlers are the state-changing use cases served over HTTP.
type CommandHandlers struct {
	RegisterUser         commands.RegisterUserCommandHandler
	Login                commands.LoginCommandHandler
	UpdateProfile        commands.UpdateProfileCommandHandler
	SetUserRole          commands.SetUserRoleCommandHandler
	ApproveAgent         commands.ApproveAgentCommandHandler
	CreateDelivery       commands.CreateDeliveryCommandHandler
	EditDelivery         commands.EditDeliveryCommandHandler
	CancelDelivery       commands.CancelDeliveryCommandHandler
	AssignDriver         commands.AssignDriverCommandHandler
	ChangeDeliveryStatus commands.ChangeDeliveryStatusCommandHandler
	MarkNotificationRead commands.MarkNotificationReadCommandHandler
	MarkAllRead          commands.MarkAllNotificationsReadCommandHandler
	DeleteNotification   commands.DeleteNotificationCommandHandler
	CreateTicket         commands.CreateTicketCommandHandler
	SelfAssignTicket     commands.SelfAssignTicketCommandHandler
	ReassignTicket       commands.ReassignTicketCommandHandler
	UpdateTicketStatus   commands.UpdateTicketStatusCommandHandler
	AddInternalNote      commands.AddInternalNoteCommandHandler
	SubmitFeedback       commands.SubmitFeedbackCommandHandler
	CreateReview         commands.CreateReviewCommandHandler
}

// QueryHandlers are the read-only use cases served over HTTP.
type QueryHandlers struct {
	ListDeliveries queries.ListDeliveriesQueryHandler
	GetDelivery    queries.GetDeliveryQueryHandler
	Track          queries.TrackDeliveryQueryHandler
	EstimatePrice  queries.EstimatePriceQueryHandler
	Users          queries.UserQueryHandler
	Notifications  queries.NotificationQueryHandler
	Tickets        queries.TicketQueryHandler
	Reviews        queries.ReviewQueryHandler
	// CurrentRole is optional; without it the role claim of the token is trusted.
	CurrentRole RoleReader
}

// Server translates HTTP requests into commands and queries and renders their results.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	commands CommandHandlers
	queries  QueryHandlers
	tokens   AccessTokenParser
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds CommandHandlers, qs QueryHandlers, tokens AccessTokenParser) *Server {
	return &Server{commands: cmds, queries: qs, tokens: tokens}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/register", s.Register)
	api.POST("/login", s.Login)
	api.POST("/estimate-price", s.EstimatePrice)
	api.GET("/track/:tracking_number", s.TrackDelivery)
	api.GET("/track-by-phone/:phone", s.TrackByPhone)
	api.POST("/support/agents/register", s.RegisterAgent)
	api.GET("/deliveries/:id/reviews", s.ListDeliveryReviews)

	authed := api.Group("", Authenticate(s.tokens, s.queries.CurrentRole))

	authed.GET("/profile", s.GetProfile)
	authed.PUT("/profile", s.UpdateProfile)

	authed.POST("/deliveries", s.CreateDelivery)
	authed.GET("/deliveries", s.ListMyDeliveries)
	authed.GET("/deliveries/:id", s.GetDelivery)
	authed.PUT("/deliveries/:id", s.EditDelivery)
	authed.POST("/deliveries/:id/cancel", s.CancelDelivery)

	authed.GET("/notifications", s.ListNotifications)
	authed.GET("/notifications/unread-count", s.UnreadCount)
	authed.POST("/notifications/read-all", s.MarkAllNotificationsRead)
	authed.POST("/notifications/:id/read", s.MarkNotificationRead)
	authed.DELETE("/notifications/:id", s.DeleteNotification)

	authed.POST("/support/tickets", s.CreateTicket)
	authed.GET("/support/tickets", s.ListTickets)
	authed.GET("/support/tickets/:id", s.GetTicket)
	authed.POST("/support/tickets/:id/assign", s.SelfAssignTicket)
	authed.PUT("/support/tickets/:id/status", s.UpdateTicketStatus)
	authed.POST("/support/tickets/:id/notes", s.AddInternalNote)
	authed.GET("/support/tickets/:id/notes", s.ListInternalNotes)
	authed.POST("/support/tickets/:id/feedback", s.SubmitFeedback)

	authed.POST("/reviews", s.CreateReview)
	authed.GET("/reviews", s.ListMyReviews)

	driver := authed.Group("/driver", RequireRole(user.Driver))
	driver.GET("/deliveries", s.ListDriverDeliveries)
	driver.PUT("/deliveries/:id/status", s.SetDeliveryStatus)

	admin := authed.Group("/admin", RequireRole(user.Admin))
	admin.GET("/users", s.ListUsers)
	admin.PUT("/users/:id/role", s.SetUserRole)
	admin.GET("/deliveries", s.ListAllDeliveries)
	admin.PUT("/delivery/:id", s.SetDeliveryStatus)
	admin.POST("/delivery/:id/assign-driver", s.AssignDriver)
	admin.POST("/support/agents/:id/approve", s.ApproveAgent)
	admin.PUT("/support/tickets/:id/reassign", s.ReassignTicket)
}

// Health handles GET /health.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func bodyID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// bind decodes the body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
