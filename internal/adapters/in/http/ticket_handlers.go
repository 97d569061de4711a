package http

import (
	"net/http"
	"strings"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"

	"github.com/labstack/echo/v4"
)

// CreateTicket handles POST /api/v1/support/tickets. The delivery reference is optional.
func (s *Server) CreateTicket(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createTicketRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	var deliveryID kernel.UUID
	if req.DeliveryID != "" {
		if deliveryID, err = bodyID("delivery_id", req.DeliveryID); err != nil {
			return err
		}
	}
	category, err := ticket.ParseCategory(req.Category)
	if err != nil {
		return err
	}
	priority := ticket.UnknownPriority
	if strings.TrimSpace(req.Priority) != "" {
		if priority, err = ticket.ParsePriority(req.Priority); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCreateTicketCommand(
		caller, kernel.NewUUID(), deliveryID, req.Subject, req.Description, category, priority,
	)
	if err != nil {
		return err
	}
	t, err := s.commands.CreateTicket.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newTicketResponse(t))
}

// ListTickets handles GET /api/v1/support/tickets?status=.
func (s *Server) ListTickets(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListTicketsQuery(viewer, c.QueryParam("status"))
	if err != nil {
		return err
	}
	views, err := s.queries.Tickets.HandleList(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetTicket handles GET /api/v1/support/tickets/:id.
func (s *Server) GetTicket(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTicketQuery(viewer, ticketID)
	if err != nil {
		return err
	}
	view, err := s.queries.Tickets.HandleGet(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// SelfAssignTicket handles POST /api/v1/support/tickets/:id/assign.
func (s *Server) SelfAssignTicket(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewSelfAssignTicketCommand(caller, ticketID)
	if err != nil {
		return err
	}
	t, err := s.commands.SelfAssignTicket.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTicketResponse(t))
}

// UpdateTicketStatus handles PUT /api/v1/support/tickets/:id/status. The priority may be
// changed in the same request.
func (s *Server) UpdateTicketStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ticketStatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	status, err := ticket.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	var priority *ticket.Priority
	if strings.TrimSpace(req.Priority) != "" {
		p, parseErr := ticket.ParsePriority(req.Priority)
		if parseErr != nil {
			return parseErr
		}
		priority = &p
	}

	cmd, err := commands.NewUpdateTicketStatusCommand(caller, ticketID, status, priority)
	if err != nil {
		return err
	}
	t, err := s.commands.UpdateTicketStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTicketResponse(t))
}

// ReassignTicket handles PUT /api/v1/admin/support/tickets/:id/reassign.
func (s *Server) ReassignTicket(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req reassignTicketRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	agentID, err := bodyID("agent_id", req.AgentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReassignTicketCommand(caller, ticketID, agentID)
	if err != nil {
		return err
	}
	t, err := s.commands.ReassignTicket.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTicketResponse(t))
}

// AddInternalNote handles POST /api/v1/support/tickets/:id/notes.
func (s *Server) AddInternalNote(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req noteRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAddInternalNoteCommand(caller, ticketID, kernel.NewUUID(), req.Note)
	if err != nil {
		return err
	}
	note, err := s.commands.AddInternalNote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newNoteResponse(note))
}

// ListInternalNotes handles GET /api/v1/support/tickets/:id/notes.
func (s *Server) ListInternalNotes(c echo.Context) error {
	viewer, err := viewerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewListNotesQuery(viewer, ticketID)
	if err != nil {
		return err
	}
	notes, err := s.queries.Tickets.HandleNotes(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// SubmitFeedback handles POST /api/v1/support/tickets/:id/feedback.
func (s *Server) SubmitFeedback(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req feedbackRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSubmitFeedbackCommand(caller, ticketID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	t, err := s.commands.SubmitFeedback.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTicketResponse(t))
}
