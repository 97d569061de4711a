package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListTicketsQueryIsNotConstructed = errors.New(
		"ListTicketsQuery must be created via NewListTicketsQuery constructor",
	)
	ErrGetTicketQueryIsNotConstructed = errors.New(
		"GetTicketQuery must be created via NewGetTicketQuery constructor",
	)
	ErrListNotesQueryIsNotConstructed = errors.New(
		"ListNotesQuery must be created via NewListNotesQuery constructor",
	)
)

// FeedbackView is the customer's rating of a resolved ticket.
type FeedbackView struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TicketView is a support ticket without its internal notes.
type TicketView struct {
	ID          kernel.UUID   `json:"id"`
	CustomerID  kernel.UUID   `json:"customer_id"`
	DeliveryID  *kernel.UUID  `json:"delivery_id,omitempty"`
	AgentID     *kernel.UUID  `json:"agent_id,omitempty"`
	Subject     string        `json:"subject"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
	ClosedAt    *time.Time    `json:"closed_at,omitempty"`
	Feedback    *FeedbackView `json:"feedback,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NoteView is an agent-only note on a ticket.
type NoteView struct {
	ID        kernel.UUID `json:"id"`
	AgentID   kernel.UUID `json:"agent_id"`
	AgentName string      `json:"agent_name"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

const ticketViewSelect = `
	SELECT
		id,
		customer_id,
		delivery_id,
		agent_id,
		subject,
		description,
		category,
		status,
		priority,
		resolved_at,
		closed_at,
		feedback_rating,
		feedback_comment,
		feedback_at,
		created_at,
		updated_at
	FROM support_tickets
`

// ListTicketsQuery lists the tickets the viewer may see, newest first: everything for
// admins and approved agents, their own tickets for everyone else.
type ListTicketsQuery struct { //nolint:recvcheck //using for validation
	viewer Viewer
	status *ticket.Status

	guard guard.ConstructorGuard
}

// NewListTicketsQuery builds the listing. An empty status means every status.
func NewListTicketsQuery(viewer Viewer, status string) (ListTicketsQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListTicketsQuery{}, err
	}
	var filter *ticket.Status
	if status != "" {
		parsed, err := ticket.ParseStatus(status)
		if err != nil {
			return ListTicketsQuery{}, err
		}
		filter = &parsed
	}
	return ListTicketsQuery{viewer: viewer, status: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListTicketsQuery) Validate() error {
	return q.guard.Validate(ErrListTicketsQueryIsNotConstructed)
}

func (q ListTicketsQuery) Viewer() Viewer { return q.viewer }

func (q ListTicketsQuery) Status() *ticket.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}

// GetTicketQuery reads one ticket. Visible to its owner, approved agents and admins.
type GetTicketQuery struct { //nolint:recvcheck //using for validation
	viewer   Viewer
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTicketQuery(viewer Viewer, ticketID kernel.UUID) (GetTicketQuery, error) {
	if err := errors.Join(viewer.Validate(), ticketID.Validate()); err != nil {
		return GetTicketQuery{}, err
	}
	return GetTicketQuery{viewer: viewer, ticketID: ticketID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTicketQuery) Validate() error {
	return q.guard.Validate(ErrGetTicketQueryIsNotConstructed)
}

func (q GetTicketQuery) Viewer() Viewer        { return q.viewer }
func (q GetTicketQuery) TicketID() kernel.UUID { return q.ticketID }

// ListNotesQuery reads the internal notes of a ticket, oldest first.
type ListNotesQuery struct { //nolint:recvcheck //using for validation
	viewer   Viewer
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListNotesQuery(viewer Viewer, ticketID kernel.UUID) (ListNotesQuery, error) {
	if err := errors.Join(viewer.Validate(), ticketID.Validate()); err != nil {
		return ListNotesQuery{}, err
	}
	return ListNotesQuery{viewer: viewer, ticketID: ticketID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotesQuery) Validate() error {
	return q.guard.Validate(ErrListNotesQueryIsNotConstructed)
}

func (q ListNotesQuery) Viewer() Viewer        { return q.viewer }
func (q ListNotesQuery) TicketID() kernel.UUID { return q.ticketID }

// TicketQueryHandler serves ticket lists, ticket detail and internal notes.
type TicketQueryHandler struct {
	db     *gorm.DB
	policy *services.Policy
}

func NewTicketQueryHandler(db *gorm.DB, policy *services.Policy) TicketQueryHandler {
	return TicketQueryHandler{db: db, policy: policy}
}

func (h TicketQueryHandler) HandleList(ctx context.Context, query ListTicketsQuery) ([]TicketView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	viewer := query.Viewer()
	if err := h.policy.Authorize(viewer.Role, services.ActionViewTicket); err != nil {
		return nil, err
	}
	seesAll, err := h.seesAllTickets(ctx, viewer)
	if err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if !seesAll {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, viewer.ID.Bytes())
	}
	if status := query.Status(); status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*status))
	}

	statement := ticketViewSelect
	if len(conditions) > 0 {
		statement += " WHERE " + strings.Join(conditions, " AND ")
	}
	statement += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	return collectTicketViews(rows)
}

// HandleGet returns ObjectNotFoundError for an unknown ticket and AccessDeniedError for
// a ticket the viewer may not see.
func (h TicketQueryHandler) HandleGet(ctx context.Context, query GetTicketQuery) (TicketView, error) {
	if err := query.Validate(); err != nil {
		return TicketView{}, err
	}
	viewer := query.Viewer()
	if err := h.policy.Authorize(viewer.Role, services.ActionViewTicket); err != nil {
		return TicketView{}, err
	}

	view, err := h.getTicket(ctx, query.TicketID())
	if err != nil {
		return TicketView{}, err
	}
	if view.CustomerID.IsEqual(viewer.ID) {
		return view, nil
	}
	seesAll, err := h.seesAllTickets(ctx, viewer)
	if err != nil {
		return TicketView{}, err
	}
	if !seesAll {
		return TicketView{}, errs.NewAccessDeniedError("user "+viewer.ID.String(), "view ticket "+view.ID.String())
	}
	return view, nil
}

// HandleNotes requires an admin or an approved agent.
func (h TicketQueryHandler) HandleNotes(ctx context.Context, query ListNotesQuery) ([]NoteView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	viewer := query.Viewer()
	if err := h.policy.Authorize(viewer.Role, services.ActionReadInternalNotes); err != nil {
		return nil, err
	}
	seesAll, err := h.seesAllTickets(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if !seesAll {
		return nil, errs.NewAccessDeniedError("unapproved agent "+viewer.ID.String(), string(services.ActionReadInternalNotes))
	}
	if _, err = h.getTicket(ctx, query.TicketID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			n.id,
			n.agent_id,
			COALESCE(u.name, ''),
			n.note,
			n.created_at
		FROM ticket_internal_notes n
		LEFT JOIN users u ON u.id = n.agent_id
		WHERE n.ticket_id = ?
		ORDER BY n.created_at, n.id
	`, query.TicketID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]NoteView, 0)
	for rows.Next() {
		var (
			note        NoteView
			id, agentID uuid.UUID
		)
		if err = rows.Scan(&id, &agentID, &note.AgentName, &note.Note, &note.CreatedAt); err != nil {
			return nil, err
		}
		if note.ID, err = toID(id); err != nil {
			return nil, err
		}
		if note.AgentID, err = toID(agentID); err != nil {
			return nil, err
		}
		note.CreatedAt = note.CreatedAt.UTC()
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (h TicketQueryHandler) getTicket(ctx context.Context, id kernel.UUID) (TicketView, error) {
	rows, err := h.db.WithContext(ctx).Raw(ticketViewSelect+" WHERE id = ?", id.Bytes()).Rows()
	if err != nil {
		return TicketView{}, err
	}
	views, err := collectTicketViews(rows)
	if err != nil {
		return TicketView{}, err
	}
	if len(views) == 0 {
		return TicketView{}, errs.NewObjectNotFoundError("ticketID", id)
	}
	return views[0], nil
}

// seesAllTickets is true for admins and approved agents. Approval is read from the
// users table because it can change after the access token was issued.
func (h TicketQueryHandler) seesAllTickets(ctx context.Context, viewer Viewer) (bool, error) {
	switch viewer.Role {
	case user.Admin:
		return true, nil
	case user.SupportAgent:
		var approved bool
		err := h.db.WithContext(ctx).
			Raw("SELECT approved FROM users WHERE id = ? AND role = ?", viewer.ID.Bytes(), int(user.SupportAgent)).
			Row().
			Scan(&approved)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return approved, err
	default:
		return false, nil
	}
}

func collectTicketViews(rows *sql.Rows) ([]TicketView, error) {
	defer rows.Close()

	views := make([]TicketView, 0)
	for rows.Next() {
		var (
			view                             TicketView
			id, customerID                   uuid.UUID
			deliveryID, agentID              uuid.NullUUID
			category, status, priority       int
			resolvedAt, closedAt, feedbackAt sql.NullTime
			feedbackRating                   sql.NullInt64
			feedbackComment                  sql.NullString
		)
		err := rows.Scan(
			&id,
			&customerID,
			&deliveryID,
			&agentID,
			&view.Subject,
			&view.Description,
			&category,
			&status,
			&priority,
			&resolvedAt,
			&closedAt,
			&feedbackRating,
			&feedbackComment,
			&feedbackAt,
			&view.CreatedAt,
			&view.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if view.ID, err = toID(id); err != nil {
			return nil, err
		}
		if view.CustomerID, err = toID(customerID); err != nil {
			return nil, err
		}
		if view.DeliveryID, err = toOptionalID(deliveryID); err != nil {
			return nil, err
		}
		if view.AgentID, err = toOptionalID(agentID); err != nil {
			return nil, err
		}
		view.Category = ticket.Category(category).String()
		view.Status = ticket.Status(status).String()
		view.Priority = ticket.Priority(priority).String()
		view.ResolvedAt = toOptionalTime(resolvedAt)
		view.ClosedAt = toOptionalTime(closedAt)
		if feedbackRating.Valid {
			view.Feedback = &FeedbackView{
				Rating:      int(feedbackRating.Int64),
				Comment:     feedbackComment.String,
				SubmittedAt: feedbackAt.Time.UTC(),
			}
		}
		view.CreatedAt = view.CreatedAt.UTC()
		view.UpdatedAt = view.UpdatedAt.UTC()
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
