package ticket

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
	// ErrTicketIsNotConstructed is returned when a Ticket was not built by NewTicket or RestoreTicket.
	ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")
	// ErrSubjectIsRequired is returned for an empty subject.
	ErrSubjectIsRequired = errs.NewValueIsRequiredError("subject")
	// ErrDescriptionIsRequired is returned for an empty description.
	ErrDescriptionIsRequired = errs.NewValueIsRequiredError("description")
)

// Ticket is a customer's support request, optionally about one delivery.
//
// Business rules:
//   - A new ticket is Open, unassigned and Medium priority unless told otherwise
//   - Self-assignment needs an approved agent and an unassigned ticket, and forces
//     In Progress
//   - Reassignment targets an approved agent and never touches the status
//   - resolvedAt and closedAt are stamped on first entry and never overwritten
//   - Feedback can be attached once, by the owner, while the ticket is Resolved
type Ticket struct {
	kernel.EventRecorder

	id          kernel.UUID
	customerID  kernel.UUID
	deliveryID  kernel.UUID
	agentID     kernel.UUID
	subject     string
	description string
	category    Category
	status      Status
	priority    Priority
	resolvedAt  *time.Time
	closedAt    *time.Time
	feedback    *Feedback
	createdAt   time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewTicket opens a ticket and records a CreatedEvent. A zero deliveryID means the
// ticket is not about a specific delivery; UnknownPriority falls back to Medium.
func NewTicket(
	id, customerID, deliveryID kernel.UUID,
	subject, description string,
	category Category,
	priority Priority,
	now time.Time,
) (*Ticket, error) {
	if priority == UnknownPriority {
		priority = Medium
	}
	t := &Ticket{
		deliveryID: deliveryID,
		status:     Open,
		createdAt:  now,
		updatedAt:  now,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setCustomerID(customerID),
		t.setText(subject, description),
		t.setCategory(category),
		t.setPriority(priority),
	); err != nil {
		return nil, err
	}

	t.Record(CreatedEvent{
		BaseEvent:  kernel.NewBaseEvent(CreatedEventName, now),
		TicketID:   t.id,
		CustomerID: t.customerID,
		DeliveryID: t.deliveryID,
		Subject:    t.subject,
		Category:   t.category,
		Priority:   t.priority,
	})
	return t, nil
}

// Snapshot is the persisted state of a ticket, used by RestoreTicket.
type Snapshot struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	DeliveryID  kernel.UUID
	AgentID     kernel.UUID
	Subject     string
	Description string
	Category    Category
	Status      Status
	Priority    Priority
	ResolvedAt  *time.Time
	ClosedAt    *time.Time
	Feedback    *Feedback
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreTicket rebuilds a ticket from storage without raising events.
func RestoreTicket(s Snapshot) (*Ticket, error) {
	t := &Ticket{
		deliveryID: s.DeliveryID,
		agentID:    s.AgentID,
		resolvedAt: copyTime(s.ResolvedAt),
		closedAt:   copyTime(s.ClosedAt),
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		guard:      guard.NewConstructorGuard(),
	}
	if s.Feedback != nil {
		fb := *s.Feedback
		t.feedback = &fb
	}

	var statusErr error
	if statusErr = s.Status.Validate(); statusErr == nil {
		t.status = s.Status
	}

	if err := errors.Join(
		t.setID(s.ID),
		t.setCustomerID(s.CustomerID),
		t.setText(s.Subject, s.Description),
		t.setCategory(s.Category),
		t.setPriority(s.Priority),
		statusErr,
	); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate reports whether the ticket was built through a constructor.
func (t *Ticket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

func (t *Ticket) ID() kernel.UUID         { return t.id }
func (t *Ticket) CustomerID() kernel.UUID { return t.customerID }
func (t *Ticket) DeliveryID() kernel.UUID { return t.deliveryID }
func (t *Ticket) AgentID() kernel.UUID    { return t.agentID }
func (t *Ticket) Subject() string         { return t.subject }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) Category() Category      { return t.category }
func (t *Ticket) Status() Status          { return t.status }
func (t *Ticket) Priority() Priority      { return t.priority }
func (t *Ticket) ResolvedAt() *time.Time  { return copyTime(t.resolvedAt) }
func (t *Ticket) ClosedAt() *time.Time    { return copyTime(t.closedAt) }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }

// HasAgent reports whether an agent is assigned.
func (t *Ticket) HasAgent() bool { return !t.agentID.IsZero() }

// IsOwnedBy reports whether customerID opened the ticket.
func (t *Ticket) IsOwnedBy(customerID kernel.UUID) bool { return t.customerID.IsEqual(customerID) }

// Feedback returns the customer's feedback, or nil before it is submitted.
func (t *Ticket) Feedback() *Feedback {
	if t.feedback == nil {
		return nil
	}
	fb := *t.feedback
	return &fb
}

// IsVisibleTo reports whether u may read the ticket: its owner, any approved agent
// and any admin.
func (t *Ticket) IsVisibleTo(u *user.User) bool {
	switch {
	case u == nil:
		return false
	case u.Role() == user.Admin, u.IsApprovedAgent():
		return true
	default:
		return t.IsOwnedBy(u.ID())
	}
}

// SelfAssign lets an approved agent take an unassigned ticket. The ticket moves to
// In Progress and an AssignedEvent is recorded.
func (t *Ticket) SelfAssign(agent *user.User, now time.Time) error {
	if agent == nil || !agent.IsApprovedAgent() {
		return errs.NewAccessDeniedError("user", "take tickets without being an approved support agent")
	}
	if t.HasAgent() {
		return errs.NewStateConflictError("ticket", "ticket is already assigned")
	}
	if t.status != InProgress {
		if err := t.status.CanMoveTo(InProgress); err != nil {
			return err
		}
	}

	t.agentID = agent.ID()
	t.status = InProgress
	t.updatedAt = now
	t.Record(AssignedEvent{
		BaseEvent:  kernel.NewBaseEvent(AssignedEventName, now),
		TicketID:   t.id,
		CustomerID: t.customerID,
		AgentID:    t.agentID,
		Subject:    t.subject,
	})
	return nil
}

// Reassign hands the ticket to another approved agent. The status is left as is.
// Reassigning to the current agent changes nothing.
func (t *Ticket) Reassign(agent *user.User, now time.Time) error {
	if agent == nil || !agent.IsApprovedAgent() {
		return errs.NewValueIsInvalidErrorWithCause("agentId",
			errors.New("tickets can only be assigned to approved support agents"))
	}
	if t.agentID.IsEqual(agent.ID()) {
		return nil
	}

	previous := t.agentID
	t.agentID = agent.ID()
	t.updatedAt = now
	t.Record(ReassignedEvent{
		BaseEvent:       kernel.NewBaseEvent(ReassignedEventName, now),
		TicketID:        t.id,
		CustomerID:      t.customerID,
		PreviousAgentID: previous,
		AgentID:         t.agentID,
		Subject:         t.subject,
		Status:          t.status,
	})
	return nil
}

// UpdateStatus moves the ticket and optionally changes its priority.
//
// Business rules:
//   - Only an admin or the assigned agent may update (AccessDeniedError otherwise)
//   - Re-asserting the current status keeps the timestamps as they are
//   - A move must be an allowed edge of the state machine (StateConflictError otherwise)
//   - resolvedAt and closedAt are stamped only if unset
//
// Returns whether anything changed. A StatusChangedEvent is recorded only then.
func (t *Ticket) UpdateStatus(actor *user.User, to Status, priority *Priority, now time.Time) (bool, error) {
	if actor == nil {
		return false, errs.NewAccessDeniedError("user", "update a ticket")
	}
	isAdmin := actor.Role() == user.Admin
	isAssignee := actor.IsApprovedAgent() && t.agentID.IsEqual(actor.ID())
	if !isAdmin && !isAssignee {
		return false, errs.NewAccessDeniedError(actor.Role().String(), "update a ticket assigned to someone else")
	}
	if err := to.Validate(); err != nil {
		return false, err
	}
	if priority != nil {
		if err := priority.Validate(); err != nil {
			return false, err
		}
	}

	statusChanged := to != t.status
	if statusChanged {
		if err := t.status.CanMoveTo(to); err != nil {
			return false, err
		}
	}
	priorityChanged := priority != nil && *priority != t.priority
	if !statusChanged && !priorityChanged {
		return false, nil
	}

	from := t.status
	t.status = to
	if priorityChanged {
		t.priority = *priority
	}
	if to == Resolved && t.resolvedAt == nil {
		t.resolvedAt = copyTime(&now)
	}
	if to == Closed && t.closedAt == nil {
		t.closedAt = copyTime(&now)
	}
	t.updatedAt = now

	t.Record(StatusChangedEvent{
		BaseEvent:  kernel.NewBaseEvent(StatusChangedEventName, now),
		TicketID:   t.id,
		CustomerID: t.customerID,
		AgentID:    t.agentID,
		Subject:    t.subject,
		From:       from,
		To:         to,
		Priority:   t.priority,
	})
	return true, nil
}

// AddNote creates an internal note by an admin or an approved agent.
func (t *Ticket) AddNote(author *user.User, noteID kernel.UUID, text string, now time.Time) (*InternalNote, error) {
	if author == nil || (author.Role() != user.Admin && !author.IsApprovedAgent()) {
		return nil, errs.NewAccessDeniedError("user", "write internal notes")
	}
	note, err := RestoreInternalNote(noteID, t.id, author.ID(), text, now)
	if err != nil {
		return nil, err
	}
	t.updatedAt = now
	return note, nil
}

// SubmitFeedback attaches the owner's rating. It fails with StateConflictError before
// the ticket is Resolved and on a second submission.
func (t *Ticket) SubmitFeedback(customerID kernel.UUID, rating int, comment string, now time.Time) error {
	if !t.IsOwnedBy(customerID) {
		return errs.NewAccessDeniedError("customer", "leave feedback on another customer's ticket")
	}
	if t.feedback != nil {
		return errs.NewStateConflictError("ticket", "feedback already submitted")
	}
	if t.status != Resolved {
		return errs.NewStateConflictError("ticket", "feedback can only be submitted for resolved tickets")
	}
	fb, err := NewFeedback(rating, comment, now)
	if err != nil {
		return err
	}

	t.feedback = &fb
	t.updatedAt = now
	t.Record(FeedbackSubmittedEvent{
		BaseEvent:  kernel.NewBaseEvent(FeedbackSubmittedEventName, now),
		TicketID:   t.id,
		CustomerID: t.customerID,
		AgentID:    t.agentID,
		Subject:    t.subject,
		Rating:     fb.Rating(),
	})
	return nil
}

func (t *Ticket) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Ticket) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	t.customerID = id
	return nil
}

func (t *Ticket) setText(subject, description string) error {
	subject, description = strings.TrimSpace(subject), strings.TrimSpace(description)
	var subjectErr, descriptionErr error
	if subject == "" {
		subjectErr = ErrSubjectIsRequired
	}
	if description == "" {
		descriptionErr = ErrDescriptionIsRequired
	}
	if err := errors.Join(subjectErr, descriptionErr); err != nil {
		return err
	}
	t.subject, t.description = subject, description
	return nil
}

func (t *Ticket) setCategory(c Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	t.category = c
	return nil
}

func (t *Ticket) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.priority = p
	return nil
}

func copyTime(tm *time.Time) *time.Time {
	if tm == nil {
		return nil
	}
	c := *tm
	return &c
}
