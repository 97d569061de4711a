package ticket

import "logistics/internal/core/domain/model/kernel"

const (
	CreatedEventName           = "ticket.created"
	AssignedEventName          = "ticket.assigned"
	ReassignedEventName        = "ticket.reassigned"
	StatusChangedEventName     = "ticket.status_changed"
	FeedbackSubmittedEventName = "ticket.feedback_submitted"
)

// CreatedEvent is raised when a customer opens a ticket. Every approved agent and
// every admin is notified.
type CreatedEvent struct {
	kernel.BaseEvent
	TicketID   kernel.UUID `json:"ticket_id"`
	CustomerID kernel.UUID `json:"customer_id"`
	DeliveryID kernel.UUID `json:"delivery_id"`
	Subject    string      `json:"subject"`
	Category   Category    `json:"category"`
	Priority   Priority    `json:"priority"`
}

// AssignedEvent is raised when an agent takes an unassigned ticket.
type AssignedEvent struct {
	kernel.BaseEvent
	TicketID   kernel.UUID `json:"ticket_id"`
	CustomerID kernel.UUID `json:"customer_id"`
	AgentID    kernel.UUID `json:"agent_id"`
	Subject    string      `json:"subject"`
}

// ReassignedEvent is raised when an admin hands the ticket to another agent.
type ReassignedEvent struct {
	kernel.BaseEvent
	TicketID        kernel.UUID `json:"ticket_id"`
	CustomerID      kernel.UUID `json:"customer_id"`
	PreviousAgentID kernel.UUID `json:"previous_agent_id"`
	AgentID         kernel.UUID `json:"agent_id"`
	Subject         string      `json:"subject"`
	Status          Status      `json:"status"`
}

// StatusChangedEvent is raised when the status or the priority of a ticket changes.
type StatusChangedEvent struct {
	kernel.BaseEvent
	TicketID   kernel.UUID `json:"ticket_id"`
	CustomerID kernel.UUID `json:"customer_id"`
	AgentID    kernel.UUID `json:"agent_id"`
	Subject    string      `json:"subject"`
	From       Status      `json:"from"`
	To         Status      `json:"to"`
	Priority   Priority    `json:"priority"`
}

// FeedbackSubmittedEvent is raised once per ticket when the customer rates it.
type FeedbackSubmittedEvent struct {
	kernel.BaseEvent
	TicketID   kernel.UUID `json:"ticket_id"`
	CustomerID kernel.UUID `json:"customer_id"`
	AgentID    kernel.UUID `json:"agent_id"`
	Subject    string      `json:"subject"`
	Rating     int         `json:"rating"`
}
