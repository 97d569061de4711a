package dispatch

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

// Directory looks recipients up. Role audiences are resolved when the event is handled,
// so an agent approved after a ticket was opened is not notified about it.
type Directory interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}

type audience struct {
	users  []kernel.UUID
	admins bool
	agents bool
}

type message struct {
	to      audience
	content notification.Content
}

// resolve returns the members of a in a stable order: direct users first, then admins,
// then approved agents. Direct users that no longer exist are skipped.
func resolve(ctx context.Context, dir Directory, a audience) ([]*user.User, error) {
	var out []*user.User
	for _, id := range a.users {
		if id.IsZero() {
			continue
		}
		u, err := dir.Get(ctx, id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve user %s: %w", id, err)
		}
		out = append(out, u)
	}
	if a.admins {
		admins, err := dir.ListByRole(ctx, user.Admin)
		if err != nil {
			return nil, fmt.Errorf("resolve admins: %w", err)
		}
		out = append(out, admins...)
	}
	if a.agents {
		agents, err := dir.ListByRole(ctx, user.SupportAgent)
		if err != nil {
			return nil, fmt.Errorf("resolve agents: %w", err)
		}
		for _, agent := range agents {
			if agent.IsApprovedAgent() {
				out = append(out, agent)
			}
		}
	}
	return out, nil
}

func deliveryURL(id kernel.UUID) string { return "/deliveries/" + id.String() }
func ticketURL(id kernel.UUID) string   { return "/support/tickets/" + id.String() }

// plan maps an event to what each audience should read. Events nobody is notified about
// yield nothing.
func plan(event kernel.DomainEvent) []message {
	switch e := event.(type) {
	case delivery.CreatedEvent:
		return []message{{
			to: audience{admins: true},
			content: notification.Content{
				Title:             "New delivery booked",
				Message:           fmt.Sprintf("Delivery %s was booked for pickup on %s.", e.TrackingNumber, e.PickupDate.Format("2006-01-02")),
				Type:              notification.Info,
				RelatedDeliveryID: e.DeliveryID,
				RelatedUserID:     e.CustomerID,
				ActionURL:         "/admin/deliveries/" + e.DeliveryID.String(),
			},
		}}

	case delivery.DriverAssignedEvent:
		return []message{
			{
				to: audience{users: []kernel.UUID{e.DriverID}},
				content: notification.Content{
					Title:             "New delivery assigned",
					Message:           fmt.Sprintf("You have been assigned delivery %s.", e.TrackingNumber),
					Type:              notification.Important,
					RelatedDeliveryID: e.DeliveryID,
					RelatedUserID:     e.CustomerID,
					ActionURL:         "/driver/deliveries",
				},
			},
			{
				to: audience{users: []kernel.UUID{e.CustomerID}},
				content: notification.Content{
					Title:             "Driver assigned",
					Message:           fmt.Sprintf("A driver has been assigned to your delivery %s. It is now %s.", e.TrackingNumber, e.Status),
					Type:              notification.Info,
					RelatedDeliveryID: e.DeliveryID,
					RelatedUserID:     e.DriverID,
					ActionURL:         deliveryURL(e.DeliveryID),
				},
			},
		}

	case delivery.StatusChangedEvent:
		if e.IsCompletion() {
			return []message{{
				to: audience{users: []kernel.UUID{e.CustomerID}, admins: true},
				content: notification.Content{
					Title:             "Delivery completed",
					Message:           fmt.Sprintf("Delivery %s has been delivered.", e.TrackingNumber),
					Type:              notification.Success,
					RelatedDeliveryID: e.DeliveryID,
					RelatedUserID:     e.CustomerID,
					ActionURL:         deliveryURL(e.DeliveryID),
				},
			}}
		}
		typ := notification.Info
		if e.To == delivery.Cancelled {
			typ = notification.Warning
		}
		return []message{{
			to: audience{users: []kernel.UUID{e.CustomerID}},
			content: notification.Content{
				Title:             "Delivery status updated",
				Message:           fmt.Sprintf("Delivery %s moved from %s to %s.", e.TrackingNumber, e.From, e.To),
				Type:              typ,
				RelatedDeliveryID: e.DeliveryID,
				ActionURL:         deliveryURL(e.DeliveryID),
			},
		}}

	case delivery.CancelledEvent:
		return []message{{
			to: audience{admins: true},
			content: notification.Content{
				Title:             "Delivery cancelled",
				Message:           fmt.Sprintf("The customer cancelled delivery %s.", e.TrackingNumber),
				Type:              notification.Warning,
				RelatedDeliveryID: e.DeliveryID,
				RelatedUserID:     e.CustomerID,
				ActionURL:         "/admin/deliveries/" + e.DeliveryID.String(),
			},
		}}

	case ticket.CreatedEvent:
		return []message{{
			to: audience{agents: true, admins: true},
			content: notification.Content{
				Title:             "New support ticket",
				Message:           fmt.Sprintf("%s (%s, %s priority)", e.Subject, e.Category, e.Priority),
				Type:              notification.Important,
				RelatedDeliveryID: e.DeliveryID,
				RelatedUserID:     e.CustomerID,
				ActionURL:         ticketURL(e.TicketID),
			},
		}}

	case ticket.AssignedEvent:
		return []message{{
			to: audience{users: []kernel.UUID{e.CustomerID}},
			content: notification.Content{
				Title:         "Your ticket is being handled",
				Message:       fmt.Sprintf("An agent is now working on %q.", e.Subject),
				Type:          notification.Info,
				RelatedUserID: e.AgentID,
				ActionURL:     ticketURL(e.TicketID),
			},
		}}

	case ticket.ReassignedEvent:
		return []message{{
			to: audience{users: []kernel.UUID{e.AgentID}},
			content: notification.Content{
				Title:         "Ticket assigned to you",
				Message:       fmt.Sprintf("You are now responsible for %q (%s).", e.Subject, e.Status),
				Type:          notification.Important,
				RelatedUserID: e.CustomerID,
				ActionURL:     ticketURL(e.TicketID),
			},
		}}

	case ticket.StatusChangedEvent:
		typ := notification.Info
		if e.To == ticket.Resolved {
			typ = notification.Success
		}
		msg := fmt.Sprintf("Your ticket %q is now %s.", e.Subject, e.To)
		if e.From == e.To {
			msg = fmt.Sprintf("Your ticket %q now has %s priority.", e.Subject, e.Priority)
		}
		return []message{{
			to: audience{users: []kernel.UUID{e.CustomerID}},
			content: notification.Content{
				Title:     "Ticket status updated",
				Message:   msg,
				Type:      typ,
				ActionURL: ticketURL(e.TicketID),
			},
		}}

	case ticket.FeedbackSubmittedEvent:
		return []message{{
			to: audience{users: []kernel.UUID{e.AgentID}},
			content: notification.Content{
				Title:         "Feedback received",
				Message:       fmt.Sprintf("The customer rated %q %d/5.", e.Subject, e.Rating),
				Type:          notification.Info,
				RelatedUserID: e.CustomerID,
				ActionURL:     ticketURL(e.TicketID),
			},
		}}

	case user.AgentRegisteredEvent:
		return []message{{
			to: audience{admins: true},
			content: notification.Content{
				Title:         "Support agent awaiting approval",
				Message:       fmt.Sprintf("%s (%s) registered as a support agent.", e.Name, e.Email),
				Type:          notification.Important,
				RelatedUserID: e.AgentID,
				ActionURL:     "/admin/users",
			},
		}}

	case user.AgentApprovedEvent:
		return []message{{
			to: audience{users: []kernel.UUID{e.AgentID}},
			content: notification.Content{
				Title:     "Agent account approved",
				Message:   "Your support agent account has been approved. You can now take tickets.",
				Type:      notification.Success,
				ActionURL: "/support/tickets",
			},
		}}
	}
	return nil
}
