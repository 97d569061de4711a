package services

import (
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

// Action names an operation guarded by the authorization policy.
type Action string

const (
	ActionBookDelivery        Action = "delivery.book"
	ActionViewOwnDeliveries   Action = "delivery.view_own"
	ActionEditDelivery        Action = "delivery.edit"
	ActionCancelDelivery      Action = "delivery.cancel"
	ActionViewAnyDelivery     Action = "delivery.view_any"
	ActionAssignDriver        Action = "delivery.assign_driver"
	ActionSetDeliveryStatus   Action = "delivery.set_status"
	ActionDriveDelivery       Action = "delivery.drive"
	ActionReviewDelivery      Action = "delivery.review"
	ActionManageUsers         Action = "user.manage"
	ActionApproveAgent        Action = "support.approve_agent"
	ActionOpenTicket          Action = "ticket.open"
	ActionViewTicket          Action = "ticket.view"
	ActionTakeTicket          Action = "ticket.take"
	ActionReassignTicket      Action = "ticket.reassign"
	ActionUpdateTicketStatus  Action = "ticket.update_status"
	ActionWriteInternalNote   Action = "ticket.write_note"
	ActionReadInternalNotes   Action = "ticket.read_notes"
	ActionSubmitFeedback      Action = "ticket.feedback"
	ActionManageNotifications Action = "notification.manage"
	ActionManageOwnProfile    Action = "profile.manage"
)

// Policy is the (role, action) table consulted before any state transition.
// Ownership (the customer of a delivery, the assignee of a ticket, the recipient of a
// notification) is checked afterwards by the aggregates themselves.
type Policy struct {
	rules map[user.Role]map[Action]bool
}

// DefaultPolicy returns the role table of the application.
func DefaultPolicy() *Policy {
	everyone := []Action{ActionManageNotifications, ActionManageOwnProfile, ActionViewTicket}
	grants := map[user.Role][]Action{
		user.Customer: {
			ActionBookDelivery, ActionViewOwnDeliveries, ActionEditDelivery, ActionCancelDelivery,
			ActionReviewDelivery, ActionOpenTicket, ActionSubmitFeedback,
		},
		user.Admin: {
			ActionViewAnyDelivery, ActionAssignDriver, ActionSetDeliveryStatus, ActionManageUsers,
			ActionApproveAgent, ActionReassignTicket, ActionUpdateTicketStatus,
			ActionWriteInternalNote, ActionReadInternalNotes,
		},
		user.Driver: {ActionDriveDelivery},
		user.SupportAgent: {
			ActionTakeTicket, ActionUpdateTicketStatus, ActionWriteInternalNote, ActionReadInternalNotes,
		},
	}

	p := &Policy{rules: make(map[user.Role]map[Action]bool, len(grants))}
	for role, actions := range grants {
		p.rules[role] = make(map[Action]bool, len(actions)+len(everyone))
		for _, a := range append(actions, everyone...) {
			p.rules[role][a] = true
		}
	}
	return p
}

// Allows reports whether role may perform action.
func (p *Policy) Allows(role user.Role, action Action) bool {
	return p.rules[role][action]
}

// Authorize returns AccessDeniedError when role may not perform action.
func (p *Policy) Authorize(role user.Role, action Action) error {
	if !p.Allows(role, action) {
		return errs.NewAccessDeniedError(role.String(), string(action))
	}
	return nil
}
