package http

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/review"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
)

// Mutation responses echo the identity and the new state of the changed record.

type userResponse struct {
	ID            kernel.UUID `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Role          string      `json:"role"`
	Approved      bool        `json:"approved"`
	Address       string      `json:"address,omitempty"`
	ContactNumber string      `json:"contact_number,omitempty"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func newUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:            u.ID(),
		Email:         u.Email(),
		Name:          u.Name(),
		Role:          u.Role().String(),
		Approved:      u.IsApproved(),
		Address:       u.Address(),
		ContactNumber: u.ContactNumber(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

type loginResponse struct {
	User userResponse `json:"user"`
	ports.TokenPair
}

type deliveryResponse struct {
	ID             kernel.UUID  `json:"id"`
	TrackingNumber string       `json:"tracking_number"`
	Status         string       `json:"status"`
	DriverID       *kernel.UUID `json:"driver_id,omitempty"`
	DistanceKm     float64      `json:"distance_km"`
	Price          float64      `json:"price"`
	DeliveryDate   *time.Time   `json:"delivery_date,omitempty"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func newDeliveryResponse(d *delivery.Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:             d.ID(),
		TrackingNumber: d.TrackingNumber().String(),
		Status:         d.Status().String(),
		DistanceKm:     d.DistanceKm(),
		Price:          d.Price(),
		DeliveryDate:   d.DeliveryDate(),
		UpdatedAt:      d.UpdatedAt(),
	}
	if d.HasDriver() {
		driverID := d.DriverID()
		resp.DriverID = &driverID
	}
	return resp
}

type ticketResponse struct {
	ID         kernel.UUID  `json:"id"`
	Status     string       `json:"status"`
	Priority   string       `json:"priority"`
	AgentID    *kernel.UUID `json:"agent_id,omitempty"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
	ClosedAt   *time.Time   `json:"closed_at,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func newTicketResponse(t *ticket.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:         t.ID(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		ResolvedAt: t.ResolvedAt(),
		ClosedAt:   t.ClosedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
	if t.HasAgent() {
		agentID := t.AgentID()
		resp.AgentID = &agentID
	}
	return resp
}

type noteResponse struct {
	ID        kernel.UUID `json:"id"`
	TicketID  kernel.UUID `json:"ticket_id"`
	AgentID   kernel.UUID `json:"agent_id"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

func newNoteResponse(n *ticket.InternalNote) noteResponse {
	return noteResponse{
		ID:        n.ID(),
		TicketID:  n.TicketID(),
		AgentID:   n.AuthorID(),
		Note:      n.Text(),
		CreatedAt: n.CreatedAt(),
	}
}

type reviewResponse struct {
	ID         kernel.UUID `json:"id"`
	DeliveryID kernel.UUID `json:"delivery_id"`
	Rating     int         `json:"rating"`
	Comment    string      `json:"comment,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

func newReviewResponse(r *review.Review) reviewResponse {
	return reviewResponse{
		ID:         r.ID(),
		DeliveryID: r.DeliveryID(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}

type notificationResponse struct {
	ID        kernel.UUID `json:"id"`
	IsRead    bool        `json:"is_read"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newNotificationResponse(n *notification.Notification) notificationResponse {
	return notificationResponse{ID: n.ID(), IsRead: n.IsRead(), UpdatedAt: n.UpdatedAt()}
}

type countResponse struct {
	Count int64 `json:"count"`
}
