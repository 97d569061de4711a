package dispatch

import (
	"context"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
)

// UserLookup finds the account an email is addressed to.
type UserLookup interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// EmailHook mails customers about their deliveries: the booking confirmation, the
// driver assignment and every status change.
type EmailHook struct {
	users  UserLookup
	mailer ports.Mailer
}

func NewEmailHook(users UserLookup, mailer ports.Mailer) *EmailHook {
	return &EmailHook{users: users, mailer: mailer}
}

func (h *EmailHook) Name() string { return "email" }

func (h *EmailHook) Handle(ctx context.Context, event kernel.DomainEvent) error {
	var (
		customerID    kernel.UUID
		subject, body string
	)

	switch e := event.(type) {
	case delivery.CreatedEvent:
		customerID = e.CustomerID
		subject = fmt.Sprintf("Booking confirmed: %s", e.TrackingNumber)
		body = lines(
			"Your delivery has been booked.",
			"",
			"Tracking number: "+e.TrackingNumber.String(),
			"Pickup: "+e.PickupAddress,
			"Drop-off: "+e.DeliveryAddress,
			"Pickup date: "+e.PickupDate.Format("2006-01-02"),
			fmt.Sprintf("Price: %.2f", e.Price),
		)
	case delivery.DriverAssignedEvent:
		customerID = e.CustomerID
		subject = fmt.Sprintf("Driver assigned: %s", e.TrackingNumber)
		body = lines(
			fmt.Sprintf("A driver has been assigned to delivery %s.", e.TrackingNumber),
			"Current status: "+e.Status.String(),
		)
	case delivery.StatusChangedEvent:
		customerID = e.CustomerID
		subject = fmt.Sprintf("Delivery %s is now %s", e.TrackingNumber, e.To)
		body = lines(
			fmt.Sprintf("The status of delivery %s changed from %s to %s.", e.TrackingNumber, e.From, e.To),
		)
	default:
		return nil
	}

	customer, err := h.users.Get(ctx, customerID)
	if err != nil {
		return fmt.Errorf("find customer %s: %w", customerID, err)
	}
	return h.mailer.Send(ctx, ports.Email{
		To:      []string{customer.Email()},
		Subject: subject,
		Body:    body,
	})
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}
