package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"logistics/internal/core/application/dispatch"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/notification"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type population struct {
	customer        *user.User
	driver          *user.User
	admins          []*user.User
	approvedAgent   *user.User
	unapprovedAgent *user.User
	dir             *directory
}

func newPopulation(t *testing.T) population {
	t.Helper()
	p := population{
		customer:        newUser(t, "customer@example.com", user.Customer),
		driver:          newUser(t, "driver@example.com", user.Driver),
		admins:          []*user.User{newUser(t, "admin1@example.com", user.Admin), newUser(t, "admin2@example.com", user.Admin)},
		approvedAgent:   newApprovedAgent(t, "agent1@example.com"),
		unapprovedAgent: newUser(t, "agent2@example.com", user.SupportAgent),
	}
	p.dir = &directory{users: []*user.User{p.customer, p.driver, p.admins[0], p.admins[1], p.approvedAgent, p.unapprovedAgent}}
	return p
}

func ids(us ...*user.User) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(us))
	for _, u := range us {
		out = append(out, u.ID())
	}
	return out
}

func TestNotificationHook_TicketCreated(t *testing.T) {
	t.Run("fans_out_to_approved_agents_and_admins", func(t *testing.T) {
		// Given
		p := newPopulation(t)
		s := &store{}
		created := metrics.NewNotificationsCreatedTotal()
		hook := dispatch.NewNotificationHook(p.dir, s, created)
		event := ticket.CreatedEvent{
			BaseEvent:  kernel.NewBaseEvent(ticket.CreatedEventName, testNow),
			TicketID:   kernel.NewUUID(),
			CustomerID: p.customer.ID(),
			Subject:    "Parcel arrived crushed",
			Category:   ticket.Damaged,
			Priority:   ticket.Medium,
		}

		// When
		err := hook.Handle(context.Background(), event)

		// Then
		require.NoError(t, err)
		assert.ElementsMatch(t, ids(p.admins[0], p.admins[1], p.approvedAgent), s.recipients())
		assert.InDelta(t, 3, testutil.ToFloat64(created), 1e-9)
		for _, r := range s.records {
			assert.True(t, r.EventID().IsEqual(event.EventID()))
			assert.Equal(t, notification.Important, r.Content().Type)
			assert.Equal(t, "New support ticket", r.Content().Title)
			assert.False(t, r.IsRead())
		}
	})

	t.Run("handling_the_same_event_twice_keeps_one_record_per_recipient", func(t *testing.T) {
		// Given
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)
		event := ticket.CreatedEvent{
			BaseEvent:  kernel.NewBaseEvent(ticket.CreatedEventName, testNow),
			TicketID:   kernel.NewUUID(),
			CustomerID: p.customer.ID(),
			Subject:    "Late",
			Category:   ticket.Late,
			Priority:   ticket.High,
		}

		// When
		require.NoError(t, hook.Handle(context.Background(), event))
		require.NoError(t, hook.Handle(context.Background(), event))

		// Then
		assert.Len(t, s.records, 3)
	})

	t.Run("agent_who_is_also_admin_is_notified_once", func(t *testing.T) {
		// Given
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)
		event := ticket.StatusChangedEvent{
			BaseEvent:  kernel.NewBaseEvent(ticket.StatusChangedEventName, testNow),
			TicketID:   kernel.NewUUID(),
			CustomerID: p.admins[0].ID(),
			Subject:    "Refund",
			From:       ticket.Open,
			To:         ticket.Resolved,
			Priority:   ticket.Medium,
		}

		// When
		err := hook.Handle(context.Background(), event)

		// Then
		require.NoError(t, err)
		assert.Equal(t, ids(p.admins[0]), s.recipients())
		assert.Equal(t, notification.Success, s.records[0].Content().Type)
	})
}

func TestNotificationHook_DeliveryEvents(t *testing.T) {
	deliveryID := kernel.NewUUID()
	tn, err := delivery.TrackingNumberFromString("LS0123456789")
	require.NoError(t, err)

	t.Run("created_notifies_every_admin", func(t *testing.T) {
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), delivery.CreatedEvent{
			BaseEvent:      kernel.NewBaseEvent(delivery.CreatedEventName, testNow),
			DeliveryID:     deliveryID,
			CustomerID:     p.customer.ID(),
			TrackingNumber: tn,
			PickupDate:     testNow,
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, ids(p.admins...), s.recipients())
		assert.Contains(t, s.records[0].Content().Message, "LS0123456789")
		assert.True(t, s.records[0].Content().RelatedDeliveryID.IsEqual(deliveryID))
	})

	t.Run("driver_assigned_notifies_driver_and_customer_with_their_own_text", func(t *testing.T) {
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), delivery.DriverAssignedEvent{
			BaseEvent:      kernel.NewBaseEvent(delivery.DriverAssignedEventName, testNow),
			DeliveryID:     deliveryID,
			CustomerID:     p.customer.ID(),
			DriverID:       p.driver.ID(),
			TrackingNumber: tn,
			Status:         delivery.Scheduled,
		})

		require.NoError(t, err)
		require.Len(t, s.records, 2)
		assert.True(t, s.records[0].Recipient().ID.IsEqual(p.driver.ID()))
		assert.Equal(t, user.Driver, s.records[0].Recipient().Role)
		assert.Equal(t, "New delivery assigned", s.records[0].Content().Title)
		assert.True(t, s.records[1].Recipient().ID.IsEqual(p.customer.ID()))
		assert.Equal(t, "Driver assigned", s.records[1].Content().Title)
	})

	t.Run("delivered_sends_the_completion_notice_to_customer_and_admins", func(t *testing.T) {
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), delivery.StatusChangedEvent{
			BaseEvent:      kernel.NewBaseEvent(delivery.StatusChangedEventName, testNow),
			DeliveryID:     deliveryID,
			CustomerID:     p.customer.ID(),
			DriverID:       p.driver.ID(),
			TrackingNumber: tn,
			From:           delivery.OutForDelivery,
			To:             delivery.Delivered,
			Actor:          delivery.ActorDriver,
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, ids(p.customer, p.admins[0], p.admins[1]), s.recipients())
		for _, r := range s.records {
			assert.Equal(t, "Delivery completed", r.Content().Title)
		}
	})

	t.Run("other_status_change_notifies_the_customer_only", func(t *testing.T) {
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), delivery.StatusChangedEvent{
			BaseEvent:      kernel.NewBaseEvent(delivery.StatusChangedEventName, testNow),
			DeliveryID:     deliveryID,
			CustomerID:     p.customer.ID(),
			TrackingNumber: tn,
			From:           delivery.Scheduled,
			To:             delivery.OutForDelivery,
			Actor:          delivery.ActorAdmin,
		})

		require.NoError(t, err)
		assert.Equal(t, ids(p.customer), s.recipients())
		assert.Contains(t, s.records[0].Content().Message, "Out for Delivery")
	})

	t.Run("missing_recipient_is_skipped", func(t *testing.T) {
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), delivery.DriverAssignedEvent{
			BaseEvent:      kernel.NewBaseEvent(delivery.DriverAssignedEventName, testNow),
			DeliveryID:     deliveryID,
			CustomerID:     kernel.NewUUID(),
			DriverID:       p.driver.ID(),
			TrackingNumber: tn,
			Status:         delivery.Scheduled,
		})

		require.NoError(t, err)
		assert.Equal(t, ids(p.driver), s.recipients())
	})
}

func TestNotificationHook_AgentOnboarding(t *testing.T) {
	p := newPopulation(t)
	s := &store{}
	hook := dispatch.NewNotificationHook(p.dir, s, nil)

	require.NoError(t, hook.Handle(context.Background(), user.AgentRegisteredEvent{
		BaseEvent: kernel.NewBaseEvent(user.AgentRegisteredEventName, testNow),
		AgentID:   p.unapprovedAgent.ID(),
		Name:      p.unapprovedAgent.Name(),
		Email:     p.unapprovedAgent.Email(),
	}))
	require.NoError(t, hook.Handle(context.Background(), user.AgentApprovedEvent{
		BaseEvent: kernel.NewBaseEvent(user.AgentApprovedEventName, testNow),
		AgentID:   p.approvedAgent.ID(),
		Email:     p.approvedAgent.Email(),
	}))

	assert.ElementsMatch(t, ids(p.admins[0], p.admins[1], p.approvedAgent), s.recipients())
}

func TestNotificationHook_Failures(t *testing.T) {
	t.Run("unrelated_event_writes_nothing", func(t *testing.T) {
		p := newPopulation(t)
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), kernel.NewBaseEvent("something.else", testNow))

		require.NoError(t, err)
		assert.Zero(t, s.calls)
	})

	t.Run("directory_error_is_returned", func(t *testing.T) {
		p := newPopulation(t)
		p.dir.listErr = errors.New("connection reset")
		s := &store{}
		hook := dispatch.NewNotificationHook(p.dir, s, nil)

		err := hook.Handle(context.Background(), delivery.CancelledEvent{
			BaseEvent:  kernel.NewBaseEvent(delivery.CancelledEventName, testNow),
			DeliveryID: kernel.NewUUID(),
			CustomerID: p.customer.ID(),
		})

		require.Error(t, err)
		assert.Empty(t, s.records)
	})
}
