package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/ticket"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTicketCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	customer := newAccount(t, user.Customer)

	newCommand := func(t *testing.T, deliveryID kernel.UUID) commands.CreateTicketCommand {
		t.Helper()
		cmd, err := commands.NewCreateTicketCommand(callerOf(customer), kernel.NewUUID(), deliveryID,
			" Parcel is late ", "It was due yesterday", ticket.Late, ticket.High)
		require.NoError(t, err)
		return cmd
	}

	t.Run("ticket_about_own_delivery_is_opened", func(t *testing.T) {
		// Given
		ctx := t.Context()
		d := deliveryIn(t, customer.ID(), kernel.UUID{}, delivery.Scheduled)
		deliveries := new(MockDeliveryRepository)
		deliveries.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Add", mock.Anything, mock.AnythingOfType("*ticket.Ticket")).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("DeliveryRepository").Return(deliveries)
		uow.On("TicketRepository").Return(tickets)
		transactional(uow)
		events := &recordingDispatcher{}

		// When
		tk, err := commands.NewCreateTicketCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, newCommand(t, d.ID()))

		// Then
		require.NoError(t, err)
		assert.Equal(t, ticket.Open, tk.Status())
		assert.Equal(t, "Parcel is late", tk.Subject())
		assert.Equal(t, d.ID(), tk.DeliveryID())
		assert.False(t, tk.HasAgent())
		assert.Equal(t, []string{ticket.CreatedEventName}, events.names())
		tickets.AssertExpectations(t)
	})

	t.Run("ticket_without_delivery_skips_the_lookup", func(t *testing.T) {
		ctx := t.Context()
		tickets := new(MockTicketRepository)
		tickets.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("TicketRepository").Return(tickets)
		transactional(uow)

		_, err := commands.NewCreateTicketCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).
			Handle(ctx, newCommand(t, kernel.UUID{}))

		require.NoError(t, err)
		uow.AssertNotCalled(t, "DeliveryRepository")
	})

	t.Run("ticket_about_someone_elses_delivery_is_denied", func(t *testing.T) {
		ctx := t.Context()
		d := deliveryIn(t, kernel.NewUUID(), kernel.UUID{}, delivery.Pending)
		deliveries := new(MockDeliveryRepository)
		deliveries.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
		uow := new(MockUoW)
		uow.On("DeliveryRepository").Return(deliveries)
		aborted(uow)
		events := &recordingDispatcher{}

		_, err := commands.NewCreateTicketCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, newCommand(t, d.ID()))

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Empty(t, events.events)
		uow.AssertNotCalled(t, "TicketRepository")
	})

	t.Run("agents_cannot_open_tickets", func(t *testing.T) {
		agent := newAccount(t, user.SupportAgent)
		cmd, err := commands.NewCreateTicketCommand(callerOf(agent), kernel.NewUUID(), kernel.UUID{},
			"subject", "description", ticket.Other, ticket.Low)
		require.NoError(t, err)

		_, err = commands.NewCreateTicketCommandHandler(ticketFactory{new(MockUoW)}, policy, &recordingDispatcher{}).
			Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}

func TestSelfAssignTicketCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()

	t.Run("approved_agent_takes_an_open_ticket", func(t *testing.T) {
		// Given
		ctx := t.Context()
		agent := newAccount(t, user.SupportAgent)
		tk := ticketIn(t, kernel.NewUUID(), kernel.UUID{}, ticket.Open)
		users := new(MockUserRepository)
		users.On("Get", mock.Anything, agent.ID()).Return(agent, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		tickets.On("Update", mock.Anything, tk).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("UserRepository").Return(users)
		uow.On("TicketRepository").Return(tickets)
		transactional(uow)
		events := &recordingDispatcher{}
		cmd, err := commands.NewSelfAssignTicketCommand(callerOf(agent), tk.ID())
		require.NoError(t, err)

		// When
		taken, err := commands.NewSelfAssignTicketCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, ticket.InProgress, taken.Status())
		assert.Equal(t, agent.ID(), taken.AgentID())
		assert.Equal(t, []string{ticket.AssignedEventName}, events.names())
	})

	t.Run("unapproved_agent_is_denied", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		pending, err := user.NewUser(id, "pending@example.com", "hash", "Pending Agent", user.SupportAgent, testNow)
		require.NoError(t, err)
		tk := ticketIn(t, kernel.NewUUID(), kernel.UUID{}, ticket.Open)
		users := new(MockUserRepository)
		users.On("Get", mock.Anything, id).Return(pending, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		uow := new(MockUoW)
		uow.On("UserRepository").Return(users)
		uow.On("TicketRepository").Return(tickets)
		aborted(uow)
		cmd, _ := commands.NewSelfAssignTicketCommand(callerOf(pending), tk.ID())

		_, err = commands.NewSelfAssignTicketCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, ticket.Open, tk.Status())
	})

	t.Run("already_assigned_ticket_is_a_conflict", func(t *testing.T) {
		ctx := t.Context()
		agent := newAccount(t, user.SupportAgent)
		tk := ticketIn(t, kernel.NewUUID(), kernel.NewUUID(), ticket.InProgress)
		users := new(MockUserRepository)
		users.On("Get", mock.Anything, agent.ID()).Return(agent, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		uow := new(MockUoW)
		uow.On("UserRepository").Return(users)
		uow.On("TicketRepository").Return(tickets)
		aborted(uow)
		cmd, _ := commands.NewSelfAssignTicketCommand(callerOf(agent), tk.ID())

		_, err := commands.NewSelfAssignTicketCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestReassignTicketCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	admin := newAccount(t, user.Admin)

	setup := func(tk *ticket.Ticket, candidate *user.User) *MockUoW {
		users := new(MockUserRepository)
		users.On("Get", mock.Anything, candidate.ID()).Return(candidate, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		tickets.On("Update", mock.Anything, tk).Return(nil).Maybe()
		uow := new(MockUoW)
		uow.On("UserRepository").Return(users)
		uow.On("TicketRepository").Return(tickets)
		return uow
	}

	t.Run("status_is_kept_when_the_agent_changes", func(t *testing.T) {
		ctx := t.Context()
		agent := newAccount(t, user.SupportAgent)
		tk := ticketIn(t, kernel.NewUUID(), kernel.NewUUID(), ticket.OnHold)
		uow := setup(tk, agent)
		transactional(uow)
		events := &recordingDispatcher{}
		cmd, err := commands.NewReassignTicketCommand(callerOf(admin), tk.ID(), agent.ID())
		require.NoError(t, err)

		reassigned, err := commands.NewReassignTicketCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, ticket.OnHold, reassigned.Status())
		assert.Equal(t, agent.ID(), reassigned.AgentID())
		assert.Equal(t, []string{ticket.ReassignedEventName}, events.names())
	})

	t.Run("non_agent_target_is_invalid", func(t *testing.T) {
		ctx := t.Context()
		driver := newAccount(t, user.Driver)
		tk := ticketIn(t, kernel.NewUUID(), kernel.UUID{}, ticket.Open)
		uow := setup(tk, driver)
		aborted(uow)
		cmd, _ := commands.NewReassignTicketCommand(callerOf(admin), tk.ID(), driver.ID())

		_, err := commands.NewReassignTicketCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("agents_cannot_reassign", func(t *testing.T) {
		agent := newAccount(t, user.SupportAgent)
		cmd, _ := commands.NewReassignTicketCommand(callerOf(agent), kernel.NewUUID(), agent.ID())

		_, err := commands.NewReassignTicketCommandHandler(ticketFactory{new(MockUoW)}, policy, &recordingDispatcher{}).
			Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}

func TestUpdateTicketStatusCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	agent := newAccount(t, user.SupportAgent)

	setup := func(tk *ticket.Ticket, actor *user.User) (*MockUoW, *MockTicketRepository) {
		users := new(MockUserRepository)
		users.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		uow := new(MockUoW)
		uow.On("UserRepository").Return(users)
		uow.On("TicketRepository").Return(tickets)
		return uow, tickets
	}

	t.Run("assignee_resolves_the_ticket", func(t *testing.T) {
		// Given
		ctx := t.Context()
		tk := ticketIn(t, kernel.NewUUID(), agent.ID(), ticket.InProgress)
		uow, tickets := setup(tk, agent)
		tickets.On("Update", mock.Anything, tk).Return(nil).Once()
		transactional(uow)
		events := &recordingDispatcher{}
		cmd, err := commands.NewUpdateTicketStatusCommand(callerOf(agent), tk.ID(), ticket.Resolved, nil)
		require.NoError(t, err)

		// When
		updated, err := commands.NewUpdateTicketStatusCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, ticket.Resolved, updated.Status())
		assert.NotNil(t, updated.ResolvedAt())
		assert.Equal(t, []string{ticket.StatusChangedEventName}, events.names())
	})

	t.Run("same_status_and_priority_is_a_no_op", func(t *testing.T) {
		ctx := t.Context()
		tk := ticketIn(t, kernel.NewUUID(), agent.ID(), ticket.InProgress)
		uow, tickets := setup(tk, agent)
		aborted(uow)
		events := &recordingDispatcher{}
		same := ticket.Medium
		cmd, _ := commands.NewUpdateTicketStatusCommand(callerOf(agent), tk.ID(), ticket.InProgress, &same)

		_, err := commands.NewUpdateTicketStatusCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Empty(t, events.events)
		tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("closed_ticket_cannot_be_reopened", func(t *testing.T) {
		ctx := t.Context()
		tk := ticketIn(t, kernel.NewUUID(), agent.ID(), ticket.Closed)
		uow, _ := setup(tk, agent)
		aborted(uow)
		cmd, _ := commands.NewUpdateTicketStatusCommand(callerOf(agent), tk.ID(), ticket.InProgress, nil)

		_, err := commands.NewUpdateTicketStatusCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrStateConflict)
	})

	t.Run("other_agent_is_denied", func(t *testing.T) {
		ctx := t.Context()
		tk := ticketIn(t, kernel.NewUUID(), kernel.NewUUID(), ticket.InProgress)
		uow, _ := setup(tk, agent)
		aborted(uow)
		cmd, _ := commands.NewUpdateTicketStatusCommand(callerOf(agent), tk.ID(), ticket.OnHold, nil)

		_, err := commands.NewUpdateTicketStatusCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}

func TestAddInternalNoteCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()

	t.Run("agent_writes_a_note", func(t *testing.T) {
		ctx := t.Context()
		agent := newAccount(t, user.SupportAgent)
		tk := ticketIn(t, kernel.NewUUID(), kernel.UUID{}, ticket.Open)
		users := new(MockUserRepository)
		users.On("Get", mock.Anything, agent.ID()).Return(agent, nil).Once()
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		tickets.On("AddNote", mock.Anything, mock.AnythingOfType("*ticket.InternalNote")).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("UserRepository").Return(users)
		uow.On("TicketRepository").Return(tickets)
		transactional(uow)
		noteID := kernel.NewUUID()
		cmd, err := commands.NewAddInternalNoteCommand(callerOf(agent), tk.ID(), noteID, "Called the courier")
		require.NoError(t, err)

		note, err := commands.NewAddInternalNoteCommandHandler(ticketFactory{uow}, policy).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, noteID, note.ID())
		assert.Equal(t, tk.ID(), note.TicketID())
		assert.Equal(t, agent.ID(), note.AuthorID())
		tickets.AssertExpectations(t)
	})

	t.Run("customers_cannot_write_notes", func(t *testing.T) {
		customer := newAccount(t, user.Customer)
		cmd, _ := commands.NewAddInternalNoteCommand(callerOf(customer), kernel.NewUUID(), kernel.NewUUID(), "hi")

		_, err := commands.NewAddInternalNoteCommandHandler(ticketFactory{new(MockUoW)}, policy).Handle(t.Context(), cmd)

		assert.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}

func TestSubmitFeedbackCommandHandler_Handle(t *testing.T) {
	policy := services.DefaultPolicy()
	customer := newAccount(t, user.Customer)

	t.Run("owner_rates_a_resolved_ticket", func(t *testing.T) {
		ctx := t.Context()
		tk := ticketIn(t, customer.ID(), kernel.NewUUID(), ticket.Resolved)
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		tickets.On("Update", mock.Anything, tk).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("TicketRepository").Return(tickets)
		transactional(uow)
		events := &recordingDispatcher{}
		cmd, err := commands.NewSubmitFeedbackCommand(callerOf(customer), tk.ID(), 4, "Quick answer")
		require.NoError(t, err)

		rated, err := commands.NewSubmitFeedbackCommandHandler(ticketFactory{uow}, policy, events).Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, rated.Feedback())
		assert.Equal(t, 4, rated.Feedback().Rating())
		assert.Equal(t, []string{ticket.FeedbackSubmittedEventName}, events.names())
	})

	t.Run("feedback_before_resolution_is_a_conflict", func(t *testing.T) {
		ctx := t.Context()
		tk := ticketIn(t, customer.ID(), kernel.NewUUID(), ticket.InProgress)
		tickets := new(MockTicketRepository)
		tickets.On("Get", mock.Anything, tk.ID()).Return(tk, nil).Once()
		uow := new(MockUoW)
		uow.On("TicketRepository").Return(tickets)
		aborted(uow)
		cmd, _ := commands.NewSubmitFeedbackCommand(callerOf(customer), tk.ID(), 5, "")

		_, err := commands.NewSubmitFeedbackCommandHandler(ticketFactory{uow}, policy, &recordingDispatcher{}).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Nil(t, tk.Feedback())
	})
}
