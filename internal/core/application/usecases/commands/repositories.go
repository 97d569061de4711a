// Package commands contains business operations that modify system state.
// Every command is checked against the authorization policy first, then runs inside one
// unit of work; the domain events of the touched aggregates are dispatched only after
// the commit succeeded.
package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest one that covers the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	TicketRepoFactory interface {
		TicketRepository() ports.TicketRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// UserUoW is used by account commands.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// DeliveryUoW is used by delivery commands. Driver assignment reads the driver account
	// in the same transaction.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		UserRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// TicketUoW is used by support commands. Opening a ticket about a delivery checks
	// that the delivery belongs to the customer.
	TicketUoW interface {
		TxManager
		TicketRepoFactory
		UserRepoFactory
		DeliveryRepoFactory
	}

	TicketUoWFactory interface {
		Create() TicketUoW
	}

	// NotificationUoW is used by the notification inbox commands.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// ReviewUoW is used by review commands.
	ReviewUoW interface {
		TxManager
		ReviewRepoFactory
		DeliveryRepoFactory
	}

	ReviewUoWFactory interface {
		Create() ReviewUoW
	}
)

// EventDispatcher receives the domain events of a committed command.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...kernel.DomainEvent)
}

type eventSource interface {
	DomainEvents() []kernel.DomainEvent
	ClearDomainEvents()
}

// drain pulls the buffered events of every source, in order, and empties the buffers.
func drain(sources ...eventSource) []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, s := range sources {
		events = append(events, s.DomainEvents()...)
		s.ClearDomainEvents()
	}
	return events
}
