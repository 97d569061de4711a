package dispatch

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// BrokerHook forwards every event to the message broker.
type BrokerHook struct {
	publisher ports.EventPublisher
}

func NewBrokerHook(publisher ports.EventPublisher) *BrokerHook {
	return &BrokerHook{publisher: publisher}
}

func (h *BrokerHook) Name() string { return "broker" }

func (h *BrokerHook) Handle(ctx context.Context, event kernel.DomainEvent) error {
	return h.publisher.Publish(ctx, event)
}
