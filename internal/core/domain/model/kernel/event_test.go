package kernel_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecorder(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var rec kernel.EventRecorder

	first := kernel.NewBaseEvent("delivery.created", at)
	second := kernel.NewBaseEvent("delivery.cancelled", at)
	rec.Record(first)
	rec.Record(second)

	events := rec.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "delivery.created", events[0].EventName())
	assert.Equal(t, at, events[1].OccurredAt())
	assert.False(t, events[0].EventID().IsEqual(events[1].EventID()))

	events[0] = nil
	assert.NotNil(t, rec.DomainEvents()[0], "returned slice must be a copy")

	rec.ClearDomainEvents()
	assert.Empty(t, rec.DomainEvents())
}
