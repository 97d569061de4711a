package dispatch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"logistics/internal/core/application/dispatch"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type recordingHook struct {
	name  string
	seen  *[]string
	err   error
	panic bool
}

func (h recordingHook) Name() string { return h.name }

func (h recordingHook) Handle(_ context.Context, event kernel.DomainEvent) error {
	*h.seen = append(*h.seen, h.name+":"+event.EventName())
	if h.panic {
		panic("boom")
	}
	return h.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHooks_Dispatch(t *testing.T) {
	created := delivery.CreatedEvent{BaseEvent: kernel.NewBaseEvent(delivery.CreatedEventName, testNow)}
	cancelled := delivery.CancelledEvent{BaseEvent: kernel.NewBaseEvent(delivery.CancelledEventName, testNow)}

	t.Run("every_event_reaches_every_hook_in_order", func(t *testing.T) {
		// Given
		var seen []string
		hooks := dispatch.NewHooks(discardLogger(), nil,
			recordingHook{name: "a", seen: &seen},
			recordingHook{name: "b", seen: &seen},
		)

		// When
		hooks.Dispatch(context.Background(), created, cancelled)

		// Then
		assert.Equal(t, []string{
			"a:delivery.created", "b:delivery.created",
			"a:delivery.cancelled", "b:delivery.cancelled",
		}, seen)
	})

	t.Run("failing_hook_is_counted_and_does_not_stop_the_others", func(t *testing.T) {
		// Given
		var seen []string
		failures := metrics.NewHookFailuresTotal()
		hooks := dispatch.NewHooks(discardLogger(), failures,
			recordingHook{name: "email", seen: &seen, err: errors.New("smtp down")},
			recordingHook{name: "broker", seen: &seen},
		)

		// When
		hooks.Dispatch(context.Background(), created)

		// Then
		assert.Equal(t, []string{"email:delivery.created", "broker:delivery.created"}, seen)
		assert.InDelta(t, 1, testutil.ToFloat64(failures.WithLabelValues("email", delivery.CreatedEventName)), 1e-9)
		assert.InDelta(t, 0, testutil.ToFloat64(failures.WithLabelValues("broker", delivery.CreatedEventName)), 1e-9)
	})

	t.Run("panicking_hook_is_recovered", func(t *testing.T) {
		// Given
		var seen []string
		failures := metrics.NewHookFailuresTotal()
		hooks := dispatch.NewHooks(discardLogger(), failures,
			recordingHook{name: "notifications", seen: &seen, panic: true},
			recordingHook{name: "broker", seen: &seen},
		)

		// When / Then
		assert.NotPanics(t, func() { hooks.Dispatch(context.Background(), created) })
		assert.Equal(t, []string{"notifications:delivery.created", "broker:delivery.created"}, seen)
		assert.InDelta(t, 1, testutil.ToFloat64(failures.WithLabelValues("notifications", delivery.CreatedEventName)), 1e-9)
	})

	t.Run("no_events_is_a_no_op", func(t *testing.T) {
		var seen []string
		hooks := dispatch.NewHooks(discardLogger(), nil, recordingHook{name: "a", seen: &seen})

		hooks.Dispatch(context.Background())

		assert.Empty(t, seen)
	})
}
